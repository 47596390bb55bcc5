package client

import (
	"context"

	"github.com/nordlys-io/ndp-client/pkg/ndp"
)

// AssetsClient implements asset operations.
type AssetsClient struct {
	client *Client
}

func assetKey(a ndp.Asset) (int64, string) {
	return a.ID, a.ExternalID
}

// Create creates assets in bounded concurrent chunks.
func (c *AssetsClient) Create(ctx context.Context, assets []ndp.AssetCreate) ([]ndp.Asset, error) {
	return createItems[ndp.AssetCreate, ndp.Asset](ctx, c.client, c.client.path("/assets"), assets)
}

// CreateHierarchy creates an asset forest level by level, so no child is
// requested before its parent is confirmed created.
func (c *AssetsClient) CreateHierarchy(ctx context.Context, assets []ndp.AssetCreate) ([]ndp.Asset, error) {
	return ndp.ExecuteHierarchy(ctx, assets, func(ctx context.Context, chunk []ndp.AssetCreate) ([]ndp.Asset, error) {
		return postItems[ndp.AssetCreate, ndp.Asset](ctx, c.client.http, c.client.path("/assets"), chunk)
	}, c.client.writeOptions())
}

// Retrieve fetches assets by identifier, preserving input order.
func (c *AssetsClient) Retrieve(ctx context.Context, ids []ndp.Identifier) ([]ndp.Asset, error) {
	return retrieveItems(ctx, c.client, c.client.path("/assets/byids"), ids, assetKey)
}

// Update patches assets in bounded concurrent chunks.
func (c *AssetsClient) Update(ctx context.Context, updates []ndp.AssetUpdate) ([]ndp.Asset, error) {
	return updateItems[ndp.AssetUpdate, ndp.Asset](ctx, c.client, c.client.path("/assets/update"), updates)
}

// Delete deletes assets by identifier.
func (c *AssetsClient) Delete(ctx context.Context, ids []ndp.Identifier) error {
	return deleteItems(ctx, c.client, c.client.path("/assets/delete"), ids)
}

// List fetches one page of assets.
func (c *AssetsClient) List(ctx context.Context, params *ndp.QueryParams) (*ndp.ListResponse[ndp.Asset], error) {
	return pager[ndp.Asset]{http: c.client.http}.ListWithPath(ctx, c.client.path("/assets"), params)
}

// ListAll iterates over every asset page.
func (c *AssetsClient) ListAll(ctx context.Context, params *ndp.QueryParams) *ndp.PaginationIterator[ndp.Asset] {
	return ndp.NewPaginationIterator(ctx, pager[ndp.Asset]{http: c.client.http}, c.client.path("/assets"), params)
}

// Search finds assets matching a free-text query.
func (c *AssetsClient) Search(ctx context.Context, query string, limit int) ([]ndp.Asset, error) {
	return searchItems[ndp.Asset](ctx, c.client.http, c.client.path("/assets/search"), query, limit)
}

// Filter fetches one page of assets matching exact-match properties.
func (c *AssetsClient) Filter(ctx context.Context, filter *ndp.AssetFilter, params *ndp.QueryParams) (*ndp.ListResponse[ndp.Asset], error) {
	return filterItems[ndp.AssetFilter, ndp.Asset](ctx, c.client.http, c.client.path("/assets/list"), filter, params)
}
