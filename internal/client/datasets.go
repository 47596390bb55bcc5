package client

import (
	"context"

	"github.com/nordlys-io/ndp-client/pkg/ndp"
)

// DataSetsClient implements data set operations.
type DataSetsClient struct {
	client *Client
}

func dataSetKey(ds ndp.DataSet) (int64, string) {
	return ds.ID, ds.ExternalID
}

// Create creates data sets.
func (c *DataSetsClient) Create(ctx context.Context, sets []ndp.DataSetCreate) ([]ndp.DataSet, error) {
	return createItems[ndp.DataSetCreate, ndp.DataSet](ctx, c.client, c.client.path("/datasets"), sets)
}

// Retrieve fetches data sets by identifier, preserving input order.
func (c *DataSetsClient) Retrieve(ctx context.Context, ids []ndp.Identifier) ([]ndp.DataSet, error) {
	return retrieveItems(ctx, c.client, c.client.path("/datasets/byids"), ids, dataSetKey)
}

// Update patches data sets.
func (c *DataSetsClient) Update(ctx context.Context, updates []ndp.DataSetUpdate) ([]ndp.DataSet, error) {
	return updateItems[ndp.DataSetUpdate, ndp.DataSet](ctx, c.client, c.client.path("/datasets/update"), updates)
}

// List fetches one page of data sets.
func (c *DataSetsClient) List(ctx context.Context, params *ndp.QueryParams) (*ndp.ListResponse[ndp.DataSet], error) {
	return pager[ndp.DataSet]{http: c.client.http}.ListWithPath(ctx, c.client.path("/datasets"), params)
}
