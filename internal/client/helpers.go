package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	ndphttp "github.com/nordlys-io/ndp-client/internal/http"
	"github.com/nordlys-io/ndp-client/pkg/ndp"
)

// postItems sends one items-envelope request and decodes the items envelope
// of the response.
func postItems[T, R any](ctx context.Context, httpClient *ndphttp.Client, path string, items []T) ([]R, error) {
	resp, err := httpClient.Post(ctx, path, ndp.ItemsRequest[T]{Items: items})
	if err != nil {
		return nil, err
	}

	var result ndp.ItemsResponse[R]
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing response: %w", err)
	}

	return result.Items, nil
}

// postDiscard sends one items-envelope request and ignores the response body.
func postDiscard[T any](ctx context.Context, httpClient *ndphttp.Client, path string, body T) error {
	_, err := httpClient.Post(ctx, path, body)

	return err
}

// createItems creates resources through the chunked executor.
func createItems[T, R any](ctx context.Context, c *Client, path string, items []T) ([]R, error) {
	return ndp.Execute(ctx, items, func(ctx context.Context, chunk []T) ([]R, error) {
		return postItems[T, R](ctx, c.http, path, chunk)
	}, c.writeOptions())
}

// retrieveItems fetches resources by identifier in chunked concurrent
// requests and reorders the combined result to match ids. key extracts a
// resource's internal and external ID.
func retrieveItems[R any](ctx context.Context, c *Client, path string, ids []ndp.Identifier, key func(R) (int64, string)) ([]R, error) {
	items, err := ndp.Execute(ctx, ids, func(ctx context.Context, chunk []ndp.Identifier) ([]R, error) {
		return postItems[ndp.Identifier, R](ctx, c.http, path, chunk)
	}, c.readOptions())
	if err != nil {
		return nil, err
	}

	return orderByIdentifier(ids, items, key), nil
}

// orderByIdentifier reorders items to follow ids. The server does not
// guarantee response order within one request.
func orderByIdentifier[R any](ids []ndp.Identifier, items []R, key func(R) (int64, string)) []R {
	byID := make(map[int64]int, len(items))
	byExternalID := make(map[string]int, len(items))

	for i, item := range items {
		id, externalID := key(item)
		if id != 0 {
			byID[id] = i
		}

		if externalID != "" {
			byExternalID[externalID] = i
		}
	}

	ordered := make([]R, 0, len(items))

	for _, ident := range ids {
		if ident.ExternalID != "" {
			if i, ok := byExternalID[ident.ExternalID]; ok {
				ordered = append(ordered, items[i])
			}

			continue
		}

		if i, ok := byID[ident.ID]; ok {
			ordered = append(ordered, items[i])
		}
	}

	return ordered
}

// updateItems patches resources through the chunked executor.
func updateItems[T, R any](ctx context.Context, c *Client, path string, updates []T) ([]R, error) {
	return ndp.Execute(ctx, updates, func(ctx context.Context, chunk []T) ([]R, error) {
		return postItems[T, R](ctx, c.http, path, chunk)
	}, c.writeOptions())
}

// deleteItems deletes resources by identifier through the chunked executor.
func deleteItems(ctx context.Context, c *Client, path string, ids []ndp.Identifier) error {
	_, err := ndp.Execute(ctx, ids, func(ctx context.Context, chunk []ndp.Identifier) ([]ndp.Identifier, error) {
		err := postDiscard(ctx, c.http, path, ndp.DeleteRequest{Items: chunk, IgnoreUnknownIDs: true})
		if err != nil {
			return nil, err
		}

		return nil, nil
	}, c.writeOptions())

	return err
}

// pager adapts one list endpoint to the pagination iterator.
type pager[T any] struct {
	http *ndphttp.Client
}

// ListWithPath fetches one page of a cursor-paginated listing.
func (p pager[T]) ListWithPath(ctx context.Context, path string, params *ndp.QueryParams) (*ndp.ListResponse[T], error) {
	var values url.Values
	if params != nil {
		values = params.ToValues()
	}

	resp, err := p.http.Get(ctx, path, values)
	if err != nil {
		return nil, err
	}

	var result ndp.ListResponse[T]
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing list response: %w", err)
	}

	return &result, nil
}

// filterRequest is the body of a filtered list endpoint.
type filterRequest[F any] struct {
	Filter *F     `json:"filter,omitempty"`
	Limit  int    `json:"limit,omitempty"`
	Cursor string `json:"cursor,omitempty"`
}

// filterItems queries one filtered list endpoint.
func filterItems[F, R any](ctx context.Context, httpClient *ndphttp.Client, path string, filter *F, params *ndp.QueryParams) (*ndp.ListResponse[R], error) {
	req := filterRequest[F]{Filter: filter}
	if params != nil {
		req.Limit = params.Limit
		req.Cursor = params.Cursor
	}

	resp, err := httpClient.Post(ctx, path, req)
	if err != nil {
		return nil, err
	}

	var result ndp.ListResponse[R]
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing filter response: %w", err)
	}

	return &result, nil
}

// searchRequest is the body of a search endpoint.
type searchRequest struct {
	Query string `json:"query"`
	Limit int    `json:"limit,omitempty"`
}

// searchItems queries one search endpoint.
func searchItems[R any](ctx context.Context, httpClient *ndphttp.Client, path, query string, limit int) ([]R, error) {
	resp, err := httpClient.Post(ctx, path, searchRequest{Query: query, Limit: limit})
	if err != nil {
		return nil, err
	}

	var result ndp.ItemsResponse[R]
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing search response: %w", err)
	}

	return result.Items, nil
}
