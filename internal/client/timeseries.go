package client

import (
	"context"

	"github.com/nordlys-io/ndp-client/pkg/ndp"
)

// TimeSeriesClient implements time series metadata operations.
type TimeSeriesClient struct {
	client *Client
}

func timeSeriesKey(ts ndp.TimeSeries) (int64, string) {
	return ts.ID, ts.ExternalID
}

// Create creates time series in bounded concurrent chunks.
func (c *TimeSeriesClient) Create(ctx context.Context, series []ndp.TimeSeriesCreate) ([]ndp.TimeSeries, error) {
	return createItems[ndp.TimeSeriesCreate, ndp.TimeSeries](ctx, c.client, c.client.path("/timeseries"), series)
}

// Retrieve fetches time series by identifier, preserving input order.
func (c *TimeSeriesClient) Retrieve(ctx context.Context, ids []ndp.Identifier) ([]ndp.TimeSeries, error) {
	return retrieveItems(ctx, c.client, c.client.path("/timeseries/byids"), ids, timeSeriesKey)
}

// Update patches time series in bounded concurrent chunks.
func (c *TimeSeriesClient) Update(ctx context.Context, updates []ndp.TimeSeriesUpdate) ([]ndp.TimeSeries, error) {
	return updateItems[ndp.TimeSeriesUpdate, ndp.TimeSeries](ctx, c.client, c.client.path("/timeseries/update"), updates)
}

// Delete deletes time series by identifier.
func (c *TimeSeriesClient) Delete(ctx context.Context, ids []ndp.Identifier) error {
	return deleteItems(ctx, c.client, c.client.path("/timeseries/delete"), ids)
}

// List fetches one page of time series.
func (c *TimeSeriesClient) List(ctx context.Context, params *ndp.QueryParams) (*ndp.ListResponse[ndp.TimeSeries], error) {
	return pager[ndp.TimeSeries]{http: c.client.http}.ListWithPath(ctx, c.client.path("/timeseries"), params)
}

// ListAll iterates over every time series page.
func (c *TimeSeriesClient) ListAll(ctx context.Context, params *ndp.QueryParams) *ndp.PaginationIterator[ndp.TimeSeries] {
	return ndp.NewPaginationIterator(ctx, pager[ndp.TimeSeries]{http: c.client.http}, c.client.path("/timeseries"), params)
}

// Search finds time series matching a free-text query.
func (c *TimeSeriesClient) Search(ctx context.Context, query string, limit int) ([]ndp.TimeSeries, error) {
	return searchItems[ndp.TimeSeries](ctx, c.client.http, c.client.path("/timeseries/search"), query, limit)
}
