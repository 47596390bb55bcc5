package client

import (
	"context"

	"github.com/nordlys-io/ndp-client/internal/constants"
	"github.com/nordlys-io/ndp-client/pkg/ndp"
)

// DatapointsClient implements datapoint operations.
type DatapointsClient struct {
	client *Client
}

// Insert writes datapoints. The total datapoint count, summed across
// series, is split into bounded requests executed concurrently; a series
// exceeding the budget is split across requests.
func (c *DatapointsClient) Insert(ctx context.Context, batches []ndp.DatapointBatch) error {
	groups := splitDatapointBatches(batches, constants.DefaultDatapointInsertChunkSize)

	opts := c.client.writeOptions()
	opts.ChunkSize = 1 // groups are pre-sized by datapoint count

	_, err := ndp.Execute(ctx, groups, func(ctx context.Context, chunk [][]ndp.DatapointBatch) ([]struct{}, error) {
		err := postDiscard(ctx, c.client.http, c.client.path("/timeseries/data"),
			ndp.ItemsRequest[ndp.DatapointBatch]{Items: chunk[0]})
		if err != nil {
			return nil, err
		}

		return nil, nil
	}, opts)

	return err
}

// splitDatapointBatches packs batches into groups of at most budget
// datapoints each, splitting oversized series across groups.
func splitDatapointBatches(batches []ndp.DatapointBatch, budget int) [][]ndp.DatapointBatch {
	var (
		groups    [][]ndp.DatapointBatch
		current   []ndp.DatapointBatch
		remaining = budget
	)

	flush := func() {
		if len(current) > 0 {
			groups = append(groups, current)
			current = nil
			remaining = budget
		}
	}

	for _, batch := range batches {
		points := batch.Datapoints

		for len(points) > 0 {
			if remaining == 0 {
				flush()
			}

			take := len(points)
			if take > remaining {
				take = remaining
			}

			current = append(current, ndp.DatapointBatch{
				ID:         batch.ID,
				ExternalID: batch.ExternalID,
				Datapoints: points[:take],
			})
			points = points[take:]
			remaining -= take
		}
	}

	flush()

	return groups
}

// Retrieve fetches datapoints for many series concurrently. Each series is
// walked cursor by cursor until its range or limit is exhausted. Results
// are returned in query order.
func (c *DatapointsClient) Retrieve(ctx context.Context, queries []ndp.DatapointsQuery) ([]ndp.DatapointsResult, error) {
	opts := c.client.readOptions()
	opts.ChunkSize = 1 // one cursor walk per worker

	return ndp.Execute(ctx, queries, func(ctx context.Context, chunk []ndp.DatapointsQuery) ([]ndp.DatapointsResult, error) {
		result, err := c.retrieveSeries(ctx, chunk[0])
		if err != nil {
			return nil, err
		}

		return []ndp.DatapointsResult{*result}, nil
	}, opts)
}

// retrieveSeries walks one series' cursor chain, accumulating datapoints
// until the range ends or the query limit is reached.
func (c *DatapointsClient) retrieveSeries(ctx context.Context, query ndp.DatapointsQuery) (*ndp.DatapointsResult, error) {
	var accumulated ndp.DatapointsResult

	remaining := query.Limit
	cursor := query.Cursor

	for {
		page := query
		page.Cursor = cursor
		page.Limit = constants.DefaultDatapointReadLimit

		if remaining > 0 && remaining < page.Limit {
			page.Limit = remaining
		}

		items, err := postItems[ndp.DatapointsQuery, ndp.DatapointsResult](
			ctx, c.client.http, c.client.path("/timeseries/data/list"), []ndp.DatapointsQuery{page})
		if err != nil {
			return nil, err
		}

		if len(items) == 0 {
			break
		}

		result := items[0]
		accumulated.ID = result.ID
		accumulated.ExternalID = result.ExternalID
		accumulated.IsString = result.IsString
		accumulated.Unit = result.Unit
		accumulated.Datapoints = append(accumulated.Datapoints, result.Datapoints...)

		if remaining > 0 {
			remaining -= len(result.Datapoints)
			if remaining <= 0 {
				break
			}
		}

		if result.NextCursor == "" {
			break
		}

		cursor = result.NextCursor
	}

	return &accumulated, nil
}

// latestRequest asks for the most recent datapoint before a timestamp.
type latestRequest struct {
	ID         int64         `json:"id,omitempty"`
	ExternalID string        `json:"externalId,omitempty"`
	Before     ndp.Timestamp `json:"before,omitempty"`
}

// Latest fetches the most recent datapoint of each series before the
// query's End. Results are returned in query order.
func (c *DatapointsClient) Latest(ctx context.Context, queries []ndp.DatapointsQuery) ([]ndp.DatapointsResult, error) {
	requests := make([]latestRequest, len(queries))
	for i, q := range queries {
		requests[i] = latestRequest{ID: q.ID, ExternalID: q.ExternalID, Before: q.End}
	}

	results, err := ndp.Execute(ctx, requests, func(ctx context.Context, chunk []latestRequest) ([]ndp.DatapointsResult, error) {
		return postItems[latestRequest, ndp.DatapointsResult](
			ctx, c.client.http, c.client.path("/timeseries/data/latest"), chunk)
	}, c.client.readOptions())
	if err != nil {
		return nil, err
	}

	ids := make([]ndp.Identifier, len(queries))
	for i, q := range queries {
		ids[i] = ndp.Identifier{ID: q.ID, ExternalID: q.ExternalID}
	}

	return orderByIdentifier(ids, results, func(r ndp.DatapointsResult) (int64, string) {
		return r.ID, r.ExternalID
	}), nil
}

// DeleteRanges deletes datapoints inside each range.
func (c *DatapointsClient) DeleteRanges(ctx context.Context, ranges []ndp.DatapointsDeleteRange) error {
	_, err := ndp.Execute(ctx, ranges, func(ctx context.Context, chunk []ndp.DatapointsDeleteRange) ([]struct{}, error) {
		err := postDiscard(ctx, c.client.http, c.client.path("/timeseries/data/delete"),
			ndp.ItemsRequest[ndp.DatapointsDeleteRange]{Items: chunk})
		if err != nil {
			return nil, err
		}

		return nil, nil
	}, c.client.writeOptions())

	return err
}
