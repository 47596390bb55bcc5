package client

import (
	"context"

	"github.com/nordlys-io/ndp-client/pkg/ndp"
)

// EventsClient implements event operations.
type EventsClient struct {
	client *Client
}

func eventKey(e ndp.Event) (int64, string) {
	return e.ID, e.ExternalID
}

// Create creates events in bounded concurrent chunks.
func (c *EventsClient) Create(ctx context.Context, events []ndp.EventCreate) ([]ndp.Event, error) {
	return createItems[ndp.EventCreate, ndp.Event](ctx, c.client, c.client.path("/events"), events)
}

// Retrieve fetches events by identifier, preserving input order.
func (c *EventsClient) Retrieve(ctx context.Context, ids []ndp.Identifier) ([]ndp.Event, error) {
	return retrieveItems(ctx, c.client, c.client.path("/events/byids"), ids, eventKey)
}

// Update patches events in bounded concurrent chunks.
func (c *EventsClient) Update(ctx context.Context, updates []ndp.EventUpdate) ([]ndp.Event, error) {
	return updateItems[ndp.EventUpdate, ndp.Event](ctx, c.client, c.client.path("/events/update"), updates)
}

// Delete deletes events by identifier.
func (c *EventsClient) Delete(ctx context.Context, ids []ndp.Identifier) error {
	return deleteItems(ctx, c.client, c.client.path("/events/delete"), ids)
}

// List fetches one page of events.
func (c *EventsClient) List(ctx context.Context, params *ndp.QueryParams) (*ndp.ListResponse[ndp.Event], error) {
	return pager[ndp.Event]{http: c.client.http}.ListWithPath(ctx, c.client.path("/events"), params)
}

// ListAll iterates over every event page.
func (c *EventsClient) ListAll(ctx context.Context, params *ndp.QueryParams) *ndp.PaginationIterator[ndp.Event] {
	return ndp.NewPaginationIterator(ctx, pager[ndp.Event]{http: c.client.http}, c.client.path("/events"), params)
}
