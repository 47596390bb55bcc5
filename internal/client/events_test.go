package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nordlys-io/ndp-client/pkg/ndp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventsClient_Create(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/projects/test/events", r.URL.Path)

		var req ndp.ItemsRequest[ndp.EventCreate]

		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Items, 1)
		assert.Equal(t, "alarm", req.Items[0].Type)

		_ = json.NewEncoder(w).Encode(ndp.ItemsResponse[ndp.Event]{
			Items: []ndp.Event{{ID: 5, Type: req.Items[0].Type}},
		})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	events, err := client.Events().Create(context.Background(), []ndp.EventCreate{
		{Type: "alarm", StartTime: 1000, AssetIDs: []int64{42}},
	})

	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, int64(5), events[0].ID)
}

func TestEventsClient_Retrieve(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/projects/test/events/byids", r.URL.Path)

		var req ndp.ItemsRequest[ndp.Identifier]

		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		items := make([]ndp.Event, len(req.Items))
		for i, ident := range req.Items {
			items[i] = ndp.Event{ID: ident.ID}
		}

		_ = json.NewEncoder(w).Encode(ndp.ItemsResponse[ndp.Event]{Items: items})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	events, err := client.Events().Retrieve(context.Background(), []ndp.Identifier{
		ndp.IDRef(1), ndp.IDRef(2),
	})

	require.NoError(t, err)
	assert.Len(t, events, 2)
}

func TestEventsClient_ListAll(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/projects/test/events", r.URL.Path)

		if r.URL.Query().Get("cursor") == "" {
			_ = json.NewEncoder(w).Encode(ndp.ListResponse[ndp.Event]{
				Items:      []ndp.Event{{ID: 1}},
				NextCursor: "p2",
			})

			return
		}

		_ = json.NewEncoder(w).Encode(ndp.ListResponse[ndp.Event]{
			Items: []ndp.Event{{ID: 2}},
		})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	events, err := client.Events().ListAll(context.Background(), nil).All()
	require.NoError(t, err)
	assert.Len(t, events, 2)
}
