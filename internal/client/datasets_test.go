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

func TestDataSetsClient_Create(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/projects/test/datasets", r.URL.Path)

		var req ndp.ItemsRequest[ndp.DataSetCreate]

		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Items, 1)
		assert.Equal(t, "scada-raw", req.Items[0].ExternalID)
		assert.True(t, req.Items[0].WriteProtected)

		_ = json.NewEncoder(w).Encode(ndp.ItemsResponse[ndp.DataSet]{
			Items: []ndp.DataSet{{ID: 3, ExternalID: req.Items[0].ExternalID, Name: req.Items[0].Name}},
		})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	sets, err := client.DataSets().Create(context.Background(), []ndp.DataSetCreate{
		{ExternalID: "scada-raw", Name: "SCADA raw", WriteProtected: true},
	})

	require.NoError(t, err)
	require.Len(t, sets, 1)
	assert.Equal(t, int64(3), sets[0].ID)
}

func TestDataSetsClient_List(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/projects/test/datasets", r.URL.Path)
		assert.Equal(t, "50", r.URL.Query().Get("limit"))

		_ = json.NewEncoder(w).Encode(ndp.ListResponse[ndp.DataSet]{
			Items:      []ndp.DataSet{{ID: 3, Name: "SCADA raw"}},
			NextCursor: "p2",
		})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	page, err := client.DataSets().List(context.Background(), &ndp.QueryParams{Limit: 50})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "p2", page.NextCursor)
}
