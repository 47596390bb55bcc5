package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/nordlys-io/ndp-client/pkg/ndp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransformationsClient_Create(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/projects/test/transformations", r.URL.Path)

		var req ndp.ItemsRequest[ndp.TransformationCreate]

		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Items, 1)
		assert.Equal(t, "select * from staging", req.Items[0].Query)

		_ = json.NewEncoder(w).Encode(ndp.ItemsResponse[ndp.Transformation]{
			Items: []ndp.Transformation{{ID: 9, Name: req.Items[0].Name, Query: req.Items[0].Query}},
		})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	transformations, err := client.Transformations().Create(context.Background(), []ndp.TransformationCreate{
		{Name: "load-assets", Query: "select * from staging"},
	})

	require.NoError(t, err)
	require.Len(t, transformations, 1)
	assert.Equal(t, int64(9), transformations[0].ID)
}

func TestTransformationsClient_Run(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/projects/test/transformations/run", r.URL.Path)

		var ident ndp.Identifier

		require.NoError(t, json.NewDecoder(r.Body).Decode(&ident))
		assert.Equal(t, "load-assets", ident.ExternalID)

		_ = json.NewEncoder(w).Encode(ndp.TransformationJob{ID: 100, Status: "Queued"})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	job, err := client.Transformations().Run(context.Background(), ndp.ExternalIDRef("load-assets"))
	require.NoError(t, err)
	assert.Equal(t, int64(100), job.ID)
	assert.Equal(t, "Queued", job.Status)
}

func TestTransformationsClient_RunRequiresIdentifier(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, "http://localhost")

	_, err := client.Transformations().Run(context.Background(), ndp.Identifier{})
	assert.ErrorIs(t, err, ndp.ErrIdentifierRequired)
}

func TestTransformationsClient_GetJob(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/projects/test/transformations/jobs/100", r.URL.Path)
		assert.Equal(t, "GET", r.Method)

		_ = json.NewEncoder(w).Encode(ndp.TransformationJob{ID: 100, Status: "Running"})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	job, err := client.Transformations().GetJob(context.Background(), 100)
	require.NoError(t, err)
	assert.Equal(t, "Running", job.Status)
}

func TestTransformationsClient_PollJobCompleted(t *testing.T) {
	t.Parallel()

	var polls atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		polls.Add(1)
		_ = json.NewEncoder(w).Encode(ndp.TransformationJob{ID: 100, Status: "Completed"})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	job, err := client.Transformations().PollJob(context.Background(), 100)
	require.NoError(t, err)
	assert.Equal(t, "Completed", job.Status)
	assert.Equal(t, int32(1), polls.Load())
}

func TestTransformationsClient_PollJobFailed(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(ndp.TransformationJob{
			ID:     100,
			Status: "Failed",
			Error:  "syntax error",
		})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	job, err := client.Transformations().PollJob(context.Background(), 100)
	require.Error(t, err)
	assert.ErrorIs(t, err, ndp.ErrJobFailed)
	assert.Contains(t, err.Error(), "syntax error")
	require.NotNil(t, job)
	assert.Equal(t, "Failed", job.Status)
}
