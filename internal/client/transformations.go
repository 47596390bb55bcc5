package client

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nordlys-io/ndp-client/internal/constants"
	"github.com/nordlys-io/ndp-client/pkg/ndp"
)

// TransformationsClient implements transformation operations.
type TransformationsClient struct {
	client *Client
}

func transformationKey(t ndp.Transformation) (int64, string) {
	return t.ID, t.ExternalID
}

// Create creates transformations.
func (c *TransformationsClient) Create(ctx context.Context, transformations []ndp.TransformationCreate) ([]ndp.Transformation, error) {
	return createItems[ndp.TransformationCreate, ndp.Transformation](ctx, c.client, c.client.path("/transformations"), transformations)
}

// Retrieve fetches transformations by identifier, preserving input order.
func (c *TransformationsClient) Retrieve(ctx context.Context, ids []ndp.Identifier) ([]ndp.Transformation, error) {
	return retrieveItems(ctx, c.client, c.client.path("/transformations/byids"), ids, transformationKey)
}

// Update patches transformations.
func (c *TransformationsClient) Update(ctx context.Context, updates []ndp.TransformationUpdate) ([]ndp.Transformation, error) {
	return updateItems[ndp.TransformationUpdate, ndp.Transformation](ctx, c.client, c.client.path("/transformations/update"), updates)
}

// Delete deletes transformations by identifier.
func (c *TransformationsClient) Delete(ctx context.Context, ids []ndp.Identifier) error {
	return deleteItems(ctx, c.client, c.client.path("/transformations/delete"), ids)
}

// List fetches one page of transformations.
func (c *TransformationsClient) List(ctx context.Context, params *ndp.QueryParams) (*ndp.ListResponse[ndp.Transformation], error) {
	return pager[ndp.Transformation]{http: c.client.http}.ListWithPath(ctx, c.client.path("/transformations"), params)
}

// Run starts a transformation and returns the created job.
func (c *TransformationsClient) Run(ctx context.Context, id ndp.Identifier) (*ndp.TransformationJob, error) {
	if id.IsZero() {
		return nil, ndp.ErrIdentifierRequired
	}

	resp, err := c.client.http.Post(ctx, c.client.path("/transformations/run"), id)
	if err != nil {
		return nil, fmt.Errorf("running transformation %s: %w", id, err)
	}

	var job ndp.TransformationJob
	if err := json.Unmarshal(resp.Body, &job); err != nil {
		return nil, fmt.Errorf("parsing job: %w", err)
	}

	return &job, nil
}

// GetJob fetches one job by ID.
func (c *TransformationsClient) GetJob(ctx context.Context, jobID int64) (*ndp.TransformationJob, error) {
	resp, err := c.client.http.Get(ctx, c.client.path(fmt.Sprintf("/transformations/jobs/%d", jobID)), nil)
	if err != nil {
		return nil, fmt.Errorf("getting job %d: %w", jobID, err)
	}

	var job ndp.TransformationJob
	if err := json.Unmarshal(resp.Body, &job); err != nil {
		return nil, fmt.Errorf("parsing job: %w", err)
	}

	return &job, nil
}

// PollJob polls a job until it reaches a terminal state. A job that ends
// in the failed state returns the job together with ErrJobFailed.
func (c *TransformationsClient) PollJob(ctx context.Context, jobID int64) (*ndp.TransformationJob, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultPollTimeout)
	defer cancel()

	ticker := time.NewTicker(constants.DefaultPollInterval)
	defer ticker.Stop()

	for {
		job, err := c.GetJob(ctx, jobID)
		if err != nil {
			return nil, err
		}

		switch job.Status {
		case constants.StateCompleted:
			return job, nil
		case constants.StateFailed:
			return job, fmt.Errorf("job %d: %s: %w", jobID, job.Error, ndp.ErrJobFailed)
		}

		select {
		case <-ctx.Done():
			return job, fmt.Errorf("polling job %d: %w", jobID, ctx.Err())
		case <-ticker.C:
		}
	}
}
