package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/nordlys-io/ndp-client/internal/constants"
	"github.com/nordlys-io/ndp-client/pkg/ndp"
)

// WorkflowsClient implements workflow operations.
type WorkflowsClient struct {
	client *Client
}

// Upsert creates or replaces workflow definitions.
func (c *WorkflowsClient) Upsert(ctx context.Context, workflows []ndp.Workflow) ([]ndp.Workflow, error) {
	return createItems[ndp.Workflow, ndp.Workflow](ctx, c.client, c.client.path("/workflows"), workflows)
}

// Retrieve fetches one workflow by external ID.
func (c *WorkflowsClient) Retrieve(ctx context.Context, externalID string) (*ndp.Workflow, error) {
	if externalID == "" {
		return nil, ndp.ErrIdentifierRequired
	}

	resp, err := c.client.http.Get(ctx, c.client.path("/workflows/"+url.PathEscape(externalID)), nil)
	if err != nil {
		return nil, fmt.Errorf("getting workflow %s: %w", externalID, err)
	}

	var workflow ndp.Workflow
	if err := json.Unmarshal(resp.Body, &workflow); err != nil {
		return nil, fmt.Errorf("parsing workflow: %w", err)
	}

	return &workflow, nil
}

// Delete deletes workflows by external ID.
func (c *WorkflowsClient) Delete(ctx context.Context, externalIDs []string) error {
	ids := make([]ndp.Identifier, len(externalIDs))
	for i, externalID := range externalIDs {
		ids[i] = ndp.ExternalIDRef(externalID)
	}

	return deleteItems(ctx, c.client, c.client.path("/workflows/delete"), ids)
}

// List fetches one page of workflows.
func (c *WorkflowsClient) List(ctx context.Context, params *ndp.QueryParams) (*ndp.ListResponse[ndp.Workflow], error) {
	return pager[ndp.Workflow]{http: c.client.http}.ListWithPath(ctx, c.client.path("/workflows"), params)
}

// triggerRequest carries the optional input of a workflow run.
type triggerRequest struct {
	Input ndp.RawJSON `json:"input,omitempty"`
}

// Trigger starts an execution of a workflow.
func (c *WorkflowsClient) Trigger(ctx context.Context, externalID string, input ndp.RawJSON) (*ndp.WorkflowExecution, error) {
	if externalID == "" {
		return nil, ndp.ErrIdentifierRequired
	}

	path := c.client.path("/workflows/" + url.PathEscape(externalID) + "/run")

	resp, err := c.client.http.Post(ctx, path, triggerRequest{Input: input})
	if err != nil {
		return nil, fmt.Errorf("triggering workflow %s: %w", externalID, err)
	}

	var execution ndp.WorkflowExecution
	if err := json.Unmarshal(resp.Body, &execution); err != nil {
		return nil, fmt.Errorf("parsing execution: %w", err)
	}

	return &execution, nil
}

// GetExecution fetches one execution by ID.
func (c *WorkflowsClient) GetExecution(ctx context.Context, executionID string) (*ndp.WorkflowExecution, error) {
	resp, err := c.client.http.Get(ctx, c.client.path("/workflows/executions/"+url.PathEscape(executionID)), nil)
	if err != nil {
		return nil, fmt.Errorf("getting execution %s: %w", executionID, err)
	}

	var execution ndp.WorkflowExecution
	if err := json.Unmarshal(resp.Body, &execution); err != nil {
		return nil, fmt.Errorf("parsing execution: %w", err)
	}

	return &execution, nil
}

// PollExecution polls an execution until it reaches a terminal state. An
// execution that ends failed returns the execution with ErrExecutionFailed.
func (c *WorkflowsClient) PollExecution(ctx context.Context, executionID string) (*ndp.WorkflowExecution, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultPollTimeout)
	defer cancel()

	ticker := time.NewTicker(constants.DefaultPollInterval)
	defer ticker.Stop()

	for {
		execution, err := c.GetExecution(ctx, executionID)
		if err != nil {
			return nil, err
		}

		switch execution.Status {
		case constants.StateCompleted:
			return execution, nil
		case constants.StateFailed:
			return execution, fmt.Errorf("execution %s: %s: %w", executionID, execution.Reason, ndp.ErrExecutionFailed)
		}

		select {
		case <-ctx.Done():
			return execution, fmt.Errorf("polling execution %s: %w", executionID, ctx.Err())
		case <-ticker.C:
		}
	}
}
