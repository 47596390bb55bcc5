// Package client implements the full API client against the REST endpoints.
package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nordlys-io/ndp-client/internal/auth"
	"github.com/nordlys-io/ndp-client/internal/constants"
	ndphttp "github.com/nordlys-io/ndp-client/internal/http"
	"github.com/nordlys-io/ndp-client/pkg/ndp"
)

// Client provides access to every resource endpoint of one project.
type Client struct {
	config   *ndp.Config
	http     *ndphttp.Client
	basePath string

	assets          *AssetsClient
	events          *EventsClient
	timeSeries      *TimeSeriesClient
	datapoints      *DatapointsClient
	dataSets        *DataSetsClient
	transformations *TransformationsClient
	workflows       *WorkflowsClient
}

// New creates a client from validated configuration.
func New(config *ndp.Config) (*Client, error) {
	tokenManager := selectTokenManager(config)

	opts := []ndphttp.Option{}

	if config.Logger != nil {
		opts = append(opts, ndphttp.WithLogger(config.Logger))
	}

	if config.Debug {
		opts = append(opts, ndphttp.WithDebug(true))
	}

	if config.UserAgent != "" {
		opts = append(opts, ndphttp.WithUserAgent(config.UserAgent))
	}

	if config.RetryMax > 0 {
		opts = append(opts, ndphttp.WithRetryConfig(config.RetryMax, config.RetryWaitMin, config.RetryWaitMax))
	}

	if config.HTTPTimeout > 0 {
		opts = append(opts, ndphttp.WithHTTPTimeout(config.HTTPTimeout))
	}

	if config.Cache != nil {
		cacheConfig := *config.Cache

		if cacheConfig.Options == nil {
			cacheConfig.Options = ndp.DefaultCacheOptions()
		} else {
			options := *cacheConfig.Options
			cacheConfig.Options = &options
		}

		// Shared backends namespace keys by project unless told otherwise.
		if cacheConfig.Options.KeyPrefix == "" {
			cacheConfig.Options.KeyPrefix = config.Project
		}

		cache, err := ndp.NewCacheFromConfig(&cacheConfig)
		if err != nil {
			return nil, fmt.Errorf("creating cache: %w", err)
		}

		ttl := constants.DefaultCacheTTL
		if cacheConfig.Options.DefaultTTL > 0 {
			ttl = cacheConfig.Options.DefaultTTL
		}

		opts = append(opts, ndphttp.WithCache(cache, ttl))
	}

	client := &Client{
		config:   config,
		http:     ndphttp.NewClient(config.BaseURL, tokenManager, opts...),
		basePath: "/api/" + constants.APIVersion + "/projects/" + config.Project,
	}

	client.assets = &AssetsClient{client: client}
	client.events = &EventsClient{client: client}
	client.timeSeries = &TimeSeriesClient{client: client}
	client.datapoints = &DatapointsClient{client: client}
	client.dataSets = &DataSetsClient{client: client}
	client.transformations = &TransformationsClient{client: client}
	client.workflows = &WorkflowsClient{client: client}

	return client, nil
}

func selectTokenManager(config *ndp.Config) auth.TokenManager {
	if config.AccessToken != "" {
		return auth.NewStaticTokenManager(config.AccessToken)
	}

	if config.ClientID != "" {
		return auth.NewClientCredentialsTokenManager(&auth.ClientCredentialsConfig{
			TokenURL:     config.TokenURL,
			ClientID:     config.ClientID,
			ClientSecret: config.ClientSecret,
			Scopes:       config.Scopes,
		})
	}

	return nil
}

// Assets returns the assets client.
func (c *Client) Assets() ndp.AssetsClient { return c.assets }

// Events returns the events client.
func (c *Client) Events() ndp.EventsClient { return c.events }

// TimeSeries returns the time series client.
func (c *Client) TimeSeries() ndp.TimeSeriesClient { return c.timeSeries }

// Datapoints returns the datapoints client.
func (c *Client) Datapoints() ndp.DatapointsClient { return c.datapoints }

// DataSets returns the data sets client.
func (c *Client) DataSets() ndp.DataSetsClient { return c.dataSets }

// Transformations returns the transformations client.
func (c *Client) Transformations() ndp.TransformationsClient { return c.transformations }

// Workflows returns the workflows client.
func (c *Client) Workflows() ndp.WorkflowsClient { return c.workflows }

// GetProjectInfo fetches metadata about the configured project.
func (c *Client) GetProjectInfo(ctx context.Context) (*ndp.ProjectInfo, error) {
	resp, err := c.http.Get(ctx, c.basePath, nil)
	if err != nil {
		return nil, fmt.Errorf("getting project info: %w", err)
	}

	var info ndp.ProjectInfo
	if err := json.Unmarshal(resp.Body, &info); err != nil {
		return nil, fmt.Errorf("parsing project info: %w", err)
	}

	return &info, nil
}

// path joins a resource path onto the project base path.
func (c *Client) path(resource string) string {
	return c.basePath + resource
}

// writeOptions configures the executor for multi-item writes.
func (c *Client) writeOptions() ndp.ExecuteOptions {
	return ndp.ExecuteOptions{
		ChunkSize:  constants.DefaultResourceChunkSize,
		MaxWorkers: c.config.MaxWorkers,
	}
}

// readOptions configures the executor for by-identifier reads, which are
// always safe to retry.
func (c *Client) readOptions() ndp.ExecuteOptions {
	return ndp.ExecuteOptions{
		ChunkSize:  constants.DefaultRetrieveChunkSize,
		MaxWorkers: c.config.MaxWorkers,
		Idempotent: true,
	}
}
