package ndp

import (
	"context"
	"time"
)

// AssetsClient operates on assets.
type AssetsClient interface {
	// Create creates assets in bounded concurrent chunks. On partial
	// failure the error is a *PartialError[AssetCreate].
	Create(ctx context.Context, assets []AssetCreate) ([]Asset, error)

	// CreateHierarchy creates an asset forest level by level so that no
	// child is requested before its parent is confirmed.
	CreateHierarchy(ctx context.Context, assets []AssetCreate) ([]Asset, error)

	// Retrieve fetches assets by identifier, preserving input order.
	Retrieve(ctx context.Context, ids []Identifier) ([]Asset, error)

	Update(ctx context.Context, updates []AssetUpdate) ([]Asset, error)
	Delete(ctx context.Context, ids []Identifier) error
	List(ctx context.Context, params *QueryParams) (*ListResponse[Asset], error)
	ListAll(ctx context.Context, params *QueryParams) *PaginationIterator[Asset]
	Search(ctx context.Context, query string, limit int) ([]Asset, error)

	// Filter fetches one page of assets matching exact-match properties.
	Filter(ctx context.Context, filter *AssetFilter, params *QueryParams) (*ListResponse[Asset], error)
}

// EventsClient operates on events.
type EventsClient interface {
	Create(ctx context.Context, events []EventCreate) ([]Event, error)
	Retrieve(ctx context.Context, ids []Identifier) ([]Event, error)
	Update(ctx context.Context, updates []EventUpdate) ([]Event, error)
	Delete(ctx context.Context, ids []Identifier) error
	List(ctx context.Context, params *QueryParams) (*ListResponse[Event], error)
	ListAll(ctx context.Context, params *QueryParams) *PaginationIterator[Event]
}

// TimeSeriesClient operates on time series metadata.
type TimeSeriesClient interface {
	Create(ctx context.Context, series []TimeSeriesCreate) ([]TimeSeries, error)
	Retrieve(ctx context.Context, ids []Identifier) ([]TimeSeries, error)
	Update(ctx context.Context, updates []TimeSeriesUpdate) ([]TimeSeries, error)
	Delete(ctx context.Context, ids []Identifier) error
	List(ctx context.Context, params *QueryParams) (*ListResponse[TimeSeries], error)
	ListAll(ctx context.Context, params *QueryParams) *PaginationIterator[TimeSeries]
	Search(ctx context.Context, query string, limit int) ([]TimeSeries, error)
}

// DatapointsClient operates on datapoints.
type DatapointsClient interface {
	// Insert writes datapoints, splitting the total datapoint count into
	// bounded requests executed concurrently.
	Insert(ctx context.Context, batches []DatapointBatch) error

	// Retrieve fetches datapoints for many series concurrently, walking
	// per-series cursors until each query's range is exhausted. Results
	// are returned in query order.
	Retrieve(ctx context.Context, queries []DatapointsQuery) ([]DatapointsResult, error)

	// Latest fetches the most recent datapoint before each query's End.
	Latest(ctx context.Context, queries []DatapointsQuery) ([]DatapointsResult, error)

	DeleteRanges(ctx context.Context, ranges []DatapointsDeleteRange) error
}

// DataSetsClient operates on data sets.
type DataSetsClient interface {
	Create(ctx context.Context, sets []DataSetCreate) ([]DataSet, error)
	Retrieve(ctx context.Context, ids []Identifier) ([]DataSet, error)
	Update(ctx context.Context, updates []DataSetUpdate) ([]DataSet, error)
	List(ctx context.Context, params *QueryParams) (*ListResponse[DataSet], error)
}

// TransformationsClient operates on transformations and their jobs.
type TransformationsClient interface {
	Create(ctx context.Context, transformations []TransformationCreate) ([]Transformation, error)
	Retrieve(ctx context.Context, ids []Identifier) ([]Transformation, error)
	Update(ctx context.Context, updates []TransformationUpdate) ([]Transformation, error)
	Delete(ctx context.Context, ids []Identifier) error
	List(ctx context.Context, params *QueryParams) (*ListResponse[Transformation], error)

	// Run starts a transformation and returns the created job.
	Run(ctx context.Context, id Identifier) (*TransformationJob, error)

	// GetJob fetches one job by ID.
	GetJob(ctx context.Context, jobID int64) (*TransformationJob, error)

	// PollJob polls a job until it reaches a terminal state.
	PollJob(ctx context.Context, jobID int64) (*TransformationJob, error)
}

// WorkflowsClient operates on workflows and their executions.
type WorkflowsClient interface {
	Upsert(ctx context.Context, workflows []Workflow) ([]Workflow, error)
	Retrieve(ctx context.Context, externalID string) (*Workflow, error)
	Delete(ctx context.Context, externalIDs []string) error
	List(ctx context.Context, params *QueryParams) (*ListResponse[Workflow], error)

	// Trigger starts an execution of a workflow.
	Trigger(ctx context.Context, externalID string, input RawJSON) (*WorkflowExecution, error)

	// GetExecution fetches one execution by ID.
	GetExecution(ctx context.Context, executionID string) (*WorkflowExecution, error)

	// PollExecution polls an execution until it reaches a terminal state.
	PollExecution(ctx context.Context, executionID string) (*WorkflowExecution, error)
}

// CoreClients groups the typed-resource clients.
type CoreClients interface {
	Assets() AssetsClient
	Events() EventsClient
	TimeSeries() TimeSeriesClient
	Datapoints() DatapointsClient
	DataSets() DataSetsClient
}

// PipelineClients groups the data-pipeline clients.
type PipelineClients interface {
	Transformations() TransformationsClient
	Workflows() WorkflowsClient
}

// ProjectClient exposes project-level information.
type ProjectClient interface {
	// GetProjectInfo fetches metadata about the configured project.
	GetProjectInfo(ctx context.Context) (*ProjectInfo, error)
}

// Client is the full API client surface.
type Client interface {
	CoreClients
	PipelineClients
	ProjectClient
}

// ProjectInfo describes the configured project.
type ProjectInfo struct {
	Name      string `json:"name"      yaml:"name"`
	URLName   string `json:"urlName"   yaml:"urlName"`
	DataModel string `json:"dataModel,omitempty" yaml:"dataModel,omitempty"`
}

// Logger is the interface for structured logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config represents client configuration for building a Client.
//
// # Authentication precedence
//
//  1. AccessToken: used directly as a static Bearer token.
//  2. ClientID/ClientSecret: OAuth2 client_credentials grant against
//     TokenURL (derived from BaseURL when empty).
//  3. No credentials: requests are sent without authentication.
//
// # Concurrency and retries
//
// MaxWorkers and the retry fields seed the defaults used by every chunked
// operation; individual calls can override them. They are explicit
// configuration, not mutable process-global state.
type Config struct {
	// BaseURL is the API base, e.g. "https://api.nordlys.io".
	// ndpclient.New normalizes it by trimming a trailing slash and
	// defaulting the scheme to https.
	BaseURL string `yaml:"baseUrl"`

	// Project is the project the client operates in; every resource path
	// is scoped under it.
	Project string `yaml:"project"`

	// AccessToken, if set, is used directly as a Bearer token.
	AccessToken string `yaml:"accessToken,omitempty"`

	// ClientID and ClientSecret select the client_credentials grant.
	ClientID     string `yaml:"clientId,omitempty"`
	ClientSecret string `yaml:"clientSecret,omitempty"`

	// TokenURL is the OAuth2 token endpoint. Empty means derived from
	// BaseURL as "<base>/oauth/token".
	TokenURL string `yaml:"tokenUrl,omitempty"`

	// Scopes are requested with the client_credentials grant.
	Scopes []string `yaml:"scopes,omitempty"`

	// MaxWorkers bounds concurrent chunk requests per logical call.
	// Zero means the documented default. Keep it in proportion to the
	// HTTP connection pool size; workers beyond the pool stall waiting
	// for a free connection.
	MaxWorkers int `yaml:"maxWorkers,omitempty"`

	// RetryMax, RetryWaitMin, and RetryWaitMax tune transport retries
	// for idempotent requests.
	RetryMax     int           `yaml:"retryMax,omitempty"`
	RetryWaitMin time.Duration `yaml:"retryWaitMin,omitempty"`
	RetryWaitMax time.Duration `yaml:"retryWaitMax,omitempty"`

	// HTTPTimeout bounds each HTTP request. A request cut off by this
	// timeout after it was sent yields an unknown outcome, not a failure.
	HTTPTimeout time.Duration `yaml:"httpTimeout,omitempty"`

	// Debug enables verbose request/response logging through Logger.
	Debug bool `yaml:"debug,omitempty"`

	// Logger receives structured log records. Nil disables logging.
	Logger Logger `yaml:"-"`

	// UserAgent overrides the default User-Agent header.
	UserAgent string `yaml:"userAgent,omitempty"`

	// Cache configures optional GET response caching.
	Cache *CacheConfig `yaml:"-"`
}
