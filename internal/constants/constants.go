package constants

import "time"

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for a single HTTP request.
	DefaultHTTPTimeout = 30 * time.Second

	// ShortHTTPTimeout is used for quick operations such as endpoint probes.
	ShortHTTPTimeout = 10 * time.Second
)

// Transport-level retry limits (idempotent requests only).
const (
	// DefaultTransportRetryMax is the default retry count inside the HTTP layer.
	DefaultTransportRetryMax = 3

	// DefaultTransportRetryWaitMin is the minimum transport retry wait.
	DefaultTransportRetryWaitMin = 1 * time.Second

	// DefaultTransportRetryWaitMax is the maximum transport retry wait.
	DefaultTransportRetryWaitMax = 10 * time.Second
)

// Executor defaults. These are operational tuning values, not invariants;
// every one of them is overridable through ndp.RetryPolicy and
// ndp.ExecuteOptions.
const (
	// DefaultMaxWorkers bounds concurrent chunk requests per logical call.
	DefaultMaxWorkers = 5

	// DefaultMaxRetries is the per-chunk retry budget for transient failures.
	DefaultMaxRetries = 5

	// DefaultBackoffInitial is the first retry delay.
	DefaultBackoffInitial = 250 * time.Millisecond

	// DefaultBackoffMultiplier is the backoff growth factor.
	DefaultBackoffMultiplier = 2.0

	// DefaultBackoffMax caps the delay between retries.
	DefaultBackoffMax = 10 * time.Second
)

// Chunk-size budgets per request kind.
const (
	// DefaultResourceChunkSize is the item budget for resource writes
	// (asset, event, time series create/update/delete).
	DefaultResourceChunkSize = 1000

	// DefaultRetrieveChunkSize is the identifier budget for by-ID retrieval.
	DefaultRetrieveChunkSize = 1000

	// DefaultDatapointInsertChunkSize is the datapoint budget for one
	// insert request, summed across series.
	DefaultDatapointInsertChunkSize = 100000

	// DefaultDatapointReadLimit is the datapoint budget for one read page.
	DefaultDatapointReadLimit = 10000
)

// Pagination limits.
const (
	// DefaultListLimit is the default page size for list requests.
	DefaultListLimit = 100

	// MaxListLimit is the largest page size the API accepts.
	MaxListLimit = 1000
)

// Polling.
const (
	// DefaultPollInterval is used when polling transformation jobs and
	// workflow executions.
	DefaultPollInterval = 2 * time.Second

	// DefaultPollTimeout bounds a PollUntilComplete call.
	DefaultPollTimeout = 10 * time.Minute
)

// Job and execution terminal states.
const (
	StateCompleted = "Completed"
	StateFailed    = "Failed"
	StateRunning   = "Running"
	StateQueued    = "Queued"
)

// Cache defaults.
const (
	// DefaultCacheSize is the default entry capacity of the memory cache.
	DefaultCacheSize = 1000

	// DefaultCacheTTL is the default lifetime of a cached response.
	DefaultCacheTTL = 5 * time.Minute
)

// Circuit breaker defaults.
const (
	// CircuitBreakerThreshold is the consecutive-failure count that opens
	// the circuit.
	CircuitBreakerThreshold = 5

	// CircuitBreakerTimeout is how long the circuit stays open.
	CircuitBreakerTimeout = 30 * time.Second

	// CircuitBreakerSuccessThreshold closes a half-open circuit.
	CircuitBreakerSuccessThreshold = 2
)

// API versioning.
const (
	// APIVersion is sent on every request via the api-version header.
	APIVersion = "v1"
)
