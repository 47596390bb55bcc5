package ndp

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/nordlys-io/ndp-client/internal/constants"
)

// RetryPolicy controls per-chunk retry of transient failures. The zero
// value is not valid; start from DefaultRetryPolicy and override fields.
type RetryPolicy struct {
	// MaxRetries is the number of attempts after the initial one.
	MaxRetries int

	// InitialDelay is the delay before the first retry.
	InitialDelay time.Duration

	// Multiplier grows the delay between consecutive retries.
	Multiplier float64

	// MaxDelay caps the delay between retries.
	MaxDelay time.Duration

	// Jitter randomizes each delay to spread retry storms. Delays stay
	// within [delay*(1-Jitter), delay*(1+Jitter)].
	Jitter float64

	// RetryableStatuses lists the HTTP status codes treated as transient.
	RetryableStatuses []int
}

// DefaultRetryPolicy returns the process-wide default policy. The numbers
// are operational tuning values, not correctness invariants.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxRetries:        constants.DefaultMaxRetries,
		InitialDelay:      constants.DefaultBackoffInitial,
		Multiplier:        constants.DefaultBackoffMultiplier,
		MaxDelay:          constants.DefaultBackoffMax,
		Jitter:            0.25,
		RetryableStatuses: DefaultRetryableStatuses,
	}
}

func (p RetryPolicy) retryable(code int) bool {
	for _, c := range p.RetryableStatuses {
		if code == c {
			return true
		}
	}

	return false
}

func (p RetryPolicy) newBackOff(ctx context.Context) backoff.BackOff {
	expo := backoff.NewExponentialBackOff()
	expo.InitialInterval = p.InitialDelay
	expo.Multiplier = p.Multiplier
	expo.MaxInterval = p.MaxDelay
	expo.RandomizationFactor = p.Jitter
	expo.MaxElapsedTime = 0 // retry count is the only budget

	return backoff.WithContext(backoff.WithMaxRetries(expo, uint64(p.MaxRetries)), ctx)
}

// ExecuteOptions configures one chunked call. Zero fields fall back to the
// process-wide defaults in internal/constants.
type ExecuteOptions struct {
	// ChunkSize bounds the number of items per HTTP request.
	ChunkSize int

	// MaxWorkers bounds the number of chunk requests in flight.
	MaxWorkers int

	// Retry overrides the default retry policy.
	Retry *RetryPolicy

	// FailFast stops scheduling new chunks once a non-retryable failure
	// is observed. Chunks already in flight run to completion; chunks
	// never scheduled are classified failed without an attempt.
	FailFast bool

	// Idempotent declares that the server guarantees retrying this
	// operation cannot double-apply. When set, chunks with an ambiguous
	// outcome (response lost after send) are retried like transient
	// failures instead of being classified unknown immediately. This is
	// an external API contract the executor trusts, not verifies.
	Idempotent bool
}

func (o ExecuteOptions) withDefaults() ExecuteOptions {
	if o.ChunkSize <= 0 {
		o.ChunkSize = constants.DefaultResourceChunkSize
	}

	if o.MaxWorkers <= 0 {
		o.MaxWorkers = constants.DefaultMaxWorkers
	}

	if o.Retry == nil {
		policy := DefaultRetryPolicy()
		o.Retry = &policy
	}

	return o
}

// ChunkFunc performs one bounded-size request: at most ChunkSize items in,
// their results out. Implementations must return an error wrapping
// *RequestError for API failures and ErrAmbiguousResult for lost responses
// so the executor can classify outcomes.
type ChunkFunc[T, R any] func(ctx context.Context, items []T) ([]R, error)

// ChunkSlice splits items into ceil(len/size) chunks preserving order.
func ChunkSlice[T any](items []T, size int) [][]T {
	if size <= 0 || len(items) == 0 {
		return nil
	}

	chunks := make([][]T, 0, (len(items)+size-1)/size)
	for start := 0; start < len(items); start += size {
		end := start + size
		if end > len(items) {
			end = len(items)
		}

		chunks = append(chunks, items[start:end])
	}

	return chunks
}

// outcomeClass classifies one chunk's final state.
type outcomeClass int

const (
	outcomeSuccess outcomeClass = iota
	outcomeFailed
	outcomeUnknown
	outcomeSkipped
)

type chunkOutcome[R any] struct {
	class   outcomeClass
	results []R
	err     error
}

// Execute splits items into bounded chunks, runs op concurrently over them
// under a worker budget, retries transient failures with exponential
// backoff, and reassembles results in input order.
//
// On total success it returns the concatenation of all chunk results and a
// nil error. On any failure it returns the successful results together
// with a single *PartialError[T] carrying every item classified as
// successful, failed, or unknown; no item is ever silently dropped.
func Execute[T, R any](ctx context.Context, items []T, op ChunkFunc[T, R], opts ExecuteOptions) ([]R, error) {
	opts = opts.withDefaults()

	chunks := ChunkSlice(items, opts.ChunkSize)
	if len(chunks) == 0 {
		return nil, nil
	}

	outcomes := make([]chunkOutcome[R], len(chunks))

	var (
		waitGroup sync.WaitGroup
		stop      atomic.Bool
	)

	semaphore := make(chan struct{}, opts.MaxWorkers)

	for index, chunk := range chunks {
		waitGroup.Add(1)

		go func(index int, chunk []T) {
			defer waitGroup.Done()

			// Acquire a worker slot
			semaphore <- struct{}{}

			defer func() { <-semaphore }()

			if opts.FailFast && stop.Load() {
				outcomes[index] = chunkOutcome[R]{class: outcomeSkipped, err: ErrNotScheduled}

				return
			}

			outcome := executeChunk(ctx, chunk, op, opts)
			outcomes[index] = outcome

			if outcome.class == outcomeFailed {
				stop.Store(true)
			}
		}(index, chunk)
	}

	waitGroup.Wait()

	return assemble(chunks, outcomes)
}

// executeChunk runs one chunk through the retry loop and classifies the
// final error.
func executeChunk[T, R any](ctx context.Context, chunk []T, op ChunkFunc[T, R], opts ExecuteOptions) chunkOutcome[R] {
	var results []R

	attempt := func() error {
		res, err := op(ctx, chunk)
		if err != nil {
			if retryableError(err, opts) {
				return err
			}

			return backoff.Permanent(err)
		}

		results = res

		return nil
	}

	err := backoff.Retry(attempt, opts.Retry.newBackOff(ctx))
	if err != nil {
		return chunkOutcome[R]{class: classify(err), err: err}
	}

	return chunkOutcome[R]{class: outcomeSuccess, results: results}
}

// retryableError decides whether one attempt's failure should be retried.
func retryableError(err error, opts ExecuteOptions) bool {
	if IsAmbiguous(err) || errors.Is(err, context.DeadlineExceeded) {
		// Ambiguous outcomes are only safe to retry when the server
		// guarantees idempotence.
		return opts.Idempotent
	}

	if errors.Is(err, context.Canceled) {
		return false
	}

	reqErr := &RequestError{}
	if errors.As(err, &reqErr) {
		return opts.Retry.retryable(reqErr.StatusCode)
	}

	// Transport-level failures before a response (connection refused,
	// reset before send) are transient.
	return true
}

// classify maps a chunk's final error to an outcome class.
func classify(err error) outcomeClass {
	if IsAmbiguous(err) || errors.Is(err, context.DeadlineExceeded) {
		return outcomeUnknown
	}

	return outcomeFailed
}

// assemble concatenates successful results in input chunk order, or builds
// the aggregate PartialError when any chunk did not succeed.
func assemble[T, R any](chunks [][]T, outcomes []chunkOutcome[R]) ([]R, error) {
	total := 0

	clean := true
	for _, outcome := range outcomes {
		if outcome.class != outcomeSuccess {
			clean = false

			continue
		}

		total += len(outcome.results)
	}

	results := make([]R, 0, total)
	for _, outcome := range outcomes {
		if outcome.class == outcomeSuccess {
			results = append(results, outcome.results...)
		}
	}

	if clean {
		return results, nil
	}

	partial := &PartialError[T]{}

	for index, outcome := range outcomes {
		switch outcome.class {
		case outcomeSuccess:
			partial.Successful = append(partial.Successful, chunks[index]...)
		case outcomeUnknown:
			for _, item := range chunks[index] {
				partial.Unknown = append(partial.Unknown, FailedItem[T]{Item: item, Err: outcome.err})
			}
		case outcomeFailed, outcomeSkipped:
			for _, item := range chunks[index] {
				partial.Failed = append(partial.Failed, FailedItem[T]{Item: item, Err: outcome.err})
			}
		}
	}

	return results, partial
}
