package ndp

import (
	"errors"
	"fmt"
)

// FailedItem couples an input item with the error that classified it.
type FailedItem[T any] struct {
	Item T
	Err  error
}

// PartialError is the single aggregate error raised when a logical
// multi-item call does not succeed for every item. It carries the full
// outcome breakdown: items confirmed written, items confirmed rejected,
// and items whose fate is unknowable without re-querying the API. A call
// either returns a plain success or raises one PartialError; items are
// never silently dropped.
type PartialError[T any] struct {
	// Successful holds items whose chunk completed with a 2xx response.
	Successful []T

	// Failed holds items whose chunk was rejected (4xx), exhausted its
	// retry budget, or was never attempted because of fail-fast or a
	// failed parent. Each entry keeps its classifying error.
	Failed []FailedItem[T]

	// Unknown holds items whose chunk's outcome was ambiguous: the
	// request was sent and the response lost. They may exist server-side.
	Unknown []FailedItem[T]
}

// Error implements the error interface.
func (e *PartialError[T]) Error() string {
	return fmt.Sprintf("partial failure: %d successful, %d failed, %d unknown",
		len(e.Successful), len(e.Failed), len(e.Unknown))
}

// FailedItems returns the failed items without their errors.
func (e *PartialError[T]) FailedItems() []T {
	return stripErrors(e.Failed)
}

// UnknownItems returns the unknown-outcome items without their errors.
func (e *PartialError[T]) UnknownItems() []T {
	return stripErrors(e.Unknown)
}

func stripErrors[T any](items []FailedItem[T]) []T {
	out := make([]T, 0, len(items))
	for _, fi := range items {
		out = append(out, fi.Item)
	}

	return out
}

// AsPartialError unwraps err into a *PartialError[T] if it is one.
func AsPartialError[T any](err error) (*PartialError[T], bool) {
	partial := &PartialError[T]{}
	if errors.As(err, &partial) {
		return partial, true
	}

	return nil, false
}
