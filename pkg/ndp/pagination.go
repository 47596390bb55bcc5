package ndp

import (
	"context"
	"fmt"
)

// PaginationClient fetches one page of a cursor-paginated listing.
type PaginationClient[T any] interface {
	ListWithPath(ctx context.Context, path string, params *QueryParams) (*ListResponse[T], error)
}

// PaginationIterator walks a cursor-paginated listing one item at a time.
// Pages are fetched lazily; the cursor order of the underlying listing is
// preserved exactly.
type PaginationIterator[T any] struct {
	ctx     context.Context
	client  PaginationClient[T]
	path    string
	params  *QueryParams
	buffer []T
	cursor string
	err    error
	done   bool
}

// NewPaginationIterator creates an iterator over the listing at path.
func NewPaginationIterator[T any](ctx context.Context, client PaginationClient[T], path string, params *QueryParams) *PaginationIterator[T] {
	if params == nil {
		params = NewQueryParams()
	}

	return &PaginationIterator[T]{
		ctx:    ctx,
		client: client,
		path:   path,
		params: params,
		cursor: params.Cursor,
	}
}

// HasNext reports whether another item is available. It may fetch a page.
func (it *PaginationIterator[T]) HasNext() bool {
	if len(it.buffer) > 0 {
		return true
	}

	if it.done {
		return false
	}

	err := it.fetchPage()
	if err != nil {
		// Surface the error on the following Next call.
		it.err = err
		it.done = true

		return true
	}

	return len(it.buffer) > 0 || !it.done
}

// Next returns the next item, fetching pages as needed.
func (it *PaginationIterator[T]) Next() (*T, error) {
	if it.err != nil {
		err := it.err
		it.err = nil

		return nil, err
	}

	if len(it.buffer) == 0 {
		if it.done {
			return nil, ErrNoMoreItems
		}

		err := it.fetchPage()
		if err != nil {
			return nil, err
		}

		if len(it.buffer) == 0 {
			return nil, ErrNoMoreItems
		}
	}

	item := it.buffer[0]
	it.buffer = it.buffer[1:]

	return &item, nil
}

// All drains the remaining pages into a slice.
func (it *PaginationIterator[T]) All() ([]T, error) {
	var items []T

	for {
		if len(it.buffer) > 0 {
			items = append(items, it.buffer...)
			it.buffer = nil
		}

		if it.done {
			return items, nil
		}

		err := it.fetchPage()
		if err != nil {
			return items, err
		}
	}
}

// ForEach applies fn to every remaining item, stopping on the first error.
func (it *PaginationIterator[T]) ForEach(fn func(item *T) error) error {
	for {
		item, err := it.Next()
		if err != nil {
			if err == ErrNoMoreItems {
				return nil
			}

			return err
		}

		err = fn(item)
		if err != nil {
			return err
		}
	}
}

func (it *PaginationIterator[T]) fetchPage() error {
	params := *it.params
	params.Cursor = it.cursor

	page, err := it.client.ListWithPath(it.ctx, it.path, &params)
	if err != nil {
		return fmt.Errorf("fetching page: %w", err)
	}

	it.buffer = append(it.buffer, page.Items...)
	it.cursor = page.NextCursor

	if page.NextCursor == "" {
		it.done = true
	}

	return nil
}
