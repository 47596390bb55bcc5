package ndp

import (
	"net/url"
	"strconv"
	"strings"
)

// QueryParams carries list-request parameters sent as URL query values.
type QueryParams struct {
	// Limit bounds the page size. Zero means the server default.
	Limit int

	// Cursor resumes a listing from a previous page's NextCursor.
	Cursor string

	// Partition requests one slice of a partitioned parallel listing,
	// formatted as "m/n".
	Partition string

	// IncludeMetadata asks the server to include metadata maps.
	IncludeMetadata bool

	// Filters holds resource-specific equality filters, one value set
	// per field (e.g. "source" -> ["scada"], "assetIds" -> ["12","44"]).
	Filters map[string][]string
}

// NewQueryParams creates an empty QueryParams.
func NewQueryParams() *QueryParams {
	return &QueryParams{
		Filters: make(map[string][]string),
	}
}

// WithLimit sets the page size.
func (q *QueryParams) WithLimit(limit int) *QueryParams {
	q.Limit = limit

	return q
}

// WithCursor sets the resume cursor.
func (q *QueryParams) WithCursor(cursor string) *QueryParams {
	q.Cursor = cursor

	return q
}

// WithFilter adds an equality filter.
func (q *QueryParams) WithFilter(field string, values ...string) *QueryParams {
	if q.Filters == nil {
		q.Filters = make(map[string][]string)
	}

	q.Filters[field] = values

	return q
}

// ToValues converts the parameters to URL query values.
func (q *QueryParams) ToValues() url.Values {
	values := url.Values{}

	if q == nil {
		return values
	}

	if q.Limit > 0 {
		values.Set("limit", strconv.Itoa(q.Limit))
	}

	if q.Cursor != "" {
		values.Set("cursor", q.Cursor)
	}

	if q.Partition != "" {
		values.Set("partition", q.Partition)
	}

	if q.IncludeMetadata {
		values.Set("includeMetadata", "true")
	}

	for field, fieldValues := range q.Filters {
		values.Set(field, strings.Join(fieldValues, ","))
	}

	return values
}
