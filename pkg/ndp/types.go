package ndp

import (
	"encoding/json"
	"fmt"
)

// Timestamp is a Unix timestamp in milliseconds, the wire format used by
// every time field in the API.
type Timestamp int64

// Identifier addresses one resource by internal ID or external ID. Exactly
// one of the two fields must be set.
type Identifier struct {
	ID         int64  `json:"id,omitempty"         yaml:"id,omitempty"`
	ExternalID string `json:"externalId,omitempty" yaml:"externalId,omitempty"`
}

// IDRef creates an Identifier from an internal ID.
func IDRef(id int64) Identifier {
	return Identifier{ID: id}
}

// ExternalIDRef creates an Identifier from an external ID.
func ExternalIDRef(externalID string) Identifier {
	return Identifier{ExternalID: externalID}
}

// String returns a human-readable form used in error messages.
func (i Identifier) String() string {
	if i.ExternalID != "" {
		return fmt.Sprintf("externalId=%s", i.ExternalID)
	}

	return fmt.Sprintf("id=%d", i.ID)
}

// IsZero reports whether neither field is set.
func (i Identifier) IsZero() bool {
	return i.ID == 0 && i.ExternalID == ""
}

// Metadata holds free-form string key/value pairs attached to a resource.
type Metadata map[string]string

// TimeRange bounds a time interval in inclusive milliseconds.
type TimeRange struct {
	Min Timestamp `json:"min,omitempty" yaml:"min,omitempty"`
	Max Timestamp `json:"max,omitempty" yaml:"max,omitempty"`
}

// ItemsRequest is the request envelope for every multi-item operation.
type ItemsRequest[T any] struct {
	Items []T `json:"items"`
}

// ItemsResponse is the response envelope for multi-item operations that do
// not paginate.
type ItemsResponse[T any] struct {
	Items []T `json:"items"`
}

// ListResponse is the response envelope for cursor-paginated listings. An
// absent or empty NextCursor marks the final page.
type ListResponse[T any] struct {
	Items      []T    `json:"items"                yaml:"items"`
	NextCursor string `json:"nextCursor,omitempty" yaml:"nextCursor,omitempty"`
}

// DeleteRequest carries identifiers for a multi-item delete.
type DeleteRequest struct {
	Items            []Identifier `json:"items"`
	IgnoreUnknownIDs bool         `json:"ignoreUnknownIds,omitempty"`
}

// EmptyResponse is returned by operations whose body carries no data.
type EmptyResponse struct{}

// RawJSON preserves a response fragment without interpreting it.
type RawJSON = json.RawMessage
