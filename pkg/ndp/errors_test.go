package ndp_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/nordlys-io/ndp-client/pkg/ndp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestError_Error(t *testing.T) {
	err := &ndp.RequestError{
		StatusCode: 409,
		Method:     "POST",
		Path:       "/assets",
		APIError:   &ndp.APIError{Code: 409, Message: "duplicate external id"},
	}

	assert.Contains(t, err.Error(), "POST /assets")
	assert.Contains(t, err.Error(), "duplicate external id")
	assert.Contains(t, err.Error(), "409")

	bare := &ndp.RequestError{StatusCode: 500, Method: "GET", Path: "/events"}
	assert.Contains(t, bare.Error(), "request failed")
}

func TestRequestError_Retryable(t *testing.T) {
	for _, code := range []int{429, 502, 503} {
		assert.True(t, (&ndp.RequestError{StatusCode: code}).Retryable(), "status %d", code)
	}

	for _, code := range []int{400, 401, 403, 404, 409, 500} {
		assert.False(t, (&ndp.RequestError{StatusCode: code}).Retryable(), "status %d", code)
	}
}

func TestParseResponseError(t *testing.T) {
	body := []byte(`{
		"error": {
			"code": 400,
			"message": "ids not found",
			"missing": [{"externalId": "gone"}],
			"duplicated": [{"id": 42}]
		}
	}`)

	parsed, err := ndp.ParseResponseError(body)
	require.NoError(t, err)
	assert.Equal(t, 400, parsed.Err.Code)
	assert.Equal(t, "ids not found", parsed.Err.Message)
	require.Len(t, parsed.Err.Missing, 1)
	assert.Equal(t, "gone", parsed.Err.Missing[0].ExternalID)
	require.Len(t, parsed.Err.Duplicated, 1)
	assert.Equal(t, int64(42), parsed.Err.Duplicated[0].ID)
}

func TestErrorClassifiers(t *testing.T) {
	notFound := fmt.Errorf("wrapped: %w", &ndp.RequestError{StatusCode: 404})
	assert.True(t, ndp.IsNotFound(notFound))
	assert.False(t, ndp.IsNotFound(errors.New("other")))

	unauthorized := fmt.Errorf("wrapped: %w", &ndp.RequestError{StatusCode: 401})
	assert.True(t, ndp.IsUnauthorized(unauthorized))

	duplicated := &ndp.RequestError{
		StatusCode: 409,
		APIError:   &ndp.APIError{Duplicated: []ndp.Identifier{ndp.IDRef(1)}},
	}
	assert.True(t, ndp.IsDuplicated(duplicated))

	ambiguous := fmt.Errorf("POST /assets: %w", ndp.ErrAmbiguousResult)
	assert.True(t, ndp.IsAmbiguous(ambiguous))
	assert.False(t, ndp.IsAmbiguous(notFound))
}

func TestPartialError(t *testing.T) {
	partial := &ndp.PartialError[string]{
		Successful: []string{"a", "b"},
		Failed: []ndp.FailedItem[string]{
			{Item: "c", Err: errors.New("rejected")},
		},
		Unknown: []ndp.FailedItem[string]{
			{Item: "d", Err: ndp.ErrAmbiguousResult},
		},
	}

	assert.Equal(t, "partial failure: 2 successful, 1 failed, 1 unknown", partial.Error())
	assert.Equal(t, []string{"c"}, partial.FailedItems())
	assert.Equal(t, []string{"d"}, partial.UnknownItems())
}

func TestAsPartialError(t *testing.T) {
	partial := &ndp.PartialError[int]{Failed: []ndp.FailedItem[int]{{Item: 7, Err: errors.New("no")}}}
	wrapped := fmt.Errorf("creating events: %w", partial)

	found, ok := ndp.AsPartialError[int](wrapped)
	require.True(t, ok)
	assert.Equal(t, 7, found.Failed[0].Item)

	_, ok = ndp.AsPartialError[string](wrapped)
	assert.False(t, ok)

	_, ok = ndp.AsPartialError[int](errors.New("plain"))
	assert.False(t, ok)
}
