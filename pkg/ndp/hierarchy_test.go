package ndp_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/nordlys-io/ndp-client/pkg/ndp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func asset(externalID, parentExternalID string) ndp.AssetCreate {
	return ndp.AssetCreate{
		ExternalID:       externalID,
		Name:             externalID,
		ParentExternalID: parentExternalID,
	}
}

func TestHierarchyLevels(t *testing.T) {
	levels, err := ndp.HierarchyLevels([]ndp.AssetCreate{
		asset("leaf", "mid"),
		asset("root", ""),
		asset("mid", "root"),
		asset("other-root", "preexisting-parent"),
	})

	require.NoError(t, err)
	require.Len(t, levels, 3)

	// Roots and assets whose parent is not part of the input come first.
	require.Len(t, levels[0], 2)
	assert.Equal(t, "root", levels[0][0].ExternalID)
	assert.Equal(t, "other-root", levels[0][1].ExternalID)

	require.Len(t, levels[1], 1)
	assert.Equal(t, "mid", levels[1][0].ExternalID)

	require.Len(t, levels[2], 1)
	assert.Equal(t, "leaf", levels[2][0].ExternalID)
}

func TestHierarchyLevels_DetectsCycle(t *testing.T) {
	_, err := ndp.HierarchyLevels([]ndp.AssetCreate{
		asset("a", "b"),
		asset("b", "a"),
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, ndp.ErrHierarchyCycle)
}

func TestHierarchyLevels_RejectsDuplicateExternalID(t *testing.T) {
	_, err := ndp.HierarchyLevels([]ndp.AssetCreate{
		asset("a", ""),
		asset("a", ""),
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, ndp.ErrDuplicateExternalID)
}

func TestExecuteHierarchy_ParentsBeforeChildren(t *testing.T) {
	var (
		mu      sync.Mutex
		created []string
	)

	results, err := ndp.ExecuteHierarchy(context.Background(),
		[]ndp.AssetCreate{
			asset("grandchild", "child"),
			asset("child", "root"),
			asset("root", ""),
		},
		func(ctx context.Context, chunk []ndp.AssetCreate) ([]ndp.Asset, error) {
			mu.Lock()
			defer mu.Unlock()

			out := make([]ndp.Asset, len(chunk))
			for i, a := range chunk {
				created = append(created, a.ExternalID)
				out[i] = ndp.Asset{ID: int64(len(created)), ExternalID: a.ExternalID, Name: a.Name}
			}

			return out, nil
		},
		ndp.ExecuteOptions{ChunkSize: 100})

	require.NoError(t, err)
	assert.Len(t, results, 3)
	assert.Equal(t, []string{"root", "child", "grandchild"}, created)
}

func TestExecuteHierarchy_FailedParentFailsDescendants(t *testing.T) {
	badRequest := &ndp.RequestError{StatusCode: 400, Method: "POST", Path: "/assets"}

	results, err := ndp.ExecuteHierarchy(context.Background(),
		[]ndp.AssetCreate{
			asset("good-root", ""),
			asset("bad-root", ""),
			asset("good-child", "good-root"),
			asset("doomed-child", "bad-root"),
			asset("doomed-grandchild", "doomed-child"),
		},
		func(ctx context.Context, chunk []ndp.AssetCreate) ([]ndp.Asset, error) {
			for _, a := range chunk {
				if a.ExternalID == "bad-root" {
					return nil, badRequest
				}
			}

			out := make([]ndp.Asset, len(chunk))
			for i, a := range chunk {
				out[i] = ndp.Asset{ExternalID: a.ExternalID}
			}

			return out, nil
		},
		ndp.ExecuteOptions{ChunkSize: 1, Retry: fastRetry(0)})

	require.Error(t, err)

	names := make([]string, len(results))
	for i, a := range results {
		names[i] = a.ExternalID
	}

	assert.ElementsMatch(t, []string{"good-root", "good-child"}, names)

	partial, ok := ndp.AsPartialError[ndp.AssetCreate](err)
	require.True(t, ok)
	assert.Empty(t, partial.Unknown)
	require.Len(t, partial.Failed, 3)

	failedByID := map[string]error{}
	for _, item := range partial.Failed {
		failedByID[item.Item.ExternalID] = item.Err
	}

	assert.ErrorIs(t, failedByID["doomed-child"], ndp.ErrParentFailed)
	assert.ErrorIs(t, failedByID["doomed-grandchild"], ndp.ErrParentFailed)
}

func TestExecuteHierarchy_UnknownParentMarksDescendantsUnknown(t *testing.T) {
	results, err := ndp.ExecuteHierarchy(context.Background(),
		[]ndp.AssetCreate{
			asset("root", ""),
			asset("child", "root"),
		},
		func(ctx context.Context, chunk []ndp.AssetCreate) ([]ndp.Asset, error) {
			return nil, fmt.Errorf("POST /assets: response lost: %w", ndp.ErrAmbiguousResult)
		},
		ndp.ExecuteOptions{ChunkSize: 100, Retry: fastRetry(0)})

	require.Error(t, err)
	assert.Empty(t, results)

	partial, ok := ndp.AsPartialError[ndp.AssetCreate](err)
	require.True(t, ok)
	assert.Empty(t, partial.Failed)
	require.Len(t, partial.Unknown, 2)

	unknownByID := map[string]error{}
	for _, item := range partial.Unknown {
		unknownByID[item.Item.ExternalID] = item.Err
	}

	assert.ErrorIs(t, unknownByID["root"], ndp.ErrAmbiguousResult)
	assert.ErrorIs(t, unknownByID["child"], ndp.ErrParentUnknown)
}
