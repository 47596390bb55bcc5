package ndp

import (
	"context"
	"fmt"
)

// HierarchyLevels splits assets into creation levels: level 0 holds roots
// and assets whose parent is not part of the input (assumed to already
// exist server-side), level d+1 holds assets whose in-input parent sits at
// level d. A child must never be requested before its parent is confirmed,
// so levels are executed strictly in order.
//
// Duplicate external IDs and parent cycles are rejected up front.
func HierarchyLevels(assets []AssetCreate) ([][]AssetCreate, error) {
	byExternalID := make(map[string]int, len(assets))

	for index, asset := range assets {
		if asset.ExternalID == "" {
			continue
		}

		if _, ok := byExternalID[asset.ExternalID]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateExternalID, asset.ExternalID)
		}

		byExternalID[asset.ExternalID] = index
	}

	depths := make([]int, len(assets))
	for index := range assets {
		depths[index] = -1
	}

	maxDepth := 0

	var resolve func(index int, visiting map[int]bool) (int, error)

	resolve = func(index int, visiting map[int]bool) (int, error) {
		if depths[index] >= 0 {
			return depths[index], nil
		}

		if visiting[index] {
			return 0, fmt.Errorf("%w: at %s", ErrHierarchyCycle, assets[index].ExternalID)
		}

		parent, inInput := byExternalID[assets[index].ParentExternalID]
		if assets[index].ParentExternalID == "" || !inInput {
			depths[index] = 0

			return 0, nil
		}

		visiting[index] = true

		parentDepth, err := resolve(parent, visiting)
		if err != nil {
			return 0, err
		}

		delete(visiting, index)

		depths[index] = parentDepth + 1
		if depths[index] > maxDepth {
			maxDepth = depths[index]
		}

		return depths[index], nil
	}

	for index := range assets {
		_, err := resolve(index, map[int]bool{})
		if err != nil {
			return nil, err
		}
	}

	levels := make([][]AssetCreate, maxDepth+1)
	for index, asset := range assets {
		levels[depths[index]] = append(levels[depths[index]], asset)
	}

	return levels, nil
}

// ExecuteHierarchy creates a forest of assets level by level through
// Execute. Each level runs to completion, with its own concurrency and
// retry behavior, before the next starts.
//
// Descendants of a failed parent are classified failed without an attempt:
// creating a child of a nonexistent parent is unsafe and wasteful.
// Descendants of an unknown-outcome parent are classified unknown, since
// the parent may well exist.
func ExecuteHierarchy(ctx context.Context, assets []AssetCreate, op ChunkFunc[AssetCreate, Asset], opts ExecuteOptions) ([]Asset, error) {
	levels, err := HierarchyLevels(assets)
	if err != nil {
		return nil, err
	}

	var created []Asset

	aggregate := &PartialError[AssetCreate]{}
	failedParents := make(map[string]bool)
	unknownParents := make(map[string]bool)

	for _, level := range levels {
		attemptable := make([]AssetCreate, 0, len(level))

		// Pre-classify children of parents that did not confirm.
		for _, asset := range level {
			switch {
			case failedParents[asset.ParentExternalID]:
				aggregate.Failed = append(aggregate.Failed, FailedItem[AssetCreate]{
					Item: asset,
					Err:  fmt.Errorf("%w: %s", ErrParentFailed, asset.ParentExternalID),
				})
				failedParents[asset.ExternalID] = true
			case unknownParents[asset.ParentExternalID]:
				aggregate.Unknown = append(aggregate.Unknown, FailedItem[AssetCreate]{
					Item: asset,
					Err:  fmt.Errorf("%w: %s", ErrParentUnknown, asset.ParentExternalID),
				})
				unknownParents[asset.ExternalID] = true
			default:
				attemptable = append(attemptable, asset)
			}
		}

		if len(attemptable) == 0 {
			continue
		}

		results, err := Execute(ctx, attemptable, op, opts)

		created = append(created, results...)

		if err == nil {
			aggregate.Successful = append(aggregate.Successful, attemptable...)

			continue
		}

		partial, ok := AsPartialError[AssetCreate](err)
		if !ok {
			return created, fmt.Errorf("executing hierarchy level: %w", err)
		}

		aggregate.Successful = append(aggregate.Successful, partial.Successful...)
		aggregate.Failed = append(aggregate.Failed, partial.Failed...)
		aggregate.Unknown = append(aggregate.Unknown, partial.Unknown...)

		for _, failed := range partial.Failed {
			if failed.Item.ExternalID != "" {
				failedParents[failed.Item.ExternalID] = true
			}
		}

		for _, unknown := range partial.Unknown {
			if unknown.Item.ExternalID != "" {
				unknownParents[unknown.Item.ExternalID] = true
			}
		}
	}

	if len(aggregate.Failed) == 0 && len(aggregate.Unknown) == 0 {
		return created, nil
	}

	return created, aggregate
}
