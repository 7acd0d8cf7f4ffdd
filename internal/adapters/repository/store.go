// Package repository holds the navigator and pilot fixtures the value views are derived from.
package repository

import (
	"context"
	"fmt"
	"math"

	"github.com/okian/brokerlens/internal/domain/model"
)

// Store provides read/write access to the fixture dataset.
type Store interface {
	// Dataset returns a copy of the current dataset.
	Dataset(ctx context.Context) (model.Dataset, error)

	// Navigator returns a single navigator by id.
	// Returns ErrNotFound if the id is unknown.
	Navigator(ctx context.Context, id string) (model.Navigator, error)

	// Replace swaps the whole dataset after validating it.
	Replace(ctx context.Context, ds model.Dataset) error

	// Count returns the number of navigators held.
	Count(ctx context.Context) int
}

// Validate checks that navigator ids are present and unique, pilot ids are
// present and numeric fields are finite.
func Validate(ds model.Dataset) error {
	seen := make(map[string]struct{}, len(ds.Navigators))
	for i, n := range ds.Navigators {
		if n.ID == "" {
			return fmt.Errorf("%w: navigator %d has an empty id", ErrInvalidDataset, i)
		}
		if _, dup := seen[n.ID]; dup {
			return fmt.Errorf("%w: duplicate navigator id %q", ErrInvalidDataset, n.ID)
		}
		seen[n.ID] = struct{}{}
		if !finite(n.PilotScore, n.BrokerRevenueShare, n.GroupVolume) {
			return fmt.Errorf("%w: navigator %q has a non-finite metric", ErrInvalidDataset, n.ID)
		}
		for _, p := range n.Trend {
			if !finite(p.Value) {
				return fmt.Errorf("%w: navigator %q has a non-finite trend point", ErrInvalidDataset, n.ID)
			}
		}
	}
	for i, p := range ds.Pilots {
		if p.ID == "" {
			return fmt.Errorf("%w: pilot %d has an empty id", ErrInvalidDataset, i)
		}
	}
	return nil
}

func finite(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// cloneDataset deep-copies ds so callers cannot mutate stored slices.
func cloneDataset(ds model.Dataset) model.Dataset {
	out := model.Dataset{
		Navigators: make([]model.Navigator, len(ds.Navigators)),
		Pilots:     make([]model.Pilot, len(ds.Pilots)),
	}
	for i, n := range ds.Navigators {
		out.Navigators[i] = cloneNavigator(n)
	}
	for i, p := range ds.Pilots {
		p.NavigatorIDs = append([]string(nil), p.NavigatorIDs...)
		out.Pilots[i] = p
	}
	return out
}

func cloneNavigator(n model.Navigator) model.Navigator {
	n.Trend = append([]model.TrendPoint(nil), n.Trend...)
	return n
}
