package valuecheck

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/okian/brokerlens/internal/domain/model"
	"github.com/okian/brokerlens/internal/domain/types"
	"github.com/okian/brokerlens/internal/domain/valuemap"
)

// Verify rebuilds the value map from ds with b (the default builder when nil)
// and compares it with what the service served. It returns one error per
// problem found; none means the views agree.
func Verify(b *valuemap.Builder, ds model.Dataset, served map[string]model.NavigatorValueEntry, leaderboards map[valuemap.Order][]types.Entry) []error {
	var problems []error

	if b == nil {
		b = valuemap.New()
	}
	local := b.Build(ds.Navigators, ds.Pilots)
	if len(served) != len(local) {
		problems = append(problems, fmt.Errorf("served %d entries, dataset has %d navigators", len(served), len(local)))
	}

	entries := make([]model.NavigatorValueEntry, 0, len(served))
	for _, id := range sortedIDs(served) {
		entries = append(entries, served[id])
	}
	problems = append(problems, checkRanks(entries)...)

	for _, nav := range ds.Navigators {
		got, ok := served[nav.ID]
		if !ok {
			problems = append(problems, fmt.Errorf("navigator %s: no entry served", nav.ID))
			continue
		}
		if want := local[nav.ID]; !reflect.DeepEqual(got, want) {
			problems = append(problems, fmt.Errorf("navigator %s: served %+v, expected %+v", nav.ID, got, want))
		}
	}

	for _, by := range []valuemap.Order{valuemap.ByValue, valuemap.ByRevenue} {
		rows, ok := leaderboards[by]
		if !ok {
			continue
		}
		problems = append(problems, checkLeaderboard(by, rows, local.Ordered(by))...)
	}

	return problems
}

// checkRanks verifies both rank sets are permutations of 1..n with a single
// revenue leader holding revenue rank 1.
func checkRanks(entries []model.NavigatorValueEntry) []error {
	var problems []error
	n := len(entries)
	if n == 0 {
		return nil
	}

	valueRanks := make([]int, n)
	revenueRanks := make([]int, n)
	leaders := 0
	for i, e := range entries {
		valueRanks[i] = e.ValueRank
		revenueRanks[i] = e.RevenueRank
		if e.IsRevenueLeader {
			leaders++
			if e.RevenueRank != 1 {
				problems = append(problems, fmt.Errorf("revenue leader %s has revenue rank %d", e.NavigatorID, e.RevenueRank))
			}
		}
	}

	if err := checkPermutation("value", valueRanks); err != nil {
		problems = append(problems, err)
	}
	if err := checkPermutation("revenue", revenueRanks); err != nil {
		problems = append(problems, err)
	}
	if leaders != 1 {
		problems = append(problems, fmt.Errorf("expected exactly one revenue leader, found %d", leaders))
	}
	return problems
}

// checkPermutation reports whether ranks is a permutation of 1..len(ranks).
func checkPermutation(name string, ranks []int) error {
	seen := make([]bool, len(ranks)+1)
	for _, r := range ranks {
		if r < 1 || r > len(ranks) {
			return fmt.Errorf("%s rank %d outside [1,%d]", name, r, len(ranks))
		}
		if seen[r] {
			return fmt.Errorf("%s rank %d assigned twice", name, r)
		}
		seen[r] = true
	}
	return nil
}

// checkLeaderboard compares served rows with the locally ordered entries.
func checkLeaderboard(by valuemap.Order, rows []types.Entry, ordered []model.NavigatorValueEntry) []error {
	var problems []error
	if len(rows) > len(ordered) {
		problems = append(problems, fmt.Errorf("leaderboard %s: %d rows for %d navigators", by, len(rows), len(ordered)))
		rows = rows[:len(ordered)]
	}
	for i, row := range rows {
		if want := types.FromValueEntry(ordered[i], i+1); row != want {
			problems = append(problems, fmt.Errorf("leaderboard %s row %d: served %+v, expected %+v", by, i+1, row, want))
		}
	}
	return problems
}

func sortedIDs(m map[string]model.NavigatorValueEntry) []string {
	ids := make([]string, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
