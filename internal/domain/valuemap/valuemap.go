// Package valuemap builds the per-navigator broker value lookup used by the dashboard views.
package valuemap

import (
	"math"
	"sort"
	"unicode/utf16"

	"github.com/okian/brokerlens/internal/domain/model"
	"github.com/okian/brokerlens/internal/domain/scoring"
)

// Economics and synthetic trend constants.
const (
	volumeUnit           = 1_000_000 // GroupVolume is expressed in millions
	daysPerMonth         = 30
	tradesPerCopier      = 5
	maxSharePct          = 100
	trendPoints          = 7
	trendVariance        = 0.08
	trendBiasStep        = 0.01
	trendBiasPivot       = 3
	defaultTrendBase     = 1000
	pctDecimalsScale     = 100
	percentageMultiplier = 100
)

// Order selects which global rank an ordered view follows.
type Order string

// Supported orderings.
const (
	ByValue   Order = "value"
	ByRevenue Order = "revenue"
)

// Valid reports whether o names a supported ordering.
func (o Order) Valid() bool {
	return o == ByValue || o == ByRevenue
}

// Map is a lookup from navigator id to its value entry.
type Map map[string]model.NavigatorValueEntry

// Ordered returns the entries sorted by the requested global rank, best first.
// Unknown orderings fall back to value rank.
func (m Map) Ordered(by Order) []model.NavigatorValueEntry {
	entries := make([]model.NavigatorValueEntry, 0, len(m))
	for _, e := range m {
		entries = append(entries, e)
	}
	rank := func(e model.NavigatorValueEntry) int { return e.ValueRank }
	if by == ByRevenue {
		rank = func(e model.NavigatorValueEntry) int { return e.RevenueRank }
	}
	sort.Slice(entries, func(i, j int) bool {
		if rank(entries[i]) != rank(entries[j]) {
			return rank(entries[i]) < rank(entries[j])
		}
		return entries[i].NavigatorID < entries[j].NavigatorID
	})
	return entries
}

// Option applies a configuration option to the Builder.
type Option func(*Builder)

// WithCalculator sets the value score calculator.
func WithCalculator(calc *scoring.Calculator) Option {
	return func(b *Builder) {
		if calc != nil {
			b.calc = calc
		}
	}
}

// Builder assembles value maps. It is safe for concurrent use; every Build
// call works on its own state.
type Builder struct {
	calc *scoring.Calculator
}

// New creates a Builder with configuration options.
func New(opts ...Option) *Builder {
	b := &Builder{calc: scoring.New()}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

var defaultBuilder = New()

// Build builds a value map with the default calculator.
func Build(navigators []model.Navigator, pilots []model.Pilot) Map {
	return defaultBuilder.Build(navigators, pilots)
}

// trendKey identifies a cached synthetic trend within one Build call.
type trendKey struct {
	id   string
	base float64
}

// Build scores every navigator against the full list, attaches broker
// economics and a synthetic revenue trend, then assigns global value and
// revenue ranks. Ties in either ranking keep navigator input order.
func (b *Builder) Build(navigators []model.Navigator, pilots []model.Pilot) Map {
	out := make(Map, len(navigators))
	if len(navigators) == 0 {
		return out
	}

	copiers := copierCounts(pilots)
	trends := make(map[trendKey][]float64, len(navigators))

	entries := make([]model.NavigatorValueEntry, len(navigators))
	for i, nav := range navigators {
		value := brokerValue(nav, copiers)

		key := trendKey{id: nav.ID, base: value.DailyRevenue}
		series, ok := trends[key]
		if !ok {
			series = revenueTrend(nav.ID, value.DailyRevenue)
			trends[key] = series
		}

		entries[i] = model.NavigatorValueEntry{
			NavigatorID:  nav.ID,
			Name:         nav.Name,
			ValueScore:   b.calc.Calculate(nav, navigators),
			BrokerValue:  value,
			RevenueTrend: series,
		}
	}

	assignRanks(entries)

	for _, e := range entries {
		out[e.NavigatorID] = e
	}
	return out
}

// copierCounts estimates copiers per navigator from pilot activity: each pilot
// contributes max(1, round(tradesCopied/5)) to every navigator it follows.
func copierCounts(pilots []model.Pilot) map[string]int {
	counts := make(map[string]int)
	for _, p := range pilots {
		contribution := int(roundHalfUp(float64(p.TradesCopied) / tradesPerCopier))
		if contribution < 1 {
			contribution = 1
		}
		for _, id := range p.NavigatorIDs {
			counts[id] += contribution
		}
	}
	return counts
}

func brokerValue(nav model.Navigator, copiers map[string]int) model.BrokerValue {
	volume := math.Max(0, nav.GroupVolume*volumeUnit)
	daily := math.Max(0, nav.BrokerRevenueShare)

	var sharePct float64
	if volume > 0 {
		sharePct = math.Min(maxSharePct, math.Max(0, daily/volume*percentageMultiplier))
		sharePct = roundHalfUp(sharePct*pctDecimalsScale) / pctDecimalsScale
	}

	count, ok := copiers[nav.ID]
	if !ok {
		count = nav.Followers
	}

	return model.BrokerValue{
		DailyRevenue:        daily,
		MonthlyRevenue:      roundHalfUp(daily * daysPerMonth),
		RevenueSharePct:     sharePct,
		CopiedVolumeDaily:   volume,
		CopiedVolumeMonthly: roundHalfUp(volume * daysPerMonth),
		Copiers:             count,
	}
}

// revenueTrend derives a deterministic 7-point series from the navigator id.
// An id with no characters contributes no variance.
func revenueTrend(id string, dailyRevenue float64) []float64 {
	base := dailyRevenue
	if base == 0 {
		base = defaultTrendBase
	}
	units := utf16.Encode([]rune(id))

	series := make([]float64, trendPoints)
	for i := range series {
		var variance float64
		if len(units) > 0 {
			variance = float64(math.Sin(float64(units[i%len(units)])+float64(i)) * trendVariance)
		}
		bias := float64(float64(i-trendBiasPivot) * trendBiasStep)
		series[i] = math.Max(0, roundHalfUp(base*(1+variance+bias)))
	}
	return series
}

// assignRanks sets 1-based value and revenue ranks and the leader flag.
func assignRanks(entries []model.NavigatorValueEntry) {
	order := make([]int, len(entries))
	for i := range order {
		order[i] = i
	}

	sort.SliceStable(order, func(a, b int) bool {
		return entries[order[a]].ValueScore.Score > entries[order[b]].ValueScore.Score
	})
	for pos, idx := range order {
		entries[idx].ValueRank = pos + 1
	}

	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return entries[order[a]].BrokerValue.DailyRevenue > entries[order[b]].BrokerValue.DailyRevenue
	})
	for pos, idx := range order {
		entries[idx].RevenueRank = pos + 1
		entries[idx].IsRevenueLeader = pos == 0
	}
}

func roundHalfUp(x float64) float64 {
	return math.Floor(x + 0.5)
}
