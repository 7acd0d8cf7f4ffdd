// Package insight aggregates a value map into the regulator-facing harm summary.
package insight

import (
	"sort"

	"github.com/okian/brokerlens/internal/domain/model"
	"github.com/okian/brokerlens/internal/domain/valuemap"
	"gonum.org/v1/gonum/stat"
)

const (
	// concentrationTopN is how many revenue leaders the concentration share covers.
	concentrationTopN    = 3
	percentageMultiplier = 100
	medianQuantile       = 0.5
)

// Summary is the harm insight view over one dataset.
type Summary struct {
	Navigators            int                `json:"navigators"`
	TierCounts            map[model.Tier]int `json:"tier_counts"`
	TotalDailyRevenue     float64            `json:"total_daily_revenue"`
	HighQualityRevenue    float64            `json:"high_quality_revenue"`
	HighQualityRevenuePct float64            `json:"high_quality_revenue_pct"`
	// AtRiskRevenue is daily revenue earned from watch-tier navigators.
	AtRiskRevenue              float64 `json:"at_risk_revenue"`
	AtRiskRevenuePct           float64 `json:"at_risk_revenue_pct"`
	MeanValueScore             float64 `json:"mean_value_score"`
	StdDevValueScore           float64 `json:"stddev_value_score"`
	MedianDailyRevenue         float64 `json:"median_daily_revenue"`
	TopRevenueConcentrationPct float64 `json:"top_revenue_concentration_pct"`
	TotalCopiers               int     `json:"total_copiers"`
	RevenueLeader              string  `json:"revenue_leader,omitempty"`
}

// Summarize builds the summary for navigators from their value map. Navigators
// missing from m are ignored. Empty input gives a zero summary.
func Summarize(navigators []model.Navigator, m valuemap.Map) Summary {
	s := Summary{
		TierCounts: map[model.Tier]int{
			model.TierHigh:   0,
			model.TierMedium: 0,
			model.TierWatch:  0,
		},
	}

	scores := make([]float64, 0, len(navigators))
	revenues := make([]float64, 0, len(navigators))
	for _, nav := range navigators {
		e, ok := m[nav.ID]
		if !ok {
			continue
		}
		s.Navigators++
		s.TierCounts[e.ValueScore.Tier]++
		s.TotalDailyRevenue += e.BrokerValue.DailyRevenue
		s.TotalCopiers += e.BrokerValue.Copiers
		if e.ValueScore.Tier == model.TierWatch {
			s.AtRiskRevenue += e.BrokerValue.DailyRevenue
		}
		if e.IsRevenueLeader {
			s.RevenueLeader = e.NavigatorID
		}
		scores = append(scores, float64(e.ValueScore.Score))
		revenues = append(revenues, e.BrokerValue.DailyRevenue)
	}
	if s.Navigators == 0 {
		return s
	}

	s.HighQualityRevenue = valuemap.HighQualityRevenueOf(navigators, m)
	s.HighQualityRevenuePct = valuemap.HighQualityRevenuePctOf(navigators, m)

	s.MeanValueScore = stat.Mean(scores, nil)
	if len(scores) > 1 {
		s.StdDevValueScore = stat.StdDev(scores, nil)
	}

	sort.Float64s(revenues)
	s.MedianDailyRevenue = stat.Quantile(medianQuantile, stat.Empirical, revenues, nil)

	if s.TotalDailyRevenue > 0 {
		s.AtRiskRevenuePct = s.AtRiskRevenue / s.TotalDailyRevenue * percentageMultiplier

		var top float64
		for i := len(revenues) - 1; i >= 0 && i >= len(revenues)-concentrationTopN; i-- {
			top += revenues[i]
		}
		s.TopRevenueConcentrationPct = top / s.TotalDailyRevenue * percentageMultiplier
	}

	return s
}
