package valuemap

import "github.com/okian/brokerlens/internal/domain/model"

// High-quality classification thresholds.
const (
	HighQualityPilotScore = 750
	HighQualityValueScore = 75
)

// IsHighQuality reports whether a navigator counts towards high-quality revenue:
// a high value tier, a pilot score of at least 750, or a value score of at least 75.
func IsHighQuality(nav model.Navigator, entry model.NavigatorValueEntry) bool {
	return entry.ValueScore.Tier == model.TierHigh ||
		nav.PilotScore >= HighQualityPilotScore ||
		entry.ValueScore.Score >= HighQualityValueScore
}

// HighQualityRevenue sums BrokerRevenueShare over high-quality navigators.
func HighQualityRevenue(navigators []model.Navigator, pilots []model.Pilot) float64 {
	return defaultBuilder.HighQualityRevenue(navigators, pilots)
}

// HighQualityRevenuePct is HighQualityRevenue as a percentage of total revenue.
func HighQualityRevenuePct(navigators []model.Navigator, pilots []model.Pilot) float64 {
	return defaultBuilder.HighQualityRevenuePct(navigators, pilots)
}

// HighQualityRevenue sums BrokerRevenueShare over high-quality navigators.
func (b *Builder) HighQualityRevenue(navigators []model.Navigator, pilots []model.Pilot) float64 {
	return highQualityRevenue(navigators, b.Build(navigators, pilots))
}

// HighQualityRevenuePct returns high-quality revenue as a percentage of the
// total BrokerRevenueShare. Returns 0 when the total is 0.
func (b *Builder) HighQualityRevenuePct(navigators []model.Navigator, pilots []model.Pilot) float64 {
	return HighQualityRevenuePctOf(navigators, b.Build(navigators, pilots))
}

// HighQualityRevenuePctOf computes the high-quality percentage from an
// already built map.
func HighQualityRevenuePctOf(navigators []model.Navigator, m Map) float64 {
	total := TotalRevenue(navigators)
	if total == 0 {
		return 0
	}
	return highQualityRevenue(navigators, m) / total * percentageMultiplier
}

// HighQualityRevenueOf sums high-quality revenue from an already built map.
func HighQualityRevenueOf(navigators []model.Navigator, m Map) float64 {
	return highQualityRevenue(navigators, m)
}

// TotalRevenue sums BrokerRevenueShare across navigators.
func TotalRevenue(navigators []model.Navigator) float64 {
	var total float64
	for _, nav := range navigators {
		total += nav.BrokerRevenueShare
	}
	return total
}

func highQualityRevenue(navigators []model.Navigator, m Map) float64 {
	var sum float64
	for _, nav := range navigators {
		if IsHighQuality(nav, m[nav.ID]) {
			sum += nav.BrokerRevenueShare
		}
	}
	return sum
}
