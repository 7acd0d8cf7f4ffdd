package model

// Tier is the coarse display bucket derived from a value score.
type Tier string

// Value tiers.
const (
	TierHigh   Tier = "high"
	TierMedium Tier = "medium"
	TierWatch  Tier = "watch"
)

// Label returns the display string for the tier.
func (t Tier) Label() string {
	switch t {
	case TierHigh:
		return "High Value"
	case TierMedium:
		return "Medium Value"
	case TierWatch:
		return "Watch"
	default:
		return ""
	}
}

// ValueScore is the 0-100 value-to-broker ranking of a navigator among its peers.
type ValueScore struct {
	Score int    `json:"score"`
	Tier  Tier   `json:"tier"`
	Label string `json:"label"`
}

// BrokerValue is the per-navigator economics snapshot.
type BrokerValue struct {
	DailyRevenue        float64 `json:"daily_revenue"`
	MonthlyRevenue      float64 `json:"monthly_revenue"`
	RevenueSharePct     float64 `json:"revenue_share_pct"`
	CopiedVolumeDaily   float64 `json:"copied_volume_daily"`
	CopiedVolumeMonthly float64 `json:"copied_volume_monthly"`
	Copiers             int     `json:"copiers"`
}

// NavigatorValueEntry combines the value score, economics and global ranks.
type NavigatorValueEntry struct {
	NavigatorID     string      `json:"navigator_id"`
	Name            string      `json:"name"`
	ValueScore      ValueScore  `json:"value_score"`
	BrokerValue     BrokerValue `json:"broker_value"`
	RevenueTrend    []float64   `json:"revenue_trend"`
	ValueRank       int         `json:"value_rank"`
	RevenueRank     int         `json:"revenue_rank"`
	IsRevenueLeader bool        `json:"is_revenue_leader"`
}
