// Package model contains domain models passed between layers.
package model

// TrendPoint is one sample of a navigator's performance series.
type TrendPoint struct {
	Day   string  `json:"day" yaml:"day"`
	Value float64 `json:"value" yaml:"value"`
}

// Navigator is a lead trader whose trades are copied by pilots.
type Navigator struct {
	ID                 string       `json:"id" yaml:"id"`
	Name               string       `json:"name" yaml:"name"`
	PilotScore         float64      `json:"pilot_score" yaml:"pilot_score"`                   // 0-1000 quality metric
	BrokerRevenueShare float64      `json:"broker_revenue_share" yaml:"broker_revenue_share"` // daily revenue attributed to the broker
	Followers          int          `json:"followers" yaml:"followers"`
	GroupVolume        float64      `json:"group_volume" yaml:"group_volume"` // daily copied volume, millions
	Trend              []TrendPoint `json:"trend" yaml:"trend"`
}

// Growth returns the last trend value minus the first. Both endpoints fall
// back to PilotScore when the trend is empty.
func (n Navigator) Growth() float64 {
	first, last := n.PilotScore, n.PilotScore
	if len(n.Trend) > 0 {
		first = n.Trend[0].Value
		last = n.Trend[len(n.Trend)-1].Value
	}
	return last - first
}

// Pilot is a follower account replicating one or more navigators.
type Pilot struct {
	ID           string   `json:"id" yaml:"id"`
	TradesCopied int      `json:"trades_copied" yaml:"trades_copied"`
	NavigatorIDs []string `json:"navigator_ids" yaml:"navigator_ids"`
}

// Dataset bundles the fixtures the analytics are computed over.
type Dataset struct {
	Navigators []Navigator `json:"navigators" yaml:"navigators"`
	Pilots     []Pilot     `json:"pilots" yaml:"pilots"`
}
