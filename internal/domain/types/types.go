// Package types contains common types used across the application
package types

import "github.com/okian/brokerlens/internal/domain/model"

// Entry represents a leaderboard row.
type Entry struct {
	Rank            int        `json:"rank"`
	NavigatorID     string     `json:"navigator_id"`
	Name            string     `json:"name"`
	Score           int        `json:"score"`
	Tier            model.Tier `json:"tier"`
	Label           string     `json:"label"`
	DailyRevenue    float64    `json:"daily_revenue"`
	MonthlyRevenue  float64    `json:"monthly_revenue"`
	Copiers         int        `json:"copiers"`
	IsRevenueLeader bool       `json:"is_revenue_leader"`
}

// FromValueEntry flattens a value entry into a leaderboard row at rank.
func FromValueEntry(e model.NavigatorValueEntry, rank int) Entry {
	return Entry{
		Rank:            rank,
		NavigatorID:     e.NavigatorID,
		Name:            e.Name,
		Score:           e.ValueScore.Score,
		Tier:            e.ValueScore.Tier,
		Label:           e.ValueScore.Label,
		DailyRevenue:    e.BrokerValue.DailyRevenue,
		MonthlyRevenue:  e.BrokerValue.MonthlyRevenue,
		Copiers:         e.BrokerValue.Copiers,
		IsRevenueLeader: e.IsRevenueLeader,
	}
}
