package insight_test

import (
	"math"
	"testing"

	"github.com/okian/brokerlens/internal/domain/insight"
	"github.com/okian/brokerlens/internal/domain/model"
	"github.com/okian/brokerlens/internal/domain/valuemap"
	"github.com/smartystreets/goconvey/convey"
)

func TestSummarize(t *testing.T) {
	convey.Convey("Given four navigators across all tiers", t, func() {
		navigators := []model.Navigator{
			{ID: "A", BrokerRevenueShare: 1000, PilotScore: 900, Followers: 10, Trend: []model.TrendPoint{{Value: 0}, {Value: 100}}},
			{ID: "B", BrokerRevenueShare: 500, PilotScore: 600, Followers: 4, Trend: []model.TrendPoint{{Value: 600}, {Value: 550}}},
			{ID: "C", BrokerRevenueShare: 300, PilotScore: 800, Followers: 2},
			{ID: "D", BrokerRevenueShare: 100, PilotScore: 100, Followers: 1, Trend: []model.TrendPoint{{Value: 0}, {Value: -100}}},
		}
		m := valuemap.Build(navigators, nil)
		s := insight.Summarize(navigators, m)

		convey.Convey("Then tiers are counted", func() {
			convey.So(s.Navigators, convey.ShouldEqual, 4)
			convey.So(s.TierCounts[model.TierHigh], convey.ShouldEqual, 1)
			convey.So(s.TierCounts[model.TierMedium], convey.ShouldEqual, 2)
			convey.So(s.TierCounts[model.TierWatch], convey.ShouldEqual, 1)
		})

		convey.Convey("Then revenue shares are reported", func() {
			convey.So(s.TotalDailyRevenue, convey.ShouldEqual, 1900)
			convey.So(s.HighQualityRevenue, convey.ShouldEqual, 1300)
			convey.So(s.HighQualityRevenuePct, convey.ShouldAlmostEqual, 1300.0/1900.0*100, 1e-9)
			convey.So(s.AtRiskRevenue, convey.ShouldEqual, 100)
			convey.So(s.AtRiskRevenuePct, convey.ShouldAlmostEqual, 100.0/1900.0*100, 1e-9)
			convey.So(s.TopRevenueConcentrationPct, convey.ShouldAlmostEqual, 1800.0/1900.0*100, 1e-9)
		})

		convey.Convey("Then score statistics are computed", func() {
			convey.So(s.MeanValueScore, convey.ShouldAlmostEqual, 62.75, 1e-9)
			convey.So(s.StdDevValueScore, convey.ShouldAlmostEqual, math.Sqrt(2812.75/3), 1e-9)
			convey.So(s.MedianDailyRevenue, convey.ShouldEqual, 300)
		})

		convey.Convey("Then copiers and the leader are reported", func() {
			convey.So(s.TotalCopiers, convey.ShouldEqual, 17)
			convey.So(s.RevenueLeader, convey.ShouldEqual, "A")
		})
	})

	convey.Convey("Given a single navigator", t, func() {
		navigators := []model.Navigator{{ID: "solo", BrokerRevenueShare: 42}}
		s := insight.Summarize(navigators, valuemap.Build(navigators, nil))

		convey.Convey("Then the deviation is zero rather than NaN", func() {
			convey.So(s.StdDevValueScore, convey.ShouldEqual, 0)
			convey.So(s.MeanValueScore, convey.ShouldEqual, 100)
			convey.So(s.TopRevenueConcentrationPct, convey.ShouldEqual, 100)
		})
	})

	convey.Convey("Given no navigators", t, func() {
		s := insight.Summarize(nil, valuemap.Build(nil, nil))

		convey.Convey("Then the summary is zero", func() {
			convey.So(s.Navigators, convey.ShouldEqual, 0)
			convey.So(s.HighQualityRevenuePct, convey.ShouldEqual, 0)
			convey.So(s.AtRiskRevenuePct, convey.ShouldEqual, 0)
			convey.So(s.RevenueLeader, convey.ShouldEqual, "")
		})
	})

	convey.Convey("Given navigators without revenue", t, func() {
		navigators := []model.Navigator{{ID: "A"}, {ID: "B"}}
		s := insight.Summarize(navigators, valuemap.Build(navigators, nil))

		convey.So(s.AtRiskRevenuePct, convey.ShouldEqual, 0)
		convey.So(s.TopRevenueConcentrationPct, convey.ShouldEqual, 0)
	})
}
