package model_test

import (
	"testing"

	"github.com/okian/brokerlens/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestTierLabel(t *testing.T) {
	convey.Convey("Given the value tiers", t, func() {
		convey.So(model.TierHigh.Label(), convey.ShouldEqual, "High Value")
		convey.So(model.TierMedium.Label(), convey.ShouldEqual, "Medium Value")
		convey.So(model.TierWatch.Label(), convey.ShouldEqual, "Watch")
		convey.So(model.Tier("other").Label(), convey.ShouldEqual, "")
	})
}

func TestNavigatorGrowth(t *testing.T) {
	convey.Convey("Given a navigator", t, func() {
		convey.Convey("When the trend has several points", func() {
			n := model.Navigator{PilotScore: 700, Trend: []model.TrendPoint{
				{Day: "Mon", Value: 800}, {Day: "Tue", Value: 760}, {Day: "Wed", Value: 900},
			}}

			convey.Convey("Then growth is last minus first", func() {
				convey.So(n.Growth(), convey.ShouldEqual, 100)
			})
		})

		convey.Convey("When the trend is declining", func() {
			n := model.Navigator{Trend: []model.TrendPoint{{Value: 600}, {Value: 550}}}
			convey.So(n.Growth(), convey.ShouldEqual, -50)
		})

		convey.Convey("When the trend is empty", func() {
			n := model.Navigator{PilotScore: 640}

			convey.Convey("Then growth is zero", func() {
				convey.So(n.Growth(), convey.ShouldEqual, 0)
			})
		})

		convey.Convey("When the trend has a single point", func() {
			n := model.Navigator{Trend: []model.TrendPoint{{Value: 42}}}
			convey.So(n.Growth(), convey.ShouldEqual, 0)
		})
	})
}
