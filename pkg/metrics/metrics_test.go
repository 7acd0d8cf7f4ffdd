package metrics

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with a private registry", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then it should use the default naming", func() {
				So(manager, ShouldNotBeNil)
				So(manager.namespace, ShouldEqual, "brokerlens")
				So(manager.subsystem, ShouldEqual, "value")
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test_namespace"),
				WithSubsystem("test_subsystem"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithConstLabels(map[string]string{"env": "test"}),
				WithPrometheusRegistry(registry),
			)
			manager.valueMapBuilds.Inc()

			Convey("Then metrics should carry the custom name and labels", func() {
				families, err := registry.Gather()
				So(err, ShouldBeNil)

				var found bool
				for _, f := range families {
					if f.GetName() == "test_namespace_test_subsystem_value_map_builds_total" {
						found = true
						So(f.GetMetric()[0].GetLabel()[0].GetName(), ShouldEqual, "env")
					}
				}
				So(found, ShouldBeTrue)
			})
		})

		Convey("When passing empty options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace(""),
				WithSubsystem(""),
				WithHistogramBuckets(nil),
				WithConstLabels(nil),
				WithPrometheusRegistry(registry),
			)

			Convey("Then defaults are kept", func() {
				So(manager.namespace, ShouldEqual, "brokerlens")
				So(manager.histogramBuckets, ShouldNotBeEmpty)
				So(manager.constLabels, ShouldNotBeNil)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given the global metrics", t, func() {
		Convey("When recording value map builds", func() {
			before := testutil.ToFloat64(globalManager.valueMapBuilds)
			RecordValueMapBuild(1.5)
			RecordValueMapBuild(0.2)

			Convey("Then the counter increases", func() {
				So(testutil.ToFloat64(globalManager.valueMapBuilds), ShouldEqual, before+2)
			})
		})

		Convey("When updating dataset gauges", func() {
			UpdateDatasetSize(24, 120)
			UpdateRevenueQuality(61.5, 12.25)

			Convey("Then the gauges hold the last value", func() {
				So(testutil.ToFloat64(globalManager.navigatorsTotal), ShouldEqual, 24)
				So(testutil.ToFloat64(globalManager.pilotsTotal), ShouldEqual, 120)
				So(testutil.ToFloat64(globalManager.highQualityRevenue), ShouldEqual, 61.5)
				So(testutil.ToFloat64(globalManager.atRiskRevenue), ShouldEqual, 12.25)
			})
		})

		Convey("When recording lifecycle and chart events", func() {
			So(func() {
				RecordDatasetReload()
				RecordDatasetReloadError()
				RecordChartRender()
				RecordChartRenderError()
				RecordLookupMiss()
			}, ShouldNotPanic)
		})

		Convey("When recording chart cache lookups", func() {
			hits := testutil.ToFloat64(globalManager.chartCacheHits)
			misses := testutil.ToFloat64(globalManager.chartCacheMisses)
			RecordChartCacheHit()
			RecordChartCacheMiss()
			RecordChartCacheMiss()

			Convey("Then both counters advance", func() {
				So(testutil.ToFloat64(globalManager.chartCacheHits), ShouldEqual, hits+1)
				So(testutil.ToFloat64(globalManager.chartCacheMisses), ShouldEqual, misses+2)
			})
		})

		Convey("When recording HTTP and error metrics", func() {
			So(func() {
				RecordHTTPRequest("leaderboard", "GET", "200")
				RecordHTTPRequestDuration("leaderboard", "GET", "200", 3)
				RecordErrorByType("not_found", "medium")
				RecordErrorByEndpoint("rank", "GET", "not_found")
				RecordErrorLatency("http", "not_found", 1)
			}, ShouldNotPanic)
		})

		Convey("When recording system metrics", func() {
			So(func() {
				UpdateSystemMemoryUsage(1 << 20)
				UpdateSystemGoroutineCount(12)
				RecordSystemGCPauseTime(0.3)
			}, ShouldNotPanic)
		})

		Convey("When gathering the custom registry", func() {
			RecordHTTPRequest("stats", "GET", "200")
			families, err := GetRegistry().Gather()

			Convey("Then only brokerlens metrics are exposed", func() {
				So(err, ShouldBeNil)
				So(families, ShouldNotBeEmpty)
				for _, f := range families {
					So(strings.HasPrefix(f.GetName(), "brokerlens_value_"), ShouldBeTrue)
				}
			})
		})
	})
}
