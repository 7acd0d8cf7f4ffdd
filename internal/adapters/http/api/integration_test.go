package api_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/okian/brokerlens/internal/adapters/http/api"
	service "github.com/okian/brokerlens/internal/app"
	"github.com/okian/brokerlens/internal/domain/types"
	"github.com/okian/brokerlens/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestServerWithService(t *testing.T) {
	if err := logger.InitWithWriter(io.Discard, logger.FormatText); err != nil {
		t.Fatalf("init logger: %v", err)
	}

	Convey("Given the API served over a synthetic service", t, func() {
		ctx := context.Background()
		svc := service.New(service.WithSeedSizes(8, 20), service.WithChartSize(320, 200))
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		mux := http.NewServeMux()
		api.NewServer(svc, svc, api.WithMaxLeaderboardLimit(50)).Register(ctx, mux)
		srv := httptest.NewServer(mux)
		defer srv.Close()

		Convey("When the leaderboard is fetched", func() {
			res, err := http.Get(srv.URL + "/leaderboard?limit=50")
			So(err, ShouldBeNil)
			defer func() { _ = res.Body.Close() }()

			var rows []types.Entry
			So(json.NewDecoder(res.Body).Decode(&rows), ShouldBeNil)

			Convey("Then every navigator is ranked once", func() {
				So(res.StatusCode, ShouldEqual, http.StatusOK)
				So(rows, ShouldHaveLength, 8)
				for i, r := range rows {
					So(r.Rank, ShouldEqual, i+1)
				}
			})

			Convey("Then each row resolves to a rank entry and a chart", func() {
				rank, err := http.Get(srv.URL + "/rank/" + rows[0].NavigatorID)
				So(err, ShouldBeNil)
				_ = rank.Body.Close()
				So(rank.StatusCode, ShouldEqual, http.StatusOK)

				chart, err := http.Get(srv.URL + "/trend/" + rows[0].NavigatorID + ".png")
				So(err, ShouldBeNil)
				_ = chart.Body.Close()
				So(chart.StatusCode, ShouldEqual, http.StatusOK)
				So(chart.Header.Get("Content-Type"), ShouldEqual, "image/png")
			})
		})

		Convey("When the service reloads over HTTP", func() {
			res, err := http.Post(srv.URL+"/reload", "application/json", http.NoBody)
			So(err, ShouldBeNil)
			_ = res.Body.Close()

			Convey("Then the reload is counted", func() {
				So(res.StatusCode, ShouldEqual, http.StatusOK)
				So(svc.GetStats()["reloads"], ShouldEqual, int64(1))
			})
		})
	})
}
