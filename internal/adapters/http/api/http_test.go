package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/okian/brokerlens/internal/adapters/http/api"
	"github.com/okian/brokerlens/internal/adapters/repository"
	service "github.com/okian/brokerlens/internal/app"
	"github.com/okian/brokerlens/internal/domain/insight"
	"github.com/okian/brokerlens/internal/domain/model"
	"github.com/okian/brokerlens/internal/domain/types"
	"github.com/okian/brokerlens/internal/domain/valuemap"
	. "github.com/smartystreets/goconvey/convey"
)

// mockDependencies is an in-memory stand-in for the value service.
type mockDependencies struct {
	rows      []types.Entry
	entries   map[string]model.NavigatorValueEntry
	summary   insight.Summary
	dataset   model.Dataset
	chart     []byte
	err       error
	reloadErr error

	lastBy    valuemap.Order
	lastLimit int
	reloads   int
}

func (m *mockDependencies) Leaderboard(_ context.Context, by valuemap.Order, n int) ([]types.Entry, error) {
	m.lastBy, m.lastLimit = by, n
	if m.err != nil {
		return nil, m.err
	}
	if n > len(m.rows) {
		return m.rows, nil
	}
	return m.rows[:n], nil
}

func (m *mockDependencies) Entry(_ context.Context, id string) (model.NavigatorValueEntry, error) {
	if m.err != nil {
		return model.NavigatorValueEntry{}, m.err
	}
	e, ok := m.entries[id]
	if !ok {
		return model.NavigatorValueEntry{}, repository.ErrNotFound
	}
	return e, nil
}

func (m *mockDependencies) TrendChart(_ context.Context, id string) ([]byte, error) {
	if _, ok := m.entries[id]; !ok {
		return nil, repository.ErrNotFound
	}
	return m.chart, nil
}

func (m *mockDependencies) Insight(context.Context) (insight.Summary, error) {
	return m.summary, m.err
}

func (m *mockDependencies) Dataset(context.Context) (model.Dataset, error) {
	return m.dataset, m.err
}

func (m *mockDependencies) Reload(context.Context) error {
	m.reloads++
	return m.reloadErr
}

type mockStatsProvider struct {
	stats map[string]interface{}
}

func (m *mockStatsProvider) GetStats() map[string]interface{} {
	return m.stats
}

func newMock() *mockDependencies {
	rows := make([]types.Entry, 5)
	for i := range rows {
		rows[i] = types.Entry{Rank: i + 1, NavigatorID: fmt.Sprintf("nav-%03d", i+1), Score: 90 - i*10}
	}
	return &mockDependencies{
		rows: rows,
		entries: map[string]model.NavigatorValueEntry{
			"nav-001": {NavigatorID: "nav-001", Name: "Alpha", ValueRank: 1, RevenueRank: 2},
		},
		summary: insight.Summary{Navigators: 5, RevenueLeader: "nav-002"},
		dataset: model.Dataset{Navigators: []model.Navigator{{ID: "nav-001"}}},
		chart:   []byte("\x89PNG fake"),
	}
}

func serve(mux *http.ServeMux, method, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, http.NoBody)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func decodeError(w *httptest.ResponseRecorder) map[string]string {
	var body map[string]string
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	return body
}

func TestServer_Register(t *testing.T) {
	Convey("Given a registered API server", t, func() {
		deps := newMock()
		stats := &mockStatsProvider{stats: map[string]interface{}{"started": true}}
		server := api.NewServer(deps, stats, api.WithMaxLeaderboardLimit(3))
		mux := http.NewServeMux()
		server.Register(context.Background(), mux)

		Convey("Then health serves Prometheus metrics", func() {
			w := serve(mux, http.MethodGet, "/healthz")
			So(w.Code, ShouldEqual, http.StatusOK)
		})

		Convey("Then stats are served as JSON", func() {
			w := serve(mux, http.MethodGet, "/stats")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Header().Get("Content-Type"), ShouldEqual, "application/json; charset=utf-8")
			So(w.Body.String(), ShouldContainSubstring, `"started":true`)
		})

		Convey("Then the dashboard page is embedded", func() {
			w := serve(mux, http.MethodGet, "/dashboard")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, "Navigator leaderboard")
		})

		Convey("Then unsupported methods are rejected", func() {
			w := serve(mux, http.MethodPost, "/leaderboard")
			So(w.Code, ShouldEqual, http.StatusMethodNotAllowed)
			So(w.Header().Get("Allow"), ShouldEqual, http.MethodGet)

			w = serve(mux, http.MethodGet, "/reload")
			So(w.Code, ShouldEqual, http.StatusMethodNotAllowed)
		})
	})
}

func TestLeaderboardHandler(t *testing.T) {
	Convey("Given a leaderboard handler capped at 3", t, func() {
		deps := newMock()
		mux := http.NewServeMux()
		api.NewServer(deps, &mockStatsProvider{}, api.WithMaxLeaderboardLimit(3)).Register(context.Background(), mux)

		Convey("When no parameters are given", func() {
			w := serve(mux, http.MethodGet, "/leaderboard")

			Convey("Then the default limit is capped and value order used", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(deps.lastLimit, ShouldEqual, 3)
				So(deps.lastBy, ShouldEqual, valuemap.ByValue)

				var rows []types.Entry
				So(json.Unmarshal(w.Body.Bytes(), &rows), ShouldBeNil)
				So(rows, ShouldHaveLength, 3)
				So(rows[0].NavigatorID, ShouldEqual, "nav-001")
			})
		})

		Convey("When ordering by revenue", func() {
			w := serve(mux, http.MethodGet, "/leaderboard?limit=2&by=revenue")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(deps.lastBy, ShouldEqual, valuemap.ByRevenue)
			So(deps.lastLimit, ShouldEqual, 2)
		})

		Convey("When the limit is invalid", func() {
			for _, q := range []string{"limit=0", "limit=-1", "limit=abc"} {
				w := serve(mux, http.MethodGet, "/leaderboard?"+q)
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				So(decodeError(w)["code"], ShouldEqual, "bad_request")
			}
		})

		Convey("When the limit exceeds the maximum", func() {
			w := serve(mux, http.MethodGet, "/leaderboard?limit=4")
			So(w.Code, ShouldEqual, http.StatusBadRequest)
			So(decodeError(w)["code"], ShouldEqual, "limit_exceeded")
		})

		Convey("When the order is unknown", func() {
			w := serve(mux, http.MethodGet, "/leaderboard?by=followers")
			So(w.Code, ShouldEqual, http.StatusBadRequest)
			So(decodeError(w)["message"], ShouldContainSubstring, "api.get_leaderboard")
		})

		Convey("When the service is not started", func() {
			deps.err = service.ErrNotStarted
			w := serve(mux, http.MethodGet, "/leaderboard?limit=1")
			So(w.Code, ShouldEqual, http.StatusServiceUnavailable)
		})

		Convey("When the service fails", func() {
			deps.err = errors.New("boom")
			w := serve(mux, http.MethodGet, "/leaderboard?limit=1")
			So(w.Code, ShouldEqual, http.StatusInternalServerError)
			So(decodeError(w)["code"], ShouldEqual, "internal_error")
		})
	})
}

func TestRankAndTrendHandlers(t *testing.T) {
	Convey("Given registered rank and trend routes", t, func() {
		deps := newMock()
		mux := http.NewServeMux()
		api.NewServer(deps, &mockStatsProvider{}).Register(context.Background(), mux)

		Convey("When a known navigator is requested", func() {
			w := serve(mux, http.MethodGet, "/rank/nav-001")

			Convey("Then its full entry is returned", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				var e model.NavigatorValueEntry
				So(json.Unmarshal(w.Body.Bytes(), &e), ShouldBeNil)
				So(e.Name, ShouldEqual, "Alpha")
				So(e.RevenueRank, ShouldEqual, 2)
			})
		})

		Convey("When an unknown navigator is requested", func() {
			w := serve(mux, http.MethodGet, "/rank/nav-999")
			So(w.Code, ShouldEqual, http.StatusNotFound)
			So(decodeError(w)["code"], ShouldEqual, "not_found")
		})

		Convey("When the path is malformed", func() {
			So(serve(mux, http.MethodGet, "/rank/").Code, ShouldEqual, http.StatusBadRequest)
			So(serve(mux, http.MethodGet, "/rank/a/b").Code, ShouldEqual, http.StatusBadRequest)
			So(serve(mux, http.MethodGet, "/trend/nav-001").Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When a trend chart is requested", func() {
			w := serve(mux, http.MethodGet, "/trend/nav-001.png")

			Convey("Then the PNG bytes are streamed", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Header().Get("Content-Type"), ShouldEqual, "image/png")
				So(strings.HasPrefix(w.Body.String(), "\x89PNG"), ShouldBeTrue)
			})
		})

		Convey("When a trend chart for an unknown navigator is requested", func() {
			w := serve(mux, http.MethodGet, "/trend/nav-999.png")
			So(w.Code, ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestInsightDatasetReloadHandlers(t *testing.T) {
	Convey("Given registered insight, dataset and reload routes", t, func() {
		deps := newMock()
		mux := http.NewServeMux()
		api.NewServer(deps, &mockStatsProvider{}).Register(context.Background(), mux)

		Convey("Then the insight summary is served", func() {
			w := serve(mux, http.MethodGet, "/insights")
			So(w.Code, ShouldEqual, http.StatusOK)
			var s insight.Summary
			So(json.Unmarshal(w.Body.Bytes(), &s), ShouldBeNil)
			So(s.RevenueLeader, ShouldEqual, "nav-002")
		})

		Convey("Then the dataset is served", func() {
			w := serve(mux, http.MethodGet, "/dataset")
			So(w.Code, ShouldEqual, http.StatusOK)
			var ds model.Dataset
			So(json.Unmarshal(w.Body.Bytes(), &ds), ShouldBeNil)
			So(ds.Navigators[0].ID, ShouldEqual, "nav-001")
		})

		Convey("When a reload succeeds", func() {
			w := serve(mux, http.MethodPost, "/reload")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, "reloaded")
			So(deps.reloads, ShouldEqual, 1)
		})

		Convey("When a reload hits an invalid dataset", func() {
			deps.reloadErr = fmt.Errorf("%w: duplicate navigator id", repository.ErrInvalidDataset)
			w := serve(mux, http.MethodPost, "/reload")
			So(w.Code, ShouldEqual, http.StatusUnprocessableEntity)
		})
	})
}

func TestErrorHelpers(t *testing.T) {
	Convey("Given an operation tagged error", t, func() {
		err := api.Wrap("api.op", repository.ErrNotFound)

		Convey("Then the kind is still reachable", func() {
			So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
			So(err.Error(), ShouldEqual, "api.op: navigator not found")
			So(api.Wrap("api.op", nil), ShouldBeNil)
			So(errors.Is(api.NewKind("api.op", api.ErrBadRequest), api.ErrBadRequest), ShouldBeTrue)
		})
	})
}
