package http

import (
	"context"
	"errors"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"

	"hranalytics/internal/core/metrics"
	"hranalytics/internal/modkit/httpkit"
	perr "hranalytics/internal/platform/errors"
	phttp "hranalytics/internal/platform/net/http"
	"hranalytics/internal/platform/net/middleware"
	kit "hranalytics/internal/platform/testkit"
	"hranalytics/internal/services/api/analytics/domain"

	"github.com/go-chi/chi/v5"
)

var reportHeaders = map[string]string{
	"Access-Control-Allow-Origin":  "*",
	"Access-Control-Allow-Methods": "OPTIONS,GET",
	"Access-Control-Allow-Headers": "Content-Type,Authorization",
}

type fakeSvc struct {
	err  error
	last domain.RangeQuery
}

func (f *fakeSvc) Usage(_ context.Context, in domain.RangeQuery) (metrics.UsageReport, error) {
	f.last = in
	return metrics.UsageReport{TotalQueries: 3, UniqueUsers: 2,
		DailyActiveUsers: map[string]int{"2025-03-15": 2}, QueryVolume: map[string]int{"2025-03-15": 3}}, f.err
}

func (f *fakeSvc) Categories(_ context.Context, in domain.RangeQuery) (metrics.CategoryReport, error) {
	f.last = in
	return metrics.CategoryReport{TrendingTopics: []metrics.Trend{{Category: "leave", Growth: metrics.Inf, New: true}}}, f.err
}

func (f *fakeSvc) Performance(_ context.Context, in domain.RangeQuery) (metrics.PerformanceReport, error) {
	f.last = in
	return metrics.PerformanceReport{}, f.err
}

func (f *fakeSvc) Demographics(_ context.Context, in domain.RangeQuery) (metrics.DemographicsReport, error) {
	f.last = in
	return metrics.DemographicsReport{}, f.err
}

func (f *fakeSvc) Dashboard(_ context.Context, in domain.RangeQuery) (metrics.DashboardReport, error) {
	f.last = in
	return metrics.DashboardReport{ActiveUsers: 2}, f.err
}

func newMux(s domain.ServicePort) *chi.Mux {
	mux := chi.NewMux()
	r := phttp.AdaptChi(mux)
	r.Use(middleware.RequestID())
	r.Route("/analytics", func(sub httpkit.Router) {
		sub.Use(httpkit.ReportCORS())
		Register(sub, s)
	})
	return mux
}

func do(mux *chi.Mux, method, target string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(method, target, nil))
	return rr
}

func TestUsage_OKWithCORS(t *testing.T) {
	f := &fakeSvc{}
	rr := do(newMux(f), stdhttp.MethodGet, "/analytics/usage?range=30d")
	kit.MustStatus(t, rr, stdhttp.StatusOK)
	kit.MustHeaders(t, rr, reportHeaders)

	var body map[string]any
	kit.DecodeJSON(t, rr, &body)
	for _, k := range []string{"total_queries", "unique_users", "daily_active_users", "query_volume", "avg_queries_per_user"} {
		if _, ok := body[k]; !ok {
			t.Fatalf("missing %q in %v", k, body)
		}
	}
	if f.last.Range != "30d" {
		t.Fatalf("range not bound: %+v", f.last)
	}
}

func TestInvalidParams_StillServed(t *testing.T) {
	f := &fakeSvc{}
	rr := do(newMux(f), stdhttp.MethodGet, "/analytics/dashboard?start_date=not-a-date&end_date=2025-03-10&range=1y")
	kit.MustStatus(t, rr, stdhttp.StatusOK)
	if f.last.StartDate != "not-a-date" || f.last.Range != "1y" {
		t.Fatalf("raw params should reach the resolver: %+v", f.last)
	}
}

func TestCategories_NewTrendIsNull(t *testing.T) {
	rr := do(newMux(&fakeSvc{}), stdhttp.MethodGet, "/analytics/categories")
	kit.MustStatus(t, rr, stdhttp.StatusOK)
	kit.MustContain(t, rr.Body.String(), `"growth":null`)
	kit.MustContain(t, rr.Body.String(), `"new":true`)
}

func TestFetchFailure_503WithCORS(t *testing.T) {
	f := &fakeSvc{err: perr.Wrap(errors.New("dial tcp"), perr.ErrorCodeUnavailable, "failed to load analytics records")}
	for _, p := range []string{PathUsage, PathCategories, PathPerformance, PathDemographics, PathDashboard} {
		rr := do(newMux(f), stdhttp.MethodGet, "/analytics"+p)
		kit.MustStatus(t, rr, stdhttp.StatusServiceUnavailable)
		kit.MustHeaders(t, rr, reportHeaders)

		var w perr.Wire
		kit.DecodeJSON(t, rr, &w)
		if w.Error != "failed to load analytics records" || w.Code != "unavailable" || w.RequestID == "" {
			t.Fatalf("%s: wire = %+v", p, w)
		}
	}
}

func TestPreflight(t *testing.T) {
	for _, p := range []string{PathUsage, PathDashboard} {
		rr := do(newMux(&fakeSvc{}), stdhttp.MethodOptions, "/analytics"+p)
		kit.MustStatus(t, rr, stdhttp.StatusNoContent)
		kit.MustHeaders(t, rr, reportHeaders)
		if rr.Body.Len() != 0 {
			t.Fatalf("preflight body = %q", rr.Body.String())
		}
	}
}

func TestFallbacks_JSONWithCORS(t *testing.T) {
	mux := newMux(&fakeSvc{})

	rr := do(mux, stdhttp.MethodGet, "/analytics/nope")
	kit.MustStatus(t, rr, stdhttp.StatusNotFound)
	kit.MustHeaders(t, rr, reportHeaders)

	rr = do(mux, stdhttp.MethodPost, "/analytics/usage")
	kit.MustStatus(t, rr, stdhttp.StatusMethodNotAllowed)
	var w perr.Wire
	kit.DecodeJSON(t, rr, &w)
	if w.Code != "method_not_allowed" {
		t.Fatalf("wire = %+v", w)
	}
}
