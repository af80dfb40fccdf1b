package service

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hranalytics/internal/core/records"
	"hranalytics/internal/core/window"
	perr "hranalytics/internal/platform/errors"
	pmetrics "hranalytics/internal/platform/metrics"
	ptime "hranalytics/internal/platform/time"
	kit "hranalytics/internal/platform/testkit"
	"hranalytics/internal/services/api/analytics/domain"
)

var now = time.Date(2025, 3, 20, 12, 0, 0, 0, time.UTC)

// fakeRepo filters a fixed record set by window and remembers every window asked for
type fakeRepo struct {
	recs    []records.QueryRecord
	err     error
	windows []window.Window
}

func (f *fakeRepo) Source() string { return "fake" }

func (f *fakeRepo) Fetch(_ context.Context, w window.Window) ([]records.QueryRecord, error) {
	f.windows = append(f.windows, w)
	if f.err != nil {
		return nil, f.err
	}
	return records.InWindow(f.recs, w), nil
}

func rec(user, ts, cat string, sat int) records.QueryRecord {
	return records.QueryRecord{UserID: user, Timestamp: ts, Category: cat, Satisfaction: sat,
		Department: records.Unknown, Seniority: records.SeniorityUnknown}
}

func sample() []records.QueryRecord {
	return []records.QueryRecord{
		rec("u1", "2025-03-15T10:00:00Z", "benefits", 5),
		rec("u2", "2025-03-15T11:00:00Z", "payroll", 3),
		rec("u1", "2025-03-16T09:00:00Z", "benefits", 4),
		rec("u3", "2025-03-10T09:00:00Z", "payroll", 2),
	}
}

func newSvc(r *fakeRepo, m *pmetrics.Recorder) *Svc {
	return New(r, WithClock(ptime.Fixed(now)), WithMetrics(m))
}

func TestUsage_NamedRange(t *testing.T) {
	r := &fakeRepo{recs: sample()}
	out, err := newSvc(r, nil).Usage(context.Background(), domain.RangeQuery{Range: "7d"})
	if err != nil {
		t.Fatalf("usage: %v", err)
	}
	if out.TotalQueries != 3 || out.UniqueUsers != 2 {
		t.Fatalf("usage = %+v", out)
	}
	if len(r.windows) != 1 || !r.windows[0].End.Equal(now) || !r.windows[0].Start.Equal(now.AddDate(0, 0, -7)) {
		t.Fatalf("windows = %+v", r.windows)
	}
}

func TestUsage_ExplicitAndFallback(t *testing.T) {
	r := &fakeRepo{recs: sample()}
	s := newSvc(r, nil)

	out, err := s.Usage(context.Background(), domain.RangeQuery{StartDate: "2025-03-15", EndDate: "2025-03-15"})
	if err != nil || out.TotalQueries != 2 {
		t.Fatalf("explicit usage = %+v, %v", out, err)
	}

	// unparsable dates fall back to 7 days ending now, never an error
	if _, err := s.Usage(context.Background(), domain.RangeQuery{StartDate: "not-a-date", EndDate: "2025-03-10"}); err != nil {
		t.Fatalf("fallback should not fail: %v", err)
	}
	w := r.windows[1]
	if !w.End.Equal(now) || w.End.Sub(w.Start) != 7*24*time.Hour {
		t.Fatalf("fallback window = %+v", w)
	}
}

func TestCategories_FetchesPreviousWeek(t *testing.T) {
	r := &fakeRepo{recs: sample()}
	out, err := newSvc(r, nil).Categories(context.Background(), domain.RangeQuery{StartDate: "2025-03-15", EndDate: "2025-03-16"})
	if err != nil {
		t.Fatalf("categories: %v", err)
	}
	if len(r.windows) != 2 {
		t.Fatalf("want two fetches, got %d", len(r.windows))
	}
	prev := r.windows[1]
	if !prev.End.Equal(r.windows[0].Start) || prev.End.Sub(prev.Start) != PreviousSpan {
		t.Fatalf("previous window = %+v", prev)
	}
	if out.RecentCounts["benefits"] != 2 || out.PreviousCounts["payroll"] != 1 {
		t.Fatalf("counts = %v / %v", out.RecentCounts, out.PreviousCounts)
	}
}

func TestReports_FetchFailureIsUnavailable(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	m := pmetrics.New()
	s := newSvc(&fakeRepo{err: cause}, m)
	ctx := context.Background()
	q := domain.RangeQuery{}

	calls := map[string]func() error{
		domain.ReportUsage:        func() error { _, err := s.Usage(ctx, q); return err },
		domain.ReportCategories:   func() error { _, err := s.Categories(ctx, q); return err },
		domain.ReportPerformance:  func() error { _, err := s.Performance(ctx, q); return err },
		domain.ReportDemographics: func() error { _, err := s.Demographics(ctx, q); return err },
		domain.ReportDashboard:    func() error { _, err := s.Dashboard(ctx, q); return err },
	}
	for name, fn := range calls {
		err := fn()
		if !perr.IsCode(err, perr.ErrorCodeUnavailable) {
			t.Fatalf("%s: err = %v, want unavailable", name, err)
		}
		if !errors.Is(err, cause) {
			t.Fatalf("%s: cause not wrapped", name)
		}
		if w := perr.WireFrom(err); w.Error != FetchFailedMsg {
			t.Fatalf("%s: wire message = %q", name, w.Error)
		}
	}

	rr := httptest.NewRecorder()
	m.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body, _ := io.ReadAll(rr.Body)
	kit.MustContain(t, string(body), `hra_reports_total{outcome="error",report="dashboard"} 1`)
	kit.MustContain(t, string(body), `hra_record_fetch_duration_seconds_count{outcome="error",source="fake"} 5`)
}

func TestPerformanceDemographicsDashboard(t *testing.T) {
	s := newSvc(&fakeRepo{recs: sample()}, nil)
	ctx := context.Background()
	q := domain.RangeQuery{Range: "30d"}

	perf, err := s.Performance(ctx, q)
	if err != nil || len(perf.ChartData) != 3 {
		t.Fatalf("performance = %+v, %v", perf, err)
	}
	if perf.ChartData[0].Date != "2025-03-10" {
		t.Fatalf("chart not sorted: %+v", perf.ChartData)
	}

	demo, err := s.Demographics(ctx, q)
	if err != nil || demo.DepartmentUsage[records.Unknown] != 100 {
		t.Fatalf("demographics = %+v, %v", demo, err)
	}

	dash, err := s.Dashboard(ctx, q)
	if err != nil || dash.TotalQueries != 4 || dash.ActiveUsers != 3 {
		t.Fatalf("dashboard = %+v, %v", dash, err)
	}
}

func TestNew_NilRepoPanics(t *testing.T) {
	kit.MustPanic(t, func() { New(nil) })
}
