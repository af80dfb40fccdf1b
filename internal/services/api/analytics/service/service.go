// Package service contains analytics workflows
// each report resolves one window, fetches once and reduces once
package service

import (
	"context"
	"time"

	"hranalytics/internal/core/metrics"
	"hranalytics/internal/core/records"
	"hranalytics/internal/core/window"
	perr "hranalytics/internal/platform/errors"
	"hranalytics/internal/platform/logger"
	pmetrics "hranalytics/internal/platform/metrics"
	ptime "hranalytics/internal/platform/time"
	"hranalytics/internal/services/api/analytics/domain"
	"hranalytics/internal/services/api/analytics/repo"
)

// PreviousSpan is the comparison window used for category trends
const PreviousSpan = 7 * 24 * time.Hour

// FetchFailedMsg is the message callers see when the record store fails
const FetchFailedMsg = "failed to load analytics records"

// Service defines the analytics service contract
type Service interface {
	domain.ServicePort
}

// Svc implements the analytics service
type Svc struct {
	Repo    repo.Repo
	clock   ptime.Clock
	metrics *pmetrics.Recorder
}

// Option tunes Svc
type Option func(*Svc)

// WithClock overrides the wall clock used to resolve named ranges
func WithClock(c ptime.Clock) Option { return func(s *Svc) { s.clock = c } }

// WithMetrics records report and fetch metrics
func WithMetrics(m *pmetrics.Recorder) Option { return func(s *Svc) { s.metrics = m } }

// New constructs an analytics service
func New(r repo.Repo, opts ...Option) *Svc {
	if r == nil {
		panic("analytics.Service requires a non nil Repo")
	}
	s := &Svc{Repo: r}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Usage returns volume and active user counts
func (s *Svc) Usage(ctx context.Context, in domain.RangeQuery) (out metrics.UsageReport, err error) {
	ctx = logger.WithReport(ctx, domain.ReportUsage)
	defer func() { s.metrics.Report(domain.ReportUsage, err) }()

	recs, err := s.fetch(ctx, s.resolve(ctx, in))
	if err != nil {
		return out, err
	}
	return metrics.Usage(recs), nil
}

// Categories compares the requested window with the 7 days before it
func (s *Svc) Categories(ctx context.Context, in domain.RangeQuery) (out metrics.CategoryReport, err error) {
	ctx = logger.WithReport(ctx, domain.ReportCategories)
	defer func() { s.metrics.Report(domain.ReportCategories, err) }()

	w := s.resolve(ctx, in)
	recent, err := s.fetch(ctx, w)
	if err != nil {
		return out, err
	}
	previous, err := s.fetch(ctx, w.Previous(PreviousSpan))
	if err != nil {
		return out, err
	}
	return metrics.Categories(recent, previous), nil
}

// Performance returns daily satisfaction, resolution and latency
func (s *Svc) Performance(ctx context.Context, in domain.RangeQuery) (out metrics.PerformanceReport, err error) {
	ctx = logger.WithReport(ctx, domain.ReportPerformance)
	defer func() { s.metrics.Report(domain.ReportPerformance, err) }()

	recs, err := s.fetch(ctx, s.resolve(ctx, in))
	if err != nil {
		return out, err
	}
	return metrics.Performance(recs), nil
}

// Demographics returns usage shares by department, seniority and tenure
func (s *Svc) Demographics(ctx context.Context, in domain.RangeQuery) (out metrics.DemographicsReport, err error) {
	ctx = logger.WithReport(ctx, domain.ReportDemographics)
	defer func() { s.metrics.Report(domain.ReportDemographics, err) }()

	recs, err := s.fetch(ctx, s.resolve(ctx, in))
	if err != nil {
		return out, err
	}
	return metrics.Demographics(recs), nil
}

// Dashboard returns the headline numbers
func (s *Svc) Dashboard(ctx context.Context, in domain.RangeQuery) (out metrics.DashboardReport, err error) {
	ctx = logger.WithReport(ctx, domain.ReportDashboard)
	defer func() { s.metrics.Report(domain.ReportDashboard, err) }()

	recs, err := s.fetch(ctx, s.resolve(ctx, in))
	if err != nil {
		return out, err
	}
	return metrics.Dashboard(recs), nil
}

func (s *Svc) resolve(ctx context.Context, in domain.RangeQuery) window.Window {
	res := window.Resolve(in.Request(), s.clock.Now())
	ev := logger.C(ctx).Debug()
	if res.FellBack {
		ev = logger.C(ctx).Warn().Str("start_date", in.StartDate).Str("end_date", in.EndDate)
	}
	ev.Time("start", res.Window.Start).
		Time("end", res.Window.End).
		Bool("explicit", res.Explicit).
		Bool("fell_back", res.FellBack).
		Msg("report window")
	return res.Window
}

// fetch loads one window, the store error is logged and replaced by a stable message
func (s *Svc) fetch(ctx context.Context, w window.Window) ([]records.QueryRecord, error) {
	start := time.Now()
	recs, err := s.Repo.Fetch(ctx, w)
	s.metrics.Fetch(s.Repo.Source(), time.Since(start), len(recs), err)
	if err != nil {
		logger.C(ctx).Error().Err(err).
			Str("source", s.Repo.Source()).
			Time("start", w.Start).
			Time("end", w.End).
			Msg("record fetch failed")
		return nil, perr.Wrap(err, perr.ErrorCodeUnavailable, FetchFailedMsg)
	}
	return recs, nil
}
