package module

import (
	"context"

	"hranalytics/internal/core/metrics"
	"hranalytics/internal/services/api/analytics/domain"
	analyticssvc "hranalytics/internal/services/api/analytics/service"
)

// Ports is what other modules may look up under the analytics name
type Ports = domain.ServicePort

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

type adaptAnalyticsPort struct{ svc analyticssvc.Service }

func (a adaptAnalyticsPort) Usage(ctx context.Context, in domain.RangeQuery) (metrics.UsageReport, error) {
	return a.svc.Usage(ctx, in)
}

func (a adaptAnalyticsPort) Categories(ctx context.Context, in domain.RangeQuery) (metrics.CategoryReport, error) {
	return a.svc.Categories(ctx, in)
}

func (a adaptAnalyticsPort) Performance(ctx context.Context, in domain.RangeQuery) (metrics.PerformanceReport, error) {
	return a.svc.Performance(ctx, in)
}

func (a adaptAnalyticsPort) Demographics(ctx context.Context, in domain.RangeQuery) (metrics.DemographicsReport, error) {
	return a.svc.Demographics(ctx, in)
}

func (a adaptAnalyticsPort) Dashboard(ctx context.Context, in domain.RangeQuery) (metrics.DashboardReport, error) {
	return a.svc.Dashboard(ctx, in)
}
