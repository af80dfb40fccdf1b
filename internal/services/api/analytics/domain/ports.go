package domain

import (
	"context"

	"hranalytics/internal/core/metrics"
)

// ServicePort is consumed by handlers and other modules
type ServicePort interface {
	Usage(ctx context.Context, in RangeQuery) (metrics.UsageReport, error)
	Categories(ctx context.Context, in RangeQuery) (metrics.CategoryReport, error)
	Performance(ctx context.Context, in RangeQuery) (metrics.PerformanceReport, error)
	Demographics(ctx context.Context, in RangeQuery) (metrics.DemographicsReport, error)
	Dashboard(ctx context.Context, in RangeQuery) (metrics.DashboardReport, error)
}
