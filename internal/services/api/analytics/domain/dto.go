// Package domain holds the analytics request and port types
package domain

import "hranalytics/internal/core/window"

// RangeQuery is the report window as sent on the query string
// validation failures are logged by the binder and the resolver falls back
type RangeQuery struct {
	StartDate string `query:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate   string `query:"end_date" validate:"omitempty,datetime=2006-01-02"`
	Range     string `query:"range" validate:"omitempty,oneof=7d 14d 30d 3m 6m 9m"`
}

// Request converts to the resolver input
func (q RangeQuery) Request() window.Request {
	return window.Request{StartDate: q.StartDate, EndDate: q.EndDate, Range: q.Range}
}

// Report names used in logs and metrics
const (
	ReportUsage        = "usage"
	ReportCategories   = "categories"
	ReportPerformance  = "performance"
	ReportDemographics = "demographics"
	ReportDashboard    = "dashboard"
)
