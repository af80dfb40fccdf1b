// Package http provides http transport for analytics
package http

import (
	stdhttp "net/http"

	"hranalytics/internal/modkit/httpkit"
	"hranalytics/internal/services/api/analytics/domain"
)

// Paths served under the module prefix
const (
	PathUsage        = "/usage"
	PathCategories   = "/categories"
	PathPerformance  = "/performance"
	PathDemographics = "/demographics"
	PathDashboard    = "/dashboard"
)

// Register mounts analytics endpoints on the given router
func Register(r httpkit.Router, s domain.ServicePort) {
	h := &handlers{svc: s}
	httpkit.JSONFallbacks(r)

	routes := []struct {
		path string
		fn   func(*stdhttp.Request, domain.RangeQuery) (any, error)
	}{
		{PathUsage, h.usage},
		{PathCategories, h.categories},
		{PathPerformance, h.performance},
		{PathDemographics, h.demographics},
		{PathDashboard, h.dashboard},
	}
	for _, rt := range routes {
		httpkit.GetQuery(r, rt.path, rt.fn)
		httpkit.Preflight(r, rt.path)
	}
}

type handlers struct{ svc domain.ServicePort }

// @Summary Usage volume and active users
// @Tags Analytics
// @Produce json
// @Param start_date query string false "YYYY-MM-DD"
// @Param end_date query string false "YYYY-MM-DD"
// @Param range query string false "7d 14d 30d 3m 6m 9m"
// @Success 200 {object} metrics.UsageReport
// @Failure 503 {object} errors.Wire
// @Router /analytics/usage [get]
func (h *handlers) usage(r *stdhttp.Request, in domain.RangeQuery) (any, error) {
	return h.svc.Usage(r.Context(), in)
}

// @Summary Category distribution and trending topics
// @Tags Analytics
// @Produce json
// @Param start_date query string false "YYYY-MM-DD"
// @Param end_date query string false "YYYY-MM-DD"
// @Param range query string false "7d 14d 30d 3m 6m 9m"
// @Success 200 {object} metrics.CategoryReport
// @Failure 503 {object} errors.Wire
// @Router /analytics/categories [get]
func (h *handlers) categories(r *stdhttp.Request, in domain.RangeQuery) (any, error) {
	return h.svc.Categories(r.Context(), in)
}

// @Summary Daily satisfaction, resolution and latency
// @Tags Analytics
// @Produce json
// @Param start_date query string false "YYYY-MM-DD"
// @Param end_date query string false "YYYY-MM-DD"
// @Param range query string false "7d 14d 30d 3m 6m 9m"
// @Success 200 {object} metrics.PerformanceReport
// @Failure 503 {object} errors.Wire
// @Router /analytics/performance [get]
func (h *handlers) performance(r *stdhttp.Request, in domain.RangeQuery) (any, error) {
	return h.svc.Performance(r.Context(), in)
}

// @Summary Usage by department, seniority and user tenure
// @Tags Analytics
// @Produce json
// @Param start_date query string false "YYYY-MM-DD"
// @Param end_date query string false "YYYY-MM-DD"
// @Param range query string false "7d 14d 30d 3m 6m 9m"
// @Success 200 {object} metrics.DemographicsReport
// @Failure 503 {object} errors.Wire
// @Router /analytics/demographics [get]
func (h *handlers) demographics(r *stdhttp.Request, in domain.RangeQuery) (any, error) {
	return h.svc.Demographics(r.Context(), in)
}

// @Summary Headline numbers
// @Tags Analytics
// @Produce json
// @Param start_date query string false "YYYY-MM-DD"
// @Param end_date query string false "YYYY-MM-DD"
// @Param range query string false "7d 14d 30d 3m 6m 9m"
// @Success 200 {object} metrics.DashboardReport
// @Failure 503 {object} errors.Wire
// @Router /analytics/dashboard [get]
func (h *handlers) dashboard(r *stdhttp.Request, in domain.RangeQuery) (any, error) {
	return h.svc.Dashboard(r.Context(), in)
}
