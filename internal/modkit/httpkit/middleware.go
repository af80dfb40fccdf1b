package httpkit

import (
	"net/http"
	"time"

	pmetrics "hranalytics/internal/platform/metrics"
	"hranalytics/internal/platform/net/middleware"
)

// StackOptions tunes CommonStack
type StackOptions struct {
	// Timeout bounds each request, zero means 30s
	Timeout time.Duration
	// SlowRequest logs requests at warn past this duration, zero disables
	SlowRequest time.Duration
	// Metrics records request counts and latency when set
	Metrics *pmetrics.Recorder
}

// CommonStack returns the baseline middleware for the API router
func CommonStack(o StackOptions) []func(http.Handler) http.Handler {
	timeout := o.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return middleware.Defaults(timeout,
		middleware.AccessLogZerolog(middleware.AccessLogOptions{Slow: o.SlowRequest}),
		o.Metrics.Middleware,
	)
}

// ReportCORS is the fixed CORS header set for analytics reports
func ReportCORS() func(http.Handler) http.Handler { return middleware.ReportCORS.Handler() }

// BrowserCORS is origin aware CORS for docs and meta routes
func BrowserCORS(origins []string) func(http.Handler) http.Handler {
	return middleware.CORS(middleware.CORSOptions{AllowedOrigins: origins, MaxAge: 300})
}
