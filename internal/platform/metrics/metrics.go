// Package metrics exposes prometheus collectors for the analytics service
// a nil *Recorder is valid and records nothing
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Namespace prefixes every metric name
const Namespace = "hra"

// Report outcomes
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// Recorder owns a registry and the service collectors
type Recorder struct {
	reg *prometheus.Registry

	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	reports  *prometheus.CounterVec
	fetch    *prometheus.HistogramVec
	records  *prometheus.HistogramVec
}

// New builds a Recorder on a fresh registry with go and process collectors
func New() *Recorder {
	r := &Recorder{
		reg: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status",
		}, []string{"route", "method", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route",
			Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"route", "method"}),
		reports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "reports_total",
			Help:      "Analytics reports built by report and outcome",
		}, []string{"report", "outcome"}),
		fetch: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "record_fetch_duration_seconds",
			Help:      "Record store fetch latency by source",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"source", "outcome"}),
		records: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "records_per_fetch",
			Help:      "Records returned per fetch",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 10),
		}, []string{"source"}),
	}

	r.reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.requests, r.duration, r.reports, r.fetch, r.records,
	)
	return r
}

// Registry returns the underlying registry
func (r *Recorder) Registry() *prometheus.Registry { return r.reg }

// Handler serves the exposition format for the registry
func (r *Recorder) Handler() http.Handler {
	if r == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{Registry: r.reg})
}

// Report counts one report build
func (r *Recorder) Report(report string, err error) {
	if r == nil {
		return
	}
	r.reports.WithLabelValues(report, outcome(err)).Inc()
}

// Fetch observes one record store read
func (r *Recorder) Fetch(source string, took time.Duration, n int, err error) {
	if r == nil {
		return
	}
	r.fetch.WithLabelValues(source, outcome(err)).Observe(took.Seconds())
	if err == nil {
		r.records.WithLabelValues(source).Observe(float64(n))
	}
}

// Middleware records request count and latency keyed by the chi route pattern
// unmatched paths share the "unmatched" route label to bound cardinality
func (r *Recorder) Middleware(next http.Handler) http.Handler {
	if r == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, req.ProtoMajor)
		next.ServeHTTP(ww, req)

		route := "unmatched"
		if rc := chi.RouteContext(req.Context()); rc != nil {
			if p := rc.RoutePattern(); p != "" {
				route = p
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		r.requests.WithLabelValues(route, req.Method, strconv.Itoa(status)).Inc()
		r.duration.WithLabelValues(route, req.Method).Observe(time.Since(start).Seconds())
	})
}

func outcome(err error) string {
	if err != nil {
		return OutcomeError
	}
	return OutcomeOK
}
