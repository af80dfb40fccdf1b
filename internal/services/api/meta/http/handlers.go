// Package http provides meta endpoints
package http

import (
	"context"
	"net/http"
	"time"

	"hranalytics/internal/core/version"
	"hranalytics/internal/modkit/httpkit"
	"hranalytics/internal/modkit/repokit"
	ptime "hranalytics/internal/platform/time"
)

// Deps are the handler dependencies
// PG and CH are pinged when they implement Ping, nil means the backend is off
type Deps struct {
	ServiceName  string
	RecordSource string
	StartedAt    time.Time
	Clock        ptime.Clock
	PG           any
	CH           any
	// Metrics serves the prometheus exposition, nil leaves /metrics unmounted
	Metrics http.Handler
}

type handlers struct {
	deps Deps
}

// Register mounts the meta routes
func Register(r httpkit.Router, d Deps) {
	h := &handlers{deps: d}

	httpkit.Get(r, "/health", h.health)
	httpkit.Get(r, "/ready", h.ready)
	httpkit.Get(r, "/version", h.version)
	httpkit.Get(r, "/service", h.service)
	if d.Metrics != nil {
		r.Handle("/metrics", d.Metrics)
	}
}

// HealthResponse is the health payload
type HealthResponse struct {
	OK      bool   `json:"ok"`
	Service string `json:"service"`
	Started string `json:"started"`
	Now     string `json:"now"`
}

// ReadyCheck describes a single dependency check
type ReadyCheck struct {
	Name   string `json:"name"`
	Status string `json:"status"` // ok fail skipped unknown
	Error  string `json:"error,omitempty"`
}

// ReadyResponse summarizes readiness
type ReadyResponse struct {
	Status string       `json:"status"` // ok fail
	Checks []ReadyCheck `json:"checks"`
	Now    string       `json:"now"`
}

// ServiceResponse describes service info
type ServiceResponse struct {
	Name         string            `json:"name"`
	RecordSource string            `json:"record_source"`
	Started      string            `json:"started"`
	Uptime       int64             `json:"uptime"`
	Build        version.BuildInfo `json:"build"`
}

// Check status values
const (
	StatusOK      = "ok"
	StatusFail    = "fail"
	StatusSkipped = "skipped"
	StatusUnknown = "unknown"
)

// pinger is satisfied by store adapters that expose Ping
type pinger interface {
	Ping(context.Context) error
}

func (h *handlers) now() string { return h.deps.Clock.Now().UTC().Format(time.RFC3339) }

// @Summary Liveness
// @Tags Meta
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /meta/health [get]
func (h *handlers) health(_ *http.Request) (any, error) {
	return HealthResponse{
		OK:      true,
		Service: h.deps.ServiceName,
		Started: h.deps.StartedAt.UTC().Format(time.RFC3339),
		Now:     h.now(),
	}, nil
}

// @Summary Readiness with per backend pings
// @Tags Meta
// @Produce json
// @Success 200 {object} ReadyResponse
// @Router /meta/ready [get]
func (h *handlers) ready(r *http.Request) (any, error) {
	check := func(name string, c any) ReadyCheck {
		if c == nil {
			return ReadyCheck{Name: name, Status: StatusSkipped}
		}
		p, ok := c.(pinger)
		if !ok {
			return ReadyCheck{Name: name, Status: StatusUnknown}
		}
		if err := repokit.Check(r.Context(), repokit.GuardFunc(p.Ping)); err != nil {
			return ReadyCheck{Name: name, Status: StatusFail, Error: err.Error()}
		}
		return ReadyCheck{Name: name, Status: StatusOK}
	}

	checks := []ReadyCheck{check("pg", h.deps.PG), check("ch", h.deps.CH)}
	overall := StatusOK
	for _, c := range checks {
		if c.Status == StatusFail {
			overall = StatusFail
		}
	}
	return ReadyResponse{Status: overall, Checks: checks, Now: h.now()}, nil
}

// @Summary Build and version info
// @Tags Meta
// @Produce json
// @Success 200 {object} version.BuildInfo
// @Router /meta/version [get]
func (h *handlers) version(_ *http.Request) (any, error) {
	return version.Info(), nil
}

// @Summary Service info, record source and uptime
// @Tags Meta
// @Produce json
// @Success 200 {object} ServiceResponse
// @Router /meta/service [get]
func (h *handlers) service(_ *http.Request) (any, error) {
	return ServiceResponse{
		Name:         h.deps.ServiceName,
		RecordSource: h.deps.RecordSource,
		Started:      h.deps.StartedAt.UTC().Format(time.RFC3339),
		Uptime:       int64(h.deps.Clock.Now().Sub(h.deps.StartedAt) / time.Second),
		Build:        version.Info(),
	}, nil
}
