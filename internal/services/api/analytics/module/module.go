// Package module wires analytics into the API using modkit
package module

import (
	"net/http"
	"time"

	modkit "hranalytics/internal/modkit"
	"hranalytics/internal/modkit/httpkit"
	"hranalytics/internal/platform/config"
	str "hranalytics/internal/platform/strings"
	analyticshttp "hranalytics/internal/services/api/analytics/http"
	analyticsrepo "hranalytics/internal/services/api/analytics/repo"
	analyticssvc "hranalytics/internal/services/api/analytics/service"
)

// Config keys read from the module config namespace
const (
	KeySource           = "RECORD_SOURCE"
	KeyRecordsFile      = "RECORDS_FILE"
	KeyStatementTimeout = "STATEMENT_TIMEOUT"
)

// Module implements the analytics module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws   []func(http.Handler) http.Handler
	ports any

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc analyticssvc.Service
}

// Source returns the configured record source, pg when unset
func Source(cfg config.Conf) string {
	return cfg.MayEnum(KeySource, analyticsrepo.SourcePG, analyticsrepo.Sources()...)
}

// NewRepo builds the record source named by cfg from deps
// a source whose backend is missing from deps panics at startup
func NewRepo(deps modkit.Deps) analyticsrepo.Repo {
	switch Source(deps.Cfg) {
	case analyticsrepo.SourceClickhouse:
		return analyticsrepo.NewCH(deps.CH)
	case analyticsrepo.SourceFile:
		return analyticsrepo.NewFile(deps.Cfg.MustString(KeyRecordsFile))
	default:
		return analyticsrepo.NewPGTx(deps.PG, deps.Cfg.MayDuration(KeyStatementTimeout, 10*time.Second))
	}
}

// New constructs the analytics module
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("analytics"),
		modkit.WithPrefix("/analytics"),
		modkit.WithMiddlewares(httpkit.ReportCORS()),
	}, opts...)...)

	r := NewRepo(deps)
	svc := analyticssvc.New(r,
		analyticssvc.WithClock(deps.Clock),
		analyticssvc.WithMetrics(deps.Metrics),
	)
	deps.Log.Info().Str("source", r.Source()).Msg("analytics record source")

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		subrouter: b.Subrouter,
		svc:       svc,
	}
	m.ports = adaptAnalyticsPort{svc: svc}
	if b.Ports != nil {
		m.ports = b.Ports
	}

	external := b.Register
	m.register = func(r httpkit.Router) {
		analyticshttp.Register(r, m.svc)
		if external != nil {
			external(r)
		}
	}
	return m
}

// MountRoutes mounts the module routes on the given router
func (m *Module) MountRoutes(r httpkit.Router) {
	r.Route(m.prefix, func(rr httpkit.Router) {
		for _, mw := range m.mws {
			rr.Use(mw)
		}
		if m.subrouter != nil {
			rr = m.subrouter(rr)
		}
		if m.register != nil {
			m.register(rr)
		}
	})
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.name, "module name") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }

// Middlewares returns the module middlewares
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return m.mws }
