// Package api provides the HTTP API for the application
package api

import (
	"time"

	"hranalytics/internal/platform/config"
	"hranalytics/internal/platform/logger"
	pmetrics "hranalytics/internal/platform/metrics"
	phttp "hranalytics/internal/platform/net/http"
	"hranalytics/internal/platform/store"
	ptime "hranalytics/internal/platform/time"

	"hranalytics/internal/modkit"
	"hranalytics/internal/modkit/httpkit"
	"hranalytics/internal/modkit/module"
	"hranalytics/internal/modkit/swaggerkit"

	analyticsmod "hranalytics/internal/services/api/analytics/module"
	metamod "hranalytics/internal/services/api/meta/module"
)

// Options are the API options
type Options struct {
	Config  config.Conf
	Store   *store.Store
	Logger  *logger.Logger
	Metrics *pmetrics.Recorder
	Clock   ptime.Clock

	EnableSwagger  bool
	EnableProfiler bool

	// CORSOrigins gates browser access to meta routes, analytics always answers with *
	CORSOrigins []string
	Timeout     time.Duration
	SlowRequest time.Duration
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	// shared deps for modules
	deps := modkit.Deps{
		Cfg:     opt.Config,
		Metrics: opt.Metrics,
		Clock:   opt.Clock,
	}
	if opt.Logger != nil {
		deps.Log = *opt.Logger
	}
	if opt.Store != nil {
		deps.PG = opt.Store.PG
		deps.CH = opt.Store.CH
	}

	mods := []module.Module{
		metamod.New(deps, modkit.WithMiddlewares(httpkit.BrowserCORS(opt.CORSOrigins))),
		analyticsmod.New(deps),
	}

	stack := httpkit.CommonStack(httpkit.StackOptions{
		Timeout:     opt.Timeout,
		SlowRequest: opt.SlowRequest,
		Metrics:     opt.Metrics,
	})

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, stack, func(api httpkit.Router) {
		swaggerkit.Mount(r, opt.EnableSwagger)
		phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

		httpkit.JSONFallbacks(api)
		module.MountAll(api, mods...)
	})
}
