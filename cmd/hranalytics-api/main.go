// @title         HR Assistant Analytics API
// @version       0.1.0
// @description   Read only analytics over logged HR assistant queries
// @BasePath      /api/v1

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hranalytics/internal/modkit/repokit"
	"hranalytics/internal/platform/config"
	"hranalytics/internal/platform/logger"
	pmetrics "hranalytics/internal/platform/metrics"
	phttp "hranalytics/internal/platform/net/http"
	"hranalytics/internal/platform/store"
	ptime "hranalytics/internal/platform/time"

	"hranalytics/internal/services/api"
	analyticsmod "hranalytics/internal/services/api/analytics/module"
	analyticsrepo "hranalytics/internal/services/api/analytics/repo"
)

func main() {
	// service-scoped config for HTTP and the record source (HRA_API_*)
	root := config.New()
	apiCfg := root.Prefix("HRA_API_")

	pgCfg := root.Prefix("SERVICE_PGSQL_")      // pgCfg lives under SERVICE_PGSQL_*
	chCfg := root.Prefix("SERVICE_CLICKHOUSE_") // chCfg lives under SERVICE_CLICKHOUSE_*

	logger.Init(logger.FromEnv())
	l := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// only the backend the record source reads from is opened
	source := analyticsmod.Source(apiCfg)
	cfg := store.Config{}
	switch source {
	case analyticsrepo.SourcePG:
		cfg.PG = store.PGConfig{
			Enabled:     true,
			URL:         pgCfg.MustString("DBURL"),
			MaxConns:    int32(pgCfg.MayInt("MAX_CONNS", 4)),
			SlowQueryMs: pgCfg.MayInt("SLOW_MS", 500),
			LogSQL:      pgCfg.MayBool("LOG_SQL", false),
		}
	case analyticsrepo.SourceClickhouse:
		cfg.CH = store.CHConfig{
			Enabled:    true,
			URL:        chCfg.MustString("DBURL"),
			LogSQL:     chCfg.MayBool("LOG_SQL", false),
			ClientName: "hranalytics",
			ClientTag:  "api",
		}
	}

	st, err := store.Open(ctx, cfg, store.WithLogger(*l))
	if err != nil {
		l.Panic().Err(err).Str("source", source).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()
	if apiCfg.MayBool("GUARD_ON_BOOT", true) {
		repokit.MustGuard(ctx, st)
	}

	var rec *pmetrics.Recorder
	if apiCfg.MayBool("METRICS", true) {
		rec = pmetrics.New()
	}

	// http server (reads HRA_API_PORT / HRA_API_ADDR)
	srv := phttp.NewServer(apiCfg)

	api.Mount(
		srv.Router(),
		api.Options{
			Config:         apiCfg,
			Store:          st,
			Logger:         l,
			Metrics:        rec,
			Clock:          ptime.System(),
			EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
			EnableProfiler: apiCfg.MayBool("PROFILER", false),
			CORSOrigins:    apiCfg.MayCSV("CORS_ORIGINS", []string{"*"}),
			Timeout:        apiCfg.MayDuration("REQUEST_TIMEOUT", 30*time.Second),
			SlowRequest:    apiCfg.MayDuration("SLOW_REQUEST", time.Second),
		},
	)

	if err := srv.Run(ctx); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
