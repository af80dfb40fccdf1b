package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hranalytics/internal/platform/config"
	"hranalytics/internal/platform/logger"
	"hranalytics/internal/platform/store"
	analyticsrepo "hranalytics/internal/services/api/analytics/repo"
	"hranalytics/internal/services/seed"
)

func main() {
	var (
		fTarget = flag.String("target", analyticsrepo.SourcePG, "where to write: pg | clickhouse | file")
		fCount  = flag.Int("count", 0, "records to generate, 0 writes the two canonical samples")
		fUsers  = flag.Int("users", 25, "distinct generated users")
		fDays   = flag.Int("days", 30, "spread generated records over this many days before now")
		fSeed   = flag.Uint64("seed", uint64(time.Now().UnixNano()), "generator seed")
		fSchema = flag.Bool("schema", true, "create the record table first")
		fOut    = flag.String("out", "records.json", "output path when -target=file")
	)
	flag.Parse()

	// deferred so the store closes before a failing exit
	exit := 0
	defer func() {
		if exit != 0 {
			os.Exit(exit)
		}
	}()

	root := config.New()
	pgCfg := root.Prefix("SERVICE_PGSQL_")
	chCfg := root.Prefix("SERVICE_CLICKHOUSE_")

	logger.Init(logger.FromEnv())
	l := logger.Named("seed")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	now := time.Now().UTC()
	recs := seed.Samples(now)
	if *fCount > 0 {
		recs = seed.Generate(seed.GenOptions{Count: *fCount, Users: *fUsers, Days: *fDays, Now: now, Seed: *fSeed})
	}
	if err := seed.Validate(recs); err != nil {
		l.Fatal().Err(err).Msg("generated records failed validation")
	}

	if *fTarget == analyticsrepo.SourceFile {
		if err := seed.WriteFile(*fOut, recs); err != nil {
			l.Fatal().Err(err).Msg("write records file failed")
		}
		return
	}

	cfg := store.Config{}
	switch *fTarget {
	case analyticsrepo.SourcePG:
		cfg.PG = store.PGConfig{
			Enabled: true,
			URL:     pgCfg.MustString("DBURL"),
			LogSQL:  pgCfg.MayBool("LOG_SQL", false),
		}
	case analyticsrepo.SourceClickhouse:
		cfg.CH = store.CHConfig{
			Enabled:    true,
			URL:        chCfg.MustString("DBURL"),
			LogSQL:     chCfg.MayBool("LOG_SQL", false),
			ClientName: "hranalytics",
			ClientTag:  "seed",
		}
	default:
		l.Fatal().Str("target", *fTarget).Strs("allowed", analyticsrepo.Sources()).Msg("unknown target")
	}

	st, err := store.Open(ctx, cfg, store.WithLogger(*logger.Get()))
	if err != nil {
		l.Fatal().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	var n int64
	if st.PG != nil {
		n, err = seed.WritePG(ctx, st.PG, recs, *fSchema)
	} else {
		n, err = seed.WriteCH(ctx, st.CH, recs, *fSchema)
	}
	if err != nil {
		l.Error().Err(err).Int64("written", n).Msg("seed failed")
		exit = 1
		return
	}
	l.Info().Str("target", *fTarget).Int64("written", n).Int("generated", len(recs)).Msg("sample data inserted")
}
