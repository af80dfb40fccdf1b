package store

import (
	"context"
	"fmt"
	"time"

	perr "hranalytics/internal/platform/errors"
	chx "hranalytics/internal/platform/store/ch"
	"hranalytics/internal/platform/store/pg"
)

const (
	backoffStart   = 150 * time.Millisecond
	backoffCeiling = 2 * time.Second
)

// seams for tests
var (
	pgOpen = pg.Open
	pgPing = func(ctx context.Context, p *pg.PG) error { return p.Ping(ctx) }
	chOpen = func(ctx context.Context, cfg chx.Config) (chConn, error) { return chx.Open(ctx, cfg) }
	sleep  = func(ctx context.Context, d time.Duration) error {
		t := time.NewTimer(d)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			return nil
		}
	}
)

// openPG opens pg and publishes the adapter once a ping succeeds
// errors that retrying cannot fix stop the loop early
func openPG(ctx context.Context, cfg Config, s *Store) (TxRunner, error) {
	var tracer pg.QueryTracer
	if cfg.PG.LogSQL {
		tracer = pg.Tracer(s.Log, "pg")
	}

	p, err := pgOpen(ctx, pg.Config{
		URL:      cfg.PG.URL,
		MaxConns: cfg.PG.MaxConns,
		SlowMs:   cfg.PG.SlowQueryMs,
	}, tracer, nil)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeDB, "postgres config")
	}

	attempts := cfg.PG.retries()
	backoff := backoffStart
	var lastErr error
	for i := 1; i <= attempts; i++ {
		toCtx, cancel := context.WithTimeout(ctx, cfg.PG.pingTimeout())
		lastErr = pgPing(toCtx, p)
		cancel()

		if lastErr == nil {
			return newPGAdapter(p), nil
		}
		if ctx.Err() != nil {
			p.Close()
			return nil, ctx.Err()
		}
		if !perr.Retryable(lastErr) {
			break
		}
		s.Log.Warn().Err(lastErr).Int("attempt", i).Dur("backoff", backoff).Msg("postgres not ready")
		if i == attempts {
			break
		}
		if err := sleep(ctx, backoff); err != nil {
			p.Close()
			return nil, err
		}
		backoff = min(backoff*2, backoffCeiling)
	}

	p.Close()
	return nil, perr.FromStore(fmt.Errorf("postgres ping: %w", lastErr), "postgres unavailable")
}

// openCH dials clickhouse and pings once, the driver retries internally
func openCH(ctx context.Context, cfg Config, s *Store) (Clickhouse, error) {
	var tracer pg.QueryTracer
	chCfg := chx.Config{
		URL:         cfg.CH.URL,
		ClientName:  cfg.CH.ClientName,
		ClientTag:   cfg.CH.ClientTag,
		DialTimeout: cfg.CH.DialTimeout,
	}
	if cfg.CH.LogSQL {
		tracer = pg.Tracer(s.Log, "ch")
	}

	c, err := chOpen(ctx, chCfg)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeDB, "clickhouse config")
	}

	toCtx, cancel := context.WithTimeout(ctx, defaultPingTimeout)
	defer cancel()
	if err := c.Ping(toCtx); err != nil {
		_ = c.Close()
		return nil, perr.FromStore(fmt.Errorf("clickhouse ping: %w", err), "clickhouse unavailable")
	}
	return newCHAdapter(c, tracer), nil
}
