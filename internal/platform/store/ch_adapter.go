package store

import (
	"context"
	"errors"
	"time"

	"hranalytics/internal/platform/store/ch"
	"hranalytics/internal/platform/store/pg"
)

// chConn is the part of *ch.CH the adapter needs
type chConn interface {
	Ping(ctx context.Context) error
	Insert(ctx context.Context, table string, cols []string, rows [][]any) error
	Query(ctx context.Context, sql string, args ...any) (ch.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) error
	Close() error
}

// clickhouseAdapter adapts a clickhouse connection to the Clickhouse seam
type clickhouseAdapter struct {
	inner  chConn
	tracer pg.QueryTracer
}

var (
	_ Clickhouse = (*clickhouseAdapter)(nil)
	_ Pinger     = (*clickhouseAdapter)(nil)
)

func newCHAdapter(c chConn, tracer pg.QueryTracer) *clickhouseAdapter {
	return &clickhouseAdapter{inner: c, tracer: tracer}
}

func (a *clickhouseAdapter) Insert(ctx context.Context, table string, cols []string, data [][]any) error {
	start := time.Now()
	err := a.inner.Insert(ctx, table, cols, data)
	a.emit(ctx, "INSERT INTO "+table, len(data), start, err)
	return err
}

func (a *clickhouseAdapter) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	start := time.Now()
	r, err := a.inner.Query(ctx, sql, args...)
	a.emit(ctx, sql, args, start, err)
	if err != nil {
		return nil, err
	}
	return &chRows{r: r}, nil
}

func (a *clickhouseAdapter) Exec(ctx context.Context, sql string, args ...any) error {
	start := time.Now()
	err := a.inner.Exec(ctx, sql, args...)
	a.emit(ctx, sql, args, start, err)
	return err
}

func (a *clickhouseAdapter) Ping(ctx context.Context) error {
	if a == nil || a.inner == nil {
		return errors.New("store: nil clickhouse adapter")
	}
	return a.inner.Ping(ctx)
}

func (a *clickhouseAdapter) Close() error { return a.inner.Close() }

func (a *clickhouseAdapter) emit(ctx context.Context, sql string, args any, start time.Time, err error) {
	if a.tracer == nil {
		return
	}
	a.tracer.OnQuery(ctx, pg.QueryEvent{
		SQL:       sql,
		Args:      args,
		ElapsedUS: time.Since(start).Microseconds(),
		Err:       err,
	})
}

// chRows wraps driver rows as store.Rows
type chRows struct {
	r ch.Rows
}

func (r *chRows) Next() bool             { return r.r.Next() }
func (r *chRows) Scan(dest ...any) error { return r.r.Scan(dest...) }
func (r *chRows) Err() error             { return r.r.Err() }
func (r *chRows) Close()                 { _ = r.r.Close() }
func (r *chRows) Columns() []string      { return r.r.Columns() }
