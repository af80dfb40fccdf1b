// Package repo provides record sources for analytics
package repo

import (
	"context"
	"fmt"
	"time"

	"hranalytics/internal/core/records"
	"hranalytics/internal/core/window"
	"hranalytics/internal/modkit/repokit"
	"hranalytics/internal/platform/store"
)

// Repo fetches the records whose timestamp falls in a window
type Repo interface {
	Fetch(ctx context.Context, w window.Window) ([]records.QueryRecord, error)
	// Source names the backend for logs and metrics
	Source() string
}

// Source names
const (
	SourcePG         = "pg"
	SourceClickhouse = "clickhouse"
	SourceFile       = "file"
)

// Sources lists the accepted values for the record source setting
func Sources() []string { return []string{SourcePG, SourceClickhouse, SourceFile} }

// Columns is the record column order shared by every store
// the primary timestamp lives in ts and is read back as timestamp
var Columns = []string{
	"id",
	records.AttrUserID,
	"ts",
	records.AttrCategory,
	records.AttrSatisfaction,
	records.AttrResolved,
	records.AttrQueryTimestamp,
	records.AttrResponseTimestamp,
	records.AttrDepartment,
	records.AttrSeniority,
	records.AttrNewUser,
}

const selectList = `user_id, ts as "timestamp", category, satisfaction, resolved,
query_timestamp, response_timestamp, department, seniority, new_user`

type (
	// PG is a binder that can bind the repo to a Queryer or TxRunner
	PG struct{}
	// queries implements Repo over sql
	queries struct{ q repokit.Queryer }
)

// NewPG returns a binder that can bind the repo to a Queryer or TxRunner
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind wires a Queryer to the repo
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

func (r *queries) Source() string { return SourcePG }

func (r *queries) Fetch(ctx context.Context, w window.Window) ([]records.QueryRecord, error) {
	// text range over ISO bounds, end exclusive
	const sql = `
select ` + selectList + `
from query_analytics
where ts >= $1 and ts < $2
order by ts asc
`
	start, end := w.Bounds()
	return toRecords(store.StringMaps(r.q.Query(ctx, sql, start, end)))
}

// txRepo runs the bound repo inside a read only transaction
type txRepo struct {
	db     repokit.TxRunner
	binder repokit.Binder[Repo]
}

// NewPGTx binds the postgres repo per fetch inside a read only tx capped by timeout
func NewPGTx(db repokit.TxRunner, timeout time.Duration) Repo {
	if db == nil {
		panic("analytics.repo requires a non nil TxRunner")
	}
	return &txRepo{
		db:     repokit.WithBeginHooks(db, repokit.ReadOnly(), repokit.StatementTimeout(timeout)),
		binder: NewPG(),
	}
}

func (r *txRepo) Source() string { return SourcePG }

func (r *txRepo) Fetch(ctx context.Context, w window.Window) (out []records.QueryRecord, err error) {
	err = repokit.WithTx(ctx, r.db, func(q repokit.Queryer) error {
		out, err = r.binder.Bind(q).Fetch(ctx, w)
		return err
	})
	return out, err
}

func toRecords(rows []map[string]string, err error) ([]records.QueryRecord, error) {
	if err != nil {
		return nil, fmt.Errorf("scan records: %w", err)
	}
	out := make([]records.QueryRecord, 0, len(rows))
	for _, m := range rows {
		out = append(out, records.FromAttrs(m))
	}
	return out, nil
}
