package repo

import (
	"context"

	"hranalytics/internal/core/records"
	"hranalytics/internal/core/window"
	"hranalytics/internal/modkit/repokit"
	"hranalytics/internal/platform/store"
)

// CHTable is the fully qualified clickhouse record table
const CHTable = "hr_analytics.query_analytics"

type chRepo struct{ ch repokit.Clickhouse }

// NewCH reads records from clickhouse
func NewCH(ch repokit.Clickhouse) Repo {
	if ch == nil {
		panic("analytics.repo requires a non nil Clickhouse")
	}
	return &chRepo{ch: ch}
}

func (r *chRepo) Source() string { return SourceClickhouse }

func (r *chRepo) Fetch(ctx context.Context, w window.Window) ([]records.QueryRecord, error) {
	const sql = `
select ` + selectList + `
from ` + CHTable + `
where ts >= ? and ts < ?
order by ts asc
`
	start, end := w.Bounds()
	return toRecords(store.StringMaps(r.ch.Query(ctx, sql, start, end)))
}
