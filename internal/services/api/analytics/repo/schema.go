package repo

import (
	"context"
	"fmt"
	"strings"

	"hranalytics/internal/core/records"
	"hranalytics/internal/modkit/repokit"
)

// SchemaPG creates the postgres record table
// every attribute is text so stored values reach ingestion untouched
var SchemaPG = []string{
	`create table if not exists query_analytics (
	id text primary key,
	user_id text,
	ts text not null,
	category text,
	satisfaction text,
	resolved text,
	query_timestamp text,
	response_timestamp text,
	department text,
	seniority text,
	new_user text
)`,
	`create index if not exists query_analytics_ts_idx on query_analytics (ts)`,
}

// SchemaCH creates the clickhouse database and record table
var SchemaCH = []string{
	`create database if not exists hr_analytics`,
	`create table if not exists ` + CHTable + ` (
	id String,
	user_id Nullable(String),
	ts String,
	category Nullable(String),
	satisfaction Nullable(String),
	resolved Nullable(String),
	query_timestamp Nullable(String),
	response_timestamp Nullable(String),
	department Nullable(String),
	seniority Nullable(String),
	new_user Nullable(String)
) engine = MergeTree order by ts`,
}

// Row renders a record in Columns order
// blank attributes become NULL
func Row(id string, a records.Attrs) []any {
	row := make([]any, 0, len(Columns))
	row = append(row, id)
	for _, c := range Columns[1:] {
		v := a[c]
		if c == "ts" {
			// unparsable timestamps are stored as NULL so no window range matches them
			v, _ = records.NormalizeTimestamp(a[records.AttrTimestamp])
		}
		if v != "" {
			row = append(row, v)
		} else {
			row = append(row, nil)
		}
	}
	return row
}

// InsertPG writes rows with a multi values insert, callers own the transaction
func InsertPG(ctx context.Context, q repokit.Queryer, rows [][]any) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	var sb strings.Builder
	sb.WriteString("insert into query_analytics (")
	sb.WriteString(strings.Join(Columns, ", "))
	sb.WriteString(") values ")

	args := make([]any, 0, len(rows)*len(Columns))
	for i, r := range rows {
		if len(r) != len(Columns) {
			return 0, fmt.Errorf("row %d has %d values, want %d", i, len(r), len(Columns))
		}
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteByte('(')
		for j := range r {
			if j > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "$%d", len(args)+j+1)
		}
		sb.WriteByte(')')
		args = append(args, r...)
	}
	sb.WriteString(" on conflict (id) do nothing")

	tag, err := q.Exec(ctx, sb.String(), args...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// InsertCH appends rows as one clickhouse batch
func InsertCH(ctx context.Context, ch repokit.Clickhouse, rows [][]any) error {
	return ch.Insert(ctx, CHTable, Columns, rows)
}
