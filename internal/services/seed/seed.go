// Package seed generates sample query records and writes them to a record store
package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"os"
	"time"

	"hranalytics/internal/core/records"
	"hranalytics/internal/modkit/repokit"
	"hranalytics/internal/platform/logger"
	"hranalytics/internal/platform/net/http/bind"
	"hranalytics/internal/services/api/analytics/repo"

	"github.com/google/uuid"
)

// BatchSize bounds rows per insert statement
const BatchSize = 500

var (
	categories  = []string{"benefits", "policies", "payroll", "leave", "onboarding", "training", "compliance"}
	departments = []string{"HR", "IT", "Engineering", "Sales", "Finance", "Operations"}
	seniorities = []string{"junior", "mid", "senior"}
)

// Record is a generated row, validated before it is written
type Record struct {
	ID           string `validate:"required,uuid4"`
	UserID       string `validate:"required"`
	Timestamp    string `validate:"required"`
	Category     string `validate:"required"`
	Satisfaction int    `validate:"min=0,max=5"`
	Resolved     bool
	QueryAt      string `validate:"omitempty,datetime=2006-01-02T15:04:05Z"`
	ResponseAt   string `validate:"omitempty,datetime=2006-01-02T15:04:05Z"`
	Department   string `validate:"required"`
	Seniority    string `validate:"oneof=junior mid senior"`
	NewUser      bool
}

// Attrs renders the record as stored text attributes
func (r Record) Attrs() records.Attrs {
	return records.Attrs{
		records.AttrUserID:            r.UserID,
		records.AttrTimestamp:         r.Timestamp,
		records.AttrCategory:          r.Category,
		records.AttrSatisfaction:      fmt.Sprint(r.Satisfaction),
		records.AttrResolved:          fmt.Sprint(r.Resolved),
		records.AttrQueryTimestamp:    r.QueryAt,
		records.AttrResponseTimestamp: r.ResponseAt,
		records.AttrDepartment:        r.Department,
		records.AttrSeniority:         r.Seniority,
		records.AttrNewUser:           fmt.Sprint(r.NewUser),
	}
}

// Samples returns the two canonical records stamped at now
func Samples(now time.Time) []Record {
	ts := now.UTC().Format("2006-01-02T15:04:05.000000")
	return []Record{
		{
			ID: uuid.NewString(), UserID: "user123", Timestamp: ts, Category: "benefits",
			Satisfaction: 4, Resolved: true,
			QueryAt: "2025-03-15T09:55:00Z", ResponseAt: "2025-03-15T09:59:00Z",
			Department: "HR", Seniority: "mid",
		},
		{
			ID: uuid.NewString(), UserID: "user456", Timestamp: ts, Category: "policies",
			Satisfaction: 5, Resolved: false,
			QueryAt: "2025-03-15T10:05:00Z", ResponseAt: "2025-03-15T10:09:00Z",
			Department: "IT", Seniority: "senior", NewUser: true,
		},
	}
}

// GenOptions shapes Generate
type GenOptions struct {
	Count int
	Users int
	Days  int
	Now   time.Time
	Seed  uint64
}

// Generate builds Count records spread over the Days before Now
// the same Seed yields the same records apart from ids
func Generate(o GenOptions) []Record {
	if o.Users <= 0 {
		o.Users = 25
	}
	if o.Days <= 0 {
		o.Days = 30
	}
	rng := rand.New(rand.NewPCG(o.Seed, o.Seed^0x9e3779b97f4a7c15))

	users := make([]string, o.Users)
	for i := range users {
		users[i] = fmt.Sprintf("user%03d", i+1)
	}

	span := time.Duration(o.Days) * 24 * time.Hour
	out := make([]Record, 0, o.Count)
	for range o.Count {
		at := o.Now.UTC().Add(-time.Duration(rng.Int64N(int64(span)))).Truncate(time.Second)
		q := at.Add(-time.Duration(5+rng.IntN(300)) * time.Second)
		out = append(out, Record{
			ID:           uuid.NewString(),
			UserID:       users[rng.IntN(len(users))],
			Timestamp:    at.Format(time.RFC3339),
			Category:     categories[rng.IntN(len(categories))],
			Satisfaction: rng.IntN(6),
			Resolved:     rng.IntN(4) > 0,
			QueryAt:      q.Format(records.LatencyLayout),
			ResponseAt:   q.Add(time.Duration(1+rng.IntN(30)) * time.Second).Format(records.LatencyLayout),
			Department:   departments[rng.IntN(len(departments))],
			Seniority:    seniorities[rng.IntN(len(seniorities))],
			NewUser:      rng.IntN(5) == 0,
		})
	}
	return out
}

// Validate checks every record and reports the first failure with its index
func Validate(recs []Record) error {
	for i, r := range recs {
		if err := bind.Validate(r); err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
	}
	return nil
}

// Rows renders records in repo.Columns order
func Rows(recs []Record) [][]any {
	out := make([][]any, 0, len(recs))
	for _, r := range recs {
		out = append(out, repo.Row(r.ID, r.Attrs()))
	}
	return out
}

// WritePG applies the schema when asked and inserts in batches, one transaction per batch
func WritePG(ctx context.Context, db repokit.TxRunner, recs []Record, schema bool) (int64, error) {
	if schema {
		for _, ddl := range repo.SchemaPG {
			if _, err := db.Exec(ctx, ddl); err != nil {
				return 0, fmt.Errorf("pg schema: %w", err)
			}
		}
	}
	var total int64
	for _, batch := range chunk(Rows(recs), BatchSize) {
		err := repokit.WithTx(ctx, db, func(q repokit.Queryer) error {
			n, err := repo.InsertPG(ctx, q, batch)
			total += n
			return err
		})
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// WriteCH applies the schema when asked and appends each batch
func WriteCH(ctx context.Context, ch repokit.Clickhouse, recs []Record, schema bool) (int64, error) {
	if schema {
		for _, ddl := range repo.SchemaCH {
			if err := ch.Exec(ctx, ddl); err != nil {
				return 0, fmt.Errorf("ch schema: %w", err)
			}
		}
	}
	var total int64
	for _, batch := range chunk(Rows(recs), BatchSize) {
		if err := repo.InsertCH(ctx, ch, batch); err != nil {
			return total, err
		}
		total += int64(len(batch))
	}
	return total, nil
}

// WriteFile writes records as the JSON array the file source reads
func WriteFile(path string, recs []Record) error {
	out := make([]records.Attrs, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.Attrs())
	}
	b, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return err
	}
	logger.Named("seed").Info().Str("path", path).Int("records", len(recs)).Msg("records file written")
	return nil
}

func chunk[T any](in []T, size int) [][]T {
	var out [][]T
	for size < len(in) {
		in, out = in[size:], append(out, in[:size])
	}
	if len(in) > 0 {
		out = append(out, in)
	}
	return out
}
