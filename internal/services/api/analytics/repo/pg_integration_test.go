//go:build integration_pg

package repo

import (
	"context"
	"fmt"
	"testing"
	"time"

	"hranalytics/internal/core/records"
	"hranalytics/internal/modkit/repokit"
	"hranalytics/internal/platform/store"

	"github.com/rs/zerolog"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func startPostgres(t *testing.T) string {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	t.Cleanup(cancel)

	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "postgres",
				"POSTGRES_PASSWORD": "postgres",
				"POSTGRES_DB":       "analytics",
			},
			WaitingFor: wait.ForAll(
				wait.ForListeningPort("5432/tcp"),
				wait.ForLog("database system is ready to accept connections"),
			).WithDeadline(2 * time.Minute),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("start postgres: %v", err)
	}
	t.Cleanup(func() { _ = c.Terminate(context.Background()) })

	host, err := c.Host(ctx)
	if err != nil {
		t.Fatalf("container host: %v", err)
	}
	mp, err := c.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("mapped port: %v", err)
	}
	return fmt.Sprintf("postgres://postgres:postgres@%s:%s/analytics?sslmode=disable", host, mp.Port())
}

func TestPGSource_Integration(t *testing.T) {
	dsn := startPostgres(t)

	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	s, err := store.Open(ctx, store.Config{PG: store.PGConfig{Enabled: true, URL: dsn}}, store.WithLogger(zerolog.Nop()))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer func() { _ = s.Close(ctx) }()

	for _, ddl := range SchemaPG {
		if _, err := s.PG.Exec(ctx, ddl); err != nil {
			t.Fatalf("schema: %v", err)
		}
	}

	in := []records.QueryRecord{
		{UserID: "u1", Timestamp: "2025-03-15T10:00:00Z", Category: "benefits", Satisfaction: 5, Resolved: true, Department: "Sales", Seniority: records.SeniorityMid},
		{UserID: "u2", Timestamp: "2025-03-16T23:59:59Z", Category: "payroll", Satisfaction: 2, Department: "HR", Seniority: records.SeniorityJunior},
		{UserID: "u3", Timestamp: "2025-03-17T00:00:00Z", Category: "payroll", Department: "HR", Seniority: records.SenioritySenior},
	}
	rows := make([][]any, 0, len(in))
	for i, r := range in {
		rows = append(rows, Row(fmt.Sprintf("r%d", i), r.Attrs()))
	}
	err = repokit.WithTx(ctx, s.PG, func(q repokit.Queryer) error {
		_, err := InsertPG(ctx, q, rows)
		return err
	})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	got, err := NewPGTx(s.PG, 5*time.Second).Fetch(ctx, march)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d records, want 2 (end bound exclusive)", len(got))
	}
	if got[0] != in[0] || got[1] != in[1] {
		t.Fatalf("records = %+v", got)
	}
}
