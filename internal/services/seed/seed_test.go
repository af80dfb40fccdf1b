package seed

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"hranalytics/internal/core/records"
	"hranalytics/internal/core/window"
	"hranalytics/internal/modkit/repokit"
	"hranalytics/internal/services/api/analytics/repo"
)

var now = time.Date(2025, 3, 20, 12, 0, 0, 0, time.UTC)

func TestGenerate_ValidAndInWindow(t *testing.T) {
	recs := Generate(GenOptions{Count: 200, Users: 10, Days: 14, Now: now, Seed: 7})
	if len(recs) != 200 {
		t.Fatalf("len = %d", len(recs))
	}
	if err := Validate(recs); err != nil {
		t.Fatalf("generated records invalid: %v", err)
	}

	w := window.Window{Start: now.AddDate(0, 0, -15), End: now.Add(time.Second)}
	parsed := records.FromAttrsList(attrsOf(recs))
	if got := records.InWindow(parsed, w); len(got) != len(recs) {
		t.Fatalf("%d of %d records inside the window", len(got), len(recs))
	}
	for _, r := range parsed {
		if _, ok := r.Latency(); !ok {
			t.Fatalf("latency pair should parse: %+v", r)
		}
	}
}

func TestGenerate_SeedIsDeterministic(t *testing.T) {
	a := Generate(GenOptions{Count: 20, Now: now, Seed: 1})
	b := Generate(GenOptions{Count: 20, Now: now, Seed: 1})
	for i := range a {
		a[i].ID, b[i].ID = "", ""
		if a[i] != b[i] {
			t.Fatalf("record %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestSamples(t *testing.T) {
	s := Samples(now)
	if len(s) != 2 || s[0].UserID != "user123" || !s[1].NewUser {
		t.Fatalf("samples = %+v", s)
	}
	if err := Validate(s); err != nil {
		t.Fatalf("samples invalid: %v", err)
	}
	r := records.FromAttrs(s[0].Attrs())
	if lat, ok := r.Latency(); !ok || lat != 240 {
		t.Fatalf("latency = %v,%v", lat, ok)
	}
}

func TestValidate_RejectsBadRecord(t *testing.T) {
	bad := Samples(now)
	bad[1].Seniority = "intern"
	if err := Validate(bad); err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestChunk(t *testing.T) {
	got := chunk([]int{1, 2, 3, 4, 5}, 2)
	if len(got) != 3 || len(got[2]) != 1 {
		t.Fatalf("chunk = %v", got)
	}
	if chunk([]int{}, 2) != nil {
		t.Fatalf("empty input should give no chunks")
	}
}

type tag int64

func (t tag) String() string      { return "INSERT" }
func (t tag) RowsAffected() int64 { return int64(t) }

type fakeDB struct {
	execs []string
	txs   int
	err   error
}

func (f *fakeDB) Exec(_ context.Context, sql string, args ...any) (repokit.CommandTag, error) {
	f.execs = append(f.execs, sql)
	return tag(len(args) / len(repo.Columns)), f.err
}
func (f *fakeDB) Query(context.Context, string, ...any) (repokit.Rows, error) { return nil, nil }
func (f *fakeDB) QueryRow(context.Context, string, ...any) repokit.Row        { return nil }
func (f *fakeDB) Tx(_ context.Context, fn func(repokit.Queryer) error) error {
	f.txs++
	return fn(f)
}

func TestWritePG_BatchesAndSchema(t *testing.T) {
	db := &fakeDB{}
	n, err := WritePG(context.Background(), db, Generate(GenOptions{Count: BatchSize + 3, Now: now}), true)
	if err != nil || n != BatchSize+3 {
		t.Fatalf("write = %d, %v", n, err)
	}
	if db.txs != 2 || len(db.execs) != len(repo.SchemaPG)+2 {
		t.Fatalf("txs = %d execs = %d", db.txs, len(db.execs))
	}

	if _, err := WritePG(context.Background(), &fakeDB{err: errors.New("denied")}, Samples(now), true); err == nil {
		t.Fatalf("schema failure should surface")
	}
}

type fakeCH struct {
	ddl     []string
	batches int
}

func (f *fakeCH) Insert(context.Context, string, []string, [][]any) error { f.batches++; return nil }
func (f *fakeCH) Query(context.Context, string, ...any) (repokit.Rows, error) {
	return nil, errors.New("unused")
}
func (f *fakeCH) Exec(_ context.Context, sql string, _ ...any) error {
	f.ddl = append(f.ddl, sql)
	return nil
}
func (f *fakeCH) Close() error { return nil }

func TestWriteCH(t *testing.T) {
	ch := &fakeCH{}
	n, err := WriteCH(context.Background(), ch, Samples(now), true)
	if err != nil || n != 2 || ch.batches != 1 || len(ch.ddl) != len(repo.SchemaCH) {
		t.Fatalf("write = %d, %v, %+v", n, err, ch)
	}
}

func TestWriteFile_ReadableBySource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.json")
	if err := WriteFile(path, Samples(now.Add(-time.Hour))); err != nil {
		t.Fatal(err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	attrs, err := repo.DecodeAttrs(b)
	if err != nil || len(attrs) != 2 {
		t.Fatalf("decode = %v, %v", attrs, err)
	}

	got, err := repo.NewFile(path).Fetch(context.Background(), window.Window{Start: now.AddDate(0, 0, -1), End: now})
	if err != nil || len(got) != 2 {
		t.Fatalf("fetch = %v, %v", got, err)
	}
}

func attrsOf(recs []Record) []records.Attrs {
	out := make([]records.Attrs, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.Attrs())
	}
	return out
}
