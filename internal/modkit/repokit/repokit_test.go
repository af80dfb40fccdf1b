package repokit

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	kit "hranalytics/internal/platform/testkit"
)

type fakeTx struct {
	stmts []string
	txs   int
}

func (f *fakeTx) Exec(_ context.Context, sql string, _ ...any) (CommandTag, error) {
	f.stmts = append(f.stmts, sql)
	return nil, nil
}
func (f *fakeTx) Query(context.Context, string, ...any) (Rows, error) { return nil, nil }
func (f *fakeTx) QueryRow(context.Context, string, ...any) Row       { return nil }
func (f *fakeTx) Tx(_ context.Context, fn func(Queryer) error) error {
	f.txs++
	return fn(f)
}

func TestWithBeginHooks_RunsHooksBeforeFn(t *testing.T) {
	t.Parallel()

	inner := &fakeTx{}
	tx := WithBeginHooks(inner, ReadOnly(), StatementTimeout(1500*time.Millisecond), StatementTimeout(0))

	err := WithTx(context.Background(), tx, func(q Queryer) error {
		_, err := q.Exec(context.Background(), "SELECT 1")
		return err
	})
	if err != nil {
		t.Fatalf("tx: %v", err)
	}
	want := []string{"SET TRANSACTION READ ONLY", "SET LOCAL statement_timeout = 1500", "SELECT 1"}
	if !reflect.DeepEqual(inner.stmts, want) {
		t.Fatalf("stmts = %v, want %v", inner.stmts, want)
	}

	if _, err := tx.Exec(context.Background(), "SELECT 2"); err != nil || inner.txs != 1 {
		t.Fatalf("plain Exec should bypass hooks")
	}
}

func TestWithBeginHooks_HookErrorStopsFn(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	called := false
	tx := WithBeginHooks(&fakeTx{}, func(context.Context, Queryer) error { return boom })
	err := tx.Tx(context.Background(), func(Queryer) error { called = true; return nil })
	if !errors.Is(err, boom) || called {
		t.Fatalf("err = %v, called = %v", err, called)
	}
}

func TestBinder(t *testing.T) {
	t.Parallel()

	b := BindFunc[string](func(Queryer) string { return "bound" })
	if got := MustBind[string](b, &fakeTx{}); got != "bound" {
		t.Fatalf("bind = %q", got)
	}
	kit.MustPanic(t, func() { MustBind[string](b, nil) })
}

func TestCheckAndMustGuard(t *testing.T) {
	t.Parallel()

	if err := Check(context.Background(), nil); err != nil {
		t.Fatalf("nil guarder should be ready: %v", err)
	}

	hasDeadline := false
	ok := GuardFunc(func(ctx context.Context) error {
		_, hasDeadline = ctx.Deadline()
		return nil
	})
	if err := Check(context.Background(), ok); err != nil || !hasDeadline {
		t.Fatalf("Check should bound the context: %v %v", err, hasDeadline)
	}

	down := GuardFunc(func(context.Context) error { return errors.New("pg: down") })
	kit.MustPanic(t, func() { MustGuard(context.Background(), down) })
}
