package repokit

import (
	"context"
	"fmt"
	"time"
)

// Guarder reports readiness of every backend it owns, *store.Store implements it
type Guarder interface {
	Guard(context.Context) error
}

// GuardFunc adapts a ping style function to Guarder
type GuardFunc func(context.Context) error

// Guard calls f
func (f GuardFunc) Guard(ctx context.Context) error { return f(ctx) }

// GuardTimeout is applied when the caller's context has no deadline
const GuardTimeout = 5 * time.Second

// Check runs g.Guard bounded by GuardTimeout, a nil Guarder is ready
func Check(ctx context.Context, g Guarder) error {
	if g == nil {
		return nil
	}
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, GuardTimeout)
		defer cancel()
	}
	return g.Guard(ctx)
}

// MustGuard panics when Check fails, for service startup
func MustGuard(ctx context.Context, g Guarder) {
	if err := Check(ctx, g); err != nil {
		panic(fmt.Errorf("dependency guard failed: %w", err))
	}
}
