package time

import (
	"testing"
	"time"
)

func TestClock(t *testing.T) {
	at := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	if got := Fixed(at).Now(); !got.Equal(at) {
		t.Fatalf("Fixed = %v", got)
	}
	var nilClock Clock
	if got := nilClock.Now(); got.Location() != time.UTC || got.IsZero() {
		t.Fatalf("nil clock = %v", got)
	}
}
