package schedule

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("condition not met before deadline")
}

func TestPeriodic_ImmediateRunAndTicks(t *testing.T) {
	var p Periodic
	var calls atomic.Int32

	p.Start(context.Background(), 10*time.Millisecond, true, func() { calls.Add(1) })
	t.Cleanup(p.Stop)

	waitFor(t, func() bool { return calls.Load() >= 3 })
	if !p.Running() {
		t.Fatalf("Running() = false, want true")
	}
}

func TestPeriodic_NoImmediateRun(t *testing.T) {
	var p Periodic
	var calls atomic.Int32

	p.Start(context.Background(), time.Hour, false, func() { calls.Add(1) })
	t.Cleanup(p.Stop)

	time.Sleep(20 * time.Millisecond)
	if got := calls.Load(); got != 0 {
		t.Fatalf("calls = %d, want 0 before first tick", got)
	}
}

func TestPeriodic_StartReplacesPrevious(t *testing.T) {
	var p Periodic
	var first, second atomic.Int32

	p.Start(context.Background(), 5*time.Millisecond, false, func() { first.Add(1) })
	p.Start(context.Background(), 5*time.Millisecond, false, func() { second.Add(1) })
	t.Cleanup(p.Stop)

	waitFor(t, func() bool { return second.Load() >= 2 })
	frozen := first.Load()
	time.Sleep(30 * time.Millisecond)
	if got := first.Load(); got != frozen {
		t.Fatalf("first task still running after replace: %d -> %d", frozen, got)
	}
}

func TestPeriodic_StopHaltsTask(t *testing.T) {
	var p Periodic
	var calls atomic.Int32

	p.Start(context.Background(), 5*time.Millisecond, true, func() { calls.Add(1) })
	waitFor(t, func() bool { return calls.Load() >= 1 })
	p.Stop()

	if p.Running() {
		t.Fatalf("Running() = true after Stop")
	}
	frozen := calls.Load()
	time.Sleep(30 * time.Millisecond)
	if got := calls.Load(); got != frozen {
		t.Fatalf("calls changed after Stop: %d -> %d", frozen, got)
	}

	// Stop on an idle Periodic is a no-op.
	p.Stop()
}

func TestPeriodic_ContextCancelStops(t *testing.T) {
	var p Periodic
	ctx, cancel := context.WithCancel(context.Background())

	p.Start(ctx, 5*time.Millisecond, false, func() {})
	cancel()
	waitFor(t, func() bool { return !p.Running() })
	p.Stop()
}

func TestPeriodic_IgnoresInvalidArguments(t *testing.T) {
	var p Periodic
	p.Start(context.Background(), 0, true, func() {})
	if p.Running() {
		t.Fatalf("Running() = true for zero interval")
	}
	p.Start(context.Background(), time.Second, true, nil)
	if p.Running() {
		t.Fatalf("Running() = true for nil fn")
	}
}
