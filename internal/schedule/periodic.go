// Package schedule runs recurring background tasks that can be replaced or
// cancelled without leaking a duplicate ticker.
package schedule

import (
	"context"
	"sync"
	"time"
)

// Periodic runs a single recurring task. Starting it again replaces the
// previous instance.
type Periodic struct {
	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// Start launches fn every interval until ctx is cancelled or Stop is called.
// When immediate is true fn also runs once before the first tick. Any task
// already running is stopped first.
func (p *Periodic) Start(ctx context.Context, interval time.Duration, immediate bool, fn func()) {
	if interval <= 0 || fn == nil {
		return
	}
	p.Stop()

	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	p.mu.Lock()
	p.cancel = cancel
	p.done = done
	p.mu.Unlock()

	go func() {
		defer close(done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		if immediate {
			fn()
		}
		for {
			select {
			case <-runCtx.Done():
				return
			case <-ticker.C:
				// A tick can race with cancellation; prefer stopping.
				if runCtx.Err() != nil {
					return
				}
				fn()
			}
		}
	}()
}

// Stop cancels the running task and waits for it to exit. It is safe to call
// when nothing is running.
func (p *Periodic) Stop() {
	p.mu.Lock()
	cancel, done := p.cancel, p.done
	p.cancel, p.done = nil, nil
	p.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Running reports whether a task is currently scheduled.
func (p *Periodic) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.done == nil {
		return false
	}
	select {
	case <-p.done:
		return false
	default:
		return true
	}
}
