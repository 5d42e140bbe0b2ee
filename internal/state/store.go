package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/five82/notedeck/internal/backend"
)

// Snapshot is the last known health of the backend connection.
type Snapshot struct {
	Config              backend.Config
	HasConfig           bool
	CourseCount         int
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int // Number of consecutive failed loads
}

// IsOffline returns true when the backend has failed several loads in a row.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// Store records catalog load outcomes. It is written from command goroutines
// and read by the UI.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
	now      func() time.Time
}

// Update records one catalog load. When err is non-nil the previous config
// and count are kept and the failure is recorded.
func (s *Store) Update(config *backend.Config, courseCount int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now
	if s.now != nil {
		now = s.now
	}

	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.LastUpdated = now()
		s.snapshot.ConsecutiveFailures++
		return
	}

	if config != nil {
		s.snapshot.Config = *config
		s.snapshot.HasConfig = true
	} else {
		s.snapshot.HasConfig = false
	}
	s.snapshot.CourseCount = courseCount
	s.snapshot.LastError = nil
	s.snapshot.LastUpdated = now()
	s.snapshot.ConsecutiveFailures = 0
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}
