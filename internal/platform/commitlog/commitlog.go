// Package commitlog provides the single global ordering substrate. Every
// mutating operation in every module acquires its sequence number and
// authoritative timestamp here, so writes across modules are totally ordered.
package commitlog

import (
	"context"
	"sync"
	"time"
)

// Memory is the in-process commit log used by unit tests and single-node
// runs. Sequence numbers start at 1 and never repeat.
type Memory struct {
	mu  sync.Mutex
	seq uint64
	now func() time.Time
}

func NewMemory() *Memory {
	return &Memory{now: func() time.Time { return time.Now().UTC() }}
}

// NewMemoryWithClock pins the timestamp source, for tests that assert on
// commit times.
func NewMemoryWithClock(now func() time.Time) *Memory {
	return &Memory{now: now}
}

func (m *Memory) Commit(_ context.Context) (uint64, time.Time, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	return m.seq, m.now().UTC(), nil
}
