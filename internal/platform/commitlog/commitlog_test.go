package commitlog

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestMemoryCommitSequenceIsStrictlyIncreasing(t *testing.T) {
	log := NewMemory()
	var last uint64
	for i := 0; i < 100; i++ {
		seq, _, err := log.Commit(context.Background())
		if err != nil {
			t.Fatalf("commit failed: %v", err)
		}
		if seq <= last {
			t.Fatalf("sequence not increasing: %d after %d", seq, last)
		}
		last = seq
	}
}

func TestMemoryCommitUniqueUnderConcurrency(t *testing.T) {
	log := NewMemory()
	const writers = 8
	const perWriter = 50

	var mu sync.Mutex
	seen := make(map[uint64]bool)

	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				seq, _, err := log.Commit(context.Background())
				if err != nil {
					t.Errorf("commit failed: %v", err)
					return
				}
				mu.Lock()
				if seen[seq] {
					t.Errorf("duplicate sequence %d", seq)
				}
				seen[seq] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if len(seen) != writers*perWriter {
		t.Fatalf("expected %d unique sequences, got %d", writers*perWriter, len(seen))
	}
}

func TestMemoryCommitUsesPinnedClock(t *testing.T) {
	fixed := time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC)
	log := NewMemoryWithClock(func() time.Time { return fixed })
	_, committedAt, err := log.Commit(context.Background())
	if err != nil {
		t.Fatalf("commit failed: %v", err)
	}
	if !committedAt.Equal(fixed) {
		t.Fatalf("expected pinned timestamp, got %v", committedAt)
	}
}
