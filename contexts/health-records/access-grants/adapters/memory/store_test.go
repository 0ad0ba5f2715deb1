package memory

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"healthpass/contexts/health-records/access-grants/ports"
)

func setGrant(t *testing.T, store *Store, owner string, accessor string, active bool, seq uint64) {
	t.Helper()
	payload, _ := json.Marshal(ports.GrantChangedPayload{
		Owner:     owner,
		Accessor:  accessor,
		Active:    active,
		CommitSeq: seq,
	})
	eventType := ports.TopicAccessRevoked
	if active {
		eventType = ports.TopicAccessGranted
	}
	_, err := store.SetGrant(context.Background(), ports.GrantMutationInput{
		Owner:        owner,
		Accessor:     accessor,
		Active:       active,
		CommittedAt:  time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC).Add(time.Duration(seq) * time.Second),
		CommitSeq:    seq,
		OutboxID:     "outbox-" + accessor + "-" + eventType,
		EventType:    eventType,
		EventPayload: payload,
	})
	if err != nil {
		t.Fatalf("set grant failed: %v", err)
	}
}

func TestGrantOverwriteKeepsOneLiveEntry(t *testing.T) {
	store := NewStore()
	setGrant(t, store, "0xpatient", "0xdoctor", true, 1)
	setGrant(t, store, "0xpatient", "0xdoctor", true, 2)
	setGrant(t, store, "0xpatient", "0xdoctor", false, 3)

	grant, found, err := store.GetGrant(context.Background(), "0xpatient", "0xdoctor")
	if err != nil || !found {
		t.Fatalf("expected grant entry, found=%v err=%v", found, err)
	}
	if grant.Active {
		t.Fatal("expected latest write (revoke) to win")
	}
	if grant.CommitSeq != 3 {
		t.Fatalf("expected commit seq 3, got %d", grant.CommitSeq)
	}
}

func TestEveryMutationLandsInOutbox(t *testing.T) {
	store := NewStore()
	setGrant(t, store, "0xpatient", "0xdoctor", true, 1)
	setGrant(t, store, "0xpatient", "0xdoctor", false, 2)

	pending, err := store.ListPendingOutbox(context.Background(), 10)
	if err != nil {
		t.Fatalf("list pending failed: %v", err)
	}
	if len(pending) != 2 {
		t.Fatalf("expected 2 pending rows, got %d", len(pending))
	}

	if err := store.MarkOutboxSent(context.Background(), pending[0].OutboxID, time.Now().UTC()); err != nil {
		t.Fatalf("mark sent failed: %v", err)
	}
	remaining, _ := store.ListPendingOutbox(context.Background(), 10)
	if len(remaining) != 1 {
		t.Fatalf("expected 1 pending row after ack, got %d", len(remaining))
	}
}

func TestProjectionLastCommitPerKeyWins(t *testing.T) {
	store := NewStore()
	apply := func(accessor string, active bool, seq uint64) {
		if err := store.Apply(context.Background(), ports.GrantChangedPayload{
			Owner:     "0xpatient",
			Accessor:  accessor,
			Active:    active,
			CommitSeq: seq,
		}); err != nil {
			t.Fatalf("apply failed: %v", err)
		}
	}

	apply("0xdoctor", true, 2)
	// stale replay must not resurrect the older state
	apply("0xdoctor", false, 1)
	apply("0xnurse", true, 3)
	apply("0xnurse", false, 4)

	accessors, err := store.ListActiveAccessors(context.Background(), "0xpatient")
	if err != nil {
		t.Fatalf("list active accessors failed: %v", err)
	}
	if len(accessors) != 1 || accessors[0] != "0xdoctor" {
		t.Fatalf("unexpected active accessors: %v", accessors)
	}
}
