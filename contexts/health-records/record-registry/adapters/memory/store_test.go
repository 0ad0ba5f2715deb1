package memory

import (
	"context"
	"testing"
	"time"

	"healthpass/contexts/health-records/record-registry/ports"
)

func TestListRecordsReturnsCommitOrder(t *testing.T) {
	store := NewStore()
	base := time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC)

	inputs := []ports.AddRecordInput{
		{RecordID: "rec-2", Owner: "0xpatient", ContentRef: "QmB", RecordType: "MRI", CreatedAt: base.Add(2 * time.Second), CommitSeq: 2},
		{RecordID: "rec-1", Owner: "0xpatient", ContentRef: "QmA", RecordType: "X-RAY", CreatedAt: base.Add(time.Second), CommitSeq: 1},
		{RecordID: "rec-3", Owner: "0xother", ContentRef: "QmC", RecordType: "LAB", CreatedAt: base.Add(3 * time.Second), CommitSeq: 3},
	}
	for _, input := range inputs {
		if _, err := store.AppendRecord(context.Background(), input); err != nil {
			t.Fatalf("append failed: %v", err)
		}
	}

	records, err := store.ListRecords(context.Background(), "0xpatient")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].RecordID != "rec-1" || records[1].RecordID != "rec-2" {
		t.Fatalf("records out of commit order: %s, %s", records[0].RecordID, records[1].RecordID)
	}
}

func TestIdempotencyRecordExpires(t *testing.T) {
	store := NewStore()
	now := time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC)

	if err := store.Put(context.Background(), ports.IdempotencyRecord{
		Key:       "records_idempotency:k1",
		Payload:   []byte(`{}`),
		ExpiresAt: now.Add(time.Hour),
	}); err != nil {
		t.Fatalf("put failed: %v", err)
	}

	if _, found, _ := store.Get(context.Background(), "records_idempotency:k1", now); !found {
		t.Fatal("expected live idempotency record")
	}
	if _, found, _ := store.Get(context.Background(), "records_idempotency:k1", now.Add(2*time.Hour)); found {
		t.Fatal("expected expired idempotency record to be invisible")
	}
}
