package application

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"healthpass/contexts/health-records/record-registry/domain/entities"
	domainerrors "healthpass/contexts/health-records/record-registry/domain/errors"
	"healthpass/contexts/health-records/record-registry/ports"
)

type testRepo struct {
	appended []ports.AddRecordInput
}

func (r *testRepo) AppendRecord(_ context.Context, input ports.AddRecordInput) (entities.Record, error) {
	r.appended = append(r.appended, input)
	return entities.Record{
		RecordID:    input.RecordID,
		Owner:       input.Owner,
		ContentRef:  input.ContentRef,
		RecordType:  input.RecordType,
		Description: input.Description,
		CreatedAt:   input.CreatedAt,
		CommitSeq:   input.CommitSeq,
	}, nil
}

func (r *testRepo) ListRecords(_ context.Context, owner string) ([]entities.Record, error) {
	var items []entities.Record
	for _, input := range r.appended {
		if input.Owner == owner {
			items = append(items, entities.Record{
				RecordID:   input.RecordID,
				Owner:      input.Owner,
				ContentRef: input.ContentRef,
				RecordType: input.RecordType,
				CommitSeq:  input.CommitSeq,
			})
		}
	}
	return items, nil
}

type testIdempotency struct {
	store map[string]ports.IdempotencyRecord
}

func (t *testIdempotency) Get(_ context.Context, key string, _ time.Time) (ports.IdempotencyRecord, bool, error) {
	record, ok := t.store[key]
	return record, ok, nil
}

func (t *testIdempotency) Put(_ context.Context, record ports.IdempotencyRecord) error {
	t.store[record.Key] = record
	return nil
}

type testCommitLog struct {
	seq  uint64
	base time.Time
}

func (c *testCommitLog) Commit(_ context.Context) (uint64, time.Time, error) {
	c.seq++
	return c.seq, c.base.Add(time.Duration(c.seq) * time.Second), nil
}

type testIDGen struct {
	n int
}

func (g *testIDGen) NewID(_ context.Context) (string, error) {
	g.n++
	return fmt.Sprintf("rec-%d", g.n), nil
}

func newTestService(repo *testRepo) Service {
	return Service{
		Repo:        repo,
		Idempotency: &testIdempotency{store: make(map[string]ports.IdempotencyRecord)},
		Commits:     &testCommitLog{base: time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC)},
		IDGenerator: &testIDGen{},
	}
}

func TestAddRecordRejectsForeignPartition(t *testing.T) {
	service := newTestService(&testRepo{})
	_, err := service.AddRecord(context.Background(), AddRecordCommand{
		IdempotencyKey: "idem-1",
		Caller:         "0xDoctor",
		Owner:          "0xPatient",
		ContentRef:     "QmHash123",
		RecordType:     "X-RAY",
	})
	if !errors.Is(err, domainerrors.ErrNotOwner) {
		t.Fatalf("expected not-owner error, got %v", err)
	}
}

func TestAddRecordRequiresContentRefAndType(t *testing.T) {
	service := newTestService(&testRepo{})
	cases := []AddRecordCommand{
		{IdempotencyKey: "idem-2", Caller: "0xPatient", Owner: "0xPatient", RecordType: "X-RAY"},
		{IdempotencyKey: "idem-3", Caller: "0xPatient", Owner: "0xPatient", ContentRef: "QmHash123"},
	}
	for _, cmd := range cases {
		if _, err := service.AddRecord(context.Background(), cmd); !errors.Is(err, domainerrors.ErrInvalidRecord) {
			t.Fatalf("expected invalid record error, got %v", err)
		}
	}
}

func TestAddRecordStampsCommitTimeNotClientTime(t *testing.T) {
	repo := &testRepo{}
	service := newTestService(repo)
	record, err := service.AddRecord(context.Background(), AddRecordCommand{
		IdempotencyKey: "idem-4",
		Caller:         "0xPatient",
		Owner:          "0xPatient",
		ContentRef:     "QmHash123",
		RecordType:     "X-RAY",
		Description:    "Chest X-Ray",
	})
	if err != nil {
		t.Fatalf("add record failed: %v", err)
	}
	if record.CommitSeq != 1 {
		t.Fatalf("expected commit seq 1, got %d", record.CommitSeq)
	}
	if record.CreatedAt.IsZero() {
		t.Fatal("expected commit-assigned created_at")
	}
	if record.ContentRef != "QmHash123" || record.Description != "Chest X-Ray" {
		t.Fatalf("round trip mismatch: %+v", record)
	}
}

func TestAddRecordIdempotentReplay(t *testing.T) {
	repo := &testRepo{}
	service := newTestService(repo)
	cmd := AddRecordCommand{
		IdempotencyKey: "idem-5",
		Caller:         "0xPatient",
		Owner:          "0xPatient",
		ContentRef:     "QmHash123",
		RecordType:     "X-RAY",
	}
	first, err := service.AddRecord(context.Background(), cmd)
	if err != nil {
		t.Fatalf("first add failed: %v", err)
	}
	second, err := service.AddRecord(context.Background(), cmd)
	if err != nil {
		t.Fatalf("replay failed: %v", err)
	}
	if first.RecordID != second.RecordID {
		t.Fatalf("replay created a new record: %s vs %s", first.RecordID, second.RecordID)
	}
	if len(repo.appended) != 1 {
		t.Fatalf("expected one append, got %d", len(repo.appended))
	}
}

func TestAddRecordIdempotencyConflictOnDifferentPayload(t *testing.T) {
	service := newTestService(&testRepo{})
	if _, err := service.AddRecord(context.Background(), AddRecordCommand{
		IdempotencyKey: "idem-6",
		Caller:         "0xPatient",
		Owner:          "0xPatient",
		ContentRef:     "QmHash123",
		RecordType:     "X-RAY",
	}); err != nil {
		t.Fatalf("first add failed: %v", err)
	}
	_, err := service.AddRecord(context.Background(), AddRecordCommand{
		IdempotencyKey: "idem-6",
		Caller:         "0xPatient",
		Owner:          "0xPatient",
		ContentRef:     "QmOther",
		RecordType:     "MRI",
	})
	if !errors.Is(err, domainerrors.ErrIdempotencyConflict) {
		t.Fatalf("expected idempotency conflict, got %v", err)
	}
}

func TestListRecordsOwnerOnly(t *testing.T) {
	repo := &testRepo{}
	service := newTestService(repo)
	if _, err := service.ListRecords(context.Background(), "0xDoctor", "0xPatient"); !errors.Is(err, domainerrors.ErrNotOwner) {
		t.Fatalf("expected not-owner error, got %v", err)
	}
	if _, err := service.ListRecords(context.Background(), " 0xPatient ", "0xpatient"); err != nil {
		t.Fatalf("normalized owner read failed: %v", err)
	}
}
