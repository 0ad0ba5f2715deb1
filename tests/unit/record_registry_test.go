package unit

import (
	"context"
	"errors"
	"testing"

	recordserrors "healthpass/contexts/health-records/record-registry/domain/errors"
	recordshttp "healthpass/contexts/health-records/record-registry/transport/http"
	"healthpass/internal/app/bootstrap"
)

func TestRecordRegistryAddAndListInCreationOrder(t *testing.T) {
	modules := bootstrap.BuildInMemory(nil)
	ctx := context.Background()

	for _, ref := range []string{"QmOne", "QmTwo", "QmThree"} {
		_, err := modules.Records.Handler.AddRecordHandler(ctx, "0xPatient", "0xPatient", "idem-"+ref, recordshttp.AddRecordRequest{
			ContentRef: ref,
			RecordType: "LAB",
		})
		if err != nil {
			t.Fatalf("add record %s failed: %v", ref, err)
		}
	}

	resp, err := modules.Records.Handler.ListRecordsHandler(ctx, "0xPatient", "0xPatient")
	if err != nil {
		t.Fatalf("list records failed: %v", err)
	}
	if len(resp.Data.Records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(resp.Data.Records))
	}
	wantOrder := []string{"QmOne", "QmTwo", "QmThree"}
	for i, record := range resp.Data.Records {
		if record.ContentRef != wantOrder[i] {
			t.Fatalf("position %d: expected %s, got %s", i, wantOrder[i], record.ContentRef)
		}
	}
}

func TestRecordRegistryRejectsForeignPartitionWrites(t *testing.T) {
	modules := bootstrap.BuildInMemory(nil)

	_, err := modules.Records.Handler.AddRecordHandler(context.Background(), "0xDoctor", "0xPatient", "idem-foreign", recordshttp.AddRecordRequest{
		ContentRef: "QmSneaky",
		RecordType: "LAB",
	})
	if !errors.Is(err, recordserrors.ErrNotOwner) {
		t.Fatalf("expected not-owner, got %v", err)
	}
}

func TestRecordRegistryIdempotentReplayReturnsSameRecord(t *testing.T) {
	modules := bootstrap.BuildInMemory(nil)
	ctx := context.Background()

	req := recordshttp.AddRecordRequest{ContentRef: "QmSame", RecordType: "X-RAY"}
	first, err := modules.Records.Handler.AddRecordHandler(ctx, "0xPatient", "0xPatient", "idem-replay", req)
	if err != nil {
		t.Fatalf("first add failed: %v", err)
	}
	second, err := modules.Records.Handler.AddRecordHandler(ctx, "0xPatient", "0xPatient", "idem-replay", req)
	if err != nil {
		t.Fatalf("replay add failed: %v", err)
	}
	if first.Data.RecordID != second.Data.RecordID {
		t.Fatalf("expected replay to return same record id, got %s and %s", first.Data.RecordID, second.Data.RecordID)
	}

	list, _ := modules.Records.Handler.ListRecordsHandler(ctx, "0xPatient", "0xPatient")
	if len(list.Data.Records) != 1 {
		t.Fatalf("expected a single stored record after replay, got %d", len(list.Data.Records))
	}
}

func TestRecordRegistryRequiresContentRefAndType(t *testing.T) {
	modules := bootstrap.BuildInMemory(nil)

	_, err := modules.Records.Handler.AddRecordHandler(context.Background(), "0xPatient", "0xPatient", "idem-empty", recordshttp.AddRecordRequest{
		ContentRef: "",
		RecordType: "LAB",
	})
	if !errors.Is(err, recordserrors.ErrInvalidRecord) {
		t.Fatalf("expected invalid record, got %v", err)
	}
}
