package unit

import (
	"context"
	"errors"
	"testing"

	grantserrors "healthpass/contexts/health-records/access-grants/domain/errors"
	grantshttp "healthpass/contexts/health-records/access-grants/transport/http"
	"healthpass/internal/app/bootstrap"
)

func TestAccessGrantsLifecycle(t *testing.T) {
	modules := bootstrap.BuildInMemory(nil)
	ctx := context.Background()

	check := func(want bool) {
		t.Helper()
		resp, err := modules.Grants.Handler.CheckAccessHandler(ctx, "0xPatient", "0xDoctor")
		if err != nil {
			t.Fatalf("check failed: %v", err)
		}
		if resp.Data.Active != want {
			t.Fatalf("expected active=%v, got %v", want, resp.Data.Active)
		}
	}

	check(false)

	if _, err := modules.Grants.Handler.GrantAccessHandler(ctx, "0xPatient", "0xPatient", grantshttp.GrantAccessRequest{Accessor: "0xDoctor"}); err != nil {
		t.Fatalf("grant failed: %v", err)
	}
	check(true)

	// Granting again is observably the same as granting once.
	if _, err := modules.Grants.Handler.GrantAccessHandler(ctx, "0xPatient", "0xPatient", grantshttp.GrantAccessRequest{Accessor: "0xDoctor"}); err != nil {
		t.Fatalf("repeat grant failed: %v", err)
	}
	check(true)

	if _, err := modules.Grants.Handler.RevokeAccessHandler(ctx, "0xPatient", "0xPatient", grantshttp.GrantAccessRequest{Accessor: "0xDoctor"}); err != nil {
		t.Fatalf("revoke failed: %v", err)
	}
	check(false)
}

func TestAccessGrantsOwnerOnlyMutations(t *testing.T) {
	modules := bootstrap.BuildInMemory(nil)

	_, err := modules.Grants.Handler.GrantAccessHandler(context.Background(), "0xDoctor", "0xPatient", grantshttp.GrantAccessRequest{Accessor: "0xDoctor"})
	if !errors.Is(err, grantserrors.ErrNotOwner) {
		t.Fatalf("expected not-owner, got %v", err)
	}
}

func TestAccessGrantsSelfGrantRejected(t *testing.T) {
	modules := bootstrap.BuildInMemory(nil)

	_, err := modules.Grants.Handler.GrantAccessHandler(context.Background(), "0xPatient", "0xPatient", grantshttp.GrantAccessRequest{Accessor: "0xPATIENT"})
	if !errors.Is(err, grantserrors.ErrInvalidGrant) {
		t.Fatalf("expected invalid grant, got %v", err)
	}
}

func TestAccessGrantsMutationsLandInOutbox(t *testing.T) {
	modules := bootstrap.BuildInMemory(nil)
	ctx := context.Background()

	if _, err := modules.Grants.Handler.GrantAccessHandler(ctx, "0xPatient", "0xPatient", grantshttp.GrantAccessRequest{Accessor: "0xDoctor"}); err != nil {
		t.Fatalf("grant failed: %v", err)
	}
	if _, err := modules.Grants.Handler.RevokeAccessHandler(ctx, "0xPatient", "0xPatient", grantshttp.GrantAccessRequest{Accessor: "0xDoctor"}); err != nil {
		t.Fatalf("revoke failed: %v", err)
	}

	pending, err := modules.Grants.Store.ListPendingOutbox(ctx, 10)
	if err != nil {
		t.Fatalf("outbox list failed: %v", err)
	}
	if len(pending) != 2 {
		t.Fatalf("expected every mutation in the outbox, got %d rows", len(pending))
	}

	if err := modules.Grants.OutboxRelay.RunOnce(ctx); err != nil {
		t.Fatalf("relay run failed: %v", err)
	}
	pending, _ = modules.Grants.Store.ListPendingOutbox(ctx, 10)
	if len(pending) != 0 {
		t.Fatalf("expected outbox drained after relay, got %d rows", len(pending))
	}
}
