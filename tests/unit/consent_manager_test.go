package unit

import (
	"context"
	"errors"
	"testing"

	consenterrors "healthpass/contexts/health-records/consent-manager/domain/errors"
	consenthttp "healthpass/contexts/health-records/consent-manager/transport/http"
	"healthpass/internal/app/bootstrap"
)

func TestConsentGiveCheckRevoke(t *testing.T) {
	modules := bootstrap.BuildInMemory(nil)
	ctx := context.Background()

	give, err := modules.Consents.Handler.GiveConsentHandler(ctx, "0xPatient", "0xPatient", consenthttp.GiveConsentRequest{
		Accessor:        "0xDoctor",
		Purpose:         "General Checkup",
		DurationSeconds: 3600,
	})
	if err != nil {
		t.Fatalf("give consent failed: %v", err)
	}
	if give.Data.ExpiresAt <= give.Data.GrantedAt {
		t.Fatalf("expected expiry after grant, got granted=%s expires=%s", give.Data.GrantedAt, give.Data.ExpiresAt)
	}

	check, err := modules.Consents.Handler.CheckConsentHandler(ctx, "0xPatient", "0xDoctor", "*")
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if !check.Data.Valid {
		t.Fatal("expected live consent to be valid")
	}

	if _, err := modules.Consents.Handler.RevokeConsentHandler(ctx, "0xPatient", "0xPatient", consenthttp.RevokeConsentRequest{Accessor: "0xDoctor"}); err != nil {
		t.Fatalf("revoke failed: %v", err)
	}
	check, _ = modules.Consents.Handler.CheckConsentHandler(ctx, "0xPatient", "0xDoctor", "*")
	if check.Data.Valid {
		t.Fatal("expected revoked consent to be invalid immediately")
	}
}

func TestConsentScopeLimitsRecordTypes(t *testing.T) {
	modules := bootstrap.BuildInMemory(nil)
	ctx := context.Background()

	if _, err := modules.Consents.Handler.GiveConsentHandler(ctx, "0xPatient", "0xPatient", consenthttp.GiveConsentRequest{
		Accessor:        "0xDoctor",
		Purpose:         "radiology review",
		DurationSeconds: 3600,
		ScopeTypes:      []string{"X-RAY"},
	}); err != nil {
		t.Fatalf("give consent failed: %v", err)
	}

	inScope, _ := modules.Consents.Handler.CheckConsentHandler(ctx, "0xPatient", "0xDoctor", "X-RAY")
	if !inScope.Data.Valid {
		t.Fatal("expected scoped type to be valid")
	}
	outOfScope, _ := modules.Consents.Handler.CheckConsentHandler(ctx, "0xPatient", "0xDoctor", "LAB")
	if outOfScope.Data.Valid {
		t.Fatal("expected out-of-scope type to be invalid")
	}
}

func TestConsentRequiresPurposeAndDuration(t *testing.T) {
	modules := bootstrap.BuildInMemory(nil)
	ctx := context.Background()

	_, err := modules.Consents.Handler.GiveConsentHandler(ctx, "0xPatient", "0xPatient", consenthttp.GiveConsentRequest{
		Accessor:        "0xDoctor",
		DurationSeconds: 3600,
	})
	if !errors.Is(err, consenterrors.ErrInvalidConsent) {
		t.Fatalf("expected invalid consent for missing purpose, got %v", err)
	}

	_, err = modules.Consents.Handler.GiveConsentHandler(ctx, "0xPatient", "0xPatient", consenthttp.GiveConsentRequest{
		Accessor: "0xDoctor",
		Purpose:  "checkup",
	})
	if !errors.Is(err, consenterrors.ErrInvalidConsent) {
		t.Fatalf("expected invalid consent for zero duration, got %v", err)
	}
}

func TestConsentOwnerOnlyMutations(t *testing.T) {
	modules := bootstrap.BuildInMemory(nil)

	_, err := modules.Consents.Handler.GiveConsentHandler(context.Background(), "0xDoctor", "0xPatient", consenthttp.GiveConsentRequest{
		Accessor:        "0xDoctor",
		Purpose:         "checkup",
		DurationSeconds: 3600,
	})
	if !errors.Is(err, consenterrors.ErrNotOwner) {
		t.Fatalf("expected not-owner, got %v", err)
	}
}
