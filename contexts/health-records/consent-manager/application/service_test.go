package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"healthpass/contexts/health-records/consent-manager/adapters/memory"
	domainerrors "healthpass/contexts/health-records/consent-manager/domain/errors"
)

type manualClock struct {
	now time.Time
}

func (c *manualClock) Now() time.Time { return c.now }

func (c *manualClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

type clockCommitLog struct {
	clock *manualClock
	seq   uint64
}

func (c *clockCommitLog) Commit(_ context.Context) (uint64, time.Time, error) {
	c.seq++
	return c.seq, c.clock.now, nil
}

func newTestService() (Service, *manualClock) {
	clock := &manualClock{now: time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC)}
	return Service{
		Repo:    memory.NewStore(),
		Commits: &clockCommitLog{clock: clock},
		Clock:   clock,
	}, clock
}

func TestGiveConsentRequiresPurposeAndPositiveDuration(t *testing.T) {
	service, _ := newTestService()
	cases := []GiveConsentCommand{
		{Caller: "0xPatient", Owner: "0xPatient", Accessor: "0xDoctor", DurationSeconds: 3600},
		{Caller: "0xPatient", Owner: "0xPatient", Accessor: "0xDoctor", Purpose: "checkup", DurationSeconds: 0},
		{Caller: "0xPatient", Owner: "0xPatient", Accessor: "0xDoctor", Purpose: "checkup", DurationSeconds: -5},
	}
	for _, cmd := range cases {
		if _, err := service.GiveConsent(context.Background(), cmd); !errors.Is(err, domainerrors.ErrInvalidConsent) {
			t.Fatalf("expected invalid consent, got %v", err)
		}
	}
}

func TestGiveConsentOwnerOnly(t *testing.T) {
	service, _ := newTestService()
	_, err := service.GiveConsent(context.Background(), GiveConsentCommand{
		Caller:          "0xDoctor",
		Owner:           "0xPatient",
		Accessor:        "0xDoctor",
		Purpose:         "checkup",
		DurationSeconds: 3600,
	})
	if !errors.Is(err, domainerrors.ErrNotOwner) {
		t.Fatalf("expected not-owner error, got %v", err)
	}
}

func TestConsentValidUntilLazyExpiry(t *testing.T) {
	service, clock := newTestService()
	_, err := service.GiveConsent(context.Background(), GiveConsentCommand{
		Caller:          "0xPatient",
		Owner:           "0xPatient",
		Accessor:        "0xDoctor",
		Purpose:         "General Checkup",
		DurationSeconds: 3600,
	})
	if err != nil {
		t.Fatalf("give consent failed: %v", err)
	}

	valid, err := service.IsValid(context.Background(), "0xPatient", "0xDoctor", "*")
	if err != nil || !valid {
		t.Fatalf("expected valid consent, valid=%v err=%v", valid, err)
	}

	clock.Advance(3599 * time.Second)
	if valid, _ := service.IsValid(context.Background(), "0xPatient", "0xDoctor", "*"); !valid {
		t.Fatal("expected consent still valid one second before expiry")
	}

	clock.Advance(time.Second)
	if valid, _ := service.IsValid(context.Background(), "0xPatient", "0xDoctor", "*"); valid {
		t.Fatal("expected consent expired at expires_at")
	}
}

func TestRevokeConsentImmediate(t *testing.T) {
	service, _ := newTestService()
	if _, err := service.GiveConsent(context.Background(), GiveConsentCommand{
		Caller:          "0xPatient",
		Owner:           "0xPatient",
		Accessor:        "0xDoctor",
		Purpose:         "General Checkup",
		DurationSeconds: 3600,
	}); err != nil {
		t.Fatalf("give consent failed: %v", err)
	}
	if err := service.RevokeConsent(context.Background(), "0xPatient", "0xPatient", "0xDoctor"); err != nil {
		t.Fatalf("revoke failed: %v", err)
	}
	if valid, _ := service.IsValid(context.Background(), "0xPatient", "0xDoctor", "*"); valid {
		t.Fatal("expected revoked consent invalid despite remaining time")
	}
}

func TestRevokeConsentWithoutEntryIsNoOp(t *testing.T) {
	clock := &manualClock{now: time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC)}
	commits := &clockCommitLog{clock: clock}
	service := Service{
		Repo:    memory.NewStore(),
		Commits: commits,
		Clock:   clock,
	}
	if err := service.RevokeConsent(context.Background(), "0xPatient", "0xPatient", "0xDoctor"); err != nil {
		t.Fatalf("expected no-op success, got %v", err)
	}
	if commits.seq != 0 {
		t.Fatalf("expected no commit for absent entry, got seq %d", commits.seq)
	}
}

func TestNewConsentOverwritesRevocation(t *testing.T) {
	service, _ := newTestService()
	give := func() {
		if _, err := service.GiveConsent(context.Background(), GiveConsentCommand{
			Caller:          "0xPatient",
			Owner:           "0xPatient",
			Accessor:        "0xDoctor",
			Purpose:         "lab review",
			DurationSeconds: 60,
		}); err != nil {
			t.Fatalf("give consent failed: %v", err)
		}
	}
	give()
	if err := service.RevokeConsent(context.Background(), "0xPatient", "0xPatient", "0xDoctor"); err != nil {
		t.Fatalf("revoke failed: %v", err)
	}
	give()
	if valid, _ := service.IsValid(context.Background(), "0xPatient", "0xDoctor", "*"); !valid {
		t.Fatal("expected fresh consent to replace revoked entry")
	}
}

func TestConsentScopeMatching(t *testing.T) {
	service, _ := newTestService()
	if _, err := service.GiveConsent(context.Background(), GiveConsentCommand{
		Caller:          "0xPatient",
		Owner:           "0xPatient",
		Accessor:        "0xDoctor",
		Purpose:         "radiology",
		DurationSeconds: 3600,
		ScopeTypes:      []string{"X-RAY", "MRI"},
	}); err != nil {
		t.Fatalf("give consent failed: %v", err)
	}

	if valid, _ := service.IsValid(context.Background(), "0xPatient", "0xDoctor", "X-RAY"); !valid {
		t.Fatal("expected scoped type to match")
	}
	if valid, _ := service.IsValid(context.Background(), "0xPatient", "0xDoctor", "LAB"); valid {
		t.Fatal("expected out-of-scope type to be rejected")
	}
	if valid, _ := service.IsValid(context.Background(), "0xPatient", "0xDoctor", "*"); !valid {
		t.Fatal("expected wildcard check to see the scoped consent")
	}
}
