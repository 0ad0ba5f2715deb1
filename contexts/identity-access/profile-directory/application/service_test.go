package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"healthpass/contexts/identity-access/profile-directory/adapters/memory"
	domainerrors "healthpass/contexts/identity-access/profile-directory/domain/errors"
)

type testCommitLog struct {
	seq uint64
}

func (c *testCommitLog) Commit(_ context.Context) (uint64, time.Time, error) {
	c.seq++
	return c.seq, time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC).Add(time.Duration(c.seq) * time.Second), nil
}

func newTestService() Service {
	return Service{
		Repo:    memory.NewStore(),
		Commits: &testCommitLog{},
	}
}

func TestUpsertProfileAppliesDefaults(t *testing.T) {
	service := newTestService()
	profile, err := service.UpsertProfile(context.Background(), UpsertProfileCommand{
		Caller:    "0xAlice",
		Principal: "0xAlice",
	})
	if err != nil {
		t.Fatalf("upsert failed: %v", err)
	}
	if profile.Principal != "0xalice" {
		t.Fatalf("expected lowercased principal, got %q", profile.Principal)
	}
	if profile.Name != "Anonymous User" {
		t.Fatalf("expected placeholder name, got %q", profile.Name)
	}
	if profile.Role != "patient" {
		t.Fatalf("expected default patient role, got %q", profile.Role)
	}
}

func TestUpsertProfileRejectsUnknownRole(t *testing.T) {
	service := newTestService()
	_, err := service.UpsertProfile(context.Background(), UpsertProfileCommand{
		Caller:    "0xAlice",
		Principal: "0xAlice",
		Role:      "admin",
	})
	if !errors.Is(err, domainerrors.ErrInvalidProfile) {
		t.Fatalf("expected invalid profile, got %v", err)
	}
}

func TestUpsertProfileSelfOnly(t *testing.T) {
	service := newTestService()
	_, err := service.UpsertProfile(context.Background(), UpsertProfileCommand{
		Caller:    "0xBob",
		Principal: "0xAlice",
		Name:      "Alice",
	})
	if !errors.Is(err, domainerrors.ErrNotOwner) {
		t.Fatalf("expected not-owner, got %v", err)
	}
}

func TestUpsertProfileOverwritesAndPreservesCreatedAt(t *testing.T) {
	service := newTestService()
	first, err := service.UpsertProfile(context.Background(), UpsertProfileCommand{
		Caller:    "0xAlice",
		Principal: "0xAlice",
		Name:      "Alice",
		Role:      "PATIENT",
	})
	if err != nil {
		t.Fatalf("first upsert failed: %v", err)
	}
	second, err := service.UpsertProfile(context.Background(), UpsertProfileCommand{
		Caller:    "0xAlice",
		Principal: "0xAlice",
		Name:      "Dr. Alice",
		Role:      "doctor",
	})
	if err != nil {
		t.Fatalf("second upsert failed: %v", err)
	}
	if second.Name != "Dr. Alice" || second.Role != "doctor" {
		t.Fatalf("expected updated fields, got %+v", second)
	}
	if !second.CreatedAt.Equal(first.CreatedAt) {
		t.Fatal("expected created_at preserved across updates")
	}
	if !second.UpdatedAt.After(first.UpdatedAt) {
		t.Fatal("expected updated_at to advance")
	}
}

func TestUpsertProfileStoresEmail(t *testing.T) {
	service := newTestService()
	first, err := service.UpsertProfile(context.Background(), UpsertProfileCommand{
		Caller:    "0xAlice",
		Principal: "0xAlice",
		Name:      "Alice",
		Email:     " Alice@Example.COM ",
	})
	if err != nil {
		t.Fatalf("upsert failed: %v", err)
	}
	if first.Email != "alice@example.com" {
		t.Fatalf("expected normalized email, got %q", first.Email)
	}
	stored, err := service.GetProfile(context.Background(), "0xalice")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if stored.Email != "alice@example.com" {
		t.Fatalf("expected email round-tripped, got %q", stored.Email)
	}

	second, err := service.UpsertProfile(context.Background(), UpsertProfileCommand{
		Caller:    "0xAlice",
		Principal: "0xAlice",
		Name:      "Alice",
		Email:     "alice@clinic.io",
	})
	if err != nil {
		t.Fatalf("second upsert failed: %v", err)
	}
	if second.Email != "alice@clinic.io" {
		t.Fatalf("expected email overwritten, got %q", second.Email)
	}
}

func TestGetProfileNotFound(t *testing.T) {
	service := newTestService()
	if _, err := service.GetProfile(context.Background(), "0xGhost"); !errors.Is(err, domainerrors.ErrProfileNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestGetProfileNormalizesPrincipal(t *testing.T) {
	service := newTestService()
	if _, err := service.UpsertProfile(context.Background(), UpsertProfileCommand{
		Caller:    "0xALICE",
		Principal: "0xAlice",
		Name:      "Alice",
	}); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}
	profile, err := service.GetProfile(context.Background(), "  0xALICE ")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if profile.Name != "Alice" {
		t.Fatalf("expected stored profile, got %+v", profile)
	}
}
