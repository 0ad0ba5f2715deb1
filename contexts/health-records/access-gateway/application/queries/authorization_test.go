package queries

import (
	"context"
	"errors"
	"testing"

	domainerrors "healthpass/contexts/health-records/access-gateway/domain/errors"
	"healthpass/contexts/health-records/access-gateway/ports"
)

type stubACL struct {
	active map[string]bool
}

func (s stubACL) IsActive(_ context.Context, owner string, accessor string) (bool, error) {
	return s.active[owner+"|"+accessor], nil
}

type stubConsent struct {
	valid map[string]bool
}

func (s stubConsent) IsValid(_ context.Context, owner string, accessor string, recordType string) (bool, error) {
	return s.valid[owner+"|"+accessor+"|"+recordType], nil
}

type stubRecords struct {
	records map[string][]ports.RecordView
}

func (s stubRecords) ListRecords(_ context.Context, owner string) ([]ports.RecordView, error) {
	return s.records[owner], nil
}

func TestIsAuthorizedMergesBothGrantPaths(t *testing.T) {
	query := AuthorizationQuery{
		ACL:     stubACL{active: map[string]bool{"0xpatient|0xdoctor": true}},
		Consent: stubConsent{valid: map[string]bool{"0xpatient|0xnurse|*": true}},
	}

	cases := []struct {
		accessor string
		want     bool
	}{
		{"0xDoctor", true},
		{"0xNurse", true},
		{"0xStranger", false},
	}
	for _, tc := range cases {
		got, err := query.IsAuthorized(context.Background(), "0xPatient", tc.accessor)
		if err != nil {
			t.Fatalf("authorization check failed for %s: %v", tc.accessor, err)
		}
		if got != tc.want {
			t.Fatalf("accessor %s: expected %v, got %v", tc.accessor, tc.want, got)
		}
	}
}

func TestStandingGrantCoversEveryRecordType(t *testing.T) {
	query := AuthorizationQuery{
		ACL:     stubACL{active: map[string]bool{"0xpatient|0xdoctor": true}},
		Consent: stubConsent{valid: map[string]bool{"0xpatient|0xnurse|x-ray": true}},
	}

	for _, recordType := range []string{"X-RAY", "LAB", "anything"} {
		got, err := query.IsAuthorizedFor(context.Background(), "0xPatient", "0xDoctor", recordType)
		if err != nil || !got {
			t.Fatalf("standing grant should cover type %q, got=%v err=%v", recordType, got, err)
		}
	}
	if got, _ := query.IsAuthorizedFor(context.Background(), "0xPatient", "0xNurse", "lab"); got {
		t.Fatal("consent scoped to x-ray must not cover lab")
	}
}

func TestOwnerIsAlwaysAuthorized(t *testing.T) {
	query := AuthorizationQuery{ACL: stubACL{}, Consent: stubConsent{}}
	got, err := query.IsAuthorized(context.Background(), "0xPatient", "0xPATIENT")
	if err != nil || !got {
		t.Fatalf("owner must be authorized regardless of grants, got=%v err=%v", got, err)
	}
}

func TestGetAuthorizedRecordsOwnerBypassAndDenial(t *testing.T) {
	query := AuthorizedRecordsQuery{
		Records: stubRecords{records: map[string][]ports.RecordView{
			"0xpatient": {{RecordID: "r1", Owner: "0xpatient"}},
		}},
		Authorization: AuthorizationQuery{ACL: stubACL{}, Consent: stubConsent{}},
	}

	records, err := query.GetAuthorizedRecords(context.Background(), "0xPatient", "0xPatient")
	if err != nil {
		t.Fatalf("owner read failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected owner to see 1 record, got %d", len(records))
	}

	if _, err := query.GetAuthorizedRecords(context.Background(), "0xPatient", "0xStranger"); !errors.Is(err, domainerrors.ErrUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestDenialDoesNotRevealRecordExistence(t *testing.T) {
	query := AuthorizedRecordsQuery{
		Records:       stubRecords{records: map[string][]ports.RecordView{}},
		Authorization: AuthorizationQuery{ACL: stubACL{}, Consent: stubConsent{}},
	}
	_, emptyErr := query.GetAuthorizedRecords(context.Background(), "0xEmpty", "0xStranger")
	if !errors.Is(emptyErr, domainerrors.ErrUnauthorized) {
		t.Fatalf("expected unauthorized for empty partition, got %v", emptyErr)
	}
}
