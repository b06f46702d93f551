package insurance

import (
	"context"
	"testing"
	"time"

	"github.com/clinexa/backoffice/internal/model"
	"github.com/clinexa/backoffice/internal/store"
)

func newTestService(t *testing.T) (*Service, *store.Store) {
	t.Helper()
	st := store.New()
	svc := NewService(st)
	svc.now = func() time.Time { return time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC) }
	return svc, st
}

func seedClaim(t *testing.T, st *store.Store, status string) model.InsuranceClaim {
	t.Helper()
	claim := model.InsuranceClaim{
		ID:                    "clm-1",
		ClaimNumber:           "CLM-2024-042",
		PatientID:             "pat-1",
		InvoiceID:             "inv-1",
		TotalAmount:           13000,
		CoveredAmount:         10400,
		PatientResponsibility: 2600,
		Status:                status,
		SubmittedAt:           time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
	}
	if res := st.Dispatch(store.Add(store.InsuranceClaims, claim)); res.Err != nil {
		t.Fatalf("seed claim: %v", res.Err)
	}
	return claim
}

func TestEnrollDefaultsFromPolicy(t *testing.T) {
	svc, _ := newTestService(t)

	provider := model.InsuranceProvider{ID: "prov-1", Name: "Sanlam"}
	if err := svc.CreateProvider(context.Background(), &provider); err != nil {
		t.Fatalf("create provider: %v", err)
	}
	policy := model.InsurancePolicy{ID: "pol-1", ProviderID: "prov-1", Name: "Standard",
		CoveragePercent: 70, AnnualLimit: 2000000}
	if err := svc.CreatePolicy(context.Background(), &policy); err != nil {
		t.Fatalf("create policy: %v", err)
	}

	b := model.PatientInsurance{PatientID: "pat-1", PolicyID: "pol-1", PolicyNumber: "SN-0001"}
	if err := svc.Enroll(context.Background(), &b); err != nil {
		t.Fatalf("enroll: %v", err)
	}
	if b.CoveragePercent != 70 || b.AnnualLimit != 2000000 {
		t.Fatalf("expected policy defaults, got %+v", b)
	}
	if !b.Active || b.UsedAmount != 0 {
		t.Fatalf("expected fresh active binding, got %+v", b)
	}

	if _, err := svc.ActiveBinding("pat-1", time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("expected active binding: %v", err)
	}
	if _, err := svc.ActiveBinding("pat-1", time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)); err == nil {
		t.Fatal("binding must expire after validity window")
	}
}

func TestCreatePolicyValidation(t *testing.T) {
	svc, _ := newTestService(t)
	provider := model.InsuranceProvider{ID: "prov-1", Name: "Sanlam"}
	if err := svc.CreateProvider(context.Background(), &provider); err != nil {
		t.Fatalf("create provider: %v", err)
	}

	bad := model.InsurancePolicy{ProviderID: "prov-1", Name: "Bad", CoveragePercent: 120}
	if err := svc.CreatePolicy(context.Background(), &bad); err == nil {
		t.Fatal("expected error for coverage over 100")
	}
	orphan := model.InsurancePolicy{ProviderID: "missing", Name: "Orphan", CoveragePercent: 50}
	if err := svc.CreatePolicy(context.Background(), &orphan); err == nil {
		t.Fatal("expected error for unknown provider")
	}
}

func TestClaimLifecycle(t *testing.T) {
	svc, st := newTestService(t)
	seedClaim(t, st, model.ClaimSubmitted)

	c, err := svc.Transition(context.Background(), "clm-1", Decision{Status: model.ClaimInReview})
	if err != nil {
		t.Fatalf("submitted → in-review: %v", err)
	}
	c, err = svc.Transition(context.Background(), "clm-1", Decision{Status: model.ClaimApproved})
	if err != nil {
		t.Fatalf("in-review → approved: %v", err)
	}
	if c.DecidedAt == nil {
		t.Fatal("expected decision timestamp")
	}
	c, err = svc.Transition(context.Background(), "clm-1", Decision{Status: model.ClaimPaid})
	if err != nil {
		t.Fatalf("approved → paid: %v", err)
	}
	if c.PaidAt == nil {
		t.Fatal("expected payment timestamp")
	}
}

func TestClaimIllegalTransitionsRejected(t *testing.T) {
	svc, st := newTestService(t)
	seedClaim(t, st, model.ClaimSubmitted)

	cases := []string{model.ClaimApproved, model.ClaimPaid, model.ClaimRejected}
	for _, target := range cases {
		if _, err := svc.Transition(context.Background(), "clm-1", Decision{Status: target}); err == nil {
			t.Fatalf("expected rejection for submitted → %s", target)
		}
	}
}

func TestPartialApprovalRederivesPatientShare(t *testing.T) {
	svc, st := newTestService(t)
	seedClaim(t, st, model.ClaimInReview)

	c, err := svc.Transition(context.Background(), "clm-1",
		Decision{Status: model.ClaimPartiallyApproved, CoveredAmount: 8000})
	if err != nil {
		t.Fatalf("partial approval: %v", err)
	}
	if c.CoveredAmount != 8000 {
		t.Fatalf("expected covered 8000, got %v", c.CoveredAmount)
	}
	if c.PatientResponsibility != 5000 {
		t.Fatalf("patient share must equal total minus covered, got %v", c.PatientResponsibility)
	}
}

func TestRejectionZeroesCoverage(t *testing.T) {
	svc, st := newTestService(t)
	seedClaim(t, st, model.ClaimInReview)

	c, err := svc.Transition(context.Background(), "clm-1", Decision{Status: model.ClaimRejected})
	if err != nil {
		t.Fatalf("rejection: %v", err)
	}
	if c.CoveredAmount != 0 || c.PatientResponsibility != 13000 {
		t.Fatalf("expected full patient responsibility, got %+v", c)
	}
	if _, err := svc.Transition(context.Background(), "clm-1", Decision{Status: model.ClaimPaid}); err == nil {
		t.Fatal("rejected claim must be terminal")
	}
}
