package patient

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/clinexa/backoffice/internal/model"
	"github.com/clinexa/backoffice/internal/store"
)

func newTestService() (*Service, *store.Store) {
	st := store.New()
	svc := NewService(st)
	svc.now = func() time.Time { return time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC) }
	return svc, st
}

func TestCreatePatient(t *testing.T) {
	svc, st := newTestService()

	p := model.Patient{FirstName: "Awa", LastName: "Diop", Gender: "female"}
	if err := svc.CreatePatient(context.Background(), &p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ID == "" {
		t.Fatal("expected generated id")
	}
	if len(st.Snapshot().Patients) != 1 {
		t.Fatal("expected patient in snapshot")
	}
}

func TestCreatePatientRequiresName(t *testing.T) {
	svc, _ := newTestService()
	err := svc.CreatePatient(context.Background(), &model.Patient{Gender: "male"})
	if err == nil {
		t.Fatal("expected error for missing name")
	}
}

func TestUpdatePatientStaleVersionConflicts(t *testing.T) {
	svc, _ := newTestService()

	p := model.Patient{FirstName: "Awa", LastName: "Diop"}
	if err := svc.CreatePatient(context.Background(), &p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	first := p
	first.Phone = "771234567"
	if err := svc.UpdatePatient(context.Background(), &first); err != nil {
		t.Fatalf("first update should apply: %v", err)
	}

	stale := p
	stale.Phone = "779999999"
	err := svc.UpdatePatient(context.Background(), &stale)
	if !errors.Is(err, store.ErrVersionConflict) {
		t.Fatalf("expected version conflict, got %v", err)
	}
}

func TestDeletePatientLeavesOtherRecords(t *testing.T) {
	svc, st := newTestService()

	p := model.Patient{ID: "pat-1", FirstName: "Awa", LastName: "Diop"}
	if err := svc.CreatePatient(context.Background(), &p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	st.Dispatch(store.Add(store.Invoices, model.Invoice{ID: "inv-1", PatientID: "pat-1", Total: 5000}))

	if err := svc.DeletePatient(context.Background(), "pat-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	snap := st.Snapshot()
	if len(snap.Patients) != 0 {
		t.Fatal("expected patient removed")
	}
	if len(snap.Invoices) != 1 {
		t.Fatal("expected invoice untouched by patient delete")
	}
	if got := svc.ResolveName("pat-1"); got != model.NotFoundPlaceholder {
		t.Fatalf("expected placeholder for dangling reference, got %q", got)
	}
}

func TestDeleteAbsentPatientIsNoOp(t *testing.T) {
	svc, _ := newTestService()
	if err := svc.DeletePatient(context.Background(), "missing"); err != nil {
		t.Fatalf("expected idempotent delete, got %v", err)
	}
}

func TestListPatientsSearchAndOrder(t *testing.T) {
	svc, _ := newTestService()
	for _, p := range []model.Patient{
		{FirstName: "Moussa", LastName: "Ba"},
		{FirstName: "Awa", LastName: "Diop"},
		{FirstName: "Fatou", LastName: "Diop"},
	} {
		p := p
		if err := svc.CreatePatient(context.Background(), &p); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	all := svc.ListPatients("")
	if len(all) != 3 {
		t.Fatalf("expected 3 patients, got %d", len(all))
	}
	if all[0].LastName != "Ba" || all[1].FirstName != "Awa" {
		t.Fatalf("unexpected order: %v", all)
	}

	hits := svc.ListPatients("diop")
	if len(hits) != 2 {
		t.Fatalf("expected 2 search hits, got %d", len(hits))
	}
}
