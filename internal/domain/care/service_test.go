package care

import (
	"context"
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

func TestCreateCareRecordDerivesTotals(t *testing.T) {
	svc, _ := newTestService()

	rec := model.CareRecord{
		PatientID: "pat-1",
		Items: []model.CareItem{
			{Name: "Pansement", Quantity: 2, UnitPrice: 3000},
			{Name: "Injection IM", Quantity: 1, UnitPrice: 2500},
		},
		TotalCost: 999999, // client figure, must be ignored
	}
	if err := svc.CreateCareRecord(context.Background(), &rec); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.TotalCost != 8500 {
		t.Fatalf("expected total 8500, got %v", rec.TotalCost)
	}
	if rec.Items[0].TotalPrice != 6000 {
		t.Fatalf("expected line total 6000, got %v", rec.Items[0].TotalPrice)
	}
	if rec.Status != model.CarePlanned {
		t.Fatalf("expected default status planned, got %q", rec.Status)
	}
}

func TestCareItemResolvesCataloguePrice(t *testing.T) {
	svc, _ := newTestService()

	cs := model.CareService{ID: "cs-1", Name: "Séance kiné", UnitPrice: 10000}
	if err := svc.CreateCareService(context.Background(), &cs); err != nil {
		t.Fatalf("create care service: %v", err)
	}

	rec := model.CareRecord{
		PatientID: "pat-1",
		Items:     []model.CareItem{{CareServiceID: "cs-1", Quantity: 3}},
	}
	if err := svc.CreateCareRecord(context.Background(), &rec); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Items[0].UnitPrice != 10000 || rec.Items[0].Name != "Séance kiné" {
		t.Fatalf("expected catalogue resolution, got %+v", rec.Items[0])
	}
	if rec.TotalCost != 30000 {
		t.Fatalf("expected total 30000, got %v", rec.TotalCost)
	}
}

func TestUpdateCareRecordRecomputesTotal(t *testing.T) {
	svc, _ := newTestService()

	rec := model.CareRecord{
		PatientID: "pat-1",
		Items:     []model.CareItem{{Name: "Pansement", Quantity: 1, UnitPrice: 3000}},
	}
	if err := svc.CreateCareRecord(context.Background(), &rec); err != nil {
		t.Fatalf("create: %v", err)
	}

	updated := rec
	updated.Items = append(updated.Items, model.CareItem{Name: "Perfusion", Quantity: 1, UnitPrice: 7000})
	updated.Status = model.CareInProgress
	if err := svc.UpdateCareRecord(context.Background(), &updated); err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.TotalCost != 10000 {
		t.Fatalf("expected recomputed total 10000, got %v", updated.TotalCost)
	}

	stored, err := svc.GetCareRecord(rec.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.TotalCost != 10000 {
		t.Fatalf("expected stored total 10000, got %v", stored.TotalCost)
	}
}

func TestCreateCareRecordRejectsUnknownStatus(t *testing.T) {
	svc, _ := newTestService()
	rec := model.CareRecord{PatientID: "pat-1", Status: "paused"}
	if err := svc.CreateCareRecord(context.Background(), &rec); err == nil {
		t.Fatal("expected error for unknown status")
	}
}
