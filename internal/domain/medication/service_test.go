package medication

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

func seedMedication(t *testing.T, svc *Service, id string, stock, threshold int) {
	t.Helper()
	m := model.Medication{ID: id, Name: "Paracétamol 500mg", UnitPrice: 500,
		StockQuantity: stock, LowStockLevel: threshold}
	if err := svc.CreateMedication(context.Background(), &m); err != nil {
		t.Fatalf("seed medication: %v", err)
	}
}

func TestRecordEntryIncreasesStock(t *testing.T) {
	svc, _ := newTestService()
	seedMedication(t, svc, "med-1", 10, 5)

	mov, err := svc.RecordEntry(context.Background(), "med-1", 40, "livraison fournisseur")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mov.Direction != model.StockEntry || mov.Quantity != 40 {
		t.Fatalf("unexpected movement: %+v", mov)
	}

	med, _ := svc.GetMedication("med-1")
	if med.StockQuantity != 50 {
		t.Fatalf("expected stock 50, got %d", med.StockQuantity)
	}
}

func TestRecordExitRejectsInsufficientStock(t *testing.T) {
	svc, st := newTestService()
	seedMedication(t, svc, "med-1", 3, 5)

	if _, err := svc.RecordExit(context.Background(), "med-1", 5, "péremption"); err == nil {
		t.Fatal("expected insufficient stock error")
	}

	med, _ := svc.GetMedication("med-1")
	if med.StockQuantity != 3 {
		t.Fatalf("stock must be unchanged on rejection, got %d", med.StockQuantity)
	}
	if len(st.Snapshot().StockMovements) != 0 {
		t.Fatal("no movement must be recorded on rejection")
	}
}

func TestRecordExitDecrementsAndAudits(t *testing.T) {
	svc, _ := newTestService()
	seedMedication(t, svc, "med-1", 10, 5)

	if _, err := svc.RecordExit(context.Background(), "med-1", 4, "transfert service"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	med, _ := svc.GetMedication("med-1")
	if med.StockQuantity != 6 {
		t.Fatalf("expected stock 6, got %d", med.StockQuantity)
	}
	movs := svc.Movements("med-1")
	if len(movs) != 1 || movs[0].Direction != model.StockExit {
		t.Fatalf("unexpected movements: %v", movs)
	}
}

func TestListMedicationsLowStockOnly(t *testing.T) {
	svc, _ := newTestService()
	seedMedication(t, svc, "med-1", 3, 5)
	seedMedication(t, svc, "med-2", 100, 5)

	low := svc.ListMedications(true)
	if len(low) != 1 || low[0].ID != "med-1" {
		t.Fatalf("unexpected low stock filter: %v", low)
	}
}

func TestMovementRejectsNonPositiveQuantity(t *testing.T) {
	svc, _ := newTestService()
	seedMedication(t, svc, "med-1", 10, 5)

	if _, err := svc.RecordEntry(context.Background(), "med-1", 0, ""); err == nil {
		t.Fatal("expected error for zero quantity")
	}
}
