package dashboard

import (
	"testing"
	"time"

	"github.com/clinexa/backoffice/internal/model"
	"github.com/clinexa/backoffice/internal/store"
)

func TestCompute(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	paidAt := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	yesterday := now.Add(-24 * time.Hour)

	snap := store.Snapshot{
		Patients: []model.Patient{{ID: "pat-1"}, {ID: "pat-2"}},
		Appointments: []model.Appointment{
			{ID: "a1", Date: now.Add(2 * time.Hour), Status: model.AppointmentConfirmed},
			{ID: "a2", Date: now.Add(3 * time.Hour), Status: model.AppointmentCancelled},
			{ID: "a3", Date: yesterday, Status: model.AppointmentPending},
		},
		Invoices: []model.Invoice{
			{ID: "i1", Total: 13000, Status: model.InvoicePaid, PaymentDate: &paidAt},
			{ID: "i2", Total: 9000, Status: model.InvoicePaid, PaymentDate: &yesterday},
			{ID: "i3", Total: 4000, Status: model.InvoiceOverdue},
		},
		Medications: []model.Medication{
			{ID: "m1", StockQuantity: 2, LowStockLevel: 5},
			{ID: "m2", StockQuantity: 50, LowStockLevel: 5},
		},
		Hospitalizations: []model.Hospitalization{
			{ID: "h1", Status: model.HospitalizationActive},
			{ID: "h2", Status: model.HospitalizationDischarged},
		},
		Rooms: []model.Room{
			{ID: "r1", Beds: []model.Bed{
				{ID: "b1", Status: model.BedOccupied},
				{ID: "b2", Status: model.BedAvailable},
				{ID: "b3", Status: model.BedCleaning},
				{ID: "b4", Status: model.BedOccupied},
			}},
		},
		InsuranceClaims: []model.InsuranceClaim{
			{ID: "c1", Status: model.ClaimSubmitted},
			{ID: "c2", Status: model.ClaimSubmitted},
			{ID: "c3", Status: model.ClaimPaid},
		},
	}

	stats := Compute(snap, now)

	if stats.TotalPatients != 2 {
		t.Fatalf("total patients: got %d", stats.TotalPatients)
	}
	if stats.TodayAppointments != 1 {
		t.Fatalf("today appointments must exclude cancelled and other days, got %d", stats.TodayAppointments)
	}
	if stats.PendingAppointments != 1 {
		t.Fatalf("pending appointments: got %d", stats.PendingAppointments)
	}
	if stats.TodayRevenue != 13000 {
		t.Fatalf("today revenue must count today's paid invoices only, got %v", stats.TodayRevenue)
	}
	if stats.OverdueInvoices != 1 {
		t.Fatalf("overdue invoices: got %d", stats.OverdueInvoices)
	}
	if stats.LowStockMedications != 1 {
		t.Fatalf("low stock medications: got %d", stats.LowStockMedications)
	}
	if stats.ActiveHospitalizations != 1 {
		t.Fatalf("active hospitalizations: got %d", stats.ActiveHospitalizations)
	}
	if stats.TotalBeds != 4 || stats.OccupiedBeds != 2 {
		t.Fatalf("bed counts: %d/%d", stats.OccupiedBeds, stats.TotalBeds)
	}
	if stats.OccupancyRate != 0.5 {
		t.Fatalf("occupancy rate: got %v", stats.OccupancyRate)
	}
	if stats.ClaimsByStatus[model.ClaimSubmitted] != 2 || stats.ClaimsByStatus[model.ClaimPaid] != 1 {
		t.Fatalf("claims by status: %v", stats.ClaimsByStatus)
	}
}

func TestComputeEmptySnapshot(t *testing.T) {
	stats := Compute(store.Snapshot{}, time.Now())
	if stats.OccupancyRate != 0 {
		t.Fatalf("empty snapshot must not divide by zero, got %v", stats.OccupancyRate)
	}
}

func TestServiceRefreshPublishesStats(t *testing.T) {
	st := store.New()
	st.Dispatch(store.LoadAll(store.Patients, []model.Patient{{ID: "pat-1"}}))

	svc := NewService(st, nil)
	stats := svc.Refresh()
	if stats.TotalPatients != 1 {
		t.Fatalf("expected 1 patient, got %d", stats.TotalPatients)
	}
	if st.Snapshot().Stats.TotalPatients != 1 {
		t.Fatal("expected stats published into the snapshot")
	}
}
