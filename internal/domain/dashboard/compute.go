// Package dashboard derives the landing-page aggregates from the current
// snapshot. Figures are recomputed on demand, never maintained
// incrementally, so they can never drift from the collections.
package dashboard

import (
	"time"

	"github.com/clinexa/backoffice/internal/model"
	"github.com/clinexa/backoffice/internal/store"
)

func sameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// Compute derives the full aggregate set from one snapshot.
func Compute(snap store.Snapshot, now time.Time) model.DashboardStats {
	stats := model.DashboardStats{
		TotalPatients:  len(snap.Patients),
		ClaimsByStatus: make(map[string]int),
		ComputedAt:     now,
	}

	for _, a := range snap.Appointments {
		if sameDay(a.Date, now) && a.Status != model.AppointmentCancelled {
			stats.TodayAppointments++
		}
		if a.Status == model.AppointmentPending {
			stats.PendingAppointments++
		}
	}

	for _, inv := range snap.Invoices {
		switch inv.Status {
		case model.InvoicePaid:
			paidOn := inv.Date
			if inv.PaymentDate != nil {
				paidOn = *inv.PaymentDate
			}
			if sameDay(paidOn, now) {
				stats.TodayRevenue += inv.Total
			}
		case model.InvoiceOverdue:
			stats.OverdueInvoices++
		}
	}

	for _, m := range snap.Medications {
		if m.LowStock() {
			stats.LowStockMedications++
		}
	}

	for _, h := range snap.Hospitalizations {
		if h.Status == model.HospitalizationActive {
			stats.ActiveHospitalizations++
		}
	}

	for _, r := range snap.Rooms {
		for _, b := range r.Beds {
			stats.TotalBeds++
			if b.Occupied() {
				stats.OccupiedBeds++
			}
		}
	}
	if stats.TotalBeds > 0 {
		stats.OccupancyRate = float64(stats.OccupiedBeds) / float64(stats.TotalBeds)
	}

	for _, c := range snap.InsuranceClaims {
		stats.ClaimsByStatus[c.Status]++
	}

	return stats
}
