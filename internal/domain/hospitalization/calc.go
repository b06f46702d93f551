package hospitalization

import (
	"time"

	"github.com/clinexa/backoffice/internal/model"
)

// StayDays returns the billed length of stay: the admission-to-discharge
// window (or admission-to-now for an open stay) in started 24h periods,
// never less than one day.
func StayDays(admission time.Time, discharge *time.Time, now time.Time) int {
	end := now
	if discharge != nil {
		end = *discharge
	}
	if !end.After(admission) {
		return 1
	}
	days := int(end.Sub(admission) / (24 * time.Hour))
	if end.Sub(admission)%(24*time.Hour) > 0 {
		days++
	}
	if days < 1 {
		days = 1
	}
	return days
}

// DeriveCosts recomputes the stay total from the current admission
// window, daily rate and service usages. Line totals are normalized along
// the way so a client-sent figure never survives.
func DeriveCosts(h *model.Hospitalization, now time.Time) {
	days := StayDays(h.AdmissionDate, h.DischargeDate, now)
	total := h.DailyCost * float64(days)
	for i := range h.Services {
		svc := &h.Services[i]
		if svc.Quantity <= 0 {
			svc.Quantity = 1
		}
		svc.TotalPrice = svc.Quantity * svc.UnitPrice
		total += svc.TotalPrice
	}
	h.TotalCost = total
}
