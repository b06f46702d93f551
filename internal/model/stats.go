package model

import "time"

// DashboardStats is a derived, recomputed-on-demand snapshot of counts and
// sums over the other collections. It is not reactive: callers recompute it
// after bulk loads or on request.
type DashboardStats struct {
	TotalPatients          int            `json:"total_patients"`
	TodayAppointments      int            `json:"today_appointments"`
	TodayRevenue           float64        `json:"today_revenue"`
	PendingAppointments    int            `json:"pending_appointments"`
	LowStockMedications    int            `json:"low_stock_medications"`
	OverdueInvoices        int            `json:"overdue_invoices"`
	ActiveHospitalizations int            `json:"active_hospitalizations"`
	TotalBeds              int            `json:"total_beds"`
	OccupiedBeds           int            `json:"occupied_beds"`
	OccupancyRate          float64        `json:"occupancy_rate"`
	ClaimsByStatus         map[string]int `json:"claims_by_status"`
	ComputedAt             time.Time      `json:"computed_at"`
}

// Theme values persisted per user.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)
