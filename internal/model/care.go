package model

import "time"

// CareService is one billable care catalogue entry (dressing, injection,
// physiotherapy session...).
type CareService struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Category  string    `json:"category,omitempty"`
	UnitPrice float64   `json:"unit_price"`
	VersionID int       `json:"version_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s CareService) EntityID() string                { return s.ID }
func (s CareService) GetVersionID() int               { return s.VersionID }
func (s CareService) WithVersionID(v int) CareService { s.VersionID = v; return s }

// Care record statuses.
const (
	CarePlanned    = "planned"
	CareInProgress = "in-progress"
	CareCompleted  = "completed"
	CareCancelled  = "cancelled"
)

// CareItem is one billed care-service usage within an episode.
type CareItem struct {
	ID            string    `json:"id"`
	CareServiceID string    `json:"care_service_id"`
	Name          string    `json:"name"`
	Quantity      float64   `json:"quantity"`
	UnitPrice     float64   `json:"unit_price"`
	TotalPrice    float64   `json:"total_price"`
	Date          time.Time `json:"date"`
}

// CareRecord is one care episode. TotalCost is the sum of item totals,
// recomputed server-side on every write.
type CareRecord struct {
	ID        string     `json:"id"`
	PatientID string     `json:"patient_id"`
	DoctorID  string     `json:"doctor_id,omitempty"`
	Status    string     `json:"status"`
	Items     []CareItem `json:"items"`
	TotalCost float64    `json:"total_cost"`
	StartDate time.Time  `json:"start_date"`
	EndDate   *time.Time `json:"end_date,omitempty"`
	Notes     string     `json:"notes,omitempty"`
	VersionID int        `json:"version_id"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (c CareRecord) EntityID() string               { return c.ID }
func (c CareRecord) GetVersionID() int              { return c.VersionID }
func (c CareRecord) WithVersionID(v int) CareRecord { c.VersionID = v; return c }
