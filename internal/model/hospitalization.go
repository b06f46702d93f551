package model

import "time"

// Hospitalization statuses.
const (
	HospitalizationActive      = "active"
	HospitalizationDischarged  = "discharged"
	HospitalizationTransferred = "transferred"
)

// HospitalizationService is one billed service usage during a stay.
type HospitalizationService struct {
	ID            string  `json:"id"`
	CareServiceID string  `json:"care_service_id,omitempty"`
	Name          string  `json:"name"`
	Quantity      float64 `json:"quantity"`
	UnitPrice     float64 `json:"unit_price"`
	TotalPrice    float64 `json:"total_price"`
}

// Hospitalization maps to one inpatient stay. TotalCost is always derived
// from the current admission/discharge window and service usages; it is
// recomputed on every write, never frozen at creation.
type Hospitalization struct {
	ID              string                   `json:"id"`
	PatientID       string                   `json:"patient_id"`
	DoctorID        string                   `json:"doctor_id"`
	RoomID          string                   `json:"room_id"`
	BedID           string                   `json:"bed_id"`
	AdmissionDate   time.Time                `json:"admission_date"`
	DischargeDate   *time.Time               `json:"discharge_date,omitempty"`
	AdmissionReason string                   `json:"admission_reason"`
	Status          string                   `json:"status"`
	DailyCost       float64                  `json:"daily_cost"`
	TotalCost       float64                  `json:"total_cost"`
	Services        []HospitalizationService `json:"services,omitempty"`
	Notes           string                   `json:"notes,omitempty"`
	VersionID       int                      `json:"version_id"`
	CreatedAt       time.Time                `json:"created_at"`
	UpdatedAt       time.Time                `json:"updated_at"`
}

func (h Hospitalization) EntityID() string                    { return h.ID }
func (h Hospitalization) GetVersionID() int                   { return h.VersionID }
func (h Hospitalization) WithVersionID(v int) Hospitalization { h.VersionID = v; return h }
