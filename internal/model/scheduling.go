package model

import "time"

// Appointment statuses.
const (
	AppointmentPending   = "pending"
	AppointmentConfirmed = "confirmed"
	AppointmentCompleted = "completed"
	AppointmentCancelled = "cancelled"
)

// Appointment maps to the scheduling record linking a patient and a doctor.
type Appointment struct {
	ID        string    `json:"id"`
	PatientID string    `json:"patient_id"`
	DoctorID  string    `json:"doctor_id"`
	Date      time.Time `json:"date"`
	Duration  int       `json:"duration_minutes"`
	Reason    string    `json:"reason,omitempty"`
	Status    string    `json:"status"`
	Notes     string    `json:"notes,omitempty"`
	VersionID int       `json:"version_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a Appointment) EntityID() string                { return a.ID }
func (a Appointment) GetVersionID() int               { return a.VersionID }
func (a Appointment) WithVersionID(v int) Appointment { a.VersionID = v; return a }

// Consultation is the clinical note recorded after a visit.
type Consultation struct {
	ID            string    `json:"id"`
	PatientID     string    `json:"patient_id"`
	DoctorID      string    `json:"doctor_id"`
	AppointmentID string    `json:"appointment_id,omitempty"`
	Date          time.Time `json:"date"`
	Symptoms      string    `json:"symptoms,omitempty"`
	Diagnosis     string    `json:"diagnosis,omitempty"`
	Prescription  string    `json:"prescription,omitempty"`
	Notes         string    `json:"notes,omitempty"`
	VersionID     int       `json:"version_id"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (c Consultation) EntityID() string                 { return c.ID }
func (c Consultation) GetVersionID() int                { return c.VersionID }
func (c Consultation) WithVersionID(v int) Consultation { c.VersionID = v; return c }

// LabResult is a laboratory report attached to a patient.
type LabResult struct {
	ID         string    `json:"id"`
	PatientID  string    `json:"patient_id"`
	DoctorID   string    `json:"doctor_id,omitempty"`
	TestName   string    `json:"test_name"`
	Result     string    `json:"result"`
	Unit       string    `json:"unit,omitempty"`
	RefRange   string    `json:"ref_range,omitempty"`
	Abnormal   bool      `json:"abnormal"`
	Date       time.Time `json:"date"`
	VersionID  int       `json:"version_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (l LabResult) EntityID() string              { return l.ID }
func (l LabResult) GetVersionID() int             { return l.VersionID }
func (l LabResult) WithVersionID(v int) LabResult { l.VersionID = v; return l }
