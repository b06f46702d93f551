package model

import "time"

// Patient maps to the patient registry record.
type Patient struct {
	ID             string    `json:"id"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	BirthDate      time.Time `json:"birth_date"`
	Gender         string    `json:"gender"`
	Phone          string    `json:"phone,omitempty"`
	Email          string    `json:"email,omitempty"`
	Address        string    `json:"address,omitempty"`
	BloodGroup     string    `json:"blood_group,omitempty"`
	Allergies      []string  `json:"allergies,omitempty"`
	EmergencyName  string    `json:"emergency_name,omitempty"`
	EmergencyPhone string    `json:"emergency_phone,omitempty"`
	VersionID      int       `json:"version_id"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (p Patient) EntityID() string { return p.ID }

// GetVersionID returns the current version.
func (p Patient) GetVersionID() int { return p.VersionID }

// WithVersionID returns a copy with the given version.
func (p Patient) WithVersionID(v int) Patient { p.VersionID = v; return p }

// FullName returns "First Last" for display and export.
func (p Patient) FullName() string {
	if p.FirstName == "" {
		return p.LastName
	}
	return p.FirstName + " " + p.LastName
}
