package model

import "time"

// Doctor maps to the practitioner directory record.
type Doctor struct {
	ID          string    `json:"id"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Speciality  string    `json:"speciality"`
	Phone       string    `json:"phone,omitempty"`
	Email       string    `json:"email,omitempty"`
	Active      bool      `json:"active"`
	VersionID   int       `json:"version_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (d Doctor) EntityID() string              { return d.ID }
func (d Doctor) GetVersionID() int             { return d.VersionID }
func (d Doctor) WithVersionID(v int) Doctor    { d.VersionID = v; return d }

func (d Doctor) FullName() string {
	if d.FirstName == "" {
		return d.LastName
	}
	return d.FirstName + " " + d.LastName
}

// RosterEntry is one recurring shift in a doctor's weekly roster.
type RosterEntry struct {
	ID         string    `json:"id"`
	DoctorID   string    `json:"doctor_id"`
	Weekday    time.Weekday `json:"weekday"`
	ShiftStart string    `json:"shift_start"` // "08:00"
	ShiftEnd   string    `json:"shift_end"`   // "16:00"
	Ward       string    `json:"ward,omitempty"`
	VersionID  int       `json:"version_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (r RosterEntry) EntityID() string             { return r.ID }
func (r RosterEntry) GetVersionID() int            { return r.VersionID }
func (r RosterEntry) WithVersionID(v int) RosterEntry { r.VersionID = v; return r }
