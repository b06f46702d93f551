package model

import "time"

// Bed statuses. Lifecycle: available → occupied → cleaning → available,
// with maintenance reachable from any state and exiting into cleaning.
const (
	BedAvailable   = "available"
	BedOccupied    = "occupied"
	BedMaintenance = "maintenance"
	BedCleaning    = "cleaning"
)

// Bed is one bed inside a room. Beds are identity-addressed: transitions
// target (room id, bed id) so that sibling beds are never clobbered.
type Bed struct {
	ID                string     `json:"id"`
	Number            string     `json:"number"`
	Status            string     `json:"status"`
	CurrentPatientID  string     `json:"current_patient_id,omitempty"`
	HospitalizationID string     `json:"hospitalization_id,omitempty"`
	LastCleaned       *time.Time `json:"last_cleaned,omitempty"`
}

// Occupied reports whether the bed currently holds a patient. Derived from
// the status so the two can never desynchronize.
func (b Bed) Occupied() bool { return b.Status == BedOccupied }

// Room owns an embedded sequence of beds.
type Room struct {
	ID        string    `json:"id"`
	Number    string    `json:"number"`
	Ward      string    `json:"ward"`
	Type      string    `json:"type"` // standard, private, intensive-care
	DailyRate float64   `json:"daily_rate"`
	Beds      []Bed     `json:"beds"`
	VersionID int       `json:"version_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (r Room) EntityID() string         { return r.ID }
func (r Room) GetVersionID() int        { return r.VersionID }
func (r Room) WithVersionID(v int) Room { r.VersionID = v; return r }

// FindBed returns the index of the bed with the given id, or -1.
func (r Room) FindBed(bedID string) int {
	for i, b := range r.Beds {
		if b.ID == bedID {
			return i
		}
	}
	return -1
}
