// Package ward owns the room and bed inventory and the bed lifecycle.
// Every transition targets one bed by (room id, bed id) and carries the
// room version the caller read, so concurrent edits to sibling beds are
// detected instead of silently overwritten.
package ward

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/clinexa/backoffice/internal/model"
	"github.com/clinexa/backoffice/internal/store"
)

type Service struct {
	store *store.Store
	now   func() time.Time
}

func NewService(st *store.Store) *Service {
	return &Service{store: st, now: time.Now}
}

func (s *Service) GetRoom(id string) (model.Room, error) {
	for _, r := range s.store.Snapshot().Rooms {
		if r.ID == id {
			return r, nil
		}
	}
	return model.Room{}, store.ErrNotFound
}

// ListRooms returns rooms sorted by number, optionally filtered by ward.
func (s *Service) ListRooms(wardName string) []model.Room {
	var out []model.Room
	for _, r := range s.store.Snapshot().Rooms {
		if wardName == "" || r.Ward == wardName {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out
}

// AvailableBeds lists (room, bed) pairs currently assignable.
type AvailableBed struct {
	Room model.Room `json:"room"`
	Bed  model.Bed  `json:"bed"`
}

func (s *Service) AvailableBeds() []AvailableBed {
	var out []AvailableBed
	for _, r := range s.store.Snapshot().Rooms {
		for _, b := range r.Beds {
			if b.Status == model.BedAvailable {
				out = append(out, AvailableBed{Room: r, Bed: b})
			}
		}
	}
	return out
}

func (s *Service) bed(roomID, bedID string) (model.Room, model.Bed, error) {
	room, err := s.GetRoom(roomID)
	if err != nil {
		return model.Room{}, model.Bed{}, fmt.Errorf("unknown room: %s", roomID)
	}
	idx := room.FindBed(bedID)
	if idx < 0 {
		return model.Room{}, model.Bed{}, fmt.Errorf("unknown bed %s in room %s", bedID, roomID)
	}
	return room, room.Beds[idx], nil
}

// bedOf returns the id of the bed the patient currently occupies, or "".
func (s *Service) bedOf(patientID string) string {
	for _, r := range s.store.Snapshot().Rooms {
		for _, b := range r.Beds {
			if b.Occupied() && b.CurrentPatientID == patientID {
				return b.ID
			}
		}
	}
	return ""
}

func (s *Service) dispatchBed(room model.Room, bed model.Bed) error {
	res := s.store.Dispatch(store.UpdateBed(store.BedUpdate{
		RoomID:      room.ID,
		RoomVersion: room.VersionID,
		Bed:         bed,
	}))
	if !res.Applied() {
		return res.Err
	}
	return nil
}

// AssignBed puts a patient into a bed. The bed must be available and the
// patient reference must be supplied; an occupied, cleaning or maintenance
// bed is never reassigned.
func (s *Service) AssignBed(ctx context.Context, roomID, bedID, patientID, hospitalizationID string) error {
	if patientID == "" {
		return fmt.Errorf("patient_id is required")
	}
	room, bed, err := s.bed(roomID, bedID)
	if err != nil {
		return err
	}
	if bed.Status != model.BedAvailable {
		return fmt.Errorf("bed %s is %s, not available", bedID, bed.Status)
	}
	if cur := s.bedOf(patientID); cur != "" {
		return fmt.Errorf("patient %s already occupies bed %s", patientID, cur)
	}
	bed.Status = model.BedOccupied
	bed.CurrentPatientID = patientID
	bed.HospitalizationID = hospitalizationID
	return s.dispatchBed(room, bed)
}

// ReleaseBed frees an occupied bed into cleaning. The patient and stay
// references are cleared with the occupancy.
func (s *Service) ReleaseBed(ctx context.Context, roomID, bedID string) error {
	room, bed, err := s.bed(roomID, bedID)
	if err != nil {
		return err
	}
	if bed.Status != model.BedOccupied {
		return fmt.Errorf("bed %s is %s, not occupied", bedID, bed.Status)
	}
	bed.Status = model.BedCleaning
	bed.CurrentPatientID = ""
	bed.HospitalizationID = ""
	return s.dispatchBed(room, bed)
}

// FinishCleaning returns a cleaned bed to the available pool and stamps
// the cleaning time.
func (s *Service) FinishCleaning(ctx context.Context, roomID, bedID string) error {
	room, bed, err := s.bed(roomID, bedID)
	if err != nil {
		return err
	}
	if bed.Status != model.BedCleaning {
		return fmt.Errorf("bed %s is %s, not cleaning", bedID, bed.Status)
	}
	now := s.now()
	bed.Status = model.BedAvailable
	bed.LastCleaned = &now
	return s.dispatchBed(room, bed)
}

// StartMaintenance takes a bed out of service from any state. Forcing an
// occupied bed evicts its occupancy references.
func (s *Service) StartMaintenance(ctx context.Context, roomID, bedID string) error {
	room, bed, err := s.bed(roomID, bedID)
	if err != nil {
		return err
	}
	bed.Status = model.BedMaintenance
	bed.CurrentPatientID = ""
	bed.HospitalizationID = ""
	return s.dispatchBed(room, bed)
}

// EndMaintenance returns a bed to service through cleaning, never
// directly to available.
func (s *Service) EndMaintenance(ctx context.Context, roomID, bedID string) error {
	room, bed, err := s.bed(roomID, bedID)
	if err != nil {
		return err
	}
	if bed.Status != model.BedMaintenance {
		return fmt.Errorf("bed %s is %s, not in maintenance", bedID, bed.Status)
	}
	bed.Status = model.BedCleaning
	return s.dispatchBed(room, bed)
}

// Occupancy summarizes the bed population.
type Occupancy struct {
	TotalBeds     int     `json:"total_beds"`
	OccupiedBeds  int     `json:"occupied_beds"`
	AvailableBeds int     `json:"available_beds"`
	Rate          float64 `json:"rate"`
}

func (s *Service) Occupancy() Occupancy {
	var occ Occupancy
	for _, r := range s.store.Snapshot().Rooms {
		for _, b := range r.Beds {
			occ.TotalBeds++
			switch b.Status {
			case model.BedOccupied:
				occ.OccupiedBeds++
			case model.BedAvailable:
				occ.AvailableBeds++
			}
		}
	}
	if occ.TotalBeds > 0 {
		occ.Rate = float64(occ.OccupiedBeds) / float64(occ.TotalBeds)
	}
	return occ
}
