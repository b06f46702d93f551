// Package practitioner owns the doctor directory and the weekly duty
// rosters attached to it.
package practitioner

import (
	"context"
	"fmt"
	"regexp"
	"slices"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/clinexa/backoffice/internal/model"
	"github.com/clinexa/backoffice/internal/store"
)

var shiftTimeRe = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

type Service struct {
	store *store.Store
	now   func() time.Time
	newID func() string
}

func NewService(st *store.Store) *Service {
	return &Service{store: st, now: time.Now, newID: uuid.NewString}
}

func (s *Service) CreateDoctor(ctx context.Context, d *model.Doctor) error {
	if d.LastName == "" {
		return fmt.Errorf("last_name is required")
	}
	if d.Speciality == "" {
		return fmt.Errorf("speciality is required")
	}
	if d.ID == "" {
		d.ID = s.newID()
	}
	now := s.now()
	d.Active = true
	d.CreatedAt = now
	d.UpdatedAt = now
	if res := s.store.Dispatch(store.Add(store.Doctors, *d)); !res.Applied() {
		return fmt.Errorf("store doctor: %w", res.Err)
	}
	return nil
}

func (s *Service) UpdateDoctor(ctx context.Context, d *model.Doctor) error {
	if d.ID == "" {
		return fmt.Errorf("id is required")
	}
	d.UpdatedAt = s.now()
	if res := s.store.Dispatch(store.Update(store.Doctors, *d)); !res.Applied() {
		return res.Err
	}
	d.VersionID++
	return nil
}

func (s *Service) DeleteDoctor(ctx context.Context, id string) error {
	if res := s.store.Dispatch(store.Delete(store.Doctors, id)); !res.Applied() {
		return fmt.Errorf("delete doctor: %w", res.Err)
	}
	return nil
}

func (s *Service) GetDoctor(id string) (model.Doctor, error) {
	for _, d := range s.store.Snapshot().Doctors {
		if d.ID == id {
			return d, nil
		}
	}
	return model.Doctor{}, store.ErrNotFound
}

// ListDoctors returns doctors sorted by last name, optionally filtered by
// speciality.
func (s *Service) ListDoctors(speciality string) []model.Doctor {
	doctors := slices.Clone(s.store.Snapshot().Doctors)
	if speciality != "" {
		filtered := make([]model.Doctor, 0, len(doctors))
		for _, d := range doctors {
			if d.Speciality == speciality {
				filtered = append(filtered, d)
			}
		}
		doctors = filtered
	}
	sort.SliceStable(doctors, func(i, j int) bool {
		return doctors[i].LastName < doctors[j].LastName
	})
	return doctors
}

// AddRosterEntry records a recurring weekly shift. The doctor must exist
// at creation time; the entry survives a later doctor delete (no cascade).
func (s *Service) AddRosterEntry(ctx context.Context, e *model.RosterEntry) error {
	if e.DoctorID == "" {
		return fmt.Errorf("doctor_id is required")
	}
	if _, err := s.GetDoctor(e.DoctorID); err != nil {
		return fmt.Errorf("unknown doctor: %s", e.DoctorID)
	}
	if !shiftTimeRe.MatchString(e.ShiftStart) || !shiftTimeRe.MatchString(e.ShiftEnd) {
		return fmt.Errorf("shift times must be HH:MM")
	}
	if e.ShiftEnd <= e.ShiftStart {
		return fmt.Errorf("shift_end must be after shift_start")
	}
	if e.ID == "" {
		e.ID = s.newID()
	}
	now := s.now()
	e.CreatedAt = now
	e.UpdatedAt = now
	if res := s.store.Dispatch(store.Add(store.Rosters, *e)); !res.Applied() {
		return fmt.Errorf("store roster entry: %w", res.Err)
	}
	return nil
}

func (s *Service) DeleteRosterEntry(ctx context.Context, id string) error {
	if res := s.store.Dispatch(store.Delete(store.Rosters, id)); !res.Applied() {
		return fmt.Errorf("delete roster entry: %w", res.Err)
	}
	return nil
}

// Roster returns a doctor's entries ordered by weekday then start time.
func (s *Service) Roster(doctorID string) []model.RosterEntry {
	var entries []model.RosterEntry
	for _, e := range s.store.Snapshot().Rosters {
		if doctorID == "" || e.DoctorID == doctorID {
			entries = append(entries, e)
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Weekday != entries[j].Weekday {
			return entries[i].Weekday < entries[j].Weekday
		}
		return entries[i].ShiftStart < entries[j].ShiftStart
	})
	return entries
}

// OnDuty returns the doctors with a roster shift covering the given time.
func (s *Service) OnDuty(at time.Time) []model.Doctor {
	snap := s.store.Snapshot()
	hhmm := at.Format("15:04")
	onDuty := make(map[string]bool)
	for _, e := range snap.Rosters {
		if e.Weekday == at.Weekday() && e.ShiftStart <= hhmm && hhmm < e.ShiftEnd {
			onDuty[e.DoctorID] = true
		}
	}
	var doctors []model.Doctor
	for _, d := range snap.Doctors {
		if onDuty[d.ID] {
			doctors = append(doctors, d)
		}
	}
	sort.SliceStable(doctors, func(i, j int) bool {
		return doctors[i].LastName < doctors[j].LastName
	})
	return doctors
}
