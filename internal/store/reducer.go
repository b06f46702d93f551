package store

import (
	"fmt"
	"slices"

	"github.com/clinexa/backoffice/internal/model"
)

// Snapshot is the authoritative in-process state: insertion-ordered entity
// sequences plus the derived dashboard aggregates. Reducer applications
// never mutate a snapshot in place; collections are cloned before edits so
// an old snapshot stays valid for concurrent readers.
type Snapshot struct {
	Patients           []model.Patient
	Doctors            []model.Doctor
	Rosters            []model.RosterEntry
	Appointments       []model.Appointment
	Consultations      []model.Consultation
	LabResults         []model.LabResult
	Medications        []model.Medication
	StockMovements     []model.StockMovement
	Invoices           []model.Invoice
	Rooms              []model.Room
	Hospitalizations   []model.Hospitalization
	CareServices       []model.CareService
	CareRecords        []model.CareRecord
	InsuranceProviders []model.InsuranceProvider
	InsurancePolicies  []model.InsurancePolicy
	PatientInsurances  []model.PatientInsurance
	InsuranceClaims    []model.InsuranceClaim

	Stats model.DashboardStats
	Theme string
}

type entity[T any] interface {
	model.Entity
	WithVersionID(int) T
}

func indexByID[T entity[T]](list []T, id string) int {
	for i, item := range list {
		if item.EntityID() == id {
			return i
		}
	}
	return -1
}

// applyList applies one op to one collection and returns the resulting
// sequence. The input slice is never modified.
func applyList[T entity[T]](list []T, op Op, payload any) ([]T, error) {
	switch op {
	case OpLoadAll:
		items, ok := payload.([]T)
		if !ok {
			return nil, ErrBadPayload
		}
		return slices.Clone(items), nil

	case OpAdd:
		item, ok := payload.(T)
		if !ok {
			return nil, ErrBadPayload
		}
		if item.EntityID() == "" {
			return nil, ErrMissingID
		}
		if indexByID(list, item.EntityID()) >= 0 {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateID, item.EntityID())
		}
		out := slices.Clone(list)
		return append(out, item.WithVersionID(1)), nil

	case OpUpdate:
		item, ok := payload.(T)
		if !ok {
			return nil, ErrBadPayload
		}
		if item.EntityID() == "" {
			return nil, ErrMissingID
		}
		idx := indexByID(list, item.EntityID())
		if idx < 0 {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, item.EntityID())
		}
		current := list[idx].GetVersionID()
		if item.GetVersionID() != current {
			return nil, fmt.Errorf("%w: have %d, want %d", ErrVersionConflict, item.GetVersionID(), current)
		}
		out := slices.Clone(list)
		out[idx] = item.WithVersionID(current + 1)
		return out, nil

	case OpDelete:
		id, ok := payload.(string)
		if !ok {
			return nil, ErrBadPayload
		}
		idx := indexByID(list, id)
		if idx < 0 {
			// Idempotent no-op.
			return list, nil
		}
		out := slices.Clone(list)
		return slices.Delete(out, idx, idx+1), nil
	}
	return nil, ErrUnknownOp
}

// Apply is the reducer: a pure function from (snapshot, command) to a new
// snapshot. On error the returned snapshot is the input, unchanged.
func Apply(s Snapshot, cmd Command) (Snapshot, error) {
	switch cmd.Op {
	case OpUpdateBed:
		return applyBedUpdate(s, cmd.Payload)
	case OpSetStats:
		stats, ok := cmd.Payload.(model.DashboardStats)
		if !ok {
			return s, ErrBadPayload
		}
		s.Stats = stats
		return s, nil
	case OpSetTheme:
		theme, ok := cmd.Payload.(string)
		if !ok || (theme != model.ThemeLight && theme != model.ThemeDark) {
			return s, ErrBadPayload
		}
		s.Theme = theme
		return s, nil
	}

	var err error
	switch cmd.Collection {
	case Patients:
		s.Patients, err = applyList(s.Patients, cmd.Op, cmd.Payload)
	case Doctors:
		s.Doctors, err = applyList(s.Doctors, cmd.Op, cmd.Payload)
	case Rosters:
		s.Rosters, err = applyList(s.Rosters, cmd.Op, cmd.Payload)
	case Appointments:
		s.Appointments, err = applyList(s.Appointments, cmd.Op, cmd.Payload)
	case Consultations:
		s.Consultations, err = applyList(s.Consultations, cmd.Op, cmd.Payload)
	case LabResults:
		s.LabResults, err = applyList(s.LabResults, cmd.Op, cmd.Payload)
	case Medications:
		s.Medications, err = applyList(s.Medications, cmd.Op, cmd.Payload)
	case StockMovements:
		s.StockMovements, err = applyList(s.StockMovements, cmd.Op, cmd.Payload)
	case Invoices:
		s.Invoices, err = applyList(s.Invoices, cmd.Op, cmd.Payload)
	case Rooms:
		s.Rooms, err = applyList(s.Rooms, cmd.Op, cmd.Payload)
	case Hospitalizations:
		s.Hospitalizations, err = applyList(s.Hospitalizations, cmd.Op, cmd.Payload)
	case CareServices:
		s.CareServices, err = applyList(s.CareServices, cmd.Op, cmd.Payload)
	case CareRecords:
		s.CareRecords, err = applyList(s.CareRecords, cmd.Op, cmd.Payload)
	case InsuranceProviders:
		s.InsuranceProviders, err = applyList(s.InsuranceProviders, cmd.Op, cmd.Payload)
	case InsurancePolicies:
		s.InsurancePolicies, err = applyList(s.InsurancePolicies, cmd.Op, cmd.Payload)
	case PatientInsurances:
		s.PatientInsurances, err = applyList(s.PatientInsurances, cmd.Op, cmd.Payload)
	case InsuranceClaims:
		s.InsuranceClaims, err = applyList(s.InsuranceClaims, cmd.Op, cmd.Payload)
	default:
		return s, fmt.Errorf("%w: %q", ErrUnknownCollection, cmd.Collection)
	}
	if err != nil {
		return s, err
	}
	return s, nil
}

// applyBedUpdate rewrites exactly one bed inside its parent room. The room
// version guards against concurrent edits to siblings: a stale version is
// rejected the same way an entity update would be.
func applyBedUpdate(s Snapshot, payload any) (Snapshot, error) {
	u, ok := payload.(BedUpdate)
	if !ok {
		return s, ErrBadPayload
	}
	idx := indexByID(s.Rooms, u.RoomID)
	if idx < 0 {
		return s, fmt.Errorf("%w: room %s", ErrNotFound, u.RoomID)
	}
	room := s.Rooms[idx]
	if u.RoomVersion != room.VersionID {
		return s, fmt.Errorf("%w: have %d, want %d", ErrVersionConflict, u.RoomVersion, room.VersionID)
	}
	bedIdx := room.FindBed(u.Bed.ID)
	if bedIdx < 0 {
		return s, fmt.Errorf("%w: bed %s", ErrNotFound, u.Bed.ID)
	}
	beds := slices.Clone(room.Beds)
	beds[bedIdx] = u.Bed
	room.Beds = beds
	rooms := slices.Clone(s.Rooms)
	rooms[idx] = room.WithVersionID(room.VersionID + 1)
	s.Rooms = rooms
	return s, nil
}
