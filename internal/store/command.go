// Package store implements the domain store: the single in-process
// container holding every entity collection, mutated exclusively through
// tagged commands applied by a pure reducer. Malformed commands are
// rejected with an error result and leave the snapshot untouched.
package store

import (
	"errors"

	"github.com/google/uuid"

	"github.com/clinexa/backoffice/internal/model"
)

// Collection names one entity sequence inside the snapshot.
type Collection string

const (
	Patients           Collection = "patients"
	Doctors            Collection = "doctors"
	Rosters            Collection = "rosters"
	Appointments       Collection = "appointments"
	Consultations      Collection = "consultations"
	LabResults         Collection = "lab-results"
	Medications        Collection = "medications"
	StockMovements     Collection = "stock-movements"
	Invoices           Collection = "invoices"
	Rooms              Collection = "rooms"
	Hospitalizations   Collection = "hospitalizations"
	CareServices       Collection = "care-services"
	CareRecords        Collection = "care-records"
	InsuranceProviders Collection = "insurance-providers"
	InsurancePolicies  Collection = "insurance-policies"
	PatientInsurances  Collection = "patient-insurances"
	InsuranceClaims    Collection = "insurance-claims"
)

// Op is the mutation kind carried by a command.
type Op string

const (
	OpLoadAll   Op = "load-all"
	OpAdd       Op = "add"
	OpUpdate    Op = "update"
	OpDelete    Op = "delete"
	OpUpdateBed Op = "update-bed"
	OpSetStats  Op = "set-stats"
	OpSetTheme  Op = "set-theme"
)

// Rejection reasons returned by the reducer.
var (
	ErrBadPayload        = errors.New("payload does not match collection and op")
	ErrMissingID         = errors.New("entity id is required")
	ErrDuplicateID       = errors.New("entity id already exists")
	ErrNotFound          = errors.New("entity not found")
	ErrVersionConflict   = errors.New("stale entity version")
	ErrUnknownCollection = errors.New("unknown collection")
	ErrUnknownOp         = errors.New("unknown op")
)

// Command is one tagged mutation request. Payload typing per op:
// entity value for add/update, string id for delete, []T for load-all,
// BedUpdate for update-bed, model.DashboardStats for set-stats and
// string for set-theme.
type Command struct {
	CorrelationID string
	Collection    Collection
	Op            Op
	Payload       any
}

// BedUpdate addresses one bed inside its room so that sibling beds are
// never rewritten by a transition.
type BedUpdate struct {
	RoomID      string
	RoomVersion int
	Bed         model.Bed
}

func newCommand(col Collection, op Op, payload any) Command {
	return Command{
		CorrelationID: uuid.NewString(),
		Collection:    col,
		Op:            op,
		Payload:       payload,
	}
}

// Add builds an append command for the given collection.
func Add(col Collection, payload any) Command { return newCommand(col, OpAdd, payload) }

// Update builds a replace-by-id command. The payload's version must match
// the stored entity's version or the command is rejected with a conflict.
func Update(col Collection, payload any) Command { return newCommand(col, OpUpdate, payload) }

// Delete builds a remove-by-id command. Deleting an absent id is an
// accepted no-op; deletes never cascade to dependent entities.
func Delete(col Collection, id string) Command { return newCommand(col, OpDelete, id) }

// LoadAll builds a bulk-replace command, used once per collection at
// startup hydration.
func LoadAll(col Collection, payload any) Command { return newCommand(col, OpLoadAll, payload) }

// UpdateBed builds the identity-addressed bed mutation command.
func UpdateBed(u BedUpdate) Command { return newCommand(Rooms, OpUpdateBed, u) }

// SetStats replaces the derived dashboard aggregates.
func SetStats(stats model.DashboardStats) Command { return newCommand("", OpSetStats, stats) }

// SetTheme replaces the UI theme preference held in the snapshot.
func SetTheme(theme string) Command { return newCommand("", OpSetTheme, theme) }
