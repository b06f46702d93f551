// Package medication owns the pharmacy inventory: the medication
// catalogue, manual stock entries and exits, and the audited movement
// trail. Dispensing through invoices is handled by the billing service,
// which writes the same movement records.
package medication

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/clinexa/backoffice/internal/model"
	"github.com/clinexa/backoffice/internal/store"
)

type Service struct {
	store *store.Store
	now   func() time.Time
	newID func() string
}

func NewService(st *store.Store) *Service {
	return &Service{store: st, now: time.Now, newID: uuid.NewString}
}

func (s *Service) CreateMedication(ctx context.Context, m *model.Medication) error {
	if m.Name == "" {
		return fmt.Errorf("name is required")
	}
	if m.UnitPrice < 0 {
		return fmt.Errorf("unit_price must not be negative")
	}
	if m.StockQuantity < 0 {
		return fmt.Errorf("stock_quantity must not be negative")
	}
	if m.ID == "" {
		m.ID = s.newID()
	}
	now := s.now()
	m.CreatedAt = now
	m.UpdatedAt = now
	if res := s.store.Dispatch(store.Add(store.Medications, *m)); !res.Applied() {
		return fmt.Errorf("store medication: %w", res.Err)
	}
	return nil
}

func (s *Service) UpdateMedication(ctx context.Context, m *model.Medication) error {
	if m.ID == "" {
		return fmt.Errorf("id is required")
	}
	if m.StockQuantity < 0 {
		return fmt.Errorf("stock_quantity must not be negative")
	}
	m.UpdatedAt = s.now()
	if res := s.store.Dispatch(store.Update(store.Medications, *m)); !res.Applied() {
		return res.Err
	}
	m.VersionID++
	return nil
}

func (s *Service) DeleteMedication(ctx context.Context, id string) error {
	if res := s.store.Dispatch(store.Delete(store.Medications, id)); !res.Applied() {
		return fmt.Errorf("delete medication: %w", res.Err)
	}
	return nil
}

func (s *Service) GetMedication(id string) (model.Medication, error) {
	for _, m := range s.store.Snapshot().Medications {
		if m.ID == id {
			return m, nil
		}
	}
	return model.Medication{}, store.ErrNotFound
}

// ListMedications returns the catalogue sorted by name. lowStockOnly keeps
// only lines at or under their reorder threshold.
func (s *Service) ListMedications(lowStockOnly bool) []model.Medication {
	var out []model.Medication
	for _, m := range s.store.Snapshot().Medications {
		if lowStockOnly && !m.LowStock() {
			continue
		}
		out = append(out, m)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// RecordEntry increases on-hand stock (supplier delivery, return) and
// appends the movement record.
func (s *Service) RecordEntry(ctx context.Context, medicationID string, quantity int, reason string) (model.StockMovement, error) {
	return s.recordMovement(medicationID, model.StockEntry, quantity, reason)
}

// RecordExit decreases on-hand stock for out-of-invoice usage (expiry
// write-off, ward transfer). The exit is rejected when it would take the
// stock negative.
func (s *Service) RecordExit(ctx context.Context, medicationID string, quantity int, reason string) (model.StockMovement, error) {
	return s.recordMovement(medicationID, model.StockExit, quantity, reason)
}

func (s *Service) recordMovement(medicationID, direction string, quantity int, reason string) (model.StockMovement, error) {
	if quantity <= 0 {
		return model.StockMovement{}, fmt.Errorf("quantity must be positive")
	}
	med, err := s.GetMedication(medicationID)
	if err != nil {
		return model.StockMovement{}, fmt.Errorf("unknown medication: %s", medicationID)
	}

	switch direction {
	case model.StockEntry:
		med.StockQuantity += quantity
	case model.StockExit:
		if med.StockQuantity < quantity {
			return model.StockMovement{}, fmt.Errorf(
				"insufficient stock for %s: have %d, need %d", med.Name, med.StockQuantity, quantity)
		}
		med.StockQuantity -= quantity
	default:
		return model.StockMovement{}, fmt.Errorf("invalid direction: %s", direction)
	}

	now := s.now()
	med.UpdatedAt = now
	if res := s.store.Dispatch(store.Update(store.Medications, med)); !res.Applied() {
		return model.StockMovement{}, fmt.Errorf("adjust stock: %w", res.Err)
	}

	mov := model.StockMovement{
		ID:           s.newID(),
		MedicationID: medicationID,
		Direction:    direction,
		Quantity:     quantity,
		Reason:       reason,
		Date:         now,
		CreatedAt:    now,
	}
	if res := s.store.Dispatch(store.Add(store.StockMovements, mov)); !res.Applied() {
		return model.StockMovement{}, fmt.Errorf("record movement: %w", res.Err)
	}
	return mov, nil
}

// Movements returns the audit trail for one medication, newest first.
func (s *Service) Movements(medicationID string) []model.StockMovement {
	var out []model.StockMovement
	for _, m := range s.store.Snapshot().StockMovements {
		if medicationID == "" || m.MedicationID == medicationID {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out
}
