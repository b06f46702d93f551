// Package care owns the billable care-service catalogue and the care
// episodes recorded against it. An episode's total is always the sum of
// its item totals, recomputed from the lines on every write.
package care

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/clinexa/backoffice/internal/model"
	"github.com/clinexa/backoffice/internal/store"
)

var validCareStatuses = map[string]bool{
	model.CarePlanned: true, model.CareInProgress: true,
	model.CareCompleted: true, model.CareCancelled: true,
}

type Service struct {
	store *store.Store
	now   func() time.Time
	newID func() string
}

func NewService(st *store.Store) *Service {
	return &Service{store: st, now: time.Now, newID: uuid.NewString}
}

func (s *Service) CreateCareService(ctx context.Context, cs *model.CareService) error {
	if cs.Name == "" {
		return fmt.Errorf("name is required")
	}
	if cs.UnitPrice < 0 {
		return fmt.Errorf("unit_price must not be negative")
	}
	if cs.ID == "" {
		cs.ID = s.newID()
	}
	now := s.now()
	cs.CreatedAt = now
	cs.UpdatedAt = now
	if res := s.store.Dispatch(store.Add(store.CareServices, *cs)); !res.Applied() {
		return fmt.Errorf("store care service: %w", res.Err)
	}
	return nil
}

func (s *Service) UpdateCareService(ctx context.Context, cs *model.CareService) error {
	if cs.ID == "" {
		return fmt.Errorf("id is required")
	}
	cs.UpdatedAt = s.now()
	if res := s.store.Dispatch(store.Update(store.CareServices, *cs)); !res.Applied() {
		return res.Err
	}
	cs.VersionID++
	return nil
}

func (s *Service) DeleteCareService(ctx context.Context, id string) error {
	if res := s.store.Dispatch(store.Delete(store.CareServices, id)); !res.Applied() {
		return fmt.Errorf("delete care service: %w", res.Err)
	}
	return nil
}

func (s *Service) GetCareService(id string) (model.CareService, error) {
	for _, cs := range s.store.Snapshot().CareServices {
		if cs.ID == id {
			return cs, nil
		}
	}
	return model.CareService{}, store.ErrNotFound
}

func (s *Service) ListCareServices() []model.CareService {
	services := slices.Clone(s.store.Snapshot().CareServices)
	sort.SliceStable(services, func(i, j int) bool { return services[i].Name < services[j].Name })
	return services
}

// deriveRecord normalizes the items (resolving catalogue price when the
// line omits one) and recomputes the episode total.
func (s *Service) deriveRecord(rec *model.CareRecord) {
	total := 0.0
	for i := range rec.Items {
		item := &rec.Items[i]
		if item.ID == "" {
			item.ID = s.newID()
		}
		if item.Quantity <= 0 {
			item.Quantity = 1
		}
		if item.UnitPrice == 0 && item.CareServiceID != "" {
			if cs, err := s.GetCareService(item.CareServiceID); err == nil {
				item.UnitPrice = cs.UnitPrice
				if item.Name == "" {
					item.Name = cs.Name
				}
			}
		}
		item.TotalPrice = item.Quantity * item.UnitPrice
		total += item.TotalPrice
	}
	rec.TotalCost = total
}

func (s *Service) CreateCareRecord(ctx context.Context, rec *model.CareRecord) error {
	if rec.PatientID == "" {
		return fmt.Errorf("patient_id is required")
	}
	if rec.Status == "" {
		rec.Status = model.CarePlanned
	}
	if !validCareStatuses[rec.Status] {
		return fmt.Errorf("invalid care status: %s", rec.Status)
	}
	if rec.ID == "" {
		rec.ID = s.newID()
	}
	now := s.now()
	if rec.StartDate.IsZero() {
		rec.StartDate = now
	}
	rec.CreatedAt = now
	rec.UpdatedAt = now
	s.deriveRecord(rec)
	if res := s.store.Dispatch(store.Add(store.CareRecords, *rec)); !res.Applied() {
		return fmt.Errorf("store care record: %w", res.Err)
	}
	return nil
}

// UpdateCareRecord replaces the episode, recomputing the total from the
// submitted items rather than trusting the client's figure.
func (s *Service) UpdateCareRecord(ctx context.Context, rec *model.CareRecord) error {
	if rec.ID == "" {
		return fmt.Errorf("id is required")
	}
	if !validCareStatuses[rec.Status] {
		return fmt.Errorf("invalid care status: %s", rec.Status)
	}
	rec.UpdatedAt = s.now()
	s.deriveRecord(rec)
	if res := s.store.Dispatch(store.Update(store.CareRecords, *rec)); !res.Applied() {
		return res.Err
	}
	rec.VersionID++
	return nil
}

func (s *Service) DeleteCareRecord(ctx context.Context, id string) error {
	if res := s.store.Dispatch(store.Delete(store.CareRecords, id)); !res.Applied() {
		return fmt.Errorf("delete care record: %w", res.Err)
	}
	return nil
}

func (s *Service) GetCareRecord(id string) (model.CareRecord, error) {
	for _, rec := range s.store.Snapshot().CareRecords {
		if rec.ID == id {
			return rec, nil
		}
	}
	return model.CareRecord{}, store.ErrNotFound
}

func (s *Service) ListCareRecords(patientID, status string) []model.CareRecord {
	var out []model.CareRecord
	for _, rec := range s.store.Snapshot().CareRecords {
		if patientID != "" && rec.PatientID != patientID {
			continue
		}
		if status != "" && rec.Status != status {
			continue
		}
		out = append(out, rec)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].StartDate.After(out[j].StartDate) })
	return out
}
