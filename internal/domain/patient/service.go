// Package patient owns the patient registry: demographic records created
// at the front desk and referenced by every other collection.
package patient

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/clinexa/backoffice/internal/model"
	"github.com/clinexa/backoffice/internal/store"
)

var validGenders = map[string]bool{"male": true, "female": true, "other": true, "": true}

type Service struct {
	store *store.Store
	now   func() time.Time
	newID func() string
}

func NewService(st *store.Store) *Service {
	return &Service{store: st, now: time.Now, newID: uuid.NewString}
}

func (s *Service) CreatePatient(ctx context.Context, p *model.Patient) error {
	if p.FirstName == "" && p.LastName == "" {
		return fmt.Errorf("patient name is required")
	}
	if !validGenders[p.Gender] {
		return fmt.Errorf("invalid gender: %s", p.Gender)
	}
	if p.ID == "" {
		p.ID = s.newID()
	}
	now := s.now()
	p.CreatedAt = now
	p.UpdatedAt = now
	if res := s.store.Dispatch(store.Add(store.Patients, *p)); !res.Applied() {
		return fmt.Errorf("store patient: %w", res.Err)
	}
	return nil
}

func (s *Service) UpdatePatient(ctx context.Context, p *model.Patient) error {
	if p.ID == "" {
		return fmt.Errorf("id is required")
	}
	if !validGenders[p.Gender] {
		return fmt.Errorf("invalid gender: %s", p.Gender)
	}
	p.UpdatedAt = s.now()
	if res := s.store.Dispatch(store.Update(store.Patients, *p)); !res.Applied() {
		return res.Err
	}
	p.VersionID++
	return nil
}

// DeletePatient removes the registry record. Records referencing the
// patient elsewhere are left in place; lookups resolve them to a
// placeholder name.
func (s *Service) DeletePatient(ctx context.Context, id string) error {
	if res := s.store.Dispatch(store.Delete(store.Patients, id)); !res.Applied() {
		return fmt.Errorf("delete patient: %w", res.Err)
	}
	return nil
}

func (s *Service) GetPatient(id string) (model.Patient, error) {
	for _, p := range s.store.Snapshot().Patients {
		if p.ID == id {
			return p, nil
		}
	}
	return model.Patient{}, store.ErrNotFound
}

// ListPatients returns patients sorted by last name, optionally filtered
// by a case-insensitive name search.
func (s *Service) ListPatients(search string) []model.Patient {
	patients := slices.Clone(s.store.Snapshot().Patients)
	if search != "" {
		needle := strings.ToLower(search)
		filtered := make([]model.Patient, 0, len(patients))
		for _, p := range patients {
			if strings.Contains(strings.ToLower(p.FullName()), needle) {
				filtered = append(filtered, p)
			}
		}
		patients = filtered
	}
	sort.SliceStable(patients, func(i, j int) bool {
		if patients[i].LastName != patients[j].LastName {
			return patients[i].LastName < patients[j].LastName
		}
		return patients[i].FirstName < patients[j].FirstName
	})
	return patients
}

// ResolveName returns the display name for a patient id, or the shared
// placeholder when the record was deleted.
func (s *Service) ResolveName(id string) string {
	p, err := s.GetPatient(id)
	if err != nil {
		return model.NotFoundPlaceholder
	}
	return p.FullName()
}
