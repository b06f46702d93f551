// Package hospitalization owns inpatient stays: admission binds a bed and
// opens a companion invoice, discharge releases the bed into cleaning, and
// the stay total is re-derived from the admission window and service
// usages on every write.
package hospitalization

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/clinexa/backoffice/internal/domain/ward"
	"github.com/clinexa/backoffice/internal/model"
	"github.com/clinexa/backoffice/internal/store"
)

var validStayStatuses = map[string]bool{
	model.HospitalizationActive: true, model.HospitalizationDischarged: true,
	model.HospitalizationTransferred: true,
}

type Service struct {
	store *store.Store
	ward  *ward.Service
	now   func() time.Time
	newID func() string
}

func NewService(st *store.Store, wardSvc *ward.Service) *Service {
	return &Service{store: st, ward: wardSvc, now: time.Now, newID: uuid.NewString}
}

// Admit opens a stay: it derives the daily rate from the room, binds the
// chosen bed and synthesizes the companion invoice (one room-stay line
// plus one line per recorded service).
func (s *Service) Admit(ctx context.Context, h *model.Hospitalization) error {
	if h.PatientID == "" {
		return fmt.Errorf("patient_id is required")
	}
	if h.RoomID == "" || h.BedID == "" {
		return fmt.Errorf("room_id and bed_id are required")
	}
	room, err := s.ward.GetRoom(h.RoomID)
	if err != nil {
		return fmt.Errorf("unknown room: %s", h.RoomID)
	}
	if h.ID == "" {
		h.ID = s.newID()
	}
	now := s.now()
	if h.AdmissionDate.IsZero() {
		h.AdmissionDate = now
	}
	if h.DailyCost == 0 {
		h.DailyCost = room.DailyRate
	}
	h.Status = model.HospitalizationActive
	h.DischargeDate = nil
	h.CreatedAt = now
	h.UpdatedAt = now
	DeriveCosts(h, now)

	if err := s.ward.AssignBed(ctx, h.RoomID, h.BedID, h.PatientID, h.ID); err != nil {
		return fmt.Errorf("bind bed: %w", err)
	}
	if res := s.store.Dispatch(store.Add(store.Hospitalizations, *h)); !res.Applied() {
		// roll the bed back so a rejected stay does not leak an occupancy
		if relErr := s.ward.ReleaseBed(ctx, h.RoomID, h.BedID); relErr == nil {
			_ = s.ward.FinishCleaning(ctx, h.RoomID, h.BedID)
		}
		return fmt.Errorf("store hospitalization: %w", res.Err)
	}

	inv := s.companionInvoice(h, now)
	if res := s.store.Dispatch(store.Add(store.Invoices, inv)); !res.Applied() {
		return fmt.Errorf("store companion invoice: %w", res.Err)
	}
	return nil
}

func (s *Service) companionInvoice(h *model.Hospitalization, now time.Time) model.Invoice {
	days := StayDays(h.AdmissionDate, h.DischargeDate, now)
	items := []model.InvoiceItem{{
		ID:          s.newID(),
		Description: fmt.Sprintf("Séjour hospitalier (%d jours)", days),
		Quantity:    float64(days),
		UnitPrice:   h.DailyCost,
		Total:       h.DailyCost * float64(days),
	}}
	for _, usage := range h.Services {
		items = append(items, model.InvoiceItem{
			ID:          s.newID(),
			Description: usage.Name,
			Quantity:    usage.Quantity,
			UnitPrice:   usage.UnitPrice,
			Total:       usage.TotalPrice,
		})
	}
	subtotal := 0.0
	for _, it := range items {
		subtotal += it.Total
	}
	return model.Invoice{
		ID:                s.newID(),
		PatientID:         h.PatientID,
		Date:              now,
		Items:             items,
		Subtotal:          subtotal,
		Tax:               0,
		Total:             subtotal,
		Status:            model.InvoicePending,
		HospitalizationID: h.ID,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

// Update replaces a stay, re-deriving the total from the submitted window
// and services. The companion invoice follows the recomputed figures.
func (s *Service) Update(ctx context.Context, h *model.Hospitalization) error {
	if h.ID == "" {
		return fmt.Errorf("id is required")
	}
	if !validStayStatuses[h.Status] {
		return fmt.Errorf("invalid hospitalization status: %s", h.Status)
	}
	now := s.now()
	h.UpdatedAt = now
	DeriveCosts(h, now)
	if res := s.store.Dispatch(store.Update(store.Hospitalizations, *h)); !res.Applied() {
		return res.Err
	}
	h.VersionID++
	s.syncCompanionInvoice(h, now)
	return nil
}

// Discharge closes the stay at the given time, releases the bed into
// cleaning and settles the companion invoice figures.
func (s *Service) Discharge(ctx context.Context, id string, at time.Time) error {
	h, err := s.Get(id)
	if err != nil {
		return err
	}
	if h.Status != model.HospitalizationActive {
		return fmt.Errorf("hospitalization %s is %s, not active", id, h.Status)
	}
	if at.IsZero() {
		at = s.now()
	}
	if at.Before(h.AdmissionDate) {
		return fmt.Errorf("discharge date before admission")
	}
	h.DischargeDate = &at
	h.Status = model.HospitalizationDischarged
	h.UpdatedAt = s.now()
	DeriveCosts(&h, at)
	if res := s.store.Dispatch(store.Update(store.Hospitalizations, h)); !res.Applied() {
		return res.Err
	}
	if err := s.ward.ReleaseBed(ctx, h.RoomID, h.BedID); err != nil {
		return fmt.Errorf("release bed: %w", err)
	}
	s.syncCompanionInvoice(&h, at)
	return nil
}

// syncCompanionInvoice rebuilds the linked invoice's lines from the stay.
// A missing or already-paid invoice is left alone.
func (s *Service) syncCompanionInvoice(h *model.Hospitalization, now time.Time) {
	for _, inv := range s.store.Snapshot().Invoices {
		if inv.HospitalizationID != h.ID {
			continue
		}
		if inv.Status == model.InvoicePaid || inv.Status == model.InvoiceCancelled {
			return
		}
		rebuilt := s.companionInvoice(h, now)
		rebuilt.ID = inv.ID
		rebuilt.Status = inv.Status
		rebuilt.Date = inv.Date
		rebuilt.CreatedAt = inv.CreatedAt
		rebuilt.VersionID = inv.VersionID
		s.store.Dispatch(store.Update(store.Invoices, rebuilt))
		return
	}
}

// AddServiceUsage appends one billed service to an active stay and
// re-derives the total.
func (s *Service) AddServiceUsage(ctx context.Context, id string, usage model.HospitalizationService) error {
	h, err := s.Get(id)
	if err != nil {
		return err
	}
	if h.Status != model.HospitalizationActive {
		return fmt.Errorf("hospitalization %s is %s, not active", id, h.Status)
	}
	if usage.Name == "" {
		return fmt.Errorf("service name is required")
	}
	if usage.ID == "" {
		usage.ID = s.newID()
	}
	h.Services = append(h.Services, usage)
	return s.Update(ctx, &h)
}

func (s *Service) Get(id string) (model.Hospitalization, error) {
	for _, h := range s.store.Snapshot().Hospitalizations {
		if h.ID == id {
			return h, nil
		}
	}
	return model.Hospitalization{}, store.ErrNotFound
}

// List filters stays by patient and status, most recent admission first.
func (s *Service) List(patientID, status string) []model.Hospitalization {
	var out []model.Hospitalization
	for _, h := range s.store.Snapshot().Hospitalizations {
		if patientID != "" && h.PatientID != patientID {
			continue
		}
		if status != "" && h.Status != status {
			continue
		}
		out = append(out, h)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].AdmissionDate.After(out[j].AdmissionDate)
	})
	return out
}
