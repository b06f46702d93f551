package billing

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/clinexa/backoffice/internal/model"
	"github.com/clinexa/backoffice/internal/store"
)

var validInvoiceStatuses = map[string]bool{
	model.InvoicePending: true, model.InvoicePaid: true, model.InvoiceOverdue: true,
	model.InvoiceCancelled: true, model.InvoiceInsurancePending: true,
}

// Service owns invoice writes: it derives the financial summary from the
// line items, applies the insurance split, synthesizes the companion claim
// and the pharmacy stock movements, and dispatches the resulting commands.
type Service struct {
	store *store.Store
	now   func() time.Time
	newID func() string
}

func NewService(st *store.Store) *Service {
	return &Service{store: st, now: time.Now, newID: uuid.NewString}
}

// SetClock overrides the service clock, for tests.
func (s *Service) SetClock(now func() time.Time) { s.now = now }

// CreateInvoice derives totals, optionally applies the patient's active
// insurance binding, and appends the invoice. When insurance applies, a
// companion claim is synthesized with status submitted and the binding's
// used amount is accrued. Line items carrying a medication reference
// decrement pharmacy stock and leave a stock movement record.
func (s *Service) CreateInvoice(ctx context.Context, inv *model.Invoice, applyInsurance bool) error {
	if inv.PatientID == "" {
		return fmt.Errorf("patient_id is required")
	}
	if len(inv.Items) == 0 {
		return fmt.Errorf("at least one line item is required")
	}
	if inv.Status == "" {
		inv.Status = model.InvoicePending
	}
	if !validInvoiceStatuses[inv.Status] {
		return fmt.Errorf("invalid invoice status: %s", inv.Status)
	}
	if inv.ID == "" {
		inv.ID = s.newID()
	}
	now := s.now()
	if inv.Date.IsZero() {
		inv.Date = now
	}
	inv.CreatedAt = now
	inv.UpdatedAt = now

	s.deriveTotals(inv)

	var claim *model.InsuranceClaim
	var binding *model.PatientInsurance
	if applyInsurance {
		var err error
		claim, binding, err = s.prepareInsurance(inv, now)
		if err != nil {
			return err
		}
	}

	movements, medUpdates, err := s.prepareStockExits(s.store.Snapshot(), inv, now)
	if err != nil {
		return err
	}

	if res := s.store.Dispatch(store.Add(store.Invoices, *inv)); !res.Applied() {
		return fmt.Errorf("store invoice: %w", res.Err)
	}
	if claim != nil {
		if res := s.store.Dispatch(store.Add(store.InsuranceClaims, *claim)); !res.Applied() {
			return fmt.Errorf("store claim: %w", res.Err)
		}
		binding.UsedAmount += claim.CoveredAmount
		binding.UpdatedAt = now
		if res := s.store.Dispatch(store.Update(store.PatientInsurances, *binding)); !res.Applied() {
			return fmt.Errorf("accrue insurance usage: %w", res.Err)
		}
	}
	for i := range medUpdates {
		if res := s.store.Dispatch(store.Update(store.Medications, medUpdates[i])); !res.Applied() {
			return fmt.Errorf("decrement stock: %w", res.Err)
		}
	}
	for i := range movements {
		if res := s.store.Dispatch(store.Add(store.StockMovements, movements[i])); !res.Applied() {
			return fmt.Errorf("record stock movement: %w", res.Err)
		}
	}
	return nil
}

// UpdateInvoice re-derives totals from the current line items and replaces
// the stored invoice. The caller carries the version it read; a stale
// version is rejected with a conflict.
func (s *Service) UpdateInvoice(ctx context.Context, inv *model.Invoice) error {
	if inv.ID == "" {
		return fmt.Errorf("id is required")
	}
	if !validInvoiceStatuses[inv.Status] {
		return fmt.Errorf("invalid invoice status: %s", inv.Status)
	}
	s.deriveTotals(inv)
	now := s.now()
	if inv.Insured() {
		// Re-split against the current total so the insurance block never
		// drifts from the items it was derived from. The percent comes from
		// the binding itself; back-deriving it from the stored amounts would
		// carry rounding error.
		if binding := s.activeBinding(s.store.Snapshot(), inv.PatientID, now); binding != nil {
			inv.CoverageAmount, inv.PatientResponsibility = InsuranceSplit(inv.Total, binding.CoveragePercent)
		} else if stored, err := s.GetInvoice(inv.ID); err == nil && stored.CoverageAmount > 0 {
			inv.CoverageAmount = stored.CoverageAmount
			inv.PatientResponsibility = inv.Total - stored.CoverageAmount
		}
	}
	inv.UpdatedAt = now
	if res := s.store.Dispatch(store.Update(store.Invoices, *inv)); !res.Applied() {
		return fmt.Errorf("update invoice: %w", res.Err)
	}
	return nil
}

func (s *Service) DeleteInvoice(ctx context.Context, id string) error {
	if res := s.store.Dispatch(store.Delete(store.Invoices, id)); !res.Applied() {
		return fmt.Errorf("delete invoice: %w", res.Err)
	}
	return nil
}

func (s *Service) GetInvoice(id string) (model.Invoice, error) {
	for _, inv := range s.store.Snapshot().Invoices {
		if inv.ID == id {
			return inv, nil
		}
	}
	return model.Invoice{}, fmt.Errorf("invoice %s: %w", id, store.ErrNotFound)
}

// ListInvoices returns invoices in insertion order, optionally filtered by
// patient or status.
func (s *Service) ListInvoices(patientID, status string) []model.Invoice {
	var out []model.Invoice
	for _, inv := range s.store.Snapshot().Invoices {
		if patientID != "" && inv.PatientID != patientID {
			continue
		}
		if status != "" && inv.Status != status {
			continue
		}
		out = append(out, inv)
	}
	return out
}

func (s *Service) deriveTotals(inv *model.Invoice) {
	for i := range inv.Items {
		if inv.Items[i].ID == "" {
			inv.Items[i].ID = s.newID()
		}
		inv.Items[i].Total = LineTotal(inv.Items[i].Quantity, inv.Items[i].UnitPrice)
	}
	inv.Subtotal, inv.Tax, inv.Total = Totals(inv.Items)
}

// activeBinding returns the patient's binding valid at the given time.
func (s *Service) activeBinding(snap store.Snapshot, patientID string, at time.Time) *model.PatientInsurance {
	for i := range snap.PatientInsurances {
		b := snap.PatientInsurances[i]
		if b.PatientID == patientID && b.ActiveAt(at) {
			return &b
		}
	}
	return nil
}

// prepareInsurance resolves the patient's active binding and builds the
// companion claim. Fails when no binding is valid for the patient at
// invoice time.
func (s *Service) prepareInsurance(inv *model.Invoice, now time.Time) (*model.InsuranceClaim, *model.PatientInsurance, error) {
	snap := s.store.Snapshot()
	binding := s.activeBinding(snap, inv.PatientID, now)
	if binding == nil {
		return nil, nil, fmt.Errorf("no active insurance binding for patient %s", inv.PatientID)
	}

	covered, responsibility := InsuranceSplit(inv.Total, binding.CoveragePercent)
	inv.CoverageAmount = covered
	inv.PatientResponsibility = responsibility
	inv.InsurancePolicyNumber = binding.PolicyNumber
	inv.InsuranceProvider = resolveProviderName(snap, binding.PolicyID)
	inv.Status = model.InvoiceInsurancePending

	claim := &model.InsuranceClaim{
		ID:                    s.newID(),
		ClaimNumber:           fmt.Sprintf("CLM-%d-%03d", now.Year(), rand.Intn(1000)),
		PatientInsuranceID:    binding.ID,
		InvoiceID:             inv.ID,
		PatientID:             inv.PatientID,
		TotalAmount:           inv.Total,
		CoveredAmount:         covered,
		PatientResponsibility: responsibility,
		Status:                model.ClaimSubmitted,
		SubmittedAt:           now,
		CreatedAt:             now,
		UpdatedAt:             now,
	}
	return claim, binding, nil
}

// prepareStockExits builds the stock decrement updates and movement
// records for every line that references a medication. Lines dispensing
// the same medication are accumulated into a single update so no two
// commands carry the same entity version; each line still leaves its own
// movement record.
func (s *Service) prepareStockExits(snap store.Snapshot, inv *model.Invoice, now time.Time) ([]model.StockMovement, []model.Medication, error) {
	var movements []model.StockMovement
	pending := map[string]*model.Medication{}
	var order []string
	for _, it := range inv.Items {
		if it.MedicationID == "" {
			continue
		}
		med, ok := pending[it.MedicationID]
		if !ok {
			idx := -1
			for i, m := range snap.Medications {
				if m.ID == it.MedicationID {
					idx = i
					break
				}
			}
			if idx < 0 {
				return nil, nil, fmt.Errorf("medication %s: %w", it.MedicationID, store.ErrNotFound)
			}
			m := snap.Medications[idx]
			med = &m
			pending[it.MedicationID] = med
			order = append(order, it.MedicationID)
		}
		qty := int(it.Quantity)
		if qty > med.StockQuantity {
			return nil, nil, fmt.Errorf("insufficient stock for %s: have %d, need %d", med.Name, med.StockQuantity, qty)
		}
		med.StockQuantity -= qty
		med.UpdatedAt = now
		movements = append(movements, model.StockMovement{
			ID:            s.newID(),
			MedicationID:  med.ID,
			Direction:     model.StockExit,
			Quantity:      qty,
			Reason:        "invoice line",
			InvoiceID:     inv.ID,
			InvoiceItemID: it.ID,
			Date:          now,
			CreatedAt:     now,
		})
	}
	updates := make([]model.Medication, 0, len(order))
	for _, id := range order {
		updates = append(updates, *pending[id])
	}
	return movements, updates, nil
}

func resolveProviderName(snap store.Snapshot, policyID string) string {
	for _, pol := range snap.InsurancePolicies {
		if pol.ID == policyID {
			for _, prov := range snap.InsuranceProviders {
				if prov.ID == pol.ProviderID {
					return prov.Name
				}
			}
		}
	}
	return model.NotFoundPlaceholder
}
