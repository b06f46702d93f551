// Package insurance owns the payor hierarchy (provider → policy →
// patient binding) and the reimbursement claims filed against bindings.
// Claim statuses move through an enforced lifecycle and the patient share
// always equals total minus covered.
package insurance

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

// claimTransitions maps each status to the statuses reachable from it.
var claimTransitions = map[string][]string{
	model.ClaimSubmitted:         {model.ClaimInReview},
	model.ClaimInReview:          {model.ClaimApproved, model.ClaimPartiallyApproved, model.ClaimRejected},
	model.ClaimApproved:          {model.ClaimPaid},
	model.ClaimPartiallyApproved: {model.ClaimPaid},
	model.ClaimRejected:          {},
	model.ClaimPaid:              {},
}

func transitionAllowed(from, to string) bool {
	for _, next := range claimTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

type Service struct {
	store *store.Store
	now   func() time.Time
	newID func() string
}

func NewService(st *store.Store) *Service {
	return &Service{store: st, now: time.Now, newID: uuid.NewString}
}

func (s *Service) CreateProvider(ctx context.Context, p *model.InsuranceProvider) error {
	if p.Name == "" {
		return fmt.Errorf("name is required")
	}
	if p.ID == "" {
		p.ID = s.newID()
	}
	now := s.now()
	p.Active = true
	p.CreatedAt = now
	p.UpdatedAt = now
	if res := s.store.Dispatch(store.Add(store.InsuranceProviders, *p)); !res.Applied() {
		return fmt.Errorf("store provider: %w", res.Err)
	}
	return nil
}

func (s *Service) UpdateProvider(ctx context.Context, p *model.InsuranceProvider) error {
	if p.ID == "" {
		return fmt.Errorf("id is required")
	}
	p.UpdatedAt = s.now()
	if res := s.store.Dispatch(store.Update(store.InsuranceProviders, *p)); !res.Applied() {
		return res.Err
	}
	p.VersionID++
	return nil
}

func (s *Service) ListProviders() []model.InsuranceProvider {
	providers := slices.Clone(s.store.Snapshot().InsuranceProviders)
	sort.SliceStable(providers, func(i, j int) bool { return providers[i].Name < providers[j].Name })
	return providers
}

func (s *Service) GetProvider(id string) (model.InsuranceProvider, error) {
	for _, p := range s.store.Snapshot().InsuranceProviders {
		if p.ID == id {
			return p, nil
		}
	}
	return model.InsuranceProvider{}, store.ErrNotFound
}

func (s *Service) CreatePolicy(ctx context.Context, p *model.InsurancePolicy) error {
	if p.Name == "" {
		return fmt.Errorf("name is required")
	}
	if _, err := s.GetProvider(p.ProviderID); err != nil {
		return fmt.Errorf("unknown provider: %s", p.ProviderID)
	}
	if p.CoveragePercent <= 0 || p.CoveragePercent > 100 {
		return fmt.Errorf("coverage_percent must be in (0, 100]")
	}
	if p.ID == "" {
		p.ID = s.newID()
	}
	now := s.now()
	p.CreatedAt = now
	p.UpdatedAt = now
	if res := s.store.Dispatch(store.Add(store.InsurancePolicies, *p)); !res.Applied() {
		return fmt.Errorf("store policy: %w", res.Err)
	}
	return nil
}

func (s *Service) GetPolicy(id string) (model.InsurancePolicy, error) {
	for _, p := range s.store.Snapshot().InsurancePolicies {
		if p.ID == id {
			return p, nil
		}
	}
	return model.InsurancePolicy{}, store.ErrNotFound
}

// ListPolicies returns policies, optionally restricted to one provider.
func (s *Service) ListPolicies(providerID string) []model.InsurancePolicy {
	var out []model.InsurancePolicy
	for _, p := range s.store.Snapshot().InsurancePolicies {
		if providerID == "" || p.ProviderID == providerID {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Enroll binds a patient to a policy. Coverage and limit default from the
// policy when the binding omits them.
func (s *Service) Enroll(ctx context.Context, b *model.PatientInsurance) error {
	if b.PatientID == "" {
		return fmt.Errorf("patient_id is required")
	}
	policy, err := s.GetPolicy(b.PolicyID)
	if err != nil {
		return fmt.Errorf("unknown policy: %s", b.PolicyID)
	}
	if b.CoveragePercent == 0 {
		b.CoveragePercent = policy.CoveragePercent
	}
	if b.AnnualLimit == 0 {
		b.AnnualLimit = policy.AnnualLimit
	}
	if b.ID == "" {
		b.ID = s.newID()
	}
	now := s.now()
	if b.ValidFrom.IsZero() {
		b.ValidFrom = now
	}
	if b.ValidUntil.IsZero() {
		b.ValidUntil = b.ValidFrom.AddDate(1, 0, 0)
	}
	b.Active = true
	b.UsedAmount = 0
	b.CreatedAt = now
	b.UpdatedAt = now
	if res := s.store.Dispatch(store.Add(store.PatientInsurances, *b)); !res.Applied() {
		return fmt.Errorf("store binding: %w", res.Err)
	}
	return nil
}

func (s *Service) GetBinding(id string) (model.PatientInsurance, error) {
	for _, b := range s.store.Snapshot().PatientInsurances {
		if b.ID == id {
			return b, nil
		}
	}
	return model.PatientInsurance{}, store.ErrNotFound
}

// ActiveBinding returns the patient's active binding valid at the given
// time, or ErrNotFound.
func (s *Service) ActiveBinding(patientID string, at time.Time) (model.PatientInsurance, error) {
	for _, b := range s.store.Snapshot().PatientInsurances {
		if b.PatientID == patientID && b.ActiveAt(at) {
			return b, nil
		}
	}
	return model.PatientInsurance{}, store.ErrNotFound
}

func (s *Service) ListBindings(patientID string) []model.PatientInsurance {
	var out []model.PatientInsurance
	for _, b := range s.store.Snapshot().PatientInsurances {
		if patientID == "" || b.PatientID == patientID {
			out = append(out, b)
		}
	}
	return out
}

// Terminate deactivates a binding; existing claims are untouched.
func (s *Service) Terminate(ctx context.Context, id string) error {
	b, err := s.GetBinding(id)
	if err != nil {
		return err
	}
	b.Active = false
	b.UpdatedAt = s.now()
	if res := s.store.Dispatch(store.Update(store.PatientInsurances, b)); !res.Applied() {
		return res.Err
	}
	return nil
}

func (s *Service) GetClaim(id string) (model.InsuranceClaim, error) {
	for _, c := range s.store.Snapshot().InsuranceClaims {
		if c.ID == id {
			return c, nil
		}
	}
	return model.InsuranceClaim{}, store.ErrNotFound
}

// ListClaims filters claims by patient and status, newest first.
func (s *Service) ListClaims(patientID, status string) []model.InsuranceClaim {
	var out []model.InsuranceClaim
	for _, c := range s.store.Snapshot().InsuranceClaims {
		if patientID != "" && c.PatientID != patientID {
			continue
		}
		if status != "" && c.Status != status {
			continue
		}
		out = append(out, c)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].SubmittedAt.After(out[j].SubmittedAt)
	})
	return out
}

// Decision carries a claim adjudication. CoveredAmount applies only to a
// partial approval, where the payor settles less than requested.
type Decision struct {
	Status        string  `json:"status"`
	CoveredAmount float64 `json:"covered_amount,omitempty"`
	Notes         string  `json:"notes,omitempty"`
}

// Transition moves a claim along its lifecycle. Illegal moves are
// rejected; the patient share is re-derived whenever the covered amount
// changes.
func (s *Service) Transition(ctx context.Context, id string, d Decision) (model.InsuranceClaim, error) {
	c, err := s.GetClaim(id)
	if err != nil {
		return model.InsuranceClaim{}, err
	}
	if !transitionAllowed(c.Status, d.Status) {
		return model.InsuranceClaim{}, fmt.Errorf(
			"claim %s cannot move from %s to %s", c.ClaimNumber, c.Status, d.Status)
	}
	now := s.now()
	switch d.Status {
	case model.ClaimApproved:
		c.DecidedAt = &now
	case model.ClaimPartiallyApproved:
		if d.CoveredAmount <= 0 || d.CoveredAmount >= c.CoveredAmount {
			return model.InsuranceClaim{}, fmt.Errorf(
				"partial approval requires a covered amount under the requested %v", c.CoveredAmount)
		}
		c.CoveredAmount = d.CoveredAmount
		c.DecidedAt = &now
	case model.ClaimRejected:
		c.CoveredAmount = 0
		c.DecidedAt = &now
	case model.ClaimPaid:
		c.PaidAt = &now
	}
	c.PatientResponsibility = c.TotalAmount - c.CoveredAmount
	c.Status = d.Status
	if d.Notes != "" {
		c.Notes = d.Notes
	}
	c.UpdatedAt = now
	if res := s.store.Dispatch(store.Update(store.InsuranceClaims, c)); !res.Applied() {
		return model.InsuranceClaim{}, res.Err
	}
	c.VersionID++
	return c, nil
}
