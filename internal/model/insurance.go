package model

import "time"

// InsuranceProvider is the payor organization at the top of the insurance
// hierarchy: a provider offers policies, a patient binds to one policy
// instance, and claims reference that binding.
type InsuranceProvider struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone,omitempty"`
	Email     string    `json:"email,omitempty"`
	Address   string    `json:"address,omitempty"`
	Active    bool      `json:"active"`
	VersionID int       `json:"version_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p InsuranceProvider) EntityID() string                      { return p.ID }
func (p InsuranceProvider) GetVersionID() int                     { return p.VersionID }
func (p InsuranceProvider) WithVersionID(v int) InsuranceProvider { p.VersionID = v; return p }

// InsurancePolicy is one plan offered by a provider.
type InsurancePolicy struct {
	ID              string    `json:"id"`
	ProviderID      string    `json:"provider_id"`
	Name            string    `json:"name"`
	CoveragePercent float64   `json:"coverage_percent"`
	AnnualLimit     float64   `json:"annual_limit"`
	Description     string    `json:"description,omitempty"`
	VersionID       int       `json:"version_id"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (p InsurancePolicy) EntityID() string                    { return p.ID }
func (p InsurancePolicy) GetVersionID() int                   { return p.VersionID }
func (p InsurancePolicy) WithVersionID(v int) InsurancePolicy { p.VersionID = v; return p }

// PatientInsurance binds a patient to one policy instance with its own
// coverage percentage, annual limit and consumed amount.
type PatientInsurance struct {
	ID              string    `json:"id"`
	PatientID       string    `json:"patient_id"`
	PolicyID        string    `json:"policy_id"`
	PolicyNumber    string    `json:"policy_number"`
	CoveragePercent float64   `json:"coverage_percent"`
	AnnualLimit     float64   `json:"annual_limit"`
	UsedAmount      float64   `json:"used_amount"`
	ValidFrom       time.Time `json:"valid_from"`
	ValidUntil      time.Time `json:"valid_until"`
	Active          bool      `json:"active"`
	VersionID       int       `json:"version_id"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (b PatientInsurance) EntityID() string                     { return b.ID }
func (b PatientInsurance) GetVersionID() int                    { return b.VersionID }
func (b PatientInsurance) WithVersionID(v int) PatientInsurance { b.VersionID = v; return b }

// ActiveAt reports whether the binding is active and inside its validity
// window at the given time.
func (b PatientInsurance) ActiveAt(at time.Time) bool {
	return b.Active && !at.Before(b.ValidFrom) && !at.After(b.ValidUntil)
}

// Claim statuses. Legal transitions are submitted → in-review →
// approved/partially-approved/rejected → paid; the insurance service
// enforces them.
const (
	ClaimSubmitted         = "submitted"
	ClaimInReview          = "in-review"
	ClaimApproved          = "approved"
	ClaimPartiallyApproved = "partially-approved"
	ClaimRejected          = "rejected"
	ClaimPaid              = "paid"
)

// InsuranceClaim is the reimbursement request tied to one invoice and one
// patient's insurance binding. PatientResponsibility must equal
// TotalAmount − CoveredAmount on every write.
type InsuranceClaim struct {
	ID                    string     `json:"id"`
	ClaimNumber           string     `json:"claim_number"`
	PatientInsuranceID    string     `json:"patient_insurance_id"`
	InvoiceID             string     `json:"invoice_id"`
	PatientID             string     `json:"patient_id"`
	TotalAmount           float64    `json:"total_amount"`
	CoveredAmount         float64    `json:"covered_amount"`
	PatientResponsibility float64    `json:"patient_responsibility"`
	Status                string     `json:"status"`
	SubmittedAt           time.Time  `json:"submitted_at"`
	DecidedAt             *time.Time `json:"decided_at,omitempty"`
	PaidAt                *time.Time `json:"paid_at,omitempty"`
	Notes                 string     `json:"notes,omitempty"`
	VersionID             int        `json:"version_id"`
	CreatedAt             time.Time  `json:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at"`
}

func (c InsuranceClaim) EntityID() string                   { return c.ID }
func (c InsuranceClaim) GetVersionID() int                  { return c.VersionID }
func (c InsuranceClaim) WithVersionID(v int) InsuranceClaim { c.VersionID = v; return c }
