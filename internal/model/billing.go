package model

import "time"

// Invoice statuses.
const (
	InvoicePending          = "pending"
	InvoicePaid             = "paid"
	InvoiceOverdue          = "overdue"
	InvoiceCancelled        = "cancelled"
	InvoiceInsurancePending = "insurance-pending"
)

// InvoiceItem is one billed line. Total is derived as Quantity × UnitPrice
// and recomputed server-side on every write; client-supplied totals are
// never trusted. Pharmacy lines carry the medication they consume as an
// explicit reference.
type InvoiceItem struct {
	ID           string  `json:"id"`
	Description  string  `json:"description"`
	Quantity     float64 `json:"quantity"`
	UnitPrice    float64 `json:"unit_price"`
	Total        float64 `json:"total"`
	MedicationID string  `json:"medication_id,omitempty"`
}

// Invoice maps to the billing record for one patient. Subtotal, tax and
// total are derived from the line items; the insurance block is present
// only when a coverage split was applied.
type Invoice struct {
	ID            string        `json:"id"`
	PatientID     string        `json:"patient_id"`
	Date          time.Time     `json:"date"`
	Items         []InvoiceItem `json:"items"`
	Subtotal      float64       `json:"subtotal"`
	Tax           float64       `json:"tax"`
	Total         float64       `json:"total"`
	Status        string        `json:"status"`
	PaymentMethod string        `json:"payment_method,omitempty"`
	PaymentDate   *time.Time    `json:"payment_date,omitempty"`

	// Insurance split, set when the patient's coverage applies.
	InsuranceProvider      string  `json:"insurance_provider,omitempty"`
	InsurancePolicyNumber  string  `json:"insurance_policy_number,omitempty"`
	CoverageAmount         float64 `json:"coverage_amount,omitempty"`
	PatientResponsibility  float64 `json:"patient_responsibility,omitempty"`

	HospitalizationID string    `json:"hospitalization_id,omitempty"`
	VersionID         int       `json:"version_id"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func (i Invoice) EntityID() string            { return i.ID }
func (i Invoice) GetVersionID() int           { return i.VersionID }
func (i Invoice) WithVersionID(v int) Invoice { i.VersionID = v; return i }

// Insured reports whether an insurance split was applied to this invoice.
func (i Invoice) Insured() bool { return i.InsuranceProvider != "" }
