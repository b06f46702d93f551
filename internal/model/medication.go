package model

import "time"

// Medication is one pharmacy inventory line.
type Medication struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Form          string     `json:"form,omitempty"` // tablet, syrup, injection...
	UnitPrice     float64    `json:"unit_price"`
	StockQuantity int        `json:"stock_quantity"`
	LowStockLevel int        `json:"low_stock_level"`
	ExpiryDate    *time.Time `json:"expiry_date,omitempty"`
	Supplier      string     `json:"supplier,omitempty"`
	VersionID     int        `json:"version_id"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func (m Medication) EntityID() string               { return m.ID }
func (m Medication) GetVersionID() int              { return m.VersionID }
func (m Medication) WithVersionID(v int) Medication { m.VersionID = v; return m }

// LowStock reports whether the on-hand quantity is at or under the
// reorder threshold.
func (m Medication) LowStock() bool { return m.StockQuantity <= m.LowStockLevel }

// Stock movement directions.
const (
	StockEntry = "entry"
	StockExit  = "exit"
)

// StockMovement is one audited change to a medication's on-hand quantity.
// Pharmacy invoice lines reference the movement they produced through
// InvoiceItemID, an explicit link rather than a description convention.
type StockMovement struct {
	ID            string    `json:"id"`
	MedicationID  string    `json:"medication_id"`
	Direction     string    `json:"direction"`
	Quantity      int       `json:"quantity"`
	Reason        string    `json:"reason,omitempty"`
	InvoiceID     string    `json:"invoice_id,omitempty"`
	InvoiceItemID string    `json:"invoice_item_id,omitempty"`
	Date          time.Time `json:"date"`
	VersionID     int       `json:"version_id"`
	CreatedAt     time.Time `json:"created_at"`
}

func (s StockMovement) EntityID() string                  { return s.ID }
func (s StockMovement) GetVersionID() int                 { return s.VersionID }
func (s StockMovement) WithVersionID(v int) StockMovement { s.VersionID = v; return s }
