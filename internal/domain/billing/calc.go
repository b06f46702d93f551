package billing

import (
	"github.com/shopspring/decimal"

	"github.com/clinexa/backoffice/internal/model"
)

// TaxRate is fixed at zero: the modeled jurisdiction levies no VAT on
// medical services. The tax line stays on the invoice so the derivation
// remains explicit.
const TaxRate = 0.0

// LineTotal derives one line's amount from its quantity and unit price.
func LineTotal(quantity, unitPrice float64) float64 {
	q := decimal.NewFromFloat(quantity)
	p := decimal.NewFromFloat(unitPrice)
	total, _ := q.Mul(p).Float64()
	return total
}

// Totals derives the invoice summary from its line items. Line totals are
// recomputed from quantity and unit price; client-supplied totals are
// ignored.
func Totals(items []model.InvoiceItem) (subtotal, tax, total float64) {
	sum := decimal.Zero
	for _, it := range items {
		sum = sum.Add(decimal.NewFromFloat(LineTotal(it.Quantity, it.UnitPrice)))
	}
	subtotal, _ = sum.Float64()
	tax = subtotal * TaxRate
	total = subtotal + tax
	return subtotal, tax, total
}

// InsuranceSplit divides a total between the insurer and the patient. The
// covered amount is round-half-up of total × percent / 100; the modeled
// currency has no minor unit, so the result is whole and the two parts
// always sum back to the total.
func InsuranceSplit(total, coveragePercent float64) (covered, patientResponsibility float64) {
	t := decimal.NewFromFloat(total)
	p := decimal.NewFromFloat(coveragePercent)
	c := t.Mul(p).Div(decimal.NewFromInt(100)).Round(0)
	covered, _ = c.Float64()
	patientResponsibility, _ = t.Sub(c).Float64()
	return covered, patientResponsibility
}
