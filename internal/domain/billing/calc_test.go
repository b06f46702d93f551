package billing

import (
	"testing"

	"github.com/clinexa/backoffice/internal/model"
)

func TestLineTotal(t *testing.T) {
	if got := LineTotal(2, 5000); got != 10000 {
		t.Errorf("expected 10000, got %v", got)
	}
	if got := LineTotal(0, 5000); got != 0 {
		t.Errorf("expected 0, got %v", got)
	}
}

func TestTotals_SumsLinesWithZeroTax(t *testing.T) {
	items := []model.InvoiceItem{
		{Description: "Consultation", Quantity: 2, UnitPrice: 5000},
		{Description: "Radiography", Quantity: 1, UnitPrice: 3000},
	}
	subtotal, tax, total := Totals(items)
	if subtotal != 13000 {
		t.Errorf("expected subtotal 13000, got %v", subtotal)
	}
	if tax != 0 {
		t.Errorf("expected zero tax, got %v", tax)
	}
	if total != 13000 {
		t.Errorf("expected total 13000, got %v", total)
	}
}

func TestTotals_IgnoresClientSuppliedLineTotals(t *testing.T) {
	items := []model.InvoiceItem{{Quantity: 3, UnitPrice: 1000, Total: 999999}}
	subtotal, _, total := Totals(items)
	if subtotal != 3000 || total != 3000 {
		t.Errorf("expected derivation from qty×price, got subtotal=%v total=%v", subtotal, total)
	}
}

func TestInsuranceSplit_EightyPercent(t *testing.T) {
	covered, patient := InsuranceSplit(13000, 80)
	if covered != 10400 {
		t.Errorf("expected covered 10400, got %v", covered)
	}
	if patient != 2600 {
		t.Errorf("expected patient responsibility 2600, got %v", patient)
	}
}

func TestInsuranceSplit_RoundsHalfUpAndSumsBack(t *testing.T) {
	cases := []struct {
		total, percent float64
	}{
		{13000, 80},
		{12345, 33},
		{1, 50}, // 0.5 rounds up to 1
		{999, 66.6},
		{250000, 75},
	}
	for _, tc := range cases {
		covered, patient := InsuranceSplit(tc.total, tc.percent)
		if covered+patient != tc.total {
			t.Errorf("split of %v at %v%% does not sum back: %v + %v", tc.total, tc.percent, covered, patient)
		}
	}
	covered, _ := InsuranceSplit(1, 50)
	if covered != 1 {
		t.Errorf("expected half to round up, got %v", covered)
	}
}
