package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/clinexa/backoffice/internal/model"
)

func TestInvoicesWorkbook(t *testing.T) {
	invoices := []model.Invoice{
		{
			ID:        "inv-1",
			PatientID: "pat-1",
			Date:      time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			Subtotal:  13000,
			Total:     13000,
			Status:    model.InvoicePending,
		},
	}

	data, err := Invoices(invoices)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("workbook should open: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Invoices")
	if err != nil {
		t.Fatalf("read sheet: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected header + 1 row, got %d rows", len(rows))
	}
	if rows[1][0] != "inv-1" {
		t.Fatalf("expected invoice id in first cell, got %q", rows[1][0])
	}
	if rows[1][2] != "2024-03-01" {
		t.Fatalf("expected formatted date, got %q", rows[1][2])
	}
}

func TestPatientsWorkbookEmpty(t *testing.T) {
	data, err := Patients(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("workbook should open: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Patients")
	if err != nil {
		t.Fatalf("read sheet: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected header only, got %d rows", len(rows))
	}
}

func TestFilename(t *testing.T) {
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	if got := Filename("invoices", now); got != "invoices-2024-03-01.xlsx" {
		t.Fatalf("unexpected filename %q", got)
	}
}
