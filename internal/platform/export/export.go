// Package export renders collections into xlsx workbooks for the
// accounting and records departments.
package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/clinexa/backoffice/internal/model"
)

var invoiceHeader = []string{
	"Invoice ID", "Patient ID", "Date", "Subtotal", "Tax", "Total",
	"Status", "Insurance Provider", "Coverage", "Patient Share",
}

var patientHeader = []string{
	"Patient ID", "Last Name", "First Name", "Birth Date", "Gender",
	"Phone", "Blood Group",
}

// Invoices renders the invoice collection into an xlsx workbook.
func Invoices(invoices []model.Invoice) ([]byte, error) {
	return render("Invoices", invoiceHeader, len(invoices), func(row int, set func(col int, v any)) {
		inv := invoices[row]
		set(1, inv.ID)
		set(2, inv.PatientID)
		set(3, inv.Date.Format("2006-01-02"))
		set(4, inv.Subtotal)
		set(5, inv.Tax)
		set(6, inv.Total)
		set(7, inv.Status)
		set(8, inv.InsuranceProvider)
		set(9, inv.CoverageAmount)
		set(10, inv.PatientResponsibility)
	})
}

// Patients renders the patient registry into an xlsx workbook.
func Patients(patients []model.Patient) ([]byte, error) {
	return render("Patients", patientHeader, len(patients), func(row int, set func(col int, v any)) {
		p := patients[row]
		set(1, p.ID)
		set(2, p.LastName)
		set(3, p.FirstName)
		if !p.BirthDate.IsZero() {
			set(4, p.BirthDate.Format("2006-01-02"))
		}
		set(5, p.Gender)
		set(6, p.Phone)
		set(7, p.BloodGroup)
	})
}

func render(sheet string, headers []string, rows int, fill func(row int, set func(col int, v any))) ([]byte, error) {
	f := excelize.NewFile()
	index, err := f.NewSheet(sheet)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("create header style: %w", err)
	}

	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("convert coordinates: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			f.Close()
			return nil, fmt.Errorf("set header cell %s: %w", cell, err)
		}
		if err := f.SetCellStyle(sheet, cell, cell, headerStyle); err != nil {
			f.Close()
			return nil, fmt.Errorf("set header style: %w", err)
		}
	}

	var setErr error
	for row := 0; row < rows; row++ {
		fill(row, func(col int, v any) {
			if setErr != nil {
				return
			}
			cell, err := excelize.CoordinatesToCellName(col, row+2)
			if err != nil {
				setErr = err
				return
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				setErr = err
			}
		})
	}
	if setErr != nil {
		f.Close()
		return nil, fmt.Errorf("fill rows: %w", setErr)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		f.Close()
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("close workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// Filename builds a dated attachment name, e.g. invoices-2024-03-01.xlsx.
func Filename(prefix string, now time.Time) string {
	return fmt.Sprintf("%s-%s.xlsx", prefix, now.Format("2006-01-02"))
}
