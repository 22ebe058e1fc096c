// Package reports renders printable documents for the host stand.
package reports

import (
	"fmt"
	"io"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/yeremiapane/resto-backoffice/models"
)

// DaySheet is the list of reservations of one service day.
type DaySheet struct {
	Restaurant   string
	Date         time.Time
	Hours        *models.OpeningHour
	Reservations []models.Reservation
}

// Covers is the total number of guests expected.
func (s DaySheet) Covers() int {
	n := 0
	for _, r := range s.Reservations {
		n += r.PartySize
	}
	return n
}

// WritePDF renders the sheet as an A4 portrait PDF.
func (s DaySheet) WritePDF(w io.Writer) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Reservations %s", models.DateKey(s.Date)), true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, s.Restaurant, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 7, s.Date.Format("Monday, 2 January 2006"), "", 1, "L", false, 0, "")
	if s.Hours != nil {
		pdf.CellFormat(0, 7, fmt.Sprintf("Open %s - %s", s.Hours.OpeningTime, s.Hours.ClosingTime), "", 1, "L", false, 0, "")
	} else {
		pdf.CellFormat(0, 7, "Closed", "", 1, "L", false, 0, "")
	}
	pdf.CellFormat(0, 7, fmt.Sprintf("%d reservations, %d covers", len(s.Reservations), s.Covers()), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	widths := []float64{22, 22, 16, 60, 40, 30}
	header := []string{"Start", "End", "Pax", "Name", "Phone", "Code"}
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	for i, h := range header {
		pdf.CellFormat(widths[i], 8, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	for _, r := range s.Reservations {
		name := r.Name
		if name == "" {
			name = "-"
		}
		code := r.Code
		if len(code) > 8 {
			code = code[:8]
		}
		row := []string{r.StartTime.String(), r.EndTime.String(), fmt.Sprint(r.PartySize), name, r.Phone, code}
		for i, cell := range row {
			align := "L"
			if i < 3 {
				align = "C"
			}
			pdf.CellFormat(widths[i], 7, cell, "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	return pdf.Output(w)
}
