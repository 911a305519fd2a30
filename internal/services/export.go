package services

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"

	"github.com/oculab/octascan-api/internal/analysis"
	"github.com/oculab/octascan-api/internal/models"
)

// ExportService renders reports for download: a single report as PDF, a
// doctor's history as a spreadsheet.
type ExportService struct{}

func NewExportService() *ExportService {
	return &ExportService{}
}

// ReportPDF renders a medical report document.
func (s *ExportService) ReportPDF(report models.Report) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.SetTextColor(20, 60, 120)
	pdf.CellFormat(0, 10, "OctaScan - OCT Analysis Report", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 7, "Retinal Imaging Workflow", "", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "B", 12)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, 10, "Report", "1", 1, "C", false, 0, "")
	addDetail(pdf, "Report ID", report.ID)
	addDetail(pdf, "Patient", report.PatientName)
	addDetail(pdf, "Doctor", report.DoctorName)
	addDetail(pdf, "Analysis Type", report.Type)
	addDetail(pdf, "Date", formatReportDate(report.Date))
	addDetail(pdf, "Status", report.Status)

	pdf.CellFormat(0, 10, "Findings", "1", 1, "C", false, 0, "")
	addDetail(pdf, "Diagnosis", report.Diagnosis)
	addDetail(pdf, "Confidence", fmt.Sprintf("%.0f%%", report.Confidence))
	if report.FluidPercentage != nil {
		addDetail(pdf, "Fluid Percentage", fmt.Sprintf("%.1f%%", *report.FluidPercentage))
		addDetail(pdf, "Severity", analysis.Severity(*report.FluidPercentage))
	}

	if report.DoctorNotes != "" {
		pdf.CellFormat(0, 10, "Doctor Notes", "1", 1, "C", false, 0, "")
		pdf.SetFont("Arial", "", 11)
		pdf.MultiCell(0, 6, report.DoctorNotes, "", "L", false)
	}

	pdf.SetY(pdf.GetY() + 12)
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 10, "This is a computer generated report", "", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func addDetail(pdf *gofpdf.Fpdf, label, value string) {
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(60, 8, label, "1", 0, "L", false, 0, "")
	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(0, 8, value, "1", 1, "L", false, 0, "")
}

// ReportsXLSX writes one row per report into Sheet1.
func (s *ExportService) ReportsXLSX(reports []models.Report) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	headers := []string{"Report ID", "Patient", "Type", "Diagnosis", "Confidence", "Fluid %", "Status", "Date"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue("Sheet1", cell, h); err != nil {
			return nil, err
		}
	}

	for row, r := range reports {
		fluid := ""
		if r.FluidPercentage != nil {
			fluid = fmt.Sprintf("%.1f", *r.FluidPercentage)
		}
		values := []interface{}{r.ID, r.PatientName, r.Type, r.Diagnosis, r.Confidence, fluid, r.Status, formatReportDate(r.Date)}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue("Sheet1", cell, v); err != nil {
				return nil, err
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func formatReportDate(date string) string {
	t, err := time.Parse(time.RFC3339, date)
	if err != nil {
		return date
	}
	return t.Format("2006-01-02 15:04")
}
