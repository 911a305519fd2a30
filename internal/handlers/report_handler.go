package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oculab/octascan-api/internal/models"
	"github.com/oculab/octascan-api/internal/services"
)

// CreateReport files an analysis result with a doctor from the directory.
func (h *Handler) CreateReport(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}
	if user.Role != models.RolePatient {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only patients can submit reports."})
		return
	}

	var req struct {
		DoctorID        string   `json:"doctorId" binding:"required"`
		ImageURL        string   `json:"imageUrl" binding:"required"`
		Type            string   `json:"type" binding:"required"`
		Diagnosis       string   `json:"diagnosis" binding:"required"`
		Confidence      float64  `json:"confidence"`
		FluidPercentage *float64 `json:"fluidPercentage"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	report, err := h.Reports.Create(user, services.CreateReportInput{
		DoctorID:        req.DoctorID,
		ImageURL:        req.ImageURL,
		Type:            req.Type,
		Diagnosis:       req.Diagnosis,
		Confidence:      req.Confidence,
		FluidPercentage: req.FluidPercentage,
	})
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, report)
}

// GetReports is role-dependent: patients get their history newest first,
// doctors get their open worklist oldest first.
func (h *Handler) GetReports(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	var reports []models.Report
	if user.Role == models.RoleDoctor {
		reports = h.Reports.DoctorWorklist(user.ID)
	} else {
		reports = h.Reports.PatientHistory(user.ID)
	}
	if reports == nil {
		reports = make([]models.Report, 0)
	}

	c.JSON(http.StatusOK, reports)
}

// GetReport returns one report to either of its parties.
func (h *Handler) GetReport(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	report, err := h.Reports.Get(c.Param("id"), user.ID)
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

type reviewRequest struct {
	Diagnosis string `json:"diagnosis"`
	Notes     string `json:"notes"`
}

// ReviewReport saves the doctor's notes and optional diagnosis override.
func (h *Handler) ReviewReport(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}
	if user.Role != models.RoleDoctor {
		c.JSON(http.StatusForbidden, gin.H{"error": "Permission denied."})
		return
	}

	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	report, err := h.Reports.Review(user.ID, c.Param("id"), req.Diagnosis, req.Notes)
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// FinalizeReport completes a report and mails the patient the PDF.
func (h *Handler) FinalizeReport(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}
	if user.Role != models.RoleDoctor {
		c.JSON(http.StatusForbidden, gin.H{"error": "Permission denied."})
		return
	}

	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	report, err := h.Reports.Finalize(user.ID, c.Param("id"), req.Diagnosis, req.Notes)
	if err != nil {
		serviceError(c, err)
		return
	}

	if patient, ok := h.Users.Get(report.PatientID); ok {
		if pdf, err := h.Export.ReportPDF(report); err == nil {
			h.Notify.SendReportCompleted(patient.Email, report, pdf)
		}
	}

	c.JSON(http.StatusOK, report)
}

// ReportPDF streams a report as a PDF download.
func (h *Handler) ReportPDF(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	report, err := h.Reports.Get(c.Param("id"), user.ID)
	if err != nil {
		serviceError(c, err)
		return
	}

	pdf, err := h.Export.ReportPDF(report)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate PDF"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=report-%s.pdf", report.ID))
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// ExportReports streams a doctor's full report history as a spreadsheet.
func (h *Handler) ExportReports(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}
	if user.Role != models.RoleDoctor {
		c.JSON(http.StatusForbidden, gin.H{"error": "Permission denied."})
		return
	}

	data, err := h.Export.ReportsXLSX(h.Reports.DoctorHistory(user.ID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate spreadsheet"})
		return
	}

	c.Header("Content-Disposition", "attachment; filename=reports.xlsx")
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
