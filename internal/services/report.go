package services

import (
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/oculab/octascan-api/internal/models"
	"github.com/oculab/octascan-api/internal/store"
)

var (
	ErrReportNotFound   = errors.New("report not found")
	ErrDoctorNotFound   = errors.New("selected doctor does not exist")
	ErrNotReportParty   = errors.New("report belongs to another user")
	ErrNotesRequired    = errors.New("doctor notes are required")
	ErrReportFinalized  = errors.New("report is already completed")
	ErrInvalidDiagnosis = errors.New("unknown diagnosis class")
	ErrInvalidType      = errors.New("unknown report type")
)

// ReportService drives the report lifecycle: created pending by a patient,
// moved to reviewed and then completed by the assigned doctor, never
// backward and never deleted.
type ReportService struct {
	reports *store.Collection[models.Report]
	doctors *store.Collection[models.Doctor]
}

func NewReportService(reports *store.Collection[models.Report], doctors *store.Collection[models.Doctor]) *ReportService {
	return &ReportService{reports: reports, doctors: doctors}
}

type CreateReportInput struct {
	DoctorID        string
	ImageURL        string
	Type            string
	Diagnosis       string
	Confidence      float64
	FluidPercentage *float64
}

// Create files an analysis result with the chosen doctor. The doctor must
// come from the directory; doctorId never changes afterwards.
func (s *ReportService) Create(patient models.User, in CreateReportInput) (models.Report, error) {
	switch in.Type {
	case models.TypeDiagnosis, models.TypeEnhancement, models.TypeFluid:
	default:
		return models.Report{}, ErrInvalidType
	}
	if !models.ValidDiagnosis(in.Diagnosis) {
		return models.Report{}, ErrInvalidDiagnosis
	}
	doctor, ok := s.doctors.Get(in.DoctorID)
	if !ok {
		return models.Report{}, ErrDoctorNotFound
	}

	report := models.Report{
		ID:              uuid.NewString(),
		PatientID:       patient.ID,
		PatientName:     patient.Name,
		DoctorID:        doctor.ID,
		DoctorName:      doctor.Name,
		ImageURL:        in.ImageURL,
		Diagnosis:       in.Diagnosis,
		Confidence:      in.Confidence,
		Date:            time.Now().UTC().Format(time.RFC3339),
		Status:          models.StatusPending,
		Type:            in.Type,
		FluidPercentage: in.FluidPercentage,
	}
	if err := s.reports.Upsert(report); err != nil {
		return models.Report{}, err
	}
	return report, nil
}

// Review lets the assigned doctor override the diagnosis and attach notes,
// moving the report to reviewed. Notes are checked before any state change.
func (s *ReportService) Review(doctorID, reportID, diagnosis, notes string) (models.Report, error) {
	return s.annotate(doctorID, reportID, diagnosis, notes, models.StatusReviewed)
}

// Finalize completes a report. Irreversible.
func (s *ReportService) Finalize(doctorID, reportID, diagnosis, notes string) (models.Report, error) {
	return s.annotate(doctorID, reportID, diagnosis, notes, models.StatusCompleted)
}

func (s *ReportService) annotate(doctorID, reportID, diagnosis, notes, status string) (models.Report, error) {
	report, ok := s.reports.Get(reportID)
	if !ok {
		return models.Report{}, ErrReportNotFound
	}
	if report.DoctorID != doctorID {
		return models.Report{}, ErrNotReportParty
	}
	if report.Status == models.StatusCompleted {
		return models.Report{}, ErrReportFinalized
	}
	if strings.TrimSpace(notes) == "" {
		return models.Report{}, ErrNotesRequired
	}
	if diagnosis != "" {
		if !models.ValidDiagnosis(diagnosis) {
			return models.Report{}, ErrInvalidDiagnosis
		}
		report.Diagnosis = diagnosis
	}
	report.DoctorNotes = notes
	report.Status = status
	if err := s.reports.Upsert(report); err != nil {
		return models.Report{}, err
	}
	return report, nil
}

// Get returns a report to one of its two parties.
func (s *ReportService) Get(reportID, requesterID string) (models.Report, error) {
	report, ok := s.reports.Get(reportID)
	if !ok {
		return models.Report{}, ErrReportNotFound
	}
	if report.PatientID != requesterID && report.DoctorID != requesterID {
		return models.Report{}, ErrNotReportParty
	}
	return report, nil
}

// PatientHistory lists a patient's reports newest first.
func (s *ReportService) PatientHistory(patientID string) []models.Report {
	reports := s.reports.Find(func(r models.Report) bool { return r.PatientID == patientID })
	sort.SliceStable(reports, func(i, j int) bool {
		return parseDate(reports[i].Date).After(parseDate(reports[j].Date))
	})
	return reports
}

// DoctorWorklist lists a doctor's open reports oldest first, so triage works
// through the queue in arrival order.
func (s *ReportService) DoctorWorklist(doctorID string) []models.Report {
	reports := s.reports.Find(func(r models.Report) bool {
		return r.DoctorID == doctorID &&
			(r.Status == models.StatusPending || r.Status == models.StatusReviewed)
	})
	sort.SliceStable(reports, func(i, j int) bool {
		return parseDate(reports[i].Date).Before(parseDate(reports[j].Date))
	})
	return reports
}

// DoctorHistory lists everything ever assigned to a doctor, newest first.
// Feeds the spreadsheet export.
func (s *ReportService) DoctorHistory(doctorID string) []models.Report {
	reports := s.reports.Find(func(r models.Report) bool { return r.DoctorID == doctorID })
	sort.SliceStable(reports, func(i, j int) bool {
		return parseDate(reports[i].Date).After(parseDate(reports[j].Date))
	})
	return reports
}

func parseDate(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
