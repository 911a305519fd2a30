package models

// Report statuses. Transitions only move forward:
// pending -> reviewed -> completed.
const (
	StatusPending   = "pending"
	StatusReviewed  = "reviewed"
	StatusCompleted = "completed"
)

// Analysis types a report can originate from.
const (
	TypeDiagnosis   = "diagnosis"
	TypeEnhancement = "enhancement"
	TypeFluid       = "fluid"
)

// Diagnostic classes assigned by the classifier.
var Diagnoses = []string{"Drusen", "DME", "CNV", "Normal"}

func ValidDiagnosis(d string) bool {
	for _, v := range Diagnoses {
		if v == d {
			return true
		}
	}
	return false
}

type Report struct {
	ID              string   `json:"id"`
	PatientID       string   `json:"patientId"`
	PatientName     string   `json:"patientName"`
	DoctorID        string   `json:"doctorId,omitempty"`
	DoctorName      string   `json:"doctorName,omitempty"`
	ImageURL        string   `json:"imageUrl"` // data URL of the uploaded scan
	Diagnosis       string   `json:"diagnosis"`
	Confidence      float64  `json:"confidence"` // 0-100
	Date            string   `json:"date"`       // RFC3339
	Status          string   `json:"status"`
	DoctorNotes     string   `json:"doctorNotes,omitempty"`
	Type            string   `json:"type"`
	FluidPercentage *float64 `json:"fluidPercentage,omitempty"`
}

func (r Report) Key() string { return r.ID }
