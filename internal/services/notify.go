package services

import (
	"fmt"
	"io"
	"log"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"

	"github.com/oculab/octascan-api/internal/models"
)

// NotificationService mails patients when a doctor completes their report.
// Delivery is fire-and-forget: failures are logged, never surfaced to the
// request that triggered them.
type NotificationService struct {
	host     string
	port     int
	username string
	password string
	from     string
}

// NewNotificationService reads SMTP settings from the environment. With no
// SMTP_HOST configured the service stays inert and only logs.
func NewNotificationService() *NotificationService {
	port, _ := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if port == 0 {
		port = 587
	}
	return &NotificationService{
		host:     os.Getenv("SMTP_HOST"),
		port:     port,
		username: os.Getenv("SMTP_USERNAME"),
		password: os.Getenv("SMTP_PASSWORD"),
		from:     os.Getenv("SMTP_FROM"),
	}
}

// SendReportCompleted emails the finalized report with the PDF attached.
func (s *NotificationService) SendReportCompleted(patientEmail string, report models.Report, pdf []byte) {
	if s.host == "" {
		log.Println("Email not sent: SMTP is not configured.")
		return
	}
	if patientEmail == "" {
		log.Println("Email not sent: patient has no email address.")
		return
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", patientEmail)
	m.SetHeader("Subject", fmt.Sprintf("Your OCT report has been finalized by %s", report.DoctorName))
	m.SetBody("text/plain", fmt.Sprintf(
		"Hello %s,\n\n%s has completed the review of your %s report. Diagnosis: %s.\nThe full report is attached.\n",
		report.PatientName, report.DoctorName, report.Type, report.Diagnosis,
	))
	m.Attach("report.pdf", gomail.SetCopyFunc(func(w io.Writer) error {
		_, err := w.Write(pdf)
		return err
	}))

	// Send in a goroutine so it doesn't block the API response.
	go func() {
		d := gomail.NewDialer(s.host, s.port, s.username, s.password)
		if err := d.DialAndSend(m); err != nil {
			log.Printf("Failed to send report email to %s: %v", patientEmail, err)
			return
		}
		log.Printf("Report email sent to %s", patientEmail)
	}()
}
