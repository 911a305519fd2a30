package services

import (
	"errors"
	"testing"

	"github.com/oculab/octascan-api/internal/models"
	"github.com/oculab/octascan-api/internal/store"
)

func newMessageFixture() (*MessageService, *store.Collection[models.Message], *store.Collection[models.Report]) {
	backend := store.NewMemoryBackend()
	messages := store.NewCollection[models.Message](backend, "messages")
	reports := store.NewCollection[models.Report](backend, "reports")
	doctors := store.NewCollection[models.Doctor](backend, "doctors")
	doctors.Upsert(models.Doctor{ID: "doc1", Name: "Dr. Mahmood", Specialization: "Retinal Specialist"})
	doctors.Upsert(models.Doctor{ID: "doc2", Name: "Dr. Mones", Specialization: "Ophthalmologist"})
	return NewMessageService(messages, reports, doctors), messages, reports
}

func TestSendRejectsBlankContent(t *testing.T) {
	svc, msgs, _ := newMessageFixture()

	for _, content := range []string{"", "   ", "\n\t"} {
		if _, err := svc.Send(testPatient, "doc1", content); !errors.Is(err, ErrEmptyMessage) {
			t.Errorf("Send(%q): err = %v, want ErrEmptyMessage", content, err)
		}
	}
	if msgs.Len() != 0 {
		t.Error("blank sends must not be stored")
	}

	msg, err := svc.Send(testPatient, "doc1", "hello")
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if msg.Read {
		t.Error("new messages must start unread")
	}
	if msg.SenderName != "Sheyab" {
		t.Errorf("senderName = %q, want Sheyab", msg.SenderName)
	}
}

func TestConversationMarksOnlyTargetedMessagesRead(t *testing.T) {
	svc, msgs, _ := newMessageFixture()
	doctor := models.User{ID: "doc1", Name: "Dr. Mahmood", Role: models.RoleDoctor}
	otherPatient := models.User{ID: "patient2", Name: "Omari", Role: models.RolePatient}

	svc.Send(testPatient, "doc1", "first")
	svc.Send(testPatient, "doc1", "second")
	svc.Send(doctor, "patient1", "reply")
	svc.Send(otherPatient, "doc1", "unrelated")

	// Doctor opens the conversation with patient1.
	conv, err := svc.Conversation("doc1", "patient1")
	if err != nil {
		t.Fatalf("Conversation: %v", err)
	}
	if len(conv) != 3 {
		t.Fatalf("conversation length = %d, want 3", len(conv))
	}
	for i := 1; i < len(conv); i++ {
		if conv[i].Timestamp < conv[i-1].Timestamp {
			t.Error("conversation not sorted by ascending timestamp")
		}
	}

	for _, m := range msgs.All() {
		switch {
		case m.ReceiverID == "doc1" && m.SenderID == "patient1":
			if !m.Read {
				t.Errorf("message %q should be read", m.Content)
			}
		default:
			if m.Read {
				t.Errorf("message %q should be untouched", m.Content)
			}
		}
	}
}

func TestUnreadCount(t *testing.T) {
	svc, _, _ := newMessageFixture()
	otherPatient := models.User{ID: "patient2", Name: "Omari", Role: models.RolePatient}

	svc.Send(testPatient, "doc1", "one")
	svc.Send(otherPatient, "doc1", "two")

	if n := svc.UnreadCount("doc1"); n != 2 {
		t.Fatalf("UnreadCount = %d, want 2", n)
	}

	if _, err := svc.Conversation("doc1", "patient1"); err != nil {
		t.Fatalf("Conversation: %v", err)
	}
	if n := svc.UnreadCount("doc1"); n != 1 {
		t.Errorf("UnreadCount after sweep = %d, want 1", n)
	}
}

func TestContacts(t *testing.T) {
	svc, _, reports := newMessageFixture()

	// Patients see the full directory.
	patientContacts := svc.Contacts(testPatient)
	if len(patientContacts) != 2 {
		t.Fatalf("patient contacts = %d, want 2", len(patientContacts))
	}
	if patientContacts[0].Specialization == "" {
		t.Error("patient contacts should carry the specialization")
	}

	// A doctor only sees patients behind their own reports, deduplicated.
	doctor := models.User{ID: "doc1", Name: "Dr. Mahmood", Role: models.RoleDoctor}
	if got := svc.Contacts(doctor); len(got) != 0 {
		t.Fatalf("doctor with no reports has contacts: %v", got)
	}

	reports.Upsert(models.Report{ID: "r1", PatientID: "patient1", PatientName: "Sheyab", DoctorID: "doc1", Date: "2024-01-01T00:00:00Z", Status: models.StatusPending, Type: models.TypeDiagnosis, Diagnosis: "DME"})
	reports.Upsert(models.Report{ID: "r2", PatientID: "patient1", PatientName: "Sheyab", DoctorID: "doc1", Date: "2024-01-02T00:00:00Z", Status: models.StatusPending, Type: models.TypeFluid, Diagnosis: "DME"})
	reports.Upsert(models.Report{ID: "r3", PatientID: "patient2", PatientName: "Omari", DoctorID: "doc2", Date: "2024-01-03T00:00:00Z", Status: models.StatusPending, Type: models.TypeDiagnosis, Diagnosis: "CNV"})

	got := svc.Contacts(doctor)
	if len(got) != 1 || got[0].ID != "patient1" || got[0].Name != "Sheyab" {
		t.Errorf("doctor contacts = %v, want just patient1", got)
	}
}
