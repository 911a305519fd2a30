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

var ErrEmptyMessage = errors.New("message content cannot be empty")

// Contact is one entry in a user's messaging sidebar.
type Contact struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Specialization string `json:"specialization,omitempty"`
}

// MessageService is the direct channel between a patient and a doctor,
// independent of the report lifecycle.
type MessageService struct {
	messages *store.Collection[models.Message]
	reports  *store.Collection[models.Report]
	doctors  *store.Collection[models.Doctor]
}

func NewMessageService(messages *store.Collection[models.Message], reports *store.Collection[models.Report], doctors *store.Collection[models.Doctor]) *MessageService {
	return &MessageService{messages: messages, reports: reports, doctors: doctors}
}

// Send appends an unread message. Blank content is rejected.
func (s *MessageService) Send(sender models.User, receiverID, content string) (models.Message, error) {
	if strings.TrimSpace(content) == "" {
		return models.Message{}, ErrEmptyMessage
	}
	msg := models.Message{
		ID:         uuid.NewString(),
		SenderID:   sender.ID,
		SenderName: sender.Name,
		ReceiverID: receiverID,
		Content:    content,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		Read:       false,
	}
	if err := s.messages.Upsert(msg); err != nil {
		return models.Message{}, err
	}
	return msg, nil
}

// Conversation returns the messages between self and other ordered by
// timestamp, and eagerly marks everything addressed to self from other as
// read. Messages in unrelated conversations are untouched.
func (s *MessageService) Conversation(selfID, otherID string) ([]models.Message, error) {
	conv := s.messages.Find(func(m models.Message) bool {
		return (m.SenderID == selfID && m.ReceiverID == otherID) ||
			(m.SenderID == otherID && m.ReceiverID == selfID)
	})
	sort.SliceStable(conv, func(i, j int) bool {
		return parseDate(conv[i].Timestamp).Before(parseDate(conv[j].Timestamp))
	})

	var updates []models.Message
	for i, m := range conv {
		if m.ReceiverID == selfID && m.SenderID == otherID && !m.Read {
			conv[i].Read = true
			updates = append(updates, conv[i])
		}
	}
	if len(updates) > 0 {
		if err := s.messages.UpsertAll(updates); err != nil {
			return nil, err
		}
	}
	return conv, nil
}

// Contacts lists who a user may message. Patients see the doctor directory;
// doctors see the deduplicated patients behind their assigned reports, so a
// doctor can only reach a patient who has sent them at least one report.
func (s *MessageService) Contacts(user models.User) []Contact {
	if user.Role == models.RoleDoctor {
		seen := make(map[string]bool)
		var contacts []Contact
		for _, r := range s.reports.Find(func(r models.Report) bool { return r.DoctorID == user.ID }) {
			if seen[r.PatientID] {
				continue
			}
			seen[r.PatientID] = true
			contacts = append(contacts, Contact{ID: r.PatientID, Name: r.PatientName})
		}
		return contacts
	}

	doctors := s.doctors.All()
	contacts := make([]Contact, 0, len(doctors))
	for _, d := range doctors {
		contacts = append(contacts, Contact{ID: d.ID, Name: d.Name, Specialization: d.Specialization})
	}
	return contacts
}

// UnreadCount counts messages addressed to self that no conversation load
// has swept yet.
func (s *MessageService) UnreadCount(selfID string) int {
	return len(s.messages.Find(func(m models.Message) bool {
		return m.ReceiverID == selfID && !m.Read
	}))
}
