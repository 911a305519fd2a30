package models

type Message struct {
	ID         string `json:"id"`
	SenderID   string `json:"senderId"`
	SenderName string `json:"senderName"`
	ReceiverID string `json:"receiverId"`
	Content    string `json:"content"`
	Timestamp  string `json:"timestamp"` // RFC3339
	Read       bool   `json:"read"`
}

func (m Message) Key() string { return m.ID }
