package messaging

import "time"

// Message is a direct note between two accounts. ReplyTo links a reply
// back to the message it answers.
type Message struct {
	ID          string     `json:"id"`
	SenderID    string     `json:"senderId"`
	Sender      string     `json:"sender,omitempty"`
	RecipientID string     `json:"recipientId"`
	Recipient   string     `json:"recipient,omitempty"`
	Subject     string     `json:"subject"`
	Body        string     `json:"body"`
	ReplyTo     *string    `json:"replyTo,omitempty"`
	Read        bool       `json:"read"`
	CreatedAt   time.Time  `json:"createdAt"`
	ReadAt      *time.Time `json:"readAt,omitempty"`
}

type SendInput struct {
	Subject string
	Body    string
}

type ReplyInput struct {
	Body string
}
