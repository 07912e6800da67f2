package entity

import (
	"time"
)

type SenderType string

const (
	SenderUser  SenderType = "user"
	SenderAdmin SenderType = "admin"
)

// Message is a single chat entry. ConversationID is written on every message
// created by the dashboard; documents from older patient clients may lack it.
type Message struct {
	ID             string     `json:"id" bson:"_id" validate:"required"`
	ConversationID string     `json:"conversationId,omitempty" bson:"conversation_id,omitempty"`
	Text           string     `json:"text" bson:"text"`
	SenderID       string     `json:"senderId" bson:"sender_id" validate:"required"`
	SenderName     string     `json:"senderName" bson:"sender_name"`
	SenderType     SenderType `json:"senderType" bson:"sender_type" validate:"required,oneof=user admin"`
	Timestamp      time.Time  `json:"timestamp" bson:"timestamp" validate:"required"`
	IsRead         bool       `json:"isRead" bson:"is_read"`
}

// IsUnread reports whether the message counts toward a conversation's unread badge.
func (m *Message) IsUnread() bool {
	return m.SenderType == SenderUser && !m.IsRead
}

func (m *Message) DisplayName() string {
	if m.SenderName != "" {
		return m.SenderName
	}
	return m.SenderID
}
