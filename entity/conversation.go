package entity

import "time"

// Conversation is the stored chat room metadata.
type Conversation struct {
	ID                string     `json:"id" bson:"_id" validate:"required"`
	UserID            string     `json:"userId" bson:"user_id" validate:"required"`
	UserName          string     `json:"userName" bson:"user_name"`
	UserEmail         string     `json:"userEmail" bson:"user_email" validate:"omitempty,email"`
	LastMessage       string     `json:"lastMessage" bson:"last_message"`
	LastMessageTime   time.Time  `json:"lastMessageTime" bson:"last_message_time"`
	LastMessageSender SenderType `json:"lastMessageSender" bson:"last_message_sender"`
	AdminLastSeen     time.Time  `json:"adminLastSeen" bson:"admin_last_seen"`
	UserLastSeen      time.Time  `json:"userLastSeen" bson:"user_last_seen"`
	CreatedAt         time.Time  `json:"createdAt" bson:"created_at"`
}

// ConversationView is what the inbox renders: metadata reconciled with the
// message stream plus derived counters.
type ConversationView struct {
	Conversation
	UnreadCount int            `json:"unreadCount"`
	Presence    PresenceStatus `json:"presence"`
	Messages    []Message      `json:"messages,omitempty"`
}

type PresenceStatus string

const (
	Online  PresenceStatus = "online"
	Offline PresenceStatus = "offline"
)
