package conversations

import (
	"DentEase/entity"
	"DentEase/impl/core"
	"context"
)

type Core interface {
	ListConversations(ctx context.Context, q string) ([]entity.ConversationView, error)
	GetConversation(ctx context.Context, id string) (*entity.ConversationView, error)
	OpenConversation(ctx context.Context, id string) (*entity.ConversationView, error)
	SendMessage(ctx context.Context, conversationID, text string) (*entity.Message, error)
	StartConversation(ctx context.Context, in core.NewConversation) (*entity.Conversation, error)
	DeleteConversation(ctx context.Context, id string) error
}
