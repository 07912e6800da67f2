package core

import (
	"DentEase/entity"
	"DentEase/internal/inbox"
	"DentEase/internal/lib/sl"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	autoReplySenderID   = "ai"
	autoReplySenderName = "AI Assistant"
	autoReplyTimeout    = 30 * time.Second
)

// ensureSynced loads both snapshots directly when the subscriptions have not
// delivered yet, so the first request after start sees data.
func (c *Core) ensureSynced(ctx context.Context) error {
	if c.inbox.Synced() {
		return nil
	}
	conversations, err := c.repo.AllConversations(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", entity.ErrNotSynced, err)
	}
	messages, err := c.repo.AllMessages(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", entity.ErrNotSynced, err)
	}
	c.inbox.ApplyConversations(conversations)
	c.inbox.ApplyMessages(messages)
	return nil
}

// ListConversations returns conversation summaries, newest activity first.
func (c *Core) ListConversations(ctx context.Context, q string) ([]entity.ConversationView, error) {
	if err := c.ensureSynced(ctx); err != nil {
		return nil, err
	}
	return inbox.Summaries(inbox.Filter(c.inbox.Views(), q)), nil
}

func (c *Core) GetConversation(ctx context.Context, id string) (*entity.ConversationView, error) {
	if err := c.ensureSynced(ctx); err != nil {
		return nil, err
	}
	view, ok := c.inbox.View(id)
	if !ok {
		return nil, fmt.Errorf("conversation %s: %w", id, entity.ErrNotFound)
	}
	return &view, nil
}

// OpenConversation marks every unread patient message of the conversation as
// read and records operator activity. Persisting failures are logged and the
// local state stays optimistic until the next snapshot.
func (c *Core) OpenConversation(ctx context.Context, id string) (*entity.ConversationView, error) {
	if _, err := c.GetConversation(ctx, id); err != nil {
		return nil, err
	}
	c.markRead(ctx, id)
	c.operator.Touch(ctx, id)

	view, ok := c.inbox.View(id)
	if !ok {
		return nil, fmt.Errorf("conversation %s: %w", id, entity.ErrNotFound)
	}
	return &view, nil
}

func (c *Core) markRead(ctx context.Context, id string) []string {
	ids := c.inbox.MarkRead(id)
	if len(ids) == 0 {
		return nil
	}
	log := c.log.With(slog.String("conversation_id", id), slog.Int("messages", len(ids)))
	if _, err := c.repo.MarkMessagesRead(ctx, ids); err != nil {
		log.With(sl.Err(err)).Error("persist read flags")
		return ids
	}
	log.Debug("conversation marked read")
	if c.hub != nil {
		c.hub.BroadcastReadReceipt(id, ids)
	}
	return ids
}

// SendMessage stores an operator reply in the conversation.
func (c *Core) SendMessage(ctx context.Context, conversationID, text string) (*entity.Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, entity.ErrEmptyMessage
	}
	view, err := c.GetConversation(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if err = c.ensureMetadata(ctx, view); err != nil {
		return nil, err
	}

	msg := &entity.Message{
		ID:             uuid.NewString(),
		ConversationID: view.ID,
		Text:           text,
		SenderID:       entity.AdminAccountID,
		SenderName:     c.OperatorName(),
		SenderType:     entity.SenderAdmin,
		Timestamp:      c.now().UTC(),
		IsRead:         true,
	}
	if err = c.post(ctx, msg); err != nil {
		return nil, err
	}
	c.operator.Touch(ctx, view.ID)
	return msg, nil
}

func (c *Core) post(ctx context.Context, msg *entity.Message) error {
	if err := c.repo.InsertMessage(ctx, msg); err != nil {
		return fmt.Errorf("insert message: %w", err)
	}
	if err := c.repo.UpdateLastMessage(ctx, msg); err != nil {
		c.log.With(
			slog.String("conversation_id", msg.ConversationID),
			sl.Err(err),
		).Error("update last message")
	}
	return nil
}

// ensureMetadata creates the stored conversation for legacy threads that only
// exist as inferred message groups.
func (c *Core) ensureMetadata(ctx context.Context, view *entity.ConversationView) error {
	_, err := c.repo.GetConversation(ctx, view.ID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, entity.ErrNotFound) {
		return fmt.Errorf("get conversation: %w", err)
	}
	conv := view.Conversation
	if conv.UserID == "" {
		conv.UserID = view.ID
	}
	conv.CreatedAt = c.now().UTC()
	if err = c.repo.InsertConversation(ctx, &conv); err != nil {
		return fmt.Errorf("insert conversation: %w", err)
	}
	c.log.Info("conversation metadata created", slog.String("conversation_id", conv.ID))
	return nil
}

type NewConversation struct {
	UserID    string `json:"userId" validate:"required"`
	UserName  string `json:"userName" validate:"max=100"`
	UserEmail string `json:"userEmail" validate:"omitempty,email,max=50"`
	Text      string `json:"text" validate:"max=2000"`
}

// StartConversation opens (or reuses) the conversation with a patient and
// optionally posts a first message.
func (c *Core) StartConversation(ctx context.Context, in NewConversation) (*entity.Conversation, error) {
	conv, err := c.repo.FindConversationByUser(ctx, in.UserID)
	if err != nil && !errors.Is(err, entity.ErrNotFound) {
		return nil, fmt.Errorf("find conversation: %w", err)
	}
	if conv == nil {
		conv = &entity.Conversation{
			ID:        uuid.NewString(),
			UserID:    in.UserID,
			UserName:  in.UserName,
			UserEmail: in.UserEmail,
			CreatedAt: c.now().UTC(),
		}
		if err = c.repo.InsertConversation(ctx, conv); err != nil {
			return nil, fmt.Errorf("insert conversation: %w", err)
		}
	}

	if text := strings.TrimSpace(in.Text); text != "" {
		msg := &entity.Message{
			ID:             uuid.NewString(),
			ConversationID: conv.ID,
			Text:           text,
			SenderID:       entity.AdminAccountID,
			SenderName:     c.OperatorName(),
			SenderType:     entity.SenderAdmin,
			Timestamp:      c.now().UTC(),
			IsRead:         true,
		}
		if err = c.post(ctx, msg); err != nil {
			return nil, err
		}
		conv.LastMessage = msg.Text
		conv.LastMessageTime = msg.Timestamp
		conv.LastMessageSender = msg.SenderType
		c.operator.Touch(ctx, conv.ID)
	}
	return conv, nil
}

// DeleteConversation removes the conversation and its messages.
func (c *Core) DeleteConversation(ctx context.Context, id string) error {
	err := c.repo.DeleteConversation(ctx, id)
	if !errors.Is(err, entity.ErrNotFound) {
		return err
	}
	// legacy thread without metadata
	view, ok := c.inbox.View(id)
	if !ok {
		return err
	}
	_, err = c.repo.DeleteConversationMessages(ctx, view.ID, view.UserID)
	return err
}

type Presence struct {
	Online   bool      `json:"online"`
	LastSeen time.Time `json:"lastSeen"`
}

func (c *Core) Presence() Presence {
	return Presence{Online: c.operator.Online(), LastSeen: c.operator.LastSeen()}
}

func (c *Core) SetPresence(online bool) Presence {
	c.operator.SetOnline(online)
	return c.Presence()
}

// HandleMarkRead serves the dashboard's mark_read event.
func (c *Core) HandleMarkRead(ctx context.Context, conversationID string) {
	c.markRead(ctx, conversationID)
	c.operator.Touch(ctx, conversationID)
}

// HandleSetPresence serves the dashboard's presence event.
func (c *Core) HandleSetPresence(online bool) {
	c.operator.SetOnline(online)
}

// HandleNewUserMessage runs for every unread patient message that arrives
// after start. While the operator is offline the clinic is alerted and, when
// configured, an automatic reply is posted.
func (c *Core) HandleNewUserMessage(m entity.Message) {
	if c.hub != nil {
		c.hub.BroadcastNewMessage(m)
	}
	if c.operator.Online() {
		return
	}
	if c.notifier != nil {
		c.notifier.NotifyNewMessage(m)
	}
	if c.responder != nil {
		go c.autoReply(m)
	}
}

func (c *Core) autoReply(m entity.Message) {
	ctx, cancel := context.WithTimeout(context.Background(), autoReplyTimeout)
	defer cancel()
	log := c.log.With(slog.String("message_id", m.ID))

	view, ok := c.conversationOf(m)
	if !ok {
		log.Warn("auto reply skipped, conversation unknown")
		return
	}
	services, err := c.repo.AllServices(ctx)
	if err != nil {
		log.With(sl.Err(err)).Warn("auto reply without services")
	}
	answer, err := c.responder.Reply(ctx, view.Messages, services)
	if err != nil {
		log.With(sl.Err(err)).Error("auto reply")
		return
	}
	if answer == "" {
		return
	}
	if err = c.ensureMetadata(ctx, &view); err != nil {
		log.With(sl.Err(err)).Error("auto reply")
		return
	}
	reply := &entity.Message{
		ID:             uuid.NewString(),
		ConversationID: view.ID,
		Text:           answer,
		SenderID:       autoReplySenderID,
		SenderName:     autoReplySenderName,
		SenderType:     entity.SenderAdmin,
		Timestamp:      c.now().UTC(),
		IsRead:         true,
	}
	if err = c.post(ctx, reply); err != nil {
		log.With(sl.Err(err)).Error("auto reply")
		return
	}
	log.Info("auto reply posted", slog.String("conversation_id", view.ID))
}

func (c *Core) conversationOf(m entity.Message) (entity.ConversationView, bool) {
	for _, v := range c.inbox.Views() {
		if m.ConversationID != "" && v.ID == m.ConversationID {
			return v, true
		}
		for _, msg := range v.Messages {
			if msg.ID == m.ID {
				return v, true
			}
		}
	}
	return entity.ConversationView{}, false
}
