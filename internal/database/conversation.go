package repository

import (
	"DentEase/entity"
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (m *MongoDB) AllConversations(ctx context.Context) ([]entity.Conversation, error) {
	opts := options.Find().SetSort(bson.D{{"last_message_time", -1}})
	return findAll[entity.Conversation](m, ctx, ConversationsCollection, bson.D{}, opts)
}

func (m *MongoDB) GetConversation(ctx context.Context, id string) (*entity.Conversation, error) {
	return findOne[entity.Conversation](m, ctx, ConversationsCollection, idFilter(id))
}

func (m *MongoDB) FindConversationByUser(ctx context.Context, userID string) (*entity.Conversation, error) {
	return findOne[entity.Conversation](m, ctx, ConversationsCollection, bson.D{{"user_id", userID}})
}

func (m *MongoDB) InsertConversation(ctx context.Context, conv *entity.Conversation) error {
	if err := m.validate.Struct(conv); err != nil {
		return err
	}
	connection, err := m.connect()
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	if _, err = m.collection(connection, ConversationsCollection).InsertOne(ctx, conv); err != nil {
		return fmt.Errorf("mongodb insert conversation: %w", err)
	}
	return nil
}

// UpdateLastMessage stores the preview of the newest message on the conversation.
func (m *MongoDB) UpdateLastMessage(ctx context.Context, msg *entity.Message) error {
	connection, err := m.connect()
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	update := bson.D{{"$set", bson.D{
		{"last_message", msg.Text},
		{"last_message_time", msg.Timestamp},
		{"last_message_sender", msg.SenderType},
	}}}
	res, err := m.collection(connection, ConversationsCollection).UpdateOne(ctx, idFilter(msg.ConversationID), update)
	if err != nil {
		return fmt.Errorf("mongodb update last message: %w", err)
	}
	if res.MatchedCount == 0 {
		return entity.ErrNotFound
	}
	return nil
}

// TouchAdminLastSeen refreshes admin_last_seen on one conversation, or on all
// of them when conversationID is empty.
func (m *MongoDB) TouchAdminLastSeen(ctx context.Context, conversationID string, at time.Time) error {
	connection, err := m.connect()
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	update := bson.D{{"$set", bson.D{{"admin_last_seen", at}}}}
	coll := m.collection(connection, ConversationsCollection)
	if conversationID == "" {
		_, err = coll.UpdateMany(ctx, bson.D{}, update)
	} else {
		_, err = coll.UpdateOne(ctx, idFilter(conversationID), update)
	}
	if err != nil {
		return fmt.Errorf("mongodb touch admin last seen: %w", err)
	}
	return nil
}

// DeleteConversation removes the conversation and all of its messages.
func (m *MongoDB) DeleteConversation(ctx context.Context, id string) error {
	conv, err := m.GetConversation(ctx, id)
	if err != nil {
		return err
	}
	deleted, err := m.DeleteConversationMessages(ctx, conv.ID, conv.UserID)
	if err != nil {
		return err
	}

	connection, err := m.connect()
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	if _, err = m.collection(connection, ConversationsCollection).DeleteOne(ctx, idFilter(id)); err != nil {
		return fmt.Errorf("mongodb delete conversation: %w", err)
	}
	m.log.Debug("conversation deleted", "id", id, "messages", deleted)
	return nil
}
