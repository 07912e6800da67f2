package repository

import (
	"DentEase/entity"
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// AllMessages returns the full message snapshot, oldest first.
func (m *MongoDB) AllMessages(ctx context.Context) ([]entity.Message, error) {
	opts := options.Find().SetSort(bson.D{{"timestamp", 1}})
	return findAll[entity.Message](m, ctx, MessagesCollection, bson.D{}, opts)
}

func (m *MongoDB) InsertMessage(ctx context.Context, msg *entity.Message) error {
	if err := m.validate.Struct(msg); err != nil {
		return err
	}
	connection, err := m.connect()
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	if _, err = m.collection(connection, MessagesCollection).InsertOne(ctx, msg); err != nil {
		return fmt.Errorf("mongodb insert message: %w", err)
	}
	return nil
}

// MarkMessagesRead sets is_read on the given messages in one batch.
func (m *MongoDB) MarkMessagesRead(ctx context.Context, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	connection, err := m.connect()
	if err != nil {
		return 0, err
	}
	defer m.disconnect(connection)

	update := bson.D{{"$set", bson.D{{"is_read", true}}}}
	res, err := m.collection(connection, MessagesCollection).UpdateMany(ctx, idsFilter(ids), update)
	if err != nil {
		return 0, fmt.Errorf("mongodb mark read: %w", err)
	}
	return res.ModifiedCount, nil
}

// CountUnread counts unread patient messages, optionally within one conversation.
func (m *MongoDB) CountUnread(ctx context.Context, conversationID string) (int64, error) {
	connection, err := m.connect()
	if err != nil {
		return 0, err
	}
	defer m.disconnect(connection)

	filter := bson.D{{"sender_type", entity.SenderUser}, {"is_read", false}}
	if conversationID != "" {
		filter = append(filter, bson.E{Key: "conversation_id", Value: conversationID})
	}
	count, err := m.collection(connection, MessagesCollection).CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("mongodb count unread: %w", err)
	}
	return count, nil
}

// DeleteConversationMessages removes the messages of a conversation. Legacy
// messages of the same patient without a conversation id are removed too.
func (m *MongoDB) DeleteConversationMessages(ctx context.Context, conversationID, userID string) (int64, error) {
	connection, err := m.connect()
	if err != nil {
		return 0, err
	}
	defer m.disconnect(connection)

	or := bson.A{bson.D{{"conversation_id", conversationID}}}
	if userID != "" {
		or = append(or, bson.D{
			{"conversation_id", bson.D{{"$exists", false}}},
			{"sender_id", userID},
		})
	}
	res, err := m.collection(connection, MessagesCollection).DeleteMany(ctx, bson.D{{"$or", or}})
	if err != nil {
		return 0, fmt.Errorf("mongodb delete messages: %w", err)
	}
	return res.DeletedCount, nil
}
