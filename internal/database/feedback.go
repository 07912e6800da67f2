package repository

import (
	"DentEase/entity"
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (m *MongoDB) AllFeedback(ctx context.Context) ([]entity.Feedback, error) {
	opts := options.Find().SetSort(bson.D{{"completed_at", -1}})
	return findAll[entity.Feedback](m, ctx, feedbackCollection, bson.D{}, opts)
}

// AppendReply pushes a reply onto the feedback entry; existing replies are
// never rewritten.
func (m *MongoDB) AppendReply(ctx context.Context, feedbackID string, reply entity.AdminReply) error {
	connection, err := m.connect()
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	update := bson.D{{"$push", bson.D{{"admin_replies", reply}}}}
	res, err := m.collection(connection, feedbackCollection).UpdateOne(ctx, idFilter(feedbackID), update)
	if err != nil {
		return fmt.Errorf("mongodb append reply: %w", err)
	}
	if res.MatchedCount == 0 {
		return entity.ErrNotFound
	}
	return nil
}
