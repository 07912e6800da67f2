package repository

import (
	"context"
	"fmt"

	"DentEase/internal/feed"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// changeStream keeps its own connection open and releases it on Close.
type changeStream struct {
	*mongo.ChangeStream
	disconnect func()
}

func (s *changeStream) Close(ctx context.Context) error {
	err := s.ChangeStream.Close(ctx)
	s.disconnect()
	return err
}

// Watch opens a change stream on the collection. It requires the server to
// run as a replica set.
func (m *MongoDB) Watch(ctx context.Context, collection string) (feed.Stream, error) {
	connection, err := m.connect()
	if err != nil {
		return nil, err
	}

	opts := options.ChangeStream().SetFullDocument(options.UpdateLookup)
	stream, err := m.collection(connection, collection).Watch(ctx, mongo.Pipeline{}, opts)
	if err != nil {
		m.disconnect(connection)
		return nil, fmt.Errorf("mongodb watch %s: %w", collection, err)
	}
	return &changeStream{
		ChangeStream: stream,
		disconnect:   func() { m.disconnect(connection) },
	}, nil
}
