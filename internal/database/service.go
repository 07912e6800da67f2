package repository

import (
	"DentEase/entity"
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (m *MongoDB) AllServices(ctx context.Context) ([]entity.Service, error) {
	opts := options.Find().SetSort(bson.D{{"order", 1}, {"name", 1}})
	return findAll[entity.Service](m, ctx, servicesCollection, bson.D{}, opts)
}

func (m *MongoDB) GetService(ctx context.Context, id string) (*entity.Service, error) {
	return findOne[entity.Service](m, ctx, servicesCollection, idFilter(id))
}

// UpsertService updates the service in place or inserts it when it does not
// exist yet. The stored _id is never rewritten.
func (m *MongoDB) UpsertService(ctx context.Context, svc *entity.Service) error {
	if err := m.validate.Struct(svc); err != nil {
		return err
	}
	raw, err := bson.Marshal(svc)
	if err != nil {
		return fmt.Errorf("marshal service: %w", err)
	}
	var fields bson.M
	if err = bson.Unmarshal(raw, &fields); err != nil {
		return fmt.Errorf("unmarshal service: %w", err)
	}
	delete(fields, "_id")

	connection, err := m.connect()
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	update := bson.D{{"$set", fields}}
	if svc.ImageID == "" {
		update = append(update, bson.E{Key: "$unset", Value: bson.D{{"image_id", ""}}})
	}
	coll := m.collection(connection, servicesCollection)
	res, err := coll.UpdateOne(ctx, idFilter(svc.ID), update)
	if err != nil {
		return fmt.Errorf("mongodb update service: %w", err)
	}
	if res.MatchedCount > 0 {
		return nil
	}
	if _, err = coll.InsertOne(ctx, svc); err != nil {
		return fmt.Errorf("mongodb insert service: %w", err)
	}
	return nil
}

func (m *MongoDB) DeleteService(ctx context.Context, id string) error {
	connection, err := m.connect()
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	res, err := m.collection(connection, servicesCollection).DeleteOne(ctx, idFilter(id))
	if err != nil {
		return fmt.Errorf("mongodb delete service: %w", err)
	}
	if res.DeletedCount == 0 {
		return entity.ErrNotFound
	}
	return nil
}
