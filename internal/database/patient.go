package repository

import (
	"DentEase/entity"
	"context"

	"go.mongodb.org/mongo-driver/bson"
)

func (m *MongoDB) AllPatients(ctx context.Context) ([]entity.Patient, error) {
	return findAll[entity.Patient](m, ctx, usersCollection, bson.D{})
}
