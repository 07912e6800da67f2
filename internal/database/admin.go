package repository

import (
	"DentEase/entity"
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (m *MongoDB) GetAdminByEmail(ctx context.Context, email string) (*entity.AdminAccount, error) {
	return findOne[entity.AdminAccount](m, ctx, adminCollection, bson.D{{"email", email}})
}

func (m *MongoDB) SaveAdmin(ctx context.Context, account *entity.AdminAccount) error {
	connection, err := m.connect()
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	opts := options.Replace().SetUpsert(true)
	if _, err = m.collection(connection, adminCollection).ReplaceOne(ctx, bson.D{{"_id", account.ID}}, account, opts); err != nil {
		return fmt.Errorf("mongodb save admin: %w", err)
	}
	return nil
}
