package repository

import (
	"DentEase/entity"
	"DentEase/internal/config"
	"DentEase/internal/lib/sl"
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	MessagesCollection      = "messages"
	ConversationsCollection = "chat_rooms"
	appointmentsCollection  = "appointments"
	usersCollection         = "users"
	servicesCollection      = "services"
	feedbackCollection      = "feedback"
	adminCollection         = "admin_acc"
	imagesBucket            = "service_images"
)

type MongoDB struct {
	ctx           context.Context
	clientOptions *options.ClientOptions
	database      string
	validate      *validator.Validate
	log           *slog.Logger
}

func NewMongoClient(conf *config.Config, logger *slog.Logger) (*MongoDB, error) {
	if !conf.Mongo.Enabled {
		return nil, nil
	}
	connectionUri := fmt.Sprintf("mongodb://%s:%s", conf.Mongo.Host, conf.Mongo.Port)
	clientOptions := options.Client().ApplyURI(connectionUri)
	if conf.Mongo.User != "" {
		clientOptions.SetAuth(options.Credential{
			Username:   conf.Mongo.User,
			Password:   conf.Mongo.Password,
			AuthSource: conf.Mongo.Database,
		})
	}
	client := &MongoDB{
		ctx:           context.Background(),
		clientOptions: clientOptions,
		database:      conf.Mongo.Database,
		validate:      validator.New(),
		log:           logger.With(sl.Module("mongodb")),
	}
	return client, nil
}

func (m *MongoDB) connect() (*mongo.Client, error) {
	connection, err := mongo.Connect(m.ctx, m.clientOptions)
	if err != nil {
		return nil, fmt.Errorf("mongodb connect error: %w", err)
	}
	return connection, nil
}

func (m *MongoDB) disconnect(connection *mongo.Client) {
	_ = connection.Disconnect(m.ctx)
}

func (m *MongoDB) collection(connection *mongo.Client, name string) *mongo.Collection {
	return connection.Database(m.database).Collection(name)
}

// EnsureIndexes creates the indexes the dashboard queries rely on.
func (m *MongoDB) EnsureIndexes(ctx context.Context) error {
	connection, err := m.connect()
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	indexes := map[string][]mongo.IndexModel{
		MessagesCollection: {
			{Keys: bson.D{{"conversation_id", 1}, {"timestamp", 1}}},
			{Keys: bson.D{{"sender_type", 1}, {"is_read", 1}}},
		},
		ConversationsCollection: {
			{Keys: bson.D{{"user_id", 1}}},
		},
		appointmentsCollection: {
			{Keys: bson.D{{"status", 1}, {"appointment_date", 1}}},
		},
		adminCollection: {
			{Keys: bson.D{{"email", 1}}, Options: options.Index().SetUnique(true)},
		},
	}
	for name, models := range indexes {
		if _, err = m.collection(connection, name).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create indexes on %s: %w", name, err)
		}
	}
	return nil
}

// idFilter matches documents whose _id is the given string or, for documents
// created outside this service, the equivalent ObjectID.
func idFilter(id string) bson.D {
	if oid, err := primitive.ObjectIDFromHex(id); err == nil {
		return bson.D{{"_id", bson.D{{"$in", bson.A{id, oid}}}}}
	}
	return bson.D{{"_id", id}}
}

func idsFilter(ids []string) bson.D {
	values := make(bson.A, 0, len(ids))
	for _, id := range ids {
		values = append(values, id)
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			values = append(values, oid)
		}
	}
	return bson.D{{"_id", bson.D{{"$in", values}}}}
}

func notFound(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("%w: %v", entity.ErrNotFound, err)
	}
	return fmt.Errorf("mongodb find error: %w", err)
}

// decodeAll decodes every document of the cursor and validates it. Documents
// that fail either step are skipped and logged with their id.
func decodeAll[T any](ctx context.Context, cursor *mongo.Cursor, validate *validator.Validate, log *slog.Logger) ([]T, error) {
	defer cursor.Close(ctx)

	items := make([]T, 0)
	for cursor.Next(ctx) {
		var item T
		if err := cursor.Decode(&item); err != nil {
			log.With(sl.Err(err)).Warn("quarantined document", slog.Any("id", cursor.Current.Lookup("_id")))
			continue
		}
		if err := validate.Struct(item); err != nil {
			log.With(sl.Err(err)).Warn("quarantined document", slog.Any("id", cursor.Current.Lookup("_id")))
			continue
		}
		items = append(items, item)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("mongodb cursor error: %w", err)
	}
	return items, nil
}

func findAll[T any](m *MongoDB, ctx context.Context, name string, filter bson.D, opts ...*options.FindOptions) ([]T, error) {
	connection, err := m.connect()
	if err != nil {
		return nil, err
	}
	defer m.disconnect(connection)

	cursor, err := m.collection(connection, name).Find(ctx, filter, opts...)
	if err != nil {
		return nil, fmt.Errorf("mongodb find %s: %w", name, err)
	}
	return decodeAll[T](ctx, cursor, m.validate, m.log.With(slog.String("collection", name)))
}

func findOne[T any](m *MongoDB, ctx context.Context, name string, filter bson.D) (*T, error) {
	connection, err := m.connect()
	if err != nil {
		return nil, err
	}
	defer m.disconnect(connection)

	var item T
	if err = m.collection(connection, name).FindOne(ctx, filter).Decode(&item); err != nil {
		return nil, notFound(err)
	}
	return &item, nil
}
