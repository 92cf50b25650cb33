package activity

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/annihilusop/kickbot/internal/logger"
)

const collectionName = "user_activity"

// MongoStore is the MongoDB-backed activity store.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
	logger *logger.Logger
}

// NewMongoStore connects to MongoDB and prepares the user_activity collection.
// The (chat_id, user_id) unique index enforces the one-record-per-pair
// invariant; index creation failure is non-fatal since upserts are keyed on
// the same pair anyway.
func NewMongoStore(ctx context.Context, uri, database string, log *logger.Logger) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	coll := client.Database(database).Collection(collectionName)

	indexModel := mongo.IndexModel{
		Keys:    bson.D{{Key: "chat_id", Value: 1}, {Key: "user_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := coll.Indexes().CreateOne(ctx, indexModel); err != nil {
		log.Warn("failed to create activity index",
			logger.Field{Key: "error", Value: err})
	}

	log.Info("connected to mongodb",
		logger.Field{Key: "database", Value: database},
		logger.Field{Key: "collection", Value: collectionName})

	return &MongoStore{client: client, coll: coll, logger: log}, nil
}

// Record upserts last_active = now for the given (chat, user) pair.
// Failures are logged and swallowed.
func (s *MongoStore) Record(ctx context.Context, chatID, userID int64, username, firstName string) {
	filter := bson.M{"chat_id": chatID, "user_id": userID}
	update := bson.M{
		"$set": bson.M{
			"last_active": time.Now(),
			"username":    normalizeName(username),
			"first_name":  normalizeName(firstName),
		},
	}

	_, err := s.coll.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		s.logger.ErrorCtx(ctx, "failed to record user activity", err,
			logger.Field{Key: "chat_id", Value: chatID},
			logger.Field{Key: "user_id", Value: userID})
	}
}

// Inactive returns all records for the chat with last_active strictly before
// the cutoff. A failed query degrades to an empty result.
func (s *MongoStore) Inactive(ctx context.Context, chatID int64, before time.Time) []Record {
	filter := bson.M{
		"chat_id":     chatID,
		"last_active": bson.M{"$lt": before},
	}

	cursor, err := s.coll.Find(ctx, filter)
	if err != nil {
		s.logger.ErrorCtx(ctx, "failed to query inactive users", err,
			logger.Field{Key: "chat_id", Value: chatID})
		return nil
	}

	var records []Record
	if err := cursor.All(ctx, &records); err != nil {
		s.logger.ErrorCtx(ctx, "failed to decode inactive users", err,
			logger.Field{Key: "chat_id", Value: chatID})
		return nil
	}

	return records
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close(ctx context.Context) error {
	if err := s.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("failed to disconnect from mongodb: %w", err)
	}
	s.logger.Info("closed mongodb connection")
	return nil
}
