package repositories

import (
	"context"
	"time"

	"github.com/anonto42/pixgram/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// AuditRepository stores the moderation audit log
type AuditRepository interface {
	RecordEvent(ctx context.Context, event *models.ModerationEvent) error
	GetRecentEvents(ctx context.Context, limit int64) ([]models.ModerationEvent, error)
}

// MongoAuditRepository implements AuditRepository for MongoDB
type MongoAuditRepository struct {
	collection *mongo.Collection
}

// NewMongoAuditRepository creates a new MongoAuditRepository
func NewMongoAuditRepository(db *mongo.Database) *MongoAuditRepository {
	return &MongoAuditRepository{collection: db.Collection("moderation_events")}
}

// RecordEvent appends an event to the audit log
func (r *MongoAuditRepository) RecordEvent(ctx context.Context, event *models.ModerationEvent) error {
	event.ID = primitive.NewObjectID()
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}
	_, err := r.collection.InsertOne(ctx, event)
	return err
}

// GetRecentEvents returns the latest events, newest first
func (r *MongoAuditRepository) GetRecentEvents(ctx context.Context, limit int64) ([]models.ModerationEvent, error) {
	findOptions := options.Find().SetLimit(limit).SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.D{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	events := []models.ModerationEvent{}
	if err = cursor.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}
