package mongoadapter

import (
	"context"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"stockroom/contexts/inventory-ops/audit-service/ports"
)

type Repository struct {
	events *mongo.Collection
	logger *slog.Logger
}

func NewRepository(database *mongo.Database, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		events: database.Collection("eventlogs"),
		logger: logger,
	}
}

func (r *Repository) HasTimestamp(ctx context.Context, timestamp time.Time) (bool, error) {
	count, err := r.events.CountDocuments(ctx, bson.M{"timestamp": timestamp.UTC()})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *Repository) AppendEvent(ctx context.Context, log ports.EventLog) error {
	doc := eventLogDocument{
		ID:          primitive.NewObjectID(),
		EventType:   log.EventType,
		Timestamp:   log.Timestamp.UTC(),
		User:        log.User,
		ProductID:   log.ProductID,
		Data:        log.Data,
		Description: log.Description,
	}
	_, err := r.events.InsertOne(ctx, doc)
	return err
}

func (r *Repository) ListEvents(ctx context.Context) ([]ports.EventLog, error) {
	cursor, err := r.events.Find(ctx, bson.M{}, options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}))
	if err != nil {
		return nil, err
	}

	var docs []eventLogDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	items := make([]ports.EventLog, 0, len(docs))
	for _, doc := range docs {
		items = append(items, doc.toEntity())
	}
	return items, nil
}

type eventLogDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	EventType   string             `bson:"eventType"`
	Timestamp   time.Time          `bson:"timestamp"`
	User        string             `bson:"user"`
	ProductID   string             `bson:"productId"`
	Data        any                `bson:"data"`
	Description string             `bson:"description"`
}

func (d eventLogDocument) toEntity() ports.EventLog {
	return ports.EventLog{
		EventID:     d.ID.Hex(),
		EventType:   d.EventType,
		Timestamp:   d.Timestamp,
		User:        d.User,
		ProductID:   d.ProductID,
		Data:        d.Data,
		Description: d.Description,
	}
}

var _ ports.Repository = (*Repository)(nil)
