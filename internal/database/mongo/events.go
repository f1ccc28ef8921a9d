package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/isdelr/course-api-be/internal/models"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type eventDocument struct {
	ID        bson.ObjectID `bson:"_id,omitempty"`
	Type      string        `bson:"type"`
	Level     string        `bson:"level"`
	Message   string        `bson:"message"`
	ActorID   *string       `bson:"actorId,omitempty"`
	CourseID  *string       `bson:"courseId,omitempty"`
	CreatedAt time.Time     `bson:"createdAt"`
}

// EventRepository implements models.EventRepository on a MongoDB collection.
type EventRepository struct {
	coll *mongo.Collection
}

// NewEventRepository creates a new MongoDB-backed EventRepository.
func NewEventRepository(coll *mongo.Collection) *EventRepository {
	return &EventRepository{coll: coll}
}

func (r *EventRepository) Create(ctx context.Context, event *models.Event) error {
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}
	// BSON dates carry millisecond precision.
	event.CreatedAt = event.CreatedAt.UTC().Truncate(time.Millisecond)

	doc := eventDocument{
		ID:        bson.NewObjectID(),
		Type:      event.Type,
		Level:     event.Level,
		Message:   event.Message,
		ActorID:   event.ActorID,
		CourseID:  event.CourseID,
		CreatedAt: event.CreatedAt,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	event.ID = doc.ID.Hex()
	return nil
}

func (r *EventRepository) ListRecent(ctx context.Context, limit int) ([]models.Event, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}).
		SetLimit(int64(limit))
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find events: %w", err)
	}
	var docs []eventDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode events: %w", err)
	}

	events := make([]models.Event, 0, len(docs))
	for _, d := range docs {
		events = append(events, models.Event{
			ID:        d.ID.Hex(),
			Type:      d.Type,
			Level:     d.Level,
			Message:   d.Message,
			ActorID:   d.ActorID,
			CourseID:  d.CourseID,
			CreatedAt: d.CreatedAt.UTC(),
		})
	}
	return events, nil
}

func (r *EventRepository) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := r.coll.DeleteMany(ctx, bson.M{"createdAt": bson.M{"$lt": cutoff.UTC()}})
	if err != nil {
		return 0, fmt.Errorf("delete events: %w", err)
	}
	return result.DeletedCount, nil
}

var _ models.EventRepository = (*EventRepository)(nil)
