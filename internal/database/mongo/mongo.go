// Package mongo implements the repositories on a MongoDB document store.
// Course owners are populated server side with a $lookup stage.
package mongo

import (
	"context"
	"fmt"

	"github.com/isdelr/course-api-be/internal/models"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

// Collection names.
const (
	UsersCollection   = "users"
	CoursesCollection = "courses"
	EventsCollection  = "events"
)

// DB wraps a connected client and the application database.
type DB struct {
	client *mongo.Client
	db     *mongo.Database
}

// New connects to uri and verifies the primary is reachable.
func New(ctx context.Context, uri, database string) (*DB, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	log.Info().Str("database", database).Msg("Connected to MongoDB")
	return &DB{client: client, db: client.Database(database)}, nil
}

// EnsureIndexes creates the indexes the repositories rely on. It is idempotent.
func (d *DB) EnsureIndexes(ctx context.Context) error {
	_, err := d.db.Collection(UsersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "emailAddress", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create users index: %w", err)
	}

	_, err = d.db.Collection(EventsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "createdAt", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("create events index: %w", err)
	}
	return nil
}

// Ping checks that the primary is reachable.
func (d *DB) Ping(ctx context.Context) error {
	return d.client.Ping(ctx, readpref.Primary())
}

// Close disconnects the client.
func (d *DB) Close(ctx context.Context) error {
	return d.client.Disconnect(ctx)
}

// Drop removes the whole database. Used by tests.
func (d *DB) Drop(ctx context.Context) error {
	return d.db.Drop(ctx)
}

func (d *DB) Users() *UserRepository {
	return NewUserRepository(d.db.Collection(UsersCollection))
}

func (d *DB) Courses() *CourseRepository {
	return NewCourseRepository(d.db.Collection(CoursesCollection))
}

func (d *DB) Events() *EventRepository {
	return NewEventRepository(d.db.Collection(EventsCollection))
}

func parseID(kind, id string) (bson.ObjectID, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return bson.NilObjectID, fmt.Errorf("%s id %q: %w", kind, id, models.ErrMalformedID)
	}
	return oid, nil
}
