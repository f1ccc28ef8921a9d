// Package database opens the configured persistence backend and exposes its
// repositories behind the models interfaces.
package database

import (
	"context"
	"fmt"

	"github.com/isdelr/course-api-be/internal/config"
	"github.com/isdelr/course-api-be/internal/database/mongo"
	"github.com/isdelr/course-api-be/internal/database/sqlite"
	"github.com/isdelr/course-api-be/internal/models"
)

// Store bundles the repositories of one backend.
type Store struct {
	Users   models.UserRepository
	Courses models.CourseRepository
	Events  models.EventRepository

	ping  func(ctx context.Context) error
	close func(ctx context.Context) error
}

// Open connects to the backend selected by cfg.DatabaseDriver and prepares its
// schema (SQLite migrations or MongoDB indexes).
func Open(ctx context.Context, cfg *config.Config) (*Store, error) {
	switch cfg.DatabaseDriver {
	case config.DriverSQLite:
		return OpenSQLite(ctx, cfg.DatabasePath)
	case config.DriverMongo:
		return OpenMongo(ctx, cfg.MongoURI, cfg.MongoDatabase)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.DatabaseDriver)
	}
}

// OpenSQLite opens and migrates the SQLite database at path.
func OpenSQLite(ctx context.Context, path string) (*Store, error) {
	db, err := sqlite.New(ctx, path)
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{
		Users:   db.Users(),
		Courses: db.Courses(),
		Events:  db.Events(),
		ping:    db.Ping,
		close:   func(context.Context) error { return db.Close() },
	}, nil
}

// OpenMongo connects to MongoDB and ensures indexes exist.
func OpenMongo(ctx context.Context, uri, name string) (*Store, error) {
	db, err := mongo.New(ctx, uri, name)
	if err != nil {
		return nil, err
	}
	if err := db.EnsureIndexes(ctx); err != nil {
		db.Close(ctx)
		return nil, err
	}
	return &Store{
		Users:   db.Users(),
		Courses: db.Courses(),
		Events:  db.Events(),
		ping:    db.Ping,
		close:   db.Close,
	}, nil
}

// Ping checks that the backend is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.ping(ctx)
}

// Close releases the backend's resources.
func (s *Store) Close(ctx context.Context) error {
	return s.close(ctx)
}
