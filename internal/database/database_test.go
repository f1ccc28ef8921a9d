package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/isdelr/course-api-be/internal/config"
	"github.com/isdelr/course-api-be/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_SQLite(t *testing.T) {
	ctx := context.Background()
	cfg := &config.Config{
		DatabaseDriver: config.DriverSQLite,
		DatabasePath:   filepath.Join(t.TempDir(), "store.db"),
	}

	store, err := Open(ctx, cfg)
	require.NoError(t, err)
	defer store.Close(ctx)

	require.NoError(t, store.Ping(ctx))

	user := &models.User{FirstName: "A", LastName: "B", EmailAddress: "a@b.com", PasswordHash: "h"}
	require.NoError(t, store.Users.Create(ctx, user))
	courses, err := store.Courses.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, courses)
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), &config.Config{DatabaseDriver: "cassandra"})
	assert.Error(t, err)
}
