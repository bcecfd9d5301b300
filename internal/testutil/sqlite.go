// Package testutil provides shared fixtures for tests.
package testutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"devconnector/internal/auth"
	"devconnector/internal/database"
	"devconnector/internal/models"
	"devconnector/internal/repository"
)

// NewSQLiteDB returns a migrated in-memory database that lives for the duration of the test.
func NewSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

// NewRepositories returns gorm stores over a fresh in-memory database.
func NewRepositories(t *testing.T) repository.Repositories {
	t.Helper()
	return repository.NewGormRepositories(NewSQLiteDB(t))
}

// CreateUser stores a user with password "secret123".
func CreateUser(t *testing.T, users repository.UserRepository, name, email string) *models.User {
	t.Helper()

	hash, err := auth.HashPassword("secret123")
	require.NoError(t, err)

	u := &models.User{Name: name, Email: email, Password: hash, Avatar: auth.AvatarURL(email)}
	require.NoError(t, users.Create(context.Background(), u))
	return u
}
