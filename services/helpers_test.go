package services

import (
	"testing"
	"time"

	"georound-backend/models"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testToken is a well-formed 32-char user token.
const testToken = "GRc202d76ce7dd7724a8182b3ab7ab5b"

// newTestDB opens a fresh in-memory database with the full schema. The
// same upsert SQL the server generates runs against it for real, including
// the composite unique indexes the ON CONFLICT clauses target.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Map{},
		&models.Game{},
		&models.Location{},
	))
	return db
}

// seedUser inserts a user with the given token, request_count starting at 1
// the way signup leaves it.
func seedUser(t *testing.T, db *gorm.DB, token string) *models.User {
	t.Helper()

	user := models.User{
		ID:            uuid.NewString(),
		UserToken:     token,
		Email:         token + "@example.com",
		RequestCount:  1,
		LastRequestAt: time.Now(),
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func locationCount(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&models.Location{}).Count(&n).Error)
	return n
}
