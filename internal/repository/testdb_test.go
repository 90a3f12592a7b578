package repository

import (
	"testing"

	"gamehaven/internal/database"
	"gamehaven/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{
		Username:   username,
		Email:      username + "@example.com",
		Password:   "hash",
		IsVerified: true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestGame(t *testing.T, db *gorm.DB, title string) *models.Game {
	t.Helper()
	game := &models.Game{Title: title, Developer: "Studio", Publisher: "Label"}
	require.NoError(t, db.Create(game).Error)
	return game
}
