package repository

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"pinboard/internal/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// a fresh connection would see a fresh in-memory database
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Pin{}, &model.Comment{}, &model.Token{}))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username string) *model.User {
	t.Helper()
	user := &model.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "hash",
		IsVerified:   true,
		Role:         model.RoleUser,
		Followers:    model.StringList{},
		Following:    model.StringList{},
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedPin(t *testing.T, db *gorm.DB, userID uint, title string, tags ...string) *model.Pin {
	t.Helper()
	pin := &model.Pin{
		UserID:      userID,
		Image:       "https://img.example.com/" + title,
		Title:       title,
		Description: "about " + title,
		Tags:        model.StringList(tags),
		Likes:       model.StringList{},
	}
	require.NoError(t, db.Create(pin).Error)
	return pin
}
