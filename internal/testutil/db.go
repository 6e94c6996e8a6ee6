// Package testutil holds fixtures shared by package tests.
package testutil

import (
	"fmt"
	"testing"
	"time"

	"github.com/anonto42/pixgram/backend/internal/models"
	"github.com/anonto42/pixgram/backend/internal/repositories"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB opens a migrated in-memory SQLite database that lives as long as the test.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:?_pragma=foreign_keys(1)"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	// Every connection to :memory: is a separate database.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := repositories.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// CreateUser inserts a user whose username is derived from id.
func CreateUser(t *testing.T, db *gorm.DB, id string, mutate ...func(*models.User)) *models.User {
	t.Helper()
	user := &models.User{ID: id, Username: "user_" + id, DisplayName: "User " + id}
	for _, m := range mutate {
		m(user)
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user %s: %v", id, err)
	}
	return user
}

// CreatePost inserts a post created at the given time.
func CreatePost(t *testing.T, db *gorm.DB, userID, caption string, createdAt time.Time) *models.Post {
	t.Helper()
	post := &models.Post{
		UserID:    userID,
		Caption:   caption,
		ImageURL:  fmt.Sprintf("/uploads/%s-%d.jpg", userID, createdAt.UnixNano()),
		CreatedAt: createdAt,
	}
	if err := db.Create(post).Error; err != nil {
		t.Fatalf("create post: %v", err)
	}
	return post
}
