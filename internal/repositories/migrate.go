package repositories

import (
	"github.com/anonto42/pixgram/backend/internal/models"
	"gorm.io/gorm"
)

// AutoMigrate creates or updates the relational schema.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Like{},
		&models.Comment{},
		&models.Follow{},
		&models.Story{},
	)
}
