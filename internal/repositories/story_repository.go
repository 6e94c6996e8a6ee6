package repositories

import (
	"context"
	"time"

	"github.com/anonto42/pixgram/backend/internal/models"
	"gorm.io/gorm"
)

// StoryRepository defines the interface for story operations
type StoryRepository interface {
	CreateStory(ctx context.Context, story *models.Story) error
	GetActiveStories(ctx context.Context) ([]models.Story, error)
	DeleteExpiredStories(ctx context.Context) (int64, error)
	CountActiveStories(ctx context.Context) (int64, error)
}

// PostgresStoryRepository implements StoryRepository for PostgreSQL
type PostgresStoryRepository struct {
	db  *gorm.DB
	now func() time.Time
}

// NewPostgresStoryRepository creates a new PostgresStoryRepository
func NewPostgresStoryRepository(db *gorm.DB) *PostgresStoryRepository {
	return &PostgresStoryRepository{
		db:  db,
		now: func() time.Time { return time.Now().UTC() },
	}
}

// CreateStory stamps the story with its creation time and an expiry exactly
// one StoryTTL later, then stores it.
func (r *PostgresStoryRepository) CreateStory(ctx context.Context, story *models.Story) error {
	story.CreatedAt = r.now()
	story.ExpiresAt = story.CreatedAt.Add(models.StoryTTL)
	return r.db.WithContext(ctx).Create(story).Error
}

// GetActiveStories returns unexpired stories, newest first
func (r *PostgresStoryRepository) GetActiveStories(ctx context.Context) ([]models.Story, error) {
	var stories []models.Story
	err := r.db.WithContext(ctx).
		Where("expires_at > ?", r.now()).
		Order("created_at DESC").Order("id DESC").
		Find(&stories).Error
	return stories, err
}

// DeleteExpiredStories removes every story whose expiry has passed and
// reports how many were removed.
func (r *PostgresStoryRepository) DeleteExpiredStories(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).Where("expires_at <= ?", r.now()).Delete(&models.Story{})
	return res.RowsAffected, res.Error
}

func (r *PostgresStoryRepository) CountActiveStories(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Story{}).Where("expires_at > ?", r.now()).Count(&count).Error
	return count, err
}
