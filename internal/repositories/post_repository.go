package repositories

import (
	"context"

	"github.com/anonto42/pixgram/backend/internal/hashtags"
	"github.com/anonto42/pixgram/backend/internal/models"
	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	CreatePost(ctx context.Context, post *models.Post) error
	GetPostByID(ctx context.Context, id uint) (*models.Post, error)
	GetAllPosts(ctx context.Context, limit, offset int) ([]models.Post, error)
	GetPostsByUserID(ctx context.Context, userID string) ([]models.Post, error)
	GetPostsByUserIDs(ctx context.Context, userIDs []string, limit, offset int) ([]models.Post, error)
	CountPostsByUserID(ctx context.Context, userID string) (int64, error)
	CountPosts(ctx context.Context) (int64, error)
	DeletePost(ctx context.Context, id uint) error
	GetTrendingHashtags(ctx context.Context, limit int) ([]hashtags.Count, error)
}

// PostgresPostRepository implements PostRepository for PostgreSQL
type PostgresPostRepository struct {
	db *gorm.DB
}

// NewPostgresPostRepository creates a new PostgresPostRepository
func NewPostgresPostRepository(db *gorm.DB) *PostgresPostRepository {
	return &PostgresPostRepository{db: db}
}

// CreatePost creates a new post
func (r *PostgresPostRepository) CreatePost(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

// GetPostByID retrieves a post by ID
func (r *PostgresPostRepository) GetPostByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// GetAllPosts retrieves posts newest first with pagination
func (r *PostgresPostRepository) GetAllPosts(ctx context.Context, limit, offset int) ([]models.Post, error) {
	var posts []models.Post
	err := r.newestFirst(ctx).Limit(limit).Offset(offset).Find(&posts).Error
	return posts, err
}

// GetPostsByUserID retrieves every post of a user, newest first
func (r *PostgresPostRepository) GetPostsByUserID(ctx context.Context, userID string) ([]models.Post, error) {
	var posts []models.Post
	err := r.newestFirst(ctx).Where("user_id = ?", userID).Find(&posts).Error
	return posts, err
}

// GetPostsByUserIDs retrieves posts authored by any of userIDs, newest first
func (r *PostgresPostRepository) GetPostsByUserIDs(ctx context.Context, userIDs []string, limit, offset int) ([]models.Post, error) {
	posts := []models.Post{}
	if len(userIDs) == 0 {
		return posts, nil
	}
	err := r.newestFirst(ctx).Where("user_id IN ?", userIDs).Limit(limit).Offset(offset).Find(&posts).Error
	return posts, err
}

func (r *PostgresPostRepository) CountPostsByUserID(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Post{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *PostgresPostRepository) CountPosts(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Post{}).Count(&count).Error
	return count, err
}

// DeletePost removes a post together with its likes and comments. Either all
// three deletes commit or none do.
func (r *PostgresPostRepository) DeletePost(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Post{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// GetTrendingHashtags ranks the hashtags used across all captions.
func (r *PostgresPostRepository) GetTrendingHashtags(ctx context.Context, limit int) ([]hashtags.Count, error) {
	var captions []string
	err := r.db.WithContext(ctx).Model(&models.Post{}).
		Where("caption LIKE ?", "%#%").
		Pluck("caption", &captions).Error
	if err != nil {
		return nil, err
	}
	return hashtags.Top(captions, limit), nil
}

func (r *PostgresPostRepository) newestFirst(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Order("created_at DESC").Order("id DESC")
}
