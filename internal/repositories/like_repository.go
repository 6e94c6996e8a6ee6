package repositories

import (
	"context"

	"github.com/anonto42/pixgram/backend/internal/models"
	"gorm.io/gorm"
)

// LikeRepository defines the interface for like data operations
type LikeRepository interface {
	ToggleLike(ctx context.Context, userID string, postID uint) (bool, error)
	GetLikedPostIDs(ctx context.Context, userID string, postIDs []uint) (map[uint]bool, error)
	GetLikesCountByPostID(ctx context.Context, postID uint) (int64, error)
	GetLikesCountByPostIDs(ctx context.Context, postIDs []uint) (map[uint]int64, error)
	CountLikes(ctx context.Context) (int64, error)
}

// PostgresLikeRepository implements LikeRepository for PostgreSQL
type PostgresLikeRepository struct {
	db *gorm.DB
}

// NewPostgresLikeRepository creates a new PostgresLikeRepository
func NewPostgresLikeRepository(db *gorm.DB) *PostgresLikeRepository {
	return &PostgresLikeRepository{db: db}
}

// ToggleLike likes the post if the user has not, otherwise removes the like.
// It returns whether the user likes the post afterwards.
func (r *PostgresLikeRepository) ToggleLike(ctx context.Context, userID string, postID uint) (bool, error) {
	like := &models.Like{UserID: userID, PostID: postID}
	return toggleRow(ctx, r.db, like, "user_id = ? AND post_id = ?", userID, postID)
}

// GetLikedPostIDs reports which of postIDs the user has liked.
func (r *PostgresLikeRepository) GetLikedPostIDs(ctx context.Context, userID string, postIDs []uint) (map[uint]bool, error) {
	liked := make(map[uint]bool, len(postIDs))
	if userID == "" || len(postIDs) == 0 {
		return liked, nil
	}

	var ids []uint
	err := r.db.WithContext(ctx).Model(&models.Like{}).
		Where("user_id = ? AND post_id IN ?", userID, postIDs).
		Pluck("post_id", &ids).Error
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		liked[id] = true
	}
	return liked, nil
}

// GetLikesCountByPostID retrieves the count of likes for a specific post
func (r *PostgresLikeRepository) GetLikesCountByPostID(ctx context.Context, postID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Like{}).Where("post_id = ?", postID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// GetLikesCountByPostIDs counts likes for many posts in one query. Posts
// without likes are absent from the map.
func (r *PostgresLikeRepository) GetLikesCountByPostIDs(ctx context.Context, postIDs []uint) (map[uint]int64, error) {
	return countsByPostID(ctx, r.db, &models.Like{}, postIDs)
}

func (r *PostgresLikeRepository) CountLikes(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Like{}).Count(&count).Error
	return count, err
}
