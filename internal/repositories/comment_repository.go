package repositories

import (
	"context"

	"github.com/anonto42/pixgram/backend/internal/models"
	"gorm.io/gorm"
)

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	CreateComment(ctx context.Context, comment *models.Comment) error
	GetCommentByID(ctx context.Context, id uint) (*models.Comment, error)
	GetCommentsByPostID(ctx context.Context, postID uint) ([]models.Comment, error)
	GetRecentCommentsByPostIDs(ctx context.Context, postIDs []uint, perPost int) (map[uint][]models.Comment, error)
	GetCommentsCountByPostIDs(ctx context.Context, postIDs []uint) (map[uint]int64, error)
	DeleteComment(ctx context.Context, id uint) error
	CountComments(ctx context.Context) (int64, error)
}

// PostgresCommentRepository implements CommentRepository for PostgreSQL
type PostgresCommentRepository struct {
	db *gorm.DB
}

// NewPostgresCommentRepository creates a new PostgresCommentRepository
func NewPostgresCommentRepository(db *gorm.DB) *PostgresCommentRepository {
	return &PostgresCommentRepository{db: db}
}

// CreateComment creates a new comment
func (r *PostgresCommentRepository) CreateComment(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

// GetCommentByID retrieves a comment by ID
func (r *PostgresCommentRepository) GetCommentByID(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.WithContext(ctx).First(&comment, id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// GetCommentsByPostID retrieves all comments for a post, newest first
func (r *PostgresCommentRepository) GetCommentsByPostID(ctx context.Context, postID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("created_at DESC").Order("id DESC").
		Find(&comments).Error
	return comments, err
}

// GetRecentCommentsByPostIDs returns up to perPost newest comments of each
// post, newest first. It costs two queries regardless of how many posts are
// asked for.
func (r *PostgresCommentRepository) GetRecentCommentsByPostIDs(ctx context.Context, postIDs []uint, perPost int) (map[uint][]models.Comment, error) {
	recent := make(map[uint][]models.Comment, len(postIDs))
	if len(postIDs) == 0 || perPost <= 0 {
		return recent, nil
	}

	var ids []uint
	err := r.db.WithContext(ctx).Raw(`
		SELECT id FROM (
			SELECT id, ROW_NUMBER() OVER (PARTITION BY post_id ORDER BY created_at DESC, id DESC) AS rn
			FROM comments
			WHERE post_id IN ?
		) ranked
		WHERE rn <= ?`, postIDs, perPost).Scan(&ids).Error
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return recent, nil
	}

	var comments []models.Comment
	err = r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Order("created_at DESC").Order("id DESC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	for _, c := range comments {
		recent[c.PostID] = append(recent[c.PostID], c)
	}
	return recent, nil
}

// GetCommentsCountByPostIDs counts comments for many posts in one query
func (r *PostgresCommentRepository) GetCommentsCountByPostIDs(ctx context.Context, postIDs []uint) (map[uint]int64, error) {
	return countsByPostID(ctx, r.db, &models.Comment{}, postIDs)
}

// DeleteComment deletes a comment by ID
func (r *PostgresCommentRepository) DeleteComment(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Comment{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *PostgresCommentRepository) CountComments(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Comment{}).Count(&count).Error
	return count, err
}
