package repositories

import (
	"context"

	"github.com/anonto42/pixgram/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUsersByIDs(ctx context.Context, ids []string) (map[string]models.User, error)
	UpsertUser(ctx context.Context, user *models.User) error
	UpdateUser(ctx context.Context, id string, updates map[string]interface{}) error
	ListUsers(ctx context.Context, limit, offset int) ([]models.User, error)
	GetSuggestedUsers(ctx context.Context, userID string, limit int) ([]models.User, error)
	SetVerified(ctx context.Context, id string, verified bool) error
	SetBanned(ctx context.Context, id string, banned bool, reason string) error
	SetAdmin(ctx context.Context, id string, admin bool) error
	CountUsers(ctx context.Context) (int64, error)
	CountBannedUsers(ctx context.Context) (int64, error)
}

// PostgresUserRepository implements UserRepository for PostgreSQL
type PostgresUserRepository struct {
	db *gorm.DB
}

// NewPostgresUserRepository creates a new PostgresUserRepository
func NewPostgresUserRepository(db *gorm.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

// GetUserByID retrieves a user by identity-provider UID
func (r *PostgresUserRepository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByUsername retrieves a user by username
func (r *PostgresUserRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUsersByIDs loads every listed user in one query, keyed by ID.
// Unknown IDs are simply absent from the map.
func (r *PostgresUserRepository) GetUsersByIDs(ctx context.Context, ids []string) (map[string]models.User, error) {
	users := make(map[string]models.User, len(ids))
	if len(ids) == 0 {
		return users, nil
	}

	var rows []models.User
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, u := range rows {
		users[u.ID] = u
	}
	return users, nil
}

// UpsertUser inserts the user, or refreshes the identity-provider fields of an
// existing row with the same ID. Profile fields the user may edit are only
// written on insert.
func (r *PostgresUserRepository) UpsertUser(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"email", "updated_at"}),
	}).Create(user).Error
}

// UpdateUser applies a partial update to a user's profile
func (r *PostgresUserRepository) UpdateUser(ctx context.Context, id string, updates map[string]interface{}) error {
	return r.updateWhereID(ctx, id, updates)
}

// ListUsers returns users newest first
func (r *PostgresUserRepository) ListUsers(ctx context.Context, limit, offset int) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).
		Order("created_at DESC").Order("id").
		Limit(limit).Offset(offset).
		Find(&users).Error
	return users, err
}

// GetSuggestedUsers returns up to limit users that are neither the requester
// nor already followed by them.
func (r *PostgresUserRepository) GetSuggestedUsers(ctx context.Context, userID string, limit int) ([]models.User, error) {
	var users []models.User
	following := r.db.Model(&models.Follow{}).Select("following_id").Where("follower_id = ?", userID)
	err := r.db.WithContext(ctx).
		Where("id <> ?", userID).
		Where("id NOT IN (?)", following).
		Where("is_banned = ?", false).
		Order("created_at DESC").Order("id").
		Limit(limit).
		Find(&users).Error
	return users, err
}

func (r *PostgresUserRepository) SetVerified(ctx context.Context, id string, verified bool) error {
	return r.updateWhereID(ctx, id, map[string]interface{}{"is_verified": verified})
}

// SetBanned bans a user with a reason, or lifts the ban and clears it.
func (r *PostgresUserRepository) SetBanned(ctx context.Context, id string, banned bool, reason string) error {
	if !banned {
		reason = ""
	}
	return r.updateWhereID(ctx, id, map[string]interface{}{
		"is_banned":     banned,
		"banned_reason": reason,
	})
}

func (r *PostgresUserRepository) SetAdmin(ctx context.Context, id string, admin bool) error {
	return r.updateWhereID(ctx, id, map[string]interface{}{"is_admin": admin})
}

func (r *PostgresUserRepository) CountUsers(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Count(&count).Error
	return count, err
}

func (r *PostgresUserRepository) CountBannedUsers(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Where("is_banned = ?", true).Count(&count).Error
	return count, err
}

func (r *PostgresUserRepository) updateWhereID(ctx context.Context, id string, updates map[string]interface{}) error {
	res := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
