package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SQLSTATE codes Postgres reports for constraint failures.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// IsUniqueViolation reports whether err is a duplicate-key failure.
func IsUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

// IsForeignKeyViolation reports whether err is a write that referenced a
// missing row.
func IsForeignKeyViolation(err error) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation
}

// toggleRow flips set membership of row. It inserts row unless its key already
// exists, in which case the existing row is deleted. It reports whether the
// row is present afterwards.
func toggleRow(ctx context.Context, db *gorm.DB, row interface{}, query string, args ...interface{}) (bool, error) {
	res := db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(row)
	if res.Error != nil {
		// A concurrent toggle inserted the same key first.
		if IsUniqueViolation(res.Error) {
			return true, nil
		}
		return false, res.Error
	}
	if res.RowsAffected > 0 {
		return true, nil
	}

	if err := db.WithContext(ctx).Where(query, args...).Delete(row).Error; err != nil {
		return false, err
	}
	return false, nil
}

type postCount struct {
	PostID uint
	Count  int64
}

func countsByPostID(ctx context.Context, db *gorm.DB, model interface{}, postIDs []uint) (map[uint]int64, error) {
	counts := make(map[uint]int64, len(postIDs))
	if len(postIDs) == 0 {
		return counts, nil
	}

	var rows []postCount
	err := db.WithContext(ctx).Model(model).
		Select("post_id, COUNT(*) AS count").
		Where("post_id IN ?", postIDs).
		Group("post_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.PostID] = row.Count
	}
	return counts, nil
}
