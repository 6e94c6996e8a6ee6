package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/anonto42/pixgram/backend/internal/models"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// UserLookup is the slice of the user repository the role checks need.
type UserLookup interface {
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// RequireAdmin only lets through callers whose stored record is flagged
// admin. The record is read on every request so role changes apply at once.
// Must run after Authenticate.
func RequireAdmin(users UserLookup) echo.MiddlewareFunc {
	return requireUser(users, func(u *models.User) bool { return u.IsAdmin }, "Admin access required")
}

// RequireActive rejects callers who have no user record yet or are banned.
// Must run after Authenticate.
func RequireActive(users UserLookup) echo.MiddlewareFunc {
	return requireUser(users, func(u *models.User) bool { return !u.IsBanned }, "Account is banned")
}

func requireUser(users UserLookup, allowed func(*models.User) bool, deniedMessage string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			uid := UserID(c)
			if uid == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
			}

			user, err := users.GetUserByID(c.Request().Context(), uid)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return echo.NewHTTPError(http.StatusForbidden, "User profile not found")
				}
				return fmt.Errorf("load caller %s: %w", uid, err)
			}
			if !allowed(user) {
				return echo.NewHTTPError(http.StatusForbidden, deniedMessage)
			}
			return next(c)
		}
	}
}
