package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/anonto42/pixgram/backend/internal/models"
	"github.com/labstack/echo/v4"
)

// Context keys set by Authenticate.
const (
	UserIDKey   = "userID"
	IdentityKey = "identity"
)

// TokenVerifier turns a bearer token into the identity it was issued for.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*models.Identity, error)
}

// Authenticate creates an Echo middleware that rejects requests without a
// valid bearer token and stores the caller's UID in the context.
func Authenticate(verifier TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Authorization header is missing")
			}

			tokenParts := strings.SplitN(authHeader, " ", 2)
			if len(tokenParts) != 2 || !strings.EqualFold(tokenParts[0], "bearer") || tokenParts[1] == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Authorization header must be in Bearer format")
			}

			identity, err := verifier.Verify(c.Request().Context(), tokenParts[1])
			if err != nil || identity == nil || identity.UID == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired token")
			}

			c.Set(UserIDKey, identity.UID)
			c.Set(IdentityKey, identity)
			return next(c)
		}
	}
}

// OptionalAuthenticate identifies the caller when a valid bearer token is
// present and lets every other request through anonymously.
func OptionalAuthenticate(verifier TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenParts := strings.SplitN(c.Request().Header.Get(echo.HeaderAuthorization), " ", 2)
			if len(tokenParts) != 2 || !strings.EqualFold(tokenParts[0], "bearer") || tokenParts[1] == "" {
				return next(c)
			}

			identity, err := verifier.Verify(c.Request().Context(), tokenParts[1])
			if err == nil && identity != nil && identity.UID != "" {
				c.Set(UserIDKey, identity.UID)
				c.Set(IdentityKey, identity)
			}
			return next(c)
		}
	}
}

// UserID returns the authenticated caller's UID, or "" on public routes.
func UserID(c echo.Context) string {
	uid, _ := c.Get(UserIDKey).(string)
	return uid
}

// CurrentIdentity returns the verified token claims of the caller.
func CurrentIdentity(c echo.Context) *models.Identity {
	identity, _ := c.Get(IdentityKey).(*models.Identity)
	return identity
}
