package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/anonto42/pixgram/backend/internal/middleware"
	"github.com/anonto42/pixgram/backend/internal/models"
	"github.com/anonto42/pixgram/backend/internal/repositories"
	"github.com/anonto42/pixgram/backend/internal/validators"
	"github.com/labstack/echo/v4"
)

// AuthHandler links identity-provider accounts to user records
type AuthHandler struct {
	userRepository repositories.UserRepository
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(userRepo repositories.UserRepository) *AuthHandler {
	return &AuthHandler{userRepository: userRepo}
}

// RegisterAuthRoutes registers authentication routes
func (h *AuthHandler) RegisterAuthRoutes(g *echo.Group, guards Guards) {
	g.GET("/auth/user", h.GetCurrentUser, guards.Authenticated...)
	g.POST("/auth/user", h.SyncUser, guards.Authenticated...)
}

// GetCurrentUser returns the caller's user record
func (h *AuthHandler) GetCurrentUser(c echo.Context) error {
	user, err := h.userRepository.GetUserByID(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		if isNotFound(err) {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// SyncUser creates the caller's record on first sign-in and refreshes the
// provider-owned fields afterwards. Calling it repeatedly is safe.
func (h *AuthHandler) SyncUser(c echo.Context) error {
	ctx := c.Request().Context()
	identity := middleware.CurrentIdentity(c)
	if identity == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}

	var req models.SyncUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	username := req.Username
	existing, err := h.userRepository.GetUserByID(ctx, identity.UID)
	switch {
	case err == nil:
		username = existing.Username
	case !isNotFound(err):
		return err
	case username == "":
		username = defaultUsername(identity)
	}

	user := &models.User{
		ID:          identity.UID,
		Username:    username,
		Email:       identity.Email,
		DisplayName: sanitizeText(identity.DisplayName),
		AvatarURL:   identity.AvatarURL,
	}
	if err := h.userRepository.UpsertUser(ctx, user); err != nil {
		if repositories.IsUniqueViolation(err) {
			return echo.NewHTTPError(http.StatusBadRequest, "Username is already taken")
		}
		return err
	}

	stored, err := h.userRepository.GetUserByID(ctx, identity.UID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stored)
}

// defaultUsername derives a valid username from the email's local part and
// the UID, so two accounts with the same email prefix still differ.
func defaultUsername(identity *models.Identity) string {
	base := usernameChars(strings.SplitN(identity.Email, "@", 2)[0])
	if base == "" {
		base = "user"
	}
	if len(base) > 20 {
		base = base[:20]
	}

	suffix := usernameChars(identity.UID)
	if len(suffix) > 6 {
		suffix = suffix[len(suffix)-6:]
	}
	username := fmt.Sprintf("%s_%s", base, suffix)
	if !validators.IsUsername(username) {
		return "user_" + suffix
	}
	return username
}

func usernameChars(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' || r == '.' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
