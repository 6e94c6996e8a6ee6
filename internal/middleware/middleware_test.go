package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/anonto42/pixgram/backend/internal/models"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

const testSecret = "test-secret"

type stubUsers map[string]*models.User

func (s stubUsers) GetUserByID(_ context.Context, id string) (*models.User, error) {
	if id == "broken" {
		return nil, errors.New("connection reset")
	}
	u, ok := s[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func ok(c echo.Context) error {
	return c.String(http.StatusOK, UserID(c))
}

func serve(t *testing.T, h echo.HandlerFunc, authHeader string) (*httptest.ResponseRecorder, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()
	return rec, h(e.NewContext(req, rec))
}

func statusOf(err error) int {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code
	}
	return http.StatusInternalServerError
}

func bearer(t *testing.T, uid string) string {
	t.Helper()
	token, err := SignToken(testSecret, models.Identity{UID: uid, Email: uid + "@example.com"}, time.Hour)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return "Bearer " + token
}

func TestAuthenticate(t *testing.T) {
	h := Authenticate(NewHMACVerifier(testSecret))(ok)

	expired, err := SignToken(testSecret, models.Identity{UID: "alice"}, -time.Minute)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	forged, err := SignToken("other-secret", models.Identity{UID: "alice"}, time.Hour)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized},
		{"garbage token", "Bearer not-a-jwt", http.StatusUnauthorized},
		{"expired", "Bearer " + expired, http.StatusUnauthorized},
		{"wrong secret", "Bearer " + forged, http.StatusUnauthorized},
		{"missing subject", bearer(t, ""), http.StatusUnauthorized},
		{"valid", bearer(t, "alice"), http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := serve(t, h, tt.header)
			if tt.want == http.StatusOK {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if rec.Body.String() != "alice" {
					t.Errorf("userID = %q, want alice", rec.Body.String())
				}
				return
			}
			if got := statusOf(err); got != tt.want {
				t.Errorf("status = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestHMACVerifierMapsClaims(t *testing.T) {
	token, err := SignToken(testSecret, models.Identity{
		UID: "u1", Email: "u1@example.com", DisplayName: "U One", AvatarURL: "https://example.com/a.png",
	}, time.Hour)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	identity, err := NewHMACVerifier(testSecret).Verify(context.Background(), token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	want := models.Identity{UID: "u1", Email: "u1@example.com", DisplayName: "U One", AvatarURL: "https://example.com/a.png"}
	if *identity != want {
		t.Errorf("identity = %+v, want %+v", *identity, want)
	}
}

func TestRequireAdmin(t *testing.T) {
	users := stubUsers{
		"root":  {ID: "root", IsAdmin: true},
		"alice": {ID: "alice"},
	}
	h := Authenticate(NewHMACVerifier(testSecret))(RequireAdmin(users)(ok))

	tests := []struct {
		uid  string
		want int
	}{
		{"root", http.StatusOK},
		{"alice", http.StatusForbidden},
		{"ghost", http.StatusForbidden},
		{"broken", http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.uid, func(t *testing.T) {
			_, err := serve(t, h, bearer(t, tt.uid))
			got := http.StatusOK
			if err != nil {
				got = statusOf(err)
			}
			if got != tt.want {
				t.Errorf("status = %d, want %d (err %v)", got, tt.want, err)
			}
		})
	}
}

func TestRequireAdminSeesDemotionImmediately(t *testing.T) {
	root := &models.User{ID: "root", IsAdmin: true}
	h := Authenticate(NewHMACVerifier(testSecret))(RequireAdmin(stubUsers{"root": root})(ok))

	if _, err := serve(t, h, bearer(t, "root")); err != nil {
		t.Fatalf("admin rejected: %v", err)
	}
	root.IsAdmin = false
	if _, err := serve(t, h, bearer(t, "root")); statusOf(err) != http.StatusForbidden {
		t.Errorf("demoted admin still allowed, err = %v", err)
	}
}

func TestRequireActive(t *testing.T) {
	users := stubUsers{
		"alice": {ID: "alice"},
		"troll": {ID: "troll", IsBanned: true},
	}
	h := Authenticate(NewHMACVerifier(testSecret))(RequireActive(users)(ok))

	if _, err := serve(t, h, bearer(t, "alice")); err != nil {
		t.Errorf("active user rejected: %v", err)
	}
	if _, err := serve(t, h, bearer(t, "troll")); statusOf(err) != http.StatusForbidden {
		t.Errorf("banned user status = %d, want 403", statusOf(err))
	}
	if _, err := serve(t, h, bearer(t, "ghost")); statusOf(err) != http.StatusForbidden {
		t.Errorf("unsynced user status = %d, want 403", statusOf(err))
	}
}

func TestOptionalAuthenticate(t *testing.T) {
	h := OptionalAuthenticate(NewHMACVerifier(testSecret))(ok)

	forged, err := SignToken("other-secret", models.Identity{UID: "mallory"}, time.Hour)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"valid token", bearer(t, "alice"), "alice"},
		{"no header", "", ""},
		{"not bearer", "Basic abc", ""},
		{"forged token", "Bearer " + forged, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := serve(t, h, tt.header)
			if err != nil {
				t.Fatalf("err = %v, want nil", err)
			}
			if rec.Body.String() != tt.want {
				t.Errorf("user id = %q, want %q", rec.Body.String(), tt.want)
			}
		})
	}
}
