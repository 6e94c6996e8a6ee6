package middleware

import (
	"context"
	"errors"
	"time"

	"github.com/anonto42/pixgram/backend/internal/models"
	"github.com/golang-jwt/jwt/v4"
)

var errMissingSubject = errors.New("token has no subject")

// HMACVerifier validates locally signed HS256 tokens. It backs
// AUTH_PROVIDER=jwt, used for development and tests.
type HMACVerifier struct {
	secret []byte
}

func NewHMACVerifier(secret string) *HMACVerifier {
	return &HMACVerifier{secret: []byte(secret)}
}

// Verify parses the token and maps its claims onto an Identity. The subject
// is the user's UID.
func (v *HMACVerifier) Verify(_ context.Context, tokenString string) (*models.Identity, error) {
	claims := &models.JwtCustomClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return v.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrSignatureInvalid
	}
	if claims.Subject == "" {
		return nil, errMissingSubject
	}

	return &models.Identity{
		UID:         claims.Subject,
		Email:       claims.Email,
		DisplayName: claims.Name,
		AvatarURL:   claims.Picture,
	}, nil
}

// SignToken issues a token HMACVerifier accepts for the given identity.
func SignToken(secret string, identity models.Identity, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &models.JwtCustomClaims{
		Email:   identity.Email,
		Name:    identity.DisplayName,
		Picture: identity.AvatarURL,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.UID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}
