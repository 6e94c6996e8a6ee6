// Package firebase verifies Firebase ID tokens, the identity provider behind
// user accounts.
package firebase

import (
	"context"
	"fmt"
	"log"
	"os"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"github.com/anonto42/pixgram/backend/internal/models"
	"google.golang.org/api/option"
)

// App wraps the Firebase auth client. It satisfies middleware.TokenVerifier.
type App struct {
	authClient *auth.Client
}

// InitFirebase initializes the Firebase application from a service account file
func InitFirebase(ctx context.Context, credentialsPath string) (*App, error) {
	if _, err := os.Stat(credentialsPath); err != nil {
		return nil, fmt.Errorf("firebase credentials file not readable at %s: %w", credentialsPath, err)
	}

	firebaseApp, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credentialsPath))
	if err != nil {
		return nil, fmt.Errorf("error initializing firebase app: %w", err)
	}

	authClient, err := firebaseApp.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting firebase auth client: %w", err)
	}

	log.Println("Firebase auth client initialized successfully!")
	return &App{authClient: authClient}, nil
}

// Verify checks an ID token's signature and expiry against Firebase and
// returns who it belongs to.
func (a *App) Verify(ctx context.Context, idToken string) (*models.Identity, error) {
	token, err := a.authClient.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, err
	}
	return identityFromToken(token), nil
}

func identityFromToken(token *auth.Token) *models.Identity {
	identity := &models.Identity{UID: token.UID}
	if email, ok := token.Claims["email"].(string); ok {
		identity.Email = email
	}
	if name, ok := token.Claims["name"].(string); ok {
		identity.DisplayName = name
	}
	if picture, ok := token.Claims["picture"].(string); ok {
		identity.AvatarURL = picture
	}
	return identity
}
