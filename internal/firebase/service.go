package firebase

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"studybuddy_backend/internal/config"
	"studybuddy_backend/internal/profile"
	"studybuddy_backend/internal/shared"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"go.uber.org/zap"
	"google.golang.org/api/identitytoolkit/v3"
	"google.golang.org/api/option"
)

// FirebaseService is the hosted identity provider and document store adapter.
type FirebaseService struct {
	app        *firebase.App
	authClient *auth.Client
	signIn     *identitytoolkit.Service
	logger     *zap.Logger

	firestoreOnce   sync.Once
	firestoreClient *firestore.Client
	firestoreErr    error
}

var (
	_ shared.IdentityProvider   = (*FirebaseService)(nil)
	_ shared.Authenticator      = (*FirebaseService)(nil)
	_ profile.FirestoreProvider = (*FirebaseService)(nil)
)

// NewFirebaseService initializes the Firebase Admin SDK from the service account file.
func NewFirebaseService(cfg *config.Config, logger *zap.Logger) (*FirebaseService, error) {
	logger = logger.Named("FirebaseService")
	if cfg.FirebaseServiceAccountKeyPath == "" {
		logger.Error("Firebase service account key path is not configured.")
		return nil, fmt.Errorf("firebase service account key path is required")
	}

	cleanPath := filepath.Clean(cfg.FirebaseServiceAccountKeyPath)
	opt := option.WithCredentialsFile(cleanPath)

	var conf *firebase.Config
	if cfg.FirebaseProjectID != "" {
		conf = &firebase.Config{ProjectID: cfg.FirebaseProjectID}
	}
	app, err := firebase.NewApp(context.Background(), conf, opt)
	if err != nil {
		logger.Error("Failed to initialize Firebase Admin SDK app", zap.Error(err), zap.String("keyPath", cleanPath))
		return nil, fmt.Errorf("error initializing Firebase app: %w", err)
	}

	authClient, err := app.Auth(context.Background())
	if err != nil {
		logger.Error("Failed to get Firebase Auth client", zap.Error(err))
		return nil, fmt.Errorf("error getting Firebase Auth client: %w", err)
	}

	s := &FirebaseService{app: app, authClient: authClient, logger: logger}

	if cfg.FirebaseWebAPIKey != "" {
		s.signIn, err = identitytoolkit.NewService(context.Background(), option.WithAPIKey(cfg.FirebaseWebAPIKey))
		if err != nil {
			return nil, fmt.Errorf("error creating Identity Toolkit client: %w", err)
		}
	} else {
		logger.Warn("FIREBASE_WEB_API_KEY not set; password sign-in is disabled")
	}

	logger.Info("Firebase Admin SDK initialized successfully.")
	return s, nil
}

// Firestore returns the shared Firestore client, creating it on first use.
func (s *FirebaseService) Firestore(ctx context.Context) (*firestore.Client, error) {
	s.firestoreOnce.Do(func() {
		s.firestoreClient, s.firestoreErr = s.app.Firestore(ctx)
		if s.firestoreErr != nil {
			s.logger.Error("Failed to get Firestore client", zap.Error(s.firestoreErr))
		}
	})
	return s.firestoreClient, s.firestoreErr
}

// Close releases the Firestore client if one was created.
func (s *FirebaseService) Close() {
	if s.firestoreClient == nil {
		return
	}
	if err := s.firestoreClient.Close(); err != nil {
		s.logger.Error("Error closing Firestore client", zap.Error(err))
	}
}

// CreateAccount creates an email/password user.
func (s *FirebaseService) CreateAccount(ctx context.Context, email, password string) (*shared.Credential, error) {
	params := (&auth.UserToCreate{}).Email(email).Password(password)
	rec, err := s.authClient.CreateUser(ctx, params)
	if err != nil {
		return nil, &shared.ProviderError{Code: createUserCode(err), Err: err}
	}
	s.logger.Info("Firebase user created", zap.String("uid", rec.UID))
	return &shared.Credential{UID: rec.UID, Email: rec.Email}, nil
}

// SetDisplayName updates the user's display name.
func (s *FirebaseService) SetDisplayName(ctx context.Context, cred *shared.Credential, name string) error {
	if _, err := s.authClient.UpdateUser(ctx, cred.UID, (&auth.UserToUpdate{}).DisplayName(name)); err != nil {
		return &shared.ProviderError{Code: createUserCode(err), Err: err}
	}
	return nil
}

// SignIn exchanges email and password for an ID token.
func (s *FirebaseService) SignIn(ctx context.Context, email, password string) (*shared.Session, error) {
	if s.signIn == nil {
		return nil, &shared.ProviderError{Code: shared.CodeInvalidAPIKey, Err: errors.New("web API key not configured")}
	}
	resp, err := s.signIn.Relyingparty.VerifyPassword(&identitytoolkit.IdentitytoolkitRelyingpartyVerifyPasswordRequest{
		Email:             email,
		Password:          password,
		ReturnSecureToken: true,
	}).Context(ctx).Do()
	if err != nil {
		code := signInCode(err)
		s.logger.Info("Password sign-in failed", zap.String("providerCode", code))
		return nil, &shared.ProviderError{Code: code, Err: err}
	}
	return &shared.Session{
		UID:          resp.LocalId,
		Email:        resp.Email,
		IDToken:      resp.IdToken,
		RefreshToken: resp.RefreshToken,
		ExpiresAt:    time.Now().Add(time.Duration(resp.ExpiresIn) * time.Second),
	}, nil
}

// SignOut revokes all refresh tokens for uid.
func (s *FirebaseService) SignOut(ctx context.Context, uid string) error {
	if err := s.authClient.RevokeRefreshTokens(ctx, uid); err != nil {
		s.logger.Error("Failed to revoke refresh tokens", zap.Error(err), zap.String("uid", uid))
		return fmt.Errorf("failed to revoke refresh tokens: %w", err)
	}
	s.logger.Info("Successfully revoked refresh tokens for user", zap.String("uid", uid))
	return nil
}

// VerifySession verifies a Firebase ID token.
func (s *FirebaseService) VerifySession(ctx context.Context, idToken string) (*shared.Session, error) {
	if idToken == "" {
		return nil, fmt.Errorf("ID token must not be empty")
	}
	token, err := s.authClient.VerifyIDToken(ctx, idToken)
	if err != nil {
		s.logger.Warn("Firebase ID token verification failed", zap.Error(err))
		return nil, fmt.Errorf("failed to verify Firebase ID token: %w", err)
	}
	return sessionFromToken(token, idToken), nil
}

func sessionFromToken(token *auth.Token, idToken string) *shared.Session {
	email, _ := token.Claims["email"].(string)
	return &shared.Session{
		UID:       token.UID,
		Email:     strings.ToLower(email),
		IDToken:   idToken,
		ExpiresAt: time.Unix(token.Expires, 0),
	}
}
