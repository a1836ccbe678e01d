// File: internal/auth/service.go
package auth

import (
	"context"
	"net/http"
	"strings"
	"unicode/utf8"

	"studybuddy_backend/internal/common"
	"studybuddy_backend/internal/shared"
	"studybuddy_backend/internal/signup"

	"go.uber.org/zap"
)

// Login screen messages.
const (
	MsgInvalidEmail       = "Skriv inn en gyldig e-postadresse."
	MsgPasswordTooShort   = "Passord må være minst 6 tegn."
	MsgInvalidCredentials = "Feil brukernavn eller passord."
)

// ErrInvalidCredentials is returned for every provider failure so the response
// does not reveal whether the account exists.
var ErrInvalidCredentials = common.NewAPIError(http.StatusUnauthorized, "INVALID_CREDENTIALS", MsgInvalidCredentials)

// Service signs users in and out.
type Service interface {
	Login(ctx context.Context, email, password string) (*shared.Session, error)
	Logout(ctx context.Context, session *shared.Session)
}

type service struct {
	authenticator shared.Authenticator
	blocklist     TokenBlocklistService
	logger        *zap.Logger
}

// NewService creates the login/logout service.
func NewService(authenticator shared.Authenticator, blocklist TokenBlocklistService, logger *zap.Logger) Service {
	return &service{
		authenticator: authenticator,
		blocklist:     blocklist,
		logger:        logger.Named("AuthService"),
	}
}

func validationError(field, message string) *common.APIError {
	return common.NewValidationAPIError(map[string]string{"field": field}).WithMessage(message)
}

func (s *service) Login(ctx context.Context, email, password string) (*shared.Session, error) {
	if !signup.IsValidEmail(email) {
		return nil, validationError(signup.FieldEmail, MsgInvalidEmail)
	}
	if utf8.RuneCountInString(password) < signup.MinPasswordLength {
		return nil, validationError(signup.FieldPassword, MsgPasswordTooShort)
	}

	session, err := s.authenticator.SignIn(ctx, strings.TrimSpace(email), password)
	if err != nil {
		s.logger.Info("Login failed", zap.String("providerCode", signup.ProviderCode(err)), zap.Error(err))
		return nil, ErrInvalidCredentials
	}
	s.logger.Info("User logged in", zap.String("uid", session.UID))
	return session, nil
}

// Logout is best effort: failures are logged and the caller always proceeds.
func (s *service) Logout(ctx context.Context, session *shared.Session) {
	if session == nil {
		return
	}
	if err := s.authenticator.SignOut(ctx, session.UID); err != nil {
		s.logger.Warn("Sign-out at provider failed", zap.String("uid", session.UID), zap.Error(err))
	}
	if session.IDToken != "" {
		if err := s.blocklist.AddToBlocklist(ctx, session.IDToken, session.ExpiresAt); err != nil {
			s.logger.Warn("Failed to blocklist ID token", zap.String("uid", session.UID), zap.Error(err))
		}
	}
	s.logger.Info("User logged out", zap.String("uid", session.UID))
}
