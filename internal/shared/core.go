package shared

import (
	"context"
	"fmt"
	"time"
)

// Credential identifies an account just created at the identity provider.
type Credential struct {
	UID   string
	Email string
}

// Session is an authenticated user session. It is passed explicitly on the
// request context; nothing in the process holds a "current user".
type Session struct {
	UID          string    `json:"uid"`
	Email        string    `json:"email"`
	IDToken      string    `json:"id_token,omitempty"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	ExpiresAt    time.Time `json:"expires_at,omitempty"`
}

// IdentityProvider creates credentials at the hosted identity service.
type IdentityProvider interface {
	CreateAccount(ctx context.Context, email, password string) (*Credential, error)
	SetDisplayName(ctx context.Context, cred *Credential, name string) error
}

// Authenticator signs users in and out and verifies their sessions.
type Authenticator interface {
	SignIn(ctx context.Context, email, password string) (*Session, error)
	SignOut(ctx context.Context, uid string) error
	VerifySession(ctx context.Context, idToken string) (*Session, error)
}

// Provider codes reported by the identity adapter.
const (
	CodeEmailInUse          = "auth/email-already-in-use"
	CodeInvalidEmail        = "auth/invalid-email"
	CodeWeakPassword        = "auth/weak-password"
	CodeOperationNotAllowed = "auth/operation-not-allowed"
	CodeNetworkFailed       = "auth/network-request-failed"
	CodeInvalidAPIKey       = "auth/invalid-api-key"
	CodeInvalidCredential   = "auth/invalid-credential"
	CodeUserDisabled        = "auth/user-disabled"
	CodeTooManyRequests     = "auth/too-many-requests"
	CodeInternal            = "auth/internal-error"
)

// ProviderError carries the provider's error code (for example
// "auth/email-already-in-use") next to the underlying SDK error.
type ProviderError struct {
	Code string
	Err  error
}

func (e *ProviderError) Error() string {
	if e.Err == nil {
		return e.Code
	}
	return fmt.Sprintf("%s: %v", e.Code, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

type sessionKey struct{}

// WithSession returns a copy of ctx carrying s.
func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// SessionFromContext returns the session stored by WithSession, if any.
func SessionFromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(*Session)
	return s, ok && s != nil
}
