package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"studybuddy_backend/internal/common"
	"studybuddy_backend/internal/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockAuthenticator struct {
	mock.Mock
}

func (m *MockAuthenticator) SignIn(ctx context.Context, email, password string) (*shared.Session, error) {
	args := m.Called(ctx, email, password)
	if s := args.Get(0); s != nil {
		return s.(*shared.Session), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAuthenticator) SignOut(ctx context.Context, uid string) error {
	return m.Called(ctx, uid).Error(0)
}

func (m *MockAuthenticator) VerifySession(ctx context.Context, idToken string) (*shared.Session, error) {
	args := m.Called(ctx, idToken)
	if s := args.Get(0); s != nil {
		return s.(*shared.Session), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestLogin_Validation(t *testing.T) {
	authn := new(MockAuthenticator)
	svc := NewService(authn, NewInMemoryBlocklistService(), zap.NewNop())

	_, err := svc.Login(context.Background(), "not-an-email", "abcdef")
	apiErr, ok := common.IsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, MsgInvalidEmail, apiErr.Message)

	_, err = svc.Login(context.Background(), "a@b.co", "abc")
	apiErr, ok = common.IsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, MsgPasswordTooShort, apiErr.Message)

	authn.AssertNotCalled(t, "SignIn", mock.Anything, mock.Anything, mock.Anything)
}

func TestLogin_ProviderFailureIsUniform(t *testing.T) {
	authn := new(MockAuthenticator)
	authn.On("SignIn", mock.Anything, "a@b.co", "abcdef").
		Return(nil, &shared.ProviderError{Code: shared.CodeInvalidCredential}).Once()
	svc := NewService(authn, NewInMemoryBlocklistService(), zap.NewNop())

	_, err := svc.Login(context.Background(), "a@b.co", "abcdef")
	assert.True(t, errors.Is(err, ErrInvalidCredentials))
	apiErr, _ := common.IsAPIError(err)
	assert.Equal(t, MsgInvalidCredentials, apiErr.Message)
	authn.AssertExpectations(t)
}

func TestLogin_Success(t *testing.T) {
	authn := new(MockAuthenticator)
	session := &shared.Session{UID: "uid-1", Email: "a@b.co", IDToken: "tok"}
	authn.On("SignIn", mock.Anything, "a@b.co", "abcdef").Return(session, nil).Once()
	svc := NewService(authn, NewInMemoryBlocklistService(), zap.NewNop())

	got, err := svc.Login(context.Background(), "a@b.co", "abcdef")
	require.NoError(t, err)
	assert.Same(t, session, got)
	authn.AssertExpectations(t)
}

func TestLogout_BestEffortAndBlocklists(t *testing.T) {
	authn := new(MockAuthenticator)
	authn.On("SignOut", mock.Anything, "uid-1").Return(errors.New("unavailable")).Once()
	blocklist := NewInMemoryBlocklistService()
	svc := NewService(authn, blocklist, zap.NewNop())

	svc.Logout(context.Background(), &shared.Session{UID: "uid-1", IDToken: "tok", ExpiresAt: time.Now().Add(time.Hour)})

	blocked, err := blocklist.IsBlocklisted(context.Background(), "tok")
	require.NoError(t, err)
	assert.True(t, blocked)
	authn.AssertExpectations(t)

	svc.Logout(context.Background(), nil)
}

func TestBlocklist_IgnoresExpiredTokens(t *testing.T) {
	b := NewInMemoryBlocklistService()
	require.NoError(t, b.AddToBlocklist(context.Background(), "old", time.Now().Add(-time.Minute)))

	blocked, err := b.IsBlocklisted(context.Background(), "old")
	require.NoError(t, err)
	assert.False(t, blocked)
}
