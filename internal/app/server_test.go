package app

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"studybuddy_backend/internal/auth"
	"studybuddy_backend/internal/config"
	"studybuddy_backend/internal/dashboard"
	"studybuddy_backend/internal/jobs"
	"studybuddy_backend/internal/notification"
	"studybuddy_backend/internal/profile"
	"studybuddy_backend/internal/shared"
	"studybuddy_backend/internal/signup"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type stubAuthenticator struct{}

func (stubAuthenticator) SignIn(ctx context.Context, email, password string) (*shared.Session, error) {
	return nil, errors.New("not used")
}

func (stubAuthenticator) SignOut(ctx context.Context, uid string) error { return nil }

func (stubAuthenticator) VerifySession(ctx context.Context, idToken string) (*shared.Session, error) {
	if idToken == "valid" {
		return &shared.Session{UID: "uid-1", Email: "kari@example.com", IDToken: idToken, ExpiresAt: time.Now().Add(time.Hour)}, nil
	}
	return nil, errors.New("invalid token")
}

func (stubAuthenticator) CreateAccount(ctx context.Context, email, password string) (*shared.Credential, error) {
	return &shared.Credential{UID: "uid-new", Email: email}, nil
}

func (stubAuthenticator) SetDisplayName(ctx context.Context, cred *shared.Credential, name string) error {
	return nil
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	cfg := &config.Config{GinMode: "test", ServerHost: "127.0.0.1", ServerPort: "0", SignupFlowTTL: time.Minute}
	logger := zap.NewNop()

	db, err := gorm.Open(sqlite.Open("file:appserver?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	profiles, err := profile.NewGORMStore(db)
	require.NoError(t, err)
	gaps, err := profile.NewGORMGapRepository(db)
	require.NoError(t, err)

	authn := stubAuthenticator{}
	blocklist := auth.NewInMemoryBlocklistService()
	controller := signup.NewController(signup.NewCacheStore(cfg), authn, profiles, gaps,
		signup.NewSimulatedAuthorizer(logger), notification.NewMailer(cfg, logger), logger)

	srv, err := NewServer(cfg, logger,
		signup.NewHandler(controller, logger),
		auth.NewHandler(auth.NewService(authn, blocklist, logger), logger),
		dashboard.NewHandler(profiles, logger),
		jobs.NewReconciliationReportJob(gaps, logger, cfg),
		authn, blocklist,
	)
	require.NoError(t, err)
	return srv
}

func request(srv *Server, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)
	return w
}

func TestServer_Routes(t *testing.T) {
	srv := newTestServer(t)

	assert.Equal(t, http.StatusOK, request(srv, http.MethodGet, "/health", "").Code)
	assert.Equal(t, http.StatusOK, request(srv, http.MethodGet, "/api/v1/plans", "").Code)
	assert.Equal(t, http.StatusCreated, request(srv, http.MethodPost, "/api/v1/signup", "").Code)
	assert.Equal(t, http.StatusNotFound, request(srv, http.MethodGet, "/api/v1/nope", "").Code)
	assert.Equal(t, http.StatusMethodNotAllowed, request(srv, http.MethodDelete, "/api/v1/plans", "").Code)
}

func TestServer_DashboardRequiresSession(t *testing.T) {
	srv := newTestServer(t)

	assert.Equal(t, http.StatusUnauthorized, request(srv, http.MethodGet, "/api/v1/dashboard", "").Code)
	assert.Equal(t, http.StatusUnauthorized, request(srv, http.MethodGet, "/api/v1/dashboard", "expired").Code)

	w := request(srv, http.MethodGet, "/api/v1/dashboard", "valid")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"initial":"K"`)
	assert.Contains(t, w.Body.String(), `"name":"kari"`)
}

func TestServer_LogoutBlocksToken(t *testing.T) {
	srv := newTestServer(t)

	assert.Equal(t, http.StatusOK, request(srv, http.MethodPost, "/api/v1/auth/logout", "valid").Code)
	assert.Equal(t, http.StatusUnauthorized, request(srv, http.MethodGet, "/api/v1/dashboard", "valid").Code)
}
