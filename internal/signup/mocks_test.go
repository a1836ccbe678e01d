package signup

import (
	"context"

	"studybuddy_backend/internal/notification"
	"studybuddy_backend/internal/profile"
	"studybuddy_backend/internal/shared"

	"github.com/stretchr/testify/mock"
)

type MockIdentityProvider struct {
	mock.Mock
}

func (m *MockIdentityProvider) CreateAccount(ctx context.Context, email, password string) (*shared.Credential, error) {
	args := m.Called(ctx, email, password)
	if cred := args.Get(0); cred != nil {
		return cred.(*shared.Credential), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockIdentityProvider) SetDisplayName(ctx context.Context, cred *shared.Credential, name string) error {
	args := m.Called(ctx, cred, name)
	return args.Error(0)
}

type MockProfileStore struct {
	mock.Mock
}

func (m *MockProfileStore) WriteProfile(ctx context.Context, uid string, doc profile.Document) error {
	args := m.Called(ctx, uid, doc)
	return args.Error(0)
}

func (m *MockProfileStore) ReadProfile(ctx context.Context, uid string) (*profile.Document, error) {
	args := m.Called(ctx, uid)
	if doc := args.Get(0); doc != nil {
		return doc.(*profile.Document), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockGapRepository struct {
	mock.Mock
}

func (m *MockGapRepository) Record(ctx context.Context, gap *profile.Gap) error {
	args := m.Called(ctx, gap)
	return args.Error(0)
}

func (m *MockGapRepository) CountOpen(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockGapRepository) ListOpen(ctx context.Context, limit int) ([]profile.Gap, error) {
	args := m.Called(ctx, limit)
	if gaps := args.Get(0); gaps != nil {
		return gaps.([]profile.Gap), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockPaymentAuthorizer struct {
	mock.Mock
}

func (m *MockPaymentAuthorizer) Authorize(ctx context.Context, req PaymentRequest) (*Authorization, error) {
	args := m.Called(ctx, req)
	if auth := args.Get(0); auth != nil {
		return auth.(*Authorization), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPaymentAuthorizer) Void(ctx context.Context, auth *Authorization) error {
	args := m.Called(ctx, auth)
	return args.Error(0)
}

type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) SendWelcome(ctx context.Context, w notification.Welcome) error {
	args := m.Called(ctx, w)
	return args.Error(0)
}
