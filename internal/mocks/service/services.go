// Package service contains hand-written testify mocks for the domain service
// contracts.
package service

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"fairway/internal/domain/entity"
	domainservice "fairway/internal/domain/service"
)

// MockAuthProvider is a testify mock for service.AuthProvider.
type MockAuthProvider struct {
	mock.Mock
}

func NewMockAuthProvider() *MockAuthProvider {
	return &MockAuthProvider{}
}

func (m *MockAuthProvider) VerifyIDToken(ctx context.Context, idToken string) (*entity.Identity, error) {
	args := m.Called(ctx, idToken)
	identity, _ := args.Get(0).(*entity.Identity)

	return identity, args.Error(1)
}

func (m *MockAuthProvider) GetIdentity(ctx context.Context, uid string) (*entity.Identity, error) {
	args := m.Called(ctx, uid)
	identity, _ := args.Get(0).(*entity.Identity)

	return identity, args.Error(1)
}

func (m *MockAuthProvider) RevokeSessions(ctx context.Context, uid string) error {
	args := m.Called(ctx, uid)

	return args.Error(0)
}

func (m *MockAuthProvider) DeleteIdentity(ctx context.Context, uid string) error {
	args := m.Called(ctx, uid)

	return args.Error(0)
}

// MockPhoneVerifier is a testify mock for service.PhoneVerifier.
type MockPhoneVerifier struct {
	mock.Mock
}

func NewMockPhoneVerifier() *MockPhoneVerifier {
	return &MockPhoneVerifier{}
}

func (m *MockPhoneVerifier) RequestCode(ctx context.Context, phoneNumber, recaptchaToken string) (string, error) {
	args := m.Called(ctx, phoneNumber, recaptchaToken)

	return args.String(0), args.Error(1)
}

func (m *MockPhoneVerifier) ConfirmCode(ctx context.Context, handle, code string) (*entity.Identity, error) {
	args := m.Called(ctx, handle, code)
	identity, _ := args.Get(0).(*entity.Identity)

	return identity, args.Error(1)
}

// MockPhotoStore is a testify mock for service.PhotoStore.
type MockPhotoStore struct {
	mock.Mock
}

func NewMockPhotoStore() *MockPhotoStore {
	return &MockPhotoStore{}
}

func (m *MockPhotoStore) Upload(ctx context.Context, key string, r io.Reader, size int64, progress domainservice.UploadProgress) (string, error) {
	args := m.Called(ctx, key, r, size, progress)

	return args.String(0), args.Error(1)
}

func (m *MockPhotoStore) DeletePrefix(ctx context.Context, prefix string) error {
	args := m.Called(ctx, prefix)

	return args.Error(0)
}

func (m *MockPhotoStore) Close() error {
	args := m.Called()

	return args.Error(0)
}

// MockNotifier is a testify mock for service.Notifier. Publish calls are
// recorded without expectations so tests can assert on them selectively.
type MockNotifier struct {
	mock.Mock
}

func NewMockNotifier() *MockNotifier {
	n := &MockNotifier{}
	n.On("Publish", mock.Anything, mock.Anything, mock.Anything).Maybe()
	n.On("Close").Maybe()

	return n
}

func (m *MockNotifier) Publish(userID string, level entity.NotificationLevel, text string) {
	m.Called(userID, level, text)
}

func (m *MockNotifier) Subscribe(userID string) (<-chan entity.Notification, func()) {
	args := m.Called(userID)
	ch, _ := args.Get(0).(<-chan entity.Notification)
	cancel, _ := args.Get(1).(func())

	return ch, cancel
}

func (m *MockNotifier) Close() {
	m.Called()
}
