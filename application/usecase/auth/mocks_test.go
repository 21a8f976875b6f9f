package auth

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/vobe/staff-auth-service/application/port/outbound"
	"github.com/vobe/staff-auth-service/domain/event"
	"github.com/vobe/staff-auth-service/domain/valueobject"
)

type MockPasswordService struct {
	mock.Mock
}

func (m *MockPasswordService) HashPassword(password string) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}

func (m *MockPasswordService) VerifyPassword(password, hash string) (bool, error) {
	args := m.Called(password, hash)
	return args.Bool(0), args.Error(1)
}

type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) GenerateToken(claims outbound.TokenClaims) (*valueobject.AccessToken, error) {
	args := m.Called(claims)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*valueobject.AccessToken), args.Error(1)
}

func (m *MockTokenService) ValidateToken(token string) (*outbound.TokenClaims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*outbound.TokenClaims), args.Error(1)
}

type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, message event.Message, queue string) error {
	args := m.Called(ctx, message, queue)
	return args.Error(0)
}

type MockRateLimitService struct {
	mock.Mock
}

func (m *MockRateLimitService) CheckLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	args := m.Called(ctx, key, limit, window)
	return args.Bool(0), args.Error(1)
}

func (m *MockRateLimitService) Increment(ctx context.Context, key string, window time.Duration) error {
	return m.Called(ctx, key, window).Error(0)
}

func (m *MockRateLimitService) Block(ctx context.Context, key string, duration time.Duration, reason string) error {
	return m.Called(ctx, key, duration, reason).Error(0)
}

func (m *MockRateLimitService) IsBlocked(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *MockRateLimitService) GetAttempts(ctx context.Context, key string) (int, error) {
	args := m.Called(ctx, key)
	return args.Int(0), args.Error(1)
}
