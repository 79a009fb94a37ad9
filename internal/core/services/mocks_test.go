package services_test

import (
	"context"

	"github.com/SscSPs/citizen_accounts/internal/core/domain"
	"github.com/stretchr/testify/mock"
)

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByVerificationCode(ctx context.Context, code string) (*domain.User, error) {
	args := m.Called(ctx, code)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindOrCreateUserByEmail(ctx context.Context, defaults domain.User) (*domain.User, bool, error) {
	args := m.Called(ctx, defaults)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Bool(1), args.Error(2)
}

func (m *MockUserRepository) UpdateUserProfile(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateUserImage(ctx context.Context, userID string, imageURL string) error {
	args := m.Called(ctx, userID, imageURL)
	return args.Error(0)
}

func (m *MockUserRepository) MarkEmailVerified(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// --- Mock VerificationMailer ---
type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) SendVerification(ctx context.Context, email, verificationCode string) error {
	args := m.Called(ctx, email, verificationCode)
	return args.Error(0)
}
