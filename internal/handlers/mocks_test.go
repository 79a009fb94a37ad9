package handlers_test

import (
	"context"

	"github.com/SscSPs/citizen_accounts/internal/core/domain"
	portssvc "github.com/SscSPs/citizen_accounts/internal/core/ports/services"
	"github.com/SscSPs/citizen_accounts/internal/dto"
	"github.com/stretchr/testify/mock"
	"golang.org/x/oauth2"
	"google.golang.org/api/idtoken"
)

// --- Mock CredentialVerifier ---
type MockCredentialService struct {
	mock.Mock
}

func (m *MockCredentialService) Verify(ctx context.Context, email, password string) (*domain.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// --- Mock SessionService ---
type MockSessionService struct {
	mock.Mock
}

func (m *MockSessionService) ToPrincipal(user *domain.User) string {
	return user.UserID
}

func (m *MockSessionService) FromPrincipal(ctx context.Context, principalID string) (*domain.User, error) {
	args := m.Called(ctx, principalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// --- Mock UserService ---
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, allowPassword bool) (*domain.User, error) {
	args := m.Called(ctx, userID, req, allowPassword)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) VerifyEmail(ctx context.Context, code string) (*domain.User, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// --- Mock ConsentLedger ---
type MockConsentService struct {
	mock.Mock
}

func (m *MockConsentService) Grant(ctx context.Context, userID, partnerID string) (domain.GrantResult, error) {
	args := m.Called(ctx, userID, partnerID)
	return args.Get(0).(domain.GrantResult), args.Error(1)
}

func (m *MockConsentService) Revoke(ctx context.Context, userID, partnerID string) error {
	args := m.Called(ctx, userID, partnerID)
	return args.Error(0)
}

func (m *MockConsentService) List(ctx context.Context, userID string) ([]domain.ConsentListItem, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ConsentListItem), args.Error(1)
}

// --- Mock IdentityResolver ---
type MockIdentityService struct {
	mock.Mock
}

func (m *MockIdentityService) Resolve(ctx context.Context, in domain.ResolverInput) (*domain.Resolution, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Resolution), args.Error(1)
}

// --- Mock Facebook OAuth client ---
type MockFacebookOAuth struct {
	mock.Mock
}

func (m *MockFacebookOAuth) GenerateStateString(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockFacebookOAuth) GetLoginURL(ctx context.Context, state string) string {
	args := m.Called(ctx, state)
	return args.String(0)
}

func (m *MockFacebookOAuth) ExchangeCodeForToken(ctx context.Context, code string) (*oauth2.Token, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*oauth2.Token), args.Error(1)
}

func (m *MockFacebookOAuth) GetUserInfo(ctx context.Context, token *oauth2.Token) (*domain.FacebookUserInfo, []byte, error) {
	args := m.Called(ctx, token)
	var info *domain.FacebookUserInfo
	if args.Get(0) != nil {
		info = args.Get(0).(*domain.FacebookUserInfo)
	}
	var raw []byte
	if args.Get(1) != nil {
		raw = args.Get(1).([]byte)
	}
	return info, raw, args.Error(2)
}

// --- Mock Google OAuth client ---
type MockGoogleOAuth struct {
	MockFacebookOAuth
}

func (m *MockGoogleOAuth) GetUserInfo(ctx context.Context, token *oauth2.Token) (*domain.GoogleUserInfo, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GoogleUserInfo), args.Error(1)
}

func (m *MockGoogleOAuth) ValidateGoogleIDToken(ctx context.Context, idTokenString string) (*idtoken.Payload, error) {
	args := m.Called(ctx, idTokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*idtoken.Payload), args.Error(1)
}

// Ensure mocks implement the interfaces
var (
	_ portssvc.CredentialVerifierSvc         = (*MockCredentialService)(nil)
	_ portssvc.SessionSvc                    = (*MockSessionService)(nil)
	_ portssvc.UserSvcFacade                 = (*MockUserService)(nil)
	_ portssvc.ConsentLedgerSvc              = (*MockConsentService)(nil)
	_ portssvc.IdentityResolverSvc           = (*MockIdentityService)(nil)
	_ portssvc.FacebookOAuthHandlerSvcFacade = (*MockFacebookOAuth)(nil)
	_ portssvc.GoogleOAuthHandlerSvcFacade   = (*MockGoogleOAuth)(nil)
)
