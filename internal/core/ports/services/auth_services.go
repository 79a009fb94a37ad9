package services

import (
	"context"
	"time"

	"github.com/SscSPs/citizen_accounts/internal/core/domain"
	"golang.org/x/oauth2"
	"google.golang.org/api/idtoken"
)

// CredentialVerifierSvc authenticates local email/password logins.
type CredentialVerifierSvc interface {
	// Verify checks the credentials in order: email syntax, account existence,
	// verification state, password. It never modifies the user.
	Verify(ctx context.Context, email, password string) (*domain.User, error)
}

// SessionSvc maps users to the principal carried in session tokens and back.
type SessionSvc interface {
	ToPrincipal(user *domain.User) string
	FromPrincipal(ctx context.Context, principalID string) (*domain.User, error)
}

// TokenSvcFacade defines the interface for token management services.
type TokenSvcFacade interface {
	GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error)
}

// OAuthLoginSvc is the part of a provider client the handlers share.
type OAuthLoginSvc interface {
	// GenerateStateString creates a secure random string to be used as a CSRF token for OAuth flow.
	GenerateStateString(ctx context.Context) (string, error)
	// GetLoginURL returns the URL to redirect the user to for provider login.
	GetLoginURL(ctx context.Context, state string) string
	// ExchangeCodeForToken exchanges an OAuth authorization code for a token.
	ExchangeCodeForToken(ctx context.Context, code string) (*oauth2.Token, error)
}

// GoogleOAuthHandlerSvcFacade defines the interface for Google OAuth operations.
type GoogleOAuthHandlerSvcFacade interface {
	OAuthLoginSvc
	// GetUserInfo uses the access token to get user information from Google.
	GetUserInfo(ctx context.Context, token *oauth2.Token) (*domain.GoogleUserInfo, error)
	// ValidateGoogleIDToken validates an ID token string from Google and returns its payload.
	ValidateGoogleIDToken(ctx context.Context, idTokenString string) (*idtoken.Payload, error)
}

// FacebookOAuthHandlerSvcFacade defines the interface for Facebook OAuth operations.
type FacebookOAuthHandlerSvcFacade interface {
	OAuthLoginSvc
	// GetUserInfo reads the user's profile from the Graph API. raw is the
	// unmodified response body.
	GetUserInfo(ctx context.Context, token *oauth2.Token) (info *domain.FacebookUserInfo, raw []byte, err error)
}
