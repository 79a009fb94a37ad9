package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/SscSPs/citizen_accounts/internal/core/domain"
	portssvc "github.com/SscSPs/citizen_accounts/internal/core/ports/services"
	"github.com/SscSPs/citizen_accounts/internal/platform/config"
	"github.com/SscSPs/citizen_accounts/internal/utils"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/facebook"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/idtoken"
)

const (
	googleUserInfoURL  = "https://www.googleapis.com/oauth2/v2/userinfo"
	facebookProfileURL = "https://graph.facebook.com/me"
)

// oauthClient holds what the provider services share.
type oauthClient struct {
	provider     string
	oauth2Config *oauth2.Config
}

// GenerateStateString creates a secure random string to be used as a CSRF token for OAuth flow.
func (s *oauthClient) GenerateStateString(ctx context.Context) (string, error) {
	state, err := utils.GenerateSecureRandomString(16)
	if err != nil {
		return "", fmt.Errorf("failed to generate state string for OAuth: %w", err)
	}
	return state, nil
}

func (s *oauthClient) GetLoginURL(ctx context.Context, state string) string {
	return s.oauth2Config.AuthCodeURL(state)
}

// ExchangeCodeForToken exchanges an OAuth authorization code for a token.
func (s *oauthClient) ExchangeCodeForToken(ctx context.Context, code string) (*oauth2.Token, error) {
	token, err := s.oauth2Config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange %s oauth code for token: %w", s.provider, err)
	}
	return token, nil
}

// getJSON GETs rawURL with the token and returns the body of a 200 response.
func (s *oauthClient) getJSON(ctx context.Context, token *oauth2.Token, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.oauth2Config.Client(ctx, token).Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to get user info from %s: %w", s.provider, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s api returned non-200 status for user info: %s", s.provider, resp.Status)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read user info from %s: %w", s.provider, err)
	}
	return body, nil
}

// --- GoogleOAuthHandlerSvcFacade Implementation ---

type googleOAuthHandlerService struct {
	oauthClient
	cfg *config.Config
}

// NewGoogleOAuthHandlerService creates a new instance of googleOAuthHandlerService.
func NewGoogleOAuthHandlerService(cfg *config.Config) portssvc.GoogleOAuthHandlerSvcFacade {
	return &googleOAuthHandlerService{
		cfg: cfg,
		oauthClient: oauthClient{
			provider: string(domain.ConnectionGoogle),
			oauth2Config: &oauth2.Config{
				ClientID:     cfg.GoogleClientID,
				ClientSecret: cfg.GoogleClientSecret,
				RedirectURL:  cfg.GoogleRedirectURL,
				Scopes:       []string{"https://www.googleapis.com/auth/userinfo.email", "https://www.googleapis.com/auth/userinfo.profile"},
				Endpoint:     google.Endpoint,
			},
		},
	}
}

// GetUserInfo uses the access token to get user information from Google.
func (s *googleOAuthHandlerService) GetUserInfo(ctx context.Context, token *oauth2.Token) (*domain.GoogleUserInfo, error) {
	body, err := s.getJSON(ctx, token, googleUserInfoURL)
	if err != nil {
		return nil, err
	}
	var userInfo domain.GoogleUserInfo
	if err := json.Unmarshal(body, &userInfo); err != nil {
		return nil, fmt.Errorf("failed to decode user info from google: %w", err)
	}
	return &userInfo, nil
}

// ValidateGoogleIDToken validates an ID token received from Google and returns the payload if valid.
func (s *googleOAuthHandlerService) ValidateGoogleIDToken(ctx context.Context, idTokenString string) (*idtoken.Payload, error) {
	if s.cfg.GoogleClientID == "" {
		return nil, errors.New("google client ID is not configured in the application")
	}

	payload, err := idtoken.Validate(ctx, idTokenString, s.cfg.GoogleClientID)
	if err != nil {
		return nil, fmt.Errorf("google ID token validation failed: %w", err)
	}
	return payload, nil
}

// --- FacebookOAuthHandlerSvcFacade Implementation ---

type facebookOAuthHandlerService struct {
	oauthClient
	profileURL string
}

// NewFacebookOAuthHandlerService creates the Facebook login client.
func NewFacebookOAuthHandlerService(cfg *config.Config) portssvc.FacebookOAuthHandlerSvcFacade {
	return &facebookOAuthHandlerService{
		oauthClient: oauthClient{
			provider: string(domain.ConnectionFacebook),
			oauth2Config: &oauth2.Config{
				ClientID:     cfg.FacebookClientID,
				ClientSecret: cfg.FacebookClientSecret,
				RedirectURL:  cfg.FacebookRedirectURL,
				Scopes:       []string{"email", "public_profile"},
				Endpoint:     facebook.Endpoint,
			},
		},
		profileURL: facebookProfileURL,
	}
}

func (s *facebookOAuthHandlerService) GetUserInfo(ctx context.Context, token *oauth2.Token) (*domain.FacebookUserInfo, []byte, error) {
	q := url.Values{"fields": {"id,name,email,link"}}
	body, err := s.getJSON(ctx, token, s.profileURL+"?"+q.Encode())
	if err != nil {
		return nil, nil, err
	}
	var userInfo domain.FacebookUserInfo
	if err := json.Unmarshal(body, &userInfo); err != nil {
		return nil, nil, fmt.Errorf("failed to decode user info from facebook: %w", err)
	}
	return &userInfo, body, nil
}
