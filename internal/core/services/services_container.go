package services

import (
	"github.com/SscSPs/citizen_accounts/internal/core/ports/gateways"
	portsrepo "github.com/SscSPs/citizen_accounts/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/citizen_accounts/internal/core/ports/services"
	"github.com/SscSPs/citizen_accounts/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(
	cfg *config.Config,
	repos portsrepo.RepositoryProvider,
	hasher gateways.PasswordHasher,
	mailer gateways.VerificationMailer,
) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Identity = NewIdentityService(repos.TxManager, repos.UserRepo, repos.ConnectionRepo)
	container.Credentials = NewCredentialService(repos.UserRepo, hasher, mailer)
	container.Session = NewSessionService(repos.UserRepo)
	container.Consent = NewConsentService(repos.TxManager, repos.ConsentRepo, repos.ActivityRepo)
	container.User = NewUserService(repos.UserRepo, hasher, mailer)

	// Token service signs the principal produced by the session mapper
	container.TokenService = NewTokenService(cfg, container.Session)

	container.GoogleOAuthHandler = NewGoogleOAuthHandlerService(cfg)
	container.FacebookOAuth = NewFacebookOAuthHandlerService(cfg)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.IdentityResolverSvc           = (*identityService)(nil)
	_ portssvc.CredentialVerifierSvc         = (*credentialService)(nil)
	_ portssvc.SessionSvc                    = (*sessionService)(nil)
	_ portssvc.ConsentLedgerSvc              = (*consentService)(nil)
	_ portssvc.UserSvcFacade                 = (*userService)(nil)
	_ portssvc.GoogleOAuthHandlerSvcFacade   = (*googleOAuthHandlerService)(nil)
	_ portssvc.FacebookOAuthHandlerSvcFacade = (*facebookOAuthHandlerService)(nil)
)
