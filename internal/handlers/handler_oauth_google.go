package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/SscSPs/citizen_accounts/internal/apperrors"
	"github.com/SscSPs/citizen_accounts/internal/core/domain"
	portssvc "github.com/SscSPs/citizen_accounts/internal/core/ports/services"
	"github.com/SscSPs/citizen_accounts/internal/core/services"
	"github.com/SscSPs/citizen_accounts/internal/dto"
	"github.com/SscSPs/citizen_accounts/internal/middleware"
	"github.com/SscSPs/citizen_accounts/internal/platform/metrics"
	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"
)

// oauthHandler holds what both provider handlers need after the provider returned a profile.
type oauthHandler struct {
	identity     portssvc.IdentityResolverSvc
	tokenService portssvc.TokenSvcFacade
}

// loginURL answers the login-url endpoints of any provider.
func loginURL(c *gin.Context, client portssvc.OAuthLoginSvc) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	state, err := client.GenerateStateString(ctx)
	if err != nil {
		respondError(c, logger, err, "Failed to generate OAuth state")
		return
	}
	respondData(c, http.StatusOK, dto.LoginURLResponse{URL: client.GetLoginURL(ctx, state), State: state})
}

// exchange trades the authorization code for a provider token.
func exchange(c *gin.Context, logger *slog.Logger, client portssvc.OAuthLoginSvc, provider string) (*oauth2.Token, bool) {
	var req dto.ExchangeCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		appErr := apperrors.NewBadRequestError("Authorization code is required.")
		c.JSON(appErr.Code, appErr)
		return nil, false
	}

	token, err := client.ExchangeCodeForToken(c.Request.Context(), req.Code)
	if err != nil {
		logger.Error("Failed to exchange authorization code", slog.String("provider", provider), slog.String("error", err.Error()))
		appErr := apperrors.NewGatewayTimeoutError("Failed to communicate with " + provider + " OAuth service.")
		lower := strings.ToLower(err.Error())
		if strings.Contains(lower, "invalid_grant") || strings.Contains(lower, "bad request") {
			appErr = apperrors.NewBadRequestError("Invalid or expired authorization code.")
		}
		c.JSON(appErr.Code, appErr)
		return nil, false
	}
	return token, true
}

// resolveAndRespond maps the provider identity to a user and returns an access token.
// A conflicting concurrent link is retried once; the retry finds the link.
func (h *oauthHandler) resolveAndRespond(c *gin.Context, logger *slog.Logger, in domain.ResolverInput) {
	ctx := c.Request.Context()

	resolution, err := h.resolve(ctx, in)
	if err != nil {
		metrics.AuthAttempt(string(in.Provider), "error")
		respondError(c, logger, err, "Failed to resolve provider identity")
		return
	}
	metrics.AuthAttempt(string(in.Provider), "success")

	user := resolution.User
	token, expiresAt, err := h.tokenService.GenerateAccessToken(ctx, &user)
	if err != nil {
		respondError(c, logger, err, "Failed to generate access token")
		return
	}

	status := http.StatusOK
	if resolution.WasCreated() {
		status = http.StatusCreated
	}
	respondData(c, status, dto.SocialLoginResponse{
		LoginResponse: dto.LoginResponse{
			Token:     token,
			ExpiresAt: expiresAt.Unix(),
			User:      dto.ToUserResponse(&user),
		},
		Created: resolution.WasCreated(),
	})
	logger.Info("Issued access token after social login", slog.String("user_id", user.UserID), slog.String("kind", resolution.Kind.String()))
}

func (h *oauthHandler) resolve(ctx context.Context, in domain.ResolverInput) (*domain.Resolution, error) {
	resolution, err := h.identity.Resolve(ctx, in)
	if err != nil && apperrors.IsRetryable(err) {
		return h.identity.Resolve(ctx, in)
	}
	return resolution, err
}

// GoogleOAuthHandler handles Google OAuth related requests.
type GoogleOAuthHandler struct {
	oauthHandler
	googleOAuthService portssvc.GoogleOAuthHandlerSvcFacade
}

// NewGoogleOAuthHandler creates a new instance of GoogleOAuthHandler.
func NewGoogleOAuthHandler(svc *portssvc.ServiceContainer) *GoogleOAuthHandler {
	return &GoogleOAuthHandler{
		oauthHandler:       oauthHandler{identity: svc.Identity, tokenService: svc.TokenService},
		googleOAuthService: svc.GoogleOAuthHandler,
	}
}

// LoginURLGoogle godoc
// @Summary Google login URL
// @Description Returns the Google consent screen URL and the state to check on return.
// @Tags oauth
// @Produce json
// @Success 200 {object} dto.LoginURLResponse
// @Router /auth/google/login-url [get]
func (h *GoogleOAuthHandler) LoginURLGoogle(c *gin.Context) {
	loginURL(c, h.googleOAuthService)
}

// ExchangeCodeGoogle handles the POST request from the frontend containing the authorization code from Google.
// It exchanges the code for Google tokens, validates the ID token, resolves the user
// and returns an application JWT.
// @Summary Exchange Google authorization code for access token
// @Description Exchange authorization code for access token
// @Tags oauth
// @Accept  json
// @Produce  json
// @Param   code body dto.ExchangeCodeRequest true "Authorization code"
// @Success 200 {object} dto.SocialLoginResponse "Existing or linked account"
// @Success 201 {object} dto.SocialLoginResponse "Account created"
// @Failure 400 {object} apperrors.AppError "Invalid authorization code"
// @Failure 401 {object} apperrors.AppError "PROVIDER_DATA"
// @Failure 409 {object} apperrors.AppError "CONFLICT"
// @Failure 504 {object} apperrors.AppError "Google unavailable"
// @Router /auth/google/exchange-code [post]
func (h *GoogleOAuthHandler) ExchangeCodeGoogle(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx).With(slog.String("provider", string(domain.ConnectionGoogle)))

	oauth2Token, ok := exchange(c, logger, h.googleOAuthService, "Google")
	if !ok {
		return
	}

	info, raw, err := h.googleProfile(ctx, oauth2Token)
	if err != nil {
		logger.Error("Failed to read Google profile", slog.String("error", err.Error()))
		appErr := apperrors.NewUnauthorizedError("Invalid Google credentials: " + err.Error())
		c.JSON(appErr.Code, appErr)
		return
	}

	in, err := services.NormalizeGoogleProfile(*info, raw)
	if err != nil {
		respondError(c, logger, err, "Google profile rejected")
		return
	}

	h.resolveAndRespond(c, logger, in)
}

// googleProfile prefers the verified ID token and falls back to the userinfo endpoint.
func (h *GoogleOAuthHandler) googleProfile(ctx context.Context, token *oauth2.Token) (*domain.GoogleUserInfo, json.RawMessage, error) {
	idTokenString, _ := token.Extra("id_token").(string)
	if idTokenString == "" {
		info, err := h.googleOAuthService.GetUserInfo(ctx, token)
		return info, nil, err
	}

	payload, err := h.googleOAuthService.ValidateGoogleIDToken(ctx, idTokenString)
	if err != nil {
		return nil, nil, err
	}
	info := &domain.GoogleUserInfo{ID: payload.Subject}
	info.Email, _ = payload.Claims["email"].(string)
	info.VerifiedEmail, _ = payload.Claims["email_verified"].(bool)
	info.Name, _ = payload.Claims["name"].(string)
	info.GivenName, _ = payload.Claims["given_name"].(string)
	info.FamilyName, _ = payload.Claims["family_name"].(string)
	info.Picture, _ = payload.Claims["picture"].(string)
	info.Locale, _ = payload.Claims["locale"].(string)

	raw, err := json.Marshal(payload.Claims)
	if err != nil {
		return nil, nil, err
	}
	return info, raw, nil
}

// registerGoogleOAuthRoutes registers the Google OAuth routes.
func registerGoogleOAuthRoutes(auth *gin.RouterGroup, limit gin.HandlerFunc, svc *portssvc.ServiceContainer) {
	h := NewGoogleOAuthHandler(svc)
	googleRoutes := auth.Group("/google")
	{
		googleRoutes.GET("/login-url", h.LoginURLGoogle)
		googleRoutes.POST("/exchange-code", limit, h.ExchangeCodeGoogle)
	}
}
