package handlers

import (
	"log/slog"

	"github.com/SscSPs/citizen_accounts/internal/apperrors"
	"github.com/SscSPs/citizen_accounts/internal/core/domain"
	portssvc "github.com/SscSPs/citizen_accounts/internal/core/ports/services"
	"github.com/SscSPs/citizen_accounts/internal/core/services"
	"github.com/SscSPs/citizen_accounts/internal/middleware"
	"github.com/gin-gonic/gin"
)

// FacebookOAuthHandler handles Facebook OAuth related requests.
type FacebookOAuthHandler struct {
	oauthHandler
	facebookOAuthService portssvc.FacebookOAuthHandlerSvcFacade
}

func NewFacebookOAuthHandler(svc *portssvc.ServiceContainer) *FacebookOAuthHandler {
	return &FacebookOAuthHandler{
		oauthHandler:         oauthHandler{identity: svc.Identity, tokenService: svc.TokenService},
		facebookOAuthService: svc.FacebookOAuth,
	}
}

// LoginURLFacebook godoc
// @Summary Facebook login URL
// @Description Returns the Facebook login dialog URL and the state to check on return.
// @Tags oauth
// @Produce json
// @Success 200 {object} dto.LoginURLResponse
// @Router /auth/facebook/login-url [get]
func (h *FacebookOAuthHandler) LoginURLFacebook(c *gin.Context) {
	loginURL(c, h.facebookOAuthService)
}

// ExchangeCodeFacebook godoc
// @Summary Exchange Facebook authorization code for access token
// @Description Exchanges the code, reads the Graph API profile and signs the user in.
// @Tags oauth
// @Accept  json
// @Produce  json
// @Param   code body dto.ExchangeCodeRequest true "Authorization code"
// @Success 200 {object} dto.SocialLoginResponse "Existing or linked account"
// @Success 201 {object} dto.SocialLoginResponse "Account created"
// @Failure 400 {object} apperrors.AppError "Invalid authorization code"
// @Failure 401 {object} apperrors.AppError "PROVIDER_DATA, e.g. no email shared"
// @Failure 409 {object} apperrors.AppError "CONFLICT"
// @Failure 504 {object} apperrors.AppError "Facebook unavailable"
// @Router /auth/facebook/exchange-code [post]
func (h *FacebookOAuthHandler) ExchangeCodeFacebook(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx).With(slog.String("provider", string(domain.ConnectionFacebook)))

	token, ok := exchange(c, logger, h.facebookOAuthService, "Facebook")
	if !ok {
		return
	}

	info, raw, err := h.facebookOAuthService.GetUserInfo(ctx, token)
	if err != nil {
		logger.Error("Failed to read Facebook profile", slog.String("error", err.Error()))
		appErr := apperrors.NewGatewayTimeoutError("Failed to read Facebook profile.")
		c.JSON(appErr.Code, appErr)
		return
	}

	in, err := services.NormalizeFacebookProfile(*info, raw)
	if err != nil {
		respondError(c, logger, err, "Facebook profile rejected")
		return
	}

	h.resolveAndRespond(c, logger, in)
}

func registerFacebookOAuthRoutes(auth *gin.RouterGroup, limit gin.HandlerFunc, svc *portssvc.ServiceContainer) {
	h := NewFacebookOAuthHandler(svc)
	fb := auth.Group("/facebook")
	{
		fb.GET("/login-url", h.LoginURLFacebook)
		fb.POST("/exchange-code", limit, h.ExchangeCodeFacebook)
	}
}
