package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/citizen_accounts/internal/apperrors"
	"github.com/SscSPs/citizen_accounts/internal/core/domain"
	portssvc "github.com/SscSPs/citizen_accounts/internal/core/ports/services"
	"github.com/SscSPs/citizen_accounts/internal/dto"
	"github.com/SscSPs/citizen_accounts/internal/middleware"
	"github.com/gin-gonic/gin"
)

// AuthHandler handles local authentication requests.
type AuthHandler struct {
	credentials  portssvc.CredentialVerifierSvc
	session      portssvc.SessionSvc
	userService  portssvc.UserSvcFacade
	tokenService portssvc.TokenSvcFacade
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(services *portssvc.ServiceContainer) *AuthHandler {
	return &AuthHandler{
		credentials:  services.Credentials,
		session:      services.Session,
		userService:  services.User,
		tokenService: services.TokenService,
	}
}

// registerAuthRoutes sets up the public authentication routes.
func registerAuthRoutes(auth *gin.RouterGroup, limit gin.HandlerFunc, services *portssvc.ServiceContainer) {
	h := NewAuthHandler(services)

	auth.POST("/login", limit, h.Login)
	auth.POST("/register", limit, h.Register)
	auth.POST("/verify", limit, h.VerifyEmail)
}

// registerSessionRoutes sets up the authenticated /auth routes.
func registerSessionRoutes(auth *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := NewAuthHandler(services)
	auth.GET("/me", h.Me)
}

// Login godoc
// @Summary User login
// @Description Authenticates a local user with email and password and returns a JWT token.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} apperrors.AppError "INVALID_EMAIL_FORMAT"
// @Failure 401 {object} apperrors.AppError "ACCOUNT_NOT_FOUND or INVALID_PASSWORD"
// @Failure 403 {object} apperrors.AppError "ACCOUNT_NOT_VERIFIED"
// @Failure 429 {object} map[string]interface{}
// @Failure 500 {object} apperrors.AppError
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		appErr := apperrors.NewBadRequestError("Invalid request body")
		c.JSON(appErr.Code, appErr)
		return
	}

	user, err := h.credentials.Verify(ctx, req.Email, req.Password)
	if err != nil {
		respondError(c, logger, err, "Login rejected")
		return
	}

	h.respondWithToken(c, logger, user, http.StatusOK)
}

// Register godoc
// @Summary Register new user
// @Description Creates an unverified local account and sends a verification mail.
// @Tags auth
// @Accept json
// @Produce json
// @Param register body dto.RegisterRequest true "User Registration Info"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} apperrors.AppError
// @Failure 409 {object} apperrors.AppError "Email already registered"
// @Failure 500 {object} apperrors.AppError
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		appErr := apperrors.NewBadRequestError("Invalid request body: " + err.Error())
		c.JSON(appErr.Code, appErr)
		return
	}

	newUser, err := h.userService.Register(ctx, req)
	if err != nil {
		respondError(c, logger, err, "Failed to register user")
		return
	}

	respondData(c, http.StatusCreated, dto.ToUserResponse(newUser))
}

// VerifyEmail godoc
// @Summary Verify email
// @Description Completes account verification with the code sent by mail.
// @Tags auth
// @Accept json
// @Produce json
// @Param verify body dto.VerifyEmailRequest true "Verification code"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} apperrors.AppError
// @Failure 404 {object} apperrors.AppError "Unknown code"
// @Router /auth/verify [post]
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	var req dto.VerifyEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		appErr := apperrors.NewBadRequestError("Invalid verification code")
		c.JSON(appErr.Code, appErr)
		return
	}

	user, err := h.userService.VerifyEmail(ctx, req.Code)
	if err != nil {
		respondError(c, logger, err, "Failed to verify email")
		return
	}

	respondData(c, http.StatusOK, dto.ToUserResponse(user))
}

// Me godoc
// @Summary Current user
// @Description Returns the user the bearer token was issued for.
// @Tags auth
// @Produce json
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} apperrors.AppError
// @Failure 404 {object} apperrors.AppError
// @Security BearerAuth
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	principal, ok := getUserIDOrAbort(c, logger)
	if !ok {
		return
	}

	user, err := h.session.FromPrincipal(ctx, principal)
	if err != nil {
		respondError(c, logger, err, "Failed to load current user")
		return
	}

	respondData(c, http.StatusOK, dto.ToUserResponse(user))
}

func (h *AuthHandler) respondWithToken(c *gin.Context, logger *slog.Logger, user *domain.User, status int) {
	token, expiresAt, err := h.tokenService.GenerateAccessToken(c.Request.Context(), user)
	if err != nil {
		respondError(c, logger, err, "Failed to generate token")
		return
	}
	respondData(c, status, dto.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt.Unix(),
		User:      dto.ToUserResponse(user),
	})
}
