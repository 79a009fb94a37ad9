package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/citizen_accounts/internal/apperrors"
	portssvc "github.com/SscSPs/citizen_accounts/internal/core/ports/services"
	"github.com/SscSPs/citizen_accounts/internal/dto"
	"github.com/SscSPs/citizen_accounts/internal/middleware"

	"github.com/gin-gonic/gin"
)

// userHandler handles HTTP requests related to users.
type userHandler struct {
	userService portssvc.UserSvcFacade
}

// newUserHandler creates a new userHandler.
func newUserHandler(us portssvc.UserSvcFacade) *userHandler {
	return &userHandler{
		userService: us,
	}
}

// registerUserRoutes registers all user-related routes.
func registerUserRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := newUserHandler(services.User)
	c := newConsentHandler(services.Consent)

	users := rg.Group("/users/:userID")
	{
		users.GET("", h.getUser)
		users.PUT("", h.updateUser)

		users.POST("/consents", c.grantConsent)
		users.GET("/consents", c.listConsents)
		users.DELETE("/consents/:partnerID", c.revokeConsent)
	}
}

// getUser godoc
// @Summary Get a user by ID
// @Description Retrieves the profile of the authenticated user
// @Tags users
// @Produce  json
// @Param   userID path string true "User ID"
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} apperrors.AppError "Unauthorized"
// @Failure 403 {object} apperrors.AppError "Forbidden (trying to access another user's details)"
// @Failure 404 {object} apperrors.AppError "User not found"
// @Security BearerAuth
// @Router /users/{userID} [get]
func (h *userHandler) getUser(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireOwnUser(c, logger)
	if !ok {
		return
	}

	user, err := h.userService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve user")
		return
	}

	respondData(c, http.StatusOK, dto.ToUserResponse(user))
}

// updateUser godoc
// @Summary Update a user
// @Description Updates name, company, email, language, image and password of the authenticated user.
// @Description The password is ignored for tokens issued to partner applications.
// @Tags users
// @Accept  json
// @Produce  json
// @Param   userID path string true "User ID"
// @Param   user body dto.UpdateUserRequest true "Fields to update"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} apperrors.AppError "Invalid input"
// @Failure 403 {object} apperrors.AppError "Forbidden"
// @Failure 409 {object} apperrors.AppError "Email already in use"
// @Security BearerAuth
// @Router /users/{userID} [put]
func (h *userHandler) updateUser(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireOwnUser(c, logger)
	if !ok {
		return
	}

	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind update user request", slog.String("error", err.Error()))
		appErr := apperrors.NewBadRequestError("Invalid request format: " + err.Error())
		c.JSON(appErr.Code, appErr)
		return
	}

	allowPassword := middleware.GetPartnerIDFromContext(c) == ""
	user, err := h.userService.UpdateUser(c.Request.Context(), userID, req, allowPassword)
	if err != nil {
		respondError(c, logger, err, "Failed to update user")
		return
	}

	respondData(c, http.StatusOK, dto.ToUserResponse(user))
}
