package handlers

import (
	"net/http"

	"github.com/SscSPs/citizen_accounts/internal/apperrors"
	portssvc "github.com/SscSPs/citizen_accounts/internal/core/ports/services"
	"github.com/SscSPs/citizen_accounts/internal/dto"
	"github.com/SscSPs/citizen_accounts/internal/middleware"
	"github.com/gin-gonic/gin"
)

type consentHandler struct {
	consents portssvc.ConsentLedgerSvc
}

func newConsentHandler(consents portssvc.ConsentLedgerSvc) *consentHandler {
	return &consentHandler{consents: consents}
}

// grantConsent godoc
// @Summary Grant consent
// @Description Lets a partner access the authenticated user's data. Granting twice is a no-op.
// @Tags consents
// @Accept  json
// @Produce  json
// @Param   userID path string true "User ID"
// @Param   consent body dto.GrantConsentRequest true "Partner"
// @Success 200 {object} dto.GrantConsentResponse
// @Failure 403 {object} apperrors.AppError "Forbidden"
// @Failure 404 {object} apperrors.AppError "Unknown partner"
// @Security BearerAuth
// @Router /users/{userID}/consents [post]
func (h *consentHandler) grantConsent(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireOwnUser(c, logger)
	if !ok {
		return
	}

	var req dto.GrantConsentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		appErr := apperrors.NewBadRequestError("partnerId is required")
		c.JSON(appErr.Code, appErr)
		return
	}

	result, err := h.consents.Grant(c.Request.Context(), userID, req.PartnerID)
	if err != nil {
		respondError(c, logger, err, "Failed to grant consent")
		return
	}

	respondData(c, http.StatusOK, dto.GrantConsentResponse{Result: result.String()})
}

// listConsents godoc
// @Summary List consents
// @Description Lists the partners the authenticated user currently consents to.
// @Tags consents
// @Produce  json
// @Param   userID path string true "User ID"
// @Success 200 {object} dto.ListConsentsResponse
// @Failure 403 {object} apperrors.AppError "Forbidden"
// @Security BearerAuth
// @Router /users/{userID}/consents [get]
func (h *consentHandler) listConsents(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireOwnUser(c, logger)
	if !ok {
		return
	}

	items, err := h.consents.List(c.Request.Context(), userID)
	if err != nil {
		respondError(c, logger, err, "Failed to list consents")
		return
	}

	respondData(c, http.StatusOK, dto.ToListConsentsResponse(items))
}

// revokeConsent godoc
// @Summary Revoke consent
// @Description Removes the consent to a partner. Revoking a missing consent succeeds.
// @Tags consents
// @Param   userID path string true "User ID"
// @Param   partnerID path string true "Partner ID"
// @Success 204
// @Failure 403 {object} apperrors.AppError "Forbidden"
// @Security BearerAuth
// @Router /users/{userID}/consents/{partnerID} [delete]
func (h *consentHandler) revokeConsent(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireOwnUser(c, logger)
	if !ok {
		return
	}

	if err := h.consents.Revoke(c.Request.Context(), userID, c.Param("partnerID")); err != nil {
		respondError(c, logger, err, "Failed to revoke consent")
		return
	}

	c.Status(http.StatusNoContent)
}
