package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/mda_posting_engine/internal/core/domain"
	portssvc "github.com/SscSPs/mda_posting_engine/internal/core/ports/services"
	"github.com/SscSPs/mda_posting_engine/internal/dto"
	"github.com/SscSPs/mda_posting_engine/internal/middleware"
	"github.com/gin-gonic/gin"
)

// periodHandler handles HTTP requests related to fiscal periods.
type periodHandler struct {
	periodService portssvc.PeriodSvc
}

// newPeriodHandler creates a new periodHandler.
func newPeriodHandler(periodService portssvc.PeriodSvc) *periodHandler {
	return &periodHandler{periodService: periodService}
}

// validatePeriod godoc
// @Summary Check whether a date can be posted to
// @Description Resolves the fiscal period for the date, creating it as current on first use, and reports whether postings are allowed.
// @Tags periods
// @Accept  json
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   request body dto.ValidatePeriodRequest true "Date to check"
// @Success 200 {object} dto.ValidatePeriodResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /organizations/{organization_id}/periods/validate [post]
func (h *periodHandler) validatePeriod(c *gin.Context) {
	organizationID, ok := organizationIDParam(c)
	if !ok {
		return
	}

	var req dto.ValidatePeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	date, err := time.Parse(dto.DateLayout, req.Date)
	if err != nil {
		respondBindError(c, err)
		return
	}

	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	validation, err := h.periodService.ValidateForPosting(c.Request.Context(), organizationID, date, actor)
	if err != nil && validation == nil {
		respondError(c, err, "Failed to validate period")
		return
	}

	resp := dto.ValidatePeriodResponse{CanPost: validation.CanPost}
	if validation.Period != nil {
		p := dto.ToPeriodResponse(*validation.Period)
		resp.Period = &p
	}
	if err != nil {
		// a gate refusal is an answer, not a failed request
		_, body := errorBody(err)
		resp.Error = &body
	}
	c.JSON(http.StatusOK, resp)
}

// getPeriod godoc
// @Summary Get a fiscal period
// @Tags periods
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   period_code path string true "Period code (YYYY-MM)"
// @Success 200 {object} dto.PeriodResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /organizations/{organization_id}/periods/{period_code} [get]
func (h *periodHandler) getPeriod(c *gin.Context) {
	organizationID, ok := organizationIDParam(c)
	if !ok {
		return
	}
	periodCode := c.Param("period_code")

	period, err := h.periodService.GetPeriod(c.Request.Context(), organizationID, periodCode)
	if err != nil {
		respondError(c, err, "Failed to get period")
		return
	}
	c.JSON(http.StatusOK, dto.ToPeriodResponse(*period))
}

// closePeriod godoc
// @Summary Close a fiscal period
// @Description Closes the period when expected_version matches its current version. Closing is irreversible.
// @Tags periods
// @Accept  json
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   period_code path string true "Period code (YYYY-MM)"
// @Param   request body dto.ClosePeriodRequest true "Expected version"
// @Success 200 {object} dto.PeriodResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /organizations/{organization_id}/periods/{period_code}/close [post]
func (h *periodHandler) closePeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	organizationID, ok := organizationIDParam(c)
	if !ok {
		return
	}
	periodCode := c.Param("period_code")
	if _, _, err := domain.PeriodBounds(periodCode); err != nil {
		respondBindError(c, errors.New("period_code must be YYYY-MM"))
		return
	}

	var req dto.ClosePeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	period, err := h.periodService.ClosePeriod(c.Request.Context(), organizationID, periodCode, req.ExpectedVersion, actor)
	if err != nil {
		respondError(c, err, "Failed to close period")
		return
	}

	logger.Info("Period closed",
		slog.String("organization_id", organizationID),
		slog.String("period_code", periodCode),
		slog.Int("version", period.Version))
	c.JSON(http.StatusOK, dto.ToPeriodResponse(*period))
}

// RegisterPeriodRoutes registers fiscal period routes.
func RegisterPeriodRoutes(group *gin.RouterGroup, periodService portssvc.PeriodSvc) {
	h := newPeriodHandler(periodService)

	periods := group.Group("/periods")
	{
		periods.POST("/validate", h.validatePeriod)
		periods.GET("/:period_code", h.getPeriod)
		periods.POST("/:period_code/close", h.closePeriod)
	}
}
