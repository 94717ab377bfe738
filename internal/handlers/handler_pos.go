package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/mda_posting_engine/internal/core/ports/services"
	"github.com/SscSPs/mda_posting_engine/internal/dto"
	"github.com/SscSPs/mda_posting_engine/internal/middleware"
	"github.com/gin-gonic/gin"
)

// posHandler handles POS end-of-day summaries.
type posHandler struct {
	posService portssvc.POSSvc
}

// newPOSHandler creates a new posHandler.
func newPOSHandler(posService portssvc.POSSvc) *posHandler {
	return &posHandler{posService: posService}
}

// postDailySummary godoc
// @Summary Post a POS daily summary
// @Description Reconciles tenders against gross sales and posts the sales journal plus one accrual per staff commission, all or nothing.
// @Description A summary for an already processed business date returns the stored result.
// @Tags pos
// @Accept  json
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   summary body dto.DailySummaryRequest true "Daily summary"
// @Success 201 {object} dto.POSResultResponse
// @Success 200 {object} dto.POSResultResponse "Replayed"
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 422 {object} dto.POSResultResponse
// @Security BearerAuth
// @Router /organizations/{organization_id}/pos/daily-summaries [post]
func (h *posHandler) postDailySummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	organizationID, ok := organizationIDParam(c)
	if !ok {
		return
	}

	var req dto.DailySummaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	result, err := h.posService.ProcessDailySummary(c.Request.Context(), req.ToDomain(organizationID), actor)
	if err != nil {
		if result == nil {
			respondError(c, err, "Failed to process POS summary")
			return
		}
		status, body := errorBody(err)
		logger.Warn("POS summary rejected",
			slog.String("organization_id", organizationID),
			slog.String("code", body.Code),
			slog.Any("validation_errors", result.ValidationErrors))
		resp := dto.ToPOSResultResponse(*result)
		resp.Error = &body
		c.JSON(status, resp)
		return
	}

	status := http.StatusCreated
	if result.Replayed {
		status = http.StatusOK
	}
	logger.Info("POS summary processed",
		slog.String("organization_id", organizationID),
		slog.Int("journals", len(result.JournalEntries)),
		slog.Bool("replayed", result.Replayed))
	c.JSON(status, dto.ToPOSResultResponse(*result))
}

// RegisterPOSRoutes registers the POS summary route.
func RegisterPOSRoutes(group *gin.RouterGroup, posService portssvc.POSSvc) {
	h := newPOSHandler(posService)
	group.POST("/pos/daily-summaries", h.postDailySummary)
}
