package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/mda_posting_engine/internal/core/ports/services"
	"github.com/SscSPs/mda_posting_engine/internal/dto"
	"github.com/SscSPs/mda_posting_engine/internal/middleware"
	"github.com/gin-gonic/gin"
)

type nlHandler struct {
	nlService portssvc.NLSvc
}

func newNLHandler(nlService portssvc.NLSvc) *nlHandler {
	return &nlHandler{nlService: nlService}
}

// handleCommand godoc
// @Summary Post a free-text bookkeeping instruction
// @Description Parses a description such as "Paid salary 15000 AED on 5 Oct", drafts a finance event and posts or previews it.
// @Description When the text cannot be classified the response carries category suggestions.
// @Tags nl
// @Accept  json
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   command body dto.NLCommandRequest true "Instruction"
// @Success 200 {object} dto.NLCommandResponse "Dry run"
// @Success 201 {object} dto.NLCommandResponse "Posted"
// @Failure 400 {object} dto.NLCommandResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 422 {object} dto.NLCommandResponse
// @Security BearerAuth
// @Router /organizations/{organization_id}/nl/commands [post]
func (h *nlHandler) handleCommand(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	organizationID, ok := organizationIDParam(c)
	if !ok {
		return
	}

	var req dto.NLCommandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	outcome, err := h.nlService.HandleCommand(c.Request.Context(), organizationID, req.Description, req.DryRun, actor)
	if err != nil {
		if outcome == nil {
			respondError(c, err, "Failed to handle instruction")
			return
		}
		// the parse result is still useful to the caller
		status, body := errorBody(err)
		logger.Warn("Instruction not posted", slog.String("error", err.Error()), slog.String("code", body.Code))
		resp := dto.ToNLCommandResponse(*outcome)
		resp.Success = false
		resp.Error = &body
		c.JSON(status, resp)
		return
	}

	status := http.StatusOK
	if !req.DryRun && outcome.Posting != nil && !outcome.Posting.Replayed {
		status = http.StatusCreated
	}
	logger.Info("Instruction handled",
		slog.String("organization_id", organizationID),
		slog.String("category", outcome.Parse.Category),
		slog.Bool("dry_run", req.DryRun))
	c.JSON(status, dto.ToNLCommandResponse(*outcome))
}

// RegisterNLRoutes registers the natural-language command route.
func RegisterNLRoutes(group *gin.RouterGroup, nlService portssvc.NLSvc) {
	h := newNLHandler(nlService)
	group.POST("/nl/commands", h.handleCommand)
}
