package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/mda_posting_engine/internal/apperrors"
	portssvc "github.com/SscSPs/mda_posting_engine/internal/core/ports/services"
	"github.com/SscSPs/mda_posting_engine/internal/dto"
	"github.com/SscSPs/mda_posting_engine/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// IdempotencyKeyHeader overrides metadata.idempotency_key when present.
const IdempotencyKeyHeader = "Idempotency-Key"

// postingHandler handles HTTP requests for finance events and posted transactions.
type postingHandler struct {
	postingService portssvc.PostingSvcFacade
}

// newPostingHandler creates a new postingHandler.
func newPostingHandler(postingService portssvc.PostingSvcFacade) *postingHandler {
	return &postingHandler{
		postingService: postingService,
	}
}

// organizationIDParam reads and checks the organization path parameter.
func organizationIDParam(c *gin.Context) (string, bool) {
	organizationID := c.Param("organization_id")
	if _, err := uuid.Parse(organizationID); err != nil {
		respondError(c, apperrors.NewFieldError("organization_id", "must be a UUID"), "Invalid organization ID")
		return "", false
	}
	return organizationID, true
}

// postEvent godoc
// @Summary Post a finance event
// @Description Validates the event, gates it by fiscal period, derives balanced GL lines and persists them atomically.
// @Description Re-posting with the same idempotency key returns the original transaction.
// @Tags events
// @Accept  json
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   Idempotency-Key header string false "Idempotency key"
// @Param   event body dto.PostEventRequest true "Finance event"
// @Success 201 {object} dto.PostingResponse
// @Success 200 {object} dto.PostingResponse "Idempotent replay"
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /organizations/{organization_id}/events [post]
func (h *postingHandler) postEvent(c *gin.Context) {
	h.handleEvent(c, false)
}

// previewEvent godoc
// @Summary Preview a finance event
// @Description Runs the posting pipeline without persisting anything or creating periods.
// @Tags events
// @Accept  json
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   event body dto.PostEventRequest true "Finance event"
// @Success 200 {object} dto.PostingResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /organizations/{organization_id}/events/preview [post]
func (h *postingHandler) previewEvent(c *gin.Context) {
	h.handleEvent(c, true)
}

func (h *postingHandler) handleEvent(c *gin.Context, preview bool) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	organizationID, ok := organizationIDParam(c)
	if !ok {
		return
	}

	var req dto.PostEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	event := req.ToDomain(organizationID, c.GetHeader(IdempotencyKeyHeader))
	logger = logger.With(
		slog.String("organization_id", organizationID),
		slog.String("smart_code", string(event.SmartCode)))

	if preview {
		outcome, err := h.postingService.Preview(c.Request.Context(), event, actor)
		if err != nil {
			respondError(c, err, "Failed to preview event")
			return
		}
		logger.Debug("Event previewed")
		c.JSON(http.StatusOK, dto.ToPostingResponse(*outcome))
		return
	}

	outcome, err := h.postingService.Post(c.Request.Context(), event, actor)
	if err != nil {
		respondError(c, err, "Failed to post event")
		return
	}

	status := http.StatusCreated
	if outcome.Replayed {
		status = http.StatusOK
	}
	logger.Info("Event posted",
		slog.String("transaction_id", outcome.Transaction.TransactionID),
		slog.Bool("replayed", outcome.Replayed))
	c.JSON(status, dto.ToPostingResponse(*outcome))
}

// getTransaction godoc
// @Summary Get a posted transaction
// @Description Retrieves a posted transaction with its GL lines
// @Tags transactions
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   transaction_id path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /organizations/{organization_id}/transactions/{transaction_id} [get]
func (h *postingHandler) getTransaction(c *gin.Context) {
	organizationID, ok := organizationIDParam(c)
	if !ok {
		return
	}
	transactionID := c.Param("transaction_id")

	txn, err := h.postingService.GetTransaction(c.Request.Context(), organizationID, transactionID)
	if err != nil {
		respondError(c, err, "Failed to get transaction")
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(*txn))
}

// listTransactions godoc
// @Summary List posted transactions
// @Description Lists posted transactions newest first using token-based pagination
// @Tags transactions
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   limit query int false "Page size (max 100)"
// @Param   next_token query string false "Token from a previous page"
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /organizations/{organization_id}/transactions [get]
func (h *postingHandler) listTransactions(c *gin.Context) {
	organizationID, ok := organizationIDParam(c)
	if !ok {
		return
	}

	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}
	var nextToken *string
	if params.NextToken != "" {
		nextToken = &params.NextToken
	}

	txns, token, err := h.postingService.ListTransactions(c.Request.Context(), organizationID, params.Limit, nextToken)
	if err != nil {
		respondError(c, err, "Failed to list transactions")
		return
	}
	c.JSON(http.StatusOK, dto.ListTransactionsResponse{
		Transactions: dto.ToTransactionResponses(txns),
		NextToken:    token,
	})
}

// RegisterPostingRoutes registers event and transaction routes on an organization-scoped group.
func RegisterPostingRoutes(group *gin.RouterGroup, postingService portssvc.PostingSvcFacade) {
	h := newPostingHandler(postingService)

	events := group.Group("/events")
	{
		events.POST("", h.postEvent)
		events.POST("/preview", h.previewEvent)
	}

	transactions := group.Group("/transactions")
	{
		transactions.GET("", h.listTransactions)
		transactions.GET("/:transaction_id", h.getTransaction)
	}
}
