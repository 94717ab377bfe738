package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/mda_posting_engine/internal/apperrors"
	"github.com/SscSPs/mda_posting_engine/internal/dto"
	"github.com/SscSPs/mda_posting_engine/internal/middleware"
	"github.com/gin-gonic/gin"
)

// statusByCode maps engine codes to HTTP status codes. Unknown codes are 500.
var statusByCode = map[apperrors.Code]int{
	apperrors.CodeSchemaViolation:             http.StatusBadRequest,
	apperrors.CodeNotFound:                    http.StatusNotFound,
	apperrors.CodeFuturePeriodRejected:        http.StatusUnprocessableEntity,
	apperrors.CodePeriodClosed:                http.StatusConflict,
	apperrors.CodeMissingPostingConfiguration: http.StatusUnprocessableEntity,
	apperrors.CodeMissingAccountMapping:       http.StatusUnprocessableEntity,
	apperrors.CodeUnbalancedJournal:           http.StatusUnprocessableEntity,
	apperrors.CodeReconciliationMismatch:      http.StatusUnprocessableEntity,
	apperrors.CodeCouldNotClassify:            http.StatusUnprocessableEntity,
	apperrors.CodeRetryExhausted:              http.StatusServiceUnavailable,
	apperrors.CodeIdempotencyConflict:         http.StatusConflict,
	apperrors.CodeVersionConflict:             http.StatusConflict,
	apperrors.CodeInternal:                    http.StatusInternalServerError,
}

// errorBody converts err into the public error shape and its HTTP status.
// Internal failures never leak their cause to the caller.
func errorBody(err error) (int, dto.ErrorBody) {
	code := apperrors.CodeOf(err)
	status, ok := statusByCode[code]
	if !ok {
		status = http.StatusInternalServerError
	}
	body := dto.ErrorBody{
		Code:     string(code),
		Category: string(apperrors.CategoryOf(code)),
		Message:  "internal error",
	}
	if status == http.StatusInternalServerError {
		return status, body
	}
	body.Message = err.Error()
	var ee *apperrors.EngineError
	if errors.As(err, &ee) {
		body.Field = ee.Field
		if ee.Message != "" {
			body.Message = ee.Message
		}
	}
	return status, body
}

// respondError logs err at a level matching its status and writes the error response.
func respondError(c *gin.Context, err error, msg string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	status, body := errorBody(err)
	if status >= http.StatusInternalServerError {
		logger.Error(msg, slog.String("error", err.Error()), slog.String("code", body.Code))
	} else {
		logger.Warn(msg, slog.String("error", err.Error()), slog.String("code", body.Code))
	}
	c.JSON(status, dto.ErrorResponse{Success: false, Error: body})
}

// respondBindError reports a request body or query that failed binding.
func respondBindError(c *gin.Context, err error) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	logger.Warn("Failed to bind request", slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Success: false,
		Error: dto.ErrorBody{
			Code:     string(apperrors.CodeSchemaViolation),
			Category: string(apperrors.CategoryInput),
			Message:  "Invalid request format: " + err.Error(),
		},
	})
}

// actorFromContext returns the authenticated subject, writing a 401 when it is absent.
func actorFromContext(c *gin.Context) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Success: false,
			Error:   dto.ErrorBody{Code: "Unauthorized", Category: string(apperrors.CategoryInput), Message: "Unauthorized"},
		})
		return "", false
	}
	return userID, true
}
