package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/balance_ledger/internal/apperrors"
	"github.com/gin-gonic/gin"
)

// errorResponse is the body of every failed request. Error is a dotted code
// such as "balance.total.error.date.invalid"; Message is for humans.
type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// classify maps a service error to a status and the suffix of its code.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, apperrors.ErrInvalidDate):
		return http.StatusBadRequest, "date.invalid"
	case errors.Is(err, apperrors.ErrInvalidAccountReference):
		return http.StatusBadRequest, "account.invalid"
	case errors.Is(err, apperrors.ErrValidation):
		return http.StatusBadRequest, "validation"
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound, "notfound"
	case errors.Is(err, apperrors.ErrDuplicate):
		return http.StatusConflict, "duplicate"
	case errors.Is(err, apperrors.ErrConcurrencyConflict):
		return http.StatusConflict, "conflict"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

// respondError logs err and writes the mapped response. scope prefixes the
// code, e.g. "operation.add".
func respondError(c *gin.Context, logger *slog.Logger, scope string, err error) {
	status, kind := classify(err)
	body := errorResponse{Error: scope + ".error." + kind}
	if status >= http.StatusInternalServerError {
		logger.Error("Request failed", slog.String("scope", scope), slog.String("error", err.Error()))
	} else {
		logger.Warn("Request rejected", slog.String("scope", scope), slog.String("error", err.Error()))
		body.Message = err.Error()
	}
	c.JSON(status, body)
}

// respondBindError reports a malformed body or query string.
func respondBindError(c *gin.Context, logger *slog.Logger, scope string, err error) {
	logger.Warn("Failed to bind request", slog.String("scope", scope), slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, errorResponse{Error: scope + ".error.validation", Message: err.Error()})
}
