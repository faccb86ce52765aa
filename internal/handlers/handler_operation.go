package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/SscSPs/balance_ledger/internal/apperrors"
	"github.com/SscSPs/balance_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/balance_ledger/internal/core/ports/services"
	"github.com/SscSPs/balance_ledger/internal/dto"
	"github.com/SscSPs/balance_ledger/internal/middleware"
	"github.com/SscSPs/balance_ledger/internal/utils/pagination"
	"github.com/gin-gonic/gin"
)

// operationHandler handles HTTP requests related to single operations.
type operationHandler struct {
	operationService portssvc.OperationSvcFacade
}

func newOperationHandler(svc portssvc.OperationSvcFacade) *operationHandler {
	return &operationHandler{operationService: svc}
}

// RegisterOperationRoutes registers routes related to operations.
func RegisterOperationRoutes(rg *gin.RouterGroup, operationService portssvc.OperationSvcFacade) {
	h := newOperationHandler(operationService)

	operations := rg.Group("/operations")
	{
		operations.POST("", h.addOperation)
		operations.GET("", h.listOperations)
		operations.PUT("/:id", h.updateOperation)
		operations.DELETE("/:id", h.deleteOperation)
	}
}

// addOperation godoc
// @Summary Add an operation
// @Description Posts an income (positive) or expense (negative) and recalculates later balances
// @Tags operations
// @Accept  json
// @Produce  json
// @Param   operation body dto.CreateOperationRequest true "Operation"
// @Success 201 {object} dto.OperationMutationResponse "balance is the account's current balance"
// @Failure 400 {object} errorResponse
// @Failure 409 {object} errorResponse
// @Router /operations [post]
func (h *operationHandler) addOperation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateOperationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, "operation.add", err)
		return
	}
	input, err := req.ToDomain()
	if err != nil {
		respondError(c, logger, "operation.add", err)
		return
	}

	res, err := h.operationService.AddOperation(c.Request.Context(), input)
	if err != nil {
		respondError(c, logger, "operation.add", err)
		return
	}

	logger.Info("Operation added", slog.String("operation_id", res.Operation.OperationID), slog.String("account_id", res.Operation.AccountID))
	c.JSON(http.StatusCreated, dto.ToOperationMutationResponse(res))
}

// updateOperation godoc
// @Summary Update an operation
// @Description Changes amount, date, account or category. Transfer legs must be updated through /transfers.
// @Tags operations
// @Accept  json
// @Produce  json
// @Param   id path string true "Operation ID"
// @Param   operation body dto.UpdateOperationRequest true "Changes"
// @Success 200 {object} dto.OperationMutationResponse "balance is the operation's own balance"
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /operations/{id} [put]
func (h *operationHandler) updateOperation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("operation_id", c.Param("id")))
	var req dto.UpdateOperationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, "operation.update", err)
		return
	}
	patch, err := req.ToDomain()
	if err != nil {
		respondError(c, logger, "operation.update", err)
		return
	}

	res, err := h.operationService.UpdateOperation(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		respondError(c, logger, "operation.update", err)
		return
	}

	logger.Info("Operation updated")
	c.JSON(http.StatusOK, dto.ToOperationMutationResponse(res))
}

// deleteOperation godoc
// @Summary Delete an operation
// @Description Deleting a transfer leg deletes the whole transfer
// @Tags operations
// @Produce  json
// @Param   id path string true "Operation ID"
// @Success 200 {object} dto.OperationMutationResponse "balance is the account's current balance"
// @Failure 404 {object} errorResponse
// @Router /operations/{id} [delete]
func (h *operationHandler) deleteOperation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("operation_id", c.Param("id")))

	res, err := h.operationService.DeleteOperation(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, logger, "operation.delete", err)
		return
	}

	logger.Info("Operation deleted")
	c.JSON(http.StatusOK, dto.ToOperationMutationResponse(res))
}

// listOperations godoc
// @Summary List operations
// @Description Newest first, with the total count of matching operations
// @Tags operations
// @Produce  json
// @Param   account query string false "Account ID"
// @Param   category query string false "Category ID"
// @Param   limit query int false "Page size (max 1000)"
// @Param   nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListOperationsResponse
// @Failure 400 {object} errorResponse
// @Router /operations [get]
func (h *operationHandler) listOperations(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListOperationsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, logger, "operation.list", err)
		return
	}

	filter := domain.OperationFilter{Limit: params.Limit}
	if params.AccountID != "" {
		filter.AccountID = &params.AccountID
	}
	if params.CategoryID != "" {
		filter.CategoryID = &params.CategoryID
	}
	if params.NextToken != "" {
		created, seq, err := pagination.DecodeToken(params.NextToken)
		if err != nil {
			respondError(c, logger, "operation.list", fmt.Errorf("%w: %v", apperrors.ErrValidation, err))
			return
		}
		filter.Before = &domain.OperationCursor{Created: created, SequenceNo: seq}
	}

	page, err := h.operationService.ListOperations(c.Request.Context(), filter)
	if err != nil {
		respondError(c, logger, "operation.list", err)
		return
	}

	resp := dto.ListOperationsResponse{
		Operations: make([]dto.OperationResponse, len(page.Operations)),
		Total:      page.Total,
	}
	for i, op := range page.Operations {
		resp.Operations[i] = dto.ToOperationResponse(op)
	}
	if page.Next != nil {
		token := pagination.EncodeToken(page.Next.Created, page.Next.SequenceNo)
		resp.NextToken = &token
	}
	c.JSON(http.StatusOK, resp)
}
