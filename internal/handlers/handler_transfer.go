package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/balance_ledger/internal/core/ports/services"
	"github.com/SscSPs/balance_ledger/internal/dto"
	"github.com/SscSPs/balance_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

type transferHandler struct {
	transferService portssvc.TransferSvcFacade
}

// RegisterTransferRoutes registers routes related to transfers. The id of a
// transfer is the id of either of its legs.
func RegisterTransferRoutes(rg *gin.RouterGroup, transferService portssvc.TransferSvcFacade) {
	h := &transferHandler{transferService: transferService}

	transfers := rg.Group("/transfers")
	{
		transfers.POST("", h.addTransfer)
		transfers.PUT("/:id", h.updateTransfer)
		transfers.DELETE("/:id", h.deleteTransfer)
	}
}

// addTransfer godoc
// @Summary Add a transfer
// @Description Moves amountFrom out of accountFrom and amountTo into accountTo in one transaction
// @Tags transfers
// @Accept  json
// @Produce  json
// @Param   transfer body dto.CreateTransferRequest true "Transfer"
// @Success 201 {object} dto.TransferResponse "balances are both accounts' current balances"
// @Failure 400 {object} errorResponse
// @Failure 409 {object} errorResponse
// @Router /transfers [post]
func (h *transferHandler) addTransfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, "transfer.add", err)
		return
	}
	input, err := req.ToDomain()
	if err != nil {
		respondError(c, logger, "transfer.add", err)
		return
	}

	res, err := h.transferService.AddTransfer(c.Request.Context(), input)
	if err != nil {
		respondError(c, logger, "transfer.add", err)
		return
	}

	logger.Info("Transfer added", slog.String("from_operation_id", res.From.OperationID), slog.String("to_operation_id", res.To.OperationID))
	c.JSON(http.StatusCreated, dto.ToTransferResponse(res))
}

// updateTransfer godoc
// @Summary Update a transfer
// @Tags transfers
// @Accept  json
// @Produce  json
// @Param   id path string true "Operation ID of either leg"
// @Param   transfer body dto.UpdateTransferRequest true "Changes"
// @Success 200 {object} dto.TransferResponse "balances are each leg's own balance"
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /transfers/{id} [put]
func (h *transferHandler) updateTransfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("operation_id", c.Param("id")))
	var req dto.UpdateTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, "transfer.update", err)
		return
	}
	patch, err := req.ToDomain()
	if err != nil {
		respondError(c, logger, "transfer.update", err)
		return
	}

	res, err := h.transferService.UpdateTransfer(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		respondError(c, logger, "transfer.update", err)
		return
	}

	logger.Info("Transfer updated")
	c.JSON(http.StatusOK, dto.ToTransferResponse(res))
}

// deleteTransfer godoc
// @Summary Delete a transfer
// @Tags transfers
// @Produce  json
// @Param   id path string true "Operation ID of either leg"
// @Success 200 {object} dto.TransferResponse "balances are both accounts' current balances"
// @Failure 404 {object} errorResponse
// @Router /transfers/{id} [delete]
func (h *transferHandler) deleteTransfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("operation_id", c.Param("id")))

	res, err := h.transferService.DeleteTransfer(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, logger, "transfer.delete", err)
		return
	}

	logger.Info("Transfer deleted")
	c.JSON(http.StatusOK, dto.ToTransferResponse(res))
}
