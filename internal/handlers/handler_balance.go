package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/balance_ledger/internal/core/ports/services"
	"github.com/SscSPs/balance_ledger/internal/dto"
	"github.com/SscSPs/balance_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

type balanceHandler struct {
	balanceService portssvc.BalanceSvcFacade
}

// RegisterBalanceRoutes registers the aggregate balance routes.
func RegisterBalanceRoutes(rg *gin.RouterGroup, balanceService portssvc.BalanceSvcFacade) {
	h := &balanceHandler{balanceService: balanceService}
	rg.GET("/balance/total", h.totalBalance)
}

// totalBalance godoc
// @Summary Total balance in the base currency
// @Tags balance
// @Produce  json
// @Param   account query []string false "Account IDs; all accounts when omitted" collectionFormat(multi)
// @Param   date query string false "RFC 3339 instant or YYYY-MM-DD; defaults to now"
// @Success 200 {object} dto.TotalBalanceResponse
// @Failure 400 {object} errorResponse "balance.total.error.date.invalid or balance.total.error.account.invalid"
// @Router /balance/total [get]
func (h *balanceHandler) totalBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.TotalBalanceParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, logger, "balance.total", err)
		return
	}

	date, err := dto.ParseOptionalDate(params.Date)
	if err != nil {
		respondError(c, logger, "balance.total", err)
		return
	}

	total, err := h.balanceService.TotalBalance(c.Request.Context(), params.AccountIDs, date)
	if err != nil {
		respondError(c, logger, "balance.total", err)
		return
	}
	c.JSON(http.StatusOK, dto.TotalBalanceResponse{Total: total.Total, CurrencyID: total.CurrencyID})
}
