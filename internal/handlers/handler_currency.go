package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/balance_ledger/internal/core/ports/services"
	"github.com/SscSPs/balance_ledger/internal/dto"
	"github.com/SscSPs/balance_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

type currencyHandler struct {
	currencyService portssvc.CurrencySvcFacade
}

// RegisterCurrencyRoutes registers the read-only currency routes.
func RegisterCurrencyRoutes(rg *gin.RouterGroup, currencyService portssvc.CurrencySvcFacade) {
	h := &currencyHandler{currencyService: currencyService}

	currencies := rg.Group("/currencies")
	{
		currencies.GET("", h.listCurrencies)
		currencies.GET("/rates", h.getRates)
		currencies.GET("/:code", h.getCurrency)
	}
}

// listCurrencies godoc
// @Summary List currencies
// @Tags currencies
// @Produce  json
// @Success 200 {object} dto.ListCurrenciesResponse
// @Router /currencies [get]
func (h *currencyHandler) listCurrencies(c *gin.Context) {
	currencies, err := h.currencyService.ListCurrencies(c.Request.Context())
	if err != nil {
		respondError(c, middleware.GetLoggerFromCtx(c.Request.Context()), "currency.list", err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListCurrenciesResponse(currencies))
}

// getCurrency godoc
// @Summary Get a currency by code
// @Tags currencies
// @Produce  json
// @Param   code path string true "ISO 4217 code"
// @Success 200 {object} dto.CurrencyResponse
// @Failure 404 {object} errorResponse
// @Router /currencies/{code} [get]
func (h *currencyHandler) getCurrency(c *gin.Context) {
	currency, err := h.currencyService.GetCurrencyByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		respondError(c, middleware.GetLoggerFromCtx(c.Request.Context()), "currency.get", err)
		return
	}
	c.JSON(http.StatusOK, dto.ToCurrencyResponse(currency))
}

// getRates godoc
// @Summary Static rate table
// @Tags currencies
// @Produce  json
// @Success 200 {object} dto.RateTableResponse
// @Router /currencies/rates [get]
func (h *currencyHandler) getRates(c *gin.Context) {
	table := h.currencyService.GetRateTable(c.Request.Context())
	c.JSON(http.StatusOK, dto.RateTableResponse{Base: table.BaseCode, Rates: table.Rates})
}
