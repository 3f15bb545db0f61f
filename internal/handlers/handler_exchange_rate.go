package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/valutatrade_hub/internal/core/domain"
	portssvc "github.com/SscSPs/valutatrade_hub/internal/core/ports/services"
	"github.com/SscSPs/valutatrade_hub/internal/dto"
	"github.com/SscSPs/valutatrade_hub/internal/middleware"
	"github.com/gin-gonic/gin"
)

// exchangeRateHandler handles HTTP requests related to exchange rates.
type exchangeRateHandler struct {
	rateService portssvc.ExchangeRateSvcFacade
}

func newExchangeRateHandler(ers portssvc.ExchangeRateSvcFacade) *exchangeRateHandler {
	return &exchangeRateHandler{rateService: ers}
}

// registerExchangeRateRoutes registers routes related to exchange rates.
func registerExchangeRateRoutes(rg *gin.RouterGroup, rateService portssvc.ExchangeRateSvcFacade) {
	h := newExchangeRateHandler(rateService)

	rates := rg.Group("/rates")
	{
		rates.GET("", h.listExchangeRates)
		rates.GET("/:fromCode/:toCode", h.getExchangeRate)
		rates.POST("/refresh", h.refreshRates)
	}
}

// getExchangeRate godoc
// @Summary Get an exchange rate
// @Description Resolves the rate from one currency to another, directly or through the inverse pair
// @Tags rates
// @Produce  json
// @Param   fromCode path string true "From Currency Code"
// @Param   toCode path string true "To Currency Code"
// @Success 200 {object} dto.ExchangeRateResponse
// @Failure 404 {object} ErrorResponse "Unknown currency"
// @Failure 503 {object} ErrorResponse "Rate unavailable"
// @Security BearerAuth
// @Router /rates/{fromCode}/{toCode} [get]
func (h *exchangeRateHandler) getExchangeRate(c *gin.Context) {
	fromCode := c.Param("fromCode")
	toCode := c.Param("toCode")

	quote, err := h.rateService.GetExchangeRate(c.Request.Context(), fromCode, toCode)
	if err != nil {
		respondError(c, err, "Failed to retrieve exchange rate")
		return
	}

	c.JSON(http.StatusOK, dto.ToRateQuoteResponse(quote))
}

// listExchangeRates godoc
// @Summary List exchange rates
// @Description Lists the stored rate snapshot, optionally filtered by currency or limited to the highest rates
// @Tags rates
// @Produce  json
// @Param   currency query string false "Only pairs involving this currency"
// @Param   top query int false "Keep the N highest rates"
// @Success 200 {object} dto.ListExchangeRatesResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /rates [get]
func (h *exchangeRateHandler) listExchangeRates(c *gin.Context) {
	var params dto.ListExchangeRatesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}

	listing, err := h.rateService.ListExchangeRates(c.Request.Context(), domain.RateFilter{
		Currency: params.Currency,
		Top:      params.Top,
	})
	if err != nil {
		respondError(c, err, "Failed to list exchange rates")
		return
	}

	c.JSON(http.StatusOK, dto.ToListExchangeRatesResponse(listing))
}

// refreshRates godoc
// @Summary Refresh exchange rates
// @Description Pulls fresh rates from the external sources and stores them
// @Tags rates
// @Accept  json
// @Produce  json
// @Param   refresh body dto.RefreshRatesRequest false "Source selection"
// @Success 200 {object} dto.RefreshRatesResponse
// @Failure 400 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse "Every source failed"
// @Security BearerAuth
// @Router /rates/refresh [post]
func (h *exchangeRateHandler) refreshRates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.RefreshRatesRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindError(c, err)
			return
		}
	}

	report, err := h.rateService.RefreshRates(c.Request.Context(), req.Source)
	if err != nil {
		respondError(c, err, "Failed to refresh exchange rates")
		return
	}

	logger.Info("Exchange rates refreshed", slog.Int("saved", report.Saved), slog.Int("failed_sources", len(report.Failed())))
	c.JSON(http.StatusOK, dto.ToRefreshRatesResponse(report))
}
