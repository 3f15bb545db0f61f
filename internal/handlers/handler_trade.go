package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/SscSPs/valutatrade_hub/internal/core/domain"
	portssvc "github.com/SscSPs/valutatrade_hub/internal/core/ports/services"
	"github.com/SscSPs/valutatrade_hub/internal/dto"
	"github.com/SscSPs/valutatrade_hub/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type tradeHandler struct {
	tradeService portssvc.TradeSvcFacade
}

func newTradeHandler(ts portssvc.TradeSvcFacade) *tradeHandler {
	return &tradeHandler{tradeService: ts}
}

func registerTradeRoutes(rg *gin.RouterGroup, ts portssvc.TradeSvcFacade) {
	h := newTradeHandler(ts)

	trades := rg.Group("/trades")
	{
		trades.POST("/buy", h.buy)
		trades.POST("/sell", h.sell)
	}
}

// buy godoc
// @Summary Buy a currency
// @Description Buys amount of currencyCode, paying in the base currency at the current rate
// @Tags trades
// @Accept  json
// @Produce  json
// @Param   trade body dto.TradeRequest true "Trade"
// @Success 200 {object} dto.TradeResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Unknown currency"
// @Failure 422 {object} ErrorResponse "Insufficient funds"
// @Failure 503 {object} ErrorResponse "Rate unavailable"
// @Security BearerAuth
// @Router /trades/buy [post]
func (h *tradeHandler) buy(c *gin.Context) {
	h.execute(c, domain.TradeSideBuy, h.tradeService.Buy)
}

// sell godoc
// @Summary Sell a currency
// @Description Sells amount of currencyCode, crediting the base currency at the current rate
// @Tags trades
// @Accept  json
// @Produce  json
// @Param   trade body dto.TradeRequest true "Trade"
// @Success 200 {object} dto.TradeResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Unknown currency"
// @Failure 422 {object} ErrorResponse "Insufficient funds"
// @Failure 503 {object} ErrorResponse "Rate unavailable"
// @Security BearerAuth
// @Router /trades/sell [post]
func (h *tradeHandler) sell(c *gin.Context) {
	h.execute(c, domain.TradeSideSell, h.tradeService.Sell)
}

type tradeFunc func(ctx context.Context, userID, currencyCode string, amount decimal.Decimal) (*domain.TradeResult, error)

func (h *tradeHandler) execute(c *gin.Context, side domain.TradeSide, trade tradeFunc) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.TradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	result, err := trade(c.Request.Context(), userID, req.CurrencyCode, req.Amount)
	if err != nil {
		respondError(c, err, "Failed to execute trade")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Trade executed",
		slog.String("side", string(side)),
		slog.String("currency", result.CurrencyCode),
		slog.String("amount", result.Amount.String()),
	)
	c.JSON(http.StatusOK, dto.ToTradeResponse(result))
}
