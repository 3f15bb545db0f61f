package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/valutatrade_hub/internal/core/ports/services"
	"github.com/SscSPs/valutatrade_hub/internal/dto"
	"github.com/SscSPs/valutatrade_hub/internal/utils"
	"github.com/gin-gonic/gin"
)

type portfolioHandler struct {
	portfolioService portssvc.PortfolioSvcFacade
}

func newPortfolioHandler(ps portssvc.PortfolioSvcFacade) *portfolioHandler {
	return &portfolioHandler{portfolioService: ps}
}

func registerPortfolioRoutes(rg *gin.RouterGroup, ps portssvc.PortfolioSvcFacade) {
	h := newPortfolioHandler(ps)

	portfolio := rg.Group("/portfolio")
	{
		portfolio.GET("", h.getPortfolio)
		portfolio.GET("/wallets", h.listWallets)
		portfolio.POST("/wallets", h.openWallet)
	}
}

// getPortfolio godoc
// @Summary Get the valued portfolio
// @Description Returns every wallet of the caller valued in the requested base currency
// @Tags portfolio
// @Produce  json
// @Param   base query string false "Valuation currency, defaults to the configured base"
// @Success 200 {object} dto.PortfolioResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /portfolio [get]
func (h *portfolioHandler) getPortfolio(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var params dto.GetPortfolioParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}

	valuation, err := h.portfolioService.GetValuation(c.Request.Context(), userID, params.Base)
	if err != nil {
		respondError(c, err, "Failed to value portfolio")
		return
	}

	portfolio, err := h.portfolioService.GetPortfolio(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to retrieve portfolio")
		return
	}

	res := dto.ToPortfolioResponse(valuation, utils.FormatMoney)
	if updated := portfolio.UpdatedAt(); !updated.IsZero() {
		res.UpdatedAt = &updated
	}
	c.JSON(http.StatusOK, res)
}

// listWallets godoc
// @Summary List wallets
// @Description Returns the caller's raw balances
// @Tags portfolio
// @Produce  json
// @Success 200 {object} dto.WalletListResponse
// @Security BearerAuth
// @Router /portfolio/wallets [get]
func (h *portfolioHandler) listWallets(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	portfolio, err := h.portfolioService.GetPortfolio(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to retrieve portfolio")
		return
	}

	c.JSON(http.StatusOK, dto.ToWalletListResponse(portfolio))
}

// openWallet godoc
// @Summary Open a wallet
// @Description Adds an empty wallet for a supported currency
// @Tags portfolio
// @Accept  json
// @Produce  json
// @Param   wallet body dto.OpenWalletRequest true "Currency to open"
// @Success 201 {object} dto.WalletListResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Unknown currency"
// @Failure 409 {object} ErrorResponse "Wallet already exists"
// @Security BearerAuth
// @Router /portfolio/wallets [post]
func (h *portfolioHandler) openWallet(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.OpenWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	portfolio, err := h.portfolioService.OpenWallet(c.Request.Context(), userID, req.CurrencyCode)
	if err != nil {
		respondError(c, err, "Failed to open wallet")
		return
	}

	c.JSON(http.StatusCreated, dto.ToWalletListResponse(portfolio))
}
