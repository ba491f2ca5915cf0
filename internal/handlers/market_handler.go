package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/souviksingh11/farmmate/internal/httperr"
	"github.com/souviksingh11/farmmate/internal/market"
)

type MarketHandler struct {
	client *market.Client
}

func NewMarketHandler(client *market.Client) *MarketHandler {
	return &MarketHandler{client: client}
}

// Prices proxies the government mandi price API. Upstream failures are
// reported generically; the upstream body and key never reach clients.
func (h *MarketHandler) Prices(c *gin.Context) {
	commodity := strings.TrimSpace(c.Query("commodity"))
	state := strings.TrimSpace(c.Query("state"))
	district := strings.TrimSpace(c.Query("district"))

	if commodity == "" || state == "" {
		httperr.BadRequest(c, "missing_filters", "Commodity and State are required")
		return
	}

	records, err := h.client.Prices(c.Request.Context(), commodity, state, district)
	if err != nil {
		if errors.Is(err, market.ErrUnconfigured) {
			httperr.Internal(c, "market_api_unconfigured", "Market API not configured (missing API key)")
			return
		}
		httperr.Internal(c, "market_upstream_failed", "Failed to fetch market prices")
		return
	}

	c.JSON(http.StatusOK, gin.H{"prices": records})
}
