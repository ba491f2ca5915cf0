package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/souviksingh11/farmmate/internal/handlers"
	"github.com/souviksingh11/farmmate/internal/market"
)

func marketRouter(client *market.Client) *gin.Engine {
	r := gin.New()
	r.GET("/api/market/prices", handlers.NewMarketHandler(client).Prices)
	return r
}

func TestMarketPrices(t *testing.T) {
	var gotQuery url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		gotQuery = req.URL.Query()
		_ = json.NewEncoder(w).Encode(gin.H{
			"records": []gin.H{
				{"commodity": "Tomato", "market": "Kolar", "modal_price": "1350"},
			},
		})
	}))
	defer srv.Close()

	client := market.NewClient("test-key", nil).WithBaseURL(srv.URL)
	r := marketRouter(client)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet,
		"/api/market/prices?commodity=Tomato&state=Karnataka&district=Kolar", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	body := decodeBody(t, w)
	prices := body["prices"].([]any)
	require.Len(t, prices, 1)
	assert.Equal(t, "Tomato", prices[0].(map[string]any)["commodity"])

	// Upstream query carries key, format and the mandi filters.
	assert.Equal(t, "test-key", gotQuery.Get("api-key"))
	assert.Equal(t, "json", gotQuery.Get("format"))
	assert.Equal(t, "50", gotQuery.Get("limit"))
	assert.Equal(t, "Tomato", gotQuery.Get("filters[commodity]"))
	assert.Equal(t, "Karnataka", gotQuery.Get("filters[state]"))
	assert.Equal(t, "Kolar", gotQuery.Get("filters[district]"))
}

func TestMarketPrices_MissingFilters(t *testing.T) {
	r := marketRouter(market.NewClient("test-key", nil))

	for _, q := range []string{"", "?commodity=Tomato", "?state=Karnataka"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/market/prices"+q, nil)
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusBadRequest, w.Code, q)
		body := decodeBody(t, w)
		assert.Equal(t, "missing_filters", body["error_code"])
		assert.Equal(t, "Commodity and State are required", body["message"])
	}
}

func TestMarketPrices_Unconfigured(t *testing.T) {
	r := marketRouter(market.NewClient("", nil))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet,
		"/api/market/prices?commodity=Tomato&state=Karnataka", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "market_api_unconfigured", body["error_code"])
	assert.Equal(t, "Market API not configured (missing API key)", body["message"])
}

func TestMarketPrices_UpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		http.Error(w, "upstream exploded", http.StatusBadGateway)
	}))
	defer srv.Close()

	r := marketRouter(market.NewClient("test-key", nil).WithBaseURL(srv.URL))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet,
		"/api/market/prices?commodity=Tomato&state=Karnataka", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "market_upstream_failed", body["error_code"])
	// The upstream body never leaks through.
	assert.NotContains(t, w.Body.String(), "exploded")
}

func TestMarketPrices_EmptyResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		_ = json.NewEncoder(w).Encode(gin.H{"records": nil})
	}))
	defer srv.Close()

	r := marketRouter(market.NewClient("test-key", nil).WithBaseURL(srv.URL))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet,
		"/api/market/prices?commodity=Tomato&state=Nowhere", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	// Empty array, never null.
	assert.Contains(t, w.Body.String(), `"prices":[]`)
}
