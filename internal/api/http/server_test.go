package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/H-A-R-S-H-K/Scaler-HFT-2027/internal/app/engine"
	"github.com/H-A-R-S-H-K/Scaler-HFT-2027/internal/usecase/orderbook"
	"github.com/H-A-R-S-H-K/Scaler-HFT-2027/pkg/clock"
	"github.com/H-A-R-S-H-K/Scaler-HFT-2027/pkg/config"
	"github.com/H-A-R-S-H-K/Scaler-HFT-2027/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log, err := logger.NewLogger()
	require.NoError(t, err)

	cfg := &config.Config{Pair: "BTC/USD"}
	book := orderbook.NewBook(clock.NewManual(1_000))

	eng, err := engine.NewEngineWithOptions(book, nil, nil, nil, nil, log, cfg, engine.DefaultEngineOptions())
	require.NoError(t, err)

	return NewServer(eng, cfg.Pair, cfg.HTTPConfig, log)
}

func doJSON(t *testing.T, router *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var parsed map[string]any
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &parsed))
	}
	return w, parsed
}

func TestServer_SubmitAndQueryOrder(t *testing.T) {
	router := newTestServer(t).Router()

	w, resp := doJSON(t, router, http.MethodPost, "/orders",
		`{"orderID":1,"type":"limit","bid":false,"price":100.5,"quantity":10}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, resp["resting"])
	assert.Empty(t, resp["trades"])

	w, resp = doJSON(t, router, http.MethodGet, "/orders/1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(100.5), resp["price"])

	w, _ = doJSON(t, router, http.MethodGet, "/orders/42", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestServer_SubmitMatchingOrderReturnsTrades(t *testing.T) {
	router := newTestServer(t).Router()

	doJSON(t, router, http.MethodPost, "/orders",
		`{"orderID":1,"type":"limit","bid":false,"price":100.5,"quantity":10}`)

	w, resp := doJSON(t, router, http.MethodPost, "/orders",
		`{"orderID":2,"type":"market","bid":true,"quantity":4}`)
	require.Equal(t, http.StatusOK, w.Code)

	trades, ok := resp["trades"].([]any)
	require.True(t, ok)
	require.Len(t, trades, 1)

	trade := trades[0].(map[string]any)
	assert.Equal(t, float64(100.5), trade["price"])
	assert.Equal(t, float64(4), trade["quantity"])
	assert.Equal(t, false, resp["resting"])
}

func TestServer_SubmitOrderValidation(t *testing.T) {
	router := newTestServer(t).Router()

	// Missing quantity.
	w, _ := doJSON(t, router, http.MethodPost, "/orders", `{"orderID":1,"type":"limit","price":10}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Limit order without a price.
	w, _ = doJSON(t, router, http.MethodPost, "/orders", `{"orderID":1,"type":"limit","quantity":5}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Unknown type.
	w, _ = doJSON(t, router, http.MethodPost, "/orders", `{"orderID":1,"type":"stop","price":10,"quantity":5}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestServer_CancelAndAmend(t *testing.T) {
	router := newTestServer(t).Router()

	doJSON(t, router, http.MethodPost, "/orders",
		`{"orderID":1,"type":"limit","bid":true,"price":99,"quantity":10}`)

	w, resp := doJSON(t, router, http.MethodPost, "/orders/amend",
		`{"orderID":1,"newPrice":98,"newQuantity":5}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, resp["amended"])

	w, resp = doJSON(t, router, http.MethodPost, "/orders/cancel", `{"orderID":1}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, resp["canceled"])

	w, resp = doJSON(t, router, http.MethodPost, "/orders/cancel", `{"orderID":1}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, resp["canceled"])
}

func TestServer_OrderbookAndBest(t *testing.T) {
	router := newTestServer(t).Router()

	doJSON(t, router, http.MethodPost, "/orders",
		`{"orderID":1,"type":"limit","bid":true,"price":99,"quantity":10}`)
	doJSON(t, router, http.MethodPost, "/orders",
		`{"orderID":2,"type":"limit","bid":false,"price":101,"quantity":5}`)

	w, resp := doJSON(t, router, http.MethodGet, "/orderbook", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "BTC/USD", resp["pair"])
	assert.Len(t, resp["bids"], 1)
	assert.Len(t, resp["asks"], 1)

	w, resp = doJSON(t, router, http.MethodGet, "/orderbook/best", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(99), resp["bestBid"])
	assert.Equal(t, float64(101), resp["bestAsk"])
	assert.Equal(t, float64(2), resp["spread"])

	w, _ = doJSON(t, router, http.MethodGet, "/orderbook?depth=bad", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestServer_Health(t *testing.T) {
	router := newTestServer(t).Router()

	w, resp := doJSON(t, router, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", resp["status"])
	assert.Equal(t, float64(0), resp["restingOrders"])
}

func TestServer_RequestIDEchoed(t *testing.T) {
	router := newTestServer(t).Router()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "req-123")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "req-123", w.Header().Get("X-Request-ID"))

	// A missing id gets generated.
	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}
