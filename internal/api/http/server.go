package http

import (
	"context"
	"net/http"
	"strconv"

	orderbookv1 "github.com/H-A-R-S-H-K/Scaler-HFT-2027/internal/domain/orderbook/v1"
	"github.com/H-A-R-S-H-K/Scaler-HFT-2027/internal/app/engine"
	"github.com/H-A-R-S-H-K/Scaler-HFT-2027/pkg/config"
	"github.com/H-A-R-S-H-K/Scaler-HFT-2027/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Server exposes the order book over HTTP for submission and market data
// queries. All book access goes through the engine, which serializes it.
type Server struct {
	engine *engine.Engine
	logger *logger.Logger
	config config.HTTPConfig
	pair   string

	httpServer *http.Server
}

// NewServer creates an HTTP server around the engine.
func NewServer(eng *engine.Engine, pair string, cfg config.HTTPConfig, log *logger.Logger) *Server {
	return &Server{
		engine: eng,
		logger: log,
		config: cfg,
		pair:   pair,
	}
}

// Router builds the gin handler.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(s.requestID())

	r.POST("/orders", s.submitOrder)
	r.POST("/orders/cancel", s.cancelOrder)
	r.POST("/orders/amend", s.amendOrder)
	r.GET("/orders/:id", s.getOrder)
	r.GET("/orderbook", s.getOrderbook)
	r.GET("/orderbook/levels", s.getLevels)
	r.GET("/orderbook/best", s.getBest)
	r.GET("/health", s.health)

	return r
}

// Run starts serving until the listener fails or Shutdown is called.
func (s *Server) Run() error {
	s.httpServer = &http.Server{
		Addr:    s.config.Addr,
		Handler: s.Router(),
	}
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

// requestID tags every request with an id carried through logging.
func (s *Server) requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Request = c.Request.WithContext(logger.WithRequestID(c.Request.Context(), id))
		c.Header("X-Request-ID", id)
		c.Next()
	}
}

type submitOrderRequest struct {
	OrderID  uint64  `json:"orderID" binding:"required"`
	Type     string  `json:"type" binding:"required,oneof=limit market"`
	Bid      bool    `json:"bid"`
	Price    float64 `json:"price"`
	Quantity uint64  `json:"quantity" binding:"required"`
}

type tradeResponse struct {
	BuyOrderID  uint64  `json:"buyOrderID"`
	SellOrderID uint64  `json:"sellOrderID"`
	Price       float64 `json:"price"`
	Quantity    uint64  `json:"quantity"`
	TimestampNS uint64  `json:"timestampNS"`
}

func (s *Server) submitOrder(c *gin.Context) {
	var req submitOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Type == string(orderbookv1.OrderTypeLimit) && req.Price <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit orders require a positive price"})
		return
	}

	var order *orderbookv1.Order
	if req.Type == string(orderbookv1.OrderTypeMarket) {
		order = orderbookv1.NewMarketOrder(req.OrderID, req.Bid, req.Quantity)
	} else {
		order = orderbookv1.NewLimitOrder(req.OrderID, req.Bid, req.Price, req.Quantity)
	}

	trades := s.engine.PlaceOrder(order)

	resp := make([]tradeResponse, 0, len(trades))
	for _, t := range trades {
		resp = append(resp, tradeResponse(t))
	}

	s.logger.InfoContext(c.Request.Context(), "order submitted",
		logger.NewField("orderID", req.OrderID),
		logger.NewField("trades", len(trades)),
	)

	c.JSON(http.StatusOK, gin.H{
		"orderID":   req.OrderID,
		"trades":    resp,
		"remaining": order.Quantity,
		"resting":   s.engine.OrderExists(req.OrderID),
	})
}

type cancelOrderRequest struct {
	OrderID uint64 `json:"orderID" binding:"required"`
}

func (s *Server) cancelOrder(c *gin.Context) {
	var req cancelOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ok := s.engine.CancelOrder(req.OrderID)
	c.JSON(http.StatusOK, gin.H{
		"orderID":  req.OrderID,
		"canceled": ok,
	})
}

type amendOrderRequest struct {
	OrderID     uint64  `json:"orderID" binding:"required"`
	NewPrice    float64 `json:"newPrice" binding:"required"`
	NewQuantity uint64  `json:"newQuantity"`
}

func (s *Server) amendOrder(c *gin.Context) {
	var req amendOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ok := s.engine.AmendOrder(req.OrderID, req.NewPrice, req.NewQuantity)
	c.JSON(http.StatusOK, gin.H{
		"orderID": req.OrderID,
		"amended": ok,
	})
}

func (s *Server) getOrder(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}

	order, ok := s.engine.Order(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		return
	}

	c.JSON(http.StatusOK, order)
}

func (s *Server) getOrderbook(c *gin.Context) {
	depth := 1000
	if raw := c.Query("depth"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid depth"})
			return
		}
		depth = parsed
	}

	bids, asks := s.engine.Snapshot(depth)
	c.JSON(http.StatusOK, gin.H{
		"pair": s.pair,
		"bids": bids,
		"asks": asks,
	})
}

func (s *Server) getLevels(c *gin.Context) {
	bids, asks := s.engine.PriceLevels()
	c.JSON(http.StatusOK, gin.H{
		"pair": s.pair,
		"bids": bids,
		"asks": asks,
	})
}

func (s *Server) getBest(c *gin.Context) {
	resp := gin.H{"pair": s.pair}

	if bid, ok := s.engine.BestBid(); ok {
		resp["bestBid"] = bid
	}
	if ask, ok := s.engine.BestAsk(); ok {
		resp["bestAsk"] = ask
	}
	if bid, okBid := s.engine.BestBid(); okBid {
		if ask, okAsk := s.engine.BestAsk(); okAsk {
			resp["spread"] = ask - bid
		}
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":        "ok",
		"pair":          s.pair,
		"restingOrders": s.engine.RestingOrders(),
		"totalTrades":   s.engine.GetTotalTrades(),
	})
}
