package engine

import (
	"context"
	"sync"
	"time"

	orderbookv1 "github.com/H-A-R-S-H-K/Scaler-HFT-2027/internal/domain/orderbook/v1"
	orderreaderv1 "github.com/H-A-R-S-H-K/Scaler-HFT-2027/internal/domain/order-reader/v1"
	snapshotv1 "github.com/H-A-R-S-H-K/Scaler-HFT-2027/internal/domain/snapshot/v1"
	"github.com/H-A-R-S-H-K/Scaler-HFT-2027/internal/infrastructure/questdb/trade"
	"github.com/H-A-R-S-H-K/Scaler-HFT-2027/internal/usecase/orderbook"
	tradepublisher "github.com/H-A-R-S-H-K/Scaler-HFT-2027/internal/usecase/trade-publisher"
	"github.com/H-A-R-S-H-K/Scaler-HFT-2027/pkg/config"
	"github.com/H-A-R-S-H-K/Scaler-HFT-2027/pkg/logger"
)

// Engine owns the order book and serializes all access to it. The book
// itself is single-threaded; every mutation and query goes through the
// engine's mutex, whether it arrives from the order topic or from the HTTP
// surface.
type Engine struct {
	book           *orderbook.Book
	orderReader    orderreaderv1.OrderReader
	snapshotStore  snapshotv1.Store
	tradePublisher *tradepublisher.Publisher
	tradeRepo      trade.TradeRepository // nil disables persistence
	logger         *logger.Logger
	config         *config.Config

	mu                 sync.Mutex
	orderOffset        int64
	lastSnapshotOffset int64
	totalTrades        int64

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	snapshotInterval    time.Duration
	snapshotOffsetDelta int64
}

// NewEngine creates an engine with default options.
func NewEngine(
	book *orderbook.Book,
	orderReader orderreaderv1.OrderReader,
	snapshotStore snapshotv1.Store,
	tradePublisher *tradepublisher.Publisher,
	tradeRepo trade.TradeRepository,
	log *logger.Logger,
	cfg *config.Config,
) (*Engine, error) {
	return NewEngineWithOptions(book, orderReader, snapshotStore, tradePublisher, tradeRepo, log, cfg, DefaultEngineOptions())
}

// NewEngineWithOptions creates an engine with custom options. The book is
// restored from the latest snapshot before the engine is returned.
func NewEngineWithOptions(
	book *orderbook.Book,
	orderReader orderreaderv1.OrderReader,
	snapshotStore snapshotv1.Store,
	tradePublisher *tradepublisher.Publisher,
	tradeRepo trade.TradeRepository,
	log *logger.Logger,
	cfg *config.Config,
	options *Options,
) (*Engine, error) {
	e := &Engine{
		book:           book,
		orderReader:    orderReader,
		snapshotStore:  snapshotStore,
		tradePublisher: tradePublisher,
		tradeRepo:      tradeRepo,
		logger:         log,
		config:         cfg,

		snapshotInterval:    options.SnapshotInterval,
		snapshotOffsetDelta: options.SnapshotOffsetDelta,
		orderOffset:         -1,
	}

	if err := e.loadSnapshot(context.Background()); err != nil {
		return nil, err
	}

	return e, nil
}

// Start launches the order processor and snapshot manager.
func (e *Engine) Start(ctx context.Context) error {
	e.ctx, e.cancel = context.WithCancel(ctx)

	e.wg.Add(2)
	go e.runOrderProcessor()
	go e.runSnapshotManager()

	e.logger.Info("engine started", logger.NewField("pair", e.config.Pair))
	return nil
}

// Stop gracefully shuts down the engine.
func (e *Engine) Stop(ctx context.Context) error {
	if e.cancel != nil {
		e.cancel()
	}

	done := make(chan struct{})
	go func() {
		e.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		e.logger.Info("engine stopped")
		return nil
	case <-ctx.Done():
		e.logger.Warn("engine stop timeout exceeded")
		return ctx.Err()
	}
}

func (e *Engine) runOrderProcessor() {
	defer e.wg.Done()

	e.logger.Info("starting order processor", logger.NewField("pair", e.config.Pair))

	// Resume just past the last instruction the restored snapshot covers.
	currentOffset := e.getOrderOffset()
	if currentOffset > 0 {
		currentOffset++
	}

	if err := e.orderReader.SetOffset(currentOffset); err != nil {
		e.logger.Error(err, logger.NewField("action", "set_order_offset"))
		return
	}

	for {
		select {
		case <-e.ctx.Done():
			e.logger.Info("order processor shutting down")
			e.orderReader.Close()
			return
		default:
			msg, instruction, err := e.orderReader.ReadMessage(e.ctx)
			if err != nil {
				if e.ctx.Err() != nil {
					continue
				}
				e.logger.ErrorContext(e.ctx, err, logger.NewField("action", "read_instruction"))
				time.Sleep(100 * time.Millisecond)
				continue
			}

			if err := e.orderReader.CommitMessages(e.ctx, msg); err != nil {
				e.logger.ErrorContext(e.ctx, err, logger.NewField("action", "commit_instruction"))
			}

			if err := e.processInstruction(instruction); err != nil {
				e.logger.ErrorContext(e.ctx, err, logger.NewField("action", "process_instruction"))
				continue
			}

			e.setOrderOffset(msg.Offset)
		}
	}
}

func (e *Engine) runSnapshotManager() {
	defer e.wg.Done()

	ticker := time.NewTicker(e.snapshotInterval)
	defer ticker.Stop()

	e.logger.Info("starting snapshot manager")

	for {
		select {
		case <-e.ctx.Done():
			e.logger.Info("snapshot manager shutting down")
			return
		case <-ticker.C:
			if e.shouldCreateSnapshot() {
				e.createAndStoreSnapshot()
			}
		}
	}
}

// processInstruction applies one order-topic instruction to the book.
func (e *Engine) processInstruction(instruction *orderreaderv1.Instruction) error {
	switch instruction.Op {
	case orderreaderv1.OpPlace:
		var order *orderbookv1.Order
		if instruction.Type == orderbookv1.OrderTypeMarket {
			order = orderbookv1.NewMarketOrder(instruction.OrderID, instruction.Bid, instruction.Quantity)
		} else {
			order = orderbookv1.NewLimitOrder(instruction.OrderID, instruction.Bid, instruction.Price, instruction.Quantity)
		}
		trades := e.PlaceOrder(order)
		if len(trades) > 0 {
			e.handleTrades(trades)
		}
	case orderreaderv1.OpCancel:
		if !e.CancelOrder(instruction.OrderID) {
			e.logger.Debug("cancel for unknown order", logger.NewField("orderID", instruction.OrderID))
		}
	case orderreaderv1.OpAmend:
		if !e.AmendOrder(instruction.OrderID, instruction.NewPrice, instruction.NewQuantity) {
			e.logger.Debug("amend for unknown order", logger.NewField("orderID", instruction.OrderID))
		}
	default:
		e.logger.Warn("unknown instruction op",
			logger.NewField("op", instruction.Op),
			logger.NewField("orderID", instruction.OrderID),
		)
	}
	return nil
}

// handleTrades publishes and persists the trades from one matching pass.
func (e *Engine) handleTrades(trades []orderbookv1.Trade) {
	e.mu.Lock()
	e.totalTrades += int64(len(trades))
	currentTotal := e.totalTrades
	e.mu.Unlock()

	e.logger.Info("trades executed",
		logger.NewField("tradeCount", len(trades)),
		logger.NewField("totalTrades", currentTotal),
	)

	if e.tradePublisher != nil {
		if err := e.tradePublisher.PublishTrades(e.ctx, trades); err != nil {
			e.logger.ErrorContext(e.ctx, err, logger.NewField("action", "publish_trades"))
		}
	}

	if e.tradeRepo != nil {
		rows := make([]*trade.Row, 0, len(trades))
		for _, t := range trades {
			rows = append(rows, &trade.Row{
				Timestamp:   time.Unix(0, int64(t.TimestampNS)).UTC(),
				Pair:        e.config.Pair,
				BuyOrderID:  int64(t.BuyOrderID),
				SellOrderID: int64(t.SellOrderID),
				Price:       t.Price,
				Quantity:    int64(t.Quantity),
			})
		}
		if err := e.tradeRepo.StoreBatch(e.ctx, rows); err != nil {
			e.logger.ErrorContext(e.ctx, err, logger.NewField("action", "persist_trades"))
		}
	}
}

// PlaceOrder admits an order under the engine's lock.
func (e *Engine) PlaceOrder(order *orderbookv1.Order) []orderbookv1.Trade {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.book.AddOrder(order)
}

// CancelOrder cancels a resting order under the engine's lock.
func (e *Engine) CancelOrder(id uint64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.book.CancelOrder(id)
}

// AmendOrder amends a resting order under the engine's lock.
func (e *Engine) AmendOrder(id uint64, newPrice float64, newQuantity uint64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.book.AmendOrder(id, newPrice, newQuantity)
}

// OrderExists reports whether the order rests in the book.
func (e *Engine) OrderExists(id uint64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.book.OrderExists(id)
}

// Order returns a copy of a resting order.
func (e *Engine) Order(id uint64) (orderbookv1.Order, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.book.Order(id)
}

// BestBid returns the highest resting buy price, if any.
func (e *Engine) BestBid() (float64, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.book.BestBid()
}

// BestAsk returns the lowest resting sell price, if any.
func (e *Engine) BestAsk() (float64, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.book.BestAsk()
}

// Snapshot returns up to depth price levels per side.
func (e *Engine) Snapshot(depth int) (bids, asks []orderbookv1.PriceLevel) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.book.Snapshot(depth)
}

// PriceLevels returns every price level on both sides.
func (e *Engine) PriceLevels() (bids, asks []orderbookv1.PriceLevel) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.book.PriceLevels()
}

// RestingOrders returns the number of orders resting in the book.
func (e *Engine) RestingOrders() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.book.RestingOrders()
}

func (e *Engine) shouldCreateSnapshot() bool {
	e.mu.Lock()
	currentOffset := e.orderOffset
	lastSnapshotOffset := e.lastSnapshotOffset
	e.mu.Unlock()

	if currentOffset <= 0 {
		return false
	}

	return currentOffset-lastSnapshotOffset >= e.snapshotOffsetDelta
}

func (e *Engine) createAndStoreSnapshot() {
	e.mu.Lock()
	currentOffset := e.orderOffset
	snapshot := e.book.CreateSnapshot()
	e.mu.Unlock()

	snapshot.OrderOffset = currentOffset

	if err := e.snapshotStore.Store(e.ctx, snapshot); err != nil {
		e.logger.ErrorContext(e.ctx, err, logger.NewField("action", "store_snapshot"))
		return
	}

	e.setLastSnapshotOffset(currentOffset)
	e.logger.Info("snapshot stored",
		logger.NewField("pair", e.config.Pair),
		logger.NewField("offset", currentOffset),
	)
}

func (e *Engine) getOrderOffset() int64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.orderOffset
}

func (e *Engine) setOrderOffset(offset int64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.orderOffset = offset
}

func (e *Engine) setLastSnapshotOffset(offset int64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.lastSnapshotOffset = offset
}

// loadSnapshot restores the book from the latest stored snapshot, if any.
func (e *Engine) loadSnapshot(ctx context.Context) error {
	if e.snapshotStore == nil {
		return nil
	}

	snapshot, err := e.snapshotStore.LoadStore(ctx)
	if err != nil {
		return err
	}

	if snapshot != nil {
		e.book.RestoreSnapshot(snapshot)
		e.mu.Lock()
		e.orderOffset = snapshot.OrderOffset
		e.lastSnapshotOffset = snapshot.OrderOffset
		e.mu.Unlock()

		e.logger.Info("book restored from snapshot",
			logger.NewField("orderOffset", snapshot.OrderOffset),
			logger.NewField("restingOrders", len(snapshot.Orders)),
		)
	}

	return nil
}

// GetOrderOffset returns the offset of the last applied instruction.
func (e *Engine) GetOrderOffset() int64 {
	return e.getOrderOffset()
}

// GetTotalTrades returns the number of trades executed since start.
func (e *Engine) GetTotalTrades() int64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.totalTrades
}
