package engine

import (
	"context"
	"testing"

	orderbookv1 "github.com/H-A-R-S-H-K/Scaler-HFT-2027/internal/domain/orderbook/v1"
	orderreaderv1 "github.com/H-A-R-S-H-K/Scaler-HFT-2027/internal/domain/order-reader/v1"
	snapshotv1 "github.com/H-A-R-S-H-K/Scaler-HFT-2027/internal/domain/snapshot/v1"
	"github.com/H-A-R-S-H-K/Scaler-HFT-2027/internal/usecase/orderbook"
	"github.com/H-A-R-S-H-K/Scaler-HFT-2027/pkg/clock"
	"github.com/H-A-R-S-H-K/Scaler-HFT-2027/pkg/config"
	"github.com/H-A-R-S-H-K/Scaler-HFT-2027/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryStore is an in-memory snapshotv1.Store for tests.
type memoryStore struct {
	snapshot *snapshotv1.Snapshot
	stores   int
}

func (m *memoryStore) Store(_ context.Context, snapshot *snapshotv1.Snapshot) error {
	m.snapshot = snapshot
	m.stores++
	return nil
}

func (m *memoryStore) LoadStore(_ context.Context) (*snapshotv1.Snapshot, error) {
	return m.snapshot, nil
}

func newTestEngine(t *testing.T, store snapshotv1.Store) *Engine {
	t.Helper()

	log, err := logger.NewLogger()
	require.NoError(t, err)

	cfg := &config.Config{Pair: "BTC/USD"}
	book := orderbook.NewBook(clock.NewManual(1_000))

	eng, err := NewEngineWithOptions(book, nil, store, nil, nil, log, cfg, DefaultEngineOptions())
	require.NoError(t, err)
	return eng
}

func TestEngine_PlaceCancelAmend(t *testing.T) {
	eng := newTestEngine(t, &memoryStore{})

	trades := eng.PlaceOrder(orderbookv1.NewLimitOrder(1, false, 100.0, 10))
	assert.Empty(t, trades)
	assert.True(t, eng.OrderExists(1))

	trades = eng.PlaceOrder(orderbookv1.NewLimitOrder(2, true, 100.0, 4))
	require.Len(t, trades, 1)
	assert.Equal(t, 100.0, trades[0].Price)

	assert.True(t, eng.AmendOrder(1, 101.0, 6))
	best, ok := eng.BestAsk()
	require.True(t, ok)
	assert.Equal(t, 101.0, best)

	assert.True(t, eng.CancelOrder(1))
	assert.Equal(t, 0, eng.RestingOrders())
}

func TestEngine_ProcessInstruction(t *testing.T) {
	eng := newTestEngine(t, &memoryStore{})

	err := eng.processInstruction(&orderreaderv1.Instruction{
		Op:       orderreaderv1.OpPlace,
		OrderID:  1,
		Type:     orderbookv1.OrderTypeLimit,
		Bid:      true,
		Price:    99.0,
		Quantity: 10,
	})
	require.NoError(t, err)
	assert.True(t, eng.OrderExists(1))

	err = eng.processInstruction(&orderreaderv1.Instruction{
		Op:          orderreaderv1.OpAmend,
		OrderID:     1,
		NewPrice:    98.0,
		NewQuantity: 5,
	})
	require.NoError(t, err)
	order, ok := eng.Order(1)
	require.True(t, ok)
	assert.Equal(t, 98.0, order.Price)
	assert.Equal(t, uint64(5), order.Quantity)

	err = eng.processInstruction(&orderreaderv1.Instruction{
		Op:      orderreaderv1.OpCancel,
		OrderID: 1,
	})
	require.NoError(t, err)
	assert.False(t, eng.OrderExists(1))

	// Unknown ops are logged and skipped.
	err = eng.processInstruction(&orderreaderv1.Instruction{Op: "replace", OrderID: 2})
	require.NoError(t, err)
	assert.Equal(t, 0, eng.RestingOrders())
}

func TestEngine_ProcessMarketInstructionCountsTrades(t *testing.T) {
	eng := newTestEngine(t, &memoryStore{})

	eng.PlaceOrder(orderbookv1.NewLimitOrder(1, false, 100.0, 10))

	err := eng.processInstruction(&orderreaderv1.Instruction{
		Op:       orderreaderv1.OpPlace,
		OrderID:  2,
		Type:     orderbookv1.OrderTypeMarket,
		Bid:      true,
		Quantity: 4,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), eng.GetTotalTrades())
	order, ok := eng.Order(1)
	require.True(t, ok)
	assert.Equal(t, uint64(6), order.Quantity)
}

func TestEngine_RestoresFromSnapshot(t *testing.T) {
	store := &memoryStore{
		snapshot: &snapshotv1.Snapshot{
			OrderOffset: 42,
			Orders: []snapshotv1.BookOrder{
				{OrderID: 1, Bid: true, Price: 99.0, Quantity: 10},
				{OrderID: 2, Bid: false, Price: 101.0, Quantity: 5},
			},
		},
	}

	eng := newTestEngine(t, store)

	assert.Equal(t, int64(42), eng.GetOrderOffset())
	assert.Equal(t, 2, eng.RestingOrders())

	bid, ok := eng.BestBid()
	require.True(t, ok)
	assert.Equal(t, 99.0, bid)
	ask, ok := eng.BestAsk()
	require.True(t, ok)
	assert.Equal(t, 101.0, ask)
}

func TestEngine_SnapshotOffsetGate(t *testing.T) {
	store := &memoryStore{}
	eng := newTestEngine(t, store)
	eng.ctx = context.Background()

	// No instructions consumed yet.
	assert.False(t, eng.shouldCreateSnapshot())

	eng.setOrderOffset(DefaultEngineOptions().SnapshotOffsetDelta - 1)
	assert.False(t, eng.shouldCreateSnapshot())

	eng.setOrderOffset(DefaultEngineOptions().SnapshotOffsetDelta)
	assert.True(t, eng.shouldCreateSnapshot())

	eng.PlaceOrder(orderbookv1.NewLimitOrder(1, true, 99.0, 10))
	eng.createAndStoreSnapshot()

	assert.Equal(t, 1, store.stores)
	require.NotNil(t, store.snapshot)
	assert.Equal(t, DefaultEngineOptions().SnapshotOffsetDelta, store.snapshot.OrderOffset)
	assert.Len(t, store.snapshot.Orders, 1)

	// Fresh snapshot resets the gate.
	assert.False(t, eng.shouldCreateSnapshot())
}
