package tradepublisherv1

import (
	"testing"

	orderbookv1 "github.com/H-A-R-S-H-K/Scaler-HFT-2027/internal/domain/orderbook/v1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateFromTrade(t *testing.T) {
	trade := orderbookv1.Trade{
		BuyOrderID:  1,
		SellOrderID: 2,
		Price:       100.5,
		Quantity:    4,
		TimestampNS: 5_000,
	}

	event := CreateFromTrade(trade, "BTC/USD", "event-1")

	assert.Equal(t, "event-1", event.EventID)
	assert.Equal(t, "BTC/USD", event.Pair)
	assert.Equal(t, uint64(1), event.BuyOrderID)
	assert.Equal(t, uint64(2), event.SellOrderID)
	assert.Equal(t, 100.5, event.Price)
	assert.Equal(t, uint64(4), event.Quantity)
	assert.Equal(t, uint64(5_000), event.TimestampNS)
}

func TestTradeEvent_WireRoundTrip(t *testing.T) {
	event := &TradeEvent{
		EventID:     "event-1",
		Pair:        "BTC/USD",
		BuyOrderID:  1,
		SellOrderID: 2,
		Price:       100.5,
		Quantity:    4,
		TimestampNS: 5_000,
	}

	buf := ToBytes(event)
	require.NotNil(t, buf)

	decoded := FromBytes(buf)
	require.NotNil(t, decoded)
	assert.Equal(t, event, decoded)

	assert.Nil(t, FromBytes([]byte("not json")))
}
