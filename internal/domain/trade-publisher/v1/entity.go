package tradepublisherv1

import (
	"encoding/json"

	orderbookv1 "github.com/H-A-R-S-H-K/Scaler-HFT-2027/internal/domain/orderbook/v1"
)

// TradeEvent is the wire form of an executed trade on the trade topic.
type TradeEvent struct {
	EventID     string  `json:"eventID"`
	Pair        string  `json:"pair"`
	BuyOrderID  uint64  `json:"buyOrderID"`
	SellOrderID uint64  `json:"sellOrderID"`
	Price       float64 `json:"price"`
	Quantity    uint64  `json:"quantity"`
	TimestampNS uint64  `json:"timestampNS"`
}

// CreateFromTrade builds a trade event from an executed trade.
func CreateFromTrade(trade orderbookv1.Trade, pair, eventID string) *TradeEvent {
	return &TradeEvent{
		EventID:     eventID,
		Pair:        pair,
		BuyOrderID:  trade.BuyOrderID,
		SellOrderID: trade.SellOrderID,
		Price:       trade.Price,
		Quantity:    trade.Quantity,
		TimestampNS: trade.TimestampNS,
	}
}

// ToBytes converts the trade event to its JSON wire form.
func ToBytes(event *TradeEvent) []byte {
	buf, err := json.Marshal(event)
	if err != nil {
		return nil
	}
	return buf
}

// FromBytes parses a trade event from its JSON wire form.
func FromBytes(data []byte) *TradeEvent {
	var event TradeEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return nil
	}
	return &event
}
