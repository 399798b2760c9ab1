package orderreaderv1

import (
	orderbookv1 "github.com/H-A-R-S-H-K/Scaler-HFT-2027/internal/domain/orderbook/v1"
)

// Op names an instruction carried on the order topic.
type Op string

const (
	// OpPlace submits a new order to the book.
	OpPlace Op = "place"
	// OpCancel removes a resting order.
	OpCancel Op = "cancel"
	// OpAmend rewrites a resting order's price and quantity.
	OpAmend Op = "amend"
)

// Instruction is the decoded payload of one order-topic message.
//
// Place uses OrderID, Type, Bid, Price and Quantity. Cancel uses OrderID
// only. Amend uses OrderID, NewPrice and NewQuantity. Offset records the
// Kafka offset the instruction arrived at and is filled by the reader.
type Instruction struct {
	Op       Op                    `json:"op"`
	OrderID  uint64                `json:"orderID"`
	Type     orderbookv1.OrderType `json:"type,omitempty"`
	Bid      bool                  `json:"bid,omitempty"`
	Price    float64               `json:"price,omitempty"`
	Quantity uint64                `json:"quantity,omitempty"`

	NewPrice    float64 `json:"newPrice,omitempty"`
	NewQuantity uint64  `json:"newQuantity,omitempty"`

	Offset int64 `json:"-"`
}
