package orderbookv1

// OrderType represents the type of an order.
type OrderType string

const (
	// OrderTypeLimit represents a limit order.
	OrderTypeLimit OrderType = "limit"
	// OrderTypeMarket represents a market order.
	OrderTypeMarket OrderType = "market"
)

// Order is a single order admitted to the book. ID is caller-assigned and
// immutable; Quantity is the remaining open size and is decremented in place
// by fills. Market orders never rest, so every registered order is a limit
// order.
type Order struct {
	ID       uint64    `json:"id"`
	Bid      bool      `json:"bid"`
	Type     OrderType `json:"type"`
	Price    float64   `json:"price"`
	Quantity uint64    `json:"quantity"`
}

// NewLimitOrder creates a limit order.
func NewLimitOrder(id uint64, bid bool, price float64, quantity uint64) *Order {
	return &Order{
		ID:       id,
		Bid:      bid,
		Type:     OrderTypeLimit,
		Price:    price,
		Quantity: quantity,
	}
}

// NewMarketOrder creates a market order. Price is ignored for matching and
// kept at zero.
func NewMarketOrder(id uint64, bid bool, quantity uint64) *Order {
	return &Order{
		ID:       id,
		Bid:      bid,
		Type:     OrderTypeMarket,
		Quantity: quantity,
	}
}

// IsBid checks if the order is a bid (buy) order.
func (o *Order) IsBid() bool {
	return o.Bid
}

// IsAsk checks if the order is an ask (sell) order.
func (o *Order) IsAsk() bool {
	return !o.Bid
}

// IsFilled checks if the order has no remaining quantity.
func (o *Order) IsFilled() bool {
	return o.Quantity == 0
}
