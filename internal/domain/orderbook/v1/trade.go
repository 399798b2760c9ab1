package orderbookv1

// Trade is the immutable record of one execution. The price is always the
// passive (resting) order's price; TimestampNS comes from the clock
// capability at match time.
type Trade struct {
	BuyOrderID  uint64  `json:"buyOrderID"`
	SellOrderID uint64  `json:"sellOrderID"`
	Price       float64 `json:"price"`
	Quantity    uint64  `json:"quantity"`
	TimestampNS uint64  `json:"timestampNs"`
}

// PriceLevel is a read-only projection of one ladder level.
type PriceLevel struct {
	Price         float64 `json:"price"`
	TotalQuantity uint64  `json:"totalQuantity"`
	OrderCount    int     `json:"orderCount"`
}
