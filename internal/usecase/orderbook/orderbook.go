package orderbook

import (
	orderbookv1 "github.com/H-A-R-S-H-K/Scaler-HFT-2027/internal/domain/orderbook/v1"
	snapshotv1 "github.com/H-A-R-S-H-K/Scaler-HFT-2027/internal/domain/snapshot/v1"
	"github.com/H-A-R-S-H-K/Scaler-HFT-2027/pkg/clock"
)

// Book is a single-instrument limit order book: an identity-indexed registry
// of resting orders plus one price ladder per side. It is deliberately
// lock-free and single-threaded; callers that share one Book across
// goroutines serialize access themselves (the app engine does).
type Book struct {
	clock  clock.Clock
	orders map[uint64]*orderbookv1.Order
	bids   *orderbookv1.Ladder
	asks   *orderbookv1.Ladder
}

// NewBook creates an empty book stamping trades from clk.
func NewBook(clk clock.Clock) *Book {
	return &Book{
		clock:  clk,
		orders: make(map[uint64]*orderbookv1.Order),
		bids:   orderbookv1.NewBidLadder(),
		asks:   orderbookv1.NewAskLadder(),
	}
}

// AddOrder admits an order and returns the trades it produced, oldest first.
//
// A resubmitted id is silently absorbed: no state changes and no trades are
// returned. Market orders consume the opposite side's best levels until
// filled or the side is empty; any residual is discarded. Limit orders match
// while the opposite best price crosses their limit, then rest whatever
// remains. The order's Quantity field is decremented in place by fills.
func (b *Book) AddOrder(order *orderbookv1.Order) []orderbookv1.Trade {
	if order == nil {
		return nil
	}
	if _, exists := b.orders[order.ID]; exists {
		return nil
	}

	var trades []orderbookv1.Trade
	contra := b.contraLadder(order)

	for order.Quantity > 0 {
		best, ok := contra.Best()
		if !ok {
			break
		}
		if order.Type == orderbookv1.OrderTypeLimit && !crosses(order, best) {
			break
		}
		trades = b.fillAtPrice(order, best, contra, trades)
	}

	if order.Type == orderbookv1.OrderTypeLimit && order.Quantity > 0 {
		b.orders[order.ID] = order
		b.sameLadder(order).Add(order.Price, order.Quantity, order.ID)
	}

	return trades
}

// fillAtPrice executes the aggressor against the resting queue at one price
// level, first-in first-out. Trades execute at the passive price. Fully
// filled resting orders are unlinked only after the queue scan completes.
func (b *Book) fillAtPrice(
	aggressor *orderbookv1.Order,
	matchPrice float64,
	contra *orderbookv1.Ladder,
	trades []orderbookv1.Trade,
) []orderbookv1.Trade {
	lvl := contra.FindLevel(matchPrice)
	if lvl == nil {
		return trades
	}

	var filled []uint64
	for _, id := range lvl.Orders() {
		if aggressor.Quantity == 0 {
			break
		}
		resting := b.orders[id]

		fill := min(aggressor.Quantity, resting.Quantity)

		trade := orderbookv1.Trade{
			Price:       matchPrice,
			Quantity:    fill,
			TimestampNS: b.clock.NowNS(),
		}
		if aggressor.IsBid() {
			trade.BuyOrderID = aggressor.ID
			trade.SellOrderID = resting.ID
		} else {
			trade.BuyOrderID = resting.ID
			trade.SellOrderID = aggressor.ID
		}
		trades = append(trades, trade)

		aggressor.Quantity -= fill
		resting.Quantity -= fill
		contra.Reduce(matchPrice, fill)

		if resting.Quantity == 0 {
			filled = append(filled, id)
		}
	}

	for _, id := range filled {
		lvl.RemoveID(id)
		delete(b.orders, id)
	}

	return trades
}

// CancelOrder removes a resting order, releasing its ladder contribution.
// Unknown ids return false without mutating anything.
func (b *Book) CancelOrder(id uint64) bool {
	order, ok := b.orders[id]
	if !ok {
		return false
	}
	b.sameLadder(order).Remove(order.Price, id, order.Quantity)
	delete(b.orders, id)
	return true
}

// AmendOrder rewrites a resting order's price and quantity. The old
// contribution is released first, then the order re-enters its side's ladder
// at the new terms, joining the tail of the new level's queue. Amending
// never re-runs matching, even when the new terms would cross the book.
// Amending to quantity zero removes the order. Unknown ids return false.
func (b *Book) AmendOrder(id uint64, newPrice float64, newQuantity uint64) bool {
	order, ok := b.orders[id]
	if !ok {
		return false
	}

	b.sameLadder(order).Remove(order.Price, id, order.Quantity)

	if newQuantity == 0 {
		delete(b.orders, id)
		return true
	}

	order.Price = newPrice
	order.Quantity = newQuantity
	b.sameLadder(order).Add(newPrice, newQuantity, id)
	return true
}

// OrderExists reports registry membership.
func (b *Book) OrderExists(id uint64) bool {
	_, ok := b.orders[id]
	return ok
}

// Order returns a copy of the resting order with the given id.
func (b *Book) Order(id uint64) (orderbookv1.Order, bool) {
	order, ok := b.orders[id]
	if !ok {
		return orderbookv1.Order{}, false
	}
	return *order, true
}

// RestingOrders returns the number of orders currently in the registry.
func (b *Book) RestingOrders() int {
	return len(b.orders)
}

// BestBid returns the highest resting buy price, if any.
func (b *Book) BestBid() (float64, bool) {
	return b.bids.Best()
}

// BestAsk returns the lowest resting sell price, if any.
func (b *Book) BestAsk() (float64, bool) {
	return b.asks.Best()
}

// Snapshot returns up to depth levels per side, best price first.
func (b *Book) Snapshot(depth int) (bids, asks []orderbookv1.PriceLevel) {
	return collectLevels(b.bids, depth), collectLevels(b.asks, depth)
}

// PriceLevels returns every level on both sides, best price first.
func (b *Book) PriceLevels() (bids, asks []orderbookv1.PriceLevel) {
	return collectLevels(b.bids, -1), collectLevels(b.asks, -1)
}

func collectLevels(ld *orderbookv1.Ladder, depth int) []orderbookv1.PriceLevel {
	var levels []orderbookv1.PriceLevel
	ld.Walk(func(lvl *orderbookv1.Level) bool {
		levels = append(levels, orderbookv1.PriceLevel{
			Price:         lvl.Price,
			TotalQuantity: lvl.TotalQuantity,
			OrderCount:    lvl.OrderCount(),
		})
		return depth < 0 || len(levels) < depth
	})
	return levels
}

// CreateSnapshot captures every resting order for persistence. Orders are
// listed ladder-walk order, each level's queue front to back, so restoring
// in list order reproduces the exact arrival priority.
func (b *Book) CreateSnapshot() *snapshotv1.Snapshot {
	snapshot := &snapshotv1.Snapshot{}

	capture := func(lvl *orderbookv1.Level) bool {
		for _, id := range lvl.Orders() {
			order := b.orders[id]
			snapshot.Orders = append(snapshot.Orders, snapshotv1.BookOrder{
				OrderID:  order.ID,
				Bid:      order.Bid,
				Price:    order.Price,
				Quantity: order.Quantity,
			})
		}
		return true
	}
	b.bids.Walk(capture)
	b.asks.Walk(capture)

	return snapshot
}

// RestoreSnapshot replaces the book's state with the snapshot's contents.
func (b *Book) RestoreSnapshot(snapshot *snapshotv1.Snapshot) {
	if snapshot == nil {
		return
	}

	b.orders = make(map[uint64]*orderbookv1.Order)
	b.bids = orderbookv1.NewBidLadder()
	b.asks = orderbookv1.NewAskLadder()

	for _, bookOrder := range snapshot.Orders {
		order := orderbookv1.NewLimitOrder(bookOrder.OrderID, bookOrder.Bid, bookOrder.Price, bookOrder.Quantity)
		b.orders[order.ID] = order
		b.sameLadder(order).Add(order.Price, order.Quantity, order.ID)
	}
}

func (b *Book) sameLadder(order *orderbookv1.Order) *orderbookv1.Ladder {
	if order.IsBid() {
		return b.bids
	}
	return b.asks
}

func (b *Book) contraLadder(order *orderbookv1.Order) *orderbookv1.Ladder {
	if order.IsBid() {
		return b.asks
	}
	return b.bids
}

// crosses reports whether the opposite side's best price is executable for a
// limit order: best ask at or under a buy's limit, best bid at or over a
// sell's limit.
func crosses(order *orderbookv1.Order, best float64) bool {
	if order.IsBid() {
		return best <= order.Price
	}
	return best >= order.Price
}
