package orderbookv1

// Level is one price level of a ladder: the aggregate of every resting
// order at that price on one side, plus the arrival-ordered queue of their
// ids. A level exists only while its aggregate quantity is positive.
type Level struct {
	Price         float64
	TotalQuantity uint64
	queue         []uint64
}

// OrderCount returns the number of resting orders at this level.
func (l *Level) OrderCount() int {
	return len(l.queue)
}

// Orders returns the resting order ids at this level in arrival order.
// The returned slice is a copy, safe to hold across mutations.
func (l *Level) Orders() []uint64 {
	ids := make([]uint64, len(l.queue))
	copy(ids, l.queue)
	return ids
}

// RemoveID detaches one order id from the level's queue. Removing an id
// that is not queued is a no-op.
func (l *Level) RemoveID(id uint64) {
	for i, queued := range l.queue {
		if queued == id {
			l.queue = append(l.queue[:i], l.queue[i+1:]...)
			return
		}
	}
}

func (l *Level) enqueue(id uint64) {
	l.queue = append(l.queue, id)
}

// Ladder is one side's price-indexed aggregate view. Bids iterate from the
// highest price down, asks from the lowest price up, so Walk always visits
// the best level first.
type Ladder struct {
	tree *rbTree
	bids bool
}

// NewBidLadder creates the buy-side ladder (best = highest price).
func NewBidLadder() *Ladder {
	return &Ladder{tree: newRBTree(), bids: true}
}

// NewAskLadder creates the sell-side ladder (best = lowest price).
func NewAskLadder() *Ladder {
	return &Ladder{tree: newRBTree(), bids: false}
}

// Add registers qty of order id at price, creating the level when absent.
// The id joins the tail of the level's arrival queue.
func (ld *Ladder) Add(price float64, qty uint64, id uint64) {
	lvl := ld.tree.upsert(price)
	lvl.TotalQuantity += qty
	lvl.enqueue(id)
}

// Reduce subtracts qty from the level at price. When the aggregate reaches
// zero the level is removed entirely. Callers only ever subtract an amount
// known to be at most the current aggregate.
func (ld *Ladder) Reduce(price float64, qty uint64) {
	n := ld.tree.find(price)
	if n == ld.tree.nil {
		return
	}
	n.level.TotalQuantity -= qty
	if n.level.TotalQuantity == 0 {
		ld.tree.deleteNode(n)
	}
}

// Remove releases an order's full contribution: qty off the aggregate and
// its id out of the queue. Used by cancellation and the first half of an
// amendment.
func (ld *Ladder) Remove(price float64, id uint64, qty uint64) {
	n := ld.tree.find(price)
	if n == ld.tree.nil {
		return
	}
	n.level.RemoveID(id)
	n.level.TotalQuantity -= qty
	if n.level.TotalQuantity == 0 {
		ld.tree.deleteNode(n)
	}
}

// FindLevel returns the level at price, or nil.
func (ld *Ladder) FindLevel(price float64) *Level {
	n := ld.tree.find(price)
	if n == ld.tree.nil {
		return nil
	}
	return n.level
}

// BestLevel returns the best level of this side, or nil when empty.
func (ld *Ladder) BestLevel() *Level {
	var n *rbNode
	if ld.bids {
		n = ld.tree.maxNode(ld.tree.root)
	} else {
		n = ld.tree.minNode(ld.tree.root)
	}
	if n == ld.tree.nil {
		return nil
	}
	return n.level
}

// Best returns the best price of this side. The boolean distinguishes an
// empty ladder from a genuine zero price.
func (ld *Ladder) Best() (float64, bool) {
	lvl := ld.BestLevel()
	if lvl == nil {
		return 0, false
	}
	return lvl.Price, true
}

// Walk visits levels best-first until fn returns false.
func (ld *Ladder) Walk(fn func(*Level) bool) {
	if ld.bids {
		ld.tree.forEachDescending(fn)
	} else {
		ld.tree.forEachAscending(fn)
	}
}

// Levels returns the number of price levels currently present.
func (ld *Ladder) Levels() int {
	return ld.tree.size
}

// Empty reports whether the ladder has no levels.
func (ld *Ladder) Empty() bool {
	return ld.tree.size == 0
}
