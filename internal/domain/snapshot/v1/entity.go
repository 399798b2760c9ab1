package snapshotv1

// Snapshot captures the full resting state of the order book at a point in
// time, plus the order-stream offset it was taken at so replay can resume
// from the right instruction.
type Snapshot struct {
	OrderOffset int64       `json:"orderOffset"`
	Orders      []BookOrder `json:"orders"`
}

// BookOrder is one resting order inside a snapshot. Orders appear in ladder
// walk order with each price level front to back, so re-adding them in list
// order rebuilds the original queue priority.
type BookOrder struct {
	OrderID  uint64  `json:"orderID"`
	Bid      bool    `json:"bid"`
	Price    float64 `json:"price"`
	Quantity uint64  `json:"quantity"`
}
