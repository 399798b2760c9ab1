package trade

import (
	"time"
)

// Row represents one executed trade persisted to QuestDB.
type Row struct {
	Timestamp   time.Time
	Pair        string
	BuyOrderID  int64
	SellOrderID int64
	Price       float64
	Quantity    int64
}

// Filter represents the filter criteria for trade history queries.
type Filter struct {
	Pair   string
	From   *time.Time
	To     *time.Time
	Limit  int
	Offset int
}
