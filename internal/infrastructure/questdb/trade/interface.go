package trade

import (
	"context"
)

// TradeRepository is the interface for the trade repository.
type TradeRepository interface {
	EnsureSchema(ctx context.Context) error
	Store(ctx context.Context, row *Row) error
	StoreBatch(ctx context.Context, rows []*Row) error
	GetByFilter(ctx context.Context, filter Filter) ([]*Row, error)
	GetLatestByPair(ctx context.Context, pair string) (*Row, error)
}
