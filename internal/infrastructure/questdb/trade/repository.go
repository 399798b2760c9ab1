package trade

import (
	"context"
	"fmt"

	"github.com/H-A-R-S-H-K/Scaler-HFT-2027/pkg/errors"
	"github.com/H-A-R-S-H-K/Scaler-HFT-2027/pkg/questdb"
	"github.com/jackc/pgx/v5"
)

// Repository persists executed trades to QuestDB over its Postgres wire
// protocol.
type Repository struct {
	client questdb.QuestDBClient
}

var _ TradeRepository = (*Repository)(nil)

// NewRepository creates a new trade repository.
func NewRepository(client questdb.QuestDBClient) *Repository {
	return &Repository{
		client: client,
	}
}

// EnsureSchema creates the trades table when it does not exist yet.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	query := `CREATE TABLE IF NOT EXISTS trades (
		timestamp TIMESTAMP,
		pair SYMBOL,
		buy_order_id LONG,
		sell_order_id LONG,
		price DOUBLE,
		quantity LONG
	) TIMESTAMP(timestamp) PARTITION BY DAY`

	if err := r.client.Exec(ctx, query); err != nil {
		return errors.NewTracer(errors.TradeStoreError).Wrap(err)
	}
	return nil
}

// Store persists a single trade.
func (r *Repository) Store(ctx context.Context, row *Row) error {
	query := `INSERT INTO trades (timestamp, pair, buy_order_id, sell_order_id, price, quantity)
			  VALUES ($1, $2, $3, $4, $5, $6)`

	err := r.client.Exec(ctx, query,
		row.Timestamp, row.Pair, row.BuyOrderID, row.SellOrderID, row.Price, row.Quantity)
	if err != nil {
		return errors.NewTracer(errors.TradeStoreError).Wrap(err)
	}

	return nil
}

// StoreBatch persists every trade from one matching pass.
func (r *Repository) StoreBatch(ctx context.Context, rows []*Row) error {
	if len(rows) == 0 {
		return nil
	}

	_, err := r.client.CopyFrom(
		ctx,
		pgx.Identifier{"trades"},
		[]string{"timestamp", "pair", "buy_order_id", "sell_order_id", "price", "quantity"},
		pgx.CopyFromSlice(len(rows), func(i int) ([]any, error) {
			row := rows[i]
			return []any{
				row.Timestamp,
				row.Pair,
				row.BuyOrderID,
				row.SellOrderID,
				row.Price,
				row.Quantity,
			}, nil
		}),
	)
	if err != nil {
		return errors.NewTracer(errors.TradeStoreError).Wrap(err)
	}

	return nil
}

// GetByFilter retrieves trades matching the filter, newest first.
func (r *Repository) GetByFilter(ctx context.Context, filter Filter) ([]*Row, error) {
	query := "SELECT timestamp, pair, buy_order_id, sell_order_id, price, quantity FROM trades WHERE 1=1"
	args := []any{}
	argIndex := 1

	if filter.Pair != "" {
		query += fmt.Sprintf(" AND pair = $%d", argIndex)
		args = append(args, filter.Pair)
		argIndex++
	}

	if filter.From != nil {
		query += fmt.Sprintf(" AND timestamp >= $%d", argIndex)
		args = append(args, *filter.From)
		argIndex++
	}

	if filter.To != nil {
		query += fmt.Sprintf(" AND timestamp <= $%d", argIndex)
		args = append(args, *filter.To)
		argIndex++
	}

	query += " ORDER BY timestamp DESC"

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIndex)
		args = append(args, filter.Limit)
		argIndex++
	}

	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argIndex)
		args = append(args, filter.Offset)
	}

	rows, err := r.client.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.NewTracer(errors.TradeQueryError).Wrap(err)
	}
	defer rows.Close()

	var result []*Row
	for rows.Next() {
		row := &Row{}
		err := rows.Scan(&row.Timestamp, &row.Pair, &row.BuyOrderID, &row.SellOrderID, &row.Price, &row.Quantity)
		if err != nil {
			return nil, errors.NewTracer(errors.TradeQueryError).Wrap(err)
		}
		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.NewTracer(errors.TradeQueryError).Wrap(err)
	}

	return result, nil
}

// GetLatestByPair retrieves the most recent trade for the pair, or nil when
// none has been recorded.
func (r *Repository) GetLatestByPair(ctx context.Context, pair string) (*Row, error) {
	query := `SELECT timestamp, pair, buy_order_id, sell_order_id, price, quantity
			  FROM trades
			  WHERE pair = $1
			  ORDER BY timestamp DESC
			  LIMIT 1`

	row := &Row{}
	err := r.client.QueryRow(ctx, query, pair).Scan(
		&row.Timestamp, &row.Pair, &row.BuyOrderID, &row.SellOrderID, &row.Price, &row.Quantity)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, errors.NewTracer(errors.TradeQueryError).Wrap(err)
	}

	return row, nil
}
