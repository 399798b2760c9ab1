package snapshot

import (
	"context"
	"encoding/json"

	snapshotv1 "github.com/H-A-R-S-H-K/Scaler-HFT-2027/internal/domain/snapshot/v1"
	"github.com/H-A-R-S-H-K/Scaler-HFT-2027/pkg/errors"
	"github.com/H-A-R-S-H-K/Scaler-HFT-2027/pkg/logger"
	"github.com/H-A-R-S-H-K/Scaler-HFT-2027/pkg/redis"
)

// Store persists order book snapshots in Redis, keyed by trading pair.
type Store struct {
	pair        string
	logger      *logger.Logger
	redisclient redis.Client
}

// NewStore creates a snapshot store for the given pair.
func NewStore(redisclient redis.Client, pair string, logger *logger.Logger) *Store {
	return &Store{
		pair:        pair,
		redisclient: redisclient,
		logger:      logger,
	}
}

// Store serializes the snapshot and writes it to Redis.
func (s *Store) Store(ctx context.Context, snapshot *snapshotv1.Snapshot) error {
	buf, err := json.Marshal(snapshot)
	if err != nil {
		s.logger.ErrorContext(ctx, err, logger.NewField("pair", s.pair))
		return errors.NewTracer(errors.SnapshotMarshalError).Wrap(err)
	}

	if err := s.redisclient.Set(ctx, s.pair, buf, 0); err != nil {
		s.logger.ErrorContext(ctx, err, logger.NewField("pair", s.pair))
		return errors.NewTracer(errors.SnapshotStoreError).Wrap(err)
	}

	s.logger.InfoContext(ctx, "snapshot stored",
		logger.NewField("pair", s.pair),
		logger.NewField("order_offset", snapshot.OrderOffset),
		logger.NewField("resting_orders", len(snapshot.Orders)),
	)
	return nil
}

// LoadStore reads the latest snapshot for the pair from Redis. It returns
// (nil, nil) when no snapshot has been stored yet.
func (s *Store) LoadStore(ctx context.Context) (*snapshotv1.Snapshot, error) {
	data, err := s.redisclient.Get(ctx, s.pair)
	if err != nil {
		s.logger.ErrorContext(ctx, err, logger.NewField("pair", s.pair))
		return nil, errors.NewTracer(errors.SnapshotLoadError).Wrap(err)
	}

	if data == "" {
		s.logger.WarnContext(ctx, "no snapshot found", logger.NewField("pair", s.pair))
		return nil, nil
	}

	var snapshot snapshotv1.Snapshot
	if err := json.Unmarshal([]byte(data), &snapshot); err != nil {
		s.logger.ErrorContext(ctx, err, logger.NewField("pair", s.pair))
		return nil, errors.NewTracer(errors.SnapshotLoadError).Wrap(err)
	}

	return &snapshot, nil
}
