package snapshot

import (
	"context"
	"testing"
	"time"

	snapshotv1 "github.com/H-A-R-S-H-K/Scaler-HFT-2027/internal/domain/snapshot/v1"
	"github.com/H-A-R-S-H-K/Scaler-HFT-2027/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRedis is an in-memory redis.Client for tests.
type fakeRedis struct {
	data map[string]string
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: make(map[string]string)}
}

func (f *fakeRedis) Connect(context.Context) error { return nil }
func (f *fakeRedis) Close() error                  { return nil }
func (f *fakeRedis) Ping(context.Context) error    { return nil }

func (f *fakeRedis) Get(_ context.Context, key string) (string, error) {
	return f.data[key], nil
}

func (f *fakeRedis) Set(_ context.Context, key string, value any, _ time.Duration) error {
	f.data[key] = string(value.([]byte))
	return nil
}

func (f *fakeRedis) Del(_ context.Context, keys ...string) (int64, error) {
	var n int64
	for _, key := range keys {
		if _, ok := f.data[key]; ok {
			delete(f.data, key)
			n++
		}
	}
	return n, nil
}

func newTestStore(t *testing.T) (*Store, *fakeRedis) {
	t.Helper()

	log, err := logger.NewLogger()
	require.NoError(t, err)

	rclient := newFakeRedis()
	return NewStore(rclient, "BTC/USD", log), rclient
}

func TestStore_RoundTrip(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	snapshot := &snapshotv1.Snapshot{
		OrderOffset: 7,
		Orders: []snapshotv1.BookOrder{
			{OrderID: 1, Bid: true, Price: 99.0, Quantity: 10},
			{OrderID: 2, Bid: false, Price: 101.0, Quantity: 5},
		},
	}

	require.NoError(t, store.Store(ctx, snapshot))

	loaded, err := store.LoadStore(ctx)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, int64(7), loaded.OrderOffset)
	assert.Equal(t, snapshot.Orders, loaded.Orders)
}

func TestStore_LoadMissingReturnsNil(t *testing.T) {
	store, _ := newTestStore(t)

	loaded, err := store.LoadStore(context.Background())
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestStore_KeyedByPair(t *testing.T) {
	store, rclient := newTestStore(t)

	require.NoError(t, store.Store(context.Background(), &snapshotv1.Snapshot{OrderOffset: 1}))

	_, ok := rclient.data["BTC/USD"]
	assert.True(t, ok)
}
