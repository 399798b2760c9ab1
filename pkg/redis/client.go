package redis

import (
	"context"
	"time"

	"github.com/H-A-R-S-H-K/Scaler-HFT-2027/pkg/errors"
	"github.com/redis/go-redis/v9"
)

// Client defines the subset of redis commands the service uses.
type Client interface {
	Connect(ctx context.Context) error
	Close() error
	Ping(ctx context.Context) error

	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Del(ctx context.Context, keys ...string) (int64, error)
}

// Config holds the configuration for the redis client.
type Config struct {
	Addr     string `env:"ADDRESS" envDefault:"localhost:6379"`
	Username string `env:"USERNAME"`
	Password string `env:"PASSWORD"`
	DB       int    `env:"DB" envDefault:"0"`

	ConnectTimeout time.Duration `env:"CONNECT_TIMEOUT" envDefault:"5s"`
	PoolSize       int           `env:"POOL_SIZE" envDefault:"10"`
}

// DefaultConfig returns a Config with local defaults.
func DefaultConfig() *Config {
	return &Config{
		Addr:           "localhost:6379",
		DB:             0,
		ConnectTimeout: 5 * time.Second,
		PoolSize:       10,
	}
}

type client struct {
	config *Config
	rdb    *redis.Client
}

// NewClient creates a new redis client with the provided configuration.
// Connect must be called before any command.
func NewClient(config *Config) Client {
	return &client{config: config}
}

func (c *client) Connect(ctx context.Context) error {
	if c.config == nil || c.config.Addr == "" {
		return errors.NewTracer(errors.ConfigLoadError).Wrap(redis.ErrClosed)
	}

	c.rdb = redis.NewClient(&redis.Options{
		Addr:         c.config.Addr,
		Username:     c.config.Username,
		Password:     c.config.Password,
		DB:           c.config.DB,
		DialTimeout:  c.config.ConnectTimeout,
		ReadTimeout:  c.config.ConnectTimeout,
		WriteTimeout: c.config.ConnectTimeout,
		PoolSize:     c.config.PoolSize,
	})

	return c.Ping(ctx)
}

func (c *client) Close() error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}

func (c *client) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

// Get returns the value at key, or "" when the key does not exist.
func (c *client) Get(ctx context.Context, key string) (string, error) {
	val, err := c.rdb.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", nil
	}
	return val, err
}

func (c *client) Set(ctx context.Context, key string, value any, expiration time.Duration) error {
	return c.rdb.Set(ctx, key, value, expiration).Err()
}

func (c *client) Del(ctx context.Context, keys ...string) (int64, error) {
	return c.rdb.Del(ctx, keys...).Result()
}
