package config

import (
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// MustLoad loads the configuration from environment variables and .env file,
// panicking when parsing fails.
func MustLoad[T any](cfg T) {
	_ = godotenv.Load()

	env.Must(cfg, env.Parse(cfg))
}

// Load loads the configuration from environment variables and .env file.
// A missing .env file is not an error.
func Load[T any](cfg T) error {
	_ = godotenv.Load()

	return env.Parse(cfg)
}

// Config holds the configuration for the order book service.
type Config struct {
	Pair string `env:"PAIR,required"` // instrument handled by this book, e.g. BTC/USD

	KafkaConfig   `envPrefix:"KAFKA_"`
	RedisConfig   `envPrefix:"REDIS_"`
	QuestDBConfig `envPrefix:"QUESTDB_"`
	HTTPConfig    `envPrefix:"HTTP_"`
}

// KafkaConfig holds the configuration for the order topic consumer and the
// trade topic producer.
type KafkaConfig struct {
	OrderTopic string   `env:"ORDER_TOPIC,required"`
	TradeTopic string   `env:"TRADE_TOPIC,required"`
	GroupID    string   `env:"GROUP_ID" envDefault:"orderbook"`
	Brokers    []string `env:"BROKER,required"`
}

// RedisConfig holds the configuration for the snapshot store client.
type RedisConfig struct {
	Addr     string `env:"ADDRESS" envDefault:"localhost:6379"`
	Username string `env:"USERNAME" envDefault:""`
	Password string `env:"PASSWORD" envDefault:""`
	DB       int    `env:"DB" envDefault:"0"`
}

// QuestDBConfig holds the configuration for trade persistence. Persistence
// is optional; an empty host disables it.
type QuestDBConfig struct {
	Host     string `env:"HOST" envDefault:""`
	Port     int    `env:"PORT" envDefault:"8812"`
	Database string `env:"DATABASE" envDefault:"qdb"`
	Username string `env:"USERNAME" envDefault:"admin"`
	Password string `env:"PASSWORD" envDefault:"quest"`
}

// HTTPConfig holds the configuration for the query/submission API.
type HTTPConfig struct {
	Addr            string        `env:"ADDRESS" envDefault:":8080"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}
