package tradepublisher

import (
	"context"
	"crypto/rand"

	orderbookv1 "github.com/H-A-R-S-H-K/Scaler-HFT-2027/internal/domain/orderbook/v1"
	tradepublisherv1 "github.com/H-A-R-S-H-K/Scaler-HFT-2027/internal/domain/trade-publisher/v1"
	"github.com/H-A-R-S-H-K/Scaler-HFT-2027/pkg/config"
	"github.com/H-A-R-S-H-K/Scaler-HFT-2027/pkg/errors"
	"github.com/H-A-R-S-H-K/Scaler-HFT-2027/pkg/logger"
	"github.com/oklog/ulid/v2"
	"github.com/segmentio/kafka-go"
)

// Publisher writes executed trades to the trade topic. Each event gets a
// ULID so downstream consumers can dedupe and sort by creation time.
type Publisher struct {
	pair        string
	kafkaWriter *kafka.Writer
	logger      logger.Interface
}

var _ tradepublisherv1.TradePublisher = (*Publisher)(nil)

// NewPublisher creates a Kafka publisher for the trade topic.
func NewPublisher(cfg config.KafkaConfig, pair string, log logger.Interface) *Publisher {
	kafkaWriter := kafka.NewWriter(kafka.WriterConfig{
		Brokers: cfg.Brokers,
		Topic:   cfg.TradeTopic,
	})

	return &Publisher{
		pair:        pair,
		kafkaWriter: kafkaWriter,
		logger:      log,
	}
}

// PublishTrade publishes a single trade event.
func (p *Publisher) PublishTrade(ctx context.Context, event *tradepublisherv1.TradeEvent) error {
	msg := kafka.Message{
		Key:   []byte(p.pair),
		Value: tradepublisherv1.ToBytes(event),
	}

	if err := p.kafkaWriter.WriteMessages(ctx, msg); err != nil {
		p.logger.ErrorContext(ctx, err,
			logger.Field{Key: "tradeEvent", Value: event},
		)
		return errors.NewTracer(errors.TradePublishError).Wrap(err)
	}
	return nil
}

// PublishTrades publishes every trade from one matching pass, in execution
// order. Publishing stops at the first failure.
func (p *Publisher) PublishTrades(ctx context.Context, trades []orderbookv1.Trade) error {
	for _, trade := range trades {
		event := tradepublisherv1.CreateFromTrade(trade, p.pair, ulid.MustNew(ulid.Now(), rand.Reader).String())
		if err := p.PublishTrade(ctx, event); err != nil {
			return err
		}
	}
	return nil
}

// Close flushes and closes the Kafka writer.
func (p *Publisher) Close() error {
	return p.kafkaWriter.Close()
}
