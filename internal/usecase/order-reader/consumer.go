package orderreader

import (
	"context"
	"encoding/json"

	orderreaderv1 "github.com/H-A-R-S-H-K/Scaler-HFT-2027/internal/domain/order-reader/v1"
	"github.com/H-A-R-S-H-K/Scaler-HFT-2027/pkg/config"
	"github.com/H-A-R-S-H-K/Scaler-HFT-2027/pkg/errors"
	"github.com/H-A-R-S-H-K/Scaler-HFT-2027/pkg/logger"
	"github.com/segmentio/kafka-go"
)

// Reader consumes order instructions from the order topic.
type Reader struct {
	kafkaReader *kafka.Reader
	logger      logger.Interface
}

var _ orderreaderv1.OrderReader = (*Reader)(nil)

// NewReader creates a Kafka reader for the order topic.
func NewReader(cfg config.KafkaConfig, log logger.Interface) *Reader {
	kafkaReader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     cfg.Brokers,
		Topic:       cfg.OrderTopic,
		Partition:   0,
		MinBytes:    1,
		MaxBytes:    10e6,
		StartOffset: kafka.LastOffset,
	})

	return &Reader{
		kafkaReader: kafkaReader,
		logger:      log,
	}
}

func (r *Reader) logError(err error, operation string) {
	r.logger.Error(err,
		logger.Field{Key: "operation", Value: operation},
	)
}

// SetOffset positions the reader, used when resuming from a snapshot.
func (r *Reader) SetOffset(offset int64) error {
	if err := r.kafkaReader.SetOffset(offset); err != nil {
		r.logError(err, "SetOffset")
		return errors.NewTracer(errors.OrderReadError).Wrap(err)
	}
	return nil
}

// ReadMessage reads one message from the order topic and decodes its
// instruction. The message's offset is stamped onto the instruction so
// snapshots can record how far the stream has been consumed.
func (r *Reader) ReadMessage(ctx context.Context) (kafka.Message, *orderreaderv1.Instruction, error) {
	msg, err := r.kafkaReader.ReadMessage(ctx)
	if err != nil {
		r.logError(err, "ReadMessage")
		return kafka.Message{}, nil, errors.NewTracer(errors.OrderReadError).Wrap(err)
	}

	var instruction orderreaderv1.Instruction
	if err := json.Unmarshal(msg.Value, &instruction); err != nil {
		r.logError(err, "UnmarshalInstruction")
		return kafka.Message{}, nil, errors.NewTracer(errors.OrderDecodeError).Wrap(err)
	}

	r.logger.Debug("ReadMessage",
		logger.Field{Key: "op", Value: instruction.Op},
		logger.Field{Key: "orderID", Value: instruction.OrderID},
		logger.Field{Key: "price", Value: instruction.Price},
		logger.Field{Key: "quantity", Value: instruction.Quantity},
		logger.Field{Key: "offset", Value: msg.Offset},
	)

	instruction.Offset = msg.Offset

	return msg, &instruction, nil
}

// Close properly closes the Kafka reader.
func (r *Reader) Close() error {
	if err := r.kafkaReader.Close(); err != nil {
		r.logError(err, "Close")
		return err
	}
	return nil
}

// CommitMessages commits the messages to Kafka after processing. The reader
// runs without a consumer group, so offsets are tracked via snapshots and
// this is a no-op.
func (r *Reader) CommitMessages(ctx context.Context, msgs ...kafka.Message) error {
	return nil
}
