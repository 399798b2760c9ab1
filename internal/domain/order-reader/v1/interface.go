package orderreaderv1

import (
	"context"

	"github.com/segmentio/kafka-go"
)

// OrderReader defines the interface for reading order instructions from a source.
type OrderReader interface {
	// ReadMessage reads a message and returns it with the parsed instruction
	ReadMessage(ctx context.Context) (kafka.Message, *Instruction, error)
	// SetOffset sets the offset for the reader
	SetOffset(offset int64) error
	// Close closes the reader
	Close() error

	// CommitMessages commits the messages to Kafka after processing
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
}
