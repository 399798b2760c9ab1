package errors

import "github.com/pkg/errors"

// ErrorCode identifies a failure class reported by the service's
// infrastructure layers. The book core itself signals outcomes through
// return values and never produces these.
type ErrorCode string

const (
	// ConfigLoadError is returned when environment configuration cannot be parsed.
	ConfigLoadError ErrorCode = "config_load_error"

	// OrderReadError is returned when an instruction cannot be read from the order topic.
	OrderReadError ErrorCode = "order_read_error"
	// OrderDecodeError is returned when an instruction payload fails to decode.
	OrderDecodeError ErrorCode = "order_decode_error"
	// TradePublishError is returned when a trade event cannot be written to the trade topic.
	TradePublishError ErrorCode = "trade_publish_error"

	// SnapshotMarshalError is returned when a book snapshot cannot be serialized.
	SnapshotMarshalError ErrorCode = "snapshot_marshal_error"
	// SnapshotStoreError is returned when a book snapshot cannot be written to redis.
	SnapshotStoreError ErrorCode = "snapshot_store_error"
	// SnapshotLoadError is returned when a book snapshot cannot be read back.
	SnapshotLoadError ErrorCode = "snapshot_load_error"

	// TradeStoreError is returned when executed trades cannot be persisted.
	TradeStoreError ErrorCode = "trade_store_error"
	// TradeQueryError is returned when persisted trades cannot be queried.
	TradeQueryError ErrorCode = "trade_query_error"
)

// ErrorTracer is an error carrying a message plus an underlying cause with
// a stack trace, so pkg/logger can surface where the failure originated.
type ErrorTracer struct {
	Code ErrorCode
	Err  error
}

// NewTracer creates an ErrorTracer for the given code.
func NewTracer(code ErrorCode) *ErrorTracer {
	return &ErrorTracer{Code: code}
}

// StackTracer is implemented by errors that expose a pkg/errors stack trace.
type StackTracer interface {
	StackTrace() errors.StackTrace
}

func (e *ErrorTracer) Error() string {
	if e.Err != nil {
		return string(e.Code) + ": " + e.Err.Error()
	}
	return string(e.Code)
}

func (e *ErrorTracer) Unwrap() error {
	return e.Err
}

// Wrap attaches an underlying error, capturing a stack trace if the error
// does not already carry one.
func (e *ErrorTracer) Wrap(err error) *ErrorTracer {
	e.Err = err
	if _, ok := err.(StackTracer); !ok {
		e.Err = errors.WithStack(err)
	}
	return e
}

// StackTrace returns the stack trace of the underlying error, if any.
func (e *ErrorTracer) StackTrace() errors.StackTrace {
	if st, ok := e.Unwrap().(StackTracer); ok {
		return st.StackTrace()
	}
	return nil
}
