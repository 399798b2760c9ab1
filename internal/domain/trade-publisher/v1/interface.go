package tradepublisherv1

import "context"

// TradePublisher defines the interface for publishing executed trades.
type TradePublisher interface {
	// PublishTrade publishes a trade event to the trade topic.
	PublishTrade(ctx context.Context, event *TradeEvent) error
}
