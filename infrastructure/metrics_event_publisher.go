package infrastructure

import (
	"akashic/domain/events"
	"akashic/domain/interfaces"
	"akashic/infrastructure/observability"
)

// MetricsEventPublisher decorates an event publisher with ledger metrics.
// Events reach the post-commit publisher exactly once per committed
// transaction, so counting here covers every transaction type regardless of
// which service recorded it.
type MetricsEventPublisher struct {
	next    interfaces.EventPublisher
	metrics *observability.MetricsProvider
}

// NewMetricsEventPublisher wraps next, recording metrics before delegating
func NewMetricsEventPublisher(next interfaces.EventPublisher, metrics *observability.MetricsProvider) *MetricsEventPublisher {
	return &MetricsEventPublisher{
		next:    next,
		metrics: metrics,
	}
}

// Publish records metrics for ledger events and delegates to the wrapped publisher
func (p *MetricsEventPublisher) Publish(event events.Event) error {
	if e, ok := event.(events.ManaTransactionEvent); ok {
		p.metrics.RecordManaTransaction(e.TransactionType.String())
	}
	return p.next.Publish(event)
}
