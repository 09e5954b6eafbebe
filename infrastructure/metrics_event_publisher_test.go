package infrastructure

import (
	"testing"

	"akashic/config"
	"akashic/domain/events"
	"akashic/infrastructure/observability"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturePublisher struct {
	published []events.Event
}

func (c *capturePublisher) Publish(event events.Event) error {
	c.published = append(c.published, event)
	return nil
}

func TestMetricsEventPublisher_DelegatesAllEvents(t *testing.T) {
	inner := &capturePublisher{}
	metrics := observability.NewMetricsProvider(config.NewTestConfig())

	publisher := NewMetricsEventPublisher(inner, metrics)

	ledgerEvent := events.ManaTransactionEvent{UserID: 1, Amount: -30}
	unlockEvent := events.ScrollUnlockedEvent{UserID: 1, ScrollID: 2}

	require.NoError(t, publisher.Publish(ledgerEvent))
	require.NoError(t, publisher.Publish(unlockEvent))

	require.Len(t, inner.published, 2)
	assert.Equal(t, ledgerEvent, inner.published[0])
	assert.Equal(t, unlockEvent, inner.published[1])
}
