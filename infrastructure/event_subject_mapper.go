package infrastructure

import (
	"fmt"

	"akashic/domain/events"
)

// EventSubjectMapper handles mapping between domain events and NATS subjects
type EventSubjectMapper struct{}

// NewEventSubjectMapper creates a new event subject mapper
func NewEventSubjectMapper() *EventSubjectMapper {
	return &EventSubjectMapper{}
}

// MapEventToSubject converts a domain event to its corresponding NATS subject
func (m *EventSubjectMapper) MapEventToSubject(event events.Event) string {
	switch event.Type() {
	case events.EventTypeManaTransaction:
		return "ledger.transaction_recorded"
	case events.EventTypeUserRegistered:
		return "accounts.registered"
	case events.EventTypeScrollUnlocked:
		return "scrolls.unlocked"
	case events.EventTypeCraftingClaimed:
		return "crafting.claimed"
	default:
		return fmt.Sprintf("unknown.%s", event.Type())
	}
}

// GetAllSubjects returns all subjects that this service publishes to
func (m *EventSubjectMapper) GetAllSubjects() []string {
	return []string{
		"ledger.transaction_recorded",
		"accounts.registered",
		"scrolls.unlocked",
		"crafting.claimed",
	}
}
