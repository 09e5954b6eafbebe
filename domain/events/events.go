package events

import "akashic/domain/entities"

// EventType represents different types of events in the system
type EventType string

const (
	EventTypeManaTransaction EventType = "mana_transaction"
	EventTypeUserRegistered  EventType = "user_registered"
	EventTypeScrollUnlocked  EventType = "scroll_unlocked"
	EventTypeCraftingClaimed EventType = "crafting_claimed"
)

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// ManaTransactionEvent represents a recorded ledger transaction
type ManaTransactionEvent struct {
	UserID          int64                    `json:"user_id"`
	TransactionID   int64                    `json:"transaction_id"`
	Amount          int64                    `json:"amount"`
	TransactionType entities.TransactionType `json:"transaction_type"`
	BalanceAfter    int64                    `json:"balance_after"`
}

func (e ManaTransactionEvent) Type() EventType {
	return EventTypeManaTransaction
}

// UserRegisteredEvent represents a new account creation
type UserRegisteredEvent struct {
	UserID       int64  `json:"user_id"`
	Username     string `json:"username"`
	WelcomeBonus int64  `json:"welcome_bonus"`
}

func (e UserRegisteredEvent) Type() EventType {
	return EventTypeUserRegistered
}

// ScrollUnlockedEvent represents a successful first-time unlock
type ScrollUnlockedEvent struct {
	UserID   int64 `json:"user_id"`
	ScrollID int64 `json:"scroll_id"`
}

func (e ScrollUnlockedEvent) Type() EventType {
	return EventTypeScrollUnlocked
}

// CraftingClaimedEvent represents a collected craft result
type CraftingClaimedEvent struct {
	UserID     int64  `json:"user_id"`
	QueueID    int64  `json:"queue_id"`
	RecipeID   int64  `json:"recipe_id"`
	ResultName string `json:"result_name"`
}

func (e CraftingClaimedEvent) Type() EventType {
	return EventTypeCraftingClaimed
}
