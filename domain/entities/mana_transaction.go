package entities

import (
	"errors"
	"time"
)

// ManaTransaction represents one entry in the append-only mana ledger.
// The user's balance must always equal the sum of their transaction amounts;
// corrections are modeled as new offsetting transactions, never as edits.
type ManaTransaction struct {
	ID              int64           `db:"id"`
	UserID          int64           `db:"user_id"`
	Amount          int64           `db:"amount"` // positive=credit, negative=debit
	TransactionType TransactionType `db:"transaction_type"`
	Description     string          `db:"description"`
	Reference       *string         `db:"reference"` // external id, e.g. a payment intent
	BalanceBefore   int64           `db:"balance_before"`
	BalanceAfter    int64           `db:"balance_after"`
	CreatedAt       time.Time       `db:"created_at"`
}

// IsCredit returns true if the transaction added mana
func (t *ManaTransaction) IsCredit() bool {
	return t.Amount > 0
}

// IsDebit returns true if the transaction removed mana
func (t *ManaTransaction) IsDebit() bool {
	return t.Amount < 0
}

// Validate performs basic consistency checks on the transaction
func (t *ManaTransaction) Validate() error {
	if err := t.TransactionType.ValidateAmount(t.Amount); err != nil {
		return err
	}
	if t.BalanceAfter != t.BalanceBefore+t.Amount {
		return errors.New("balance calculation is inconsistent")
	}
	if t.BalanceAfter < 0 {
		return errors.New("balance cannot go negative")
	}
	return nil
}
