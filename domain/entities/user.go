package entities

import (
	"errors"
	"time"
)

// User represents a registered archive account with its mana balance
type User struct {
	ID               int64     `db:"id"`
	Username         string    `db:"username"`
	Email            string    `db:"email"`
	PasswordHash     string    `db:"password_hash"`
	Phone            *string   `db:"phone"`
	ManaBalance      int64     `db:"mana_balance"`
	StripeCustomerID *string   `db:"stripe_customer_id"`
	CreatedAt        time.Time `db:"created_at"`
	UpdatedAt        time.Time `db:"updated_at"`
}

// CanAfford checks if the user has sufficient mana for an amount
func (u *User) CanAfford(amount int64) bool {
	return u.ManaBalance >= amount
}

// ValidateSpend checks if an amount is a valid spend (positive and affordable)
func (u *User) ValidateSpend(amount int64) error {
	if amount <= 0 {
		return errors.New("spend amount must be positive")
	}
	if !u.CanAfford(amount) {
		return ErrInsufficientMana
	}
	return nil
}

// CalculateNewBalance calculates what the balance would be after a change
func (u *User) CalculateNewBalance(changeAmount int64) int64 {
	return u.ManaBalance + changeAmount
}
