package entities

import "fmt"

// TransactionType represents the type of mana balance change
type TransactionType string

const (
	// TransactionTypePurchase credits mana bought through an external payment
	TransactionTypePurchase TransactionType = "purchase"
	// TransactionTypeSpend debits mana for oracle questions, crafting and similar
	TransactionTypeSpend TransactionType = "spend"
	// TransactionTypeEarn credits mana from in-app activity, including refunds
	TransactionTypeEarn TransactionType = "earn"
	// TransactionTypeReward credits system grants such as the welcome bonus
	TransactionTypeReward TransactionType = "reward"
)

// IsValid returns true for a known transaction type
func (tt TransactionType) IsValid() bool {
	switch tt {
	case TransactionTypePurchase, TransactionTypeSpend, TransactionTypeEarn, TransactionTypeReward:
		return true
	}
	return false
}

// IsCredit returns true if the transaction type must carry a positive amount
func (tt TransactionType) IsCredit() bool {
	return tt == TransactionTypePurchase || tt == TransactionTypeEarn || tt == TransactionTypeReward
}

// IsDebit returns true if the transaction type must carry a negative amount
func (tt TransactionType) IsDebit() bool {
	return tt == TransactionTypeSpend
}

// ValidateAmount checks that the signed amount agrees with the type
func (tt TransactionType) ValidateAmount(amount int64) error {
	if !tt.IsValid() {
		return fmt.Errorf("unknown transaction type %q", string(tt))
	}
	if amount == 0 {
		return fmt.Errorf("transaction amount cannot be zero")
	}
	if tt.IsCredit() && amount < 0 {
		return fmt.Errorf("%s transactions must have a positive amount", tt)
	}
	if tt.IsDebit() && amount > 0 {
		return fmt.Errorf("%s transactions must have a negative amount", tt)
	}
	return nil
}

// String returns the string representation of the transaction type
func (tt TransactionType) String() string {
	return string(tt)
}
