package entities

import "time"

// ManaPackage is a purchasable bundle of mana. Payment itself happens in an
// external processor; the server only records the completed purchase.
type ManaPackage struct {
	ID         int64     `db:"id"`
	Name       string    `db:"name"`
	ManaAmount int64     `db:"mana_amount"`
	PriceCents int64     `db:"price_cents"`
	Active     bool      `db:"active"`
	CreatedAt  time.Time `db:"created_at"`
}
