package entities

import "time"

// InventoryItem is a stack of identical items owned by a user.
// Stacks are keyed by (user, name); quantity never goes below zero.
type InventoryItem struct {
	ID        int64     `db:"id"`
	UserID    int64     `db:"user_id"`
	Name      string    `db:"name"`
	ItemType  string    `db:"item_type"`
	Rarity    string    `db:"rarity"`
	Quantity  int64     `db:"quantity"`
	Equipped  bool      `db:"equipped"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
