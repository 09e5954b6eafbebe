package entities

import "time"

// RecipeIngredient names a required inventory stack and quantity
type RecipeIngredient struct {
	ItemName string `json:"item_name"`
	Quantity int64  `json:"quantity"`
}

// CraftingRecipe describes how to craft an item: required ingredients,
// an optional mana cost, and how long the craft takes.
type CraftingRecipe struct {
	ID              int64              `db:"id"`
	Name            string             `db:"name"`
	ResultName      string             `db:"result_name"`
	ResultType      string             `db:"result_type"`
	ResultRarity    string             `db:"result_rarity"`
	ManaCost        int64              `db:"mana_cost"`
	DurationSeconds int64              `db:"duration_seconds"`
	Ingredients     []RecipeIngredient `db:"ingredients"`
	CreatedAt       time.Time          `db:"created_at"`
}

// Duration returns the crafting duration
func (r *CraftingRecipe) Duration() time.Duration {
	return time.Duration(r.DurationSeconds) * time.Second
}

// CraftingQueueItem is one in-flight craft. Completion is resolved lazily:
// nothing fires at completes_at, the claim operation checks it instead.
type CraftingQueueItem struct {
	ID          int64      `db:"id"`
	UserID      int64      `db:"user_id"`
	RecipeID    int64      `db:"recipe_id"`
	StartedAt   time.Time  `db:"started_at"`
	CompletesAt time.Time  `db:"completes_at"`
	ClaimedAt   *time.Time `db:"claimed_at"`
}

// IsComplete returns true once the crafting duration has elapsed
func (q *CraftingQueueItem) IsComplete(now time.Time) bool {
	return !now.Before(q.CompletesAt)
}

// IsClaimed returns true if the craft result was already collected
func (q *CraftingQueueItem) IsClaimed() bool {
	return q.ClaimedAt != nil
}
