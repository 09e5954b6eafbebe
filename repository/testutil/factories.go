package testutil

import (
	"context"
	"testing"
	"time"

	"akashic/database"
	"akashic/domain/entities"

	"github.com/stretchr/testify/require"
)

// CreateTestUser inserts a user directly and returns the row
func CreateTestUser(t *testing.T, db *database.DB, username string, balance int64) *entities.User {
	t.Helper()

	var user entities.User
	err := db.QueryRow(context.Background(), `
		INSERT INTO users (username, email, password_hash, mana_balance)
		VALUES ($1, $2, 'x', $3)
		RETURNING id, username, email, mana_balance, created_at, updated_at
	`, username, username+"@archive.test", balance).Scan(
		&user.ID, &user.Username, &user.Email, &user.ManaBalance, &user.CreatedAt, &user.UpdatedAt,
	)
	require.NoError(t, err)
	return &user
}

// CreateTestScroll inserts a scroll with an unlock key
func CreateTestScroll(t *testing.T, db *database.DB, title, key string, locked bool) *entities.Scroll {
	t.Helper()

	scroll := &entities.Scroll{
		Title:    title,
		Content:  "The hidden text of " + title,
		Type:     entities.ScrollTypeScroll,
		IsLocked: locked,
	}
	err := db.QueryRow(context.Background(), `
		INSERT INTO scrolls (title, content, image_url, scroll_type, is_locked, unlock_key)
		VALUES ($1, $2, '', $3, $4, $5)
		RETURNING id, created_at
	`, scroll.Title, scroll.Content, scroll.Type, scroll.IsLocked, key).Scan(&scroll.ID, &scroll.CreatedAt)
	require.NoError(t, err)
	return scroll
}

// CreateTestRecipe inserts a crafting recipe
func CreateTestRecipe(t *testing.T, db *database.DB, name string, manaCost int64, ingredients string) *entities.CraftingRecipe {
	t.Helper()

	recipe := &entities.CraftingRecipe{
		Name:            name,
		ResultName:      name,
		ResultType:      "charm",
		ResultRarity:    "common",
		ManaCost:        manaCost,
		DurationSeconds: 60,
	}
	err := db.QueryRow(context.Background(), `
		INSERT INTO crafting_recipes (name, result_name, result_type, result_rarity, mana_cost, duration_seconds, ingredients)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`, recipe.Name, recipe.ResultName, recipe.ResultType, recipe.ResultRarity,
		recipe.ManaCost, recipe.DurationSeconds, ingredients).Scan(&recipe.ID, &recipe.CreatedAt)
	require.NoError(t, err)
	return recipe
}

// CreateTestTransaction builds a consistent ledger entry for a user
func CreateTestTransaction(userID, before, amount int64, txType entities.TransactionType) *entities.ManaTransaction {
	return &entities.ManaTransaction{
		UserID:          userID,
		Amount:          amount,
		TransactionType: txType,
		Description:     "test transaction",
		BalanceBefore:   before,
		BalanceAfter:    before + amount,
		CreatedAt:       time.Now(),
	}
}
