package repository

import (
	"context"
	"fmt"

	"akashic/database"
	"akashic/domain/entities"

	"github.com/jackc/pgx/v5"
)

// InventoryRepository implements the InventoryRepository interface
type InventoryRepository struct {
	q Queryable
}

// NewInventoryRepository creates a new inventory repository
func NewInventoryRepository(db *database.DB) *InventoryRepository {
	return &InventoryRepository{q: db.Pool}
}

// newInventoryRepository creates a repository bound to a transaction
func newInventoryRepository(tx Queryable) *InventoryRepository {
	return &InventoryRepository{q: tx}
}

const inventoryColumns = `id, user_id, name, item_type, rarity, quantity, equipped, created_at, updated_at`

// GetByUser returns all stacks with a non-zero quantity
func (r *InventoryRepository) GetByUser(ctx context.Context, userID int64) ([]*entities.InventoryItem, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM inventory_items
		WHERE user_id = $1 AND quantity > 0
		ORDER BY created_at DESC, id DESC
	`, inventoryColumns)

	rows, err := r.q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory for user %d: %w", userID, err)
	}
	defer rows.Close()

	var items []*entities.InventoryItem
	for rows.Next() {
		item, err := scanInventoryItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate inventory items: %w", err)
	}
	return items, nil
}

// GetByID retrieves one stack by id
func (r *InventoryRepository) GetByID(ctx context.Context, itemID int64) (*entities.InventoryItem, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM inventory_items
		WHERE id = $1
	`, inventoryColumns)

	item, err := scanInventoryItem(r.q.QueryRow(ctx, query, itemID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get inventory item %d: %w", itemID, err)
	}
	return item, nil
}

// AddItem upserts a stack, adding quantity to an existing stack of the same name
func (r *InventoryRepository) AddItem(ctx context.Context, userID int64, name, itemType, rarity string, quantity int64) error {
	query := `
		INSERT INTO inventory_items (user_id, name, item_type, rarity, quantity)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, name) DO UPDATE
		SET quantity = inventory_items.quantity + EXCLUDED.quantity,
		    updated_at = NOW()
	`

	_, err := r.q.Exec(ctx, query, userID, name, itemType, rarity, quantity)
	if err != nil {
		return fmt.Errorf("failed to add inventory item %q for user %d: %w", name, userID, err)
	}
	return nil
}

// AdjustQuantity changes a stack's quantity by delta. The quantity check
// constraint rejects a negative result; both the missing row and the
// constraint violation map to ErrMissingIngredients.
func (r *InventoryRepository) AdjustQuantity(ctx context.Context, userID int64, name string, delta int64) error {
	query := `
		UPDATE inventory_items
		SET quantity = quantity + $3, updated_at = NOW()
		WHERE user_id = $1 AND name = $2 AND quantity + $3 >= 0
	`

	tag, err := r.q.Exec(ctx, query, userID, name, delta)
	if err != nil {
		return fmt.Errorf("failed to adjust inventory item %q for user %d: %w", name, userID, err)
	}
	if tag.RowsAffected() == 0 {
		return entities.ErrMissingIngredients
	}
	return nil
}

// SetEquipped toggles the equipped flag on a user's stack
func (r *InventoryRepository) SetEquipped(ctx context.Context, userID, itemID int64, equipped bool) error {
	query := `
		UPDATE inventory_items
		SET equipped = $3, updated_at = NOW()
		WHERE id = $2 AND user_id = $1
	`

	tag, err := r.q.Exec(ctx, query, userID, itemID, equipped)
	if err != nil {
		return fmt.Errorf("failed to set equipped on item %d for user %d: %w", itemID, userID, err)
	}
	if tag.RowsAffected() == 0 {
		return entities.ErrItemNotFound
	}
	return nil
}

func scanInventoryItem(row pgx.Row) (*entities.InventoryItem, error) {
	var item entities.InventoryItem
	err := row.Scan(
		&item.ID, &item.UserID, &item.Name, &item.ItemType, &item.Rarity,
		&item.Quantity, &item.Equipped, &item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &item, nil
}
