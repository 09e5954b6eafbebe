package repository

import (
	"context"
	"fmt"

	"akashic/database"
	"akashic/domain/entities"
)

// ScrollUnlockRepository implements the ScrollUnlockRepository interface
type ScrollUnlockRepository struct {
	q Queryable
}

// NewScrollUnlockRepository creates a new scroll unlock repository
func NewScrollUnlockRepository(db *database.DB) *ScrollUnlockRepository {
	return &ScrollUnlockRepository{q: db.Pool}
}

// newScrollUnlockRepository creates a repository bound to a transaction
func newScrollUnlockRepository(tx Queryable) *ScrollUnlockRepository {
	return &ScrollUnlockRepository{q: tx}
}

// Create inserts the unlock row idempotently. The unique constraint on
// (user_id, scroll_id) makes racing duplicates collapse into one row.
func (r *ScrollUnlockRepository) Create(ctx context.Context, userID, scrollID int64) (bool, error) {
	query := `
		INSERT INTO user_scroll_unlocks (user_id, scroll_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, scroll_id) DO NOTHING
	`

	result, err := r.q.Exec(ctx, query, userID, scrollID)
	if err != nil {
		return false, fmt.Errorf("failed to create unlock for user %d scroll %d: %w", userID, scrollID, err)
	}
	return result.RowsAffected() > 0, nil
}

// Exists reports whether the (user, scroll) pair is unlocked
func (r *ScrollUnlockRepository) Exists(ctx context.Context, userID, scrollID int64) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM user_scroll_unlocks WHERE user_id = $1 AND scroll_id = $2)`

	var exists bool
	if err := r.q.QueryRow(ctx, query, userID, scrollID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check unlock for user %d scroll %d: %w", userID, scrollID, err)
	}
	return exists, nil
}

// GetScrollsUnlockedByUser returns the scrolls a user has unlocked, newest unlock first
func (r *ScrollUnlockRepository) GetScrollsUnlockedByUser(ctx context.Context, userID int64) ([]*entities.Scroll, error) {
	query := `
		SELECT s.id, s.title, s.content, s.image_url, s.scroll_type, s.is_locked, s.created_at
		FROM user_scroll_unlocks usu
		JOIN scrolls s ON s.id = usu.scroll_id
		WHERE usu.user_id = $1
		ORDER BY usu.created_at DESC
	`

	rows, err := r.q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get unlocked scrolls for user %d: %w", userID, err)
	}
	defer rows.Close()

	return scanScrolls(rows)
}
