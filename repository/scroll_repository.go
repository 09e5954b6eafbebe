package repository

import (
	"context"
	"fmt"

	"akashic/database"
	"akashic/domain/entities"

	"github.com/jackc/pgx/v5"
)

// scrollColumns deliberately excludes unlock_key; the secret only loads
// through GetByIDWithKey.
const scrollColumns = `id, title, content, image_url, scroll_type, is_locked, created_at`

// ScrollRepository implements the ScrollRepository interface
type ScrollRepository struct {
	q Queryable
}

// NewScrollRepository creates a new scroll repository
func NewScrollRepository(db *database.DB) *ScrollRepository {
	return &ScrollRepository{q: db.Pool}
}

// newScrollRepository creates a repository bound to a transaction
func newScrollRepository(tx Queryable) *ScrollRepository {
	return &ScrollRepository{q: tx}
}

// GetAll returns the catalog, optionally filtered by type
func (r *ScrollRepository) GetAll(ctx context.Context, filterType *entities.ScrollType) ([]*entities.Scroll, error) {
	query := `SELECT ` + scrollColumns + ` FROM scrolls`
	var args []any
	if filterType != nil {
		query += ` WHERE scroll_type = $1`
		args = append(args, *filterType)
	}
	query += ` ORDER BY id`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list scrolls: %w", err)
	}
	defer rows.Close()

	return scanScrolls(rows)
}

// GetByID retrieves a scroll without its unlock key
func (r *ScrollRepository) GetByID(ctx context.Context, scrollID int64) (*entities.Scroll, error) {
	query := `SELECT ` + scrollColumns + ` FROM scrolls WHERE id = $1`

	scroll, err := scanScroll(r.q.QueryRow(ctx, query, scrollID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get scroll %d: %w", scrollID, err)
	}
	return scroll, nil
}

// GetByIDWithKey retrieves a scroll including the unlock key.
// Only the unlock flow may use this.
func (r *ScrollRepository) GetByIDWithKey(ctx context.Context, scrollID int64) (*entities.Scroll, error) {
	query := `
		SELECT id, title, content, image_url, scroll_type, is_locked, unlock_key, created_at
		FROM scrolls
		WHERE id = $1
	`

	var scroll entities.Scroll
	err := r.q.QueryRow(ctx, query, scrollID).Scan(
		&scroll.ID,
		&scroll.Title,
		&scroll.Content,
		&scroll.ImageURL,
		&scroll.Type,
		&scroll.IsLocked,
		&scroll.UnlockKey,
		&scroll.CreatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get scroll %d: %w", scrollID, err)
	}
	return &scroll, nil
}

// Create inserts a scroll
func (r *ScrollRepository) Create(ctx context.Context, scroll *entities.Scroll) error {
	query := `
		INSERT INTO scrolls (title, content, image_url, scroll_type, is_locked, unlock_key)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	err := r.q.QueryRow(ctx, query,
		scroll.Title,
		scroll.Content,
		scroll.ImageURL,
		scroll.Type,
		scroll.IsLocked,
		scroll.UnlockKey,
	).Scan(&scroll.ID, &scroll.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create scroll %q: %w", scroll.Title, err)
	}
	return nil
}

func scanScroll(row pgx.Row) (*entities.Scroll, error) {
	var scroll entities.Scroll
	err := row.Scan(
		&scroll.ID,
		&scroll.Title,
		&scroll.Content,
		&scroll.ImageURL,
		&scroll.Type,
		&scroll.IsLocked,
		&scroll.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &scroll, nil
}

func scanScrolls(rows pgx.Rows) ([]*entities.Scroll, error) {
	var scrolls []*entities.Scroll
	for rows.Next() {
		scroll, err := scanScroll(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan scroll: %w", err)
		}
		scrolls = append(scrolls, scroll)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate scrolls: %w", err)
	}
	return scrolls, nil
}
