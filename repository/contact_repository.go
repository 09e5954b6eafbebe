package repository

import (
	"context"
	"fmt"

	"akashic/database"
	"akashic/domain/entities"
)

// ContactMessageRepository implements the ContactMessageRepository interface
type ContactMessageRepository struct {
	q Queryable
}

// NewContactMessageRepository creates a new contact message repository
func NewContactMessageRepository(db *database.DB) *ContactMessageRepository {
	return &ContactMessageRepository{q: db.Pool}
}

// newContactMessageRepository creates a repository bound to a transaction
func newContactMessageRepository(tx Queryable) *ContactMessageRepository {
	return &ContactMessageRepository{q: tx}
}

// Create persists a contact message, filling ID and CreatedAt
func (r *ContactMessageRepository) Create(ctx context.Context, msg *entities.ContactMessage) error {
	query := `
		INSERT INTO contact_messages (name, email, message)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := r.q.QueryRow(ctx, query, msg.Name, msg.Email, msg.Message).
		Scan(&msg.ID, &msg.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create contact message: %w", err)
	}
	return nil
}
