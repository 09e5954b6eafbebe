package repository

import (
	"context"
	"errors"
	"fmt"

	"akashic/database"
	"akashic/domain/entities"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const manaTransactionColumns = `id, user_id, amount, transaction_type, description, reference, balance_before, balance_after, created_at`

// ManaTransactionRepository implements the ManaTransactionRepository interface
type ManaTransactionRepository struct {
	q Queryable
}

// NewManaTransactionRepository creates a new mana transaction repository
func NewManaTransactionRepository(db *database.DB) *ManaTransactionRepository {
	return &ManaTransactionRepository{q: db.Pool}
}

// newManaTransactionRepository creates a repository bound to a transaction
func newManaTransactionRepository(tx Queryable) *ManaTransactionRepository {
	return &ManaTransactionRepository{q: tx}
}

// Record appends a transaction row
func (r *ManaTransactionRepository) Record(ctx context.Context, tx *entities.ManaTransaction) error {
	query := `
		INSERT INTO mana_transactions
		(user_id, amount, transaction_type, description, reference, balance_before, balance_after)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`

	err := r.q.QueryRow(ctx, query,
		tx.UserID,
		tx.Amount,
		tx.TransactionType,
		tx.Description,
		tx.Reference,
		tx.BalanceBefore,
		tx.BalanceAfter,
	).Scan(&tx.ID, &tx.CreatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return entities.ErrDuplicatePurchase
		}
		return fmt.Errorf("failed to record mana transaction for user %d: %w", tx.UserID, err)
	}

	return nil
}

// GetByUser returns a user's transactions, newest first
func (r *ManaTransactionRepository) GetByUser(ctx context.Context, userID int64, limit int) ([]*entities.ManaTransaction, error) {
	query := `
		SELECT ` + manaTransactionColumns + `
		FROM mana_transactions
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`

	rows, err := r.q.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get mana transactions for user %d: %w", userID, err)
	}
	defer rows.Close()

	return scanManaTransactions(rows)
}

// GetByReference returns the purchase transaction for an external payment reference
func (r *ManaTransactionRepository) GetByReference(ctx context.Context, reference string) (*entities.ManaTransaction, error) {
	query := `
		SELECT ` + manaTransactionColumns + `
		FROM mana_transactions
		WHERE transaction_type = 'purchase' AND reference = $1
	`

	tx, err := scanManaTransaction(r.q.QueryRow(ctx, query, reference))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get mana transaction by reference: %w", err)
	}
	return tx, nil
}

// SumByUser returns the sum of all transaction amounts for a user
func (r *ManaTransactionRepository) SumByUser(ctx context.Context, userID int64) (int64, error) {
	query := `SELECT COALESCE(SUM(amount), 0) FROM mana_transactions WHERE user_id = $1`

	var sum int64
	if err := r.q.QueryRow(ctx, query, userID).Scan(&sum); err != nil {
		return 0, fmt.Errorf("failed to sum mana transactions for user %d: %w", userID, err)
	}
	return sum, nil
}

func scanManaTransaction(row pgx.Row) (*entities.ManaTransaction, error) {
	var tx entities.ManaTransaction
	err := row.Scan(
		&tx.ID,
		&tx.UserID,
		&tx.Amount,
		&tx.TransactionType,
		&tx.Description,
		&tx.Reference,
		&tx.BalanceBefore,
		&tx.BalanceAfter,
		&tx.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &tx, nil
}

func scanManaTransactions(rows pgx.Rows) ([]*entities.ManaTransaction, error) {
	var txs []*entities.ManaTransaction
	for rows.Next() {
		tx, err := scanManaTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan mana transaction: %w", err)
		}
		txs = append(txs, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate mana transactions: %w", err)
	}
	return txs, nil
}
