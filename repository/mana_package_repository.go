package repository

import (
	"context"
	"fmt"

	"akashic/database"
	"akashic/domain/entities"

	"github.com/jackc/pgx/v5"
)

// ManaPackageRepository implements the ManaPackageRepository interface
type ManaPackageRepository struct {
	q Queryable
}

// NewManaPackageRepository creates a new mana package repository
func NewManaPackageRepository(db *database.DB) *ManaPackageRepository {
	return &ManaPackageRepository{q: db.Pool}
}

// newManaPackageRepository creates a repository bound to a transaction
func newManaPackageRepository(tx Queryable) *ManaPackageRepository {
	return &ManaPackageRepository{q: tx}
}

// GetActive returns packages currently offered, cheapest first
func (r *ManaPackageRepository) GetActive(ctx context.Context) ([]*entities.ManaPackage, error) {
	query := `
		SELECT id, name, mana_amount, price_cents, active, created_at
		FROM mana_packages
		WHERE active
		ORDER BY price_cents
	`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list mana packages: %w", err)
	}
	defer rows.Close()

	var packages []*entities.ManaPackage
	for rows.Next() {
		var pkg entities.ManaPackage
		err := rows.Scan(&pkg.ID, &pkg.Name, &pkg.ManaAmount, &pkg.PriceCents, &pkg.Active, &pkg.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan mana package: %w", err)
		}
		packages = append(packages, &pkg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate mana packages: %w", err)
	}
	return packages, nil
}

// GetByID retrieves a package by id
func (r *ManaPackageRepository) GetByID(ctx context.Context, packageID int64) (*entities.ManaPackage, error) {
	query := `
		SELECT id, name, mana_amount, price_cents, active, created_at
		FROM mana_packages
		WHERE id = $1
	`

	var pkg entities.ManaPackage
	err := r.q.QueryRow(ctx, query, packageID).Scan(
		&pkg.ID, &pkg.Name, &pkg.ManaAmount, &pkg.PriceCents, &pkg.Active, &pkg.CreatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get mana package %d: %w", packageID, err)
	}
	return &pkg, nil
}
