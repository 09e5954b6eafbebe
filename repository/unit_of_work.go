package repository

import (
	"context"
	"fmt"

	"akashic/database"
	"akashic/domain/interfaces"

	"github.com/jackc/pgx/v5"
)

// unitOfWork implements the UnitOfWork interface
type unitOfWork struct {
	db                     *database.DB
	tx                     pgx.Tx
	ctx                    context.Context
	transactionalPublisher interfaces.TransactionalEventPublisher

	userRepo            interfaces.UserRepository
	manaTransactionRepo interfaces.ManaTransactionRepository
	sessionRepo         interfaces.SessionRepository
	scrollRepo          interfaces.ScrollRepository
	scrollUnlockRepo    interfaces.ScrollUnlockRepository
	manaPackageRepo     interfaces.ManaPackageRepository
	inventoryRepo       interfaces.InventoryRepository
	craftingRecipeRepo  interfaces.CraftingRecipeRepository
	craftingQueueRepo   interfaces.CraftingQueueRepository
	contactMessageRepo  interfaces.ContactMessageRepository
}

type unitOfWorkFactory struct {
	db           *database.DB
	newPublisher func() interfaces.TransactionalEventPublisher
}

// NewUnitOfWorkFactory creates a new UnitOfWork factory. Each unit of work
// gets its own transactional publisher so pending events track exactly one
// transaction.
func NewUnitOfWorkFactory(db *database.DB, newPublisher func() interfaces.TransactionalEventPublisher) interfaces.UnitOfWorkFactory {
	return &unitOfWorkFactory{
		db:           db,
		newPublisher: newPublisher,
	}
}

// Create creates a new UnitOfWork
func (f *unitOfWorkFactory) Create() interfaces.UnitOfWork {
	return &unitOfWork{
		db:                     f.db,
		transactionalPublisher: f.newPublisher(),
	}
}

// Begin starts a new transaction
func (u *unitOfWork) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}

	tx, err := u.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	u.tx = tx
	u.ctx = ctx

	u.userRepo = newUserRepository(tx)
	u.manaTransactionRepo = newManaTransactionRepository(tx)
	u.sessionRepo = newSessionRepository(tx)
	u.scrollRepo = newScrollRepository(tx)
	u.scrollUnlockRepo = newScrollUnlockRepository(tx)
	u.manaPackageRepo = newManaPackageRepository(tx)
	u.inventoryRepo = newInventoryRepository(tx)
	u.craftingRecipeRepo = newCraftingRecipeRepository(tx)
	u.craftingQueueRepo = newCraftingQueueRepository(tx)
	u.contactMessageRepo = newContactMessageRepository(tx)

	return nil
}

// Commit commits the transaction and flushes pending events
func (u *unitOfWork) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}

	err := u.tx.Commit(u.ctx)
	if err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	u.tx = nil

	if u.transactionalPublisher != nil {
		u.transactionalPublisher.Flush(u.ctx)
	}

	return nil
}

// Rollback rolls back the transaction and discards pending events
func (u *unitOfWork) Rollback() error {
	if u.tx == nil {
		return nil
	}

	err := u.tx.Rollback(u.ctx)
	if err != nil && err != pgx.ErrTxClosed {
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}

	u.tx = nil

	if u.transactionalPublisher != nil {
		u.transactionalPublisher.Discard()
	}

	return nil
}

// UserRepository returns the user repository for this unit of work
func (u *unitOfWork) UserRepository() interfaces.UserRepository {
	return u.userRepo
}

// ManaTransactionRepository returns the ledger repository for this unit of work
func (u *unitOfWork) ManaTransactionRepository() interfaces.ManaTransactionRepository {
	return u.manaTransactionRepo
}

// SessionRepository returns the session repository for this unit of work
func (u *unitOfWork) SessionRepository() interfaces.SessionRepository {
	return u.sessionRepo
}

// ScrollRepository returns the scroll repository for this unit of work
func (u *unitOfWork) ScrollRepository() interfaces.ScrollRepository {
	return u.scrollRepo
}

// ScrollUnlockRepository returns the unlock repository for this unit of work
func (u *unitOfWork) ScrollUnlockRepository() interfaces.ScrollUnlockRepository {
	return u.scrollUnlockRepo
}

// ManaPackageRepository returns the package repository for this unit of work
func (u *unitOfWork) ManaPackageRepository() interfaces.ManaPackageRepository {
	return u.manaPackageRepo
}

// InventoryRepository returns the inventory repository for this unit of work
func (u *unitOfWork) InventoryRepository() interfaces.InventoryRepository {
	return u.inventoryRepo
}

// CraftingRecipeRepository returns the recipe repository for this unit of work
func (u *unitOfWork) CraftingRecipeRepository() interfaces.CraftingRecipeRepository {
	return u.craftingRecipeRepo
}

// CraftingQueueRepository returns the queue repository for this unit of work
func (u *unitOfWork) CraftingQueueRepository() interfaces.CraftingQueueRepository {
	return u.craftingQueueRepo
}

// ContactMessageRepository returns the contact repository for this unit of work
func (u *unitOfWork) ContactMessageRepository() interfaces.ContactMessageRepository {
	return u.contactMessageRepo
}

// EventBus returns the publisher that flushes only when this unit of work commits
func (u *unitOfWork) EventBus() interfaces.EventPublisher {
	return u.transactionalPublisher
}
