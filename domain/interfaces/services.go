package interfaces

import (
	"context"

	"akashic/domain/entities"
	"akashic/domain/events"
)

// EventPublisher publishes domain events
type EventPublisher interface {
	Publish(event events.Event) error
}

// TransactionalEventPublisher holds events until the surrounding database
// transaction resolves: Flush after commit, Discard after rollback.
type TransactionalEventPublisher interface {
	EventPublisher
	Flush(ctx context.Context) error
	Discard()
}

// UnitOfWork bundles repositories sharing one database transaction
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() UserRepository
	ManaTransactionRepository() ManaTransactionRepository
	SessionRepository() SessionRepository
	ScrollRepository() ScrollRepository
	ScrollUnlockRepository() ScrollUnlockRepository
	ManaPackageRepository() ManaPackageRepository
	InventoryRepository() InventoryRepository
	CraftingRecipeRepository() CraftingRecipeRepository
	CraftingQueueRepository() CraftingQueueRepository
	ContactMessageRepository() ContactMessageRepository

	// EventBus publishes events that flush only on commit
	EventBus() EventPublisher
}

// UnitOfWorkFactory creates units of work
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// LedgerService defines the interface for mana ledger operations
type LedgerService interface {
	// RecordTransaction appends a ledger entry and returns the new balance.
	// Spends that would drive the balance negative are rejected with
	// entities.ErrInsufficientMana before anything is persisted.
	RecordTransaction(ctx context.Context, userID, amount int64, txType entities.TransactionType, description string, reference *string) (int64, error)

	// GetBalance returns the user's current balance
	GetBalance(ctx context.Context, userID int64) (int64, error)

	// ListTransactions returns the user's ledger entries, newest first
	ListTransactions(ctx context.Context, userID int64, limit int) ([]*entities.ManaTransaction, error)

	// Reconcile returns the maintained balance and the transaction sum;
	// the two must be equal
	Reconcile(ctx context.Context, userID int64) (balance, sum int64, err error)

	// ListPackages returns active mana packages
	ListPackages(ctx context.Context) ([]*entities.ManaPackage, error)

	// PurchasePackage records a completed external payment as a purchase
	// credit, idempotently per payment reference. Returns the new balance.
	PurchasePackage(ctx context.Context, userID, packageID int64, paymentRef string) (int64, error)
}

// AccountService defines the interface for registration and sessions
type AccountService interface {
	// Register creates an account, grants the welcome bonus and opens a session
	Register(ctx context.Context, username, email, password string, phone *string) (*entities.User, *entities.Session, error)

	// Login verifies credentials and opens a session
	Login(ctx context.Context, username, password string) (*entities.User, *entities.Session, error)

	// Logout revokes a session token
	Logout(ctx context.Context, token string) error

	// Authenticate resolves a session token to its user
	Authenticate(ctx context.Context, token string) (*entities.User, error)

	// SweepExpiredSessions deletes sessions past their expiry and returns
	// the number removed
	SweepExpiredSessions(ctx context.Context) (int64, error)
}

// UnlockService defines the interface for the scroll unlock state machine
type UnlockService interface {
	// AttemptUnlock validates the supplied key against the scroll's secret.
	// A correct key unlocks idempotently (repeat success is a no-op) and
	// returns the scroll; a wrong key fails with entities.ErrInvalidKey and
	// persists nothing.
	AttemptUnlock(ctx context.Context, userID, scrollID int64, suppliedKey string) (*entities.Scroll, error)
}

// CatalogService defines the interface for catalog queries
type CatalogService interface {
	// ListScrolls returns the catalog, optionally filtered by type
	ListScrolls(ctx context.Context, filterType *entities.ScrollType) ([]*entities.Scroll, error)

	// ListUnlockedScrolls returns the scrolls a user has unlocked
	ListUnlockedScrolls(ctx context.Context, userID int64) ([]*entities.Scroll, error)

	// IsUnlockedForUser reports whether a scroll is readable by a user:
	// globally unlocked or covered by an unlock record
	IsUnlockedForUser(ctx context.Context, userID, scrollID int64) (bool, error)
}

// CraftingService defines the interface for inventory and crafting
type CraftingService interface {
	// ListInventory returns the user's item stacks
	ListInventory(ctx context.Context, userID int64) ([]*entities.InventoryItem, error)

	// SetEquipped toggles the equipped flag on an owned item
	SetEquipped(ctx context.Context, userID, itemID int64, equipped bool) error

	// ListRecipes returns all crafting recipes
	ListRecipes(ctx context.Context) ([]*entities.CraftingRecipe, error)

	// ListQueue returns the user's crafting queue, newest first
	ListQueue(ctx context.Context, userID int64) ([]*entities.CraftingQueueItem, error)

	// StartCrafting checks ingredients, spends the recipe's mana cost,
	// deducts ingredients and enqueues the craft
	StartCrafting(ctx context.Context, userID, recipeID int64) (*entities.CraftingQueueItem, error)

	// ClaimCrafting resolves a finished craft, adding the result to the
	// user's inventory. Claims before completes_at fail with
	// entities.ErrCraftingNotReady.
	ClaimCrafting(ctx context.Context, userID, queueID int64) (*entities.InventoryItem, error)
}

// OracleProvider answers a question through an external completion endpoint
type OracleProvider interface {
	Complete(ctx context.Context, question string) (string, error)
}

// OracleService defines the interface for the oracle chat
type OracleService interface {
	// Ask spends the configured mana cost, forwards the question to the
	// provider and returns the answer with the resulting balance. Provider
	// failures refund the spend with an offsetting earn transaction.
	Ask(ctx context.Context, userID int64, question string) (answer string, newBalance int64, err error)
}

// ContactService defines the interface for contact message intake
type ContactService interface {
	Submit(ctx context.Context, name, email, message string) error
}
