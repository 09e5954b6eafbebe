package interfaces

import (
	"context"
	"time"

	"akashic/domain/entities"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user row. Unique violations surface as
	// entities.ErrUsernameTaken / entities.ErrEmailTaken.
	Create(ctx context.Context, username, email, passwordHash string, phone *string) (*entities.User, error)

	// GetByID retrieves a user by id; nil when absent
	GetByID(ctx context.Context, userID int64) (*entities.User, error)

	// GetByIDForUpdate retrieves a user and row-locks it for the duration
	// of the surrounding transaction. Ledger writes use this to serialize
	// racing balance checks.
	GetByIDForUpdate(ctx context.Context, userID int64) (*entities.User, error)

	// GetByUsername retrieves a user by username; nil when absent
	GetByUsername(ctx context.Context, username string) (*entities.User, error)

	// GetByEmail retrieves a user by email; nil when absent
	GetByEmail(ctx context.Context, email string) (*entities.User, error)

	// UpdateBalance sets the maintained running balance
	UpdateBalance(ctx context.Context, userID int64, newBalance int64) error
}

// ManaTransactionRepository defines the interface for the append-only ledger
type ManaTransactionRepository interface {
	// Record appends a transaction row, filling ID and CreatedAt
	Record(ctx context.Context, tx *entities.ManaTransaction) error

	// GetByUser returns a user's transactions, newest first
	GetByUser(ctx context.Context, userID int64, limit int) ([]*entities.ManaTransaction, error)

	// GetByReference returns the purchase transaction recorded for an
	// external payment reference; nil when absent
	GetByReference(ctx context.Context, reference string) (*entities.ManaTransaction, error)

	// SumByUser returns the sum of all transaction amounts for a user.
	// Must equal the maintained balance column at all times.
	SumByUser(ctx context.Context, userID int64) (int64, error)
}

// SessionRepository defines the interface for the server-side session store
type SessionRepository interface {
	// Create persists a new session
	Create(ctx context.Context, session *entities.Session) error

	// GetByToken retrieves a session by token; nil when absent
	GetByToken(ctx context.Context, token string) (*entities.Session, error)

	// Delete removes a session, revoking the token
	Delete(ctx context.Context, token string) error

	// DeleteExpired removes all sessions past their expiry, returning the count
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// ScrollRepository defines the interface for the content catalog.
// All methods except GetByIDWithKey leave UnlockKey empty.
type ScrollRepository interface {
	// GetAll returns the catalog, optionally filtered by type
	GetAll(ctx context.Context, filterType *entities.ScrollType) ([]*entities.Scroll, error)

	// GetByID retrieves a scroll without its unlock key; nil when absent
	GetByID(ctx context.Context, scrollID int64) (*entities.Scroll, error)

	// GetByIDWithKey retrieves a scroll including the unlock key.
	// Only the unlock flow may use this.
	GetByIDWithKey(ctx context.Context, scrollID int64) (*entities.Scroll, error)

	// Create inserts a scroll (seeding/administration)
	Create(ctx context.Context, scroll *entities.Scroll) error
}

// ScrollUnlockRepository defines the interface for per-user unlock records
type ScrollUnlockRepository interface {
	// Create inserts the unlock row idempotently; created reports whether a
	// new row was written (false for a repeat unlock)
	Create(ctx context.Context, userID, scrollID int64) (created bool, err error)

	// Exists reports whether the (user, scroll) pair is unlocked
	Exists(ctx context.Context, userID, scrollID int64) (bool, error)

	// GetScrollsUnlockedByUser returns the scrolls a user has unlocked,
	// newest unlock first
	GetScrollsUnlockedByUser(ctx context.Context, userID int64) ([]*entities.Scroll, error)
}

// ManaPackageRepository defines the interface for purchasable mana bundles
type ManaPackageRepository interface {
	// GetActive returns packages currently offered, cheapest first
	GetActive(ctx context.Context) ([]*entities.ManaPackage, error)

	// GetByID retrieves a package by id; nil when absent
	GetByID(ctx context.Context, packageID int64) (*entities.ManaPackage, error)
}

// InventoryRepository defines the interface for user item stacks
type InventoryRepository interface {
	// GetByUser returns all stacks with a non-zero quantity
	GetByUser(ctx context.Context, userID int64) ([]*entities.InventoryItem, error)

	// GetByID retrieves one stack by id; nil when absent
	GetByID(ctx context.Context, itemID int64) (*entities.InventoryItem, error)

	// AddItem upserts a stack, adding quantity to an existing stack of the
	// same name
	AddItem(ctx context.Context, userID int64, name, itemType, rarity string, quantity int64) error

	// AdjustQuantity changes a stack's quantity by delta. Fails with
	// entities.ErrMissingIngredients if the stack is absent or would go
	// negative.
	AdjustQuantity(ctx context.Context, userID int64, name string, delta int64) error

	// SetEquipped toggles the equipped flag on a user's stack
	SetEquipped(ctx context.Context, userID, itemID int64, equipped bool) error
}

// CraftingRecipeRepository defines the interface for recipe definitions
type CraftingRecipeRepository interface {
	// GetAll returns every recipe
	GetAll(ctx context.Context) ([]*entities.CraftingRecipe, error)

	// GetByID retrieves a recipe by id; nil when absent
	GetByID(ctx context.Context, recipeID int64) (*entities.CraftingRecipe, error)

	// Create inserts a recipe (seeding/administration)
	Create(ctx context.Context, recipe *entities.CraftingRecipe) error
}

// CraftingQueueRepository defines the interface for in-flight crafts
type CraftingQueueRepository interface {
	// Create inserts a queue item, filling ID and StartedAt
	Create(ctx context.Context, item *entities.CraftingQueueItem) error

	// GetByID retrieves a queue item by id; nil when absent
	GetByID(ctx context.Context, queueID int64) (*entities.CraftingQueueItem, error)

	// GetByUser returns a user's queue items, newest first
	GetByUser(ctx context.Context, userID int64) ([]*entities.CraftingQueueItem, error)

	// MarkClaimed stamps the claim time on an unclaimed item
	MarkClaimed(ctx context.Context, queueID int64, claimedAt time.Time) error
}

// ContactMessageRepository defines the interface for contact intake
type ContactMessageRepository interface {
	// Create persists a contact message, filling ID and CreatedAt
	Create(ctx context.Context, msg *entities.ContactMessage) error
}
