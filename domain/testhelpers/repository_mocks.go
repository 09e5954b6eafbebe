package testhelpers

import (
	"context"
	"time"

	"akashic/domain/entities"
	"akashic/domain/events"
	"akashic/domain/interfaces"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, username, email, passwordHash string, phone *string) (*entities.User, error) {
	args := m.Called(ctx, username, email, passwordHash, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, userID int64) (*entities.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) GetByIDForUpdate(ctx context.Context, userID int64) (*entities.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*entities.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) UpdateBalance(ctx context.Context, userID int64, newBalance int64) error {
	args := m.Called(ctx, userID, newBalance)
	return args.Error(0)
}

// MockManaTransactionRepository is a mock implementation of ManaTransactionRepository
type MockManaTransactionRepository struct {
	mock.Mock
}

func (m *MockManaTransactionRepository) Record(ctx context.Context, tx *entities.ManaTransaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockManaTransactionRepository) GetByUser(ctx context.Context, userID int64, limit int) ([]*entities.ManaTransaction, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.ManaTransaction), args.Error(1)
}

func (m *MockManaTransactionRepository) GetByReference(ctx context.Context, reference string) (*entities.ManaTransaction, error) {
	args := m.Called(ctx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.ManaTransaction), args.Error(1)
}

func (m *MockManaTransactionRepository) SumByUser(ctx context.Context, userID int64) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

// MockSessionRepository is a mock implementation of SessionRepository
type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) Create(ctx context.Context, session *entities.Session) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockSessionRepository) GetByToken(ctx context.Context, token string) (*entities.Session, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Session), args.Error(1)
}

func (m *MockSessionRepository) Delete(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockSessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

// MockScrollRepository is a mock implementation of ScrollRepository
type MockScrollRepository struct {
	mock.Mock
}

func (m *MockScrollRepository) GetAll(ctx context.Context, filterType *entities.ScrollType) ([]*entities.Scroll, error) {
	args := m.Called(ctx, filterType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Scroll), args.Error(1)
}

func (m *MockScrollRepository) GetByID(ctx context.Context, scrollID int64) (*entities.Scroll, error) {
	args := m.Called(ctx, scrollID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Scroll), args.Error(1)
}

func (m *MockScrollRepository) GetByIDWithKey(ctx context.Context, scrollID int64) (*entities.Scroll, error) {
	args := m.Called(ctx, scrollID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Scroll), args.Error(1)
}

func (m *MockScrollRepository) Create(ctx context.Context, scroll *entities.Scroll) error {
	args := m.Called(ctx, scroll)
	return args.Error(0)
}

// MockScrollUnlockRepository is a mock implementation of ScrollUnlockRepository
type MockScrollUnlockRepository struct {
	mock.Mock
}

func (m *MockScrollUnlockRepository) Create(ctx context.Context, userID, scrollID int64) (bool, error) {
	args := m.Called(ctx, userID, scrollID)
	return args.Bool(0), args.Error(1)
}

func (m *MockScrollUnlockRepository) Exists(ctx context.Context, userID, scrollID int64) (bool, error) {
	args := m.Called(ctx, userID, scrollID)
	return args.Bool(0), args.Error(1)
}

func (m *MockScrollUnlockRepository) GetScrollsUnlockedByUser(ctx context.Context, userID int64) ([]*entities.Scroll, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Scroll), args.Error(1)
}

// MockManaPackageRepository is a mock implementation of ManaPackageRepository
type MockManaPackageRepository struct {
	mock.Mock
}

func (m *MockManaPackageRepository) GetActive(ctx context.Context) ([]*entities.ManaPackage, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.ManaPackage), args.Error(1)
}

func (m *MockManaPackageRepository) GetByID(ctx context.Context, packageID int64) (*entities.ManaPackage, error) {
	args := m.Called(ctx, packageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.ManaPackage), args.Error(1)
}

// MockInventoryRepository is a mock implementation of InventoryRepository
type MockInventoryRepository struct {
	mock.Mock
}

func (m *MockInventoryRepository) GetByUser(ctx context.Context, userID int64) ([]*entities.InventoryItem, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.InventoryItem), args.Error(1)
}

func (m *MockInventoryRepository) GetByID(ctx context.Context, itemID int64) (*entities.InventoryItem, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.InventoryItem), args.Error(1)
}

func (m *MockInventoryRepository) AddItem(ctx context.Context, userID int64, name, itemType, rarity string, quantity int64) error {
	args := m.Called(ctx, userID, name, itemType, rarity, quantity)
	return args.Error(0)
}

func (m *MockInventoryRepository) AdjustQuantity(ctx context.Context, userID int64, name string, delta int64) error {
	args := m.Called(ctx, userID, name, delta)
	return args.Error(0)
}

func (m *MockInventoryRepository) SetEquipped(ctx context.Context, userID, itemID int64, equipped bool) error {
	args := m.Called(ctx, userID, itemID, equipped)
	return args.Error(0)
}

// MockCraftingRecipeRepository is a mock implementation of CraftingRecipeRepository
type MockCraftingRecipeRepository struct {
	mock.Mock
}

func (m *MockCraftingRecipeRepository) GetAll(ctx context.Context) ([]*entities.CraftingRecipe, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.CraftingRecipe), args.Error(1)
}

func (m *MockCraftingRecipeRepository) GetByID(ctx context.Context, recipeID int64) (*entities.CraftingRecipe, error) {
	args := m.Called(ctx, recipeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.CraftingRecipe), args.Error(1)
}

func (m *MockCraftingRecipeRepository) Create(ctx context.Context, recipe *entities.CraftingRecipe) error {
	args := m.Called(ctx, recipe)
	return args.Error(0)
}

// MockCraftingQueueRepository is a mock implementation of CraftingQueueRepository
type MockCraftingQueueRepository struct {
	mock.Mock
}

func (m *MockCraftingQueueRepository) Create(ctx context.Context, item *entities.CraftingQueueItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockCraftingQueueRepository) GetByID(ctx context.Context, queueID int64) (*entities.CraftingQueueItem, error) {
	args := m.Called(ctx, queueID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.CraftingQueueItem), args.Error(1)
}

func (m *MockCraftingQueueRepository) GetByUser(ctx context.Context, userID int64) ([]*entities.CraftingQueueItem, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.CraftingQueueItem), args.Error(1)
}

func (m *MockCraftingQueueRepository) MarkClaimed(ctx context.Context, queueID int64, claimedAt time.Time) error {
	args := m.Called(ctx, queueID, claimedAt)
	return args.Error(0)
}

// MockContactMessageRepository is a mock implementation of ContactMessageRepository
type MockContactMessageRepository struct {
	mock.Mock
}

func (m *MockContactMessageRepository) Create(ctx context.Context, msg *entities.ContactMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

// MockEventPublisher is a mock implementation of EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(event events.Event) error {
	args := m.Called(event)
	return args.Error(0)
}

// MockOracleProvider is a mock implementation of OracleProvider
type MockOracleProvider struct {
	mock.Mock
}

func (m *MockOracleProvider) Complete(ctx context.Context, question string) (string, error) {
	args := m.Called(ctx, question)
	return args.String(0), args.Error(1)
}

// MockUnitOfWork bundles repository mocks behind the UnitOfWork interface.
// Begin, Commit and Rollback record calls but always succeed, so service
// tests exercise domain logic without a database.
type MockUnitOfWork struct {
	mock.Mock

	UserRepo            *MockUserRepository
	ManaTransactionRepo *MockManaTransactionRepository
	SessionRepo         *MockSessionRepository
	ScrollRepo          *MockScrollRepository
	ScrollUnlockRepo    *MockScrollUnlockRepository
	ManaPackageRepo     *MockManaPackageRepository
	InventoryRepo       *MockInventoryRepository
	CraftingRecipeRepo  *MockCraftingRecipeRepository
	CraftingQueueRepo   *MockCraftingQueueRepository
	ContactMessageRepo  *MockContactMessageRepository
	Publisher           *MockEventPublisher

	Committed  bool
	RolledBack bool
}

// NewMockUnitOfWork creates a unit of work with fresh repository mocks
func NewMockUnitOfWork() *MockUnitOfWork {
	return &MockUnitOfWork{
		UserRepo:            &MockUserRepository{},
		ManaTransactionRepo: &MockManaTransactionRepository{},
		SessionRepo:         &MockSessionRepository{},
		ScrollRepo:          &MockScrollRepository{},
		ScrollUnlockRepo:    &MockScrollUnlockRepository{},
		ManaPackageRepo:     &MockManaPackageRepository{},
		InventoryRepo:       &MockInventoryRepository{},
		CraftingRecipeRepo:  &MockCraftingRecipeRepository{},
		CraftingQueueRepo:   &MockCraftingQueueRepository{},
		ContactMessageRepo:  &MockContactMessageRepository{},
		Publisher:           &MockEventPublisher{},
	}
}

func (m *MockUnitOfWork) Begin(ctx context.Context) error {
	return nil
}

func (m *MockUnitOfWork) Commit() error {
	m.Committed = true
	return nil
}

func (m *MockUnitOfWork) Rollback() error {
	if !m.Committed {
		m.RolledBack = true
	}
	return nil
}

func (m *MockUnitOfWork) UserRepository() interfaces.UserRepository {
	return m.UserRepo
}

func (m *MockUnitOfWork) ManaTransactionRepository() interfaces.ManaTransactionRepository {
	return m.ManaTransactionRepo
}

func (m *MockUnitOfWork) SessionRepository() interfaces.SessionRepository {
	return m.SessionRepo
}

func (m *MockUnitOfWork) ScrollRepository() interfaces.ScrollRepository {
	return m.ScrollRepo
}

func (m *MockUnitOfWork) ScrollUnlockRepository() interfaces.ScrollUnlockRepository {
	return m.ScrollUnlockRepo
}

func (m *MockUnitOfWork) ManaPackageRepository() interfaces.ManaPackageRepository {
	return m.ManaPackageRepo
}

func (m *MockUnitOfWork) InventoryRepository() interfaces.InventoryRepository {
	return m.InventoryRepo
}

func (m *MockUnitOfWork) CraftingRecipeRepository() interfaces.CraftingRecipeRepository {
	return m.CraftingRecipeRepo
}

func (m *MockUnitOfWork) CraftingQueueRepository() interfaces.CraftingQueueRepository {
	return m.CraftingQueueRepo
}

func (m *MockUnitOfWork) ContactMessageRepository() interfaces.ContactMessageRepository {
	return m.ContactMessageRepo
}

func (m *MockUnitOfWork) EventBus() interfaces.EventPublisher {
	return m.Publisher
}

// MockUnitOfWorkFactory always returns the same unit of work
type MockUnitOfWorkFactory struct {
	UOW *MockUnitOfWork
}

// NewMockUnitOfWorkFactory creates a factory around a fresh mock unit of work
func NewMockUnitOfWorkFactory() *MockUnitOfWorkFactory {
	return &MockUnitOfWorkFactory{UOW: NewMockUnitOfWork()}
}

func (f *MockUnitOfWorkFactory) Create() interfaces.UnitOfWork {
	return f.UOW
}
