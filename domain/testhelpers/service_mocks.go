package testhelpers

import (
	"context"

	"akashic/domain/entities"

	"github.com/stretchr/testify/mock"
)

// MockAccountService is a mock implementation of AccountService
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) Register(ctx context.Context, username, email, password string, phone *string) (*entities.User, *entities.Session, error) {
	args := m.Called(ctx, username, email, password, phone)
	var user *entities.User
	var session *entities.Session
	if args.Get(0) != nil {
		user = args.Get(0).(*entities.User)
	}
	if args.Get(1) != nil {
		session = args.Get(1).(*entities.Session)
	}
	return user, session, args.Error(2)
}

func (m *MockAccountService) Login(ctx context.Context, username, password string) (*entities.User, *entities.Session, error) {
	args := m.Called(ctx, username, password)
	var user *entities.User
	var session *entities.Session
	if args.Get(0) != nil {
		user = args.Get(0).(*entities.User)
	}
	if args.Get(1) != nil {
		session = args.Get(1).(*entities.Session)
	}
	return user, session, args.Error(2)
}

func (m *MockAccountService) Logout(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockAccountService) Authenticate(ctx context.Context, token string) (*entities.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockAccountService) SweepExpiredSessions(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockLedgerService is a mock implementation of LedgerService
type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) RecordTransaction(ctx context.Context, userID, amount int64, txType entities.TransactionType, description string, reference *string) (int64, error) {
	args := m.Called(ctx, userID, amount, txType, description, reference)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLedgerService) GetBalance(ctx context.Context, userID int64) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLedgerService) ListTransactions(ctx context.Context, userID int64, limit int) ([]*entities.ManaTransaction, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.ManaTransaction), args.Error(1)
}

func (m *MockLedgerService) Reconcile(ctx context.Context, userID int64) (int64, int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Get(1).(int64), args.Error(2)
}

func (m *MockLedgerService) ListPackages(ctx context.Context) ([]*entities.ManaPackage, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.ManaPackage), args.Error(1)
}

func (m *MockLedgerService) PurchasePackage(ctx context.Context, userID, packageID int64, paymentRef string) (int64, error) {
	args := m.Called(ctx, userID, packageID, paymentRef)
	return args.Get(0).(int64), args.Error(1)
}

// MockUnlockService is a mock implementation of UnlockService
type MockUnlockService struct {
	mock.Mock
}

func (m *MockUnlockService) AttemptUnlock(ctx context.Context, userID, scrollID int64, suppliedKey string) (*entities.Scroll, error) {
	args := m.Called(ctx, userID, scrollID, suppliedKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Scroll), args.Error(1)
}

// MockCatalogService is a mock implementation of CatalogService
type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) ListScrolls(ctx context.Context, filterType *entities.ScrollType) ([]*entities.Scroll, error) {
	args := m.Called(ctx, filterType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Scroll), args.Error(1)
}

func (m *MockCatalogService) ListUnlockedScrolls(ctx context.Context, userID int64) ([]*entities.Scroll, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Scroll), args.Error(1)
}

func (m *MockCatalogService) IsUnlockedForUser(ctx context.Context, userID, scrollID int64) (bool, error) {
	args := m.Called(ctx, userID, scrollID)
	return args.Bool(0), args.Error(1)
}

// MockCraftingService is a mock implementation of CraftingService
type MockCraftingService struct {
	mock.Mock
}

func (m *MockCraftingService) ListInventory(ctx context.Context, userID int64) ([]*entities.InventoryItem, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.InventoryItem), args.Error(1)
}

func (m *MockCraftingService) SetEquipped(ctx context.Context, userID, itemID int64, equipped bool) error {
	args := m.Called(ctx, userID, itemID, equipped)
	return args.Error(0)
}

func (m *MockCraftingService) ListRecipes(ctx context.Context) ([]*entities.CraftingRecipe, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.CraftingRecipe), args.Error(1)
}

func (m *MockCraftingService) ListQueue(ctx context.Context, userID int64) ([]*entities.CraftingQueueItem, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.CraftingQueueItem), args.Error(1)
}

func (m *MockCraftingService) StartCrafting(ctx context.Context, userID, recipeID int64) (*entities.CraftingQueueItem, error) {
	args := m.Called(ctx, userID, recipeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.CraftingQueueItem), args.Error(1)
}

func (m *MockCraftingService) ClaimCrafting(ctx context.Context, userID, queueID int64) (*entities.InventoryItem, error) {
	args := m.Called(ctx, userID, queueID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.InventoryItem), args.Error(1)
}

// MockOracleService is a mock implementation of OracleService
type MockOracleService struct {
	mock.Mock
}

func (m *MockOracleService) Ask(ctx context.Context, userID int64, question string) (string, int64, error) {
	args := m.Called(ctx, userID, question)
	return args.String(0), args.Get(1).(int64), args.Error(2)
}

// MockContactService is a mock implementation of ContactService
type MockContactService struct {
	mock.Mock
}

func (m *MockContactService) Submit(ctx context.Context, name, email, message string) error {
	args := m.Called(ctx, name, email, message)
	return args.Error(0)
}
