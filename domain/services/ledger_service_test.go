package services

import (
	"context"
	"testing"

	"akashic/config"
	"akashic/domain/entities"
	"akashic/domain/testhelpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestLedgerService_RecordTransaction_Spend(t *testing.T) {
	config.SetTestConfig(config.NewTestConfig())
	defer config.ResetConfig()

	ctx := context.Background()
	factory := testhelpers.NewMockUnitOfWorkFactory()
	uow := factory.UOW

	user := &entities.User{ID: 1, Username: "seeker", ManaBalance: 50}

	uow.UserRepo.On("GetByIDForUpdate", ctx, int64(1)).Return(user, nil)
	uow.ManaTransactionRepo.On("Record", ctx, mock.MatchedBy(func(tx *entities.ManaTransaction) bool {
		return tx.UserID == 1 &&
			tx.Amount == -30 &&
			tx.TransactionType == entities.TransactionTypeSpend &&
			tx.BalanceBefore == 50 &&
			tx.BalanceAfter == 20
	})).Return(nil).Run(func(args mock.Arguments) {
		tx := args.Get(1).(*entities.ManaTransaction)
		tx.ID = 7
	})
	uow.UserRepo.On("UpdateBalance", ctx, int64(1), int64(20)).Return(nil)
	uow.Publisher.On("Publish", mock.AnythingOfType("events.ManaTransactionEvent")).Return(nil)

	service := NewLedgerService(factory)

	newBalance, err := service.RecordTransaction(ctx, 1, -30, entities.TransactionTypeSpend, "Oracle question", nil)

	assert.NoError(t, err)
	assert.Equal(t, int64(20), newBalance)
	assert.True(t, uow.Committed)

	uow.UserRepo.AssertExpectations(t)
	uow.ManaTransactionRepo.AssertExpectations(t)
	uow.Publisher.AssertExpectations(t)
}

func TestLedgerService_RecordTransaction_InsufficientMana(t *testing.T) {
	config.SetTestConfig(config.NewTestConfig())
	defer config.ResetConfig()

	ctx := context.Background()
	factory := testhelpers.NewMockUnitOfWorkFactory()
	uow := factory.UOW

	user := &entities.User{ID: 1, Username: "seeker", ManaBalance: 20}

	uow.UserRepo.On("GetByIDForUpdate", ctx, int64(1)).Return(user, nil)

	service := NewLedgerService(factory)

	_, err := service.RecordTransaction(ctx, 1, -25, entities.TransactionTypeSpend, "Oracle question", nil)

	assert.ErrorIs(t, err, entities.ErrInsufficientMana)
	assert.False(t, uow.Committed)
	assert.True(t, uow.RolledBack)

	// Nothing persisted on a rejected spend
	uow.ManaTransactionRepo.AssertNotCalled(t, "Record", mock.Anything, mock.Anything)
	uow.UserRepo.AssertNotCalled(t, "UpdateBalance", mock.Anything, mock.Anything, mock.Anything)
	uow.Publisher.AssertNotCalled(t, "Publish", mock.Anything)
}

func TestLedgerService_RecordTransaction_SignMismatch(t *testing.T) {
	config.SetTestConfig(config.NewTestConfig())
	defer config.ResetConfig()

	ctx := context.Background()
	factory := testhelpers.NewMockUnitOfWorkFactory()

	service := NewLedgerService(factory)

	_, err := service.RecordTransaction(ctx, 1, 30, entities.TransactionTypeSpend, "bad spend", nil)
	assert.Error(t, err)

	_, err = service.RecordTransaction(ctx, 1, -30, entities.TransactionTypeEarn, "bad earn", nil)
	assert.Error(t, err)

	_, err = service.RecordTransaction(ctx, 1, 0, entities.TransactionTypeEarn, "zero", nil)
	assert.Error(t, err)
}

func TestLedgerService_RecordTransaction_UserNotFound(t *testing.T) {
	config.SetTestConfig(config.NewTestConfig())
	defer config.ResetConfig()

	ctx := context.Background()
	factory := testhelpers.NewMockUnitOfWorkFactory()
	uow := factory.UOW

	uow.UserRepo.On("GetByIDForUpdate", ctx, int64(99)).Return(nil, nil)

	service := NewLedgerService(factory)

	_, err := service.RecordTransaction(ctx, 99, 10, entities.TransactionTypeEarn, "ghost", nil)
	assert.ErrorIs(t, err, entities.ErrUserNotFound)
}

func TestLedgerService_Reconcile(t *testing.T) {
	config.SetTestConfig(config.NewTestConfig())
	defer config.ResetConfig()

	ctx := context.Background()
	factory := testhelpers.NewMockUnitOfWorkFactory()
	uow := factory.UOW

	user := &entities.User{ID: 1, ManaBalance: 120}

	uow.UserRepo.On("GetByID", ctx, int64(1)).Return(user, nil)
	uow.ManaTransactionRepo.On("SumByUser", ctx, int64(1)).Return(int64(120), nil)

	service := NewLedgerService(factory)

	balance, sum, err := service.Reconcile(ctx, 1)

	assert.NoError(t, err)
	assert.Equal(t, int64(120), balance)
	assert.Equal(t, balance, sum)
}

func TestLedgerService_PurchasePackage(t *testing.T) {
	config.SetTestConfig(config.NewTestConfig())
	defer config.ResetConfig()

	ctx := context.Background()
	factory := testhelpers.NewMockUnitOfWorkFactory()
	uow := factory.UOW

	pkg := &entities.ManaPackage{ID: 2, Name: "Adept Satchel", ManaAmount: 300, PriceCents: 1299, Active: true}
	user := &entities.User{ID: 1, ManaBalance: 50}

	uow.ManaPackageRepo.On("GetByID", ctx, int64(2)).Return(pkg, nil)
	uow.ManaTransactionRepo.On("GetByReference", ctx, "pay_abc").Return(nil, nil)
	uow.UserRepo.On("GetByIDForUpdate", ctx, int64(1)).Return(user, nil)
	uow.ManaTransactionRepo.On("Record", ctx, mock.MatchedBy(func(tx *entities.ManaTransaction) bool {
		return tx.TransactionType == entities.TransactionTypePurchase &&
			tx.Amount == 300 &&
			tx.Reference != nil && *tx.Reference == "pay_abc" &&
			tx.BalanceAfter == 350
	})).Return(nil)
	uow.UserRepo.On("UpdateBalance", ctx, int64(1), int64(350)).Return(nil)
	uow.Publisher.On("Publish", mock.AnythingOfType("events.ManaTransactionEvent")).Return(nil)

	service := NewLedgerService(factory)

	newBalance, err := service.PurchasePackage(ctx, 1, 2, "pay_abc")

	assert.NoError(t, err)
	assert.Equal(t, int64(350), newBalance)
	assert.True(t, uow.Committed)
}

func TestLedgerService_PurchasePackage_DuplicateReference(t *testing.T) {
	config.SetTestConfig(config.NewTestConfig())
	defer config.ResetConfig()

	ctx := context.Background()
	factory := testhelpers.NewMockUnitOfWorkFactory()
	uow := factory.UOW

	pkg := &entities.ManaPackage{ID: 2, Name: "Adept Satchel", ManaAmount: 300, PriceCents: 1299, Active: true}
	recorded := &entities.ManaTransaction{ID: 5, UserID: 1, Amount: 300, TransactionType: entities.TransactionTypePurchase}

	uow.ManaPackageRepo.On("GetByID", ctx, int64(2)).Return(pkg, nil)
	uow.ManaTransactionRepo.On("GetByReference", ctx, "pay_abc").Return(recorded, nil)

	service := NewLedgerService(factory)

	_, err := service.PurchasePackage(ctx, 1, 2, "pay_abc")

	assert.ErrorIs(t, err, entities.ErrDuplicatePurchase)
	assert.False(t, uow.Committed)
}

func TestLedgerService_PurchasePackage_InactivePackage(t *testing.T) {
	config.SetTestConfig(config.NewTestConfig())
	defer config.ResetConfig()

	ctx := context.Background()
	factory := testhelpers.NewMockUnitOfWorkFactory()
	uow := factory.UOW

	retired := &entities.ManaPackage{ID: 3, Name: "Old Bundle", ManaAmount: 10, Active: false}
	uow.ManaPackageRepo.On("GetByID", ctx, int64(3)).Return(retired, nil)

	service := NewLedgerService(factory)

	_, err := service.PurchasePackage(ctx, 1, 3, "pay_xyz")
	assert.ErrorIs(t, err, entities.ErrPackageNotFound)
}
