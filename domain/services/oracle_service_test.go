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

func TestOracleService_Ask(t *testing.T) {
	config.SetTestConfig(config.NewTestConfig())
	defer config.ResetConfig()

	ctx := context.Background()
	factory := testhelpers.NewMockUnitOfWorkFactory()
	uow := factory.UOW

	cost := config.Get().OracleQuestionCost
	user := &entities.User{ID: 1, ManaBalance: 50}

	uow.UserRepo.On("GetByIDForUpdate", ctx, int64(1)).Return(user, nil)
	uow.ManaTransactionRepo.On("Record", ctx, mock.MatchedBy(func(tx *entities.ManaTransaction) bool {
		return tx.Amount == -cost && tx.TransactionType == entities.TransactionTypeSpend
	})).Return(nil)
	uow.UserRepo.On("UpdateBalance", ctx, int64(1), int64(50)-cost).Return(nil)
	uow.Publisher.On("Publish", mock.AnythingOfType("events.ManaTransactionEvent")).Return(nil)

	provider := new(testhelpers.MockOracleProvider)
	provider.On("Complete", ctx, "What lies beyond the veil?").Return("Only echoes.", nil)

	service := NewOracleService(NewLedgerService(factory), provider)

	answer, balance, err := service.Ask(ctx, 1, "What lies beyond the veil?")

	assert.NoError(t, err)
	assert.Equal(t, "Only echoes.", answer)
	assert.Equal(t, int64(50)-cost, balance)
	provider.AssertExpectations(t)
}

func TestOracleService_Ask_RefundsOnProviderFailure(t *testing.T) {
	config.SetTestConfig(config.NewTestConfig())
	defer config.ResetConfig()

	ctx := context.Background()
	factory := testhelpers.NewMockUnitOfWorkFactory()
	uow := factory.UOW

	cost := config.Get().OracleQuestionCost
	user := &entities.User{ID: 1, ManaBalance: 50}
	afterSpend := &entities.User{ID: 1, ManaBalance: 50 - cost}

	uow.UserRepo.On("GetByIDForUpdate", ctx, int64(1)).Return(user, nil).Once()
	uow.UserRepo.On("GetByIDForUpdate", ctx, int64(1)).Return(afterSpend, nil).Once()
	uow.ManaTransactionRepo.On("Record", ctx, mock.MatchedBy(func(tx *entities.ManaTransaction) bool {
		return tx.Amount == -cost && tx.TransactionType == entities.TransactionTypeSpend
	})).Return(nil).Once()
	uow.ManaTransactionRepo.On("Record", ctx, mock.MatchedBy(func(tx *entities.ManaTransaction) bool {
		return tx.Amount == cost && tx.TransactionType == entities.TransactionTypeEarn
	})).Return(nil).Once()
	uow.UserRepo.On("UpdateBalance", ctx, int64(1), int64(50)-cost).Return(nil).Once()
	uow.UserRepo.On("UpdateBalance", ctx, int64(1), int64(50)).Return(nil).Once()
	uow.Publisher.On("Publish", mock.AnythingOfType("events.ManaTransactionEvent")).Return(nil)

	provider := new(testhelpers.MockOracleProvider)
	provider.On("Complete", ctx, "Any answer?").Return("", entities.ErrOracleUnavailable)

	service := NewOracleService(NewLedgerService(factory), provider)

	_, balance, err := service.Ask(ctx, 1, "Any answer?")

	assert.ErrorIs(t, err, entities.ErrOracleUnavailable)
	assert.Equal(t, int64(50), balance)
	uow.ManaTransactionRepo.AssertExpectations(t)
}

func TestOracleService_Ask_FreeQuestionSkipsLedger(t *testing.T) {
	cfg := config.NewTestConfig()
	cfg.OracleQuestionCost = 0
	config.SetTestConfig(cfg)
	defer config.ResetConfig()

	ctx := context.Background()
	factory := testhelpers.NewMockUnitOfWorkFactory()
	uow := factory.UOW

	user := &entities.User{ID: 1, ManaBalance: 50}
	uow.UserRepo.On("GetByID", ctx, int64(1)).Return(user, nil)

	provider := new(testhelpers.MockOracleProvider)
	provider.On("Complete", ctx, "Is wisdom free today?").Return("For now.", nil)

	service := NewOracleService(NewLedgerService(factory), provider)

	answer, balance, err := service.Ask(ctx, 1, "Is wisdom free today?")

	assert.NoError(t, err)
	assert.Equal(t, "For now.", answer)
	assert.Equal(t, int64(50), balance)
	uow.ManaTransactionRepo.AssertNotCalled(t, "Record", mock.Anything, mock.Anything)
	uow.UserRepo.AssertNotCalled(t, "UpdateBalance", mock.Anything, mock.Anything, mock.Anything)
}

func TestOracleService_Ask_InsufficientMana(t *testing.T) {
	config.SetTestConfig(config.NewTestConfig())
	defer config.ResetConfig()

	ctx := context.Background()
	factory := testhelpers.NewMockUnitOfWorkFactory()
	uow := factory.UOW

	broke := &entities.User{ID: 1, ManaBalance: 1}
	uow.UserRepo.On("GetByIDForUpdate", ctx, int64(1)).Return(broke, nil)

	provider := new(testhelpers.MockOracleProvider)

	service := NewOracleService(NewLedgerService(factory), provider)

	_, _, err := service.Ask(ctx, 1, "Am I rich?")

	assert.ErrorIs(t, err, entities.ErrInsufficientMana)
	provider.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything)
}

func TestOracleService_Ask_EmptyQuestion(t *testing.T) {
	config.SetTestConfig(config.NewTestConfig())
	defer config.ResetConfig()

	factory := testhelpers.NewMockUnitOfWorkFactory()
	provider := new(testhelpers.MockOracleProvider)

	service := NewOracleService(NewLedgerService(factory), provider)

	_, _, err := service.Ask(context.Background(), 1, "   ")
	assert.Error(t, err)
	provider.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything)
}
