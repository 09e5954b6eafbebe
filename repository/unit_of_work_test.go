package repository

import (
	"context"
	"sync"
	"testing"

	"akashic/domain/entities"
	"akashic/domain/interfaces"
	"akashic/infrastructure"
	"akashic/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestUnitOfWorkFactory(testDB *testutil.TestDatabase) interfaces.UnitOfWorkFactory {
	return NewUnitOfWorkFactory(testDB.DB, func() interfaces.TransactionalEventPublisher {
		return infrastructure.NewTransactionalPublisher(infrastructure.NewNoopEventPublisher())
	})
}

// spendThroughUnitOfWork performs one locked spend the way the ledger does:
// lock the user row, check affordability, append the transaction, update the
// maintained balance, commit.
func spendThroughUnitOfWork(ctx context.Context, factory interfaces.UnitOfWorkFactory, userID, amount int64) error {
	uow := factory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	user, err := uow.UserRepository().GetByIDForUpdate(ctx, userID)
	if err != nil {
		return err
	}
	if err := user.ValidateSpend(amount); err != nil {
		return err
	}

	tx := &entities.ManaTransaction{
		UserID:          userID,
		Amount:          -amount,
		TransactionType: entities.TransactionTypeSpend,
		Description:     "spend under contention",
		BalanceBefore:   user.ManaBalance,
		BalanceAfter:    user.ManaBalance - amount,
	}
	if err := uow.ManaTransactionRepository().Record(ctx, tx); err != nil {
		return err
	}
	if err := uow.UserRepository().UpdateBalance(ctx, userID, tx.BalanceAfter); err != nil {
		return err
	}
	return uow.Commit()
}

func TestUnitOfWork_ConcurrentSpendsSerialize(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	ctx := context.Background()
	user := testutil.CreateTestUser(t, testDB.DB, "seeker", 100)
	factory := newTestUnitOfWorkFactory(testDB)

	// 5 racing spends of 30 against a balance of 100: exactly 3 can commit
	const workers = 5
	const spend = int64(30)

	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- spendThroughUnitOfWork(ctx, factory, user.ID, spend)
		}()
	}
	wg.Wait()
	close(errs)

	var committed int64
	for err := range errs {
		if err == nil {
			committed++
			continue
		}
		assert.ErrorIs(t, err, entities.ErrInsufficientMana)
	}
	assert.Equal(t, int64(3), committed)

	final, err := NewUserRepository(testDB.DB).GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, final)
	assert.Equal(t, int64(100)-spend*committed, final.ManaBalance)

	// The maintained balance and the signed history must agree
	sum, err := NewManaTransactionRepository(testDB.DB).SumByUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, -spend*committed, sum)
	assert.Equal(t, final.ManaBalance, int64(100)+sum)
}

func TestUnitOfWork_RollbackDiscardsWrites(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	ctx := context.Background()
	user := testutil.CreateTestUser(t, testDB.DB, "seeker", 50)
	factory := newTestUnitOfWorkFactory(testDB)

	uow := factory.Create()
	require.NoError(t, uow.Begin(ctx))

	tx := &entities.ManaTransaction{
		UserID:          user.ID,
		Amount:          -30,
		TransactionType: entities.TransactionTypeSpend,
		Description:     "abandoned spend",
		BalanceBefore:   50,
		BalanceAfter:    20,
	}
	require.NoError(t, uow.ManaTransactionRepository().Record(ctx, tx))
	require.NoError(t, uow.UserRepository().UpdateBalance(ctx, user.ID, 20))
	require.NoError(t, uow.Rollback())

	final, err := NewUserRepository(testDB.DB).GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(50), final.ManaBalance)

	txs, err := NewManaTransactionRepository(testDB.DB).GetByUser(ctx, user.ID, 10)
	require.NoError(t, err)
	assert.Empty(t, txs)
}
