package repository

import (
	"context"
	"testing"

	"akashic/domain/entities"
	"akashic/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManaTransactionRepository_Record(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewManaTransactionRepository(testDB.DB)
	ctx := context.Background()

	user := testutil.CreateTestUser(t, testDB.DB, "seeker", 50)

	t.Run("records a debit", func(t *testing.T) {
		tx := testutil.CreateTestTransaction(user.ID, 50, -30, entities.TransactionTypeSpend)
		err := repo.Record(ctx, tx)
		require.NoError(t, err)
		assert.NotZero(t, tx.ID)
		assert.False(t, tx.CreatedAt.IsZero())
	})

	t.Run("records a credit with a reference", func(t *testing.T) {
		tx := testutil.CreateTestTransaction(user.ID, 20, 300, entities.TransactionTypePurchase)
		ref := "pay_abc123"
		tx.Reference = &ref
		require.NoError(t, repo.Record(ctx, tx))

		found, err := repo.GetByReference(ctx, "pay_abc123")
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, tx.ID, found.ID)
	})

	t.Run("duplicate reference rejected", func(t *testing.T) {
		tx := testutil.CreateTestTransaction(user.ID, 320, 300, entities.TransactionTypePurchase)
		ref := "pay_abc123"
		tx.Reference = &ref
		err := repo.Record(ctx, tx)
		assert.ErrorIs(t, err, entities.ErrDuplicatePurchase)
	})

	t.Run("unknown reference returns nil", func(t *testing.T) {
		found, err := repo.GetByReference(ctx, "pay_missing")
		require.NoError(t, err)
		assert.Nil(t, found)
	})
}

func TestManaTransactionRepository_GetByUser(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewManaTransactionRepository(testDB.DB)
	ctx := context.Background()

	user := testutil.CreateTestUser(t, testDB.DB, "seeker", 0)

	balance := int64(0)
	amounts := []int64{50, -30, 10}
	types := []entities.TransactionType{
		entities.TransactionTypeReward,
		entities.TransactionTypeSpend,
		entities.TransactionTypeEarn,
	}
	for i, amount := range amounts {
		tx := testutil.CreateTestTransaction(user.ID, balance, amount, types[i])
		require.NoError(t, repo.Record(ctx, tx))
		balance += amount
	}

	t.Run("returns newest first", func(t *testing.T) {
		txs, err := repo.GetByUser(ctx, user.ID, 10)
		require.NoError(t, err)
		require.Len(t, txs, 3)
		assert.Equal(t, int64(10), txs[0].Amount)
		assert.Equal(t, int64(-30), txs[1].Amount)
		assert.Equal(t, int64(50), txs[2].Amount)
	})

	t.Run("respects the limit", func(t *testing.T) {
		txs, err := repo.GetByUser(ctx, user.ID, 2)
		require.NoError(t, err)
		assert.Len(t, txs, 2)
	})

	t.Run("sum matches signed history", func(t *testing.T) {
		sum, err := repo.SumByUser(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(30), sum)
	})

	t.Run("sum for user without history is zero", func(t *testing.T) {
		other := testutil.CreateTestUser(t, testDB.DB, "idle", 0)
		sum, err := repo.SumByUser(ctx, other.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(0), sum)
	})
}
