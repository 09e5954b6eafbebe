package repository

import (
	"context"
	"testing"
	"time"

	"akashic/domain/entities"
	"akashic/repository/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionRepository(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewSessionRepository(testDB.DB)
	ctx := context.Background()

	user := testutil.CreateTestUser(t, testDB.DB, "seeker", 0)

	token := uuid.New().String()
	session := &entities.Session{
		Token:     token,
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(time.Hour),
	}
	require.NoError(t, repo.Create(ctx, session))

	t.Run("lookup by token", func(t *testing.T) {
		found, err := repo.GetByToken(ctx, token)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, user.ID, found.UserID)
	})

	t.Run("unknown token returns nil", func(t *testing.T) {
		found, err := repo.GetByToken(ctx, uuid.New().String())
		require.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("delete revokes the session", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, token))

		found, err := repo.GetByToken(ctx, token)
		require.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("delete of a missing token reports it", func(t *testing.T) {
		err := repo.Delete(ctx, token)
		assert.ErrorIs(t, err, entities.ErrSessionNotFound)
	})

	t.Run("delete expired sweeps old sessions", func(t *testing.T) {
		expired := &entities.Session{
			Token:     uuid.New().String(),
			UserID:    user.ID,
			ExpiresAt: time.Now().Add(-time.Hour),
		}
		require.NoError(t, repo.Create(ctx, expired))

		deleted, err := repo.DeleteExpired(ctx, time.Now())
		require.NoError(t, err)
		assert.Equal(t, int64(1), deleted)
	})
}
