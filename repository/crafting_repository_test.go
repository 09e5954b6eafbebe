package repository

import (
	"context"
	"testing"
	"time"

	"akashic/domain/entities"
	"akashic/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCraftingRecipeRepository_GetByID(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewCraftingRecipeRepository(testDB.DB)
	ctx := context.Background()

	created := testutil.CreateTestRecipe(t, testDB.DB, "Ember Charm", 10,
		`[{"item_name":"Ember Dust","quantity":2},{"item_name":"Iron Thread","quantity":1}]`)

	t.Run("ingredients survive the round trip", func(t *testing.T) {
		recipe, err := repo.GetByID(ctx, created.ID)
		require.NoError(t, err)
		require.NotNil(t, recipe)
		require.Len(t, recipe.Ingredients, 2)
		assert.Equal(t, "Ember Dust", recipe.Ingredients[0].ItemName)
		assert.Equal(t, int64(2), recipe.Ingredients[0].Quantity)
		assert.Equal(t, int64(10), recipe.ManaCost)
	})

	t.Run("missing recipe returns nil", func(t *testing.T) {
		recipe, err := repo.GetByID(ctx, 99999)
		require.NoError(t, err)
		assert.Nil(t, recipe)
	})

	t.Run("get all includes the recipe", func(t *testing.T) {
		recipes, err := repo.GetAll(ctx)
		require.NoError(t, err)
		require.NotEmpty(t, recipes)
		names := make([]string, 0, len(recipes))
		for _, r := range recipes {
			names = append(names, r.Name)
		}
		assert.Contains(t, names, "Ember Charm")
	})
}

func TestCraftingQueueRepository_Claim(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewCraftingQueueRepository(testDB.DB)
	ctx := context.Background()

	user := testutil.CreateTestUser(t, testDB.DB, "seeker", 0)
	recipe := testutil.CreateTestRecipe(t, testDB.DB, "Ember Charm", 0, `[]`)

	item := &entities.CraftingQueueItem{
		UserID:      user.ID,
		RecipeID:    recipe.ID,
		CompletesAt: time.Now().Add(time.Minute),
	}
	require.NoError(t, repo.Create(ctx, item))
	require.NotZero(t, item.ID)
	require.False(t, item.StartedAt.IsZero())

	t.Run("claim marks the item once", func(t *testing.T) {
		err := repo.MarkClaimed(ctx, item.ID, time.Now())
		require.NoError(t, err)

		loaded, err := repo.GetByID(ctx, item.ID)
		require.NoError(t, err)
		require.NotNil(t, loaded)
		assert.True(t, loaded.IsClaimed())
	})

	t.Run("second claim is rejected", func(t *testing.T) {
		err := repo.MarkClaimed(ctx, item.ID, time.Now())
		assert.ErrorIs(t, err, entities.ErrCraftingAlreadyClaimed)
	})

	t.Run("user queue lists the item", func(t *testing.T) {
		items, err := repo.GetByUser(ctx, user.ID)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, recipe.ID, items[0].RecipeID)
	})
}

func TestInventoryRepository_AdjustQuantity(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewInventoryRepository(testDB.DB)
	ctx := context.Background()

	user := testutil.CreateTestUser(t, testDB.DB, "seeker", 0)

	require.NoError(t, repo.AddItem(ctx, user.ID, "Ember Dust", "material", "common", 3))

	t.Run("adding the same item stacks it", func(t *testing.T) {
		require.NoError(t, repo.AddItem(ctx, user.ID, "Ember Dust", "material", "common", 2))

		items, err := repo.GetByUser(ctx, user.ID)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, int64(5), items[0].Quantity)
	})

	t.Run("consuming within the stack succeeds", func(t *testing.T) {
		require.NoError(t, repo.AdjustQuantity(ctx, user.ID, "Ember Dust", -4))

		items, err := repo.GetByUser(ctx, user.ID)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, int64(1), items[0].Quantity)
	})

	t.Run("overdraw is rejected", func(t *testing.T) {
		err := repo.AdjustQuantity(ctx, user.ID, "Ember Dust", -2)
		assert.ErrorIs(t, err, entities.ErrMissingIngredients)
	})

	t.Run("missing stack is rejected", func(t *testing.T) {
		err := repo.AdjustQuantity(ctx, user.ID, "Iron Thread", -1)
		assert.ErrorIs(t, err, entities.ErrMissingIngredients)
	})

	t.Run("equip toggles the flag", func(t *testing.T) {
		items, err := repo.GetByUser(ctx, user.ID)
		require.NoError(t, err)
		require.Len(t, items, 1)

		require.NoError(t, repo.SetEquipped(ctx, user.ID, items[0].ID, true))

		items, err = repo.GetByUser(ctx, user.ID)
		require.NoError(t, err)
		assert.True(t, items[0].Equipped)
	})

	t.Run("equipping another user's item fails", func(t *testing.T) {
		other := testutil.CreateTestUser(t, testDB.DB, "stranger", 0)
		items, err := repo.GetByUser(ctx, user.ID)
		require.NoError(t, err)

		err = repo.SetEquipped(ctx, other.ID, items[0].ID, true)
		assert.ErrorIs(t, err, entities.ErrItemNotFound)
	})
}
