package services

import (
	"context"
	"testing"
	"time"

	"akashic/config"
	"akashic/domain/entities"
	"akashic/domain/testhelpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func emberRecipe() *entities.CraftingRecipe {
	return &entities.CraftingRecipe{
		ID:              3,
		Name:            "Ember Charm",
		ResultName:      "Ember Charm",
		ResultType:      "charm",
		ResultRarity:    "rare",
		ManaCost:        10,
		DurationSeconds: 3600,
		Ingredients: []entities.RecipeIngredient{
			{ItemName: "Ash Crystal", Quantity: 2},
			{ItemName: "Silver Thread", Quantity: 1},
		},
	}
}

func TestCraftingService_StartCrafting(t *testing.T) {
	config.SetTestConfig(config.NewTestConfig())
	defer config.ResetConfig()

	ctx := context.Background()
	factory := testhelpers.NewMockUnitOfWorkFactory()
	uow := factory.UOW

	user := &entities.User{ID: 1, ManaBalance: 50}

	uow.CraftingRecipeRepo.On("GetByID", ctx, int64(3)).Return(emberRecipe(), nil)
	uow.InventoryRepo.On("AdjustQuantity", ctx, int64(1), "Ash Crystal", int64(-2)).Return(nil)
	uow.InventoryRepo.On("AdjustQuantity", ctx, int64(1), "Silver Thread", int64(-1)).Return(nil)
	uow.UserRepo.On("GetByIDForUpdate", ctx, int64(1)).Return(user, nil)
	uow.ManaTransactionRepo.On("Record", ctx, mock.MatchedBy(func(tx *entities.ManaTransaction) bool {
		return tx.Amount == -10 && tx.TransactionType == entities.TransactionTypeSpend
	})).Return(nil)
	uow.UserRepo.On("UpdateBalance", ctx, int64(1), int64(40)).Return(nil)
	uow.Publisher.On("Publish", mock.AnythingOfType("events.ManaTransactionEvent")).Return(nil)
	uow.CraftingQueueRepo.On("Create", ctx, mock.MatchedBy(func(item *entities.CraftingQueueItem) bool {
		return item.UserID == 1 && item.RecipeID == 3 && item.CompletesAt.After(time.Now())
	})).Return(nil)

	service := NewCraftingService(factory)

	item, err := service.StartCrafting(ctx, 1, 3)

	assert.NoError(t, err)
	assert.Equal(t, int64(3), item.RecipeID)
	assert.True(t, uow.Committed)

	uow.InventoryRepo.AssertExpectations(t)
	uow.CraftingQueueRepo.AssertExpectations(t)
}

func TestCraftingService_StartCrafting_MissingIngredients(t *testing.T) {
	config.SetTestConfig(config.NewTestConfig())
	defer config.ResetConfig()

	ctx := context.Background()
	factory := testhelpers.NewMockUnitOfWorkFactory()
	uow := factory.UOW

	uow.CraftingRecipeRepo.On("GetByID", ctx, int64(3)).Return(emberRecipe(), nil)
	uow.InventoryRepo.On("AdjustQuantity", ctx, int64(1), "Ash Crystal", int64(-2)).
		Return(entities.ErrMissingIngredients)

	service := NewCraftingService(factory)

	_, err := service.StartCrafting(ctx, 1, 3)

	assert.ErrorIs(t, err, entities.ErrMissingIngredients)
	assert.False(t, uow.Committed)
	uow.CraftingQueueRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCraftingService_StartCrafting_UnknownRecipe(t *testing.T) {
	config.SetTestConfig(config.NewTestConfig())
	defer config.ResetConfig()

	ctx := context.Background()
	factory := testhelpers.NewMockUnitOfWorkFactory()
	factory.UOW.CraftingRecipeRepo.On("GetByID", ctx, int64(99)).Return(nil, nil)

	service := NewCraftingService(factory)

	_, err := service.StartCrafting(ctx, 1, 99)
	assert.ErrorIs(t, err, entities.ErrRecipeNotFound)
}

func TestCraftingService_ClaimCrafting(t *testing.T) {
	config.SetTestConfig(config.NewTestConfig())
	defer config.ResetConfig()

	ctx := context.Background()
	factory := testhelpers.NewMockUnitOfWorkFactory()
	uow := factory.UOW

	finished := &entities.CraftingQueueItem{
		ID:          7,
		UserID:      1,
		RecipeID:    3,
		StartedAt:   time.Now().Add(-2 * time.Hour),
		CompletesAt: time.Now().Add(-time.Hour),
	}
	stack := &entities.InventoryItem{ID: 4, UserID: 1, Name: "Ember Charm", Quantity: 1}

	uow.CraftingQueueRepo.On("GetByID", ctx, int64(7)).Return(finished, nil)
	uow.CraftingRecipeRepo.On("GetByID", ctx, int64(3)).Return(emberRecipe(), nil)
	uow.CraftingQueueRepo.On("MarkClaimed", ctx, int64(7), mock.AnythingOfType("time.Time")).Return(nil)
	uow.InventoryRepo.On("AddItem", ctx, int64(1), "Ember Charm", "charm", "rare", int64(1)).Return(nil)
	uow.Publisher.On("Publish", mock.AnythingOfType("events.CraftingClaimedEvent")).Return(nil)
	uow.InventoryRepo.On("GetByUser", ctx, int64(1)).Return([]*entities.InventoryItem{stack}, nil)

	service := NewCraftingService(factory)

	item, err := service.ClaimCrafting(ctx, 1, 7)

	assert.NoError(t, err)
	assert.Equal(t, "Ember Charm", item.Name)
	assert.True(t, uow.Committed)
}

func TestCraftingService_ClaimCrafting_NotReady(t *testing.T) {
	config.SetTestConfig(config.NewTestConfig())
	defer config.ResetConfig()

	ctx := context.Background()
	factory := testhelpers.NewMockUnitOfWorkFactory()
	uow := factory.UOW

	inFlight := &entities.CraftingQueueItem{
		ID:          7,
		UserID:      1,
		RecipeID:    3,
		StartedAt:   time.Now(),
		CompletesAt: time.Now().Add(time.Hour),
	}
	uow.CraftingQueueRepo.On("GetByID", ctx, int64(7)).Return(inFlight, nil)

	service := NewCraftingService(factory)

	_, err := service.ClaimCrafting(ctx, 1, 7)

	assert.ErrorIs(t, err, entities.ErrCraftingNotReady)
	uow.CraftingQueueRepo.AssertNotCalled(t, "MarkClaimed", mock.Anything, mock.Anything, mock.Anything)
}

func TestCraftingService_ClaimCrafting_AlreadyClaimed(t *testing.T) {
	config.SetTestConfig(config.NewTestConfig())
	defer config.ResetConfig()

	ctx := context.Background()
	factory := testhelpers.NewMockUnitOfWorkFactory()

	claimedAt := time.Now().Add(-time.Minute)
	done := &entities.CraftingQueueItem{
		ID:          7,
		UserID:      1,
		RecipeID:    3,
		CompletesAt: time.Now().Add(-time.Hour),
		ClaimedAt:   &claimedAt,
	}
	factory.UOW.CraftingQueueRepo.On("GetByID", ctx, int64(7)).Return(done, nil)

	service := NewCraftingService(factory)

	_, err := service.ClaimCrafting(ctx, 1, 7)
	assert.ErrorIs(t, err, entities.ErrCraftingAlreadyClaimed)
}

func TestCraftingService_ClaimCrafting_WrongOwner(t *testing.T) {
	config.SetTestConfig(config.NewTestConfig())
	defer config.ResetConfig()

	ctx := context.Background()
	factory := testhelpers.NewMockUnitOfWorkFactory()

	other := &entities.CraftingQueueItem{
		ID:          7,
		UserID:      2,
		RecipeID:    3,
		CompletesAt: time.Now().Add(-time.Hour),
	}
	factory.UOW.CraftingQueueRepo.On("GetByID", ctx, int64(7)).Return(other, nil)

	service := NewCraftingService(factory)

	// Another user's queue item looks exactly like a missing one
	_, err := service.ClaimCrafting(ctx, 1, 7)
	assert.ErrorIs(t, err, entities.ErrQueueItemNotFound)
}
