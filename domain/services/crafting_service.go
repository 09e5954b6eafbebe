package services

import (
	"context"
	"fmt"
	"time"

	"akashic/domain/entities"
	"akashic/domain/events"
	"akashic/domain/interfaces"
)

type craftingService struct {
	uowFactory interfaces.UnitOfWorkFactory
}

// NewCraftingService creates a new crafting service
func NewCraftingService(uowFactory interfaces.UnitOfWorkFactory) interfaces.CraftingService {
	return &craftingService{
		uowFactory: uowFactory,
	}
}

func (s *craftingService) ListInventory(ctx context.Context, userID int64) ([]*entities.InventoryItem, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	return uow.InventoryRepository().GetByUser(ctx, userID)
}

func (s *craftingService) SetEquipped(ctx context.Context, userID, itemID int64, equipped bool) error {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	if err := uow.InventoryRepository().SetEquipped(ctx, userID, itemID, equipped); err != nil {
		return err
	}

	return uow.Commit()
}

func (s *craftingService) ListRecipes(ctx context.Context) ([]*entities.CraftingRecipe, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	return uow.CraftingRecipeRepository().GetAll(ctx)
}

func (s *craftingService) ListQueue(ctx context.Context, userID int64) ([]*entities.CraftingQueueItem, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	return uow.CraftingQueueRepository().GetByUser(ctx, userID)
}

// StartCrafting deducts ingredients and the recipe's mana cost, then
// enqueues the craft. Everything happens in one transaction, so a missing
// ingredient or an insufficient balance leaves nothing consumed.
func (s *craftingService) StartCrafting(ctx context.Context, userID, recipeID int64) (*entities.CraftingQueueItem, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	recipe, err := uow.CraftingRecipeRepository().GetByID(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	if recipe == nil {
		return nil, entities.ErrRecipeNotFound
	}

	for _, ingredient := range recipe.Ingredients {
		if err := uow.InventoryRepository().AdjustQuantity(ctx, userID, ingredient.ItemName, -ingredient.Quantity); err != nil {
			return nil, err
		}
	}

	if recipe.ManaCost > 0 {
		description := fmt.Sprintf("Crafting: %s", recipe.Name)
		if _, err := recordLedgerEntry(ctx, uow, userID, -recipe.ManaCost, entities.TransactionTypeSpend, description, nil); err != nil {
			return nil, err
		}
	}

	item := &entities.CraftingQueueItem{
		UserID:      userID,
		RecipeID:    recipeID,
		CompletesAt: time.Now().Add(recipe.Duration()),
	}
	if err := uow.CraftingQueueRepository().Create(ctx, item); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return item, nil
}

// ClaimCrafting resolves a finished craft. Completion is checked lazily
// against the clock at claim time; nothing runs when completes_at passes.
func (s *craftingService) ClaimCrafting(ctx context.Context, userID, queueID int64) (*entities.InventoryItem, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	item, err := uow.CraftingQueueRepository().GetByID(ctx, queueID)
	if err != nil {
		return nil, err
	}
	if item == nil || item.UserID != userID {
		return nil, entities.ErrQueueItemNotFound
	}
	if item.IsClaimed() {
		return nil, entities.ErrCraftingAlreadyClaimed
	}

	now := time.Now()
	if !item.IsComplete(now) {
		return nil, entities.ErrCraftingNotReady
	}

	recipe, err := uow.CraftingRecipeRepository().GetByID(ctx, item.RecipeID)
	if err != nil {
		return nil, err
	}
	if recipe == nil {
		return nil, entities.ErrRecipeNotFound
	}

	if err := uow.CraftingQueueRepository().MarkClaimed(ctx, queueID, now); err != nil {
		return nil, err
	}

	if err := uow.InventoryRepository().AddItem(ctx, userID, recipe.ResultName, recipe.ResultType, recipe.ResultRarity, 1); err != nil {
		return nil, err
	}

	if err := uow.EventBus().Publish(events.CraftingClaimedEvent{
		UserID:     userID,
		QueueID:    queueID,
		RecipeID:   recipe.ID,
		ResultName: recipe.ResultName,
	}); err != nil {
		return nil, fmt.Errorf("failed to publish crafting event: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return s.findStack(ctx, userID, recipe.ResultName)
}

// findStack reloads the result stack after the claim commits
func (s *craftingService) findStack(ctx context.Context, userID int64, name string) (*entities.InventoryItem, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	items, err := uow.InventoryRepository().GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		if item.Name == name {
			return item, nil
		}
	}
	return nil, entities.ErrItemNotFound
}
