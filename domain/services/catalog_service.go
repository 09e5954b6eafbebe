package services

import (
	"context"
	"fmt"

	"akashic/domain/entities"
	"akashic/domain/interfaces"
)

type catalogService struct {
	uowFactory interfaces.UnitOfWorkFactory
}

// NewCatalogService creates a new catalog service
func NewCatalogService(uowFactory interfaces.UnitOfWorkFactory) interfaces.CatalogService {
	return &catalogService{
		uowFactory: uowFactory,
	}
}

func (s *catalogService) ListScrolls(ctx context.Context, filterType *entities.ScrollType) ([]*entities.Scroll, error) {
	// An unknown type filter falls back to the full catalog, same as no filter
	if filterType != nil && !filterType.IsValid() {
		filterType = nil
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	return uow.ScrollRepository().GetAll(ctx, filterType)
}

func (s *catalogService) ListUnlockedScrolls(ctx context.Context, userID int64) ([]*entities.Scroll, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	return uow.ScrollUnlockRepository().GetScrollsUnlockedByUser(ctx, userID)
}

func (s *catalogService) IsUnlockedForUser(ctx context.Context, userID, scrollID int64) (bool, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	scroll, err := uow.ScrollRepository().GetByID(ctx, scrollID)
	if err != nil {
		return false, err
	}
	if scroll == nil {
		return false, entities.ErrScrollNotFound
	}
	if !scroll.IsLocked {
		return true, nil
	}

	return uow.ScrollUnlockRepository().Exists(ctx, userID, scrollID)
}
