package services

import (
	"context"
	"fmt"
	"strings"

	"akashic/domain/entities"
	"akashic/domain/events"
	"akashic/domain/interfaces"

	log "github.com/sirupsen/logrus"
)

type unlockService struct {
	uowFactory interfaces.UnitOfWorkFactory
}

// NewUnlockService creates a new unlock service
func NewUnlockService(uowFactory interfaces.UnitOfWorkFactory) interfaces.UnlockService {
	return &unlockService{
		uowFactory: uowFactory,
	}
}

// AttemptUnlock validates the supplied key against the scroll's secret.
// Key comparison trims surrounding whitespace and is otherwise exact,
// including case. The stored key is never logged, not even on failure.
func (s *unlockService) AttemptUnlock(ctx context.Context, userID, scrollID int64, suppliedKey string) (*entities.Scroll, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	scroll, err := uow.ScrollRepository().GetByIDWithKey(ctx, scrollID)
	if err != nil {
		return nil, err
	}
	if scroll == nil {
		return nil, entities.ErrScrollNotFound
	}

	if scroll.IsLocked {
		if strings.TrimSpace(suppliedKey) != strings.TrimSpace(scroll.UnlockKey) {
			log.WithFields(log.Fields{
				"userId":   userID,
				"scrollId": scrollID,
			}).Info("Scroll unlock attempt rejected")
			return nil, entities.ErrInvalidKey
		}
	}

	created, err := uow.ScrollUnlockRepository().Create(ctx, userID, scrollID)
	if err != nil {
		return nil, err
	}

	if created {
		if err := uow.EventBus().Publish(events.ScrollUnlockedEvent{
			UserID:   userID,
			ScrollID: scrollID,
		}); err != nil {
			return nil, fmt.Errorf("failed to publish unlock event: %w", err)
		}
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	scroll.UnlockKey = ""
	return scroll, nil
}
