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

func lockedScroll() *entities.Scroll {
	return &entities.Scroll{
		ID:        10,
		Title:     "Scroll of Insight",
		Type:      entities.ScrollTypeScroll,
		IsLocked:  true,
		UnlockKey: "WISDOM",
	}
}

func TestUnlockService_AttemptUnlock_CorrectKey(t *testing.T) {
	config.SetTestConfig(config.NewTestConfig())
	defer config.ResetConfig()

	ctx := context.Background()
	factory := testhelpers.NewMockUnitOfWorkFactory()
	uow := factory.UOW

	uow.ScrollRepo.On("GetByIDWithKey", ctx, int64(10)).Return(lockedScroll(), nil)
	uow.ScrollUnlockRepo.On("Create", ctx, int64(1), int64(10)).Return(true, nil)
	uow.Publisher.On("Publish", mock.AnythingOfType("events.ScrollUnlockedEvent")).Return(nil)

	service := NewUnlockService(factory)

	scroll, err := service.AttemptUnlock(ctx, 1, 10, "WISDOM")

	assert.NoError(t, err)
	assert.Equal(t, int64(10), scroll.ID)
	assert.Empty(t, scroll.UnlockKey)
	assert.True(t, uow.Committed)

	uow.ScrollUnlockRepo.AssertExpectations(t)
	uow.Publisher.AssertExpectations(t)
}

func TestUnlockService_AttemptUnlock_TrimsWhitespace(t *testing.T) {
	config.SetTestConfig(config.NewTestConfig())
	defer config.ResetConfig()

	ctx := context.Background()
	factory := testhelpers.NewMockUnitOfWorkFactory()
	uow := factory.UOW

	uow.ScrollRepo.On("GetByIDWithKey", ctx, int64(10)).Return(lockedScroll(), nil)
	uow.ScrollUnlockRepo.On("Create", ctx, int64(1), int64(10)).Return(true, nil)
	uow.Publisher.On("Publish", mock.AnythingOfType("events.ScrollUnlockedEvent")).Return(nil)

	service := NewUnlockService(factory)

	_, err := service.AttemptUnlock(ctx, 1, 10, "  WISDOM  ")
	assert.NoError(t, err)
}

func TestUnlockService_AttemptUnlock_WrongKey(t *testing.T) {
	config.SetTestConfig(config.NewTestConfig())
	defer config.ResetConfig()

	ctx := context.Background()
	factory := testhelpers.NewMockUnitOfWorkFactory()
	uow := factory.UOW

	uow.ScrollRepo.On("GetByIDWithKey", ctx, int64(10)).Return(lockedScroll(), nil)

	service := NewUnlockService(factory)

	_, err := service.AttemptUnlock(ctx, 1, 10, "X")

	assert.ErrorIs(t, err, entities.ErrInvalidKey)
	assert.False(t, uow.Committed)
	uow.ScrollUnlockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	uow.Publisher.AssertNotCalled(t, "Publish", mock.Anything)
}

func TestUnlockService_AttemptUnlock_CaseSensitive(t *testing.T) {
	config.SetTestConfig(config.NewTestConfig())
	defer config.ResetConfig()

	ctx := context.Background()
	factory := testhelpers.NewMockUnitOfWorkFactory()
	factory.UOW.ScrollRepo.On("GetByIDWithKey", ctx, int64(10)).Return(lockedScroll(), nil)

	service := NewUnlockService(factory)

	_, err := service.AttemptUnlock(ctx, 1, 10, "wisdom")
	assert.ErrorIs(t, err, entities.ErrInvalidKey)
}

func TestUnlockService_AttemptUnlock_RepeatIsNoOp(t *testing.T) {
	config.SetTestConfig(config.NewTestConfig())
	defer config.ResetConfig()

	ctx := context.Background()
	factory := testhelpers.NewMockUnitOfWorkFactory()
	uow := factory.UOW

	uow.ScrollRepo.On("GetByIDWithKey", ctx, int64(10)).Return(lockedScroll(), nil)
	uow.ScrollUnlockRepo.On("Create", ctx, int64(1), int64(10)).Return(false, nil)

	service := NewUnlockService(factory)

	scroll, err := service.AttemptUnlock(ctx, 1, 10, "WISDOM")

	assert.NoError(t, err)
	assert.NotNil(t, scroll)
	assert.True(t, uow.Committed)

	// No event for a repeat unlock
	uow.Publisher.AssertNotCalled(t, "Publish", mock.Anything)
}

func TestUnlockService_AttemptUnlock_ScrollNotFound(t *testing.T) {
	config.SetTestConfig(config.NewTestConfig())
	defer config.ResetConfig()

	ctx := context.Background()
	factory := testhelpers.NewMockUnitOfWorkFactory()
	factory.UOW.ScrollRepo.On("GetByIDWithKey", ctx, int64(404)).Return(nil, nil)

	service := NewUnlockService(factory)

	_, err := service.AttemptUnlock(ctx, 1, 404, "WISDOM")
	assert.ErrorIs(t, err, entities.ErrScrollNotFound)
}

func TestUnlockService_AttemptUnlock_GloballyUnlockedScroll(t *testing.T) {
	config.SetTestConfig(config.NewTestConfig())
	defer config.ResetConfig()

	ctx := context.Background()
	factory := testhelpers.NewMockUnitOfWorkFactory()
	uow := factory.UOW

	open := &entities.Scroll{ID: 11, Title: "Open Codex", Type: entities.ScrollTypeBook, IsLocked: false}

	uow.ScrollRepo.On("GetByIDWithKey", ctx, int64(11)).Return(open, nil)
	uow.ScrollUnlockRepo.On("Create", ctx, int64(1), int64(11)).Return(true, nil)
	uow.Publisher.On("Publish", mock.AnythingOfType("events.ScrollUnlockedEvent")).Return(nil)

	service := NewUnlockService(factory)

	// Any key works on an unlocked scroll; the record still tracks the reader
	scroll, err := service.AttemptUnlock(ctx, 1, 11, "")
	assert.NoError(t, err)
	assert.Equal(t, int64(11), scroll.ID)
}
