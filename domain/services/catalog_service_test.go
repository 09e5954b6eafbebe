package services

import (
	"context"
	"testing"

	"akashic/config"
	"akashic/domain/entities"
	"akashic/domain/testhelpers"

	"github.com/stretchr/testify/assert"
)

func catalogScrolls() []*entities.Scroll {
	return []*entities.Scroll{
		{ID: 1, Title: "Scroll of Wisdom", Type: entities.ScrollTypeScroll, IsLocked: true},
		{ID: 2, Title: "Tablet of Dawn", Type: entities.ScrollTypeTablet, IsLocked: false},
	}
}

func TestCatalogService_ListScrolls(t *testing.T) {
	config.SetTestConfig(config.NewTestConfig())
	defer config.ResetConfig()

	ctx := context.Background()
	factory := testhelpers.NewMockUnitOfWorkFactory()
	uow := factory.UOW

	uow.ScrollRepo.On("GetAll", ctx, (*entities.ScrollType)(nil)).Return(catalogScrolls(), nil)

	service := NewCatalogService(factory)

	scrolls, err := service.ListScrolls(ctx, nil)
	assert.NoError(t, err)
	assert.Len(t, scrolls, 2)
}

func TestCatalogService_ListScrolls_TypeFilter(t *testing.T) {
	config.SetTestConfig(config.NewTestConfig())
	defer config.ResetConfig()

	ctx := context.Background()
	factory := testhelpers.NewMockUnitOfWorkFactory()
	uow := factory.UOW

	tablet := entities.ScrollTypeTablet
	uow.ScrollRepo.On("GetAll", ctx, &tablet).Return(catalogScrolls()[1:], nil)

	service := NewCatalogService(factory)

	scrolls, err := service.ListScrolls(ctx, &tablet)
	assert.NoError(t, err)
	assert.Len(t, scrolls, 1)
	assert.Equal(t, entities.ScrollTypeTablet, scrolls[0].Type)
}

func TestCatalogService_ListScrolls_UnknownTypeReturnsFullCatalog(t *testing.T) {
	config.SetTestConfig(config.NewTestConfig())
	defer config.ResetConfig()

	ctx := context.Background()
	factory := testhelpers.NewMockUnitOfWorkFactory()
	uow := factory.UOW

	uow.ScrollRepo.On("GetAll", ctx, (*entities.ScrollType)(nil)).Return(catalogScrolls(), nil)

	service := NewCatalogService(factory)

	unknown := entities.ScrollType("grimoire")
	scrolls, err := service.ListScrolls(ctx, &unknown)
	assert.NoError(t, err)
	assert.Len(t, scrolls, 2)
}
