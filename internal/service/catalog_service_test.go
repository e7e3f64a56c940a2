package service_test

import (
	"context"
	"errors"
	"testing"

	cacheMocks "go-tour-booking/internal/cache/mocks"
	"go-tour-booking/internal/model"
	repoMocks "go-tour-booking/internal/repository/mocks"
	"go-tour-booking/internal/service"
	apperrors "go-tour-booking/pkg/app_errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCatalogService(t *testing.T) (service.CatalogService, *repoMocks.CatalogRepositoryMock, *cacheMocks.CatalogCacheMock) {
	repo := repoMocks.NewCatalogRepositoryMock()
	catalogCache := cacheMocks.NewCatalogCacheMock()
	svc := service.NewCatalogService(repo, catalogCache)
	return svc, repo, catalogCache
}

func sampleTicketTypes() []model.TicketType {
	return []model.TicketType{
		{
			ID:     10,
			TourID: testTourID,
			Name:   "Standard",
			PriceTiers: []model.PriceTier{
				{ID: testAdultTierID, TicketTypeID: 10, CategoryID: 1, CategoryName: "Adult", UnitPrice: 100},
				{ID: 2, TicketTypeID: 10, CategoryID: 2, CategoryName: "Child", UnitPrice: 50},
			},
		},
	}
}

func TestCatalogService_GetTicketTypes(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - cache hit", func(t *testing.T) {
		svc, repo, catalogCache := setupCatalogService(t)
		catalogCache.On("GetTicketTypes", ctx, testTourID).Return(sampleTicketTypes(), nil).Once()

		ticketTypes, err := svc.GetTicketTypes(ctx, testTourID)

		require.NoError(t, err)
		assert.Len(t, ticketTypes, 1)
		repo.AssertNotCalled(t, "ListTicketTypes")
		catalogCache.AssertExpectations(t)
	})

	t.Run("Success - cache miss falls back to repository", func(t *testing.T) {
		svc, repo, catalogCache := setupCatalogService(t)
		catalogCache.On("GetTicketTypes", ctx, testTourID).Return(nil, apperrors.ErrCacheMiss).Once()
		repo.On("ListTicketTypes", ctx, testTourID).Return(sampleTicketTypes(), nil).Once()
		catalogCache.On("SetTicketTypes", ctx, testTourID, sampleTicketTypes()).Return(nil).Once()

		ticketTypes, err := svc.GetTicketTypes(ctx, testTourID)

		require.NoError(t, err)
		assert.Len(t, ticketTypes, 1)
		repo.AssertExpectations(t)
		catalogCache.AssertExpectations(t)
	})

	t.Run("Success - cache outage falls back to repository", func(t *testing.T) {
		svc, repo, catalogCache := setupCatalogService(t)
		catalogCache.On("GetTicketTypes", ctx, testTourID).Return(nil, errors.New("redis: connection refused")).Once()
		repo.On("ListTicketTypes", ctx, testTourID).Return(sampleTicketTypes(), nil).Once()
		catalogCache.On("SetTicketTypes", ctx, testTourID, sampleTicketTypes()).Return(errors.New("redis: connection refused")).Once()

		ticketTypes, err := svc.GetTicketTypes(ctx, testTourID)

		require.NoError(t, err, "a cache write failure must not fail the read path")
		assert.Len(t, ticketTypes, 1)
		repo.AssertExpectations(t)
	})

	t.Run("Failed - repository error", func(t *testing.T) {
		svc, repo, catalogCache := setupCatalogService(t)
		catalogCache.On("GetTicketTypes", ctx, testTourID).Return(nil, apperrors.ErrCacheMiss).Once()
		repo.On("ListTicketTypes", ctx, testTourID).Return(nil, errors.New("db down")).Once()

		_, err := svc.GetTicketTypes(ctx, testTourID)

		require.Error(t, err)
		catalogCache.AssertNotCalled(t, "SetTicketTypes")
	})
}

func TestCatalogService_GetIndex(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		svc, _, catalogCache := setupCatalogService(t)
		catalogCache.On("GetTicketTypes", ctx, testTourID).Return(sampleTicketTypes(), nil).Once()

		ix, err := svc.GetIndex(ctx, testTourID)

		require.NoError(t, err)
		require.NotNil(t, ix)
		assert.Equal(t, testTourID, ix.TourID())

		tier, ok := ix.ResolveTier(testAdultTierID)
		require.True(t, ok)
		assert.Equal(t, "Standard", tier.TicketTypeName)
		assert.Equal(t, 100.0, tier.UnitPrice)
	})

	t.Run("Failed - load error", func(t *testing.T) {
		svc, repo, catalogCache := setupCatalogService(t)
		catalogCache.On("GetTicketTypes", ctx, testTourID).Return(nil, apperrors.ErrCacheMiss).Once()
		repo.On("ListTicketTypes", ctx, testTourID).Return(nil, errors.New("db down")).Once()

		ix, err := svc.GetIndex(ctx, testTourID)

		require.Error(t, err)
		assert.Nil(t, ix)
	})
}

func TestCatalogService_InvalidateTour(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		svc, _, catalogCache := setupCatalogService(t)
		catalogCache.On("Invalidate", ctx, testTourID).Return(nil).Once()

		err := svc.InvalidateTour(ctx, testTourID)

		require.NoError(t, err)
		catalogCache.AssertExpectations(t)
	})
}
