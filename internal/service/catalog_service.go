package service

import (
	"context"
	"errors"

	"go-tour-booking/internal/cache"
	"go-tour-booking/internal/catalog"
	"go-tour-booking/internal/model"
	"go-tour-booking/internal/repository"
	apperrors "go-tour-booking/pkg/app_errors"
	"go-tour-booking/pkg/logger"

	"go.uber.org/zap"
)

// CatalogService loads the purchasable catalog of a tour through a Redis
// snapshot cache. Safe to call repeatedly for the same tour.
type CatalogService interface {
	GetTicketTypes(ctx context.Context, tourID int) ([]model.TicketType, error)
	GetIndex(ctx context.Context, tourID int) (*catalog.Index, error)
	InvalidateTour(ctx context.Context, tourID int) error
}

type CatalogServiceImpl struct {
	repo         repository.CatalogRepository
	catalogCache cache.CatalogCache
}

func NewCatalogService(repo repository.CatalogRepository, catalogCache cache.CatalogCache) CatalogService {
	return &CatalogServiceImpl{repo: repo, catalogCache: catalogCache}
}

func (s *CatalogServiceImpl) GetTicketTypes(ctx context.Context, tourID int) ([]model.TicketType, error) {
	ticketTypes, err := s.catalogCache.GetTicketTypes(ctx, tourID)
	if err == nil {
		return ticketTypes, nil
	}
	if !errors.Is(err, apperrors.ErrCacheMiss) {
		// cache trouble must not take the catalog down; fall through to Postgres
		logger.WithComponent("catalog").Warn("catalog cache read failed", zap.Int("tour_id", tourID), zap.Error(err))
	}

	ticketTypes, err = s.repo.ListTicketTypes(ctx, tourID)
	if err != nil {
		return nil, err
	}

	if err := s.catalogCache.SetTicketTypes(ctx, tourID, ticketTypes); err != nil {
		logger.WithComponent("catalog").Warn("catalog cache write failed", zap.Int("tour_id", tourID), zap.Error(err))
	}

	return ticketTypes, nil
}

func (s *CatalogServiceImpl) GetIndex(ctx context.Context, tourID int) (*catalog.Index, error) {
	ticketTypes, err := s.GetTicketTypes(ctx, tourID)
	if err != nil {
		return nil, err
	}
	return catalog.NewIndex(tourID, ticketTypes), nil
}

func (s *CatalogServiceImpl) InvalidateTour(ctx context.Context, tourID int) error {
	return s.catalogCache.Invalidate(ctx, tourID)
}
