package service

import (
	"context"

	"go-tour-booking/internal/model"
	"go-tour-booking/internal/repository"

	"github.com/google/uuid"
)

type TourService interface {
	List(ctx context.Context) ([]*model.Tour, error)
	GetByTourID(ctx context.Context, tourID uuid.UUID) (*model.Tour, error)
	Create(ctx context.Context, tour *model.Tour) (*model.Tour, error)
	UpdateByTourID(ctx context.Context, tourID uuid.UUID, params model.UpdateTourParams) (*model.Tour, error)
	DeleteByTourID(ctx context.Context, tourID uuid.UUID) error
}

type TourServiceImpl struct {
	repo    repository.TourRepository
	catalog CatalogService
}

func NewTourService(repo repository.TourRepository, catalog CatalogService) TourService {
	return &TourServiceImpl{repo: repo, catalog: catalog}
}

func (s *TourServiceImpl) List(ctx context.Context) ([]*model.Tour, error) {
	return s.repo.List(ctx)
}

func (s *TourServiceImpl) GetByTourID(ctx context.Context, tourID uuid.UUID) (*model.Tour, error) {
	return s.repo.FindByTourID(ctx, tourID)
}

func (s *TourServiceImpl) Create(ctx context.Context, tour *model.Tour) (*model.Tour, error) {
	if tour.TourID == uuid.Nil {
		tour.TourID = uuid.New()
	}
	return s.repo.Create(ctx, tour)
}

func (s *TourServiceImpl) UpdateByTourID(ctx context.Context, tourID uuid.UUID, params model.UpdateTourParams) (*model.Tour, error) {
	tour, err := s.repo.FindByTourID(ctx, tourID)
	if err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, tour.ID, params)
}

func (s *TourServiceImpl) DeleteByTourID(ctx context.Context, tourID uuid.UUID) error {
	tour, err := s.repo.FindByTourID(ctx, tourID)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, tour.ID); err != nil {
		return err
	}
	return s.catalog.InvalidateTour(ctx, tour.ID)
}
