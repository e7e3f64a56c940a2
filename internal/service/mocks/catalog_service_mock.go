package mocks

import (
	"context"

	"go-tour-booking/internal/catalog"
	"go-tour-booking/internal/model"

	"github.com/stretchr/testify/mock"
)

type CatalogServiceMock struct {
	mock.Mock
}

func NewCatalogServiceMock() *CatalogServiceMock {
	return &CatalogServiceMock{}
}

func (m *CatalogServiceMock) GetTicketTypes(ctx context.Context, tourID int) ([]model.TicketType, error) {
	args := m.Called(ctx, tourID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.TicketType), args.Error(1)
}

func (m *CatalogServiceMock) GetIndex(ctx context.Context, tourID int) (*catalog.Index, error) {
	args := m.Called(ctx, tourID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Index), args.Error(1)
}

func (m *CatalogServiceMock) InvalidateTour(ctx context.Context, tourID int) error {
	args := m.Called(ctx, tourID)
	return args.Error(0)
}
