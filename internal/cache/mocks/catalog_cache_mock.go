package mocks

import (
	"context"

	"go-tour-booking/internal/model"

	"github.com/stretchr/testify/mock"
)

type CatalogCacheMock struct {
	mock.Mock
}

func NewCatalogCacheMock() *CatalogCacheMock {
	return &CatalogCacheMock{}
}

func (m *CatalogCacheMock) GetTicketTypes(ctx context.Context, tourID int) ([]model.TicketType, error) {
	args := m.Called(ctx, tourID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.TicketType), args.Error(1)
}

func (m *CatalogCacheMock) SetTicketTypes(ctx context.Context, tourID int, ticketTypes []model.TicketType) error {
	args := m.Called(ctx, tourID, ticketTypes)
	return args.Error(0)
}

func (m *CatalogCacheMock) Invalidate(ctx context.Context, tourID int) error {
	args := m.Called(ctx, tourID)
	return args.Error(0)
}
