package mocks

import (
	"context"

	"go-tour-booking/internal/model"

	"github.com/stretchr/testify/mock"
)

type CatalogRepositoryMock struct {
	mock.Mock
}

func NewCatalogRepositoryMock() *CatalogRepositoryMock {
	return &CatalogRepositoryMock{}
}

func (m *CatalogRepositoryMock) ListTicketTypes(ctx context.Context, tourID int) ([]model.TicketType, error) {
	args := m.Called(ctx, tourID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.TicketType), args.Error(1)
}
