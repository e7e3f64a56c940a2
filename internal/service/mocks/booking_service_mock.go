package mocks

import (
	"context"

	"go-tour-booking/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type BookingServiceMock struct {
	mock.Mock
}

func NewBookingServiceMock() *BookingServiceMock {
	return &BookingServiceMock{}
}

func (m *BookingServiceMock) CreateDraft(ctx context.Context) (model.OrderDraft, error) {
	args := m.Called(ctx)
	return args.Get(0).(model.OrderDraft), args.Error(1)
}

func (m *BookingServiceMock) CreateDraftFromBooking(ctx context.Context, bookingID int) (model.OrderDraft, error) {
	args := m.Called(ctx, bookingID)
	return args.Get(0).(model.OrderDraft), args.Error(1)
}

func (m *BookingServiceMock) GetDraft(ctx context.Context, draftID uuid.UUID) (model.OrderDraft, error) {
	args := m.Called(ctx, draftID)
	return args.Get(0).(model.OrderDraft), args.Error(1)
}

func (m *BookingServiceMock) DiscardDraft(ctx context.Context, draftID uuid.UUID) error {
	args := m.Called(ctx, draftID)
	return args.Error(0)
}

func (m *BookingServiceMock) SelectTour(ctx context.Context, draftID uuid.UUID, tourID int) (model.OrderDraft, error) {
	args := m.Called(ctx, draftID, tourID)
	return args.Get(0).(model.OrderDraft), args.Error(1)
}

func (m *BookingServiceMock) AddLine(ctx context.Context, draftID uuid.UUID) (model.OrderDraft, error) {
	args := m.Called(ctx, draftID)
	return args.Get(0).(model.OrderDraft), args.Error(1)
}

func (m *BookingServiceMock) SetTier(ctx context.Context, draftID uuid.UUID, lineID uuid.UUID, tierID int) (model.OrderDraft, error) {
	args := m.Called(ctx, draftID, lineID, tierID)
	return args.Get(0).(model.OrderDraft), args.Error(1)
}

func (m *BookingServiceMock) SetQuantity(ctx context.Context, draftID uuid.UUID, lineID uuid.UUID, quantity int) (model.OrderDraft, error) {
	args := m.Called(ctx, draftID, lineID, quantity)
	return args.Get(0).(model.OrderDraft), args.Error(1)
}

func (m *BookingServiceMock) RemoveLine(ctx context.Context, draftID uuid.UUID, lineID uuid.UUID) (model.OrderDraft, error) {
	args := m.Called(ctx, draftID, lineID)
	return args.Get(0).(model.OrderDraft), args.Error(1)
}

func (m *BookingServiceMock) SetCustomer(ctx context.Context, draftID uuid.UUID, name, contact string) (model.OrderDraft, error) {
	args := m.Called(ctx, draftID, name, contact)
	return args.Get(0).(model.OrderDraft), args.Error(1)
}

func (m *BookingServiceMock) GetDraftCatalog(ctx context.Context, draftID uuid.UUID) ([]model.TicketType, error) {
	args := m.Called(ctx, draftID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.TicketType), args.Error(1)
}

func (m *BookingServiceMock) SubmitDraft(ctx context.Context, draftID uuid.UUID) (*model.Booking, error) {
	args := m.Called(ctx, draftID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Booking), args.Error(1)
}

func (m *BookingServiceMock) DispatchBooking(ctx context.Context, booking *model.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *BookingServiceMock) BookingList(ctx context.Context) ([]*model.Booking, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Booking), args.Error(1)
}

func (m *BookingServiceMock) GetBookingByID(ctx context.Context, id int) (*model.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Booking), args.Error(1)
}

func (m *BookingServiceMock) ConfirmBooking(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *BookingServiceMock) CancelBooking(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *BookingServiceMock) DeleteBooking(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
