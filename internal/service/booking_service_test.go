package service_test

import (
	"context"
	"errors"
	"testing"

	"go-tour-booking/internal/catalog"
	"go-tour-booking/internal/draft"
	"go-tour-booking/internal/model"
	queueMocks "go-tour-booking/internal/queue/mocks"
	repoMocks "go-tour-booking/internal/repository/mocks"
	"go-tour-booking/internal/service"
	serviceMocks "go-tour-booking/internal/service/mocks"
	"go-tour-booking/internal/session"
	apperrors "go-tour-booking/pkg/app_errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	testTourID      = 7
	testAdultTierID = 1
)

func setupBookingService(t *testing.T) (service.BookingService, *repoMocks.BookingRepositoryMock, *repoMocks.TourRepositoryMock, *serviceMocks.CatalogServiceMock, *queueMocks.BookingQueueMock) {
	bookingRepo := repoMocks.NewBookingRepositoryMock()
	tourRepo := repoMocks.NewTourRepositoryMock()
	catalogService := serviceMocks.NewCatalogServiceMock()
	bookingQueue := queueMocks.NewBookingQueueMock()
	svc := service.NewBookingService(nil, bookingRepo, tourRepo, catalogService, session.NewStore(), bookingQueue)
	return svc, bookingRepo, tourRepo, catalogService, bookingQueue
}

func testCatalogIndex() *catalog.Index {
	return catalog.NewIndex(testTourID, []model.TicketType{
		{
			ID:     10,
			TourID: testTourID,
			Name:   "Standard",
			PriceTiers: []model.PriceTier{
				{ID: testAdultTierID, TicketTypeID: 10, CategoryID: 1, CategoryName: "Adult", UnitPrice: 100},
			},
		},
	})
}

// buildDraft walks a draft through tour selection and one selected line.
func buildDraft(t *testing.T, svc service.BookingService, tourRepo *repoMocks.TourRepositoryMock, catalogService *serviceMocks.CatalogServiceMock) model.OrderDraft {
	t.Helper()
	ctx := context.Background()

	tourRepo.On("FindByID", ctx, testTourID).Return(&model.Tour{ID: testTourID}, nil).Once()
	catalogService.On("GetIndex", ctx, testTourID).Return(testCatalogIndex(), nil).Once()

	d, err := svc.CreateDraft(ctx)
	require.NoError(t, err)
	d, err = svc.SelectTour(ctx, d.DraftID, testTourID)
	require.NoError(t, err)
	d, err = svc.AddLine(ctx, d.DraftID)
	require.NoError(t, err)
	d, err = svc.SetTier(ctx, d.DraftID, d.Lines[0].LineID, testAdultTierID)
	require.NoError(t, err)
	d, err = svc.SetQuantity(ctx, d.DraftID, d.Lines[0].LineID, 2)
	require.NoError(t, err)
	d, err = svc.SetCustomer(ctx, d.DraftID, "Alex Chen", "alex@example.com")
	require.NoError(t, err)
	return d
}

func TestBookingService_DraftFlow(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - full picker flow", func(t *testing.T) {
		svc, _, tourRepo, catalogService, _ := setupBookingService(t)

		d := buildDraft(t, svc, tourRepo, catalogService)

		require.Len(t, d.Lines, 1)
		assert.Equal(t, 200.0, d.Total)
		tourRepo.AssertExpectations(t)
		catalogService.AssertExpectations(t)
	})

	t.Run("Failed - AddLine before tour selection", func(t *testing.T) {
		svc, _, _, _, _ := setupBookingService(t)

		d, err := svc.CreateDraft(ctx)
		require.NoError(t, err)
		_, err = svc.AddLine(ctx, d.DraftID)

		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrNoTourSelected)
	})

	t.Run("Failed - SelectTour with unknown tour", func(t *testing.T) {
		svc, _, tourRepo, _, _ := setupBookingService(t)
		tourRepo.On("FindByID", ctx, 99).Return(nil, apperrors.ErrTourNotFound).Once()

		d, err := svc.CreateDraft(ctx)
		require.NoError(t, err)
		_, err = svc.SelectTour(ctx, d.DraftID, 99)

		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrTourNotFound)
		tourRepo.AssertExpectations(t)
	})

	t.Run("Failed - unknown draft", func(t *testing.T) {
		svc, _, _, _, _ := setupBookingService(t)

		d, err := svc.CreateDraft(ctx)
		require.NoError(t, err)
		require.NoError(t, svc.DiscardDraft(ctx, d.DraftID))
		_, err = svc.GetDraft(ctx, d.DraftID)

		assert.ErrorIs(t, err, apperrors.ErrDraftNotFound)
	})

	t.Run("Success - SelectTour clears previous lines", func(t *testing.T) {
		svc, _, tourRepo, catalogService, _ := setupBookingService(t)
		d := buildDraft(t, svc, tourRepo, catalogService)

		tourRepo.On("FindByID", ctx, 8).Return(&model.Tour{ID: 8}, nil).Once()
		catalogService.On("GetIndex", ctx, 8).Return(catalog.NewIndex(8, nil), nil).Once()

		d, err := svc.SelectTour(ctx, d.DraftID, 8)

		require.NoError(t, err)
		assert.Len(t, d.Lines, 0)
		assert.Equal(t, 0.0, d.Total)
	})
}

func TestBookingService_CatalogFailure(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - failed load is retryable and preserves lines", func(t *testing.T) {
		svc, _, tourRepo, catalogService, _ := setupBookingService(t)
		d := buildDraft(t, svc, tourRepo, catalogService)

		// a transient cache/db outage during a reload attempt
		tourRepo.On("FindByID", ctx, testTourID).Return(&model.Tour{ID: testTourID}, nil).Once()
		catalogService.On("GetIndex", ctx, testTourID).Return(nil, errors.New("connection refused")).Twice()

		d, err := svc.SelectTour(ctx, d.DraftID, testTourID)
		require.NoError(t, err, "a catalog fetch failure is not a tour selection failure")

		_, err = svc.GetDraftCatalog(ctx, d.DraftID)
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrCatalogUnavailable)

		// the retry succeeds and the draft is intact
		catalogService.On("GetIndex", ctx, testTourID).Return(testCatalogIndex(), nil).Once()
		ticketTypes, err := svc.GetDraftCatalog(ctx, d.DraftID)
		require.NoError(t, err)
		assert.Len(t, ticketTypes, 1)

		got, err := svc.GetDraft(ctx, d.DraftID)
		require.NoError(t, err)
		assert.Len(t, got.Lines, 0, "lines were cleared by SelectTour itself, not by the failed fetch")
	})

	t.Run("Failed - catalog without tour selection", func(t *testing.T) {
		svc, _, _, _, _ := setupBookingService(t)

		d, err := svc.CreateDraft(ctx)
		require.NoError(t, err)
		_, err = svc.GetDraftCatalog(ctx, d.DraftID)

		assert.ErrorIs(t, err, apperrors.ErrNoTourSelected)
	})
}

func TestBookingService_SubmitDraft(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		svc, _, tourRepo, catalogService, bookingQueue := setupBookingService(t)
		d := buildDraft(t, svc, tourRepo, catalogService)

		bookingQueue.On("PublishBooking", ctx, mock.Anything).Return(nil).Once()

		booking, err := svc.SubmitDraft(ctx, d.DraftID)

		require.NoError(t, err)
		require.NotNil(t, booking)
		assert.Equal(t, model.BookingStatusPending, booking.Status)
		assert.Equal(t, 200.0, booking.Total)
		require.Len(t, booking.Lines, 1)
		assert.Equal(t, testAdultTierID, booking.Lines[0].TierID)

		// the draft is consumed by submission
		_, err = svc.GetDraft(ctx, d.DraftID)
		assert.ErrorIs(t, err, apperrors.ErrDraftNotFound)
		bookingQueue.AssertExpectations(t)
	})

	t.Run("Failed - validation violations leave draft intact", func(t *testing.T) {
		svc, _, tourRepo, catalogService, bookingQueue := setupBookingService(t)
		tourRepo.On("FindByID", ctx, testTourID).Return(&model.Tour{ID: testTourID}, nil).Once()
		catalogService.On("GetIndex", ctx, testTourID).Return(testCatalogIndex(), nil).Once()

		d, err := svc.CreateDraft(ctx)
		require.NoError(t, err)
		d, err = svc.SelectTour(ctx, d.DraftID, testTourID)
		require.NoError(t, err)
		d, err = svc.AddLine(ctx, d.DraftID) // stays unselected
		require.NoError(t, err)

		_, err = svc.SubmitDraft(ctx, d.DraftID)

		require.Error(t, err)
		var validationErr *draft.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.NotEmpty(t, validationErr.Violations)

		got, err := svc.GetDraft(ctx, d.DraftID)
		require.NoError(t, err)
		assert.Len(t, got.Lines, 1, "a rejected submission must not modify the draft")
		bookingQueue.AssertNotCalled(t, "PublishBooking")
	})

	t.Run("Failed - publish error keeps draft for resubmission", func(t *testing.T) {
		svc, _, tourRepo, catalogService, bookingQueue := setupBookingService(t)
		d := buildDraft(t, svc, tourRepo, catalogService)

		bookingQueue.On("PublishBooking", ctx, mock.Anything).Return(errors.New("stream down")).Once()

		_, err := svc.SubmitDraft(ctx, d.DraftID)

		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrInternalServerError)

		_, err = svc.GetDraft(ctx, d.DraftID)
		assert.NoError(t, err)
		bookingQueue.AssertExpectations(t)
	})
}

func TestBookingService_EditFlow(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - draft seeded from persisted booking", func(t *testing.T) {
		svc, bookingRepo, _, catalogService, _ := setupBookingService(t)
		tourID := testTourID
		bookingRepo.On("FindByID", ctx, 3).Return(&model.Booking{
			ID:              3,
			TourID:          &tourID,
			CustomerName:    "Alex Chen",
			CustomerContact: "alex@example.com",
			Status:          model.BookingStatusConfirmed,
			Total:           200,
			Lines: []model.BookingLine{
				{ID: 31, BookingID: 3, TierID: testAdultTierID, TicketTypeName: "Standard", CategoryName: "Adult", Quantity: 2, UnitPrice: 100, Subtotal: 200},
			},
		}, nil).Once()
		catalogService.On("GetIndex", ctx, testTourID).Return(testCatalogIndex(), nil).Once()

		d, err := svc.CreateDraftFromBooking(ctx, 3)

		require.NoError(t, err)
		require.NotNil(t, d.BookingID)
		assert.Equal(t, 3, *d.BookingID)
		require.Len(t, d.Lines, 1)
		require.NotNil(t, d.Lines[0].TierID)
		assert.Equal(t, testAdultTierID, *d.Lines[0].TierID)
		assert.Equal(t, 200.0, d.Total)
		bookingRepo.AssertExpectations(t)
	})

	t.Run("Failed - booking not found", func(t *testing.T) {
		svc, bookingRepo, _, _, _ := setupBookingService(t)
		bookingRepo.On("FindByID", ctx, 99).Return(nil, apperrors.ErrBookingNotFound).Once()

		_, err := svc.CreateDraftFromBooking(ctx, 99)

		assert.ErrorIs(t, err, apperrors.ErrBookingNotFound)
	})

	t.Run("Success - switching tours before resubmission carries the new tour", func(t *testing.T) {
		svc, bookingRepo, tourRepo, catalogService, bookingQueue := setupBookingService(t)
		oldTourID := testTourID
		newTourID := 8
		bookingRepo.On("FindByID", ctx, 3).Return(&model.Booking{
			ID:              3,
			TourID:          &oldTourID,
			CustomerName:    "Alex Chen",
			CustomerContact: "alex@example.com",
			Status:          model.BookingStatusConfirmed,
			Total:           200,
			Lines: []model.BookingLine{
				{ID: 31, BookingID: 3, TierID: testAdultTierID, TicketTypeName: "Standard", CategoryName: "Adult", Quantity: 2, UnitPrice: 100, Subtotal: 200},
			},
		}, nil).Once()
		catalogService.On("GetIndex", ctx, oldTourID).Return(testCatalogIndex(), nil).Once()

		newIndex := catalog.NewIndex(newTourID, []model.TicketType{
			{
				ID:     20,
				TourID: newTourID,
				Name:   "Premium",
				PriceTiers: []model.PriceTier{
					{ID: 5, TicketTypeID: 20, CategoryID: 1, CategoryName: "Adult", UnitPrice: 300},
				},
			},
		})
		tourRepo.On("FindByID", ctx, newTourID).Return(&model.Tour{ID: newTourID}, nil).Once()
		catalogService.On("GetIndex", ctx, newTourID).Return(newIndex, nil).Once()

		d, err := svc.CreateDraftFromBooking(ctx, 3)
		require.NoError(t, err)
		d, err = svc.SelectTour(ctx, d.DraftID, newTourID)
		require.NoError(t, err)
		d, err = svc.AddLine(ctx, d.DraftID)
		require.NoError(t, err)
		d, err = svc.SetTier(ctx, d.DraftID, d.Lines[0].LineID, 5)
		require.NoError(t, err)

		var published *model.Booking
		bookingQueue.On("PublishBooking", ctx, mock.Anything).
			Run(func(args mock.Arguments) { published = args.Get(1).(*model.Booking) }).
			Return(nil).Once()

		booking, err := svc.SubmitDraft(ctx, d.DraftID)

		require.NoError(t, err)
		assert.Equal(t, 3, booking.ID, "resubmission rewrites the existing booking")
		require.NotNil(t, published.TourID)
		assert.Equal(t, newTourID, *published.TourID, "the rewritten booking must carry the newly selected tour")
		require.Len(t, published.Lines, 1)
		assert.Equal(t, 5, published.Lines[0].TierID)
		assert.Equal(t, 300.0, published.Total)
	})
}
