package service

import (
	"context"

	"go-tour-booking/internal/catalog"
	"go-tour-booking/internal/draft"
	"go-tour-booking/internal/model"
	"go-tour-booking/internal/queue"
	"go-tour-booking/internal/repository"
	"go-tour-booking/internal/session"
	apperrors "go-tour-booking/pkg/app_errors"
	"go-tour-booking/pkg/logger"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type BookingService interface {
	// Draft lifecycle
	CreateDraft(ctx context.Context) (model.OrderDraft, error)
	CreateDraftFromBooking(ctx context.Context, bookingID int) (model.OrderDraft, error)
	GetDraft(ctx context.Context, draftID uuid.UUID) (model.OrderDraft, error)
	DiscardDraft(ctx context.Context, draftID uuid.UUID) error

	// Draft mutations
	SelectTour(ctx context.Context, draftID uuid.UUID, tourID int) (model.OrderDraft, error)
	AddLine(ctx context.Context, draftID uuid.UUID) (model.OrderDraft, error)
	SetTier(ctx context.Context, draftID uuid.UUID, lineID uuid.UUID, tierID int) (model.OrderDraft, error)
	SetQuantity(ctx context.Context, draftID uuid.UUID, lineID uuid.UUID, quantity int) (model.OrderDraft, error)
	RemoveLine(ctx context.Context, draftID uuid.UUID, lineID uuid.UUID) (model.OrderDraft, error)
	SetCustomer(ctx context.Context, draftID uuid.UUID, name, contact string) (model.OrderDraft, error)

	// Catalog access for a draft, with a retry path after a failed load
	GetDraftCatalog(ctx context.Context, draftID uuid.UUID) ([]model.TicketType, error)

	// Submission (queue) and persistence (worker)
	SubmitDraft(ctx context.Context, draftID uuid.UUID) (*model.Booking, error)
	DispatchBooking(ctx context.Context, booking *model.Booking) error

	// Persisted bookings
	BookingList(ctx context.Context) ([]*model.Booking, error)
	GetBookingByID(ctx context.Context, id int) (*model.Booking, error)
	ConfirmBooking(ctx context.Context, id int) error
	CancelBooking(ctx context.Context, id int) error
	DeleteBooking(ctx context.Context, id int) error
}

type BookingServiceImpl struct {
	pool           *pgxpool.Pool
	repository     repository.BookingRepository
	tourRepository repository.TourRepository
	catalogService CatalogService
	sessions       *session.Store
	bookingQueue   queue.BookingQueue
}

func NewBookingService(
	pool *pgxpool.Pool,
	bookingRepository repository.BookingRepository,
	tourRepository repository.TourRepository,
	catalogService CatalogService,
	sessions *session.Store,
	bookingQueue queue.BookingQueue,
) BookingService {
	return &BookingServiceImpl{
		pool:           pool,
		repository:     bookingRepository,
		tourRepository: tourRepository,
		catalogService: catalogService,
		sessions:       sessions,
		bookingQueue:   bookingQueue,
	}
}

func (s *BookingServiceImpl) CreateDraft(ctx context.Context) (model.OrderDraft, error) {
	d := model.OrderDraft{
		DraftID: uuid.New(),
		Lines:   []model.LineItem{},
	}
	s.sessions.Create(d)
	return d, nil
}

// CreateDraftFromBooking opens the editor on a persisted booking: the draft
// is pre-seeded with the booking's customer fields and lines, each line
// carrying its stored price snapshot.
func (s *BookingServiceImpl) CreateDraftFromBooking(ctx context.Context, bookingID int) (model.OrderDraft, error) {
	booking, err := s.repository.FindByID(ctx, bookingID)
	if err != nil {
		return model.OrderDraft{}, err
	}

	lines := make([]model.LineItem, 0, len(booking.Lines))
	var total float64
	for _, bl := range booking.Lines {
		tierID := bl.TierID
		subtotal := bl.UnitPrice * float64(bl.Quantity)
		lines = append(lines, model.LineItem{
			LineID:              uuid.New(),
			TierID:              &tierID,
			TicketTypeName:      bl.TicketTypeName,
			CategoryName:        bl.CategoryName,
			CategoryDescription: bl.CategoryDescription,
			Quantity:            bl.Quantity,
			UnitPrice:           bl.UnitPrice,
			Subtotal:            subtotal,
		})
		total += subtotal
	}

	d := model.OrderDraft{
		DraftID:         uuid.New(),
		BookingID:       &booking.ID,
		TourID:          booking.TourID,
		CustomerName:    booking.CustomerName,
		CustomerContact: booking.CustomerContact,
		Lines:           lines,
		Total:           total,
	}
	sess := s.sessions.Create(d)

	if d.TourID != nil {
		s.loadCatalog(ctx, sess, *d.TourID)
	}

	return d, nil
}

func (s *BookingServiceImpl) GetDraft(ctx context.Context, draftID uuid.UUID) (model.OrderDraft, error) {
	sess, err := s.sessions.Get(draftID)
	if err != nil {
		return model.OrderDraft{}, err
	}
	d, _ := sess.Snapshot()
	return d, nil
}

func (s *BookingServiceImpl) DiscardDraft(ctx context.Context, draftID uuid.UUID) error {
	if _, err := s.sessions.Get(draftID); err != nil {
		return err
	}
	s.sessions.Delete(draftID)
	return nil
}

// SelectTour clears the draft's lines and loads the new tour's catalog. The
// clear happens regardless of the catalog load outcome: losing unsaved lines
// on a tour switch is the contract, losing them on a fetch failure is not.
func (s *BookingServiceImpl) SelectTour(ctx context.Context, draftID uuid.UUID, tourID int) (model.OrderDraft, error) {
	sess, err := s.sessions.Get(draftID)
	if err != nil {
		return model.OrderDraft{}, err
	}

	if _, err := s.tourRepository.FindByID(ctx, tourID); err != nil {
		d, _ := sess.Snapshot()
		return d, err
	}

	d, err := sess.Update(func(d model.OrderDraft, _ *catalog.Index) (model.OrderDraft, error) {
		return draft.SelectTour(d, tourID), nil
	})
	if err != nil {
		return d, err
	}

	s.loadCatalog(ctx, sess, tourID)
	return d, nil
}

// loadCatalog fetches the catalog for tourID into the session. A failed fetch
// leaves the session with an empty, stale index; GetDraftCatalog retries. A
// fetch superseded by a newer SelectTour is discarded.
func (s *BookingServiceImpl) loadCatalog(ctx context.Context, sess *session.Session, tourID int) {
	gen := sess.BeginCatalogLoad()
	ix, err := s.catalogService.GetIndex(ctx, tourID)
	if err != nil {
		logger.WithComponent("booking").Warn("catalog load failed", zap.Int("tour_id", tourID), zap.Error(err))
		return
	}
	if !sess.CompleteCatalogLoad(gen, ix) {
		logger.WithComponent("booking").Info("catalog load superseded, discarded", zap.Int("tour_id", tourID))
	}
}

func (s *BookingServiceImpl) GetDraftCatalog(ctx context.Context, draftID uuid.UUID) ([]model.TicketType, error) {
	sess, err := s.sessions.Get(draftID)
	if err != nil {
		return nil, err
	}

	d, ix := sess.Snapshot()
	if d.TourID == nil {
		return nil, apperrors.ErrNoTourSelected
	}
	if ix != nil {
		return ix.TicketTypes(), nil
	}

	// retry after a failed load; existing lines are untouched
	gen := sess.BeginCatalogLoad()
	ix, err = s.catalogService.GetIndex(ctx, *d.TourID)
	if err != nil {
		logger.WithComponent("booking").Warn("catalog reload failed", zap.Int("tour_id", *d.TourID), zap.Error(err))
		return nil, apperrors.ErrCatalogUnavailable
	}
	sess.CompleteCatalogLoad(gen, ix)
	return ix.TicketTypes(), nil
}

func (s *BookingServiceImpl) AddLine(ctx context.Context, draftID uuid.UUID) (model.OrderDraft, error) {
	return s.updateDraft(draftID, func(d model.OrderDraft, _ *catalog.Index) (model.OrderDraft, error) {
		return draft.AddLine(d)
	})
}

func (s *BookingServiceImpl) SetTier(ctx context.Context, draftID uuid.UUID, lineID uuid.UUID, tierID int) (model.OrderDraft, error) {
	return s.updateDraft(draftID, func(d model.OrderDraft, ix *catalog.Index) (model.OrderDraft, error) {
		return draft.SetTier(d, lineID, tierID, ix)
	})
}

func (s *BookingServiceImpl) SetQuantity(ctx context.Context, draftID uuid.UUID, lineID uuid.UUID, quantity int) (model.OrderDraft, error) {
	return s.updateDraft(draftID, func(d model.OrderDraft, _ *catalog.Index) (model.OrderDraft, error) {
		return draft.SetQuantity(d, lineID, quantity)
	})
}

func (s *BookingServiceImpl) RemoveLine(ctx context.Context, draftID uuid.UUID, lineID uuid.UUID) (model.OrderDraft, error) {
	return s.updateDraft(draftID, func(d model.OrderDraft, _ *catalog.Index) (model.OrderDraft, error) {
		return draft.RemoveLine(d, lineID)
	})
}

func (s *BookingServiceImpl) SetCustomer(ctx context.Context, draftID uuid.UUID, name, contact string) (model.OrderDraft, error) {
	return s.updateDraft(draftID, func(d model.OrderDraft, _ *catalog.Index) (model.OrderDraft, error) {
		return draft.SetCustomer(d, name, contact), nil
	})
}

func (s *BookingServiceImpl) updateDraft(draftID uuid.UUID, fn func(model.OrderDraft, *catalog.Index) (model.OrderDraft, error)) (model.OrderDraft, error) {
	sess, err := s.sessions.Get(draftID)
	if err != nil {
		return model.OrderDraft{}, err
	}
	return sess.Update(fn)
}

// SubmitDraft runs the submission gate and, on success, publishes the
// resulting booking for asynchronous persistence. On violations the draft is
// left untouched so the user can correct and resubmit.
func (s *BookingServiceImpl) SubmitDraft(ctx context.Context, draftID uuid.UUID) (*model.Booking, error) {
	sess, err := s.sessions.Get(draftID)
	if err != nil {
		return nil, err
	}
	d, _ := sess.Snapshot()

	payload, violations := draft.Validate(d, draft.ValidateOptions{
		RequireTour: d.BookingID == nil,
	})
	if violations != nil {
		return nil, &draft.ValidationError{Violations: violations}
	}

	booking := bookingFromPayload(payload)

	if err := s.bookingQueue.PublishBooking(ctx, booking); err != nil {
		logger.WithComponent("booking").Error("failed to publish booking", zap.Error(err))
		return nil, apperrors.ErrInternalServerError
	}

	// the draft has served its purpose; a submitted order is owned by the
	// persistence side from here on
	s.sessions.Delete(draftID)

	return booking, nil
}

func bookingFromPayload(payload *model.SubmitPayload) *model.Booking {
	lines := make([]model.BookingLine, 0, len(payload.Lines))
	for _, l := range payload.Lines {
		lines = append(lines, model.BookingLine{
			TierID:              l.TierID,
			TicketTypeName:      l.TicketTypeName,
			CategoryName:        l.CategoryName,
			CategoryDescription: l.CategoryDescription,
			Quantity:            l.Quantity,
			UnitPrice:           l.UnitPrice,
			Subtotal:            l.Subtotal,
		})
	}

	booking := &model.Booking{
		BookingID:       uuid.New(),
		RequestID:       uuid.New().String(),
		TourID:          payload.TourID,
		CustomerName:    payload.CustomerName,
		CustomerContact: payload.CustomerContact,
		Status:          model.BookingStatusPending,
		Total:           payload.Total,
		Lines:           lines,
	}
	if payload.BookingID != nil {
		booking.ID = *payload.BookingID
	}
	return booking
}

// DispatchBooking writes a queued booking to Postgres. A booking carrying an
// ID rewrites the existing row (edit flow), otherwise a new one is created.
func (s *BookingServiceImpl) DispatchBooking(ctx context.Context, booking *model.Booking) error {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if booking.ID != 0 {
		_, err = s.repository.ReplaceLines(ctx, tx, booking)
	} else {
		_, err = s.repository.Create(ctx, tx, booking)
	}
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (s *BookingServiceImpl) BookingList(ctx context.Context) ([]*model.Booking, error) {
	return s.repository.List(ctx)
}

func (s *BookingServiceImpl) GetBookingByID(ctx context.Context, id int) (*model.Booking, error) {
	return s.repository.FindByID(ctx, id)
}

func (s *BookingServiceImpl) ConfirmBooking(ctx context.Context, id int) error {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = s.repository.UpdateStatusWithLock(ctx, tx, id, model.BookingStatusConfirmed)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (s *BookingServiceImpl) CancelBooking(ctx context.Context, id int) error {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = s.repository.UpdateStatusWithLock(ctx, tx, id, model.BookingStatusCancelled)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (s *BookingServiceImpl) DeleteBooking(ctx context.Context, id int) error {
	return s.repository.Delete(ctx, id)
}
