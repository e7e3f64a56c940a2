package repository

import (
	"context"
	"fmt"
	"math"
	"time"

	"go-tour-booking/internal/model"
	apperrors "go-tour-booking/pkg/app_errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// totalTolerance absorbs float rounding when re-verifying a client total
// against the sum of line subtotals.
const totalTolerance = 1e-6

type BookingRepository interface {
	List(ctx context.Context) ([]*model.Booking, error)
	FindByID(ctx context.Context, id int) (*model.Booking, error)
	Delete(ctx context.Context, id int) error

	// Transaction methods
	Create(ctx context.Context, tx pgx.Tx, booking *model.Booking) (*model.Booking, error)
	ReplaceLines(ctx context.Context, tx pgx.Tx, booking *model.Booking) (*model.Booking, error)
	UpdateStatusWithLock(ctx context.Context, tx pgx.Tx, id int, status model.BookingStatus) (*model.Booking, error)
}

type BookingRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewBookingRepository(pool *pgxpool.Pool) BookingRepository {
	return &BookingRepositoryImpl{
		pool: pool,
	}
}

// verifyTotal re-checks total == sum of line subtotals on the server side.
// The client-computed total is never trusted as authoritative.
func verifyTotal(booking *model.Booking) error {
	var sum float64
	for _, line := range booking.Lines {
		sum += line.Subtotal
	}
	if math.Abs(sum-booking.Total) > totalTolerance {
		return apperrors.ErrTotalMismatch
	}
	return nil
}

func (r *BookingRepositoryImpl) Create(ctx context.Context, tx pgx.Tx, booking *model.Booking) (*model.Booking, error) {
	if err := verifyTotal(booking); err != nil {
		return nil, err
	}

	query := `
		INSERT INTO bookings (
			booking_id, request_id, tour_id, customer_name, customer_contact, status, total
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, booking_id, request_id, tour_id, customer_name, customer_contact,
			status, total, created_at, updated_at
	`

	err := tx.QueryRow(ctx, query,
		booking.BookingID, booking.RequestID, booking.TourID,
		booking.CustomerName, booking.CustomerContact, booking.Status, booking.Total,
	).Scan(
		&booking.ID,
		&booking.BookingID,
		&booking.RequestID,
		&booking.TourID,
		&booking.CustomerName,
		&booking.CustomerContact,
		&booking.Status,
		&booking.Total,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	if err := r.insertLines(ctx, tx, booking.ID, booking.Lines); err != nil {
		return nil, err
	}
	for i := range booking.Lines {
		booking.Lines[i].BookingID = booking.ID
	}

	return booking, nil
}

// ReplaceLines rewrites an existing booking from a re-submitted draft: the
// booking row is updated and its lines are swapped wholesale for the new set.
func (r *BookingRepositoryImpl) ReplaceLines(ctx context.Context, tx pgx.Tx, booking *model.Booking) (*model.Booking, error) {
	if err := verifyTotal(booking); err != nil {
		return nil, err
	}

	query := `
		UPDATE bookings
		SET tour_id = $1, customer_name = $2, customer_contact = $3, total = $4, updated_at = $5
		WHERE id = $6 AND deleted_at IS NULL
		RETURNING id, booking_id, request_id, tour_id, customer_name, customer_contact,
			status, total, created_at, updated_at
	`

	err := tx.QueryRow(ctx, query,
		booking.TourID, booking.CustomerName, booking.CustomerContact, booking.Total, time.Now().UTC(), booking.ID,
	).Scan(
		&booking.ID,
		&booking.BookingID,
		&booking.RequestID,
		&booking.TourID,
		&booking.CustomerName,
		&booking.CustomerContact,
		&booking.Status,
		&booking.Total,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to update booking: %w", err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM booking_lines WHERE booking_id = $1`, booking.ID); err != nil {
		return nil, fmt.Errorf("failed to clear booking lines: %w", err)
	}

	if err := r.insertLines(ctx, tx, booking.ID, booking.Lines); err != nil {
		return nil, err
	}
	for i := range booking.Lines {
		booking.Lines[i].BookingID = booking.ID
	}

	return booking, nil
}

func (r *BookingRepositoryImpl) insertLines(ctx context.Context, tx pgx.Tx, bookingID int, lines []model.BookingLine) error {
	query := `
		INSERT INTO booking_lines (
			booking_id, tier_id, ticket_type_name, category_name, category_description,
			quantity, unit_price, subtotal
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	for i := range lines {
		line := &lines[i]
		err := tx.QueryRow(ctx, query,
			bookingID, line.TierID, line.TicketTypeName, line.CategoryName,
			line.CategoryDescription, line.Quantity, line.UnitPrice, line.Subtotal,
		).Scan(&line.ID)
		if err != nil {
			return fmt.Errorf("failed to create booking line: %w", err)
		}
	}

	return nil
}

func (r *BookingRepositoryImpl) List(ctx context.Context) ([]*model.Booking, error) {
	query := `
		SELECT id, booking_id, request_id, tour_id, customer_name, customer_contact,
				status, total, created_at, updated_at, deleted_at
		FROM bookings
		WHERE deleted_at IS NULL
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := make([]*model.Booking, 0)

	for rows.Next() {
		var booking model.Booking
		err := rows.Scan(
			&booking.ID,
			&booking.BookingID,
			&booking.RequestID,
			&booking.TourID,
			&booking.CustomerName,
			&booking.CustomerContact,
			&booking.Status,
			&booking.Total,
			&booking.CreatedAt,
			&booking.UpdatedAt,
			&booking.DeletedAt,
		)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, &booking)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return bookings, nil
}

func (r *BookingRepositoryImpl) FindByID(ctx context.Context, id int) (*model.Booking, error) {
	query := `
		SELECT id, booking_id, request_id, tour_id, customer_name, customer_contact,
				status, total, created_at, updated_at, deleted_at
		FROM bookings
		WHERE id = $1 AND deleted_at IS NULL
	`

	var booking model.Booking
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&booking.ID,
		&booking.BookingID,
		&booking.RequestID,
		&booking.TourID,
		&booking.CustomerName,
		&booking.CustomerContact,
		&booking.Status,
		&booking.Total,
		&booking.CreatedAt,
		&booking.UpdatedAt,
		&booking.DeletedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrBookingNotFound
		}
		return nil, err
	}

	lines, err := r.listLines(ctx, booking.ID)
	if err != nil {
		return nil, err
	}
	booking.Lines = lines

	return &booking, nil
}

func (r *BookingRepositoryImpl) listLines(ctx context.Context, bookingID int) ([]model.BookingLine, error) {
	query := `
		SELECT id, booking_id, tier_id, ticket_type_name, category_name, category_description,
				quantity, unit_price, subtotal
		FROM booking_lines
		WHERE booking_id = $1
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, query, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lines := make([]model.BookingLine, 0)
	for rows.Next() {
		var line model.BookingLine
		err := rows.Scan(
			&line.ID,
			&line.BookingID,
			&line.TierID,
			&line.TicketTypeName,
			&line.CategoryName,
			&line.CategoryDescription,
			&line.Quantity,
			&line.UnitPrice,
			&line.Subtotal,
		)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return lines, nil
}

func (r *BookingRepositoryImpl) UpdateStatusWithLock(ctx context.Context, tx pgx.Tx, id int, status model.BookingStatus) (*model.Booking, error) {
	if !status.IsValid() {
		return nil, apperrors.ErrInvalidBookingStatus
	}

	lockQuery := `
		SELECT id, status
		FROM bookings
		WHERE id = $1 AND deleted_at IS NULL
		FOR UPDATE
	`

	var current model.Booking
	err := tx.QueryRow(ctx, lockQuery, id).Scan(&current.ID, &current.Status)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrBookingNotFound
		}
		return nil, err
	}

	if !current.Status.CanTransitionTo(status) {
		return nil, apperrors.ErrInvalidBookingStatus
	}

	query := `
		UPDATE bookings
		SET status = $1, updated_at = $2
		WHERE id = $3
		RETURNING id, booking_id, request_id, tour_id, customer_name, customer_contact,
			status, total, created_at, updated_at
	`

	var booking model.Booking
	err = tx.QueryRow(ctx, query, status, time.Now().UTC(), id).Scan(
		&booking.ID,
		&booking.BookingID,
		&booking.RequestID,
		&booking.TourID,
		&booking.CustomerName,
		&booking.CustomerContact,
		&booking.Status,
		&booking.Total,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &booking, nil
}

func (r *BookingRepositoryImpl) Delete(ctx context.Context, id int) error {
	query := `
		UPDATE bookings
		SET deleted_at = $1, updated_at = $2
		WHERE id = $3 AND deleted_at IS NULL
	`

	result, err := r.pool.Exec(ctx, query, time.Now().UTC(), time.Now().UTC(), id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrBookingNotFound
	}

	return nil
}
