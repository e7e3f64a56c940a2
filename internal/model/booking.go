package model

import (
	"time"

	"github.com/google/uuid"
)

// BookingStatus is the persisted booking lifecycle state.
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// IsValid reports whether the status is a known value.
func (s BookingStatus) IsValid() bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo checks whether the status may move to target.
func (s BookingStatus) CanTransitionTo(target BookingStatus) bool {
	transitions := map[BookingStatus][]BookingStatus{
		BookingStatusPending:   {BookingStatusConfirmed, BookingStatusCancelled},
		BookingStatusConfirmed: {BookingStatusCancelled},
		BookingStatusCancelled: {},
	}

	allowed, ok := transitions[s]
	if !ok {
		return false
	}

	for _, status := range allowed {
		if status == target {
			return true
		}
	}
	return false
}

// Booking is a persisted order.
type Booking struct {
	ID              int           `json:"id" db:"id"`
	BookingID       uuid.UUID     `json:"booking_id" db:"booking_id"`
	RequestID       string        `json:"request_id" db:"request_id"`
	TourID          *int          `json:"tour_id,omitempty" db:"tour_id"`
	CustomerName    string        `json:"customer_name" db:"customer_name"`
	CustomerContact string        `json:"customer_contact" db:"customer_contact"`
	Status          BookingStatus `json:"status" db:"status"`
	Total           float64       `json:"total" db:"total"`
	Lines           []BookingLine `json:"lines" db:"-"`
	CreatedAt       time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at" db:"updated_at"`
	DeletedAt       *time.Time    `json:"deleted_at,omitempty" db:"deleted_at"`
}

// BookingLine is one persisted line of a booking, carrying the price and
// category snapshot taken when the line was selected.
type BookingLine struct {
	ID                  int     `json:"id" db:"id"`
	BookingID           int     `json:"booking_id" db:"booking_id"`
	TierID              int     `json:"tier_id" db:"tier_id"`
	TicketTypeName      string  `json:"ticket_type_name" db:"ticket_type_name"`
	CategoryName        string  `json:"category_name" db:"category_name"`
	CategoryDescription *string `json:"category_description,omitempty" db:"category_description"`
	Quantity            int     `json:"quantity" db:"quantity"`
	UnitPrice           float64 `json:"unit_price" db:"unit_price"`
	Subtotal            float64 `json:"subtotal" db:"subtotal"`
}

// IsDeleted reports whether the booking has been soft-deleted.
func (b *Booking) IsDeleted() bool {
	return b.DeletedAt != nil
}
