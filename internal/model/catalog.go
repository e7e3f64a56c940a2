package model

import "time"

// TicketType is a named admission category of a tour (e.g. "Standard", "VIP").
// Its price tiers are the actual purchasable items.
type TicketType struct {
	ID         int         `json:"id" db:"id"`
	TourID     int         `json:"tour_id" db:"tour_id"`
	Name       string      `json:"name" db:"name"`
	Notes      *string     `json:"notes,omitempty" db:"notes"`
	PriceTiers []PriceTier `json:"price_tiers" db:"-"`
	CreatedAt  time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at" db:"updated_at"`
}

// PriceTier is one (ticket type x traveler category) combination with a fixed
// unit price. TicketTypeName is denormalized so a line item can snapshot the
// full display state from the tier alone.
type PriceTier struct {
	ID                  int     `json:"id" db:"id"`
	TicketTypeID        int     `json:"ticket_type_id" db:"ticket_type_id"`
	TicketTypeName      string  `json:"ticket_type_name" db:"-"`
	CategoryID          int     `json:"category_id" db:"category_id"`
	CategoryName        string  `json:"category_name" db:"category_name"`
	CategoryDescription *string `json:"category_description,omitempty" db:"category_description"`
	UnitPrice           float64 `json:"unit_price" db:"unit_price"`
}
