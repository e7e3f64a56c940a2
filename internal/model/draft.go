package model

import "github.com/google/uuid"

// LineItem is one row of an order draft. TierID is nil only in the transient
// unselected state right after the line is added; an unselected line
// contributes 0 to the total and is excluded at submission.
//
// Price and category fields are value snapshots copied from the catalog at
// selection time, never live references: a later catalog change must not
// silently alter an already-placed line.
type LineItem struct {
	LineID              uuid.UUID `json:"line_id"`
	TierID              *int      `json:"tier_id,omitempty"`
	TicketTypeName      string    `json:"ticket_type_name"`
	CategoryName        string    `json:"category_name"`
	CategoryDescription *string   `json:"category_description,omitempty"`
	Quantity            int       `json:"quantity"`
	UnitPrice           float64   `json:"unit_price"`
	Subtotal            float64   `json:"subtotal"`
}

// Selected reports whether the line references a resolved price tier.
func (l *LineItem) Selected() bool {
	return l.TierID != nil
}

// OrderDraft is the in-progress order: selected tour, ordered line items and
// the derived total. BookingID is set when the draft edits an existing
// booking. Mutated only through the draft package operations, which keep
// total == sum of line subtotals after every change.
type OrderDraft struct {
	DraftID         uuid.UUID  `json:"draft_id"`
	BookingID       *int       `json:"booking_id,omitempty"`
	TourID          *int       `json:"tour_id,omitempty"`
	CustomerName    string     `json:"customer_name"`
	CustomerContact string     `json:"customer_contact"`
	Lines           []LineItem `json:"lines"`
	Total           float64    `json:"total"`
}

// SubmitLine is one validated line of a submission payload.
type SubmitLine struct {
	TierID              int     `json:"tier_id"`
	TicketTypeName      string  `json:"ticket_type_name"`
	CategoryName        string  `json:"category_name"`
	CategoryDescription *string `json:"category_description,omitempty"`
	Quantity            int     `json:"quantity"`
	UnitPrice           float64 `json:"unit_price"`
	Subtotal            float64 `json:"subtotal"`
}

// SubmitPayload is the cleaned, submit-ready form of a draft: valid lines
// only, total recomputed from exactly those lines.
type SubmitPayload struct {
	BookingID       *int         `json:"booking_id,omitempty"`
	TourID          *int         `json:"tour_id,omitempty"`
	CustomerName    string       `json:"customer_name"`
	CustomerContact string       `json:"customer_contact"`
	Lines           []SubmitLine `json:"lines"`
	Total           float64      `json:"total"`
}
