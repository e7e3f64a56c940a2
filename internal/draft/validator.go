package draft

import (
	"fmt"
	"strings"

	"go-tour-booking/internal/model"
)

// Violation is one failed submission precondition, attached to a field or to
// the draft as a whole.
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries all violations of one failed submission.
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		msgs[i] = fmt.Sprintf("%s: %s", v.Field, v.Message)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// ValidateOptions adjusts the submission gate per flow. The edit flow does
// not require a tour selection because the persisted booking already carries
// one.
type ValidateOptions struct {
	RequireTour bool
}

// Validate is the submission gate. It never mutates the draft: on success it
// returns a payload holding only the valid lines, with the total recomputed
// from exactly that subset rather than copied from the draft's running total.
// Invalid lines (unselected, or with a quantity below 1) are silently
// excluded unless nothing valid remains.
func Validate(d model.OrderDraft, opts ValidateOptions) (*model.SubmitPayload, []Violation) {
	var violations []Violation

	if strings.TrimSpace(d.CustomerName) == "" {
		violations = append(violations, Violation{Field: "customer_name", Message: "customer name is required"})
	}
	if strings.TrimSpace(d.CustomerContact) == "" {
		violations = append(violations, Violation{Field: "customer_contact", Message: "customer contact is required"})
	}
	if opts.RequireTour && d.TourID == nil {
		violations = append(violations, Violation{Field: "tour_id", Message: "a tour must be selected"})
	}

	valid := make([]model.SubmitLine, 0, len(d.Lines))
	var total float64
	for _, line := range d.Lines {
		if !line.Selected() || line.Quantity < 1 {
			continue
		}
		subtotal := line.UnitPrice * float64(line.Quantity)
		valid = append(valid, model.SubmitLine{
			TierID:              *line.TierID,
			TicketTypeName:      line.TicketTypeName,
			CategoryName:        line.CategoryName,
			CategoryDescription: line.CategoryDescription,
			Quantity:            line.Quantity,
			UnitPrice:           line.UnitPrice,
			Subtotal:            subtotal,
		})
		total += subtotal
	}

	if len(valid) == 0 {
		violations = append(violations, Violation{Field: "lines", Message: "no valid tickets selected"})
	}

	if len(violations) > 0 {
		return nil, violations
	}

	return &model.SubmitPayload{
		BookingID:       d.BookingID,
		TourID:          d.TourID,
		CustomerName:    d.CustomerName,
		CustomerContact: d.CustomerContact,
		Lines:           valid,
		Total:           total,
	}, nil
}
