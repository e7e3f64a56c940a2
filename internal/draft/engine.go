package draft

import (
	"go-tour-booking/internal/catalog"
	"go-tour-booking/internal/model"
	apperrors "go-tour-booking/pkg/app_errors"

	"github.com/google/uuid"
)

// The operations in this file are pure: each takes the current draft and
// returns the next one without touching the input. Totals and the duplicate
// merge are re-established from scratch after every mutation, so callers
// never see a draft whose total disagrees with its lines.

// SelectTour switches the draft to a new tour. Destructive by contract:
// existing lines belong to the previous tour's catalog and are cleared.
func SelectTour(d model.OrderDraft, tourID int) model.OrderDraft {
	next := clone(d)
	next.TourID = &tourID
	next.Lines = []model.LineItem{}
	next.Total = 0
	return next
}

// AddLine appends a new unselected line with quantity 1. Rejected when no
// tour is selected.
func AddLine(d model.OrderDraft) (model.OrderDraft, error) {
	if d.TourID == nil {
		return d, apperrors.ErrNoTourSelected
	}

	next := clone(d)
	next.Lines = append(next.Lines, model.LineItem{
		LineID:   uuid.New(),
		Quantity: 1,
	})
	next.Total = sumSubtotals(next.Lines)
	return next, nil
}

// SetTier resolves tierID against the catalog index and snapshots the tier's
// price and display fields onto the line. An unresolvable tier resets the
// line to the unselected state instead of failing. The full merge pass runs
// afterwards.
func SetTier(d model.OrderDraft, lineID uuid.UUID, tierID int, ix *catalog.Index) (model.OrderDraft, error) {
	next := clone(d)
	line := findLine(next.Lines, lineID)
	if line == nil {
		return d, apperrors.ErrLineNotFound
	}

	if tier, ok := ix.ResolveTier(tierID); ok {
		id := tier.ID
		line.TierID = &id
		line.TicketTypeName = tier.TicketTypeName
		line.CategoryName = tier.CategoryName
		line.CategoryDescription = tier.CategoryDescription
		line.UnitPrice = tier.UnitPrice
		line.Subtotal = tier.UnitPrice * float64(line.Quantity)
	} else {
		resetLine(line)
	}

	next.Lines = mergeLines(next.Lines)
	next.Total = sumSubtotals(next.Lines)
	return next, nil
}

// SetQuantity updates a line's quantity and re-derives its subtotal, then
// runs the merge pass. Quantities below 1 are rejected and the draft is
// returned unchanged.
func SetQuantity(d model.OrderDraft, lineID uuid.UUID, quantity int) (model.OrderDraft, error) {
	if quantity < 1 {
		return d, apperrors.ErrInvalidQuantity
	}

	next := clone(d)
	line := findLine(next.Lines, lineID)
	if line == nil {
		return d, apperrors.ErrLineNotFound
	}

	line.Quantity = quantity
	line.Subtotal = line.UnitPrice * float64(quantity)

	next.Lines = mergeLines(next.Lines)
	next.Total = sumSubtotals(next.Lines)
	return next, nil
}

// RemoveLine deletes a line and recomputes the total from the remainder.
func RemoveLine(d model.OrderDraft, lineID uuid.UUID) (model.OrderDraft, error) {
	next := clone(d)
	kept := next.Lines[:0]
	found := false
	for _, line := range next.Lines {
		if line.LineID == lineID {
			found = true
			continue
		}
		kept = append(kept, line)
	}
	if !found {
		return d, apperrors.ErrLineNotFound
	}

	next.Lines = kept
	next.Total = sumSubtotals(next.Lines)
	return next, nil
}

// SetCustomer records the customer identification fields on the draft.
func SetCustomer(d model.OrderDraft, name, contact string) model.OrderDraft {
	next := clone(d)
	next.CustomerName = name
	next.CustomerContact = contact
	return next
}

// mergeLines collapses lines that reference the same tier into the first
// occurrence, summing quantities. Unselected lines pass through verbatim and
// are never merged with each other. The pass always scans the whole list, so
// it is idempotent and independent of mutation order.
func mergeLines(lines []model.LineItem) []model.LineItem {
	merged := make([]model.LineItem, 0, len(lines))
	byTier := make(map[int]int) // tier ID -> index in merged

	for _, line := range lines {
		if !line.Selected() {
			merged = append(merged, line)
			continue
		}

		if i, seen := byTier[*line.TierID]; seen {
			// first occurrence wins position and metadata; later
			// duplicates are absorbed into it
			survivor := &merged[i]
			survivor.Quantity += line.Quantity
			survivor.Subtotal = survivor.UnitPrice * float64(survivor.Quantity)
			continue
		}

		byTier[*line.TierID] = len(merged)
		merged = append(merged, line)
	}

	return merged
}

func sumSubtotals(lines []model.LineItem) float64 {
	var total float64
	for _, line := range lines {
		total += line.Subtotal
	}
	return total
}

func findLine(lines []model.LineItem, lineID uuid.UUID) *model.LineItem {
	for i := range lines {
		if lines[i].LineID == lineID {
			return &lines[i]
		}
	}
	return nil
}

func resetLine(line *model.LineItem) {
	line.TierID = nil
	line.TicketTypeName = ""
	line.CategoryName = ""
	line.CategoryDescription = nil
	line.UnitPrice = 0
	line.Subtotal = 0
}

func clone(d model.OrderDraft) model.OrderDraft {
	next := d
	next.Lines = make([]model.LineItem, len(d.Lines))
	copy(next.Lines, d.Lines)
	return next
}
