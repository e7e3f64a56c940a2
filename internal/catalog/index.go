package catalog

import "go-tour-booking/internal/model"

// Index is an immutable per-tour snapshot of purchasable items. It is built
// once from the catalog service result and only read afterwards; a new tour
// selection gets a new Index.
type Index struct {
	tourID      int
	ticketTypes []model.TicketType
	tiers       map[int]model.PriceTier
}

// NewIndex builds an index over the ordered ticket types of one tour. The
// ticket type name is denormalized onto each tier so selection can snapshot
// display fields from the tier alone.
func NewIndex(tourID int, ticketTypes []model.TicketType) *Index {
	ix := &Index{
		tourID:      tourID,
		ticketTypes: make([]model.TicketType, len(ticketTypes)),
		tiers:       make(map[int]model.PriceTier),
	}
	copy(ix.ticketTypes, ticketTypes)

	for i := range ix.ticketTypes {
		tt := &ix.ticketTypes[i]
		// the nested tier slices still share backing arrays with the caller;
		// copy them before annotating
		tiers := make([]model.PriceTier, len(tt.PriceTiers))
		copy(tiers, tt.PriceTiers)
		tt.PriceTiers = tiers

		for j := range tt.PriceTiers {
			tt.PriceTiers[j].TicketTypeName = tt.Name
			ix.tiers[tt.PriceTiers[j].ID] = tt.PriceTiers[j]
		}
	}
	return ix
}

func (ix *Index) TourID() int {
	if ix == nil {
		return 0
	}
	return ix.tourID
}

// TicketTypes returns the ordered ticket types with nested price tiers.
func (ix *Index) TicketTypes() []model.TicketType {
	if ix == nil {
		return nil
	}
	return ix.ticketTypes
}

// ResolveTier looks up a price tier by ID. A nil index resolves nothing,
// which lets callers treat "catalog not loaded" the same as an unknown tier.
func (ix *Index) ResolveTier(tierID int) (model.PriceTier, bool) {
	if ix == nil {
		return model.PriceTier{}, false
	}
	tier, ok := ix.tiers[tierID]
	return tier, ok
}

// Empty reports whether the tour has nothing purchasable yet. This is a
// displayable state, not an error.
func (ix *Index) Empty() bool {
	return ix == nil || len(ix.ticketTypes) == 0
}
