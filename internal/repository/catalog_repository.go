package repository

import (
	"context"

	"go-tour-booking/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
)

// CatalogRepository reads the purchasable items of a tour: ticket types with
// their nested price tiers. Read-only; catalog maintenance is an admin
// concern outside the booking flow.
type CatalogRepository interface {
	ListTicketTypes(ctx context.Context, tourID int) ([]model.TicketType, error)
}

type CatalogRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewCatalogRepository(pool *pgxpool.Pool) CatalogRepository {
	return &CatalogRepositoryImpl{
		pool: pool,
	}
}

func (r *CatalogRepositoryImpl) ListTicketTypes(ctx context.Context, tourID int) ([]model.TicketType, error) {
	query := `
		SELECT id, tour_id, name, notes, created_at, updated_at
		FROM ticket_types
		WHERE tour_id = $1
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, query, tourID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ticketTypes := make([]model.TicketType, 0)
	typeIDs := make([]int, 0)

	for rows.Next() {
		var tt model.TicketType
		err := rows.Scan(
			&tt.ID,
			&tt.TourID,
			&tt.Name,
			&tt.Notes,
			&tt.CreatedAt,
			&tt.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		tt.PriceTiers = make([]model.PriceTier, 0)
		ticketTypes = append(ticketTypes, tt)
		typeIDs = append(typeIDs, tt.ID)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(ticketTypes) == 0 {
		return ticketTypes, nil
	}

	tiers, err := r.listPriceTiers(ctx, typeIDs)
	if err != nil {
		return nil, err
	}

	byTypeID := make(map[int]int, len(ticketTypes))
	for i := range ticketTypes {
		byTypeID[ticketTypes[i].ID] = i
	}
	for _, tier := range tiers {
		if i, ok := byTypeID[tier.TicketTypeID]; ok {
			ticketTypes[i].PriceTiers = append(ticketTypes[i].PriceTiers, tier)
		}
	}

	return ticketTypes, nil
}

func (r *CatalogRepositoryImpl) listPriceTiers(ctx context.Context, ticketTypeIDs []int) ([]model.PriceTier, error) {
	query := `
		SELECT pt.id, pt.ticket_type_id, pt.category_id, tc.name, tc.description, pt.unit_price
		FROM price_tiers pt
		JOIN traveler_categories tc ON tc.id = pt.category_id
		WHERE pt.ticket_type_id = ANY($1)
		ORDER BY pt.ticket_type_id, pt.id
	`

	rows, err := r.pool.Query(ctx, query, ticketTypeIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tiers := make([]model.PriceTier, 0)
	for rows.Next() {
		var tier model.PriceTier
		err := rows.Scan(
			&tier.ID,
			&tier.TicketTypeID,
			&tier.CategoryID,
			&tier.CategoryName,
			&tier.CategoryDescription,
			&tier.UnitPrice,
		)
		if err != nil {
			return nil, err
		}
		tiers = append(tiers, tier)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return tiers, nil
}
