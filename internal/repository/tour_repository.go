package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go-tour-booking/internal/model"
	apperrors "go-tour-booking/pkg/app_errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TourRepository interface {
	Create(ctx context.Context, tour *model.Tour) (*model.Tour, error)
	List(ctx context.Context) ([]*model.Tour, error)
	FindByID(ctx context.Context, id int) (*model.Tour, error)
	FindByTourID(ctx context.Context, tourID uuid.UUID) (*model.Tour, error)
	Update(ctx context.Context, id int, params model.UpdateTourParams) (*model.Tour, error)
	Delete(ctx context.Context, id int) error
}

type TourRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewTourRepository(pool *pgxpool.Pool) TourRepository {
	return &TourRepositoryImpl{
		pool: pool,
	}
}

func (r *TourRepositoryImpl) Create(ctx context.Context, tour *model.Tour) (*model.Tour, error) {
	query := `
		INSERT INTO tours (tour_id, name, description, duration_days, image_url)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, tour_id, name, description, duration_days, image_url, created_at, updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		tour.TourID, tour.Name, tour.Description, tour.DurationDays, tour.ImageURL,
	).Scan(
		&tour.ID,
		&tour.TourID,
		&tour.Name,
		&tour.Description,
		&tour.DurationDays,
		&tour.ImageURL,
		&tour.CreatedAt,
		&tour.UpdatedAt,
	)

	if err != nil {
		return nil, err
	}

	return tour, nil
}

func (r *TourRepositoryImpl) List(ctx context.Context) ([]*model.Tour, error) {
	query := `
		SELECT id, tour_id, name, description, duration_days, image_url,
				created_at, updated_at, deleted_at
		FROM tours
		WHERE deleted_at IS NULL
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tours := make([]*model.Tour, 0)

	for rows.Next() {
		var tour model.Tour
		err := rows.Scan(
			&tour.ID,
			&tour.TourID,
			&tour.Name,
			&tour.Description,
			&tour.DurationDays,
			&tour.ImageURL,
			&tour.CreatedAt,
			&tour.UpdatedAt,
			&tour.DeletedAt,
		)
		if err != nil {
			return nil, err
		}
		tours = append(tours, &tour)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return tours, nil
}

func (r *TourRepositoryImpl) FindByID(ctx context.Context, id int) (*model.Tour, error) {
	query := `
		SELECT id, tour_id, name, description, duration_days, image_url,
				created_at, updated_at, deleted_at
		FROM tours
		WHERE id = $1 AND deleted_at IS NULL
	`

	var tour model.Tour
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&tour.ID,
		&tour.TourID,
		&tour.Name,
		&tour.Description,
		&tour.DurationDays,
		&tour.ImageURL,
		&tour.CreatedAt,
		&tour.UpdatedAt,
		&tour.DeletedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrTourNotFound
		}
		return nil, err
	}

	return &tour, nil
}

func (r *TourRepositoryImpl) FindByTourID(ctx context.Context, tourID uuid.UUID) (*model.Tour, error) {
	query := `
		SELECT id, tour_id, name, description, duration_days, image_url,
				created_at, updated_at, deleted_at
		FROM tours
		WHERE tour_id = $1 AND deleted_at IS NULL
	`

	var tour model.Tour
	err := r.pool.QueryRow(ctx, query, tourID).Scan(
		&tour.ID,
		&tour.TourID,
		&tour.Name,
		&tour.Description,
		&tour.DurationDays,
		&tour.ImageURL,
		&tour.CreatedAt,
		&tour.UpdatedAt,
		&tour.DeletedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrTourNotFound
		}
		return nil, err
	}

	return &tour, nil
}

func (r *TourRepositoryImpl) Update(ctx context.Context, id int, params model.UpdateTourParams) (*model.Tour, error) {
	sets := []string{}
	args := []interface{}{}
	argPos := 1

	if params.Name != nil {
		sets = append(sets, fmt.Sprintf("name = $%d", argPos))
		args = append(args, *params.Name)
		argPos++
	}

	if params.Description != nil {
		sets = append(sets, fmt.Sprintf("description = $%d", argPos))
		args = append(args, *params.Description)
		argPos++
	}

	if params.DurationDays != nil {
		sets = append(sets, fmt.Sprintf("duration_days = $%d", argPos))
		args = append(args, *params.DurationDays)
		argPos++
	}

	if params.ImageURL != nil {
		sets = append(sets, fmt.Sprintf("image_url = $%d", argPos))
		args = append(args, *params.ImageURL)
		argPos++
	}

	if len(sets) == 0 {
		return nil, apperrors.ErrInvalidInput
	}

	// add updated_at
	sets = append(sets, fmt.Sprintf("updated_at = $%d", argPos))
	args = append(args, time.Now().UTC())
	argPos++

	// add id
	args = append(args, id)

	query := fmt.Sprintf(`
		UPDATE tours
		SET %s
		WHERE id = $%d AND deleted_at IS NULL
        RETURNING id, tour_id, name, description, duration_days, image_url, created_at, updated_at
	`, strings.Join(sets, ", "), argPos)

	var tour model.Tour

	err := r.pool.QueryRow(ctx, query, args...).Scan(
		&tour.ID,
		&tour.TourID,
		&tour.Name,
		&tour.Description,
		&tour.DurationDays,
		&tour.ImageURL,
		&tour.CreatedAt,
		&tour.UpdatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrTourNotFound
		}
		return nil, err
	}

	return &tour, nil
}

func (r *TourRepositoryImpl) Delete(ctx context.Context, id int) error {
	query := `
		UPDATE tours
		SET deleted_at = $1, updated_at = $2
		WHERE id = $3 AND deleted_at IS NULL
	`

	result, err := r.pool.Exec(ctx, query, time.Now().UTC(), time.Now().UTC(), id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrTourNotFound
	}

	return nil
}
