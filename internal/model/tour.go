package model

import (
	"time"

	"github.com/google/uuid"
)

type Tour struct {
	ID           int        `json:"id" db:"id"`
	TourID       uuid.UUID  `json:"tour_id" db:"tour_id"`
	Name         string     `json:"name" db:"name"`
	Description  *string    `json:"description,omitempty" db:"description"`
	DurationDays int        `json:"duration_days" db:"duration_days"`
	ImageURL     *string    `json:"image_url,omitempty" db:"image_url"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt    *time.Time `json:"deleted_at,omitempty" db:"deleted_at"`
}

type UpdateTourParams struct {
	Name         *string
	Description  *string
	DurationDays *int
	ImageURL     *string
}

// IsDeleted reports whether the tour has been soft-deleted.
func (t *Tour) IsDeleted() bool {
	return t.DeletedAt != nil
}
