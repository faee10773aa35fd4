package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"mealmatch/internal/domain"
)

type Repositories struct {
	Availability AvailabilityRepository
}

func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		Availability: NewAvailabilityRepository(db),
	}
}

type AvailabilityRepository interface {
	// ListByUser returns the stored rows in no particular order; nil when the
	// user never saved a grid.
	ListByUser(ctx context.Context, userID int64) ([]domain.AvailabilitySlot, *time.Time, error)
	// ListByUsers loads several users in one query.
	ListByUsers(ctx context.Context, userIDs []int64) (map[int64][]domain.AvailabilitySlot, error)
	// ReplaceAll swaps the user's rows for slots atomically.
	ReplaceAll(ctx context.Context, userID int64, slots []domain.AvailabilitySlot, updatedAt time.Time) error
	// Modify reads the user's rows and replaces them with modify's result in
	// one transaction, serialized against other writers of the same user.
	Modify(ctx context.Context, userID int64, updatedAt time.Time, modify ModifyFunc) ([]domain.AvailabilitySlot, error)
}

// ModifyFunc receives the stored rows and returns the rows to store. An error
// aborts the transaction and is returned unchanged.
type ModifyFunc func(current []domain.AvailabilitySlot) ([]domain.AvailabilitySlot, error)
