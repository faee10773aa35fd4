package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"mealmatch/internal/domain"
)

type AvailabilityRepo struct {
	db *pgxpool.Pool
}

func NewAvailabilityRepository(db *pgxpool.Pool) AvailabilityRepository {
	return &AvailabilityRepo{db: db}
}

func (r *AvailabilityRepo) ListByUser(ctx context.Context, userID int64) ([]domain.AvailabilitySlot, *time.Time, error) {
	query := `
		SELECT weekday, time_slot, status, updated_at
		FROM availability_slots
		WHERE user_id = $1
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query availability: %w", err)
	}
	defer rows.Close()

	var (
		slots     []domain.AvailabilitySlot
		updatedAt *time.Time
	)
	for rows.Next() {
		var (
			slot domain.AvailabilitySlot
			at   time.Time
		)
		if err := rows.Scan(&slot.Weekday, &slot.TimeSlot, &slot.Status, &at); err != nil {
			return nil, nil, fmt.Errorf("failed to scan availability row: %w", err)
		}
		if updatedAt == nil || at.After(*updatedAt) {
			updatedAt = &at
		}
		slots = append(slots, slot)
	}

	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to read availability rows: %w", err)
	}

	return slots, updatedAt, nil
}

func (r *AvailabilityRepo) ListByUsers(ctx context.Context, userIDs []int64) (map[int64][]domain.AvailabilitySlot, error) {
	result := make(map[int64][]domain.AvailabilitySlot, len(userIDs))
	if len(userIDs) == 0 {
		return result, nil
	}

	query := `
		SELECT user_id, weekday, time_slot, status
		FROM availability_slots
		WHERE user_id = ANY($1)
	`

	rows, err := r.db.Query(ctx, query, userIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query availability: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			userID int64
			slot   domain.AvailabilitySlot
		)
		if err := rows.Scan(&userID, &slot.Weekday, &slot.TimeSlot, &slot.Status); err != nil {
			return nil, fmt.Errorf("failed to scan availability row: %w", err)
		}
		result[userID] = append(result[userID], slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read availability rows: %w", err)
	}

	return result, nil
}

func (r *AvailabilityRepo) ReplaceAll(ctx context.Context, userID int64, slots []domain.AvailabilitySlot, updatedAt time.Time) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := lockUser(ctx, tx, userID); err != nil {
		return err
	}

	if err := replaceSlots(ctx, tx, userID, slots, updatedAt); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit availability: %w", err)
	}

	return nil
}

func (r *AvailabilityRepo) Modify(ctx context.Context, userID int64, updatedAt time.Time, modify ModifyFunc) ([]domain.AvailabilitySlot, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := lockUser(ctx, tx, userID); err != nil {
		return nil, err
	}

	rows, err := tx.Query(ctx, `
		SELECT weekday, time_slot, status
		FROM availability_slots
		WHERE user_id = $1
		FOR UPDATE
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query availability: %w", err)
	}

	var current []domain.AvailabilitySlot
	for rows.Next() {
		var slot domain.AvailabilitySlot
		if err := rows.Scan(&slot.Weekday, &slot.TimeSlot, &slot.Status); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan availability row: %w", err)
		}
		current = append(current, slot)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read availability rows: %w", err)
	}

	slots, err := modify(current)
	if err != nil {
		return nil, err
	}

	if err := replaceSlots(ctx, tx, userID, slots, updatedAt); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit availability: %w", err)
	}

	return slots, nil
}

// lockUser serializes writers of one user, including the first write when no
// rows exist yet for FOR UPDATE to lock.
func lockUser(ctx context.Context, tx pgx.Tx, userID int64) error {
	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, userID); err != nil {
		return fmt.Errorf("failed to lock availability: %w", err)
	}
	return nil
}

func replaceSlots(ctx context.Context, tx pgx.Tx, userID int64, slots []domain.AvailabilitySlot, updatedAt time.Time) error {
	if _, err := tx.Exec(ctx, `DELETE FROM availability_slots WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("failed to clear availability: %w", err)
	}

	batch := &pgx.Batch{}
	for _, slot := range slots {
		batch.Queue(`
			INSERT INTO availability_slots (user_id, weekday, time_slot, status, updated_at)
			VALUES ($1, $2, $3, $4, $5)
		`, userID, slot.Weekday, slot.TimeSlot, slot.Status, updatedAt)
	}

	br := tx.SendBatch(ctx, batch)
	for range slots {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return fmt.Errorf("failed to insert availability: %w", err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to insert availability: %w", err)
	}

	return nil
}
