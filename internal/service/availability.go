package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"mealmatch/internal/availability"
	"mealmatch/internal/cache"
	"mealmatch/internal/domain"
	"mealmatch/internal/events"
	"mealmatch/internal/repository"
)

type AvailabilityServiceImpl struct {
	repo      repository.AvailabilityRepository
	cache     *cache.GridCache
	publisher events.Publisher
	clock     availability.Clock
	logger    *zap.Logger
}

// NewAvailabilityService wires the service. gridCache may be nil to disable
// caching; a nil publisher or clock falls back to no-op and the system clock.
func NewAvailabilityService(
	repo repository.AvailabilityRepository,
	gridCache *cache.GridCache,
	publisher events.Publisher,
	clock availability.Clock,
	logger *zap.Logger,
) *AvailabilityServiceImpl {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	if clock == nil {
		clock = availability.SystemClock
	}
	return &AvailabilityServiceImpl{
		repo:      repo,
		cache:     gridCache,
		publisher: publisher,
		clock:     clock,
		logger:    logger,
	}
}

func (s *AvailabilityServiceImpl) GetGrid(ctx context.Context, userID int64) (domain.AvailabilityGrid, error) {
	var generation uint64
	if s.cache != nil {
		if grid, ok := s.cache.Get(userID); ok {
			return grid, nil
		}
		generation = s.cache.Generation()
	}

	slots, _, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("failed to load availability", zap.Int64("user_id", userID), zap.Error(err))
		return nil, fmt.Errorf("failed to load availability: %w", err)
	}

	grid := availability.SlotsToGrid(slots)
	if s.cache != nil {
		s.cache.Store(userID, generation, grid)
	}
	return grid, nil
}

func (s *AvailabilityServiceImpl) GetSlots(ctx context.Context, userID int64) (*domain.UserAvailability, error) {
	slots, updatedAt, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("failed to load availability", zap.Int64("user_id", userID), zap.Error(err))
		return nil, fmt.Errorf("failed to load availability: %w", err)
	}

	return &domain.UserAvailability{
		UserID:    userID,
		Slots:     availability.NormalizeSlots(slots),
		UpdatedAt: updatedAt,
	}, nil
}

// ReplaceSlots stores the complete grid built from slots. Malformed entries
// and entries with a reserved status are dropped, and missing cells are stored
// as UNAVAILABLE, so the user always ends up with a full week.
func (s *AvailabilityServiceImpl) ReplaceSlots(ctx context.Context, userID int64, slots []domain.AvailabilitySlot) (*domain.UserAvailability, error) {
	stored := availability.GridToSlots(availability.SlotsToGrid(writableSlots(slots)))
	now := s.now()

	if err := s.repo.ReplaceAll(ctx, userID, stored, now); err != nil {
		s.logger.Error("failed to save availability", zap.Int64("user_id", userID), zap.Error(err))
		return nil, fmt.Errorf("failed to save availability: %w", err)
	}

	return s.saved(ctx, userID, stored, now), nil
}

func (s *AvailabilityServiceImpl) UpdateCell(ctx context.Context, userID int64, dto domain.UpdateCellDTO) (*domain.UserAvailability, error) {
	if !dto.Weekday.IsValid() {
		return nil, domain.ErrInvalidWeekday
	}
	timeSlot, err := availability.ResolveTimeSlot(dto.TimeSlot, dto.MealTimeSlot)
	if err != nil {
		return nil, err
	}
	if !dto.Status.IsValid() {
		return nil, domain.ErrInvalidStatus
	}
	if !dto.Status.IsWritable() {
		return nil, domain.ErrReservedStatus
	}

	return s.modify(ctx, userID, func(grid domain.AvailabilityGrid) error {
		return availability.SetCell(grid, dto.Weekday, timeSlot, dto.Status)
	})
}

func (s *AvailabilityServiceImpl) ToggleCell(ctx context.Context, userID int64, dto domain.ToggleCellDTO) (*domain.UserAvailability, error) {
	if !dto.Weekday.IsValid() {
		return nil, domain.ErrInvalidWeekday
	}
	timeSlot, err := availability.ResolveTimeSlot(dto.TimeSlot, dto.MealTimeSlot)
	if err != nil {
		return nil, err
	}

	return s.modify(ctx, userID, func(grid domain.AvailabilityGrid) error {
		_, err := availability.ToggleCell(grid, dto.Weekday, timeSlot)
		return err
	})
}

// modify applies mutate to the stored grid inside one repository transaction
// and writes all cells back. The cache is never the source of an edit.
func (s *AvailabilityServiceImpl) modify(ctx context.Context, userID int64, mutate func(domain.AvailabilityGrid) error) (*domain.UserAvailability, error) {
	now := s.now()

	stored, err := s.repo.Modify(ctx, userID, now, func(current []domain.AvailabilitySlot) ([]domain.AvailabilitySlot, error) {
		grid := availability.SlotsToGrid(current)
		if err := mutate(grid); err != nil {
			return nil, err
		}
		return availability.GridToSlots(grid), nil
	})
	if err != nil {
		s.logger.Error("failed to update availability", zap.Int64("user_id", userID), zap.Error(err))
		return nil, fmt.Errorf("failed to update availability: %w", err)
	}

	return s.saved(ctx, userID, stored, now), nil
}

// saved runs after a committed write: it drops the cached grid and announces
// the change.
func (s *AvailabilityServiceImpl) saved(ctx context.Context, userID int64, slots []domain.AvailabilitySlot, now time.Time) *domain.UserAvailability {
	if s.cache != nil {
		s.cache.Invalidate(userID)
	}

	event := domain.AvailabilityChangedEvent{
		ID:        uuid.New().String(),
		UserID:    userID,
		Slots:     slots,
		ChangedAt: now,
	}
	publishCtx, cancel := context.WithTimeout(ctx, events.PublishTimeout)
	defer cancel()
	if err := s.publisher.PublishAvailabilityChanged(publishCtx, event); err != nil {
		// The grid is already stored; consumers can resync from the API.
		s.logger.Warn("failed to publish availability event",
			zap.Int64("user_id", userID),
			zap.String("event_id", event.ID),
			zap.Error(err),
		)
	}

	s.logger.Info("availability saved", zap.Int64("user_id", userID))

	return &domain.UserAvailability{
		UserID:    userID,
		Slots:     slots,
		UpdatedAt: &now,
	}
}

func writableSlots(slots []domain.AvailabilitySlot) []domain.AvailabilitySlot {
	result := make([]domain.AvailabilitySlot, 0, len(slots))
	for _, slot := range slots {
		if slot.Status.IsValid() && !slot.Status.IsWritable() {
			continue
		}
		result = append(result, slot)
	}
	return result
}

func (s *AvailabilityServiceImpl) GetPairSlots(ctx context.Context, selfID, partnerID int64) ([]domain.PairAvailabilitySlot, error) {
	if selfID == partnerID {
		return nil, domain.ErrSelfPair
	}

	grids, err := s.loadGrids(ctx, selfID, partnerID)
	if err != nil {
		return nil, err
	}

	return availability.PairSlotsFromGrids(grids[selfID], grids[partnerID]), nil
}

// GetPairWindow reads the clock once and aligns the pair facts to that window.
func (s *AvailabilityServiceImpl) GetPairWindow(ctx context.Context, selfID, partnerID int64) (*domain.PairWindow, error) {
	slots, err := s.GetPairSlots(ctx, selfID, partnerID)
	if err != nil {
		return nil, err
	}

	days := availability.Next7Days(s.clock)
	cells := availability.BuildPairCells(days, slots)

	matches := 0
	for _, cell := range cells {
		if availability.BothAvailable(cell) {
			matches++
		}
	}

	return &domain.PairWindow{
		PartnerID: partnerID,
		Days:      days,
		Cells:     cells,
		Matches:   matches,
	}, nil
}

// loadGrids serves what it can from the cache and reads the rest in a
// single query.
func (s *AvailabilityServiceImpl) loadGrids(ctx context.Context, userIDs ...int64) (map[int64]domain.AvailabilityGrid, error) {
	grids := make(map[int64]domain.AvailabilityGrid, len(userIDs))

	var generation uint64
	if s.cache != nil {
		generation = s.cache.Generation()
	}

	var missing []int64
	for _, id := range userIDs {
		if s.cache != nil {
			if grid, ok := s.cache.Get(id); ok {
				grids[id] = grid
				continue
			}
		}
		missing = append(missing, id)
	}
	if len(missing) == 0 {
		return grids, nil
	}

	rows, err := s.repo.ListByUsers(ctx, missing)
	if err != nil {
		s.logger.Error("failed to load availability", zap.Int64s("user_ids", missing), zap.Error(err))
		return nil, fmt.Errorf("failed to load availability: %w", err)
	}

	for _, id := range missing {
		grid := availability.SlotsToGrid(rows[id])
		if s.cache != nil {
			s.cache.Store(id, generation, grid)
		}
		grids[id] = grid
	}
	return grids, nil
}

func (s *AvailabilityServiceImpl) now() time.Time {
	return s.clock.Now()
}
