// Package availability converts weekly availability between its wire and grid
// forms and projects the recurring week onto a rolling window of dates.
//
// Nothing in this package returns an error for malformed data: unknown keys
// are skipped and missing cells read as UNAVAILABLE.
package availability

import (
	"mealmatch/internal/domain"
)

// NewDefaultGrid returns a grid with every cell UNAVAILABLE.
func NewDefaultGrid() domain.AvailabilityGrid {
	grid := make(domain.AvailabilityGrid, len(domain.Weekdays))
	for _, weekday := range domain.Weekdays {
		row := make(map[domain.TimeSlot]domain.AvailabilityStatus, len(domain.TimeSlots))
		for _, timeSlot := range domain.TimeSlots {
			row[timeSlot] = domain.AvailabilityStatusUnavailable
		}
		grid[weekday] = row
	}
	return grid
}

// SlotsToGrid overlays slots on the default grid. Entries with an unknown
// weekday, time slot or status are ignored. On duplicate cells the last entry
// wins.
func SlotsToGrid(slots []domain.AvailabilitySlot) domain.AvailabilityGrid {
	grid := NewDefaultGrid()
	for _, slot := range slots {
		row, ok := grid[slot.Weekday]
		if !ok {
			continue
		}
		if !slot.TimeSlot.IsValid() || !slot.Status.IsValid() {
			continue
		}
		row[slot.TimeSlot] = slot.Status
	}
	return grid
}

// GridToSlots flattens grid into exactly domain.CellCount slots, weekday outer
// and time slot inner.
func GridToSlots(grid domain.AvailabilityGrid) []domain.AvailabilitySlot {
	slots := make([]domain.AvailabilitySlot, 0, domain.CellCount)
	for _, weekday := range domain.Weekdays {
		for _, timeSlot := range domain.TimeSlots {
			slots = append(slots, domain.AvailabilitySlot{
				Weekday:  weekday,
				TimeSlot: timeSlot,
				Status:   grid.Status(weekday, timeSlot),
			})
		}
	}
	return slots
}

// NormalizeSlots is GridToSlots(SlotsToGrid(slots)).
func NormalizeSlots(slots []domain.AvailabilitySlot) []domain.AvailabilitySlot {
	return GridToSlots(SlotsToGrid(slots))
}

// CloneGrid returns a complete deep copy of grid.
func CloneGrid(grid domain.AvailabilityGrid) domain.AvailabilityGrid {
	return SlotsToGrid(GridToSlots(grid))
}

// SetCell writes status into grid, creating the row if it is missing.
func SetCell(grid domain.AvailabilityGrid, weekday domain.Weekday, timeSlot domain.TimeSlot, status domain.AvailabilityStatus) error {
	if !weekday.IsValid() {
		return domain.ErrInvalidWeekday
	}
	if !timeSlot.IsValid() {
		return domain.ErrInvalidTimeSlot
	}
	if !status.IsValid() {
		return domain.ErrInvalidStatus
	}

	row, ok := grid[weekday]
	if !ok || row == nil {
		row = make(map[domain.TimeSlot]domain.AvailabilityStatus, len(domain.TimeSlots))
		grid[weekday] = row
	}
	row[timeSlot] = status
	return nil
}

// ToggleCell flips a cell between AVAILABLE and UNAVAILABLE and returns the
// new status. Any status other than AVAILABLE toggles to AVAILABLE.
func ToggleCell(grid domain.AvailabilityGrid, weekday domain.Weekday, timeSlot domain.TimeSlot) (domain.AvailabilityStatus, error) {
	next := domain.AvailabilityStatusAvailable
	if grid.Status(weekday, timeSlot) == domain.AvailabilityStatusAvailable {
		next = domain.AvailabilityStatusUnavailable
	}
	if err := SetCell(grid, weekday, timeSlot, next); err != nil {
		return "", err
	}
	return next, nil
}
