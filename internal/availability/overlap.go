package availability

import (
	"mealmatch/internal/domain"
)

type cellKey struct {
	weekday  domain.Weekday
	timeSlot domain.TimeSlot
}

// BuildPairCells lays pair facts over the window, two cells per day in
// TimeSlots order. Facts are matched by weekday, not by date, so one fact
// covers every occurrence of its weekday in the window. For duplicate facts
// the first one wins; missing facts read as unavailable on both sides.
func BuildPairCells(days []domain.Next7Day, slots []domain.PairAvailabilitySlot) []domain.PairCell {
	facts := make(map[cellKey]domain.PairAvailabilitySlot, len(slots))
	for _, slot := range slots {
		key := cellKey{weekday: slot.Weekday, timeSlot: slot.TimeSlot}
		if _, seen := facts[key]; seen {
			continue
		}
		facts[key] = slot
	}

	cells := make([]domain.PairCell, 0, len(days)*len(domain.TimeSlots))
	for dayIndex, day := range days {
		for _, timeSlot := range domain.TimeSlots {
			fact := facts[cellKey{weekday: day.Weekday, timeSlot: timeSlot}]
			cells = append(cells, domain.PairCell{
				DayIndex:         dayIndex,
				TimeSlot:         timeSlot,
				SelfAvailable:    fact.SelfAvailable,
				PartnerAvailable: fact.PartnerAvailable,
			})
		}
	}
	return cells
}

// PairSlotsFromGrids computes one overlap fact per cell of the week. Only
// AVAILABLE counts as available; MEET_ONLY does not.
func PairSlotsFromGrids(self, partner domain.AvailabilityGrid) []domain.PairAvailabilitySlot {
	slots := make([]domain.PairAvailabilitySlot, 0, domain.CellCount)
	for _, weekday := range domain.Weekdays {
		for _, timeSlot := range domain.TimeSlots {
			slots = append(slots, domain.PairAvailabilitySlot{
				Weekday:          weekday,
				TimeSlot:         timeSlot,
				SelfAvailable:    self.Status(weekday, timeSlot) == domain.AvailabilityStatusAvailable,
				PartnerAvailable: partner.Status(weekday, timeSlot) == domain.AvailabilityStatusAvailable,
			})
		}
	}
	return slots
}

// BothAvailable reports whether a cell is open for both users.
func BothAvailable(cell domain.PairCell) bool {
	return cell.SelfAvailable && cell.PartnerAvailable
}
