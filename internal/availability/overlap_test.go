package availability

import (
	"testing"
	"time"

	"mealmatch/internal/domain"
)

var saturday = time.Date(2026, time.October, 17, 10, 0, 0, 0, time.UTC)

func TestBuildPairCellsEmpty(t *testing.T) {
	cells := BuildPairCells(Next7DaysFrom(saturday), nil)
	if len(cells) != WindowDays*len(domain.TimeSlots) {
		t.Fatalf("expected 14 cells, got %d", len(cells))
	}
	for _, cell := range cells {
		if cell.SelfAvailable || cell.PartnerAvailable {
			t.Errorf("expected empty cell, got %+v", cell)
		}
	}
}

func TestBuildPairCellsOrder(t *testing.T) {
	cells := BuildPairCells(Next7DaysFrom(saturday), []domain.PairAvailabilitySlot{})

	i := 0
	for day := 0; day < WindowDays; day++ {
		for _, timeSlot := range domain.TimeSlots {
			if cells[i].DayIndex != day || cells[i].TimeSlot != timeSlot {
				t.Fatalf("cell %d = %d/%s, want %d/%s", i, cells[i].DayIndex, cells[i].TimeSlot, day, timeSlot)
			}
			i++
		}
	}
}

func TestBuildPairCellsFirstDuplicateWins(t *testing.T) {
	days := Next7DaysFrom(time.Date(2026, time.October, 19, 10, 0, 0, 0, time.UTC))
	slots := []domain.PairAvailabilitySlot{
		{Weekday: domain.WeekdayMon, TimeSlot: domain.TimeSlotDay, SelfAvailable: true, PartnerAvailable: false},
		{Weekday: domain.WeekdayMon, TimeSlot: domain.TimeSlotDay, SelfAvailable: false, PartnerAvailable: true},
	}

	cells := BuildPairCells(days, slots)
	first := cells[0]
	if first.DayIndex != 0 || first.TimeSlot != domain.TimeSlotDay {
		t.Fatalf("unexpected first cell %+v", first)
	}
	if !first.SelfAvailable || first.PartnerAvailable {
		t.Errorf("expected first fact to win, got %+v", first)
	}
}

func TestBuildPairCellsMatchesByWeekday(t *testing.T) {
	days := Next7DaysFrom(saturday)
	slots := []domain.PairAvailabilitySlot{
		{Weekday: domain.WeekdayTue, TimeSlot: domain.TimeSlotNight, SelfAvailable: true, PartnerAvailable: true},
	}

	cells := BuildPairCells(days, slots)
	for _, cell := range cells {
		isTuesdayNight := days[cell.DayIndex].Weekday == domain.WeekdayTue && cell.TimeSlot == domain.TimeSlotNight
		if BothAvailable(cell) != isTuesdayNight {
			t.Errorf("cell %+v: expected both available = %v", cell, isTuesdayNight)
		}
	}
	// Saturday start puts Tuesday at index 3.
	if !BothAvailable(cells[3*2+1]) {
		t.Errorf("expected day 3 NIGHT to be open, got %+v", cells[3*2+1])
	}
}

func TestPairSlotsFromGrids(t *testing.T) {
	self := SlotsToGrid([]domain.AvailabilitySlot{
		{Weekday: domain.WeekdayMon, TimeSlot: domain.TimeSlotDay, Status: domain.AvailabilityStatusAvailable},
		{Weekday: domain.WeekdayWed, TimeSlot: domain.TimeSlotNight, Status: domain.AvailabilityStatusMeetOnly},
	})
	partner := domain.AvailabilityGrid{
		domain.WeekdayMon: {domain.TimeSlotDay: domain.AvailabilityStatusAvailable},
	}

	slots := PairSlotsFromGrids(self, partner)
	if len(slots) != domain.CellCount {
		t.Fatalf("expected %d slots, got %d", domain.CellCount, len(slots))
	}

	monDay := slots[0]
	if !monDay.SelfAvailable || !monDay.PartnerAvailable {
		t.Errorf("expected MON/DAY open for both, got %+v", monDay)
	}

	wedNight := slots[5]
	if wedNight.Weekday != domain.WeekdayWed || wedNight.TimeSlot != domain.TimeSlotNight {
		t.Fatalf("unexpected slot order: %+v", wedNight)
	}
	if wedNight.SelfAvailable {
		t.Error("MEET_ONLY must not count as available")
	}
}
