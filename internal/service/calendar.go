package service

import (
	"context"
	"fmt"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/teambition/rrule-go"
	"go.uber.org/zap"

	"mealmatch/internal/availability"
	"mealmatch/internal/domain"
)

type slotHours struct {
	startHour int
	endHour   int
}

// Meal hours used for exported events.
var timeSlotHours = map[domain.TimeSlot]slotHours{
	domain.TimeSlotDay:   {startHour: 11, endHour: 14},
	domain.TimeSlotNight: {startHour: 18, endHour: 22},
}

var rruleWeekdays = map[domain.Weekday]rrule.Weekday{
	domain.WeekdayMon: rrule.MO,
	domain.WeekdayTue: rrule.TU,
	domain.WeekdayWed: rrule.WE,
	domain.WeekdayThu: rrule.TH,
	domain.WeekdayFri: rrule.FR,
	domain.WeekdaySat: rrule.SA,
	domain.WeekdaySun: rrule.SU,
}

// ExportCalendar renders every AVAILABLE cell as a weekly recurring event,
// starting from its first occurrence on or after today. Times are written in
// UTC so the calendar needs no VTIMEZONE; BYDAY follows the UTC weekday of
// the start, which differs from the local one when the meal crosses midnight
// UTC.
func (s *AvailabilityServiceImpl) ExportCalendar(ctx context.Context, userID int64) ([]byte, error) {
	grid, err := s.GetGrid(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	loc := now.Location()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)

	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId("-//mealmatch//availability//JA")
	cal.SetName("mealmatch availability")

	for _, weekday := range domain.Weekdays {
		first, err := firstOccurrence(weekday, today)
		if err != nil {
			s.logger.Error("failed to build recurrence", zap.String("weekday", string(weekday)), zap.Error(err))
			return nil, err
		}

		for _, timeSlot := range domain.TimeSlots {
			if grid.Status(weekday, timeSlot) != domain.AvailabilityStatusAvailable {
				continue
			}

			hours := timeSlotHours[timeSlot]
			start := time.Date(first.Year(), first.Month(), first.Day(), hours.startHour, 0, 0, 0, loc)
			end := time.Date(first.Year(), first.Month(), first.Day(), hours.endHour, 0, 0, 0, loc)

			event := cal.AddEvent(fmt.Sprintf("%d-%s-%s@mealmatch", userID, weekday, timeSlot))
			event.SetDtStampTime(now)
			event.SetStartAt(start)
			event.SetEndAt(end)
			event.SetSummary(fmt.Sprintf("%s %s", availability.WeekdayLabel(weekday), mealLabel(timeSlot)))

			option := rrule.ROption{
				Freq:      rrule.WEEKLY,
				Byweekday: []rrule.Weekday{rruleWeekdays[availability.WeekdayOf(start.UTC())]},
			}
			event.AddRrule(option.RRuleString())
		}
	}

	return []byte(cal.Serialize()), nil
}

// firstOccurrence returns the first date on or after from that falls on
// weekday.
func firstOccurrence(weekday domain.Weekday, from time.Time) (time.Time, error) {
	rule, err := rrule.NewRRule(rrule.ROption{
		Freq:      rrule.WEEKLY,
		Byweekday: []rrule.Weekday{rruleWeekdays[weekday]},
		Dtstart:   from,
		Count:     1,
	})
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to build recurrence for %s: %w", weekday, err)
	}

	occurrences := rule.All()
	if len(occurrences) == 0 {
		return time.Time{}, fmt.Errorf("no occurrence for %s", weekday)
	}
	return occurrences[0], nil
}

func mealLabel(timeSlot domain.TimeSlot) string {
	if meal, ok := availability.TimeSlotToMealTimeSlot(timeSlot); ok {
		return availability.MealTimeSlotLabel(meal)
	}
	return availability.TimeSlotLabel(timeSlot)
}
