package availability

import (
	"strconv"
	"time"

	"mealmatch/internal/domain"
)

// WindowDays is the length of the rolling overlap window.
const WindowDays = 7

// dayIndexWeekdays follows time.Weekday numbering, Sunday = 0.
var dayIndexWeekdays = [...]domain.Weekday{
	domain.WeekdaySun,
	domain.WeekdayMon,
	domain.WeekdayTue,
	domain.WeekdayWed,
	domain.WeekdayThu,
	domain.WeekdayFri,
	domain.WeekdaySat,
}

// WeekdayFromDayIndex maps a Sunday-based day index to a Weekday. Out of range
// indexes map to SUN.
func WeekdayFromDayIndex(dayIndex int) domain.Weekday {
	if dayIndex < 0 || dayIndex >= len(dayIndexWeekdays) {
		return domain.WeekdaySun
	}
	return dayIndexWeekdays[dayIndex]
}

func WeekdayOf(t time.Time) domain.Weekday {
	return WeekdayFromDayIndex(int(t.Weekday()))
}

// Clock is the time source for the rolling window.
type Clock interface {
	Now() time.Time
}

type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time {
	return f()
}

// SystemClock reads the local wall clock.
var SystemClock Clock = ClockFunc(time.Now)

// LocationClock reads the wall clock in loc.
func LocationClock(loc *time.Location) Clock {
	return ClockFunc(func() time.Time {
		return time.Now().In(loc)
	})
}

// Next7Days returns today and the following six days according to clock.
// Every call reads the clock again, so callers that need a stable window for
// one view should call it once and pass the result along.
func Next7Days(clock Clock) []domain.Next7Day {
	if clock == nil {
		clock = SystemClock
	}
	return Next7DaysFrom(clock.Now())
}

// Next7DaysFrom builds the window starting at the calendar day of now, in
// now's location. Each date is midnight of that day.
func Next7DaysFrom(now time.Time) []domain.Next7Day {
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	days := make([]domain.Next7Day, 0, WindowDays)
	for i := 0; i < WindowDays; i++ {
		date := start.AddDate(0, 0, i)
		weekday := WeekdayOf(date)
		days = append(days, domain.Next7Day{
			Date:         date,
			DayLabel:     strconv.Itoa(date.Day()),
			WeekdayLabel: WeekdayShortLabel(weekday),
			Weekday:      weekday,
		})
	}
	return days
}
