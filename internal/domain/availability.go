package domain

import (
	"errors"
	"time"
)

// Weekday is a day of the recurring availability week.
type Weekday string

const (
	WeekdayMon Weekday = "MON"
	WeekdayTue Weekday = "TUE"
	WeekdayWed Weekday = "WED"
	WeekdayThu Weekday = "THU"
	WeekdayFri Weekday = "FRI"
	WeekdaySat Weekday = "SAT"
	WeekdaySun Weekday = "SUN"
)

// TimeSlot is a half of the day in the availability domain.
type TimeSlot string

const (
	TimeSlotDay   TimeSlot = "DAY"
	TimeSlotNight TimeSlot = "NIGHT"
)

// MealTimeSlot is the group-meal counterpart of TimeSlot.
type MealTimeSlot string

const (
	MealTimeSlotLunch  MealTimeSlot = "LUNCH"
	MealTimeSlotDinner MealTimeSlot = "DINNER"
)

type AvailabilityStatus string

const (
	AvailabilityStatusAvailable   AvailabilityStatus = "AVAILABLE"
	AvailabilityStatusUnavailable AvailabilityStatus = "UNAVAILABLE"
	// AvailabilityStatusMeetOnly is accepted on input but never produced by default fill.
	AvailabilityStatusMeetOnly AvailabilityStatus = "MEET_ONLY"
)

// Weekdays is the display and iteration order of the week, Monday first.
var Weekdays = [...]Weekday{
	WeekdayMon,
	WeekdayTue,
	WeekdayWed,
	WeekdayThu,
	WeekdayFri,
	WeekdaySat,
	WeekdaySun,
}

var TimeSlots = [...]TimeSlot{TimeSlotDay, TimeSlotNight}

var MealTimeSlots = [...]MealTimeSlot{MealTimeSlotLunch, MealTimeSlotDinner}

var AvailabilityStatuses = [...]AvailabilityStatus{
	AvailabilityStatusAvailable,
	AvailabilityStatusUnavailable,
	AvailabilityStatusMeetOnly,
}

// CellCount is the number of (weekday, time slot) cells in a full week.
const CellCount = len(Weekdays) * len(TimeSlots)

var (
	ErrInvalidWeekday  = errors.New("invalid weekday")
	ErrInvalidTimeSlot = errors.New("invalid time slot")
	ErrInvalidStatus   = errors.New("invalid availability status")
	ErrSelfPair        = errors.New("partner must be a different user")
	ErrReservedStatus  = errors.New("availability status is reserved")
)

func (w Weekday) IsValid() bool {
	for _, v := range Weekdays {
		if v == w {
			return true
		}
	}
	return false
}

func (t TimeSlot) IsValid() bool {
	return t == TimeSlotDay || t == TimeSlotNight
}

func (m MealTimeSlot) IsValid() bool {
	return m == MealTimeSlotLunch || m == MealTimeSlotDinner
}

func (s AvailabilityStatus) IsValid() bool {
	switch s {
	case AvailabilityStatusAvailable, AvailabilityStatusUnavailable, AvailabilityStatusMeetOnly:
		return true
	}
	return false
}

// IsWritable reports whether users may set the status. MEET_ONLY is readable
// but reserved.
func (s AvailabilityStatus) IsWritable() bool {
	return s == AvailabilityStatusAvailable || s == AvailabilityStatusUnavailable
}

// AvailabilitySlot is one entry of the sparse wire format. Entries are not
// validated on input; the codec drops the ones it cannot place.
type AvailabilitySlot struct {
	Weekday  Weekday            `json:"weekday"`
	TimeSlot TimeSlot           `json:"timeSlot"`
	Status   AvailabilityStatus `json:"status"`
}

// AvailabilityGrid is the dense weekday x time slot form. Rows or cells may be
// missing on grids that did not come from the codec; readers default them to
// UNAVAILABLE.
type AvailabilityGrid map[Weekday]map[TimeSlot]AvailabilityStatus

// Status returns the cell value, UNAVAILABLE when the row or cell is missing.
func (g AvailabilityGrid) Status(weekday Weekday, timeSlot TimeSlot) AvailabilityStatus {
	row, ok := g[weekday]
	if !ok || row == nil {
		return AvailabilityStatusUnavailable
	}
	status, ok := row[timeSlot]
	if !ok || status == "" {
		return AvailabilityStatusUnavailable
	}
	return status
}

// PairAvailabilitySlot is the overlap fact for one recurring cell.
type PairAvailabilitySlot struct {
	Weekday          Weekday  `json:"weekday"`
	TimeSlot         TimeSlot `json:"timeSlot"`
	SelfAvailable    bool     `json:"selfAvailable"`
	PartnerAvailable bool     `json:"partnerAvailable"`
}

// Next7Day aligns a calendar date in the rolling window with its weekday.
type Next7Day struct {
	Date         time.Time `json:"date"`
	DayLabel     string    `json:"dayLabel"`
	WeekdayLabel string    `json:"weekdayLabel"`
	Weekday      Weekday   `json:"weekday"`
}

type PairCell struct {
	DayIndex         int      `json:"dayIndex"`
	TimeSlot         TimeSlot `json:"timeSlot"`
	SelfAvailable    bool     `json:"selfAvailable"`
	PartnerAvailable bool     `json:"partnerAvailable"`
}

type PairWindow struct {
	PartnerID int64      `json:"partnerId"`
	Days      []Next7Day `json:"days"`
	Cells     []PairCell `json:"cells"`
	// Matches counts cells open for both users.
	Matches int `json:"matches"`
}

type UserAvailability struct {
	UserID    int64              `json:"userId"`
	Slots     []AvailabilitySlot `json:"slots"`
	UpdatedAt *time.Time         `json:"updatedAt,omitempty"`
}

type ReplaceAvailabilityDTO struct {
	Slots []AvailabilitySlot `json:"slots" binding:"required"`
}

// UpdateCellDTO addresses the cell by timeSlot or by its group-meal name
// mealTimeSlot; one of them is required.
type UpdateCellDTO struct {
	Weekday      Weekday            `json:"weekday" binding:"required,weekday"`
	TimeSlot     TimeSlot           `json:"timeSlot,omitempty" binding:"omitempty,timeslot"`
	MealTimeSlot MealTimeSlot       `json:"mealTimeSlot,omitempty" binding:"omitempty,meal_timeslot"`
	Status       AvailabilityStatus `json:"status" binding:"required,availability_status"`
}

type ToggleCellDTO struct {
	Weekday      Weekday      `json:"weekday" binding:"required,weekday"`
	TimeSlot     TimeSlot     `json:"timeSlot,omitempty" binding:"omitempty,timeslot"`
	MealTimeSlot MealTimeSlot `json:"mealTimeSlot,omitempty" binding:"omitempty,meal_timeslot"`
}

// AvailabilityChangedEvent is published after a user's grid is stored.
type AvailabilityChangedEvent struct {
	ID        string             `json:"id"`
	UserID    int64              `json:"userId"`
	Slots     []AvailabilitySlot `json:"slots"`
	ChangedAt time.Time          `json:"changedAt"`
}
