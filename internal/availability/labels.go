package availability

import (
	"mealmatch/internal/domain"
)

var weekdayShortLabels = map[domain.Weekday]string{
	domain.WeekdayMon: "月",
	domain.WeekdayTue: "火",
	domain.WeekdayWed: "水",
	domain.WeekdayThu: "木",
	domain.WeekdayFri: "金",
	domain.WeekdaySat: "土",
	domain.WeekdaySun: "日",
}

var weekdayLabels = map[domain.Weekday]string{
	domain.WeekdayMon: "月曜日",
	domain.WeekdayTue: "火曜日",
	domain.WeekdayWed: "水曜日",
	domain.WeekdayThu: "木曜日",
	domain.WeekdayFri: "金曜日",
	domain.WeekdaySat: "土曜日",
	domain.WeekdaySun: "日曜日",
}

var timeSlotLabels = map[domain.TimeSlot]string{
	domain.TimeSlotDay:   "昼",
	domain.TimeSlotNight: "夜",
}

var mealTimeSlotLabels = map[domain.MealTimeSlot]string{
	domain.MealTimeSlotLunch:  "ランチ",
	domain.MealTimeSlotDinner: "ディナー",
}

var statusLabels = map[domain.AvailabilityStatus]string{
	domain.AvailabilityStatusAvailable:   "参加できる",
	domain.AvailabilityStatusUnavailable: "参加できない",
	domain.AvailabilityStatusMeetOnly:    "会うだけ",
}

// WeekdayShortLabel returns the one-character Japanese weekday, or the raw
// value when it is unknown.
func WeekdayShortLabel(weekday domain.Weekday) string {
	if label, ok := weekdayShortLabels[weekday]; ok {
		return label
	}
	return string(weekday)
}

func WeekdayLabel(weekday domain.Weekday) string {
	if label, ok := weekdayLabels[weekday]; ok {
		return label
	}
	return string(weekday)
}

func TimeSlotLabel(timeSlot domain.TimeSlot) string {
	if label, ok := timeSlotLabels[timeSlot]; ok {
		return label
	}
	return string(timeSlot)
}

func MealTimeSlotLabel(mealTimeSlot domain.MealTimeSlot) string {
	if label, ok := mealTimeSlotLabels[mealTimeSlot]; ok {
		return label
	}
	return string(mealTimeSlot)
}

func StatusLabel(status domain.AvailabilityStatus) string {
	if label, ok := statusLabels[status]; ok {
		return label
	}
	return string(status)
}

// MealTimeSlotToTimeSlot maps LUNCH to DAY and DINNER to NIGHT.
func MealTimeSlotToTimeSlot(mealTimeSlot domain.MealTimeSlot) (domain.TimeSlot, bool) {
	switch mealTimeSlot {
	case domain.MealTimeSlotLunch:
		return domain.TimeSlotDay, true
	case domain.MealTimeSlotDinner:
		return domain.TimeSlotNight, true
	}
	return "", false
}

// ResolveTimeSlot picks the time slot a request addresses, given either the
// availability name or the group-meal name. When both are set they must agree.
func ResolveTimeSlot(timeSlot domain.TimeSlot, mealTimeSlot domain.MealTimeSlot) (domain.TimeSlot, error) {
	if mealTimeSlot == "" {
		if !timeSlot.IsValid() {
			return "", domain.ErrInvalidTimeSlot
		}
		return timeSlot, nil
	}

	mapped, ok := MealTimeSlotToTimeSlot(mealTimeSlot)
	if !ok || (timeSlot != "" && timeSlot != mapped) {
		return "", domain.ErrInvalidTimeSlot
	}
	return mapped, nil
}

func TimeSlotToMealTimeSlot(timeSlot domain.TimeSlot) (domain.MealTimeSlot, bool) {
	switch timeSlot {
	case domain.TimeSlotDay:
		return domain.MealTimeSlotLunch, true
	case domain.TimeSlotNight:
		return domain.MealTimeSlotDinner, true
	}
	return "", false
}

type Label struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Short string `json:"short,omitempty"`
}

type LabelTable struct {
	Weekdays      []Label `json:"weekdays"`
	TimeSlots     []Label `json:"timeSlots"`
	MealTimeSlots []Label `json:"mealTimeSlots"`
	Statuses      []Label `json:"statuses"`
}

// Labels returns every label table in display order.
func Labels() LabelTable {
	table := LabelTable{
		Weekdays:      make([]Label, 0, len(domain.Weekdays)),
		TimeSlots:     make([]Label, 0, len(domain.TimeSlots)),
		MealTimeSlots: make([]Label, 0, len(domain.MealTimeSlots)),
		Statuses:      make([]Label, 0, len(domain.AvailabilityStatuses)),
	}
	for _, weekday := range domain.Weekdays {
		table.Weekdays = append(table.Weekdays, Label{
			Value: string(weekday),
			Label: WeekdayLabel(weekday),
			Short: WeekdayShortLabel(weekday),
		})
	}
	for _, timeSlot := range domain.TimeSlots {
		table.TimeSlots = append(table.TimeSlots, Label{Value: string(timeSlot), Label: TimeSlotLabel(timeSlot)})
	}
	for _, mealTimeSlot := range domain.MealTimeSlots {
		table.MealTimeSlots = append(table.MealTimeSlots, Label{Value: string(mealTimeSlot), Label: MealTimeSlotLabel(mealTimeSlot)})
	}
	for _, status := range domain.AvailabilityStatuses {
		table.Statuses = append(table.Statuses, Label{Value: string(status), Label: StatusLabel(status)})
	}
	return table
}
