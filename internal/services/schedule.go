package services

import (
	"errors"
	"sort"
	"time"

	"github.com/ternovka/medbell/internal/models"
)

var ErrInvalidSchedule = errors.New("invalid schedule")

// Schedule is a validated dosing calendar. Construct through the schedule
// constructors or ParseSchedule; IsDueOn may assume a well-formed value.
type Schedule struct {
	Kind     string
	Weekdays []int
	Dates    []string
}

func DailySchedule() Schedule {
	return Schedule{Kind: models.ScheduleDaily}
}

// WeekdaySchedule is due on the given weekdays, 0..6 with Sunday = 0. The set
// must be non-empty; duplicates are collapsed.
func WeekdaySchedule(days []int) (Schedule, error) {
	if len(days) == 0 {
		return Schedule{}, ErrInvalidSchedule
	}
	seen := make(map[int]bool, len(days))
	unique := make([]int, 0, len(days))
	for _, day := range days {
		if day < 0 || day > 6 {
			return Schedule{}, ErrInvalidSchedule
		}
		if seen[day] {
			continue
		}
		seen[day] = true
		unique = append(unique, day)
	}
	sort.Ints(unique)
	return Schedule{Kind: models.ScheduleWeekdays, Weekdays: unique}, nil
}

func OneTimeSchedule(date string) (Schedule, error) {
	if _, ok := ParseDateKey(date, time.UTC); !ok {
		return Schedule{}, ErrInvalidSchedule
	}
	return Schedule{Kind: models.ScheduleOneTime, Dates: []string{date}}, nil
}

// CustomDatesSchedule is due on each listed date. The set must be non-empty;
// duplicates are collapsed and the result is kept sorted.
func CustomDatesSchedule(dates []string) (Schedule, error) {
	if len(dates) == 0 {
		return Schedule{}, ErrInvalidSchedule
	}
	seen := make(map[string]bool, len(dates))
	unique := make([]string, 0, len(dates))
	for _, date := range dates {
		if _, ok := ParseDateKey(date, time.UTC); !ok {
			return Schedule{}, ErrInvalidSchedule
		}
		if seen[date] {
			continue
		}
		seen[date] = true
		unique = append(unique, date)
	}
	sort.Strings(unique)
	return Schedule{Kind: models.ScheduleCustomDates, Dates: unique}, nil
}

// ParseSchedule validates raw schedule fields as they arrive from callers.
func ParseSchedule(kind string, weekdays []int, dates []string) (Schedule, error) {
	switch kind {
	case models.ScheduleDaily, "":
		return DailySchedule(), nil
	case models.ScheduleWeekdays:
		return WeekdaySchedule(weekdays)
	case models.ScheduleOneTime:
		if len(dates) != 1 {
			return Schedule{}, ErrInvalidSchedule
		}
		return OneTimeSchedule(dates[0])
	case models.ScheduleCustomDates:
		return CustomDatesSchedule(dates)
	default:
		return Schedule{}, ErrInvalidSchedule
	}
}

// MedicineSchedule rebuilds the schedule value persisted on a medicine record.
func MedicineSchedule(medicine models.Medicine) Schedule {
	return Schedule{
		Kind:     medicine.ScheduleKind,
		Weekdays: medicine.ScheduleDays,
		Dates:    medicine.ScheduleDates,
	}
}

// IsDueOn reports whether the schedule is active on the calendar date the
// given timestamp falls on. Pure; evaluates the same date the same way on
// every call.
func IsDueOn(schedule Schedule, day time.Time, location *time.Location) bool {
	switch schedule.Kind {
	case models.ScheduleDaily:
		return true
	case models.ScheduleWeekdays:
		weekday := int(DateAtLocation(day, location).Weekday())
		for _, scheduled := range schedule.Weekdays {
			if scheduled == weekday {
				return true
			}
		}
		return false
	case models.ScheduleOneTime, models.ScheduleCustomDates:
		return ContainsDateKey(schedule.Dates, DateKey(day, location))
	default:
		return false
	}
}
