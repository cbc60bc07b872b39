package services

import (
	"errors"
	"testing"
	"time"

	"github.com/ternovka/medbell/internal/models"
)

func mustScheduleDay(t *testing.T, value string) time.Time {
	t.Helper()
	day, ok := ParseDateKey(value, time.UTC)
	if !ok {
		t.Fatalf("parse day %q", value)
	}
	return day
}

func TestWeekdayScheduleValidation(t *testing.T) {
	tests := []struct {
		name    string
		days    []int
		wantErr bool
	}{
		{name: "empty set", days: nil, wantErr: true},
		{name: "out of range high", days: []int{7}, wantErr: true},
		{name: "out of range low", days: []int{-1}, wantErr: true},
		{name: "valid single", days: []int{1}},
		{name: "valid full week", days: []int{0, 1, 2, 3, 4, 5, 6}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := WeekdaySchedule(tt.days)
			if tt.wantErr && !errors.Is(err, ErrInvalidSchedule) {
				t.Fatalf("WeekdaySchedule(%v) error = %v, want ErrInvalidSchedule", tt.days, err)
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("WeekdaySchedule(%v) unexpected error: %v", tt.days, err)
			}
		})
	}
}

func TestWeekdayScheduleCollapsesDuplicates(t *testing.T) {
	schedule, err := WeekdaySchedule([]int{5, 1, 5, 1})
	if err != nil {
		t.Fatalf("WeekdaySchedule() unexpected error: %v", err)
	}
	if len(schedule.Weekdays) != 2 || schedule.Weekdays[0] != 1 || schedule.Weekdays[1] != 5 {
		t.Fatalf("expected sorted unique weekdays [1 5], got %v", schedule.Weekdays)
	}
}

func TestCustomDatesScheduleValidation(t *testing.T) {
	if _, err := CustomDatesSchedule(nil); !errors.Is(err, ErrInvalidSchedule) {
		t.Fatalf("empty custom dates: error = %v, want ErrInvalidSchedule", err)
	}
	if _, err := CustomDatesSchedule([]string{"not-a-date"}); !errors.Is(err, ErrInvalidSchedule) {
		t.Fatalf("malformed custom date: error = %v, want ErrInvalidSchedule", err)
	}

	schedule, err := CustomDatesSchedule([]string{"2026-03-02", "2026-03-01", "2026-03-02"})
	if err != nil {
		t.Fatalf("CustomDatesSchedule() unexpected error: %v", err)
	}
	if len(schedule.Dates) != 2 || schedule.Dates[0] != "2026-03-01" || schedule.Dates[1] != "2026-03-02" {
		t.Fatalf("expected sorted unique dates, got %v", schedule.Dates)
	}
}

func TestParseScheduleDefaultsToDaily(t *testing.T) {
	schedule, err := ParseSchedule("", nil, nil)
	if err != nil {
		t.Fatalf("ParseSchedule() unexpected error: %v", err)
	}
	if schedule.Kind != models.ScheduleDaily {
		t.Fatalf("expected daily schedule, got %q", schedule.Kind)
	}

	if _, err := ParseSchedule("every_other_day", nil, nil); !errors.Is(err, ErrInvalidSchedule) {
		t.Fatalf("unknown kind: error = %v, want ErrInvalidSchedule", err)
	}
	if _, err := ParseSchedule(models.ScheduleOneTime, nil, []string{"2026-01-01", "2026-01-02"}); !errors.Is(err, ErrInvalidSchedule) {
		t.Fatalf("one-time with two dates: error = %v, want ErrInvalidSchedule", err)
	}
}

func TestIsDueOnDaily(t *testing.T) {
	schedule := DailySchedule()
	for offset := 0; offset < 10; offset++ {
		day := mustScheduleDay(t, "2026-02-01").AddDate(0, 0, offset)
		if !IsDueOn(schedule, day, time.UTC) {
			t.Fatalf("daily schedule not due on %s", day.Format("2006-01-02"))
		}
	}
}

func TestIsDueOnOneTime(t *testing.T) {
	schedule, err := OneTimeSchedule("2026-02-14")
	if err != nil {
		t.Fatalf("OneTimeSchedule() unexpected error: %v", err)
	}

	if !IsDueOn(schedule, mustScheduleDay(t, "2026-02-14"), time.UTC) {
		t.Fatal("one-time schedule not due on its own date")
	}
	for _, other := range []string{"2026-02-13", "2026-02-15", "2027-02-14"} {
		if IsDueOn(schedule, mustScheduleDay(t, other), time.UTC) {
			t.Fatalf("one-time schedule due on %s", other)
		}
	}
}

func TestIsDueOnWeekdaysAcrossFullWeek(t *testing.T) {
	// Mon/Wed/Fri; 2026-03-02 is a Monday.
	schedule, err := WeekdaySchedule([]int{1, 3, 5})
	if err != nil {
		t.Fatalf("WeekdaySchedule() unexpected error: %v", err)
	}

	monday := mustScheduleDay(t, "2026-03-02")
	wantDue := map[time.Weekday]bool{
		time.Monday:    true,
		time.Wednesday: true,
		time.Friday:    true,
	}

	for offset := 0; offset < 14; offset++ {
		day := monday.AddDate(0, 0, offset)
		want := wantDue[day.Weekday()]
		if got := IsDueOn(schedule, day, time.UTC); got != want {
			t.Fatalf("IsDueOn(%s %s) = %v, want %v", day.Weekday(), day.Format("2006-01-02"), got, want)
		}
	}
}

func TestIsDueOnCustomDates(t *testing.T) {
	schedule, err := CustomDatesSchedule([]string{"2026-04-01", "2026-04-15"})
	if err != nil {
		t.Fatalf("CustomDatesSchedule() unexpected error: %v", err)
	}

	if !IsDueOn(schedule, mustScheduleDay(t, "2026-04-15"), time.UTC) {
		t.Fatal("custom schedule not due on listed date")
	}
	if IsDueOn(schedule, mustScheduleDay(t, "2026-04-02"), time.UTC) {
		t.Fatal("custom schedule due on unlisted date")
	}
}

func TestIsDueOnUsesLocalCalendarDate(t *testing.T) {
	location, err := time.LoadLocation("Europe/Moscow")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}

	schedule, err := OneTimeSchedule("2026-02-15")
	if err != nil {
		t.Fatalf("OneTimeSchedule() unexpected error: %v", err)
	}

	// 22:30 UTC on the 14th is already the 15th in Moscow.
	lateEvening := time.Date(2026, 2, 14, 22, 30, 0, 0, time.UTC)
	if !IsDueOn(schedule, lateEvening, location) {
		t.Fatal("expected due for local calendar date")
	}
	if IsDueOn(schedule, lateEvening, time.UTC) {
		t.Fatal("expected not due for UTC calendar date")
	}
}
