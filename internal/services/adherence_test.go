package services

import (
	"errors"
	"testing"
	"time"

	"github.com/ternovka/medbell/internal/models"
)

type stubAdherenceReader struct {
	medicines []models.Medicine
	err       error
}

func (stub *stubAdherenceReader) ListByCaregiver(uint) ([]models.Medicine, error) {
	if stub.err != nil {
		return nil, stub.err
	}
	result := make([]models.Medicine, len(stub.medicines))
	copy(result, stub.medicines)
	return result, nil
}

func adherenceNow(t *testing.T) time.Time {
	t.Helper()
	// Sunday 2026-03-01, 09:00 UTC.
	return time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
}

func dailyMedicine(doseTime string, createdAt time.Time) models.Medicine {
	return models.Medicine{
		Name:         "med",
		DoseTime:     doseTime,
		ScheduleKind: models.ScheduleDaily,
		CreatedAt:    createdAt,
	}
}

func TestWeeklyReportPropagatesStorageError(t *testing.T) {
	service := NewAdherenceService(&stubAdherenceReader{err: errors.New("store down")}, time.UTC)
	if _, err := service.WeeklyReport(1, adherenceNow(t)); err == nil {
		t.Fatal("expected storage error to surface")
	}
}

func TestWeeklyReportCountsMedicinesNotDoses(t *testing.T) {
	now := adherenceNow(t)
	takenOften := dailyMedicine("07:00", now.AddDate(0, 0, -30))
	takenOften.TakenDates = []string{"2026-02-24", "2026-02-25", "2026-02-26", "2026-02-27", "2026-03-01"}

	service := NewAdherenceService(&stubAdherenceReader{medicines: []models.Medicine{takenOften}}, time.UTC)
	report, err := service.WeeklyReport(1, now)
	if err != nil {
		t.Fatalf("WeeklyReport() unexpected error: %v", err)
	}
	if report.TakenCount != 1 {
		t.Fatalf("TakenCount = %d, want 1 (medicines, not doses)", report.TakenCount)
	}
	if report.MissedCount != 0 {
		t.Fatalf("MissedCount = %d, want 0 (taken today)", report.MissedCount)
	}
}

func TestWeeklyReportTakenOutsideWindowNotCounted(t *testing.T) {
	now := adherenceNow(t)
	stale := dailyMedicine("07:00", now.AddDate(0, 0, -60))
	stale.TakenDates = []string{"2026-01-10", "2026-01-11"}

	service := NewAdherenceService(&stubAdherenceReader{medicines: []models.Medicine{stale}}, time.UTC)
	report, err := service.WeeklyReport(1, now)
	if err != nil {
		t.Fatalf("WeeklyReport() unexpected error: %v", err)
	}
	if report.TakenCount != 0 {
		t.Fatalf("TakenCount = %d, want 0 for stale history", report.TakenCount)
	}
	if report.TotalMedicines != 1 {
		t.Fatalf("TotalMedicines = %d, want 1 irrespective of window", report.TotalMedicines)
	}
}

func TestWeeklyReportMissedSameDayCheck(t *testing.T) {
	now := adherenceNow(t)

	missed := dailyMedicine("07:00", now.AddDate(0, 0, -2))

	notYetDue := dailyMedicine("11:00", now.AddDate(0, 0, -2))

	takenToday := dailyMedicine("07:00", now.AddDate(0, 0, -2))
	takenToday.TakenDates = []string{"2026-03-01"}

	createdBeforeWindow := dailyMedicine("07:00", now.AddDate(0, 0, -10))

	// Mon/Wed/Fri schedule is not due on a Sunday at all.
	notDueToday := models.Medicine{
		Name:         "weekday med",
		DoseTime:     "07:00",
		ScheduleKind: models.ScheduleWeekdays,
		ScheduleDays: []int{1, 3, 5},
		CreatedAt:    now.AddDate(0, 0, -2),
	}

	service := NewAdherenceService(&stubAdherenceReader{medicines: []models.Medicine{
		missed, notYetDue, takenToday, createdBeforeWindow, notDueToday,
	}}, time.UTC)

	report, err := service.WeeklyReport(1, now)
	if err != nil {
		t.Fatalf("WeeklyReport() unexpected error: %v", err)
	}
	if report.MissedCount != 1 {
		t.Fatalf("MissedCount = %d, want 1 (only the passed, untaken, in-window daily medicine)", report.MissedCount)
	}
	if report.TotalMedicines != 5 {
		t.Fatalf("TotalMedicines = %d, want 5", report.TotalMedicines)
	}
	if report.PeriodDays != ReportWindowDays {
		t.Fatalf("PeriodDays = %d, want %d", report.PeriodDays, ReportWindowDays)
	}
}

func TestWeeklyReportMissedDaysAgoButTakenSinceNotMissed(t *testing.T) {
	now := adherenceNow(t)
	recovered := dailyMedicine("07:00", now.AddDate(0, 0, -6))
	// Missed four days ago, taken yesterday and today.
	recovered.TakenDates = []string{"2026-02-28", "2026-03-01"}

	service := NewAdherenceService(&stubAdherenceReader{medicines: []models.Medicine{recovered}}, time.UTC)
	report, err := service.WeeklyReport(1, now)
	if err != nil {
		t.Fatalf("WeeklyReport() unexpected error: %v", err)
	}
	if report.MissedCount != 0 {
		t.Fatalf("MissedCount = %d, want 0", report.MissedCount)
	}
	if report.TakenCount != 1 {
		t.Fatalf("TakenCount = %d, want 1", report.TakenCount)
	}
}

func TestWeeklyReportOneTimeDueDatePassedStillEligible(t *testing.T) {
	now := adherenceNow(t)

	// Created inside the window with its only due date today; dose time has
	// passed without a taken entry. The creation date gates eligibility, not
	// the due date.
	oneTime := models.Medicine{
		Name:          "one shot",
		DoseTime:      "08:00",
		ScheduleKind:  models.ScheduleOneTime,
		ScheduleDates: []string{"2026-03-01"},
		CreatedAt:     now.AddDate(0, 0, -1),
	}

	service := NewAdherenceService(&stubAdherenceReader{medicines: []models.Medicine{oneTime}}, time.UTC)
	report, err := service.WeeklyReport(1, now)
	if err != nil {
		t.Fatalf("WeeklyReport() unexpected error: %v", err)
	}
	if report.MissedCount != 1 {
		t.Fatalf("MissedCount = %d, want 1", report.MissedCount)
	}
}
