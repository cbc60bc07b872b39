package services

import (
	"time"

	"github.com/ternovka/medbell/internal/models"
)

// ReportWindowDays is the trailing reporting window.
const ReportWindowDays = 7

type AdherenceMedicineReader interface {
	ListByCaregiver(caregiverID uint) ([]models.Medicine, error)
}

type WeeklyReport struct {
	TakenCount     int `json:"takenCount"`
	MissedCount    int `json:"missedCount"`
	TotalMedicines int `json:"totalMedicines"`
	PeriodDays     int `json:"periodDays"`
}

type AdherenceService struct {
	medicines AdherenceMedicineReader
	location  *time.Location
}

func NewAdherenceService(medicines AdherenceMedicineReader, location *time.Location) *AdherenceService {
	if location == nil {
		location = time.UTC
	}
	return &AdherenceService{
		medicines: medicines,
		location:  location,
	}
}

// WeeklyReport aggregates adherence for everything the caregiver manages over
// the trailing seven days.
//
// TakenCount counts medicines, not doses: a medicine contributes once when its
// most recent taken date falls inside the window. MissedCount is a same-day
// check only: due today, dose time already behind the current minute, created
// inside the window, and no taken entry for today. A medicine missed earlier
// in the window but taken since is not missed now. TotalMedicines ignores the
// window entirely.
func (service *AdherenceService) WeeklyReport(caregiverID uint, now time.Time) (WeeklyReport, error) {
	medicines, err := service.medicines.ListByCaregiver(caregiverID)
	if err != nil {
		return WeeklyReport{}, err
	}

	windowStart := now.AddDate(0, 0, -ReportWindowDays)
	windowStartDay := DateAtLocation(windowStart, service.location)
	today := DateKey(now, service.location)

	report := WeeklyReport{
		TotalMedicines: len(medicines),
		PeriodDays:     ReportWindowDays,
	}

	for _, medicine := range medicines {
		if latest := LatestDateKey(medicine.TakenDates); latest != "" {
			if latestDay, ok := ParseDateKey(latest, service.location); ok && !latestDay.Before(windowStartDay) {
				report.TakenCount++
			}
		}

		if medicine.CreatedAt.Before(windowStart) {
			continue
		}
		if !ValidDoseTime(medicine.DoseTime) || !DoseTimePassed(medicine.DoseTime, now, service.location) {
			continue
		}
		if !IsDueOn(MedicineSchedule(medicine), now, service.location) {
			continue
		}
		if TakenOn(medicine, today) {
			continue
		}
		report.MissedCount++
	}

	return report, nil
}
