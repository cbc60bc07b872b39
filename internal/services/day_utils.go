package services

import "time"

const (
	dateKeyLayout  = "2006-01-02"
	doseTimeLayout = "15:04"
)

func DateAtLocation(value time.Time, location *time.Location) time.Time {
	if location == nil {
		location = time.UTC
	}
	localized := value.In(location)
	year, month, day := localized.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, location)
}

// DateKey renders a timestamp as the YYYY-MM-DD calendar date it falls on.
func DateKey(value time.Time, location *time.Location) string {
	return DateAtLocation(value, location).Format(dateKeyLayout)
}

// ParseDateKey returns local midnight of a YYYY-MM-DD date.
func ParseDateKey(value string, location *time.Location) (time.Time, bool) {
	if location == nil {
		location = time.UTC
	}
	parsed, err := time.ParseInLocation(dateKeyLayout, value, location)
	if err != nil {
		return time.Time{}, false
	}
	return parsed, true
}

// MinuteOfDay renders a timestamp as HH:MM local time, the resolution alerts
// are matched at.
func MinuteOfDay(value time.Time, location *time.Location) string {
	if location == nil {
		location = time.UTC
	}
	return value.In(location).Format(doseTimeLayout)
}

func ValidDoseTime(value string) bool {
	_, err := time.Parse(doseTimeLayout, value)
	return err == nil && len(value) == len(doseTimeLayout)
}

// DoseTimePassed reports whether a dose time is strictly earlier than the
// current minute of day. HH:MM strings order lexicographically.
func DoseTimePassed(doseTime string, now time.Time, location *time.Location) bool {
	return doseTime < MinuteOfDay(now, location)
}

func ContainsDateKey(dates []string, needle string) bool {
	for _, date := range dates {
		if date == needle {
			return true
		}
	}
	return false
}

// LatestDateKey returns the most recent date in an unordered date set, or ""
// for an empty set.
func LatestDateKey(dates []string) string {
	latest := ""
	for _, date := range dates {
		if date > latest {
			latest = date
		}
	}
	return latest
}
