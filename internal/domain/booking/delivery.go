package booking

import "time"

const (
	DefaultDeliveryWindowDays = 14
	DateLayout                = "2006-01-02"
)

// AvailableDeliveryDates returns the working days within windowDays calendar
// days after today. Today itself is never offered.
func AvailableDeliveryDates(today time.Time, windowDays int) []time.Time {
	start := truncateDay(today)
	dates := make([]time.Time, 0, windowDays)
	for i := 1; i <= windowDays; i++ {
		d := start.AddDate(0, 0, i)
		if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
			continue
		}
		dates = append(dates, d)
	}
	return dates
}

func IsDeliveryDateAvailable(date, today time.Time, windowDays int) bool {
	day := truncateDay(date)
	for _, d := range AvailableDeliveryDates(today, windowDays) {
		if d.Equal(day) {
			return true
		}
	}
	return false
}

func ParseDate(raw string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, raw, time.UTC)
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
