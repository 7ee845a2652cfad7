package timezone

import (
	"fmt"
	"time"
)

var Location *time.Location

func init() {
	var err error
	Location, err = time.LoadLocation("Asia/Shanghai")
	if err != nil {
		// hosts without tzdata, China has no DST
		Location = time.FixedZone("CST", 8*60*60)
	}
}

// the portal and the report both speak Beijing time regardless of where
// the job runs (CI runners are usually UTC)
func Now() time.Time {
	return time.Now().In(Location)
}

// StartOfDay returns midnight of t's day in Location.
func StartOfDay(t time.Time) time.Time {
	t = t.In(Location)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, Location)
}

// Day returns the start of the day `offset` days after now.
func Day(now time.Time, offset int) time.Time {
	return StartOfDay(now).AddDate(0, 0, offset)
}

// QueryDate formats a day the way the portal's search form expects it,
// YYYY-MM-DD.
func QueryDate(t time.Time) string {
	return t.In(Location).Format("2006-01-02")
}

// DisplayDate formats a day as YYYY/MM/DD, the format of the events file.
func DisplayDate(t time.Time) string {
	return t.In(Location).Format("2006/01/02")
}

// DisplayTime formats an update timestamp as YYYY/MM/DD HH:MM.
func DisplayTime(t time.Time) string {
	return t.In(Location).Format("2006/01/02 15:04")
}

// ParseDisplayDate parses a YYYY/MM/DD date in Location.
func ParseDisplayDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation("2006/01/02", s, Location)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date '%s': %w", s, err)
	}
	return t, nil
}
