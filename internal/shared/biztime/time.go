// Package biztime keeps storage in UTC and uses the agency timezone only to
// answer calendar questions: which year a public ID belongs to, what "today"
// is for deadline checks.
package biztime

import (
	"fmt"
	"sync"
	"time"
)

// DefaultTimezone is the agency's business timezone.
const DefaultTimezone = "Asia/Tashkent"

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

var (
	bizLocation     *time.Location
	bizLocationOnce sync.Once
	initErr         error
)

// Init loads the business timezone once. An empty tz selects DefaultTimezone.
func Init(tz string) error {
	bizLocationOnce.Do(func() {
		if tz == "" {
			tz = DefaultTimezone
		}
		bizLocation, initErr = time.LoadLocation(tz)
	})
	return initErr
}

// Location returns the business timezone, initializing the default on first use.
func Location() *time.Location {
	if bizLocation == nil {
		if err := Init(""); err != nil {
			panic(fmt.Sprintf("biztime: failed to load default timezone: %v", err))
		}
	}
	return bizLocation
}

// NowUTC returns current time in UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// Year returns the calendar year of t in the business timezone.
func Year(t time.Time) int {
	return t.In(Location()).Year()
}

// DateOf truncates t to midnight of its business-timezone calendar day,
// expressed as a UTC date with no time-of-day component.
func DateOf(t time.Time) time.Time {
	b := t.In(Location())
	return time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysUntil returns the number of whole calendar days from now's business
// day to the calendar date due. Negative values mean the date has passed.
func DaysUntil(due, now time.Time) int {
	d := time.Date(due.Year(), due.Month(), due.Day(), 0, 0, 0, 0, time.UTC)
	return int(d.Sub(DateOf(now)).Hours() / 24)
}

// ParseDate parses YYYY-MM-DD into a calendar date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format %q: %w", s, err)
	}
	return t, nil
}

// FormatDate renders a calendar date as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
