// Package calendar holds the Gregorian side of the star calendar: day
// bounds, the current-star lookup and display formatting.
package calendar

import (
	"strconv"
	"time"

	"github.com/MahmoudAkram21/um-qura-back/internal/model"
)

// DayBounds returns the UTC day containing t: [00:00:00.000, 23:59:59.999].
func DayBounds(t time.Time) (start, end time.Time) {
	t = t.UTC()
	start = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	end = start.Add(24*time.Hour - time.Millisecond)
	return start, end
}

// Overlaps reports whether [from, to] intersects [start, end].
func Overlaps(from, to, start, end time.Time) bool {
	return !from.After(end) && !to.Before(start)
}

// FindCurrent returns the star whose date range overlaps the UTC day of
// now. When several match, the earliest start wins (then the lowest id).
func FindCurrent(now time.Time, stars []model.Star) (model.Star, bool) {
	dayStart, dayEnd := DayBounds(now)

	var best model.Star
	found := false
	for _, st := range stars {
		if !Overlaps(st.StartDate, st.EndDate, dayStart, dayEnd) {
			continue
		}
		if !found ||
			st.StartDate.Before(best.StartDate) ||
			(st.StartDate.Equal(best.StartDate) && st.ID < best.ID) {
			best = st
			found = true
		}
	}
	return best, found
}

var monthNames = [...]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// FormatDate renders t as YYYY-MM-DD in UTC.
func FormatDate(t time.Time) string {
	return t.UTC().Format(time.DateOnly)
}

// FormatDateRange renders "18 October - 30 October". Both month names are
// printed even when they are the same month.
func FormatDateRange(start, end time.Time) string {
	start, end = start.UTC(), end.UTC()
	return strconv.Itoa(start.Day()) + " " + monthNames[start.Month()-1] +
		" - " +
		strconv.Itoa(end.Day()) + " " + monthNames[end.Month()-1]
}

// ParseDate accepts YYYY-MM-DD (UTC midnight) or an RFC 3339 timestamp.
func ParseDate(s string) (time.Time, error) {
	if len(s) <= len(time.DateOnly) {
		return time.ParseInLocation(time.DateOnly, s, time.UTC)
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
