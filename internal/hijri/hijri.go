// Package hijri converts Gregorian dates to the Umm al-Qura Hijri calendar
// and groups year-independent occasions around a given Hijri day.
package hijri

import (
	"fmt"
	"time"

	gohijri "github.com/hablullah/go-hijri"
)

// Date is a Hijri calendar date. Month is 1-12, Day is 1-30.
type Date struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// ToHijri converts a Gregorian (year, month, day) to its Umm al-Qura date.
// Dates outside the published Umm al-Qura table fall back to the tabular
// (arithmetic) Islamic calendar, so the result is always a valid Date.
func ToHijri(year, month, day int) Date {
	// noon keeps the instant inside the same civil day in any zone
	t := time.Date(year, time.Month(month), day, 12, 0, 0, 0, time.UTC)
	if d, err := gohijri.CreateUmmAlQuraDate(t); err == nil {
		out := Date{Year: int(d.Year), Month: int(d.Month), Day: int(d.Day)}
		if valid(out) {
			return out
		}
	}
	return tabular(year, month, day)
}

// FromTime converts the civil date of t, as observed in loc.
func FromTime(t time.Time, loc *time.Location) Date {
	if loc != nil {
		t = t.In(loc)
	}
	return ToHijri(t.Year(), int(t.Month()), t.Day())
}

// NextMonth returns the Hijri month after m, wrapping 12 to 1.
func NextMonth(m int) int {
	if m >= 12 {
		return 1
	}
	return m + 1
}

func valid(d Date) bool {
	return d.Month >= 1 && d.Month <= 12 && d.Day >= 1 && d.Day <= 30
}

// tabular implements the 30-year-cycle civil Islamic calendar on top of the
// Julian day number of the Gregorian date.
func tabular(gy, gm, gd int) Date {
	jdn := julianDayNumber(gy, gm, gd)

	l := jdn - 1948440 + 10632
	n := (l - 1) / 10631
	l = l - 10631*n + 354
	j := ((10985-l)/5316)*((50*l)/17719) + (l/5670)*((43*l)/15238)
	l = l - ((30-j)/15)*((17719*j)/50) - (j/16)*((15238*j)/43) + 29
	month := (24 * l) / 709
	day := l - (709*month)/24
	year := 30*n + j - 30

	return Date{Year: year, Month: month, Day: day}
}

// julianDayNumber for a proleptic Gregorian date.
func julianDayNumber(y, m, d int) int {
	a := (14 - m) / 12
	yy := y + 4800 - a
	mm := m + 12*a - 3
	return d + (153*mm+2)/5 + 365*yy + yy/4 - yy/100 + yy/400 - 32045
}
