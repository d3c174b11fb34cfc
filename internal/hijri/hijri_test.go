package hijri

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestToHijri_KnownUmmAlQuraDates(t *testing.T) {
	cases := []struct {
		name    string
		y, m, d int
		want    Date
	}{
		{"1 Ramadan 1445", 2024, 3, 11, Date{1445, 9, 1}},
		{"10 Dhu al-Hijjah 1444", 2023, 6, 28, Date{1444, 12, 10}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ToHijri(tc.y, tc.m, tc.d))
		})
	}
}

func TestToHijri_RangeAndDeterminism(t *testing.T) {
	day := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 3*366; i++ {
		d := day.AddDate(0, 0, i)
		first := ToHijri(d.Year(), int(d.Month()), d.Day())
		second := ToHijri(d.Year(), int(d.Month()), d.Day())

		assert.Equal(t, first, second, "not deterministic for %s", d.Format(time.DateOnly))
		assert.True(t, first.Month >= 1 && first.Month <= 12, "month out of range for %s: %v", d.Format(time.DateOnly), first)
		assert.True(t, first.Day >= 1 && first.Day <= 30, "day out of range for %s: %v", d.Format(time.DateOnly), first)
	}
}

func TestToHijri_ConsecutiveDaysAdvance(t *testing.T) {
	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	prev := ToHijri(2024, 1, 1)
	for i := 1; i < 400; i++ {
		d := day.AddDate(0, 0, i)
		cur := ToHijri(d.Year(), int(d.Month()), d.Day())
		if cur.Day != 1 {
			assert.Equal(t, prev.Day+1, cur.Day, "at %s", d.Format(time.DateOnly))
			assert.Equal(t, prev.Month, cur.Month, "at %s", d.Format(time.DateOnly))
		} else {
			assert.Equal(t, NextMonth(prev.Month), cur.Month, "at %s", d.Format(time.DateOnly))
			assert.GreaterOrEqual(t, prev.Day, 29, "short month before %s", d.Format(time.DateOnly))
		}
		prev = cur
	}
}

func TestTabular_Epoch(t *testing.T) {
	// 19 July 622 (proleptic Gregorian) is 1 Muharram 1 in the civil calendar.
	assert.Equal(t, Date{1, 1, 1}, tabular(622, 7, 19))
}

func TestTabular_FarOutsideTableStaysValid(t *testing.T) {
	for _, y := range []int{1800, 1900, 2100, 2200} {
		d := ToHijri(y, 6, 15)
		assert.True(t, d.Month >= 1 && d.Month <= 12, "year %d: %v", y, d)
		assert.True(t, d.Day >= 1 && d.Day <= 30, "year %d: %v", y, d)
	}
}

func TestFromTime_UsesLocation(t *testing.T) {
	riyadh := time.FixedZone("AST", 3*60*60)
	// 22:30 UTC on 10 March is already 11 March in Riyadh.
	instant := time.Date(2024, 3, 10, 22, 30, 0, 0, time.UTC)

	assert.Equal(t, ToHijri(2024, 3, 11), FromTime(instant, riyadh))
	assert.Equal(t, ToHijri(2024, 3, 10), FromTime(instant, time.UTC))
}

func TestNextMonth(t *testing.T) {
	assert.Equal(t, 1, NextMonth(12))
	for m := 1; m <= 11; m++ {
		assert.Equal(t, m+1, NextMonth(m))
	}
}

func TestMonthNameFallback(t *testing.T) {
	assert.Equal(t, "رمضان", MonthName(9))
	assert.Equal(t, "13", MonthName(13))
	assert.Equal(t, "0", MonthName(0))
	assert.Equal(t, "10 ذو الحجة", FormatDay(10, 12))
	assert.Equal(t, "3 14", FormatDay(3, 14))
}
