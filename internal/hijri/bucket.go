package hijri

import (
	"sort"

	"github.com/MahmoudAkram21/um-qura-back/internal/model"
)

// Annotated is an occasion with its display string ("day month-name").
type Annotated struct {
	model.Occasion
	Display string
}

// Buckets groups occasions around one Hijri day. Every list is ordered by
// (month, day) and Today is always a subset of CurrentMonth.
type Buckets struct {
	Today        []Annotated
	CurrentMonth []Annotated
	NextMonth    []Annotated
	Year         []Annotated
}

// Annotate attaches the display string to o.
func Annotate(o model.Occasion) Annotated {
	return Annotated{Occasion: o, Display: FormatDay(o.HijriDay, o.HijriMonth)}
}

// Bucket partitions occasions relative to today. The input is not modified.
func Bucket(today Date, occasions []model.Occasion) Buckets {
	all := make([]Annotated, 0, len(occasions))
	for _, o := range occasions {
		all = append(all, Annotate(o))
	}
	sort.SliceStable(all, func(i, j int) bool {
		a, b := all[i], all[j]
		if a.HijriMonth != b.HijriMonth {
			return a.HijriMonth < b.HijriMonth
		}
		if a.HijriDay != b.HijriDay {
			return a.HijriDay < b.HijriDay
		}
		return a.ID < b.ID
	})

	next := NextMonth(today.Month)
	out := Buckets{
		Today:        []Annotated{},
		CurrentMonth: []Annotated{},
		NextMonth:    []Annotated{},
		Year:         all,
	}
	for _, o := range all {
		switch o.HijriMonth {
		case today.Month:
			out.CurrentMonth = append(out.CurrentMonth, o)
			if o.HijriDay == today.Day {
				out.Today = append(out.Today, o)
			}
		case next:
			out.NextMonth = append(out.NextMonth, o)
		}
	}
	return out
}
