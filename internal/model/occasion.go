package model

import "time"

// Occasion recurs every Hijri year on HijriMonth/HijriDay.
type Occasion struct {
	ID          int       `db:"id"`
	HijriMonth  int       `db:"hijri_month"`
	HijriDay    int       `db:"hijri_day"`
	Title       string    `db:"title"`
	PrayerTitle string    `db:"prayer_title"`
	PrayerText  *string   `db:"prayer_text"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

type NewOccasion struct {
	HijriMonth  int
	HijriDay    int
	Title       string
	PrayerTitle string
	PrayerText  *string
}

type OccasionPatch struct {
	HijriMonth  *int
	HijriDay    *int
	Title       *string
	PrayerTitle *string
	PrayerText  NullableString
}
