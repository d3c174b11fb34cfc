package model

import (
	"time"

	"github.com/lib/pq"
)

// Star is a lunar mansion: a named Gregorian date window inside a season.
type Star struct {
	ID               int            `db:"id"`
	SeasonID         int            `db:"season_id"`
	SeasonName       string         `db:"season_name"`
	Name             string         `db:"name"`
	StartDate        time.Time      `db:"start_date"`
	EndDate          time.Time      `db:"end_date"`
	Description      *string        `db:"description"`
	WeatherInfo      *string        `db:"weather_info"`
	AgriculturalInfo pq.StringArray `db:"agricultural_info"`
	Tips             pq.StringArray `db:"tips"`
	CreatedAt        time.Time      `db:"created_at"`
	UpdatedAt        time.Time      `db:"updated_at"`
}

type NewStar struct {
	SeasonID         int
	Name             string
	StartDate        time.Time
	EndDate          time.Time
	Description      *string
	WeatherInfo      *string
	AgriculturalInfo []string
	Tips             []string
}

// StarPatch carries a partial update. Nullable text columns use
// NullableString so an explicit null can clear them.
type StarPatch struct {
	Name             *string
	StartDate        *time.Time
	EndDate          *time.Time
	Description      NullableString
	WeatherInfo      NullableString
	AgriculturalInfo *[]string
	Tips             *[]string
}

// SeasonWithStars is one row of the public calendar.
type SeasonWithStars struct {
	Season
	Stars []Star
}
