package model

import "time"

// Season groups stars; SortOrder defines presentation order.
type Season struct {
	ID        int       `db:"id"          json:"id"`
	Name      string    `db:"name"        json:"name"`
	ColorHex  string    `db:"color_hex"   json:"colorHex"`
	IconName  string    `db:"icon_name"   json:"iconName"`
	Duration  string    `db:"duration"    json:"duration"`
	SortOrder int       `db:"sort_order"  json:"sortOrder"`
	CreatedAt time.Time `db:"created_at"  json:"-"`
	UpdatedAt time.Time `db:"updated_at"  json:"-"`
}

type SeasonPatch struct {
	Name      *string
	ColorHex  *string
	IconName  *string
	Duration  *string
	SortOrder *int
}
