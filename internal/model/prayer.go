package model

import "time"

type Prayer struct {
	ID        int       `db:"id"`
	Text      string    `db:"text"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
