// exposes a Store interface that is passed to controllers
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/MahmoudAkram21/um-qura-back/internal/model"
)

var (
	// ErrNotFound is returned when no row matches the given id.
	ErrNotFound = errors.New("record not found")
	// ErrConstraint is returned when the database rejects a write
	// (missing foreign key, failed check, duplicate key).
	ErrConstraint = errors.New("constraint violation")
)

type Store interface {
	// admins
	GetAdminByEmail(ctx context.Context, email string) (*model.Admin, error)
	UpsertAdmin(ctx context.Context, email, passwordHash string, name *string) (*model.Admin, error)

	// seasons
	ListSeasons(ctx context.Context) ([]model.Season, error)
	GetSeason(ctx context.Context, id int) (*model.Season, error)
	CreateSeason(ctx context.Context, s model.Season) (*model.Season, error)
	UpdateSeason(ctx context.Context, id int, patch model.SeasonPatch) (*model.Season, error)
	DeleteSeason(ctx context.Context, id int) (bool, error)
	Calendar(ctx context.Context) ([]model.SeasonWithStars, error)

	// stars
	ListStars(ctx context.Context, filter StarFilter, page Page) ([]model.Star, int, error)
	GetStar(ctx context.Context, id int) (*model.Star, error)
	StarsOverlapping(ctx context.Context, from, to time.Time) ([]model.Star, error)
	CreateStar(ctx context.Context, s model.NewStar) (*model.Star, error)
	UpdateStar(ctx context.Context, id int, patch model.StarPatch) (*model.Star, error)
	DeleteStar(ctx context.Context, id int) (bool, error)

	// occasions
	ListOccasions(ctx context.Context, page Page) ([]model.Occasion, int, error)
	AllOccasions(ctx context.Context) ([]model.Occasion, error)
	GetOccasion(ctx context.Context, id int) (*model.Occasion, error)
	CreateOccasion(ctx context.Context, o model.NewOccasion) (*model.Occasion, error)
	UpdateOccasion(ctx context.Context, id int, patch model.OccasionPatch) (*model.Occasion, error)
	DeleteOccasion(ctx context.Context, id int) (bool, error)

	// prayers
	ListPrayers(ctx context.Context, page Page) ([]model.Prayer, int, error)
	CountPrayers(ctx context.Context) (int, error)
	PrayerAt(ctx context.Context, offset int) (*model.Prayer, error)
	GetPrayer(ctx context.Context, id int) (*model.Prayer, error)
	CreatePrayer(ctx context.Context, text string) (*model.Prayer, error)
	UpdatePrayer(ctx context.Context, id int, text string) (*model.Prayer, error)
	DeletePrayer(ctx context.Context, id int) (bool, error)

	Ping(ctx context.Context) error
}

type pgStore struct {
	db *sqlx.DB
}

// compile-time check that pgStore implements Store
var _ Store = (*pgStore)(nil)

func NewStore(conn *sqlx.DB) Store {
	return &pgStore{db: conn}
}

func (s *pgStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// classify maps driver errors onto the package sentinels.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23503", "23505", "23514":
			return fmt.Errorf("%w: %s", ErrConstraint, pqErr.Message)
		}
	}
	return err
}

// deleteByID removes one row and reports whether anything was deleted.
func (s *pgStore) deleteByID(ctx context.Context, table string, id int) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM `+table+` WHERE id = $1`, id)
	if err != nil {
		return false, classify(err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}
