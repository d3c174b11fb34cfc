package db

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/MahmoudAkram21/um-qura-back/internal/model"
)

const prayerColumns = `id, text, created_at, updated_at`

// ListPrayers pages newest first.
func (s *pgStore) ListPrayers(ctx context.Context, page Page) ([]model.Prayer, int, error) {
	total, err := s.CountPrayers(ctx)
	if err != nil {
		return nil, 0, err
	}

	out := []model.Prayer{}
	err = s.db.SelectContext(ctx, &out, `
		SELECT `+prayerColumns+`
		FROM prayers
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2`, page.Limit, page.Offset())
	if err != nil {
		log.Error().Err(err).Msg("failed to list prayers")
		return nil, 0, err
	}
	return out, total, nil
}

func (s *pgStore) CountPrayers(ctx context.Context) (int, error) {
	var n int
	if err := s.db.GetContext(ctx, &n, `SELECT count(*) FROM prayers`); err != nil {
		log.Error().Err(err).Msg("failed to count prayers")
		return 0, err
	}
	return n, nil
}

// PrayerAt returns the prayer at a zero-based position in id order.
func (s *pgStore) PrayerAt(ctx context.Context, offset int) (*model.Prayer, error) {
	var p model.Prayer
	err := s.db.GetContext(ctx, &p, `
		SELECT `+prayerColumns+`
		FROM prayers
		ORDER BY id
		OFFSET $1 LIMIT 1`, offset)
	if err != nil {
		return nil, classify(err)
	}
	return &p, nil
}

func (s *pgStore) GetPrayer(ctx context.Context, id int) (*model.Prayer, error) {
	var p model.Prayer
	err := s.db.GetContext(ctx, &p, `SELECT `+prayerColumns+` FROM prayers WHERE id = $1`, id)
	if err != nil {
		return nil, classify(err)
	}
	return &p, nil
}

func (s *pgStore) CreatePrayer(ctx context.Context, text string) (*model.Prayer, error) {
	var p model.Prayer
	q := `
	INSERT INTO prayers (text, created_at, updated_at)
	VALUES ($1, now(), now())
	RETURNING ` + prayerColumns
	if err := s.db.GetContext(ctx, &p, q, text); err != nil {
		log.Error().Err(err).Msg("failed to create prayer")
		return nil, classify(err)
	}
	return &p, nil
}

func (s *pgStore) UpdatePrayer(ctx context.Context, id int, text string) (*model.Prayer, error) {
	var p model.Prayer
	q := `
	UPDATE prayers
	SET text = $2,
	updated_at = now()
	WHERE id = $1
	RETURNING ` + prayerColumns
	if err := s.db.GetContext(ctx, &p, q, id, text); err != nil {
		err = classify(err)
		if !errors.Is(err, ErrNotFound) {
			log.Error().Err(err).Int("prayer_id", id).Msg("failed to update prayer")
		}
		return nil, err
	}
	return &p, nil
}

func (s *pgStore) DeletePrayer(ctx context.Context, id int) (bool, error) {
	ok, err := s.deleteByID(ctx, "prayers", id)
	if err != nil {
		log.Error().Err(err).Int("prayer_id", id).Msg("failed to delete prayer")
	}
	return ok, err
}
