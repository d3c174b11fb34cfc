package db

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/MahmoudAkram21/um-qura-back/internal/model"
)

const occasionColumns = `id, hijri_month, hijri_day, title, prayer_title, prayer_text, created_at, updated_at`

func (s *pgStore) ListOccasions(ctx context.Context, page Page) ([]model.Occasion, int, error) {
	var total int
	if err := s.db.GetContext(ctx, &total, `SELECT count(*) FROM occasions`); err != nil {
		log.Error().Err(err).Msg("failed to count occasions")
		return nil, 0, err
	}

	out := []model.Occasion{}
	err := s.db.SelectContext(ctx, &out, `
		SELECT `+occasionColumns+`
		FROM occasions
		ORDER BY hijri_month, hijri_day, id
		LIMIT $1 OFFSET $2`, page.Limit, page.Offset())
	if err != nil {
		log.Error().Err(err).Msg("failed to list occasions")
		return nil, 0, err
	}
	return out, total, nil
}

// AllOccasions returns every occasion ordered by (month, day).
func (s *pgStore) AllOccasions(ctx context.Context) ([]model.Occasion, error) {
	out := []model.Occasion{}
	err := s.db.SelectContext(ctx, &out, `
		SELECT `+occasionColumns+`
		FROM occasions
		ORDER BY hijri_month, hijri_day, id`)
	if err != nil {
		log.Error().Err(err).Msg("failed to load occasions")
		return nil, err
	}
	return out, nil
}

func (s *pgStore) GetOccasion(ctx context.Context, id int) (*model.Occasion, error) {
	var o model.Occasion
	err := s.db.GetContext(ctx, &o, `SELECT `+occasionColumns+` FROM occasions WHERE id = $1`, id)
	if err != nil {
		return nil, classify(err)
	}
	return &o, nil
}

func (s *pgStore) CreateOccasion(ctx context.Context, in model.NewOccasion) (*model.Occasion, error) {
	var o model.Occasion
	q := `
	INSERT INTO occasions (hijri_month, hijri_day, title, prayer_title, prayer_text, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, now(), now())
	RETURNING ` + occasionColumns
	if err := s.db.GetContext(ctx, &o, q, in.HijriMonth, in.HijriDay, in.Title, in.PrayerTitle, in.PrayerText); err != nil {
		log.Error().Err(err).Msg("failed to create occasion")
		return nil, classify(err)
	}
	return &o, nil
}

func (s *pgStore) UpdateOccasion(ctx context.Context, id int, p model.OccasionPatch) (*model.Occasion, error) {
	var o model.Occasion
	q := `
	UPDATE occasions
	SET hijri_month = COALESCE($2, hijri_month),
	hijri_day = COALESCE($3, hijri_day),
	title = COALESCE($4, title),
	prayer_title = COALESCE($5, prayer_title),
	prayer_text = CASE WHEN $6 THEN $7::text ELSE prayer_text END,
	updated_at = now()
	WHERE id = $1
	RETURNING ` + occasionColumns
	err := s.db.GetContext(ctx, &o, q,
		id,
		p.HijriMonth,
		p.HijriDay,
		p.Title,
		p.PrayerTitle,
		p.PrayerText.Set, p.PrayerText.Value,
	)
	if err != nil {
		err = classify(err)
		if !errors.Is(err, ErrNotFound) {
			log.Error().Err(err).Int("occasion_id", id).Msg("failed to update occasion")
		}
		return nil, err
	}
	return &o, nil
}

func (s *pgStore) DeleteOccasion(ctx context.Context, id int) (bool, error) {
	ok, err := s.deleteByID(ctx, "occasions", id)
	if err != nil {
		log.Error().Err(err).Int("occasion_id", id).Msg("failed to delete occasion")
	}
	return ok, err
}
