package db

import (
	"context"
	"errors"
	"time"

	"github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"github.com/MahmoudAkram21/um-qura-back/internal/model"
)

// starColumns selects a star joined with its season (aliases st / se).
const starColumns = `
	st.id, st.season_id, se.name AS season_name, st.name,
	st.start_date, st.end_date, st.description, st.weather_info,
	st.agricultural_info, st.tips, st.created_at, st.updated_at`

func (s *pgStore) ListStars(ctx context.Context, f StarFilter, page Page) ([]model.Star, int, error) {
	var total int
	if err := s.db.GetContext(ctx, &total, `
		SELECT count(*)
		FROM stars
		WHERE ($1::int IS NULL OR season_id = $1)`, f.SeasonID); err != nil {
		log.Error().Err(err).Msg("failed to count stars")
		return nil, 0, err
	}

	out := []model.Star{}
	err := s.db.SelectContext(ctx, &out, `
		SELECT `+starColumns+`
		FROM stars st
		JOIN seasons se ON se.id = st.season_id
		WHERE ($1::int IS NULL OR st.season_id = $1)
		ORDER BY st.start_date, st.id
		LIMIT $2 OFFSET $3`, f.SeasonID, page.Limit, page.Offset())
	if err != nil {
		log.Error().Err(err).Msg("failed to list stars")
		return nil, 0, err
	}
	return out, total, nil
}

func (s *pgStore) GetStar(ctx context.Context, id int) (*model.Star, error) {
	var st model.Star
	err := s.db.GetContext(ctx, &st, `
		SELECT `+starColumns+`
		FROM stars st
		JOIN seasons se ON se.id = st.season_id
		WHERE st.id = $1`, id)
	if err != nil {
		return nil, classify(err)
	}
	return &st, nil
}

// StarsOverlapping returns stars whose [start_date, end_date] overlaps
// [from, to], earliest start first.
func (s *pgStore) StarsOverlapping(ctx context.Context, from, to time.Time) ([]model.Star, error) {
	out := []model.Star{}
	err := s.db.SelectContext(ctx, &out, `
		SELECT `+starColumns+`
		FROM stars st
		JOIN seasons se ON se.id = st.season_id
		WHERE st.start_date <= $2 AND st.end_date >= $1
		ORDER BY st.start_date, st.id`, from, to)
	if err != nil {
		log.Error().Err(err).Msg("failed to find overlapping stars")
		return nil, err
	}
	return out, nil
}

func (s *pgStore) CreateStar(ctx context.Context, in model.NewStar) (*model.Star, error) {
	var st model.Star
	q := `
	WITH st AS (
		INSERT INTO stars
		(season_id, name, start_date, end_date, description, weather_info, agricultural_info, tips, created_at, updated_at)
		VALUES
		($1, $2, $3, $4, $5, $6, $7, $8, now(), now())
		RETURNING *
	)
	SELECT ` + starColumns + `
	FROM st
	JOIN seasons se ON se.id = st.season_id`
	err := s.db.GetContext(ctx, &st, q,
		in.SeasonID,
		in.Name,
		in.StartDate,
		in.EndDate,
		in.Description,
		in.WeatherInfo,
		stringArray(in.AgriculturalInfo),
		stringArray(in.Tips),
	)
	if err != nil {
		log.Error().Err(err).Msg("failed to create star")
		return nil, classify(err)
	}
	return &st, nil
}

func (s *pgStore) UpdateStar(ctx context.Context, id int, p model.StarPatch) (*model.Star, error) {
	var agri, tips any
	if p.AgriculturalInfo != nil {
		agri = stringArray(*p.AgriculturalInfo)
	}
	if p.Tips != nil {
		tips = stringArray(*p.Tips)
	}

	var st model.Star
	q := `
	WITH st AS (
		UPDATE stars
		SET name = COALESCE($2, name),
		start_date = COALESCE($3, start_date),
		end_date = COALESCE($4, end_date),
		description = CASE WHEN $5 THEN $6::text ELSE description END,
		weather_info = CASE WHEN $7 THEN $8::text ELSE weather_info END,
		agricultural_info = COALESCE($9::text[], agricultural_info),
		tips = COALESCE($10::text[], tips),
		updated_at = now()
		WHERE id = $1
		RETURNING *
	)
	SELECT ` + starColumns + `
	FROM st
	JOIN seasons se ON se.id = st.season_id`
	err := s.db.GetContext(ctx, &st, q,
		id,
		p.Name,
		p.StartDate,
		p.EndDate,
		p.Description.Set, p.Description.Value,
		p.WeatherInfo.Set, p.WeatherInfo.Value,
		agri,
		tips,
	)
	if err != nil {
		err = classify(err)
		if !errors.Is(err, ErrNotFound) {
			log.Error().Err(err).Int("star_id", id).Msg("failed to update star")
		}
		return nil, err
	}
	return &st, nil
}

func (s *pgStore) DeleteStar(ctx context.Context, id int) (bool, error) {
	ok, err := s.deleteByID(ctx, "stars", id)
	if err != nil {
		log.Error().Err(err).Int("star_id", id).Msg("failed to delete star")
	}
	return ok, err
}

// stringArray never yields NULL so the NOT NULL text[] columns stay valid.
func stringArray(v []string) pq.StringArray {
	if v == nil {
		return pq.StringArray{}
	}
	return pq.StringArray(v)
}
