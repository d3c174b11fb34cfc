package db

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/MahmoudAkram21/um-qura-back/internal/model"
)

const seasonColumns = `id, name, color_hex, icon_name, duration, sort_order, created_at, updated_at`

func (s *pgStore) ListSeasons(ctx context.Context) ([]model.Season, error) {
	out := []model.Season{}
	err := s.db.SelectContext(ctx, &out, `
		SELECT `+seasonColumns+`
		FROM seasons
		ORDER BY sort_order, id`)
	if err != nil {
		log.Error().Err(err).Msg("failed to list seasons")
		return nil, err
	}
	return out, nil
}

func (s *pgStore) GetSeason(ctx context.Context, id int) (*model.Season, error) {
	var season model.Season
	err := s.db.GetContext(ctx, &season, `
		SELECT `+seasonColumns+`
		FROM seasons
		WHERE id = $1`, id)
	if err != nil {
		return nil, classify(err)
	}
	return &season, nil
}

func (s *pgStore) CreateSeason(ctx context.Context, in model.Season) (*model.Season, error) {
	var season model.Season
	q := `
	INSERT INTO seasons (name, color_hex, icon_name, duration, sort_order, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, now(), now())
	RETURNING ` + seasonColumns
	if err := s.db.GetContext(ctx, &season, q, in.Name, in.ColorHex, in.IconName, in.Duration, in.SortOrder); err != nil {
		log.Error().Err(err).Msg("failed to create season")
		return nil, classify(err)
	}
	return &season, nil
}

func (s *pgStore) UpdateSeason(ctx context.Context, id int, p model.SeasonPatch) (*model.Season, error) {
	var season model.Season
	q := `
	UPDATE seasons
	SET name = COALESCE($2, name),
	color_hex = COALESCE($3, color_hex),
	icon_name = COALESCE($4, icon_name),
	duration = COALESCE($5, duration),
	sort_order = COALESCE($6, sort_order),
	updated_at = now()
	WHERE id = $1
	RETURNING ` + seasonColumns
	if err := s.db.GetContext(ctx, &season, q, id, p.Name, p.ColorHex, p.IconName, p.Duration, p.SortOrder); err != nil {
		err = classify(err)
		if !errors.Is(err, ErrNotFound) {
			log.Error().Err(err).Int("season_id", id).Msg("failed to update season")
		}
		return nil, err
	}
	return &season, nil
}

// DeleteSeason also removes the season's stars (ON DELETE CASCADE).
func (s *pgStore) DeleteSeason(ctx context.Context, id int) (bool, error) {
	ok, err := s.deleteByID(ctx, "seasons", id)
	if err != nil {
		log.Error().Err(err).Int("season_id", id).Msg("failed to delete season")
	}
	return ok, err
}

// Calendar returns every season (by sort order) with its stars (by start date).
func (s *pgStore) Calendar(ctx context.Context) ([]model.SeasonWithStars, error) {
	seasons, err := s.ListSeasons(ctx)
	if err != nil {
		return nil, err
	}

	var stars []model.Star
	err = s.db.SelectContext(ctx, &stars, `
		SELECT `+starColumns+`
		FROM stars st
		JOIN seasons se ON se.id = st.season_id
		ORDER BY st.start_date, st.id`)
	if err != nil {
		log.Error().Err(err).Msg("failed to list calendar stars")
		return nil, err
	}

	bySeason := make(map[int][]model.Star, len(seasons))
	for _, st := range stars {
		bySeason[st.SeasonID] = append(bySeason[st.SeasonID], st)
	}

	out := make([]model.SeasonWithStars, 0, len(seasons))
	for _, se := range seasons {
		list := bySeason[se.ID]
		if list == nil {
			list = []model.Star{}
		}
		out = append(out, model.SeasonWithStars{Season: se, Stars: list})
	}
	return out, nil
}
