package db

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/MahmoudAkram21/um-qura-back/internal/model"
)

// fetches an admin by (already normalised) email. returns ErrNotFound if absent.
func (s *pgStore) GetAdminByEmail(ctx context.Context, email string) (*model.Admin, error) {
	var a model.Admin
	query := `
	SELECT id, email, password_hash, name, created_at, updated_at
	FROM admins
	WHERE email = $1;
	`
	if err := s.db.GetContext(ctx, &a, query, email); err != nil {
		err = classify(err)
		if !errors.Is(err, ErrNotFound) {
			log.Error().Err(err).Msg("failed to get admin by email")
		}
		return nil, err
	}
	return &a, nil
}

// creates the admin or, when the email exists, replaces its password hash.
func (s *pgStore) UpsertAdmin(ctx context.Context, email, passwordHash string, name *string) (*model.Admin, error) {
	var a model.Admin
	query := `
	INSERT INTO admins (email, password_hash, name, created_at, updated_at)
	VALUES ($1, $2, $3, now(), now())
	ON CONFLICT (email) DO UPDATE
	SET password_hash = EXCLUDED.password_hash,
	updated_at = now()
	RETURNING id, email, password_hash, name, created_at, updated_at;
	`
	if err := s.db.GetContext(ctx, &a, query, email, passwordHash, name); err != nil {
		log.Error().Err(err).Msg("failed to upsert admin")
		return nil, classify(err)
	}
	return &a, nil
}
