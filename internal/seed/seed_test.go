package seed

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MahmoudAkram21/um-qura-back/internal/auth"
	"github.com/MahmoudAkram21/um-qura-back/internal/db"
	"github.com/MahmoudAkram21/um-qura-back/internal/db/memstore"
)

func TestRun_SeedsDefaults(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()

	res, err := Run(ctx, store, Options{Year: 2025})
	require.NoError(t, err)
	assert.Equal(t, 4, res.SeasonsCreated)
	assert.Equal(t, 12, res.StarsCreated)
	assert.Equal(t, DefaultAdminEmail, res.Admin.Email)
	assert.True(t, auth.CheckPassword(res.Admin.PasswordHash, DefaultAdminPassword))

	cal, err := store.Calendar(ctx)
	require.NoError(t, err)
	require.Len(t, cal, 4)
	assert.Equal(t, "Winter", cal[0].Name)
	assert.Equal(t, "Autumn", cal[3].Name)
	for _, season := range cal {
		assert.Len(t, season.Stars, 3, season.Name)
	}
	first := cal[0].Stars[0]
	assert.Equal(t, "الشرطان", first.Name)
	assert.Equal(t, time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC), first.StartDate)
}

func TestRun_Idempotent(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()

	_, err := Run(ctx, store, Options{Year: 2025})
	require.NoError(t, err)
	res, err := Run(ctx, store, Options{Year: 2025, AdminPassword: "changed-it"})
	require.NoError(t, err)

	assert.Equal(t, 0, res.SeasonsCreated)
	assert.Equal(t, 12, res.StarsRemoved)
	assert.Equal(t, 12, res.StarsCreated)

	seasons, err := store.ListSeasons(ctx)
	require.NoError(t, err)
	assert.Len(t, seasons, 4)

	_, total, err := store.ListStars(ctx, db.StarFilter{}, db.NewPage(1, 100, 10))
	require.NoError(t, err)
	assert.Equal(t, 12, total)

	admin, err := store.GetAdminByEmail(ctx, DefaultAdminEmail)
	require.NoError(t, err)
	assert.True(t, auth.CheckPassword(admin.PasswordHash, "changed-it"))
}

func TestRun_NormalizesAdminEmail(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()

	res, err := Run(ctx, store, Options{Year: 2025, AdminEmail: "  Owner@Example.COM "})
	require.NoError(t, err)
	assert.Equal(t, "owner@example.com", res.Admin.Email)
}

func TestStarDefinitionsAreOrdered(t *testing.T) {
	for _, def := range Stars {
		start := time.Date(2025, def.StartMonth, def.StartDay, 0, 0, 0, 0, time.UTC)
		end := time.Date(2025, def.EndMonth, def.EndDay, 0, 0, 0, 0, time.UTC)
		assert.False(t, start.After(end), def.Name)
	}
}
