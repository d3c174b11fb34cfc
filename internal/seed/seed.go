// Package seed loads the default seasons, stars and admin account.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/MahmoudAkram21/um-qura-back/internal/auth"
	"github.com/MahmoudAkram21/um-qura-back/internal/db"
	"github.com/MahmoudAkram21/um-qura-back/internal/model"
)

const (
	DefaultAdminEmail    = "admin@example.com"
	DefaultAdminPassword = "Admin123!"
	DefaultAdminName     = "Admin"
)

var Seasons = []model.Season{
	{Name: "Winter", ColorHex: "#4A90D9", IconName: "snowflake", Duration: "December - February", SortOrder: 1},
	{Name: "Spring", ColorHex: "#7CB342", IconName: "leaf", Duration: "March - May", SortOrder: 2},
	{Name: "Summer", ColorHex: "#FFB74D", IconName: "sun", Duration: "June - August", SortOrder: 3},
	{Name: "Autumn", ColorHex: "#E57373", IconName: "wind", Duration: "September - November", SortOrder: 4},
}

// StarDef is a star pinned to month/day; the year is chosen at seed time.
type StarDef struct {
	Season     string
	Name       string
	StartMonth time.Month
	StartDay   int
	EndMonth   time.Month
	EndDay     int
}

var Stars = []StarDef{
	{"Winter", "الشرطان", time.January, 6, time.January, 19},
	{"Winter", "البلدة", time.January, 20, time.February, 2},
	{"Winter", "سعد الذابح", time.February, 3, time.February, 16},

	{"Spring", "سعد بلع", time.March, 17, time.March, 30},
	{"Spring", "سعد السعود", time.April, 1, time.April, 13},
	{"Spring", "سعد الأخبية", time.April, 14, time.April, 26},

	{"Summer", "الفرع المقدم", time.June, 22, time.July, 5},
	{"Summer", "الفرع المؤخر", time.July, 6, time.July, 19},
	{"Summer", "الزبرة", time.July, 20, time.August, 2},

	{"Autumn", "الصرفة", time.September, 17, time.September, 30},
	{"Autumn", "العواء", time.October, 1, time.October, 13},
	{"Autumn", "السماك", time.October, 14, time.October, 26},
}

type Options struct {
	Year          int
	AdminEmail    string
	AdminPassword string
	AdminName     string
}

type Result struct {
	SeasonsCreated int
	StarsCreated   int
	StarsRemoved   int
	Admin          *model.Admin
}

// Run seeds the store. Existing seasons (matched by name) are kept as is,
// all stars are replaced, and the admin password is reset.
func Run(ctx context.Context, store db.Store, opts Options) (Result, error) {
	if opts.Year == 0 {
		opts.Year = time.Now().Year()
	}
	if opts.AdminEmail == "" {
		opts.AdminEmail = DefaultAdminEmail
	}
	if opts.AdminPassword == "" {
		opts.AdminPassword = DefaultAdminPassword
	}
	if opts.AdminName == "" {
		opts.AdminName = DefaultAdminName
	}

	var res Result

	existing, err := store.ListSeasons(ctx)
	if err != nil {
		return res, fmt.Errorf("list seasons: %w", err)
	}
	byName := map[string]int{}
	for _, s := range existing {
		if _, dup := byName[s.Name]; !dup {
			byName[s.Name] = s.ID
		}
	}
	for _, s := range Seasons {
		if _, ok := byName[s.Name]; ok {
			continue
		}
		created, err := store.CreateSeason(ctx, s)
		if err != nil {
			return res, fmt.Errorf("create season %s: %w", s.Name, err)
		}
		byName[s.Name] = created.ID
		res.SeasonsCreated++
	}

	removed, err := deleteAllStars(ctx, store)
	if err != nil {
		return res, err
	}
	res.StarsRemoved = removed

	for _, def := range Stars {
		_, err := store.CreateStar(ctx, model.NewStar{
			SeasonID:         byName[def.Season],
			Name:             def.Name,
			StartDate:        time.Date(opts.Year, def.StartMonth, def.StartDay, 0, 0, 0, 0, time.UTC),
			EndDate:          time.Date(opts.Year, def.EndMonth, def.EndDay, 0, 0, 0, 0, time.UTC),
			AgriculturalInfo: []string{},
			Tips:             []string{},
		})
		if err != nil {
			return res, fmt.Errorf("create star %s: %w", def.Name, err)
		}
		res.StarsCreated++
	}

	hash, err := auth.HashPassword(opts.AdminPassword)
	if err != nil {
		return res, fmt.Errorf("hash admin password: %w", err)
	}
	name := opts.AdminName
	admin, err := store.UpsertAdmin(ctx, auth.NormalizeEmail(opts.AdminEmail), hash, &name)
	if err != nil {
		return res, fmt.Errorf("upsert admin: %w", err)
	}
	res.Admin = admin

	log.Info().
		Int("seasons_created", res.SeasonsCreated).
		Int("stars_created", res.StarsCreated).
		Int("stars_removed", res.StarsRemoved).
		Str("admin", admin.Email).
		Msg("seed completed")
	return res, nil
}

func deleteAllStars(ctx context.Context, store db.Store) (int, error) {
	removed := 0
	first := db.NewPage(1, db.MaxLimit, db.MaxLimit)
	for {
		batch, _, err := store.ListStars(ctx, db.StarFilter{}, first)
		if err != nil {
			return removed, fmt.Errorf("list stars: %w", err)
		}
		if len(batch) == 0 {
			return removed, nil
		}
		for _, st := range batch {
			ok, err := store.DeleteStar(ctx, st.ID)
			if err != nil {
				return removed, fmt.Errorf("delete star %d: %w", st.ID, err)
			}
			if ok {
				removed++
			}
		}
	}
}
