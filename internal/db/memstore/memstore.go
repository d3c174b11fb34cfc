// Package memstore is an in-memory db.Store for tests.
package memstore

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/MahmoudAkram21/um-qura-back/internal/db"
	"github.com/MahmoudAkram21/um-qura-back/internal/model"
)

type Store struct {
	mu sync.Mutex

	nextID    int
	admins    map[string]model.Admin
	seasons   map[int]model.Season
	stars     map[int]model.Star
	occasions map[int]model.Occasion
	prayers   map[int]model.Prayer

	// Err, when set, is returned by every call.
	Err error
	// Now stamps created_at/updated_at.
	Now func() time.Time
}

var _ db.Store = (*Store)(nil)

func New() *Store {
	return &Store{
		admins:    map[string]model.Admin{},
		seasons:   map[int]model.Season{},
		stars:     map[int]model.Star{},
		occasions: map[int]model.Occasion{},
		prayers:   map[int]model.Prayer{},
		Now:       time.Now,
	}
}

func (s *Store) id() int {
	s.nextID++
	return s.nextID
}

func (s *Store) Ping(ctx context.Context) error { return s.Err }

// admins

func (s *Store) GetAdminByEmail(ctx context.Context, email string) (*model.Admin, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	a, ok := s.admins[email]
	if !ok {
		return nil, db.ErrNotFound
	}
	return &a, nil
}

func (s *Store) UpsertAdmin(ctx context.Context, email, passwordHash string, name *string) (*model.Admin, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	now := s.Now()
	a, ok := s.admins[email]
	if !ok {
		a = model.Admin{ID: s.id(), Email: email, Name: name, CreatedAt: now}
	}
	a.PasswordHash = passwordHash
	a.UpdatedAt = now
	s.admins[email] = a
	return &a, nil
}

// seasons

func (s *Store) ListSeasons(ctx context.Context) ([]model.Season, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	return s.sortedSeasons(), nil
}

func (s *Store) sortedSeasons() []model.Season {
	out := make([]model.Season, 0, len(s.seasons))
	for _, se := range s.seasons {
		out = append(out, se)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SortOrder != out[j].SortOrder {
			return out[i].SortOrder < out[j].SortOrder
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (s *Store) GetSeason(ctx context.Context, id int) (*model.Season, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	se, ok := s.seasons[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	return &se, nil
}

func (s *Store) CreateSeason(ctx context.Context, in model.Season) (*model.Season, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	in.ID = s.id()
	in.CreatedAt, in.UpdatedAt = s.Now(), s.Now()
	s.seasons[in.ID] = in
	return &in, nil
}

func (s *Store) UpdateSeason(ctx context.Context, id int, p model.SeasonPatch) (*model.Season, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	se, ok := s.seasons[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	if p.Name != nil {
		se.Name = *p.Name
	}
	if p.ColorHex != nil {
		se.ColorHex = *p.ColorHex
	}
	if p.IconName != nil {
		se.IconName = *p.IconName
	}
	if p.Duration != nil {
		se.Duration = *p.Duration
	}
	if p.SortOrder != nil {
		se.SortOrder = *p.SortOrder
	}
	se.UpdatedAt = s.Now()
	s.seasons[id] = se
	s.renameSeason(se)
	return &se, nil
}

func (s *Store) renameSeason(se model.Season) {
	for id, st := range s.stars {
		if st.SeasonID == se.ID {
			st.SeasonName = se.Name
			s.stars[id] = st
		}
	}
}

func (s *Store) DeleteSeason(ctx context.Context, id int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return false, s.Err
	}
	if _, ok := s.seasons[id]; !ok {
		return false, nil
	}
	delete(s.seasons, id)
	for sid, st := range s.stars {
		if st.SeasonID == id {
			delete(s.stars, sid)
		}
	}
	return true, nil
}

func (s *Store) Calendar(ctx context.Context) ([]model.SeasonWithStars, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	stars := s.sortedStars()
	out := []model.SeasonWithStars{}
	for _, se := range s.sortedSeasons() {
		row := model.SeasonWithStars{Season: se, Stars: []model.Star{}}
		for _, st := range stars {
			if st.SeasonID == se.ID {
				row.Stars = append(row.Stars, st)
			}
		}
		out = append(out, row)
	}
	return out, nil
}

// stars

func (s *Store) sortedStars() []model.Star {
	out := make([]model.Star, 0, len(s.stars))
	for _, st := range s.stars {
		out = append(out, st)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].StartDate.Equal(out[j].StartDate) {
			return out[i].StartDate.Before(out[j].StartDate)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (s *Store) ListStars(ctx context.Context, f db.StarFilter, page db.Page) ([]model.Star, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, 0, s.Err
	}
	var matched []model.Star
	for _, st := range s.sortedStars() {
		if f.SeasonID != nil && st.SeasonID != *f.SeasonID {
			continue
		}
		matched = append(matched, st)
	}
	return window(matched, page), len(matched), nil
}

func (s *Store) GetStar(ctx context.Context, id int) (*model.Star, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	st, ok := s.stars[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	return &st, nil
}

func (s *Store) StarsOverlapping(ctx context.Context, from, to time.Time) ([]model.Star, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	out := []model.Star{}
	for _, st := range s.sortedStars() {
		if !st.StartDate.After(to) && !st.EndDate.Before(from) {
			out = append(out, st)
		}
	}
	return out, nil
}

func (s *Store) CreateStar(ctx context.Context, in model.NewStar) (*model.Star, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	se, ok := s.seasons[in.SeasonID]
	if !ok {
		return nil, fmt.Errorf("%w: season %d does not exist", db.ErrConstraint, in.SeasonID)
	}
	if in.StartDate.After(in.EndDate) {
		return nil, fmt.Errorf("%w: start_date after end_date", db.ErrConstraint)
	}
	st := model.Star{
		ID:               s.id(),
		SeasonID:         se.ID,
		SeasonName:       se.Name,
		Name:             in.Name,
		StartDate:        in.StartDate,
		EndDate:          in.EndDate,
		Description:      in.Description,
		WeatherInfo:      in.WeatherInfo,
		AgriculturalInfo: nonNil(in.AgriculturalInfo),
		Tips:             nonNil(in.Tips),
		CreatedAt:        s.Now(),
		UpdatedAt:        s.Now(),
	}
	s.stars[st.ID] = st
	return &st, nil
}

func (s *Store) UpdateStar(ctx context.Context, id int, p model.StarPatch) (*model.Star, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	st, ok := s.stars[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	if p.Name != nil {
		st.Name = *p.Name
	}
	if p.StartDate != nil {
		st.StartDate = *p.StartDate
	}
	if p.EndDate != nil {
		st.EndDate = *p.EndDate
	}
	if p.Description.Set {
		st.Description = p.Description.Value
	}
	if p.WeatherInfo.Set {
		st.WeatherInfo = p.WeatherInfo.Value
	}
	if p.AgriculturalInfo != nil {
		st.AgriculturalInfo = nonNil(*p.AgriculturalInfo)
	}
	if p.Tips != nil {
		st.Tips = nonNil(*p.Tips)
	}
	if st.StartDate.After(st.EndDate) {
		return nil, fmt.Errorf("%w: start_date after end_date", db.ErrConstraint)
	}
	st.UpdatedAt = s.Now()
	s.stars[id] = st
	return &st, nil
}

func (s *Store) DeleteStar(ctx context.Context, id int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return false, s.Err
	}
	if _, ok := s.stars[id]; !ok {
		return false, nil
	}
	delete(s.stars, id)
	return true, nil
}

// occasions

func (s *Store) sortedOccasions() []model.Occasion {
	out := make([]model.Occasion, 0, len(s.occasions))
	for _, o := range s.occasions {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.HijriMonth != b.HijriMonth {
			return a.HijriMonth < b.HijriMonth
		}
		if a.HijriDay != b.HijriDay {
			return a.HijriDay < b.HijriDay
		}
		return a.ID < b.ID
	})
	return out
}

func (s *Store) ListOccasions(ctx context.Context, page db.Page) ([]model.Occasion, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, 0, s.Err
	}
	all := s.sortedOccasions()
	return window(all, page), len(all), nil
}

func (s *Store) AllOccasions(ctx context.Context) ([]model.Occasion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	return s.sortedOccasions(), nil
}

func (s *Store) GetOccasion(ctx context.Context, id int) (*model.Occasion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	o, ok := s.occasions[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	return &o, nil
}

func (s *Store) CreateOccasion(ctx context.Context, in model.NewOccasion) (*model.Occasion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	o := model.Occasion{
		ID:          s.id(),
		HijriMonth:  in.HijriMonth,
		HijriDay:    in.HijriDay,
		Title:       in.Title,
		PrayerTitle: in.PrayerTitle,
		PrayerText:  in.PrayerText,
		CreatedAt:   s.Now(),
		UpdatedAt:   s.Now(),
	}
	s.occasions[o.ID] = o
	return &o, nil
}

func (s *Store) UpdateOccasion(ctx context.Context, id int, p model.OccasionPatch) (*model.Occasion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	o, ok := s.occasions[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	if p.HijriMonth != nil {
		o.HijriMonth = *p.HijriMonth
	}
	if p.HijriDay != nil {
		o.HijriDay = *p.HijriDay
	}
	if p.Title != nil {
		o.Title = *p.Title
	}
	if p.PrayerTitle != nil {
		o.PrayerTitle = *p.PrayerTitle
	}
	if p.PrayerText.Set {
		o.PrayerText = p.PrayerText.Value
	}
	o.UpdatedAt = s.Now()
	s.occasions[id] = o
	return &o, nil
}

func (s *Store) DeleteOccasion(ctx context.Context, id int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return false, s.Err
	}
	if _, ok := s.occasions[id]; !ok {
		return false, nil
	}
	delete(s.occasions, id)
	return true, nil
}

// prayers

func (s *Store) prayersByID() []model.Prayer {
	out := make([]model.Prayer, 0, len(s.prayers))
	for _, p := range s.prayers {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *Store) ListPrayers(ctx context.Context, page db.Page) ([]model.Prayer, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, 0, s.Err
	}
	all := s.prayersByID()
	sort.SliceStable(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.After(all[j].CreatedAt)
		}
		return all[i].ID > all[j].ID
	})
	return window(all, page), len(all), nil
}

func (s *Store) CountPrayers(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return 0, s.Err
	}
	return len(s.prayers), nil
}

func (s *Store) PrayerAt(ctx context.Context, offset int) (*model.Prayer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	all := s.prayersByID()
	if offset < 0 || offset >= len(all) {
		return nil, db.ErrNotFound
	}
	p := all[offset]
	return &p, nil
}

func (s *Store) GetPrayer(ctx context.Context, id int) (*model.Prayer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	p, ok := s.prayers[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	return &p, nil
}

func (s *Store) CreatePrayer(ctx context.Context, text string) (*model.Prayer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	p := model.Prayer{ID: s.id(), Text: text, CreatedAt: s.Now(), UpdatedAt: s.Now()}
	s.prayers[p.ID] = p
	return &p, nil
}

func (s *Store) UpdatePrayer(ctx context.Context, id int, text string) (*model.Prayer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	p, ok := s.prayers[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	p.Text = text
	p.UpdatedAt = s.Now()
	s.prayers[id] = p
	return &p, nil
}

func (s *Store) DeletePrayer(ctx context.Context, id int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return false, s.Err
	}
	if _, ok := s.prayers[id]; !ok {
		return false, nil
	}
	delete(s.prayers, id)
	return true, nil
}

func window[T any](all []T, page db.Page) []T {
	out := []T{}
	start := page.Offset()
	if start >= len(all) {
		return out
	}
	end := start + page.Limit
	if end > len(all) {
		end = len(all)
	}
	return append(out, all[start:end]...)
}

func nonNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	return append([]string{}, in...)
}
