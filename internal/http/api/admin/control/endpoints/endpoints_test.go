package endpoints

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MahmoudAkram21/um-qura-back/internal/auth"
	"github.com/MahmoudAkram21/um-qura-back/internal/db/memstore"
	"github.com/MahmoudAkram21/um-qura-back/internal/http/api"
	"github.com/MahmoudAkram21/um-qura-back/internal/http/middleware"
	"github.com/MahmoudAkram21/um-qura-back/internal/model"
	"github.com/MahmoudAkram21/um-qura-back/internal/mqtt"
)

type envelope struct {
	Status  bool                `json:"status"`
	Message string              `json:"message"`
	Data    json.RawMessage     `json:"data"`
	Errors  map[string][]string `json:"errors"`
}

type harness struct {
	t      *testing.T
	router *gin.Engine
	store  *memstore.Store
	events *mqtt.Recorder
	token  string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := memstore.New()
	events := &mqtt.Recorder{}
	authenticator := auth.NewAuthenticator("test-secret", time.Hour, store)
	token, err := authenticator.IssueToken(&model.Admin{ID: 7, Email: "admin@example.com"})
	require.NoError(t, err)

	r := gin.New()
	api.MountGroup(r, api.GroupConfig{
		Prefix:   "/api/v1/admin",
		Auth:     true,
		Verifier: authenticator,
	},
		SeasonModule(store, events),
		StarModule(store, events),
		OccasionModule(store, events),
		PrayerModule(store, events),
	)
	return &harness{t: t, router: r, store: store, events: events, token: token}
}

func (h *harness) do(method, path string, body any) (int, envelope) {
	h.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(h.t, json.NewEncoder(&buf).Encode(b))
		}
	}
	req := httptest.NewRequest(method, "/api/v1/admin"+path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if h.token != "" {
		req.Header.Set("Authorization", "Bearer "+h.token)
	}
	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)

	var env envelope
	require.NoError(h.t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w.Code, env
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	return out
}

func (h *harness) season(name string, order int) model.Season {
	h.t.Helper()
	s, err := h.store.CreateSeason(context.Background(), model.Season{
		Name: name, ColorHex: "#112233", IconName: "leaf", Duration: "Mar - May", SortOrder: order,
	})
	require.NoError(h.t, err)
	return *s
}

func path(prefix string, id int) string { return prefix + "/" + strconv.Itoa(id) }

func TestAdminRequiresToken(t *testing.T) {
	h := newHarness(t)

	h.token = ""
	code, env := h.do(http.MethodGet, "/seasons", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.False(t, env.Status)
	assert.Equal(t, middleware.MsgAuthRequired, env.Message)

	h.token = "garbage"
	code, env = h.do(http.MethodGet, "/seasons", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, middleware.MsgInvalidToken, env.Message)
}

func TestSeasonCRUD(t *testing.T) {
	h := newHarness(t)

	code, env := h.do(http.MethodPost, "/seasons", map[string]any{
		"name": "Spring", "colorHex": "#7CB342", "iconName": "leaf", "duration": "March - May", "sortOrder": 2,
	})
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, "Season created", env.Message)
	created := decode[struct {
		ID        int    `json:"id"`
		Name      string `json:"name"`
		SortOrder int    `json:"sortOrder"`
	}](t, env.Data)
	assert.Equal(t, "Spring", created.Name)
	assert.Equal(t, 2, created.SortOrder)

	h.season("Winter", 1)
	code, env = h.do(http.MethodGet, "/seasons", nil)
	require.Equal(t, http.StatusOK, code)
	list := decode[[]struct {
		Name string `json:"name"`
	}](t, env.Data)
	require.Len(t, list, 2)
	assert.Equal(t, "Winter", list[0].Name)

	code, env = h.do(http.MethodPut, path("/seasons", created.ID), map[string]any{"duration": "Mar - May"})
	require.Equal(t, http.StatusOK, code)
	updated := decode[struct {
		Name     string `json:"name"`
		Duration string `json:"duration"`
	}](t, env.Data)
	assert.Equal(t, "Spring", updated.Name)
	assert.Equal(t, "Mar - May", updated.Duration)

	code, _ = h.do(http.MethodDelete, path("/seasons", created.ID), nil)
	require.Equal(t, http.StatusOK, code)
	code, env = h.do(http.MethodGet, path("/seasons", created.ID), nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Season not found", env.Message)
	code, _ = h.do(http.MethodDelete, path("/seasons", created.ID), nil)
	assert.Equal(t, http.StatusNotFound, code)

	events := h.events.Events()
	require.Len(t, events, 3)
	assert.Equal(t, mqtt.Created, events[0].Action)
	assert.Equal(t, mqtt.Updated, events[1].Action)
	assert.Equal(t, mqtt.Deleted, events[2].Action)
	for _, ev := range events {
		assert.Equal(t, "seasons", ev.Entity)
		assert.Equal(t, created.ID, ev.ID)
	}
}

func TestSeasonValidation(t *testing.T) {
	h := newHarness(t)

	code, env := h.do(http.MethodPost, "/seasons", map[string]any{
		"name": "", "colorHex": "blue", "iconName": "leaf",
	})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Validation failed", env.Message)
	assert.Contains(t, env.Errors, "name")
	assert.Contains(t, env.Errors, "colorHex")
	assert.Contains(t, env.Errors, "duration")
	assert.NotContains(t, env.Errors, "iconName")

	code, env = h.do(http.MethodPost, "/seasons", `{"name": 5}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, env.Errors, "name")

	assert.Empty(t, h.events.Events())
}

func TestStarCRUD(t *testing.T) {
	h := newHarness(t)
	winter := h.season("Winter", 1)

	code, env := h.do(http.MethodPost, "/stars", map[string]any{
		"seasonId":         winter.ID,
		"name":             "Sharatan",
		"startDate":        "2025-01-06",
		"endDate":          "2025-01-19T00:00:00Z",
		"description":      "cold",
		"agriculturalInfo": []string{"plant wheat"},
	})
	require.Equal(t, http.StatusCreated, code, env.Errors)
	assert.Equal(t, "Star created successfully", env.Message)
	star := decode[struct {
		ID               int      `json:"id"`
		SeasonName       string   `json:"season_name"`
		DateRange        string   `json:"date_range"`
		Description      *string  `json:"description"`
		AgriculturalInfo []string `json:"agricultural_info"`
		Tips             []string `json:"tips"`
	}](t, env.Data)
	assert.Equal(t, "Winter", star.SeasonName)
	assert.Equal(t, "6 January - 19 January", star.DateRange)
	assert.Equal(t, []string{"plant wheat"}, star.AgriculturalInfo)
	assert.Equal(t, []string{}, star.Tips)

	t.Run("clear description with null", func(t *testing.T) {
		code, env := h.do(http.MethodPut, path("/stars", star.ID), `{"description": null}`)
		require.Equal(t, http.StatusOK, code)
		got := decode[struct {
			Description *string `json:"description"`
		}](t, env.Data)
		assert.Nil(t, got.Description)
	})

	t.Run("one-sided date change checked against stored range", func(t *testing.T) {
		code, env := h.do(http.MethodPut, path("/stars", star.ID), map[string]any{"startDate": "2025-02-01"})
		assert.Equal(t, http.StatusBadRequest, code)
		assert.Contains(t, env.Errors, "endDate")
	})

	t.Run("list", func(t *testing.T) {
		code, env := h.do(http.MethodGet, "/stars?limit=5", nil)
		require.Equal(t, http.StatusOK, code)
		got := decode[struct {
			Total int `json:"total"`
			Limit int `json:"limit"`
		}](t, env.Data)
		assert.Equal(t, 1, got.Total)
		assert.Equal(t, 5, got.Limit)
	})

	code, env = h.do(http.MethodDelete, path("/stars", star.ID), nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Star deleted successfully", env.Message)
	assert.JSONEq(t, `{"deleted":true}`, string(env.Data))
}

func TestStarValidation(t *testing.T) {
	h := newHarness(t)
	winter := h.season("Winter", 1)

	code, env := h.do(http.MethodPost, "/stars", map[string]any{
		"seasonId": winter.ID, "name": "Backwards", "startDate": "2025-03-01", "endDate": "2025-02-01",
	})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, env.Errors, "endDate")

	code, env = h.do(http.MethodPost, "/stars", map[string]any{
		"seasonId": winter.ID, "name": "Bad date", "startDate": "01/02/2025", "endDate": "2025-02-01",
	})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, env.Errors, "startDate")

	code, env = h.do(http.MethodPost, "/stars", map[string]any{
		"seasonId": 9999, "name": "Orphan", "startDate": "2025-01-01", "endDate": "2025-01-02",
	})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Constraint violation", env.Message)

	code, _ = h.do(http.MethodPut, "/stars/9999", map[string]any{"name": "Ghost"})
	assert.Equal(t, http.StatusNotFound, code)
}

func TestOccasionCRUD(t *testing.T) {
	h := newHarness(t)

	code, env := h.do(http.MethodPost, "/occasions", map[string]any{
		"hijriMonth": 9, "hijriDay": 1, "title": "Ramadan begins", "prayerTitle": "Dua",
	})
	require.Equal(t, http.StatusCreated, code, env.Errors)
	occ := decode[struct {
		ID           int     `json:"id"`
		HijriDisplay string  `json:"hijri_display"`
		PrayerText   *string `json:"prayer_text"`
	}](t, env.Data)
	assert.NotEmpty(t, occ.HijriDisplay)
	assert.Nil(t, occ.PrayerText)

	code, env = h.do(http.MethodPut, path("/occasions", occ.ID), map[string]any{"prayerText": "O Allah"})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Occasion updated successfully", env.Message)

	code, env = h.do(http.MethodPost, "/occasions", map[string]any{
		"hijriMonth": 13, "hijriDay": 31, "title": "x", "prayerTitle": "y",
	})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, env.Errors, "hijriMonth")
	assert.Contains(t, env.Errors, "hijriDay")

	code, env = h.do(http.MethodGet, "/occasions", nil)
	require.Equal(t, http.StatusOK, code)
	list := decode[struct {
		Occasions []json.RawMessage `json:"occasions"`
		Limit     int               `json:"limit"`
	}](t, env.Data)
	assert.Len(t, list.Occasions, 1)
	assert.Equal(t, DefaultOccasionLimit, list.Limit)

	code, _ = h.do(http.MethodDelete, path("/occasions", occ.ID), nil)
	assert.Equal(t, http.StatusOK, code)
	code, _ = h.do(http.MethodGet, path("/occasions", occ.ID), nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestPrayerCRUD(t *testing.T) {
	h := newHarness(t)

	code, env := h.do(http.MethodPost, "/prayers", map[string]any{"text": "first"})
	require.Equal(t, http.StatusCreated, code)
	first := decode[struct {
		ID        int    `json:"id"`
		CreatedAt string `json:"created_at"`
	}](t, env.Data)
	assert.NotEmpty(t, first.CreatedAt)

	code, _ = h.do(http.MethodPost, "/prayers", map[string]any{"text": "second"})
	require.Equal(t, http.StatusCreated, code)

	code, env = h.do(http.MethodGet, "/prayers", nil)
	require.Equal(t, http.StatusOK, code)
	list := decode[struct {
		Prayers []struct {
			Text string `json:"text"`
		} `json:"prayers"`
		Total int `json:"total"`
		Limit int `json:"limit"`
	}](t, env.Data)
	assert.Equal(t, 2, list.Total)
	assert.Equal(t, DefaultPrayerLimit, list.Limit)
	require.Len(t, list.Prayers, 2)
	assert.Equal(t, "second", list.Prayers[0].Text)

	code, env = h.do(http.MethodPut, path("/prayers", first.ID), map[string]any{})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "text is required for update", env.Message)

	code, env = h.do(http.MethodPut, path("/prayers", first.ID), map[string]any{"text": "edited"})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "edited", decode[struct {
		Text string `json:"text"`
	}](t, env.Data).Text)

	code, _ = h.do(http.MethodDelete, path("/prayers", first.ID), nil)
	assert.Equal(t, http.StatusOK, code)
	code, env = h.do(http.MethodDelete, path("/prayers", first.ID), nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Prayer not found", env.Message)
}
