package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MahmoudAkram21/um-qura-back/internal/auth"
	"github.com/MahmoudAkram21/um-qura-back/internal/config"
	"github.com/MahmoudAkram21/um-qura-back/internal/db/memstore"
	"github.com/MahmoudAkram21/um-qura-back/internal/http/middleware"
	"github.com/MahmoudAkram21/um-qura-back/internal/mqtt"
	"github.com/MahmoudAkram21/um-qura-back/internal/redis"
	"github.com/MahmoudAkram21/um-qura-back/internal/seed"
)

func newServer(t *testing.T, env *config.Config) (*gin.Engine, *mqtt.Recorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := memstore.New()
	_, err := seed.Run(context.Background(), store, seed.Options{Year: 2025})
	require.NoError(t, err)

	if env.CalendarLocation == nil {
		env.CalendarLocation = time.UTC
	}
	events := &mqtt.Recorder{}
	r := gin.New()
	r.Use(middleware.RequestLogger(), middleware.Recovery(false))
	RegisterRoutes(r, env, Dependencies{
		Store:         store,
		Authenticator: auth.NewAuthenticator("route-secret", time.Hour, store),
		Limiter:       redis.NoopLimiter{},
		Publisher:     events,
		Now:           func() time.Time { return time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC) },
	})
	return r, events
}

func send(r http.Handler, method, target, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	r, _ := newServer(t, &config.Config{})
	w := send(r, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true,"service":"agricultural-calendar-api"}`, w.Body.String())
}

func TestUnknownRoute(t *testing.T) {
	r, _ := newServer(t, &config.Config{})
	w := send(r, http.MethodGet, "/api/v1/nothing", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"status":false,"message":"Resource not found"}`, w.Body.String())
}

func TestPublicRoutes(t *testing.T) {
	r, _ := newServer(t, &config.Config{})

	for _, target := range []string{
		"/api/v1/stars/calendar",
		"/api/v1/mobile/calendar",
		"/api/v1/mobile/stars",
		"/api/v1/mobile/stars/current",
		"/api/v1/occasions",
	} {
		w := send(r, http.MethodGet, target, "", nil)
		assert.Equal(t, http.StatusOK, w.Code, target)
	}

	w := send(r, http.MethodGet, "/api/v1/mobile/stars/current", "", nil)
	var env struct {
		Data struct {
			Name string `json:"name"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Equal(t, "الشرطان", env.Data.Name)

	w = send(r, http.MethodGet, "/api/v1/prayers/random", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLoginThenAdmin(t *testing.T) {
	r, events := newServer(t, &config.Config{})

	w := send(r, http.MethodGet, "/api/v1/admin/seasons", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = send(r, http.MethodPost, "/api/v1/auth/login",
		`{"email":"admin@example.com","password":"`+seed.DefaultAdminPassword+`"}`, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var login struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &login))
	bearer := map[string]string{"Authorization": "Bearer " + login.Data.Token}

	w = send(r, http.MethodGet, "/api/v1/admin/seasons", "", bearer)
	assert.Equal(t, http.StatusOK, w.Code)

	w = send(r, http.MethodPost, "/api/v1/admin/prayers", `{"text":"O Allah"}`, bearer)
	require.Equal(t, http.StatusCreated, w.Code)
	w = send(r, http.MethodGet, "/api/v1/prayers/random", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	require.Len(t, events.Events(), 1)
	assert.Equal(t, "prayers", events.Events()[0].Entity)
}

func TestCORS(t *testing.T) {
	t.Run("allow all", func(t *testing.T) {
		r, _ := newServer(t, &config.Config{})
		w := send(r, http.MethodGet, "/health", "", map[string]string{"Origin": "https://anything.example"})
		assert.Equal(t, "https://anything.example", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("list keeps frontend", func(t *testing.T) {
		r, _ := newServer(t, &config.Config{CORSOrigin: "https://admin.example"})

		w := send(r, http.MethodGet, "/health", "", map[string]string{"Origin": "https://admin.example"})
		assert.Equal(t, "https://admin.example", w.Header().Get("Access-Control-Allow-Origin"))

		w = send(r, http.MethodGet, "/health", "", map[string]string{"Origin": frontendOrigin})
		assert.Equal(t, frontendOrigin, w.Header().Get("Access-Control-Allow-Origin"))

		w = send(r, http.MethodGet, "/health", "", map[string]string{"Origin": "https://evil.example"})
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
