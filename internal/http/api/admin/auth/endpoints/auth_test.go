package endpoints

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MahmoudAkram21/um-qura-back/internal/auth"
	"github.com/MahmoudAkram21/um-qura-back/internal/db/memstore"
	"github.com/MahmoudAkram21/um-qura-back/internal/http/api"
)

const secret = "test-secret"

// countingLimiter allows max hits per key.
type countingLimiter struct {
	mu     sync.Mutex
	max    int
	hits   map[string]int
	resets int
}

func newCountingLimiter(max int) *countingLimiter {
	return &countingLimiter{max: max, hits: map[string]int{}}
}

func (l *countingLimiter) Hit(_ context.Context, key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.hits[key]++
	return l.hits[key] <= l.max
}

func (l *countingLimiter) Reset(_ context.Context, key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.hits, key)
	l.resets++
}

type envelope struct {
	Status  bool                `json:"status"`
	Message string              `json:"message"`
	Data    json.RawMessage     `json:"data"`
	Errors  map[string][]string `json:"errors"`
}

func setup(t *testing.T, limiter *countingLimiter) (*gin.Engine, *auth.Authenticator) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := memstore.New()
	hash, err := auth.HashPassword("Admin123!")
	require.NoError(t, err)
	name := "Admin"
	_, err = store.UpsertAdmin(context.Background(), "admin@example.com", hash, &name)
	require.NoError(t, err)

	authenticator := auth.NewAuthenticator(secret, time.Hour, store)
	r := gin.New()
	var module api.Module
	if limiter != nil {
		module = AuthPublicModule(authenticator, limiter)
	} else {
		module = AuthPublicModule(authenticator, nil)
	}
	api.MountGroup(r, api.GroupConfig{Prefix: "/api/v1"}, module)
	return r, authenticator
}

func login(t *testing.T, r http.Handler, body string) (int, envelope) {
	t.Helper()
	return loginFrom(t, r, "192.0.2.1:1234", body)
}

func loginFrom(t *testing.T, r http.Handler, remoteAddr, body string) (int, envelope) {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.RemoteAddr = remoteAddr
	r.ServeHTTP(w, req)
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w.Code, env
}

func TestLogin_Success(t *testing.T) {
	limiter := newCountingLimiter(5)
	r, authenticator := setup(t, limiter)

	code, env := login(t, r, `{"email":"ADMIN@example.com","password":"Admin123!"}`)
	require.Equal(t, http.StatusOK, code)
	assert.True(t, env.Status)
	assert.Equal(t, "Login successful", env.Message)

	var got struct {
		Token string `json:"token"`
		Admin struct {
			ID    int     `json:"id"`
			Email string  `json:"email"`
			Name  *string `json:"name"`
		} `json:"admin"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, "admin@example.com", got.Admin.Email)
	require.NotNil(t, got.Admin.Name)
	assert.Equal(t, "Admin", *got.Admin.Name)

	claims, err := authenticator.VerifyToken(got.Token)
	require.NoError(t, err)
	assert.Equal(t, got.Admin.ID, claims.AdminID)
	assert.Equal(t, 1, limiter.resets)
}

func TestLogin_UniformFailure(t *testing.T) {
	r, _ := setup(t, nil)

	codeA, envA := login(t, r, `{"email":"admin@example.com","password":"wrong"}`)
	codeB, envB := login(t, r, `{"email":"nobody@example.com","password":"Admin123!"}`)

	assert.Equal(t, http.StatusUnauthorized, codeA)
	assert.Equal(t, codeA, codeB)
	assert.Equal(t, "Invalid email or password", envA.Message)
	assert.Equal(t, envA, envB)
}

func TestLogin_Validation(t *testing.T) {
	r, _ := setup(t, nil)

	code, env := login(t, r, `{"email":"not-an-email"}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.False(t, env.Status)
	assert.Equal(t, "Validation failed", env.Message)
	assert.Contains(t, env.Errors, "email")
	assert.Contains(t, env.Errors, "password")

	code, env = login(t, r, `{"email":`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, env.Errors, "body")
}

func TestLogin_RateLimited(t *testing.T) {
	limiter := newCountingLimiter(2)
	r, _ := setup(t, limiter)

	for i := 0; i < 2; i++ {
		code, _ := login(t, r, `{"email":"admin@example.com","password":"wrong"}`)
		require.Equal(t, http.StatusUnauthorized, code)
	}

	code, env := login(t, r, `{"email":"Admin@Example.com","password":"Admin123!"}`)
	assert.Equal(t, http.StatusTooManyRequests, code)
	assert.Equal(t, "Too many login attempts, please try again later", env.Message)

	code, _ = login(t, r, `{"email":"other@example.com","password":"x"}`)
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestLogin_RateLimitIsPerClient(t *testing.T) {
	limiter := newCountingLimiter(1)
	r, _ := setup(t, limiter)

	code, _ := login(t, r, `{"email":"admin@example.com","password":"wrong"}`)
	require.Equal(t, http.StatusUnauthorized, code)
	code, _ = login(t, r, `{"email":"admin@example.com","password":"wrong"}`)
	require.Equal(t, http.StatusTooManyRequests, code)

	code, _ = loginFrom(t, r, "198.51.100.7:4321", `{"email":"admin@example.com","password":"Admin123!"}`)
	assert.Equal(t, http.StatusOK, code)
}

func TestLogin_ConcurrentFailuresRespectLimit(t *testing.T) {
	const limit = 3
	limiter := newCountingLimiter(limit)
	r, _ := setup(t, limiter)

	var (
		mu    sync.Mutex
		codes = map[int]int{}
		wg    sync.WaitGroup
	)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login",
				strings.NewReader(`{"email":"admin@example.com","password":"wrong"}`))
			req.Header.Set("Content-Type", "application/json")
			r.ServeHTTP(w, req)
			mu.Lock()
			codes[w.Code]++
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, limit, codes[http.StatusUnauthorized])
	assert.Equal(t, 10-limit, codes[http.StatusTooManyRequests])
}
