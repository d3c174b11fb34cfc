package endpoints

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/MahmoudAkram21/um-qura-back/internal/auth"
	"github.com/MahmoudAkram21/um-qura-back/internal/http/api"
	"github.com/MahmoudAkram21/um-qura-back/internal/http/api/admin/auth/packets"
	"github.com/MahmoudAkram21/um-qura-back/internal/redis"
)

// AuthPublicModule mounts the public login endpoint (/auth/login).
func AuthPublicModule(authenticator *auth.Authenticator, limiter redis.LoginLimiter) api.Module {
	ctl := newAccountManager(authenticator, limiter)
	return api.ModuleFunc(func(c *api.Controller) {
		c.PUBLIC_POST("/auth/login", ctl.adminLogin)
	})
}

type AccountManager struct {
	auth    *auth.Authenticator
	limiter redis.LoginLimiter
}

func newAccountManager(authenticator *auth.Authenticator, limiter redis.LoginLimiter) *AccountManager {
	if limiter == nil {
		limiter = redis.NoopLimiter{}
	}
	return &AccountManager{auth: authenticator, limiter: limiter}
}

// POST /api/v1/auth/login
func (a *AccountManager) adminLogin(ctx *gin.Context) (any, *api.APIError) {
	var request packets.LoginRequest
	if apiErr := api.BindJSON(ctx, &request); apiErr != nil {
		return nil, apiErr
	}

	rc := ctx.Request.Context()
	email := auth.NormalizeEmail(request.Email)
	key := email + "|" + ctx.ClientIP()
	if !a.limiter.Hit(rc, key) {
		log.Warn().Str("email", email).Str("ip", ctx.ClientIP()).Msg("login throttled")
		return nil, &api.APIError{Kind: api.KindRateLimited, Message: "Too many login attempts, please try again later"}
	}

	admin, token, err := a.auth.Login(rc, request.Email, request.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		return nil, api.Unauthorized("Invalid email or password")
	}
	if err != nil {
		return nil, api.Internal(err)
	}
	a.limiter.Reset(rc, key)

	return api.OK("Login successful", packets.LoginResponse{
		Token: token,
		Admin: packets.AdminResponse{ID: admin.ID, Email: admin.Email, Name: admin.Name},
	}), nil
}
