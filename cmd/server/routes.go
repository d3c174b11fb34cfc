package main

import (
	"math/rand/v2"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/MahmoudAkram21/um-qura-back/internal/auth"
	"github.com/MahmoudAkram21/um-qura-back/internal/config"
	"github.com/MahmoudAkram21/um-qura-back/internal/db"
	"github.com/MahmoudAkram21/um-qura-back/internal/http/api"
	authapi "github.com/MahmoudAkram21/um-qura-back/internal/http/api/admin/auth/endpoints"
	adminapi "github.com/MahmoudAkram21/um-qura-back/internal/http/api/admin/control/endpoints"
	mobileapi "github.com/MahmoudAkram21/um-qura-back/internal/http/api/mobile/endpoints"
	"github.com/MahmoudAkram21/um-qura-back/internal/http/api/mobile/packets"
	"github.com/MahmoudAkram21/um-qura-back/internal/http/middleware"
	"github.com/MahmoudAkram21/um-qura-back/internal/mqtt"
	"github.com/MahmoudAkram21/um-qura-back/internal/redis"
)

const (
	frontendOrigin = "https://um-qura-front-it2z.vercel.app"
	serviceName    = "agricultural-calendar-api"
)

type Dependencies struct {
	Store         db.Store
	Authenticator *auth.Authenticator
	Limiter       redis.LoginLimiter
	Publisher     mqtt.Publisher
	Now           func() time.Time
}

// RegisterRoutes sets up all application routes
func RegisterRoutes(r *gin.Engine, env *config.Config, deps Dependencies) {
	r.Use(cors.New(corsConfig(env)))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, packets.HealthResponse{OK: true, Service: serviceName})
	})

	now := deps.Now
	if now == nil {
		now = time.Now
	}
	prod := env.Production()

	api.MountGroup(r, api.GroupConfig{Prefix: "/api/v1/stars", Production: prod},
		mobileapi.CalendarModule(deps.Store),
	)

	api.MountGroup(r, api.GroupConfig{Prefix: "/api/v1/mobile", Production: prod},
		mobileapi.CalendarModule(deps.Store),
		mobileapi.StarModule(deps.Store, now),
	)

	api.MountGroup(r, api.GroupConfig{Prefix: "/api/v1", Production: prod},
		mobileapi.OccasionModule(deps.Store, now, env.CalendarLocation),
		mobileapi.PrayerModule(deps.Store, rand.IntN),
		authapi.AuthPublicModule(deps.Authenticator, deps.Limiter),
	)

	api.MountGroup(r, api.GroupConfig{
		Prefix:     "/api/v1/admin",
		Auth:       true,
		Verifier:   deps.Authenticator,
		Production: prod,
	},
		adminapi.SeasonModule(deps.Store, deps.Publisher),
		adminapi.StarModule(deps.Store, deps.Publisher),
		adminapi.OccasionModule(deps.Store, deps.Publisher),
		adminapi.PrayerModule(deps.Store, deps.Publisher),
	)

	r.NoRoute(middleware.NotFound())
}

func corsConfig(env *config.Config) cors.Config {
	cfg := cors.Config{
		AllowMethods: []string{
			"GET",
			"POST",
			"PUT",
			"PATCH",
			"DELETE",
			"OPTIONS",
		},
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Authorization",
			"Accept",
			"X-Request-ID",
		},
		ExposeHeaders: []string{
			"Content-Length",
			"X-Request-ID",
		},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if origins := env.AllowedOrigins(frontendOrigin); origins != nil {
		cfg.AllowOrigins = origins
	} else {
		cfg.AllowOriginFunc = func(string) bool { return true }
	}
	return cfg
}
