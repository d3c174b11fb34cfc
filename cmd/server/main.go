package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/MahmoudAkram21/um-qura-back/internal/auth"
	"github.com/MahmoudAkram21/um-qura-back/internal/config"
	"github.com/MahmoudAkram21/um-qura-back/internal/db"
	"github.com/MahmoudAkram21/um-qura-back/internal/http/middleware"
	"github.com/MahmoudAkram21/um-qura-back/internal/mqtt"
	"github.com/MahmoudAkram21/um-qura-back/internal/redis"
)

func main() {
	env := LoadEnvironment()
	setupLogger(env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	conn, err := db.Open(ctx, env.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}
	defer conn.Close()

	if env.RunMigrations {
		if err := db.RunMigrations(ctx, conn, env.MigrationsPath); err != nil {
			log.Fatal().Err(err).Msg("database migration failed")
		}
	}

	store := db.NewStore(conn)
	authenticator := auth.NewAuthenticator(env.JWTSecret, env.JWTTTL, store)

	var limiter redis.LoginLimiter = redis.NoopLimiter{}
	if env.RedisAddress != "" {
		rdb, err := redis.NewClient(ctx, env.RedisAddress, env.RedisUsername, env.RedisPassword)
		if err != nil {
			log.Warn().Err(err).Msg("redis unavailable, login rate limiting disabled")
		} else {
			defer rdb.Close()
			limiter = redis.NewLoginLimiter(rdb, env.LoginMaxAttempts, env.LoginWindow)
		}
	}

	publisher, err := mqtt.New(mqtt.Config{
		BrokerURL:   env.MQTTBrokerURL,
		ClientID:    env.MQTTClientID,
		TopicPrefix: env.MQTTTopicPrefix,
	})
	if err != nil {
		log.Warn().Err(err).Msg("mqtt unavailable, change events disabled")
		publisher = mqtt.Noop{}
	}
	defer publisher.Close()

	if env.Production() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.RequestLogger(), middleware.Recovery(env.Production()))
	RegisterRoutes(r, env, Dependencies{
		Store:         store,
		Authenticator: authenticator,
		Limiter:       limiter,
		Publisher:     publisher,
	})

	log.Info().Str("address", env.ServerAddress).Str("env", env.Environment).Msg("server listening")
	if err := serveWithShutdown(ctx, env.ServerAddress, r, 10*time.Second); err != nil {
		log.Error().Err(err).Msg("server stopped")
		return
	}
	log.Info().Msg("server shut down")
}

func setupLogger(env *config.Config) {
	zerolog.TimeFieldFormat = time.RFC3339
	if env.Production() {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		return
	}
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
}
