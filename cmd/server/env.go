package main

import (
	"github.com/rs/zerolog/log"

	"github.com/MahmoudAkram21/um-qura-back/internal/config"
)

// LoadEnvironment reads and validates env vars
func LoadEnvironment() *config.Config {
	env, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load environment")
	}
	if err := env.RequireServer(); err != nil {
		log.Fatal().Err(err).Msg("missing required environment variables")
	}
	return env
}
