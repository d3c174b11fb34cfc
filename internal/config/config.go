package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/MahmoudAkram21/um-qura-back/internal/auth"
)

// Config holds environment-based settings
type Config struct {
	Environment    string
	ServerAddress  string
	DatabaseURL    string
	MigrationsPath string
	RunMigrations  bool

	JWTSecret string
	JWTTTL    time.Duration

	CORSOrigin string

	// CalendarLocation decides which civil day is "today" for occasions.
	CalendarLocation *time.Location

	RedisAddress     string
	RedisUsername    string
	RedisPassword    string
	LoginMaxAttempts int
	LoginWindow      time.Duration

	MQTTBrokerURL   string
	MQTTClientID    string
	MQTTTopicPrefix string

	AdminEmail    string
	AdminPassword string
	AdminName     string
}

func (c Config) Production() bool {
	return c.Environment == "production"
}

// Load reads configuration from environment variables, after loading a
// .env file when one is present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Environment:     getenv("APP_ENV", "development"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		MigrationsPath:  getenv("MIGRATIONS_PATH", "./migrations"),
		RunMigrations:   os.Getenv("RUN_MIGRATIONS") != "false",
		JWTSecret:       os.Getenv("JWT_SECRET"),
		CORSOrigin:      os.Getenv("CORS_ORIGIN"),
		RedisAddress:    os.Getenv("REDIS_ADDRESS"),
		RedisUsername:   os.Getenv("REDIS_USERNAME"),
		RedisPassword:   os.Getenv("REDIS_PASSWORD"),
		MQTTBrokerURL:   os.Getenv("MQTT_BROKER_URL"),
		MQTTClientID:    getenv("MQTT_CLIENT_ID", "um-qura-back"),
		MQTTTopicPrefix: os.Getenv("MQTT_TOPIC_PREFIX"),
		AdminEmail:      os.Getenv("ADMIN_EMAIL"),
		AdminPassword:   os.Getenv("ADMIN_PASSWORD"),
		AdminName:       os.Getenv("ADMIN_NAME"),
	}

	cfg.ServerAddress = os.Getenv("SERVER_ADDRESS")
	if cfg.ServerAddress == "" {
		cfg.ServerAddress = ":" + getenv("PORT", "4000")
	}

	var err error
	if cfg.JWTTTL, err = auth.ParseTTL(os.Getenv("JWT_EXPIRES_IN")); err != nil {
		return nil, fmt.Errorf("JWT_EXPIRES_IN: %w", err)
	}

	cfg.CalendarLocation = time.Local
	if tz := os.Getenv("CALENDAR_TIMEZONE"); tz != "" {
		if cfg.CalendarLocation, err = time.LoadLocation(tz); err != nil {
			return nil, fmt.Errorf("CALENDAR_TIMEZONE: %w", err)
		}
	}

	if cfg.LoginMaxAttempts, err = getint("LOGIN_MAX_ATTEMPTS", 10); err != nil {
		return nil, err
	}
	cfg.LoginWindow = 15 * time.Minute
	if w := os.Getenv("LOGIN_ATTEMPT_WINDOW"); w != "" {
		if cfg.LoginWindow, err = time.ParseDuration(w); err != nil {
			return nil, fmt.Errorf("LOGIN_ATTEMPT_WINDOW: %w", err)
		}
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	return cfg, nil
}

// RequireServer checks the settings only the HTTP server needs.
func (c *Config) RequireServer() error {
	if strings.TrimSpace(c.JWTSecret) == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	return nil
}

// AllowedOrigins is nil when every origin is allowed.
func (c *Config) AllowedOrigins(always string) []string {
	if c.CORSOrigin == "" || c.CORSOrigin == "*" {
		return nil
	}
	out := []string{always}
	for _, o := range strings.Split(c.CORSOrigin, ",") {
		if o = strings.TrimSpace(o); o != "" && o != always {
			out = append(out, o)
		}
	}
	return out
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getint(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}
