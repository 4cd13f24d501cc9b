package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// DefaultDevPassword is accepted only in development when no admin password is configured.
const DefaultDevPassword = "clabs2024"

type Config struct {
	AppEnv         string
	Port           string
	AllowedOrigins string

	DBDriver    string
	DatabaseURL string
	SQLitePath  string
	RedisURL    string

	MeiliSearchHost string
	MeiliMasterKey  string

	StorageDriver          string
	CloudinaryURL          string
	CloudinaryUploadFolder string

	AdminUsername     string
	AdminPassword     string
	AdminPasswordHash string
	SessionTTL        time.Duration
	CookieSecure      bool

	ShowcaseFixtures string

	LoginRateLimit   time.Duration
	ViewSyncInterval time.Duration
}

func Load() (*Config, error) {
	// Don't fail if .env doesn't exist (might be prod env vars)
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:         getEnv("APP_ENV", "development"),
		Port:           getEnv("PORT", "8080"),
		AllowedOrigins: getEnv("ALLOWED_ORIGINS", "*"),

		DBDriver:    getEnv("DB_DRIVER", "sqlite"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		SQLitePath:  getEnv("SQLITE_PATH", "clabs.db"),
		RedisURL:    os.Getenv("REDIS_URL"),

		MeiliSearchHost: os.Getenv("MEILISEARCH_HOST"),
		MeiliMasterKey:  os.Getenv("MEILI_MASTER_KEY"),

		StorageDriver:          getEnv("STORAGE_DRIVER", "database"),
		CloudinaryURL:          os.Getenv("CLOUDINARY_URL"),
		CloudinaryUploadFolder: getEnv("CLOUDINARY_UPLOAD_FOLDER", "clabs"),

		AdminUsername:     getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword:     os.Getenv("ADMIN_PASSWORD"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),

		ShowcaseFixtures: os.Getenv("SHOWCASE_FIXTURES"),
	}

	if cfg.DBDriver == "postgres" && cfg.DatabaseURL == "" {
		cfg.DatabaseURL = fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			getEnv("DB_HOST", "localhost"),
			getEnv("DB_USER", "postgres"),
			os.Getenv("DB_PASS"),
			getEnv("DB_NAME", "clabs"),
			getEnv("DB_PORT", "5432"),
		)
	}

	var err error
	if cfg.SessionTTL, err = parseDuration("SESSION_TTL", "24h"); err != nil {
		return nil, err
	}
	if cfg.LoginRateLimit, err = parseDuration("LOGIN_RATE_LIMIT", "5s"); err != nil {
		return nil, err
	}
	if cfg.ViewSyncInterval, err = parseDuration("VIEW_SYNC_INTERVAL", "1m"); err != nil {
		return nil, err
	}

	cfg.CookieSecure, err = strconv.ParseBool(getEnv("COOKIE_SECURE", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid COOKIE_SECURE: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func (c *Config) validate() error {
	switch c.DBDriver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("invalid DB_DRIVER %q", c.DBDriver)
	}
	switch c.StorageDriver {
	case "database", "cloudinary":
	default:
		return fmt.Errorf("invalid STORAGE_DRIVER %q", c.StorageDriver)
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive")
	}

	if c.AdminPasswordHash == "" && c.AdminPassword == "" {
		if !c.IsDevelopment() {
			return fmt.Errorf("ADMIN_PASSWORD_HASH is required outside development")
		}
		c.AdminPassword = DefaultDevPassword
	}
	if c.AdminPasswordHash == "" && !c.IsDevelopment() {
		return fmt.Errorf("ADMIN_PASSWORD is only accepted in development, set ADMIN_PASSWORD_HASH")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func parseDuration(key, fallback string) (time.Duration, error) {
	d, err := time.ParseDuration(getEnv(key, fallback))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
