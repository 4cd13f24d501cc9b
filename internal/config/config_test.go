package config

import (
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"APP_ENV", "PORT", "DB_DRIVER", "DATABASE_URL", "SESSION_TTL", "LOGIN_RATE_LIMIT",
		"VIEW_SYNC_INTERVAL", "COOKIE_SECURE", "ADMIN_PASSWORD", "ADMIN_PASSWORD_HASH",
		"STORAGE_DRIVER", "ADMIN_USERNAME",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_ENV", "development")
	t.Setenv("PORT", "8080")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("STORAGE_DRIVER", "database")
	t.Setenv("SESSION_TTL", "24h")
	t.Setenv("LOGIN_RATE_LIMIT", "5s")
	t.Setenv("VIEW_SYNC_INTERVAL", "1m")
	t.Setenv("COOKIE_SECURE", "false")
	t.Setenv("ADMIN_USERNAME", "admin")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.SessionTTL != 24*time.Hour {
		t.Errorf("SessionTTL = %v", cfg.SessionTTL)
	}
	if cfg.AdminPassword != DefaultDevPassword {
		t.Errorf("development should fall back to the default password")
	}
	if cfg.CookieSecure {
		t.Error("CookieSecure should default to false")
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	base := map[string]string{
		"APP_ENV":            "development",
		"DB_DRIVER":          "sqlite",
		"STORAGE_DRIVER":     "database",
		"SESSION_TTL":        "24h",
		"LOGIN_RATE_LIMIT":   "5s",
		"VIEW_SYNC_INTERVAL": "1m",
		"COOKIE_SECURE":      "false",
	}

	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"bad ttl", "SESSION_TTL", "a day"},
		{"zero ttl", "SESSION_TTL", "0s"},
		{"bad cookie flag", "COOKIE_SECURE", "sometimes"},
		{"bad driver", "DB_DRIVER", "mongo"},
		{"bad storage", "STORAGE_DRIVER", "ftp"},
		{"bad sync interval", "VIEW_SYNC_INTERVAL", "soon"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range base {
				t.Setenv(k, v)
			}
			t.Setenv(tt.key, tt.val)
			if _, err := Load(); err == nil {
				t.Fatalf("Load() with %s=%q should fail", tt.key, tt.val)
			}
		})
	}
}

func TestProductionRequiresPasswordHash(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_ENV", "production")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("STORAGE_DRIVER", "database")
	t.Setenv("SESSION_TTL", "24h")
	t.Setenv("LOGIN_RATE_LIMIT", "5s")
	t.Setenv("VIEW_SYNC_INTERVAL", "1m")
	t.Setenv("COOKIE_SECURE", "true")

	if _, err := Load(); err == nil {
		t.Fatal("production without ADMIN_PASSWORD_HASH should fail")
	}

	t.Setenv("ADMIN_PASSWORD", "plain")
	if _, err := Load(); err == nil {
		t.Fatal("production with plain ADMIN_PASSWORD should fail")
	}

	t.Setenv("ADMIN_PASSWORD_HASH", "$2a$10$abcdefghijklmnopqrstuu5Q0N0X9Xb1h7n2oQ8wqv1Yc0bq2m7a")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !cfg.CookieSecure {
		t.Error("CookieSecure should be true")
	}
}
