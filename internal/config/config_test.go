package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DB_USER", "fyyur")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "5000" || cfg.DBDriver != "mysql" || cfg.DBHost != "localhost" || cfg.DBPort != "3306" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if !cfg.DBAutoMigrate || cfg.AuthEnabled || cfg.EventsEnabled {
		t.Fatalf("unexpected feature defaults: %+v", cfg)
	}
	if cfg.Location() != time.UTC {
		t.Fatalf("location = %v, want UTC", cfg.Location())
	}
	if !cfg.Cache.Enabled || cfg.Cache.TTL != 30*time.Second || !cfg.Cache.Caches("get") || cfg.Cache.Caches("POST") {
		t.Fatalf("cache defaults = %+v", cfg.Cache)
	}
	if cfg.RateLimit.Capacity != 60 || cfg.RateLimit.RefillInterval != time.Second || cfg.RateLimit.TTL != 10*time.Minute {
		t.Fatalf("rate limit defaults = %+v", cfg.RateLimit)
	}
	if cfg.Redis.Address() != "localhost:6379" {
		t.Fatalf("redis address = %q", cfg.Redis.Address())
	}
}

func TestLoadSQLite(t *testing.T) {
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("DB_PATH", "/tmp/fyyur.db")
	t.Setenv("APP_TIMEZONE", "America/New_York")

	cfg, err := Load()
	if err != nil {
		if strings.Contains(err.Error(), "APP_TIMEZONE") {
			t.Skipf("tzdata unavailable: %v", err)
		}
		t.Fatalf("load: %v", err)
	}
	if cfg.DBDriver != "sqlite" || cfg.DBPath != "/tmp/fyyur.db" {
		t.Fatalf("db = %q %q", cfg.DBDriver, cfg.DBPath)
	}
	if cfg.Location().String() != "America/New_York" {
		t.Fatalf("location = %v", cfg.Location())
	}
}

func TestLoadRejectsInvalidCombinations(t *testing.T) {
	cases := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"mysql without user", map[string]string{"DB_DRIVER": "mysql", "DB_USER": ""}, "DB_USER"},
		{"unknown driver", map[string]string{"DB_DRIVER": "oracle"}, "not supported"},
		{"sqlite without path", map[string]string{"DB_DRIVER": "sqlite", "DB_PATH": " "}, "DB_PATH"},
		{"auth without secret", map[string]string{
			"DB_DRIVER": "sqlite", "AUTH_ENABLED": "true",
			"ADMIN_EMAIL": "admin@fyyur.test", "ADMIN_PASSWORD_HASH": "x",
		}, "JWT_SECRET"},
		{"auth without admin", map[string]string{
			"DB_DRIVER": "sqlite", "AUTH_ENABLED": "true", "JWT_SECRET": "s3cret",
		}, "ADMIN_EMAIL"},
		{"bad timezone", map[string]string{"DB_DRIVER": "sqlite", "APP_TIMEZONE": "Mars/Olympus"}, "APP_TIMEZONE"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("error = %v, want mention of %s", err, tc.want)
			}
		})
	}
}

func TestRateLimitShorthands(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("RATE_LIMIT_BURST", "5")
	t.Setenv("RATE_LIMIT_REFILL_EVERY", "2m")
	t.Setenv("RATE_LIMIT_TTL", "1m")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	rl := cfg.RateLimit
	if rl.Capacity != 5 || rl.RefillTokens != 1 || rl.RefillInterval != 2*time.Minute {
		t.Fatalf("rate limit = %+v", rl)
	}
	if rl.TTL != 10*time.Minute {
		t.Fatalf("ttl = %v, want five refill intervals", rl.TTL)
	}
}

func TestRedisAddressPrefersHostPort(t *testing.T) {
	c := RedisConfig{Addr: "cache:6379", Host: "redis", Port: "6380"}
	if got := c.Address(); got != "redis:6380" {
		t.Fatalf("address = %q", got)
	}
	c.Port = ""
	if got := c.Address(); got != "cache:6379" {
		t.Fatalf("address = %q", got)
	}
}
