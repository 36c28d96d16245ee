package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	// LeagueKey has no default, so validation needs it from somewhere.
	t.Setenv("SIDELINE_LEAGUE_KEY", "461.l.12345")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.APIAddr != ":8080" {
		t.Errorf("APIAddr = %q, want :8080", cfg.APIAddr)
	}
	if cfg.PollInterval != 3*time.Minute {
		t.Errorf("PollInterval = %v, want 3m", cfg.PollInterval)
	}
	if cfg.Timezone != "America/New_York" {
		t.Errorf("Timezone = %q", cfg.Timezone)
	}
	if cfg.LeagueKey != "461.l.12345" {
		t.Errorf("LeagueKey = %q", cfg.LeagueKey)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SIDELINE_LEAGUE_KEY", "461.l.12345")
	t.Setenv("SIDELINE_API_ADDR", ":9090")
	t.Setenv("SIDELINE_POLL_INTERVAL", "45s")
	t.Setenv("SIDELINE_REDIS_URL", "redis://cache.internal:6379/2")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.APIAddr != ":9090" {
		t.Errorf("APIAddr = %q, want :9090", cfg.APIAddr)
	}
	if cfg.PollInterval != 45*time.Second {
		t.Errorf("PollInterval = %v, want 45s", cfg.PollInterval)
	}
	if cfg.RedisURL != "redis://cache.internal:6379/2" {
		t.Errorf("RedisURL = %q", cfg.RedisURL)
	}
	// Untouched keys keep their defaults.
	if cfg.WSAddr != ":8081" {
		t.Errorf("WSAddr = %q, want default :8081", cfg.WSAddr)
	}
}

func TestLoad_FileThenEnvPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sideline.yaml")
	yaml := "league_key: 461.l.12345\napi_addr: \":7000\"\ntimezone: \"UTC\"\n"
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("SIDELINE_CONFIG", path)
	t.Setenv("SIDELINE_API_ADDR", ":7001")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Env beats file, file beats default.
	if cfg.APIAddr != ":7001" {
		t.Errorf("APIAddr = %q, want env value :7001", cfg.APIAddr)
	}
	if cfg.Timezone != "UTC" {
		t.Errorf("Timezone = %q, want file value UTC", cfg.Timezone)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	t.Setenv("SIDELINE_CONFIG", filepath.Join(t.TempDir(), "absent.yaml"))

	_, err := Load()
	if !errors.Is(err, ErrLoadConfig) {
		t.Errorf("err = %v, want ErrLoadConfig", err)
	}
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{
			name: "missing league key",
			env:  map[string]string{},
		},
		{
			name: "empty api addr",
			env: map[string]string{
				"SIDELINE_LEAGUE_KEY": "461.l.12345",
				"SIDELINE_API_ADDR":   "",
			},
		},
		{
			name: "bad timezone",
			env: map[string]string{
				"SIDELINE_LEAGUE_KEY": "461.l.12345",
				"SIDELINE_TIMEZONE":   "Mars/Olympus_Mons",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("err = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestLocation(t *testing.T) {
	cfg := New()
	cfg.Timezone = "America/New_York"

	loc, err := cfg.Location()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loc.String() != "America/New_York" {
		t.Errorf("Location() = %v", loc)
	}
}
