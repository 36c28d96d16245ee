// Package config defines service configuration and its layered loading:
// defaults, optional YAML file, then SIDELINE_* environment overrides.
package config

import "time"

// Config contains process configuration shared by all sideline binaries.
type Config struct {
	// APIAddr configures the HTTP API listen address.
	APIAddr string `koanf:"api_addr"`

	// WSAddr configures the WebSocket broadcaster listen address.
	WSAddr string `koanf:"ws_addr"`

	// RedisURL is the connection URL for the cache/series/stream Redis.
	RedisURL string `koanf:"redis_url"`

	// PostgresDSN is the polls database connection string.
	PostgresDSN string `koanf:"postgres_dsn"`

	// LeagueKey is the Yahoo Fantasy league key, e.g. "nfl.l.123456".
	LeagueKey string `koanf:"league_key"`

	// Timezone renders series point labels and anchors the schedule gate,
	// e.g. "America/New_York".
	Timezone string `koanf:"timezone"`

	// PollInterval is the win-probability polling cadence.
	PollInterval time.Duration `koanf:"poll_interval"`

	// CycleTimeout bounds one whole poll cycle wall-clock.
	CycleTimeout time.Duration `koanf:"cycle_timeout"`

	// ScheduleBaseURL is the NFL schedule/status feed base URL.
	ScheduleBaseURL string `koanf:"schedule_base_url"`

	// YahooBaseURL is the Yahoo Fantasy API base URL.
	YahooBaseURL string `koanf:"yahoo_base_url"`

	// Yahoo OAuth2 credentials. The refresh token is exchanged for access
	// tokens transparently by the token source.
	YahooClientID     string `koanf:"yahoo_client_id"`
	YahooClientSecret string `koanf:"yahoo_client_secret"`
	YahooRefreshToken string `koanf:"yahoo_refresh_token"`
	YahooTokenURL     string `koanf:"yahoo_token_url"`

	// CORSOrigins lists allowed origins for the HTTP API.
	CORSOrigins []string `koanf:"cors_origins"`
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		APIAddr:         ":8080",
		WSAddr:          ":8081",
		RedisURL:        "redis://localhost:6379",
		PostgresDSN:     "postgres://localhost:5432/sideline?sslmode=disable",
		Timezone:        "America/New_York",
		PollInterval:    3 * time.Minute,
		CycleTimeout:    90 * time.Second,
		ScheduleBaseURL: "https://site.api.espn.com/apis/site/v2/sports",
		YahooBaseURL:    "https://fantasysports.yahooapis.com/fantasy/v2",
		YahooTokenURL:   "https://api.login.yahoo.com/oauth2/get_token",
		CORSOrigins:     []string{"http://localhost:3000"},
	}
}
