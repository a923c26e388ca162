package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Port      string `env:"PORT" env-default:"8080"`
	LogLevel  string `env:"LOG_LEVEL" env-default:"info"`
	LogPretty bool   `env:"LOG_PRETTY" env-default:"false"`

	BoardRows    int    `env:"BOARD_HEIGHT" env-default:"6"`
	BoardColumns int    `env:"BOARD_WIDTH" env-default:"7"`
	Player1Color string `env:"PLAYER1_COLOR" env-default:"#ff0000"`
	Player2Color string `env:"PLAYER2_COLOR" env-default:"#0000ff"`

	// ClickPause is how long input stays closed after an accepted drop.
	ClickPause time.Duration `env:"CLICK_PAUSE" env-default:"250ms"`

	FrontendURL       string `env:"FRONTEND_URL" env-default:"http://localhost:8080"`
	AllowedOriginsCSV string `env:"ALLOWED_ORIGINS" env-default:""`
	AllowedOrigins    []string

	RedisURL      string `env:"REDIS_URL" env-default:""`
	RedisPassword string `env:"REDIS_PASSWORD" env-default:""`

	StaticDir string `env:"STATIC_DIR" env-default:"./static"`
}

// Load reads the environment into a Config. The caller is expected to have
// loaded any .env file first.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("unable to read environment: %w", err)
	}

	if cfg.BoardRows < 1 || cfg.BoardColumns < 1 {
		return nil, fmt.Errorf("board must be at least 1x1, got %dx%d", cfg.BoardRows, cfg.BoardColumns)
	}
	if cfg.ClickPause < 0 {
		return nil, fmt.Errorf("CLICK_PAUSE must not be negative, got %s", cfg.ClickPause)
	}

	// Build allowed origins list (Frontend URL + Localhost + CSV values)
	cfg.AllowedOrigins = []string{
		cfg.FrontendURL,
		"http://localhost:5173", // Local development
	}
	if cfg.FrontendURL == "" {
		cfg.AllowedOrigins = cfg.AllowedOrigins[1:]
	}
	for _, origin := range strings.Split(cfg.AllowedOriginsCSV, ",") {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, trimmed)
		}
	}

	return cfg, nil
}

func (c *Config) RedisEnabled() bool {
	return c.RedisURL != ""
}
