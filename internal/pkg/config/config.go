package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Env        string `env:"ENV,         default=development"`
	LogLevel   string `env:"LOG_LEVEL,   default=info"`
	LogPretty  bool   `env:"LOG_PRETTY,  default=true"`
	ShowErrors bool   `env:"SHOW_ERRORS, default=false"`

	Backend BackendConfig
	View    ViewConfig
	Queue   QueueConfig
	Shell   ShellConfig
}

type BackendConfig struct {
	URL string `env:"BACKEND_URL, default=http://localhost:5000"`
	// RequestTimeout of zero leaves requests unbounded.
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT, default=0s"`
}

type ViewConfig struct {
	Enabled bool   `env:"VIEW_ENABLED, default=true"`
	Addr    string `env:"VIEW_ADDR,    default=127.0.0.1:8080"`
}

type QueueConfig struct {
	Workers int `env:"QUEUE_WORKERS, default=4"`
}

type ShellConfig struct {
	HistoryFile string `env:"SHELL_HISTORY"`
}

// LoadDotEnv loads variables from the given files (".env" when none) into
// the process environment. Missing files are ignored; variables already set
// take precedence.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("config: load %s: %w", p, err)
		}
	}
	return nil
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return LoadWith(ctx, envconfig.OsLookuper())
}

// LoadWith reads configuration through the given lookuper.
func LoadWith(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: failed to load configuration: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	u, err := url.Parse(c.Backend.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("config: BACKEND_URL %q must be an absolute URL", c.Backend.URL)
	}
	if c.Backend.RequestTimeout < 0 {
		return fmt.Errorf("config: REQUEST_TIMEOUT must not be negative")
	}
	return nil
}
