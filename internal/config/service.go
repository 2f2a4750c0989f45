package config

import (
	"errors"
	"fmt"
	"net"
	"time"
)

// ErrNotLoopback is returned when the listen address would expose the
// service beyond the local machine.
var ErrNotLoopback = errors.New("listen address must be loopback")

// Service is the environment-driven configuration for cmd/api.
type Service struct {
	Addr            string        `env:"BGSIM_ADDR" envDefault:"127.0.0.1:32123"`
	CatalogPath     string        `env:"BGSIM_CATALOG_PATH" envDefault:"cards.json"`
	LiveStatePath   string        `env:"BGSIM_LIVE_STATE_PATH"`
	MaxBodyBytes    int64         `env:"BGSIM_MAX_BODY_BYTES" envDefault:"1048576"`
	DefaultThreads  int           `env:"BGSIM_DEFAULT_THREADS" envDefault:"0"`
	Watch           bool          `env:"BGSIM_WATCH" envDefault:"true"`
	WatchDebounce   time.Duration `env:"BGSIM_WATCH_DEBOUNCE" envDefault:"500ms"`
	ShutdownTimeout time.Duration `env:"BGSIM_SHUTDOWN_TIMEOUT" envDefault:"5s"`
}

// LoadService parses and validates the service configuration.
func LoadService() (Service, error) {
	var cfg Service
	if err := ParseEnv(&cfg); err != nil {
		return Service{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Service{}, err
	}
	return cfg, nil
}

// Validate rejects settings the service cannot run with.
func (s Service) Validate() error {
	host, port, err := net.SplitHostPort(s.Addr)
	if err != nil {
		return fmt.Errorf("addr %q: %w", s.Addr, err)
	}
	if port == "" {
		return fmt.Errorf("addr %q: missing port", s.Addr)
	}
	if host != "localhost" {
		ip := net.ParseIP(host)
		if ip == nil || !ip.IsLoopback() {
			return fmt.Errorf("addr %q: %w", s.Addr, ErrNotLoopback)
		}
	}
	if s.MaxBodyBytes <= 0 {
		return fmt.Errorf("max body bytes must be positive, got %d", s.MaxBodyBytes)
	}
	if s.DefaultThreads < 0 {
		return fmt.Errorf("default threads must not be negative, got %d", s.DefaultThreads)
	}
	return nil
}
