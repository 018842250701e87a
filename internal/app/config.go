package app

import (
	"os"
	"path/filepath"
	"time"

	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfigyaml"
	"github.com/go-faster/errors"
)

// Config holds the complete application configuration, loadable from
// environment variables (STOREFRONT_ prefix) or YAML config files.
type Config struct {
	APIBaseURL    string        `default:"https://fakestoreapi.com" usage:"Remote store API base URL" flag:"api-base-url"`
	Timeout       time.Duration `default:"10s" usage:"HTTP request timeout"`
	StateDir      string        `usage:"Directory for persisted session, cart, and favorites state" flag:"state-dir"`
	CheckoutDelay time.Duration `default:"2s" usage:"Simulated payment processing delay" flag:"checkout-delay"`
	Retry         RetryConfig
}

// RetryConfig controls retries of idempotent catalog requests.
type RetryConfig struct {
	MaxAttempts int           `default:"3" usage:"Attempts per idempotent request, including the first" flag:"retry-max-attempts"`
	BaseDelay   time.Duration `default:"200ms" usage:"Base retry backoff delay" flag:"retry-base-delay"`
}

// LoadConfig loads configuration from environment variables and YAML config
// files, then fills in platform defaults.
func LoadConfig() (*Config, error) {
	var cfg Config
	loader := aconfig.LoaderFor(&cfg, aconfig.Config{
		EnvPrefix:    "STOREFRONT",
		SkipFlags:    true,
		Files:        []string{"storefront.yaml", "/etc/storefront/config.yaml"},
		FileDecoders: map[string]aconfig.FileDecoder{
			".yaml": aconfigyaml.New(),
		},
	})
	if err := loader.Load(); err != nil {
		return nil, errors.Wrap(err, "load config")
	}
	if err := cfg.applyDefaults(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyDefaults resolves values that cannot be expressed as struct tag
// defaults, like the per-user state directory.
func (c *Config) applyDefaults() error {
	if c.StateDir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return errors.Wrap(err, "resolve user config dir")
		}
		c.StateDir = filepath.Join(base, "supercatalogue")
	}
	return nil
}
