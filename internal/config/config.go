// Package config loads the server configuration.
//
// The API token comes only from the COZE_API_TOKEN environment variable and
// is required. Everything else has a default and may be overridden by an
// optional YAML file.
package config

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

const (
	// AppName names the config directory under the XDG config home.
	AppName = "coze-workflow-server"

	// TokenEnv is the environment variable holding the Coze API token.
	TokenEnv = "COZE_API_TOKEN"

	// DefaultEndpoint is the Coze workflow run endpoint.
	DefaultEndpoint = "https://api.coze.com/v1/workflow/run"
)

// ErrMissingToken is returned when COZE_API_TOKEN is unset or empty.
var ErrMissingToken = errors.New(TokenEnv + " environment variable is required")

// Config is the immutable process configuration.
type Config struct {
	// APIToken is the bearer token for the Coze API. Never read from a file.
	APIToken string `yaml:"-"`

	// Endpoint is the workflow run URL.
	Endpoint string `yaml:"endpoint"`

	// HTTPTimeout bounds each outbound call. Zero means no client timeout.
	HTTPTimeout time.Duration `yaml:"http_timeout"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Endpoint: DefaultEndpoint,
		LogLevel: "info",
	}
}

// Path returns the default config file location.
func Path() string {
	return filepath.Join(xdg.ConfigHome, AppName, "config.yaml")
}

// Load reads the token from the environment, then applies the YAML file at
// path. An empty path means Path(); a missing default file is fine, but a
// missing explicit file is an error.
func Load(path string) (*Config, error) {
	token := os.Getenv(TokenEnv)
	if token == "" {
		return nil, ErrMissingToken
	}

	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = Path()
	}
	if err := loadFile(path, &cfg); err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			err = nil
		}
		if err != nil {
			return nil, err
		}
	}

	cfg.APIToken = token
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func loadFile(path string, cfg *Config) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening config file: %w", err)
	}
	defer func() { _ = f.Close() }()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		// An empty file leaves the defaults.
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return nil
}

// Validate checks the values that can come from the file.
func (c *Config) Validate() error {
	if c.APIToken == "" {
		return ErrMissingToken
	}

	u, err := url.Parse(c.Endpoint)
	if err != nil {
		return fmt.Errorf("invalid endpoint %q: %w", c.Endpoint, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid endpoint %q: must be an absolute http(s) URL", c.Endpoint)
	}

	if c.HTTPTimeout < 0 {
		return fmt.Errorf("invalid http_timeout %s: must not be negative", c.HTTPTimeout)
	}
	return nil
}
