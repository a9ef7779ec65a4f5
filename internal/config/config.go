package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	API struct {
		URL     string        `envconfig:"POS_API_URL" default:"http://localhost:8080/api/v1"`
		Timeout time.Duration `envconfig:"POS_API_TIMEOUT" default:"10s"`
	}

	Session struct {
		File string `envconfig:"POS_SESSION_FILE"`
	}

	Posdev struct {
		Port      int    `envconfig:"PORT" default:"8080"`
		JWTSecret string `envconfig:"POSDEV_JWT_SECRET" default:"posdev-local-secret"`
	}
}

// SessionFile returns the configured session path, falling back to a file
// under the user config directory.
func (c *Config) SessionFile() (string, error) {
	if c.Session.File != "" {
		return c.Session.File, nil
	}

	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolving user config dir: %w", err)
	}

	return filepath.Join(dir, "backoffice", "session.json"), nil
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
