package config

import (
	"errors"
	"fmt"
)

// Validate checks that all required fields are set and values are valid.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.ShutdownTimeout <= 0 {
		return errors.New("server.shutdown_timeout must be positive")
	}

	if c.Auth.APIKey == "" {
		return errors.New("auth.api_key is required")
	}

	if c.Storage.DataDir == "" {
		return errors.New("storage.data_dir is required")
	}
	if c.Storage.ScanInterval <= 0 {
		return errors.New("storage.scan_interval must be positive")
	}
	if c.Storage.ScanConcurrency < 1 {
		return errors.New("storage.scan_concurrency must be >= 1")
	}

	if c.DB.Path == "" {
		return errors.New("db.path is required")
	}

	return nil
}
