package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// ResolveConfigPath picks the config file to load: the explicit path (from
// the -config flag) wins, then the PHOTO_CONFIG environment variable, then
// well-known candidates. An empty result means "no file": the service runs
// on environment variables and defaults alone, which is the common case in
// the container.
func ResolveConfigPath(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", err
		}
		return explicit, nil
	}

	if fromEnv := os.Getenv("PHOTO_CONFIG"); fromEnv != "" {
		if _, err := os.Stat(fromEnv); err != nil {
			return "", err
		}
		return fromEnv, nil
	}

	candidates := []string{
		"configs/photosvc.yaml",
		"/etc/family-photo/photosvc.yaml",
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", nil
}

// Load reads the YAML file at path (expanding ${VAR} references) into the
// raw file form. An empty path yields an empty document.
func load(path string) (*fileConfig, error) {
	var f fileConfig
	if path == "" {
		return &f, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// Expand ${VAR} environment variables
	expanded := os.ExpandEnv(string(data))

	if err := yaml.Unmarshal([]byte(expanded), &f); err != nil {
		return nil, fmt.Errorf("parse config yaml: %w", err)
	}
	return &f, nil
}

// applyEnv overlays well-known environment variables onto the file form.
// Environment always beats the file, matching the container contract where
// API_KEY and friends are injected at run time.
func (f *fileConfig) applyEnv() error {
	if v := os.Getenv("HOST"); v != "" {
		f.Server.Host = v
	}
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("PORT must be an integer, got %q", v)
		}
		f.Server.Port = port
	}
	if v := os.Getenv("API_KEY"); v != "" {
		f.Auth.APIKey = v
	}
	if v := os.Getenv("DATA_DIR"); v != "" {
		f.Storage.DataDir = v
	}
	if v := os.Getenv("DB_PATH"); v != "" {
		f.DB.Path = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		f.Logging.Level = v
	}
	return nil
}

// build parses duration strings and produces the runtime Config.
func (f *fileConfig) build() (*Config, error) {
	shutdown, err := time.ParseDuration(f.Server.ShutdownTimeout)
	if err != nil {
		return nil, fmt.Errorf("server.shutdown_timeout: %w", err)
	}
	scanInterval, err := time.ParseDuration(f.Storage.ScanInterval)
	if err != nil {
		return nil, fmt.Errorf("storage.scan_interval: %w", err)
	}

	return &Config{
		Server: ServerConfig{
			Host:            f.Server.Host,
			Port:            f.Server.Port,
			ShutdownTimeout: shutdown,
		},
		Auth: AuthConfig{APIKey: f.Auth.APIKey},
		Storage: StorageConfig{
			DataDir:         f.Storage.DataDir,
			ScanInterval:    scanInterval,
			ScanConcurrency: f.Storage.ScanConcurrency,
		},
		DB:      DBConfig{Path: f.DB.Path},
		Audit:   AuditConfig{Enabled: *f.Audit.Enabled},
		Logging: LoggingConfig{Level: f.Logging.Level},
	}, nil
}

// LoadAndValidate loads the optional config file, overlays environment
// variables, applies defaults, and validates the result.
func LoadAndValidate(path string) (*Config, error) {
	f, err := load(path)
	if err != nil {
		return nil, err
	}
	if err := f.applyEnv(); err != nil {
		return nil, err
	}
	f.applyDefaults()

	cfg, err := f.build()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}
