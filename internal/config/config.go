package config

import (
	"net"
	"strconv"
	"time"
)

// Config is the validated runtime configuration for the service.
type Config struct {
	Server  ServerConfig
	Auth    AuthConfig
	Storage StorageConfig
	DB      DBConfig
	Audit   AuditConfig
	Logging LoggingConfig
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Host            string
	Port            int
	ShutdownTimeout time.Duration
}

// AuthConfig holds the API key checked against the X-API-Key header.
type AuthConfig struct {
	APIKey string
}

// StorageConfig holds upload directory and background scan settings.
type StorageConfig struct {
	DataDir         string
	ScanInterval    time.Duration
	ScanConcurrency int
}

// DBConfig holds the SQLite database location. The database lives outside
// the data directory so it never shows up in file listings.
type DBConfig struct {
	Path string
}

// AuditConfig controls request audit recording.
type AuditConfig struct {
	Enabled bool
}

// LoggingConfig holds log output settings.
type LoggingConfig struct {
	Level string
}

// Addr returns the listen address in host:port form.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}

// fileConfig mirrors the optional YAML document. Durations are Go
// duration strings ("5m", "10s") parsed during normalization.
type fileConfig struct {
	Server struct {
		Host            string `yaml:"host"`
		Port            int    `yaml:"port"`
		ShutdownTimeout string `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	Auth struct {
		APIKey string `yaml:"api_key"`
	} `yaml:"auth"`
	Storage struct {
		DataDir         string `yaml:"data_dir"`
		ScanInterval    string `yaml:"scan_interval"`
		ScanConcurrency int    `yaml:"scan_concurrency"`
	} `yaml:"storage"`
	DB struct {
		Path string `yaml:"path"`
	} `yaml:"db"`
	Audit struct {
		Enabled *bool `yaml:"enabled"`
	} `yaml:"audit"`
	Logging struct {
		Level string `yaml:"level"`
	} `yaml:"logging"`
}
