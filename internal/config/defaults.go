package config

import "time"

// Default values for optional configuration fields.
const (
	DefaultHost            = "0.0.0.0"
	DefaultPort            = 8000
	DefaultShutdownTimeout = 10 * time.Second
	DefaultAPIKey          = "dev-key"
	DefaultDataDir         = "data"
	DefaultScanInterval    = 5 * time.Minute
	DefaultScanConcurrency = 4
	DefaultDBPath          = "family-photo.db"
	DefaultLogLevel        = "info"
)

func (f *fileConfig) applyDefaults() {
	if f.Server.Host == "" {
		f.Server.Host = DefaultHost
	}
	if f.Server.Port == 0 {
		f.Server.Port = DefaultPort
	}
	if f.Server.ShutdownTimeout == "" {
		f.Server.ShutdownTimeout = DefaultShutdownTimeout.String()
	}
	if f.Auth.APIKey == "" {
		f.Auth.APIKey = DefaultAPIKey
	}
	if f.Storage.DataDir == "" {
		f.Storage.DataDir = DefaultDataDir
	}
	if f.Storage.ScanInterval == "" {
		f.Storage.ScanInterval = DefaultScanInterval.String()
	}
	if f.Storage.ScanConcurrency == 0 {
		f.Storage.ScanConcurrency = DefaultScanConcurrency
	}
	if f.DB.Path == "" {
		f.DB.Path = DefaultDBPath
	}
	if f.Audit.Enabled == nil {
		enabled := true
		f.Audit.Enabled = &enabled
	}
	if f.Logging.Level == "" {
		f.Logging.Level = DefaultLogLevel
	}
}
