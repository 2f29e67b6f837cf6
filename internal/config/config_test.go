package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeTempFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "photosvc.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write temp config: %v", err)
	}
	return path
}

// clearEnv blanks the override variables so ambient environment cannot
// leak into assertions. t.Setenv restores the originals afterwards.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"HOST", "PORT", "API_KEY", "DATA_DIR", "DB_PATH", "LOG_LEVEL", "PHOTO_CONFIG"} {
		t.Setenv(key, "")
	}
}

func TestLoadAndValidate(t *testing.T) {
	clearEnv(t)

	yaml := `
server:
  host: 127.0.0.1
  port: 9000
  shutdown_timeout: 5s
auth:
  api_key: family-secret
storage:
  data_dir: /tmp/photos
  scan_interval: 1m
  scan_concurrency: 2
db:
  path: /tmp/photos.db
logging:
  level: debug
`
	path := writeTempFile(t, yaml)

	cfg, err := LoadAndValidate(path)
	if err != nil {
		t.Fatalf("LoadAndValidate failed: %v", err)
	}

	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("Server.Host = %q, want %q", cfg.Server.Host, "127.0.0.1")
	}
	if cfg.Server.Port != 9000 {
		t.Errorf("Server.Port = %d, want 9000", cfg.Server.Port)
	}
	if cfg.Server.ShutdownTimeout != 5*time.Second {
		t.Errorf("Server.ShutdownTimeout = %v, want 5s", cfg.Server.ShutdownTimeout)
	}
	if cfg.Auth.APIKey != "family-secret" {
		t.Errorf("Auth.APIKey = %q, want %q", cfg.Auth.APIKey, "family-secret")
	}
	if cfg.Storage.DataDir != "/tmp/photos" {
		t.Errorf("Storage.DataDir = %q, want %q", cfg.Storage.DataDir, "/tmp/photos")
	}
	if cfg.Storage.ScanInterval != time.Minute {
		t.Errorf("Storage.ScanInterval = %v, want 1m", cfg.Storage.ScanInterval)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "debug")
	}
}

func TestLoadWithEnvSubstitution(t *testing.T) {
	clearEnv(t)
	t.Setenv("TEST_PHOTO_KEY", "secret123")

	yaml := `
auth:
  api_key: ${TEST_PHOTO_KEY}
`
	path := writeTempFile(t, yaml)

	cfg, err := LoadAndValidate(path)
	if err != nil {
		t.Fatalf("LoadAndValidate failed: %v", err)
	}

	if cfg.Auth.APIKey != "secret123" {
		t.Errorf("Auth.APIKey = %q, want %q", cfg.Auth.APIKey, "secret123")
	}
}

func TestLoadWithDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadAndValidate("")
	if err != nil {
		t.Fatalf("LoadAndValidate failed: %v", err)
	}

	if cfg.Server.Host != DefaultHost {
		t.Errorf("Server.Host = %q, want %q", cfg.Server.Host, DefaultHost)
	}
	if cfg.Server.Port != DefaultPort {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, DefaultPort)
	}
	if cfg.Auth.APIKey != DefaultAPIKey {
		t.Errorf("Auth.APIKey = %q, want %q", cfg.Auth.APIKey, DefaultAPIKey)
	}
	if cfg.Storage.DataDir != DefaultDataDir {
		t.Errorf("Storage.DataDir = %q, want %q", cfg.Storage.DataDir, DefaultDataDir)
	}
	if cfg.Storage.ScanInterval != DefaultScanInterval {
		t.Errorf("Storage.ScanInterval = %v, want %v", cfg.Storage.ScanInterval, DefaultScanInterval)
	}
	if cfg.Storage.ScanConcurrency != DefaultScanConcurrency {
		t.Errorf("Storage.ScanConcurrency = %d, want %d", cfg.Storage.ScanConcurrency, DefaultScanConcurrency)
	}
	if cfg.DB.Path != DefaultDBPath {
		t.Errorf("DB.Path = %q, want %q", cfg.DB.Path, DefaultDBPath)
	}
	if !cfg.Audit.Enabled {
		t.Error("Audit.Enabled default should be true")
	}
	if cfg.Logging.Level != DefaultLogLevel {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, DefaultLogLevel)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("API_KEY", "from-env")
	t.Setenv("PORT", "8123")
	t.Setenv("DATA_DIR", "/srv/pics")

	yaml := `
server:
  port: 9000
auth:
  api_key: from-file
storage:
  data_dir: /tmp/photos
`
	path := writeTempFile(t, yaml)

	cfg, err := LoadAndValidate(path)
	if err != nil {
		t.Fatalf("LoadAndValidate failed: %v", err)
	}

	if cfg.Auth.APIKey != "from-env" {
		t.Errorf("Auth.APIKey = %q, want env value %q", cfg.Auth.APIKey, "from-env")
	}
	if cfg.Server.Port != 8123 {
		t.Errorf("Server.Port = %d, want env value 8123", cfg.Server.Port)
	}
	if cfg.Storage.DataDir != "/srv/pics" {
		t.Errorf("Storage.DataDir = %q, want env value %q", cfg.Storage.DataDir, "/srv/pics")
	}
}

func TestInvalidPortEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "not-a-port")

	if _, err := LoadAndValidate(""); err == nil {
		t.Fatal("expected error for non-integer PORT")
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	clearEnv(t)

	cases := []struct {
		name string
		yaml string
		want string
	}{
		{
			name: "bad port",
			yaml: "server:\n  port: 70000\n",
			want: "server.port",
		},
		{
			name: "bad scan concurrency",
			yaml: "storage:\n  scan_concurrency: -1\n",
			want: "scan_concurrency",
		},
		{
			name: "bad scan interval",
			yaml: "storage:\n  scan_interval: nonsense\n",
			want: "scan_interval",
		},
	}

	for _, tc := range cases {
		path := writeTempFile(t, tc.yaml)
		_, err := LoadAndValidate(path)
		if err == nil {
			t.Errorf("%s: expected error, got nil", tc.name)
			continue
		}
		if !strings.Contains(err.Error(), tc.want) {
			t.Errorf("%s: error = %q, want mention of %q", tc.name, err, tc.want)
		}
	}
}

func TestResolveConfigPathExplicitMissing(t *testing.T) {
	clearEnv(t)

	if _, err := ResolveConfigPath(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing explicit config path")
	}
}

func TestResolveConfigPathFromEnv(t *testing.T) {
	clearEnv(t)
	path := writeTempFile(t, "logging:\n  level: info\n")
	t.Setenv("PHOTO_CONFIG", path)

	got, err := ResolveConfigPath("")
	if err != nil {
		t.Fatalf("ResolveConfigPath failed: %v", err)
	}
	if got != path {
		t.Errorf("ResolveConfigPath = %q, want %q", got, path)
	}
}
