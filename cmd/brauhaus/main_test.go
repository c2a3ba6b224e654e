package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ferment8/brauhaus-core/internal/auth"
)

// TestRun_InvalidConfig verifies run fails with invalid config path.
func TestRun_InvalidConfig(t *testing.T) {
	t.Setenv("BRAUHAUS_CONFIG", "/nonexistent/path/config.yaml")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := run(ctx); err == nil {
		t.Fatal("run() should fail with invalid config path")
	}
}

// TestRun_MissingSecurityConfig verifies run refuses to start without the
// JWT secret and PIN hash.
func TestRun_MissingSecurityConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "test-config.yaml")

	configContent := `
database:
  path: "` + filepath.Join(tmpDir, "test.db") + `"

mqtt:
  enabled: false

influxdb:
  enabled: false

logging:
  level: error
  format: text
`
	if err := os.WriteFile(configPath, []byte(configContent), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	t.Setenv("BRAUHAUS_CONFIG", configPath)
	t.Setenv("BRAUHAUS_JWT_SECRET", "")
	t.Setenv("BRAUHAUS_OPERATOR_PIN_HASH", "")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := run(ctx)
	if err == nil {
		t.Fatal("run() should fail without security configuration")
	}
	if !strings.Contains(err.Error(), "config") {
		t.Errorf("error should mention config, got: %v", err)
	}
}

// TestRun_SimModeStartupAndShutdown boots the full daemon against the
// thermal simulator with MQTT and InfluxDB disabled, then shuts it down
// via context cancellation.
func TestRun_SimModeStartupAndShutdown(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "test-config.yaml")

	pinHash, err := auth.HashPIN("1234")
	if err != nil {
		t.Fatalf("HashPIN failed: %v", err)
	}

	configContent := `
database:
  path: "` + filepath.Join(tmpDir, "test.db") + `"
  wal_mode: true
  busy_timeout: 5

mqtt:
  enabled: false

influxdb:
  enabled: false

logging:
  level: error
  format: text
  output: stdout

api:
  host: "127.0.0.1"
  port: 18732

hardware:
  mode: sim

brewhouse:
  tick_period_ms: 100
  recipe_dir: ""
`
	if err := os.WriteFile(configPath, []byte(configContent), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	t.Setenv("BRAUHAUS_CONFIG", configPath)
	t.Setenv("BRAUHAUS_JWT_SECRET", "test-secret-at-least-32-characters!!")
	t.Setenv("BRAUHAUS_OPERATOR_PIN_HASH", pinHash)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := run(ctx); err != nil {
		t.Fatalf("run() failed in sim mode: %v", err)
	}
}

// TestGetConfigPath_Default verifies default config path.
func TestGetConfigPath_Default(t *testing.T) {
	t.Setenv("BRAUHAUS_CONFIG", "")

	if path := getConfigPath(); path != defaultConfigPath {
		t.Errorf("getConfigPath() = %q, want %q", path, defaultConfigPath)
	}
}

// TestGetConfigPath_EnvOverride verifies environment variable override.
func TestGetConfigPath_EnvOverride(t *testing.T) {
	expected := "/custom/path/config.yaml"
	t.Setenv("BRAUHAUS_CONFIG", expected)

	if path := getConfigPath(); path != expected {
		t.Errorf("getConfigPath() = %q, want %q", path, expected)
	}
}

// TestRunHashPIN verifies the hash-pin subcommand produces a PHC string
// that verifies against the input PIN.
func TestRunHashPIN(t *testing.T) {
	var out bytes.Buffer
	if err := runHashPIN([]string{"4321"}, &out); err != nil {
		t.Fatalf("runHashPIN failed: %v", err)
	}

	hash := strings.TrimSpace(out.String())
	if !strings.HasPrefix(hash, "$argon2id$") {
		t.Fatalf("output is not a PHC string: %q", hash)
	}

	ok, err := auth.VerifyPIN("4321", hash)
	if err != nil {
		t.Fatalf("VerifyPIN failed: %v", err)
	}
	if !ok {
		t.Error("hash does not verify against the original PIN")
	}
}

// TestRunHashPIN_EmptyPIN verifies empty PINs are rejected.
func TestRunHashPIN_EmptyPIN(t *testing.T) {
	var out bytes.Buffer
	if err := runHashPIN([]string{""}, &out); err == nil {
		t.Fatal("runHashPIN should reject an empty pin")
	}
}
