package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fieldsafe/ramspack/internal/config"
)

const baseConfig = `
shutdown_timeout = "30s"
version = "0.1.0"

[server]
host = "0.0.0.0"
port = 8080
read_timeout = "1m"
write_timeout = "15m"
shutdown_timeout = "30s"

[database]
host = "localhost"
port = 5432
name = "ramspack"
user = "ramspack"
password = "ramspack"
ssl_mode = "disable"
max_open_conns = 25
max_idle_conns = 5
conn_max_lifetime = "15m"
conn_timeout = "5s"

[storage]
container_name = "exports"
connection_string = "DefaultEndpointsProtocol=http;AccountName=ramspackstore;AccountKey=key;BlobEndpoint=http://127.0.0.1:10000/ramspackstore;"

[auth]
enabled = true
issuer_url = "https://id.example.com/realms/sites"
client_id = "ramspack"

[api]
base_path = "/api"

[api.cors]
enabled = false

[api.pagination]
default_page_size = 25
max_page_size = 50
`

const overlayConfig = `
[server]
port = 9090

[database]
host = "prodhost"
`

// minimalConfig provides the minimum fields required for validation to
// pass (db name, db user, storage connection string).
const minimalConfig = `
shutdown_timeout = "30s"

[server]
port = 8080

[database]
name = "ramspack"
user = "ramspack"

[storage]
connection_string = "conn"

[api]
base_path = "/api"
`

func writeConfig(t *testing.T, dir, filename, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, filename), []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", filename, err)
	}
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	orig, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { os.Chdir(orig) })
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "config.toml", baseConfig)
	chdir(t, dir)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("server port: got %d, want 8080", cfg.Server.Port)
	}
	if cfg.Database.Host != "localhost" {
		t.Errorf("db host: got %s, want localhost", cfg.Database.Host)
	}
	if cfg.Storage.ContainerName != "exports" {
		t.Errorf("storage container: got %s, want exports", cfg.Storage.ContainerName)
	}
	if !cfg.Auth.Enabled {
		t.Error("auth should be enabled")
	}
	if cfg.Auth.ClientID != "ramspack" {
		t.Errorf("auth client_id: got %s, want ramspack", cfg.Auth.ClientID)
	}
	if cfg.API.BasePath != "/api" {
		t.Errorf("api base_path: got %s, want /api", cfg.API.BasePath)
	}
	if cfg.API.Pagination.DefaultPageSize != 25 {
		t.Errorf("pagination default_page_size: got %d, want 25", cfg.API.Pagination.DefaultPageSize)
	}
	if cfg.API.Pagination.MaxPageSize != 50 {
		t.Errorf("pagination max_page_size: got %d, want 50", cfg.API.Pagination.MaxPageSize)
	}
}

func TestLoadWithOverlay(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "config.toml", baseConfig)
	writeConfig(t, dir, "config.staging.toml", overlayConfig)
	chdir(t, dir)

	t.Setenv("RAMSPACK_ENV", "staging")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("overlay server port: got %d, want 9090", cfg.Server.Port)
	}
	if cfg.Database.Host != "prodhost" {
		t.Errorf("overlay db host: got %s, want prodhost", cfg.Database.Host)
	}
	// fields absent from the overlay keep base values
	if cfg.Database.Name != "ramspack" {
		t.Errorf("db name: got %s, want ramspack", cfg.Database.Name)
	}
}

func TestLoadWithoutFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	t.Setenv("RAMSPACK_DB_NAME", "envdb")
	t.Setenv("RAMSPACK_DB_USER", "envuser")
	t.Setenv("RAMSPACK_STORAGE_CONNECTION_STRING", "conn")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Database.Name != "envdb" {
		t.Errorf("db name: got %s, want envdb", cfg.Database.Name)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("default server port: got %d, want 8080", cfg.Server.Port)
	}
}

func TestEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "config.toml", baseConfig)
	chdir(t, dir)

	t.Setenv("RAMSPACK_VERSION", "2.0.0")
	t.Setenv("RAMSPACK_SERVER_PORT", "3000")
	t.Setenv("RAMSPACK_AUTH_CLIENT_ID", "ramspack-staging")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Version != "2.0.0" {
		t.Errorf("version: got %s, want 2.0.0", cfg.Version)
	}
	if cfg.Server.Port != 3000 {
		t.Errorf("server port: got %d, want 3000", cfg.Server.Port)
	}
	if cfg.Auth.ClientID != "ramspack-staging" {
		t.Errorf("auth client_id: got %s, want ramspack-staging", cfg.Auth.ClientID)
	}
}

func TestMinimalConfig(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "config.toml", minimalConfig)
	chdir(t, dir)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Version != "0.1.0" {
		t.Errorf("default version: got %s, want 0.1.0", cfg.Version)
	}
	if cfg.Storage.ContainerName != "exports" {
		t.Errorf("default container: got %s, want exports", cfg.Storage.ContainerName)
	}
	if cfg.Auth.Enabled {
		t.Error("auth should default to disabled")
	}
}

func TestAuthValidation(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "config.toml", minimalConfig+`
[auth]
enabled = true
`)
	chdir(t, dir)

	_, err := config.Load()
	if err == nil {
		t.Fatal("expected error for enabled auth without issuer")
	}
	if !strings.Contains(err.Error(), "issuer_url") {
		t.Errorf("error %q should mention issuer_url", err.Error())
	}
}

func TestShutdownTimeoutDuration(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "config.toml", minimalConfig)
	chdir(t, dir)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.ShutdownTimeoutDuration() != 30*time.Second {
		t.Errorf("shutdown timeout: got %v, want 30s", cfg.ShutdownTimeoutDuration())
	}
}

func TestEnvDefault(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "config.toml", minimalConfig)
	chdir(t, dir)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Env() != "local" {
		t.Errorf("env: got %s, want local", cfg.Env())
	}
}
