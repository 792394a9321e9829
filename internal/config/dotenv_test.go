package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDotenv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	data := "RESUME_PROXY_TEST_NEW=from-file\nRESUME_PROXY_TEST_SET=from-file\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("RESUME_PROXY_TEST_SET", "from-env")
	// Registered for cleanup; unset so the file value applies.
	t.Setenv("RESUME_PROXY_TEST_NEW", "")
	if err := os.Unsetenv("RESUME_PROXY_TEST_NEW"); err != nil {
		t.Fatal(err)
	}

	if err := LoadDotenv(path); err != nil {
		t.Fatalf("LoadDotenv() error = %v", err)
	}

	if got := os.Getenv("RESUME_PROXY_TEST_NEW"); got != "from-file" {
		t.Errorf("RESUME_PROXY_TEST_NEW = %q, want %q", got, "from-file")
	}
	if got := os.Getenv("RESUME_PROXY_TEST_SET"); got != "from-env" {
		t.Errorf("RESUME_PROXY_TEST_SET = %q, want existing environment to win", got)
	}
}

func TestLoadDotenv_MissingFileIgnored(t *testing.T) {
	if err := LoadDotenv(filepath.Join(t.TempDir(), "nope.env")); err != nil {
		t.Errorf("LoadDotenv() error = %v, want nil for missing file", err)
	}
}

func TestEnvFilePath(t *testing.T) {
	t.Setenv("ENV_FILE", "")
	if got := EnvFilePath(); got != DefaultEnvFile {
		t.Errorf("EnvFilePath() = %q, want %q", got, DefaultEnvFile)
	}

	t.Setenv("ENV_FILE", "/run/secrets/proxy.env")
	if got := EnvFilePath(); got != "/run/secrets/proxy.env" {
		t.Errorf("EnvFilePath() = %q, want %q", got, "/run/secrets/proxy.env")
	}
}
