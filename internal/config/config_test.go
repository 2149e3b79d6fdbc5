// ABOUTME: Tests for config loading and precedence
// ABOUTME: Validates defaults, TOML file values, and env var overrides
package config

import (
	"os"
	"path/filepath"
	"testing"
)

// clearEnv unsets every ALFRESCO_* variable for the duration of a test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"ALFRESCO_URL", "ALFRESCO_USERNAME", "ALFRESCO_PASSWORD",
		"ALFRESCO_VERIFY_SSL", "ALFRESCO_TIMEOUT", "ALFRESCO_MAX_FILE_SIZE",
	} {
		t.Setenv(key, "")
		_ = os.Unsetenv(key)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.URL != DefaultURL {
		t.Errorf("got URL %s, want %s", cfg.URL, DefaultURL)
	}
	if cfg.Username != "admin" || cfg.Password != "admin" {
		t.Errorf("expected admin/admin defaults, got %s/%s", cfg.Username, cfg.Password)
	}
	if cfg.VerifySSL {
		t.Error("expected VerifySSL to default to false")
	}
	if cfg.TimeoutSecs != DefaultTimeoutSecs {
		t.Errorf("got timeout %d, want %d", cfg.TimeoutSecs, DefaultTimeoutSecs)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("ALFRESCO_URL", "https://dms.example.com/")
	t.Setenv("ALFRESCO_USERNAME", "editor")
	t.Setenv("ALFRESCO_PASSWORD", "secret")
	t.Setenv("ALFRESCO_VERIFY_SSL", "true")
	t.Setenv("ALFRESCO_TIMEOUT", "5")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.URL != "https://dms.example.com" {
		t.Errorf("expected trailing slash stripped, got %s", cfg.URL)
	}
	if cfg.Username != "editor" || cfg.Password != "secret" {
		t.Errorf("env credentials not applied: %s/%s", cfg.Username, cfg.Password)
	}
	if !cfg.VerifySSL {
		t.Error("expected VerifySSL true")
	}
	if cfg.TimeoutSecs != 5 {
		t.Errorf("got timeout %d, want 5", cfg.TimeoutSecs)
	}
}

func TestLoadConfigFile(t *testing.T) {
	clearEnv(t)
	configHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)

	dir := filepath.Join(configHome, "alfresco-mcp")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}
	content := `url = "http://alfresco.internal:8080"
username = "svc-mcp"
timeout_seconds = 60
`
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.URL != "http://alfresco.internal:8080" {
		t.Errorf("file URL not applied, got %s", cfg.URL)
	}
	if cfg.Username != "svc-mcp" {
		t.Errorf("file username not applied, got %s", cfg.Username)
	}
	if cfg.TimeoutSecs != 60 {
		t.Errorf("file timeout not applied, got %d", cfg.TimeoutSecs)
	}

	t.Run("env wins over file", func(t *testing.T) {
		t.Setenv("ALFRESCO_USERNAME", "from-env")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if cfg.Username != "from-env" {
			t.Errorf("expected env override, got %s", cfg.Username)
		}
	})
}

func TestLoadRejectsBadValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	t.Run("relative URL", func(t *testing.T) {
		t.Setenv("ALFRESCO_URL", "not-a-url")
		if _, err := Load(); err == nil {
			t.Error("expected error for relative URL")
		}
	})

	t.Run("non-positive timeout", func(t *testing.T) {
		t.Setenv("ALFRESCO_URL", "http://localhost:8080")
		t.Setenv("ALFRESCO_TIMEOUT", "0")
		if _, err := Load(); err == nil {
			t.Error("expected error for zero timeout")
		}
	})
}
