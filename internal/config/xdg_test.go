// ABOUTME: Tests for directory resolution helpers
// ABOUTME: Validates XDG and home fallback behavior
package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGetConfigHome(t *testing.T) {
	original := os.Getenv("XDG_CONFIG_HOME")
	defer func() { _ = os.Setenv("XDG_CONFIG_HOME", original) }()

	t.Run("uses XDG_CONFIG_HOME when set", func(t *testing.T) {
		_ = os.Setenv("XDG_CONFIG_HOME", "/custom/config")
		got := GetConfigHome()
		if got != "/custom/config" {
			t.Errorf("got %s, want /custom/config", got)
		}
	})

	t.Run("falls back to HOME/.config", func(t *testing.T) {
		_ = os.Unsetenv("XDG_CONFIG_HOME")
		home := os.Getenv("HOME")
		want := filepath.Join(home, ".config")
		got := GetConfigHome()
		if got != want {
			t.Errorf("got %s, want %s", got, want)
		}
	})
}

func TestGetDownloadsDir(t *testing.T) {
	got := GetDownloadsDir()
	if filepath.Base(got) != "Downloads" {
		t.Errorf("expected a Downloads directory, got %s", got)
	}
	if !filepath.IsAbs(got) {
		t.Errorf("expected an absolute path, got %s", got)
	}
}
