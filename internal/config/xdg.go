// ABOUTME: Well-known directory helpers with XDG fallbacks
// ABOUTME: Resolves config and download locations from the environment
package config

import (
	"os"
	"path/filepath"
)

// GetConfigHome returns XDG_CONFIG_HOME or fallback to ~/.config
func GetConfigHome() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return xdg
	}
	home := os.Getenv("HOME")
	return filepath.Join(home, ".config")
}

// GetDownloadsDir returns the user's Downloads folder, where downloaded
// documents and checkout working copies are written.
func GetDownloadsDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = os.Getenv("HOME")
	}
	return filepath.Join(home, "Downloads")
}
