// Package xdg provides helpers to resolve XDG Base Directory paths for carrental.
// Directories are created with private permissions (0700) on first use and fall
// back to the traditional ~/.config and ~/.local/state locations when the XDG
// environment variables are unset.
package xdg

import (
	"os"
	"path/filepath"
)

// AppName is the directory name used under each XDG base directory.
const AppName = "carrental"

// ConfigDir returns the XDG config directory for carrental.
func ConfigDir() (string, error) {
	return appDir("XDG_CONFIG_HOME", ".config")
}

// StateDir returns the XDG state directory for carrental (log files).
func StateDir() (string, error) {
	return appDir("XDG_STATE_HOME", ".local", "state")
}

func appDir(env string, fallback ...string) (string, error) {
	base := os.Getenv(env)
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(append([]string{home}, fallback...)...)
	}
	dir := filepath.Join(base, AppName)
	if err := os.MkdirAll(dir, 0o700); err != nil { // private dir
		return "", err
	}
	return dir, nil
}
