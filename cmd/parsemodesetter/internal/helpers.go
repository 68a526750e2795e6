package internal

import (
	"os"
	"path/filepath"
)

var version = "dev"

// GetConfigPath returns the default configuration file location.
func GetConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".parsemodesetter", "config.json")
}

// GetVersion returns the version string, overridable at link time.
func GetVersion() string {
	return version
}
