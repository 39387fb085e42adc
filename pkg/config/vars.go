package config

import (
	"path/filepath"
)

// AppName is used in generating file system paths.
var AppName = "eyebold"

// ConfigDir returns the directory path for configuration files.
// Returns ~/.config/eyebold by default.
func ConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config", AppName)
}

// CacheDir returns the directory path for scratch files: occurrence
// download archives, raxtax work directories.
// Returns ~/.cache/eyebold by default.
func CacheDir(homeDir string) string {
	return filepath.Join(homeDir, ".cache", AppName)
}

// LogDir returns the directory path for log files.
// Returns ~/.local/share/eyebold/logs by default.
func LogDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName, "logs")
}

// ConfigFilePath returns the full path to the config.yaml file.
func ConfigFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "config.yaml")
}
