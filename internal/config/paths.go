package config

import (
	"os"
	"path/filepath"
)

// BaseDir returns ~/.papirus.
func BaseDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".papirus")
}

// Path returns the config file path.
func Path() string {
	return filepath.Join(BaseDir(), "config.toml")
}

// LogDir returns the log directory.
func LogDir() string {
	return filepath.Join(BaseDir(), "logs")
}

// LogPath returns the default log file path.
func LogPath() string {
	return filepath.Join(LogDir(), "papirus.log")
}
