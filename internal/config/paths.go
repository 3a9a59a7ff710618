package config

import (
	"os"
	"path/filepath"
)

// Environment variables recognized outside viper's automatic binding.
const (
	EnvHome   = "FSGEN_HOME"
	EnvConfig = "FSGEN_CONFIG"
)

// Paths contains standard filesystem paths for fsgen.
type Paths struct {
	// ConfigFile is the path to the config file (~/.fsgen/config.yaml).
	ConfigFile string

	// HistoryFile is the path to the run ledger (~/.fsgen/history.db).
	HistoryFile string

	// HomeDir is the fsgen home directory (~/.fsgen).
	HomeDir string
}

// DefaultPaths returns the default paths for fsgen. FSGEN_HOME replaces
// ~/.fsgen when set.
func DefaultPaths() (*Paths, error) {
	home := os.Getenv(EnvHome)
	if home == "" {
		userHome, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		home = filepath.Join(userHome, ".fsgen")
	}

	return &Paths{
		ConfigFile:  filepath.Join(home, "config.yaml"),
		HistoryFile: filepath.Join(home, "history.db"),
		HomeDir:     home,
	}, nil
}

// EnsureHomeDir creates the fsgen home directory if it doesn't exist.
func EnsureHomeDir() error {
	paths, err := DefaultPaths()
	if err != nil {
		return err
	}
	return os.MkdirAll(paths.HomeDir, 0o700)
}

// ExpandPath expands ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if len(path) == 0 || path[0] != '~' {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	if len(path) == 1 {
		return homeDir, nil
	}

	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:]), nil
	}

	// ~username is not supported.
	return path, nil
}
