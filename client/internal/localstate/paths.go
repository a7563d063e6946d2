// Package localstate locates the on-device state directory.
package localstate

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	envHome    = "CAPYDIARY_HOME" // explicit override, wins over everything
	envXDG     = "XDG_STATE_HOME"
	appName    = "capydiary"
	dirName    = "." + appName // fallback under $HOME
	dbFilename = "client.db"
)

// DataDir resolves the state directory, creating it with 0700 permissions:
// $CAPYDIARY_HOME, then $XDG_STATE_HOME/capydiary, then ~/.capydiary.
func DataDir() (string, error) {
	if custom := os.Getenv(envHome); custom != "" {
		return ensure(custom)
	}
	if xdg := os.Getenv(envXDG); xdg != "" {
		return ensure(filepath.Join(xdg, appName))
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine user home: %w", err)
	}
	return ensure(filepath.Join(home, dirName))
}

// DBPath returns the absolute path of the local SQLite database.
func DBPath() (string, error) {
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, dbFilename), nil
}

func ensure(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("create state dir %s: %w", dir, err)
	}
	return dir, nil
}
