package cli

import (
	"os"
	"path/filepath"
)

// cacheDir prefers the [cache] dir setting over the per-user default.
func (c *CLI) cacheDir() (string, error) {
	if dir := c.Config.Cache.Dir; dir != "" {
		return dir, nil
	}
	return cacheDir()
}

// cacheDir returns $XDG_CACHE_HOME/ecolayout, or ~/.cache/ecolayout on any
// platform when the variable is unset.
func cacheDir() (string, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".cache")
	}
	return filepath.Join(base, appName), nil
}
