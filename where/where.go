// Package where resolves the filesystem locations used by videoflix.
package where

import (
	"os"
	"path/filepath"

	"github.com/samber/lo"
	"github.com/videoflix/videoflix/constant"
	"github.com/videoflix/videoflix/filesystem"
)

// EnvConfigPath overrides the default configuration directory.
const EnvConfigPath = "VIDEOFLIX_CONFIG_PATH"

func ensureDir(path string) string {
	lo.Must0(filesystem.API().MkdirAll(path, os.ModePerm))
	return path
}

// Config returns the configuration directory, honouring VIDEOFLIX_CONFIG_PATH.
func Config() string {
	if custom, ok := os.LookupEnv(EnvConfigPath); ok {
		return ensureDir(custom)
	}

	base := lo.Must(os.UserConfigDir())
	return ensureDir(filepath.Join(base, constant.Videoflix))
}

// Cache returns the cache directory, falling back to ./cache when the platform has none.
func Cache() string {
	base, err := os.UserCacheDir()
	if err != nil {
		base = filepath.Join(".", "cache")
	}
	return ensureDir(filepath.Join(base, constant.Videoflix))
}

// Logs returns the directory holding daily log files.
func Logs() string {
	return ensureDir(filepath.Join(Config(), "logs"))
}

// LocalStorage is the persistent key/value file. It outlives logins and holds resume fallbacks.
func LocalStorage() string {
	return filepath.Join(Config(), "local.json")
}

// SessionStorage is the short-lived key/value file holding the current user, profile and video.
func SessionStorage() string {
	return filepath.Join(Cache(), "session.json")
}

// Queries is the remembered search query registry.
func Queries() string {
	return filepath.Join(Cache(), "queries.json")
}

// Temp returns a scratch directory for IPC sockets and other transient files.
func Temp() string {
	return ensureDir(filepath.Join(os.TempDir(), constant.Videoflix))
}
