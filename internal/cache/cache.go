// Package cache prunes files the application leaves behind: old daily logs and player sockets.
package cache

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/videoflix/videoflix/filesystem"
	"github.com/videoflix/videoflix/log"
	"github.com/videoflix/videoflix/where"
)

const (
	// LogTTL is how long daily log files are kept.
	LogTTL = 7 * 24 * time.Hour
	// SocketTTL is the age after which a player socket is considered abandoned.
	SocketTTL = 24 * time.Hour
)

// CollectGarbage removes expired logs and abandoned sockets. It is meant to run in the background.
func CollectGarbage() {
	now := time.Now()

	removed := prune(where.Logs(), LogTTL, now, func(name string) bool {
		return strings.HasSuffix(name, ".log")
	})
	removed += prune(where.Temp(), SocketTTL, now, func(name string) bool {
		return strings.HasSuffix(name, ".sock")
	})

	if removed > 0 {
		log.Infof("removed %d expired files", removed)
	}
}

// prune deletes the files under dir accepted by match that were last modified more than ttl before now.
func prune(dir string, ttl time.Duration, now time.Time, match func(name string) bool) (removed int) {
	fs := filesystem.API()

	_ = fs.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() || !match(filepath.Base(path)) {
			return nil
		}

		if now.Sub(info.ModTime()) <= ttl {
			return nil
		}

		if err := fs.Remove(path); err != nil {
			log.Warnf("remove %s: %v", path, err)
			return nil
		}
		removed++
		return nil
	})

	return removed
}
