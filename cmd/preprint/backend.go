package main

import (
	"os"
	"path/filepath"
	"time"

	"github.com/matsen/preprint/internal/arxiv"
	"github.com/matsen/preprint/internal/config"
	"github.com/matsen/preprint/internal/ratelimit"
	"github.com/matsen/preprint/internal/storage"
)

// openBackend opens the durable backend at the effective database path
// (--db flag, then PREPRINT_DB, then config, then the XDG data default).
// Exits on failure.
func openBackend() *storage.SQLite {
	path := dbPathFlag
	if path == "" {
		path = config.DBPath()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		exitWithError(ExitConfigError, "creating database directory: %v", err)
	}

	db, err := storage.OpenSQLite(path)
	if err != nil {
		exitWithError(ExitError, "opening database: %v", err)
	}
	return db
}

// newAdapter builds an Adapter wired to the given backend (nil is allowed)
// with user agent and request spacing from the global config.
func newAdapter(backend storage.Backend) *arxiv.Adapter {
	opts := []arxiv.Option{}
	if backend != nil {
		opts = append(opts, arxiv.WithStorage(backend))
	}
	if ua := config.UserAgent(); ua != "" {
		opts = append(opts, arxiv.WithUserAgent(ua))
	}
	if secs := config.MinIntervalSeconds(); secs > 0 {
		opts = append(opts, arxiv.WithMinInterval(time.Duration(secs*float64(time.Second))))
	} else {
		opts = append(opts, arxiv.WithMinInterval(ratelimit.DefaultInterval))
	}
	return arxiv.New(opts...)
}
