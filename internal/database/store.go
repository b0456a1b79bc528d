// Package database provides the key-value stores the board snapshot is
// persisted to: SQLite (default), BadgerDB, Redis, and an in-memory map.
package database

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

var (
	// ErrNotFound is returned by Get when the key has never been written
	ErrNotFound = errors.New("key not found")

	// ErrClosed is returned by operations on a closed store
	ErrClosed = errors.New("store is closed")

	// ErrUnknownBackend is returned by Open for an unsupported backend name
	ErrUnknownBackend = errors.New("unknown storage backend")
)

// KeyValueStore is a string-keyed byte store. Implementations must be safe
// for concurrent use.
type KeyValueStore interface {
	// Get returns the value stored under key, or ErrNotFound
	Get(ctx context.Context, key string) ([]byte, error)
	// Set stores value under key, replacing any previous value
	Set(ctx context.Context, key string, value []byte) error
	Close() error
}

// Backend names accepted by Open
const (
	BackendSQLite = "sqlite"
	BackendBadger = "badger"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Backends lists every supported backend name
func Backends() []string {
	return []string{BackendSQLite, BackendBadger, BackendRedis, BackendMemory}
}

// Options selects and configures a store for Open
type Options struct {
	Backend   string
	Path      string
	RedisAddr string
	Logger    *slog.Logger
}

// Open constructs the store named by opts.Backend
func Open(ctx context.Context, opts Options) (KeyValueStore, error) {
	switch opts.Backend {
	case BackendSQLite, "":
		db, err := InitDB(ctx, opts.Path)
		if err != nil {
			return nil, err
		}
		return NewSQLiteStore(db), nil
	case BackendBadger:
		cfg := DefaultBadgerConfig()
		cfg.Path = opts.Path
		cfg.Logger = opts.Logger
		return OpenBadgerStore(cfg)
	case BackendRedis:
		return OpenRedisStore(ctx, opts.RedisAddr)
	case BackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, opts.Backend)
	}
}
