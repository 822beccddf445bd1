// Package store persists serialized games under named save slots.
package store

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"cardempire/internal/config"
)

var (
	ErrNotFound    = errors.New("save slot not found")
	ErrInvalidSlot = errors.New("invalid save slot name")
)

// Store is a slot-keyed blob store. Implementations must be safe for
// concurrent use.
type Store interface {
	Save(ctx context.Context, slot string, data []byte) error
	Load(ctx context.Context, slot string) ([]byte, error)
	Delete(ctx context.Context, slot string) error
	List(ctx context.Context) ([]string, error)
	Close() error
}

var slotPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// ValidateSlot rejects names that could escape a directory or key prefix.
func ValidateSlot(slot string) error {
	if !slotPattern.MatchString(slot) {
		return fmt.Errorf("%w: %q", ErrInvalidSlot, slot)
	}
	return nil
}

// Open builds the store named by cfg.StoreDriver, wrapped in a read cache
// when cfg.CacheSize is positive.
func Open(ctx context.Context, cfg config.Server) (Store, error) {
	var (
		s   Store
		err error
	)
	switch cfg.StoreDriver {
	case "memory":
		s = NewMemoryStore()
	case "file", "":
		s, err = NewFileStore(cfg.DataDir)
	case "sqlite":
		s, err = OpenSQL(ctx, DialectSQLite, cfg.SQLitePath)
	case "postgres":
		s, err = OpenSQL(ctx, DialectPostgres, cfg.PostgresDSN)
	case "redis":
		s, err = OpenRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	default:
		return nil, fmt.Errorf("unsupported store driver %q", cfg.StoreDriver)
	}
	if err != nil {
		return nil, err
	}
	if cfg.CacheSize > 0 {
		return NewCached(s, cfg.CacheSize)
	}
	return s, nil
}
