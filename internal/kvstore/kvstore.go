// Package kvstore provides the string-keyed, string-valued store that backs
// dashboard persistence: a handful of fixed keys, each holding a whole
// serialized value.
package kvstore

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// ErrInvalidKey is returned for keys that are empty or contain characters
// outside [A-Za-z0-9._-].
var ErrInvalidKey = errors.New("invalid key")

// Store is a minimal key-value string store. Set overwrites the whole value.
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context) ([]string, error)
	Close() error
}

// BackupReader is implemented by stores that keep the previous value of a
// key around. Storage consults it when the current value is unreadable.
type BackupReader interface {
	GetBackup(ctx context.Context, key string) (value string, ok bool, err error)
}

// Open creates a Store for the named backend rooted at dir.
func Open(backend, dir string) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", BackendFile:
		return NewFileStore(dir)
	case BackendSQLite:
		return NewSQLiteStore(dir)
	case BackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q (want file, sqlite or memory)", backend)
	}
}

// ValidateKey checks that key is usable by every backend.
func ValidateKey(key string) error {
	if key == "" {
		return fmt.Errorf("%w: empty", ErrInvalidKey)
	}
	for _, r := range key {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '-', r == '_', r == '.':
		default:
			return fmt.Errorf("%w: %q", ErrInvalidKey, key)
		}
	}
	if key == "." || key == ".." {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}
