// Package storage persists the two tracker lists (watchlist ids and custom shoes)
// as opaque JSON payloads under fixed keys. Drivers only move bytes; decoding and
// validation of those bytes lives in codec.go.
package storage

import (
	"context"
	"errors"
	"fmt"
)

// Keys used by the browser app; kept so existing exports can be imported as-is.
const (
	KeyWatchlist   = "shoeWatchlist"
	KeyCustomShoes = "customShoes"
)

// Driver identifies a concrete storage backend.
type Driver string

const (
	DriverMemory   Driver = "memory"   // in-memory (tests, demos)
	DriverFile     Driver = "file"     // one JSON file per key
	DriverSQLite   Driver = "sqlite"   // gorm + sqlite (default)
	DriverPostgres Driver = "postgres" // pgx via database/sql
	DriverS3       Driver = "s3"       // S3 / MinIO compatible
)

// Store is a synchronous key/value store for the tracker state.
// Load returns (nil, nil) when the key has never been written.
type Store interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, payload []byte) error
	Driver() Driver
	Close() error
}

// ErrCorruptState is matched (via errors.Is) by every decode failure.
var ErrCorruptState = errors.New("corrupt state")

// CorruptStateError describes a stored payload that failed validation.
type CorruptStateError struct {
	Key    string
	Reason string
	Err    error
}

func (e *CorruptStateError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("corrupt state in %q: %s: %v", e.Key, e.Reason, e.Err)
	}
	return fmt.Sprintf("corrupt state in %q: %s", e.Key, e.Reason)
}

func (e *CorruptStateError) Is(target error) bool {
	return target == ErrCorruptState
}

func (e *CorruptStateError) Unwrap() error {
	return e.Err
}

func corrupt(key, reason string, err error) error {
	return &CorruptStateError{Key: key, Reason: reason, Err: err}
}
