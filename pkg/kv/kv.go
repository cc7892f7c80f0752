package kv

import (
	"context"
	"errors"
)

// ErrNotFound signals a missing key on point lookups.
var ErrNotFound = errors.New("kv: key not found")

// Entry is a key/value pair returned by prefix scans.
type Entry struct {
	Key   string
	Value []byte
}

// Store is the persistence contract for the whole service: point reads
// and writes by exact key plus listing by key prefix. There is no query
// language and no partial-update primitive; callers replace whole
// records.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	ScanPrefix(ctx context.Context, prefix string) ([]Entry, error)
}

// Pinger exposes the health-check surface.
type Pinger interface {
	Ping(context.Context) error
}
