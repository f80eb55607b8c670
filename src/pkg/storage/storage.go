// Package storage provides the single-record local store the session
// layer persists into, with file and redis drivers behind one interface.
package storage

import (
	"context"
	"errors"
)

// ErrNotFound indicates no record exists under the requested key.
var ErrNotFound = errors.New("record not found")

// Store is a minimal keyed byte store. The core keeps exactly one record
// in it (the serialized session), but drivers do not assume that.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
