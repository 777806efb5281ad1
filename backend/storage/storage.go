package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when no value was ever stored under a key.
var ErrNotFound = errors.New("storage: key not found")

// Backend is a flat key-value store of serialized records.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Exists reports whether a value has ever been written under key.
func Exists(ctx context.Context, b Backend, key string) (bool, error) {
	_, err := b.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
