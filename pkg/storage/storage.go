package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a key has no stored object.
var ErrNotFound = errors.New("storage: object not found")

// ObjectStore is a JSON-document blob store keyed by path-like strings.
type ObjectStore interface {
	GetJSON(ctx context.Context, key string, dest interface{}) error
	PutJSON(ctx context.Context, key string, value interface{}) error
	Exists(ctx context.Context, key string) (bool, error)
	Delete(ctx context.Context, key string) error
	List(ctx context.Context, prefix string) ([]string, error)
}
