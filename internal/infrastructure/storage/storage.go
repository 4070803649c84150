// Package storage defines the key-value contract session slices are persisted through.
package storage

import (
	"context"
	"errors"
)

var ErrClosed = errors.New("storage closed")

// KV is a string-valued key-value store. Get reports absence with ok=false
// rather than an error.
type KV interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
