// Package kvstore persists small string-keyed blobs on the local device:
// the session token, cached payloads and user preferences.
package kvstore

import (
	"context"
	"errors"
)

// ErrClosed is returned by operations on a closed store.
var ErrClosed = errors.New("kvstore: closed")

// Store is a durable key/value map.
//
// Get reports ok=false (and a nil error) for a missing key. Delete of a
// missing key is not an error.
type Store interface {
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}
