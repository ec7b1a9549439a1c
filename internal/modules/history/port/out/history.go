package out

import "context"

// BlobStore is the external persistence surface: an opaque key-value blob
// store. The session collection round-trips through a single key.
type BlobStore interface {
	// Get returns the stored bytes and whether the key exists.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
}
