// Package blob abstracts the per-user object storage holding the actual
// file contents. Objects are opaque: no custom metadata is stored on them,
// so file→category membership lives entirely in the category store.
package blob

import (
	"context"
	"io"
)

// Object is a handle returned by List.
type Object struct {
	// Key is the full storage key, namespace prefix included.
	Key string
	// Name is the display name (the last key segment).
	Name string
}

// Store is the object-storage collaborator. Every call is a single attempt;
// retries and timeouts belong to the underlying client.
type Store interface {
	// Put writes the object at key, silently overwriting an existing one.
	Put(ctx context.Context, key string, body io.Reader) error
	// List returns all objects under the namespace prefix.
	List(ctx context.Context, prefix string) ([]Object, error)
	// DownloadLocator returns the stable locator URL for a key. The
	// locator doubles as the object's identity in category membership
	// lists, so it must be deterministic.
	DownloadLocator(key string) string
	// PresignedGetURL returns a temporary URL for downloading the object.
	PresignedGetURL(ctx context.Context, key string) (string, error)
	// SizeMetadata returns the object's size in bytes.
	SizeMetadata(ctx context.Context, key string) (int64, error)
	// Delete removes the object, failing with ErrorNotFound when absent.
	Delete(ctx context.Context, key string) error
}
