package filestorage

import (
	"context"
	"io"
)

// ObjectInfo describes a stored object
type ObjectInfo struct {
	Key      string // Key within the bucket
	URL      string // Public URL for the object
	Size     int64  // Size in bytes
	MimeType string // MIME type of the content
}

// Storage defines the interface for object storage operations
type Storage interface {
	// Upload streams the content to the bucket under key and returns where
	// it landed.
	Upload(ctx context.Context, key, contentType string, body io.Reader, size int64) (*ObjectInfo, error)
}
