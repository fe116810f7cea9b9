package storage

import (
	"context"
	"io"
)

// Storage defines the minimal interface for media storage backends.
type Storage interface {
	// Put stores an object at the given key
	Put(ctx context.Context, key string, reader io.Reader, contentType string) error

	// Delete removes an object by key. Returns nil if it doesn't exist.
	Delete(ctx context.Context, key string) error

	// GetURL returns the public URL for an object key
	GetURL(key string) string
}

// Config holds S3-compatible storage configuration
type Config struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
	PublicURL string
}

// Upload categories with their size caps and accepted content types.
// Asset images (frames/filters/stickers) are capped tighter than session
// photos because they ship to every kiosk.
const (
	CategoryPhoto = "photo"
	CategoryAsset = "asset"
)

var MaxFileSizes = map[string]int64{
	CategoryPhoto: 10 * 1024 * 1024,
	CategoryAsset: 5 * 1024 * 1024,
}

var AllowedMimeTypes = map[string][]string{
	CategoryPhoto: {"image/jpeg", "image/png", "image/gif", "image/webp"},
	CategoryAsset: {"image/jpeg", "image/png", "image/gif", "image/webp"},
}
