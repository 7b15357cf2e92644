package storage

import (
	"context"
	"path"
	"strings"

	"github.com/google/uuid"
)

// BlobStore keeps the binary behind photos and portfolio items.
type BlobStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
	Delete(ctx context.Context, key string) error
	URL(key string) string
}

// NewKey returns a collision resistant storage key that keeps the original
// file extension.
func NewKey(originalName string) string {
	ext := strings.ToLower(path.Ext(strings.ReplaceAll(originalName, "\\", "/")))
	return uuid.New().String() + ext
}

// ThumbnailKey derives the thumbnail key stored next to key.
func ThumbnailKey(key string) string {
	return "thumb_" + strings.TrimSuffix(key, path.Ext(key)) + ".jpg"
}
