package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"mineral-catalog-service/internal/infrastructure/config"
)

var (
	ErrInvalidKey = errors.New("invalid storage key")
	ErrUnknownURL = errors.New("url does not belong to this storage")
)

// Storage keeps uploaded assets under slash separated keys such as
// "models/<name>.glb".
type Storage interface {
	// Save writes r under key and returns its public URL
	Save(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)
	// Delete removes key; a missing object is not an error
	Delete(ctx context.Context, key string) error
	// URL returns the public URL of key
	URL(key string) string
	// KeyFromURL maps a public URL back to its key
	KeyFromURL(url string) (string, error)
	// Driver names the backend
	Driver() string
}

// New builds the backend selected by STORAGE_DRIVER
func New(ctx context.Context, cfg *config.Config) (Storage, error) {
	switch cfg.StorageDriver {
	case config.StorageDriverLocal, "":
		return NewLocal(cfg.StoragePath)
	case config.StorageDriverS3:
		return NewS3(ctx, S3Options{
			Bucket:          cfg.S3Bucket,
			Region:          cfg.S3Region,
			Endpoint:        cfg.S3Endpoint,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
			PublicURL:       cfg.S3PublicURL,
		})
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
	}
}

// cleanKey rejects keys that could escape the storage root
func cleanKey(key string) (string, error) {
	key = strings.TrimLeft(strings.ReplaceAll(key, "\\", "/"), "/")
	if key == "" {
		return "", ErrInvalidKey
	}
	for _, part := range strings.Split(key, "/") {
		if part == "" || part == "." || part == ".." {
			return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
		}
	}
	return key, nil
}

func keyFromPrefix(prefix, url string) (string, error) {
	if !strings.HasPrefix(url, prefix+"/") {
		return "", fmt.Errorf("%w: %q", ErrUnknownURL, url)
	}
	return cleanKey(strings.TrimPrefix(url, prefix+"/"))
}
