package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// PublicPrefix is where the router serves local assets
const PublicPrefix = "/storage"

var assetDirs = []string{"models", "previews"}

// Local stores assets on the filesystem under Root
type Local struct {
	Root string
}

// NewLocal creates the root and the asset directories
func NewLocal(root string) (*Local, error) {
	for _, dir := range assetDirs {
		if err := os.MkdirAll(filepath.Join(root, dir), 0755); err != nil {
			return nil, fmt.Errorf("create storage directory: %w", err)
		}
	}
	return &Local{Root: root}, nil
}

func (l *Local) Driver() string { return "local" }

func (l *Local) path(key string) (string, error) {
	key, err := cleanKey(key)
	if err != nil {
		return "", err
	}
	return filepath.Join(l.Root, filepath.FromSlash(key)), nil
}

// Save writes through a temporary file so readers never see partial assets
func (l *Local) Save(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error) {
	dst, err := l.path(key)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return "", fmt.Errorf("create asset directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dst), ".upload-*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, readerWithContext(ctx, r)); err != nil {
		tmp.Close()
		return "", fmt.Errorf("write asset: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close asset: %w", err)
	}
	if err := os.Rename(tmp.Name(), dst); err != nil {
		return "", fmt.Errorf("move asset into place: %w", err)
	}
	return l.URL(key), nil
}

func (l *Local) Delete(_ context.Context, key string) error {
	p, err := l.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove asset: %w", err)
	}
	return nil
}

func (l *Local) URL(key string) string {
	return PublicPrefix + "/" + key
}

func (l *Local) KeyFromURL(url string) (string, error) {
	return keyFromPrefix(PublicPrefix, url)
}

type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (c ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}

func readerWithContext(ctx context.Context, r io.Reader) io.Reader {
	if ctx == nil {
		return r
	}
	return ctxReader{ctx: ctx, r: r}
}
