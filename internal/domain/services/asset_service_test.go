package services

import (
	"bytes"
	"context"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mineral-catalog-service/internal/infrastructure/storage"
)

func TestAssetService(t *testing.T) {
	cfg := testConfig(t)
	st, err := storage.NewLocal(cfg.StoragePath)
	require.NoError(t, err)
	assets := NewAssetService(cfg, st)
	ctx := context.Background()

	assert.Equal(t, "local", assets.Driver())
	assert.Error(t, assets.Validate(AssetKind("video"), fileHeader(t, "f", "a.mp4", nil)))
	assert.NoError(t, assets.Validate(AssetPreview, fileHeader(t, "f", "photo.JPEG", pngBytes)))

	url, err := assets.Save(ctx, AssetPreview, fileHeader(t, "preview", "photo.jpg", pngBytes))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/storage/previews/"))
	assert.True(t, strings.HasSuffix(url, ".jpg"))
	assert.NotContains(t, url, "photo", "stored names do not reuse the client filename")

	onDisk := filepath.Join(cfg.StoragePath, strings.TrimPrefix(url, "/storage/"))
	assert.FileExists(t, onDisk)

	require.NoError(t, assets.Delete(ctx, url))
	assert.NoFileExists(t, onDisk)
	require.NoError(t, assets.Delete(ctx, url), "deleting a missing asset is not an error")
	require.NoError(t, assets.Delete(ctx, "https://elsewhere.example/x.png"))
	require.NoError(t, assets.Delete(ctx, ""))

	_, err = os.Stat(filepath.Join(cfg.StoragePath, "models"))
	assert.NoError(t, err)
}

func TestMarkdownRender(t *testing.T) {
	md := NewMarkdownService()

	html, err := md.Render("")
	require.NoError(t, err)
	assert.Empty(t, html)

	html, err = md.Render("# Quartz\n\n| a | b |\n|---|---|\n| 1 | 2 |\n\n[x](javascript:alert(1)) <img src=x onerror=alert(1)>")
	require.NoError(t, err)
	assert.Contains(t, html, "<h1")
	assert.Contains(t, html, "<table>")
	assert.NotContains(t, html, "javascript:")
	assert.NotContains(t, html, "onerror")
}

func TestQRCode(t *testing.T) {
	svc := NewQRCodeService(testConfig(t))
	assert.Equal(t, "http://localhost:5173/minerals/42", svc.ViewerURL(42))

	data, err := svc.Generate(42, 0)
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, DefaultQRSize, img.Bounds().Dx())

	assert.Equal(t, DefaultQRSize, ClampQRSize(-5))
	assert.Equal(t, MinQRSize, ClampQRSize(10))
	assert.Equal(t, MaxQRSize, ClampQRSize(4096))
	assert.Equal(t, 300, ClampQRSize(300))
}
