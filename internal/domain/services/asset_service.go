package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"mineral-catalog-service/internal/infrastructure/config"
	"mineral-catalog-service/internal/infrastructure/storage"
	"mineral-catalog-service/internal/metrics"
	Logger "mineral-catalog-service/pkg/logger"
)

// AssetKind selects the directory and allowed extensions of an upload
type AssetKind string

const (
	AssetModel   AssetKind = "model"
	AssetPreview AssetKind = "preview"
)

var assetRules = map[AssetKind]struct {
	dir          string
	contentTypes map[string]string
}{
	AssetModel: {
		dir:          "models",
		contentTypes: map[string]string{".glb": "model/gltf-binary"},
	},
	AssetPreview: {
		dir: "previews",
		contentTypes: map[string]string{
			".jpg":  "image/jpeg",
			".jpeg": "image/jpeg",
			".png":  "image/png",
		},
	},
}

// InterfaceAssetService validates and stores uploaded model and preview files
type InterfaceAssetService interface {
	Validate(kind AssetKind, file *multipart.FileHeader) error
	Save(ctx context.Context, kind AssetKind, file *multipart.FileHeader) (string, error)
	SaveModel(ctx context.Context, file *multipart.FileHeader) (string, error)
	SavePreview(ctx context.Context, file *multipart.FileHeader) (string, error)
	Delete(ctx context.Context, publicPath string) error
	Driver() string
}

// AssetService writes assets through a storage backend
type AssetService struct {
	Storage  storage.Storage
	MaxBytes int64
}

// NewAssetService creates a new asset service
func NewAssetService(cfg *config.Config, st storage.Storage) InterfaceAssetService {
	return &AssetService{
		Storage:  st,
		MaxBytes: cfg.MaxUploadBytes(),
	}
}

// 1 Validate checks presence, size and extension
func (s *AssetService) Validate(kind AssetKind, file *multipart.FileHeader) error {
	rule, ok := assetRules[kind]
	if !ok {
		return fmt.Errorf("unknown asset kind %q", kind)
	}
	if file == nil {
		return fmt.Errorf("%w: %s", ErrFileMissing, kind)
	}
	if file.Size > s.MaxBytes {
		return fmt.Errorf("%w: %s exceeds %d MiB", ErrFileTooLarge, file.Filename, s.MaxBytes>>20)
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if _, ok := rule.contentTypes[ext]; !ok {
		return fmt.Errorf("%w: %q for %s", ErrUnsupportedFileType, ext, kind)
	}
	return nil
}

// 2 Save stores the file under a random name and returns its public path
func (s *AssetService) Save(ctx context.Context, kind AssetKind, file *multipart.FileHeader) (string, error) {
	if err := s.Validate(kind, file); err != nil {
		return "", err
	}
	rule := assetRules[kind]
	ext := strings.ToLower(filepath.Ext(file.Filename))
	key := rule.dir + "/" + uuid.NewString() + ext

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("%w: open upload: %w", ErrStorageFailed, err)
	}
	defer src.Close()

	url, err := s.Storage.Save(ctx, key, src, file.Size, rule.contentTypes[ext])
	if err != nil {
		return "", fmt.Errorf("%w: store %s: %w", ErrStorageFailed, kind, err)
	}
	metrics.RecordUpload(string(kind), file.Size)
	Logger.Info("stored %s %q as %s", kind, file.Filename, key)
	return url, nil
}

// SaveModel stores a .glb model
func (s *AssetService) SaveModel(ctx context.Context, file *multipart.FileHeader) (string, error) {
	return s.Save(ctx, AssetModel, file)
}

// SavePreview stores a preview image
func (s *AssetService) SavePreview(ctx context.Context, file *multipart.FileHeader) (string, error) {
	return s.Save(ctx, AssetPreview, file)
}

// 3 Delete removes an asset by its public path. Paths outside the storage are ignored.
func (s *AssetService) Delete(ctx context.Context, publicPath string) error {
	if publicPath == "" {
		return nil
	}
	key, err := s.Storage.KeyFromURL(publicPath)
	if err != nil {
		Logger.Warning("skip deleting asset %q: %v", publicPath, err)
		return nil
	}
	return s.Storage.Delete(ctx, key)
}

func (s *AssetService) Driver() string {
	return s.Storage.Driver()
}
