package services

import (
	"bytes"
	"mime/multipart"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"mineral-catalog-service/internal/infrastructure/config"
	"mineral-catalog-service/internal/infrastructure/database"
	"mineral-catalog-service/internal/infrastructure/events"
	"mineral-catalog-service/internal/infrastructure/storage"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func testConfig(t *testing.T) *config.Config {
	return &config.Config{
		JWTSecretKey:              "test-secret",
		JWTTTLHours:               72,
		StorageDriver:             config.StorageDriverLocal,
		StoragePath:               t.TempDir(),
		MaxUploadMB:               1,
		FrontendURL:               "http://localhost:5173",
		TranslationURL:            "http://127.0.0.1:1",
		TranslationTimeoutSeconds: 2,
		TranslationCacheTTLHours:  1,
		TranslationConcurrency:    4,
		TranslationLanguages:      []string{"ru", "en", "es", "fr", "de"},
		TranslationSourceLang:     "ru",
	}
}

func fileHeader(t *testing.T, field, name string, content []byte) *multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile(field, name)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(8 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File[field][0]
}

type catalogFixture struct {
	db        *gorm.DB
	cfg       *config.Config
	storage   *storage.Local
	recorder  *events.Recorder
	favorites InterfaceFavoriteService
	minerals  InterfaceMineralService
}

func newCatalogFixture(t *testing.T) *catalogFixture {
	t.Helper()
	db := newTestDB(t)
	cfg := testConfig(t)
	st, err := storage.NewLocal(cfg.StoragePath)
	require.NoError(t, err)

	recorder := &events.Recorder{}
	favorites := NewFavoriteService(db)
	minerals := NewMineralService(db, cfg, NewAssetService(cfg, st), favorites, NewMarkdownService(), recorder)
	return &catalogFixture{
		db:        db,
		cfg:       cfg,
		storage:   st,
		recorder:  recorder,
		favorites: favorites,
		minerals:  minerals,
	}
}

// localPath maps a public /storage URL to the file on disk
func (f *catalogFixture) localPath(t *testing.T, url string) string {
	t.Helper()
	key, err := f.storage.KeyFromURL(url)
	require.NoError(t, err)
	return filepath.Join(f.cfg.StoragePath, filepath.FromSlash(key))
}
