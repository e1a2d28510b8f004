package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"

	"gorm.io/gorm"

	"mineral-catalog-service/internal/domain/models"
	"mineral-catalog-service/internal/infrastructure/config"
	"mineral-catalog-service/internal/infrastructure/database"
	"mineral-catalog-service/internal/infrastructure/events"
	"mineral-catalog-service/internal/metrics"
	Logger "mineral-catalog-service/pkg/logger"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

var sortColumns = map[string]string{
	"":           "id",
	"id":         "id",
	"title":      "search_title",
	"created_at": "created_at",
}

// ListQuery filters and orders the catalog
type ListQuery struct {
	Sort          string `form:"sort"`
	Order         string `form:"order"`
	Search        string `form:"search"`
	FavoritesOnly bool   `form:"favorites_only"`
	models.PaginationQuery
}

// MineralInput carries the form fields of a create or update request.
// On update, blank fields and nil files keep the stored values.
type MineralInput struct {
	Title       string
	Description string
	Model       *multipart.FileHeader
	Preview     *multipart.FileHeader
}

// InterfaceMineralService manages the catalog
type InterfaceMineralService interface {
	List(query ListQuery, userID *uint) ([]models.MineralView, int64, error)
	Get(id uint, userID *uint) (*models.MineralView, error)
	GetMineral(id uint) (*models.Mineral, error)
	All() ([]models.Mineral, error)
	SearchByTitlePrefix(prefix string) ([]models.Mineral, error)
	Create(ctx context.Context, input MineralInput) (*models.Mineral, error)
	Update(ctx context.Context, id uint, input MineralInput) (*models.Mineral, error)
	Delete(ctx context.Context, id uint) error
}

// MineralService stores minerals and their assets
type MineralService struct {
	DB        *gorm.DB
	Config    *config.Config
	Assets    InterfaceAssetService
	Favorites InterfaceFavoriteService
	Markdown  InterfaceMarkdownService
	Events    events.Publisher
}

// NewMineralService creates a new mineral service
func NewMineralService(
	db *gorm.DB,
	cfg *config.Config,
	assets InterfaceAssetService,
	favorites InterfaceFavoriteService,
	markdown InterfaceMarkdownService,
	publisher events.Publisher,
) InterfaceMineralService {
	if publisher == nil {
		publisher = events.Noop{}
	}
	return &MineralService{
		DB:        db,
		Config:    cfg,
		Assets:    assets,
		Favorites: favorites,
		Markdown:  markdown,
		Events:    publisher,
	}
}

// escapeLike escapes LIKE wildcards so user input matches literally
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func (s *MineralService) prefixQuery(db *gorm.DB, prefix string) *gorm.DB {
	prefix = strings.ToLower(strings.TrimSpace(prefix))
	if prefix == "" {
		return db
	}
	return db.Where("minerals.search_title LIKE ? ESCAPE ?", escapeLike(prefix)+"%", `\`)
}

// 1 List returns the catalog filtered, sorted and paginated, with the
// caller's favorite flag. Without a page the whole result is returned.
func (s *MineralService) List(query ListQuery, userID *uint) ([]models.MineralView, int64, error) {
	column, ok := sortColumns[strings.ToLower(query.Sort)]
	if !ok {
		return nil, 0, fmt.Errorf("%w: unsupported sort field %q", ErrInvalidQuery, query.Sort)
	}
	direction := "ASC"
	switch strings.ToLower(query.Order) {
	case "", "asc":
	case "desc":
		direction = "DESC"
	default:
		return nil, 0, fmt.Errorf("%w: unsupported sort order %q", ErrInvalidQuery, query.Order)
	}

	db := s.prefixQuery(s.DB.Model(&models.Mineral{}), query.Search)
	if query.FavoritesOnly {
		if userID == nil {
			return nil, 0, ErrAuthRequired
		}
		db = db.Joins("JOIN favorites ON favorites.mineral_id = minerals.id AND favorites.user_id = ?", *userID)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("%w: count minerals: %w", ErrDatabase, err)
	}

	db = db.Order(fmt.Sprintf("minerals.%s %s", column, direction))
	if column != "id" {
		db = db.Order("minerals.id ASC")
	}
	if query.Page > 0 {
		size := query.PageSize
		if size <= 0 {
			size = defaultPageSize
		}
		if size > maxPageSize {
			size = maxPageSize
		}
		db = db.Offset((query.Page - 1) * size).Limit(size)
	}

	var minerals []models.Mineral
	if err := db.Find(&minerals).Error; err != nil {
		return nil, 0, fmt.Errorf("%w: list minerals: %w", ErrDatabase, err)
	}

	views, err := s.withFavorites(minerals, userID)
	if err != nil {
		return nil, 0, err
	}
	return views, total, nil
}

func (s *MineralService) withFavorites(minerals []models.Mineral, userID *uint) ([]models.MineralView, error) {
	views := make([]models.MineralView, len(minerals))
	marked := map[uint]bool{}
	if userID != nil && len(minerals) > 0 {
		ids := make([]uint, len(minerals))
		for i, m := range minerals {
			ids[i] = m.ID
		}
		var err error
		if marked, err = s.Favorites.FavoriteSet(*userID, ids); err != nil {
			return nil, fmt.Errorf("%w: load favorites: %w", ErrDatabase, err)
		}
	}
	for i, m := range minerals {
		views[i] = models.MineralView{Mineral: m, IsFavorite: marked[m.ID]}
	}
	return views, nil
}

// 2 GetMineral loads a stored entry
func (s *MineralService) GetMineral(id uint) (*models.Mineral, error) {
	var mineral models.Mineral
	if err := s.DB.First(&mineral, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMineralNotFound
		}
		return nil, fmt.Errorf("%w: get mineral: %w", ErrDatabase, err)
	}
	return &mineral, nil
}

// 3 Get returns one entry with its rendered description
func (s *MineralService) Get(id uint, userID *uint) (*models.MineralView, error) {
	mineral, err := s.GetMineral(id)
	if err != nil {
		return nil, err
	}

	view := models.MineralView{Mineral: *mineral}
	if userID != nil {
		if view.IsFavorite, err = s.Favorites.IsFavorite(*userID, id); err != nil {
			return nil, fmt.Errorf("%w: load favorite: %w", ErrDatabase, err)
		}
	}

	if html, err := s.Markdown.Render(mineral.Description); err != nil {
		Logger.Warning("render description of mineral %d: %v", id, err)
	} else {
		view.DescriptionHTML = html
	}
	return &view, nil
}

// 4 All returns every entry ordered by ID
func (s *MineralService) All() ([]models.Mineral, error) {
	minerals := []models.Mineral{}
	if err := s.DB.Order("id ASC").Find(&minerals).Error; err != nil {
		return nil, fmt.Errorf("%w: list minerals: %w", ErrDatabase, err)
	}
	return minerals, nil
}

// 5 SearchByTitlePrefix matches titles case-insensitively, ordered by title
func (s *MineralService) SearchByTitlePrefix(prefix string) ([]models.Mineral, error) {
	minerals := []models.Mineral{}
	if strings.TrimSpace(prefix) == "" {
		return minerals, nil
	}
	err := s.prefixQuery(s.DB.Model(&models.Mineral{}), prefix).
		Order("search_title ASC").Order("id ASC").
		Find(&minerals).Error
	if err != nil {
		return nil, fmt.Errorf("%w: search minerals: %w", ErrDatabase, err)
	}
	return minerals, nil
}

// 6 Create validates the entry, stores both assets and inserts the row.
// Stored assets are removed again when the insert fails.
func (s *MineralService) Create(ctx context.Context, input MineralInput) (*models.Mineral, error) {
	if err := s.Assets.Validate(AssetModel, input.Model); err != nil {
		return nil, err
	}
	if err := s.Assets.Validate(AssetPreview, input.Preview); err != nil {
		return nil, err
	}

	mineral := &models.Mineral{
		Title:       input.Title,
		Description: input.Description,
		ModelPath:   input.Model.Filename,
	}
	if err := mineral.Validate(); err != nil {
		return nil, err
	}

	modelPath, err := s.Assets.Save(ctx, AssetModel, input.Model)
	if err != nil {
		return nil, err
	}
	previewPath, err := s.Assets.Save(ctx, AssetPreview, input.Preview)
	if err != nil {
		s.removeAssets(ctx, modelPath)
		return nil, err
	}
	mineral.ModelPath = modelPath
	mineral.PreviewImagePath = previewPath

	if err := s.DB.Create(mineral).Error; err != nil {
		s.removeAssets(ctx, modelPath, previewPath)
		return nil, fmt.Errorf("%w: create mineral: %w", ErrDatabase, err)
	}

	s.publish(ctx, events.MineralCreated, mineral)
	return mineral, nil
}

// 7 Update applies the non-empty fields and replaces uploaded assets.
// Replaced assets are deleted only after the row is saved.
func (s *MineralService) Update(ctx context.Context, id uint, input MineralInput) (*models.Mineral, error) {
	mineral, err := s.GetMineral(id)
	if err != nil {
		return nil, err
	}

	if input.Model != nil {
		if err := s.Assets.Validate(AssetModel, input.Model); err != nil {
			return nil, err
		}
	}
	if input.Preview != nil {
		if err := s.Assets.Validate(AssetPreview, input.Preview); err != nil {
			return nil, err
		}
	}

	if strings.TrimSpace(input.Title) != "" {
		mineral.Title = input.Title
	}
	if strings.TrimSpace(input.Description) != "" {
		mineral.Description = input.Description
	}
	if err := mineral.Validate(); err != nil {
		return nil, err
	}

	var stored, replaced []string
	if input.Model != nil {
		path, err := s.Assets.Save(ctx, AssetModel, input.Model)
		if err != nil {
			return nil, err
		}
		stored = append(stored, path)
		replaced = append(replaced, mineral.ModelPath)
		mineral.ModelPath = path
	}
	if input.Preview != nil {
		path, err := s.Assets.Save(ctx, AssetPreview, input.Preview)
		if err != nil {
			s.removeAssets(ctx, stored...)
			return nil, err
		}
		stored = append(stored, path)
		replaced = append(replaced, mineral.PreviewImagePath)
		mineral.PreviewImagePath = path
	}

	if err := s.DB.Save(mineral).Error; err != nil {
		s.removeAssets(ctx, stored...)
		return nil, fmt.Errorf("%w: update mineral: %w", ErrDatabase, err)
	}
	s.removeAssets(ctx, replaced...)

	s.publish(ctx, events.MineralUpdated, mineral)
	return mineral, nil
}

// 8 Delete removes the entry with its favorites, then its assets
func (s *MineralService) Delete(ctx context.Context, id uint) error {
	mineral, err := s.GetMineral(id)
	if err != nil {
		return err
	}

	err = database.WithTransaction(s.DB, func(tx *gorm.DB) error {
		if err := tx.Where("mineral_id = ?", id).Delete(&models.Favorite{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Mineral{}, id).Error
	})
	if err != nil {
		return fmt.Errorf("%w: delete mineral: %w", ErrDatabase, err)
	}

	s.removeAssets(ctx, mineral.ModelPath, mineral.PreviewImagePath)
	s.publish(ctx, events.MineralDeleted, mineral)
	return nil
}

// removeAssets deletes files best effort; failures are only logged
func (s *MineralService) removeAssets(ctx context.Context, paths ...string) {
	for _, p := range paths {
		if err := s.Assets.Delete(ctx, p); err != nil {
			Logger.Warning("delete asset %s: %v", p, err)
		}
	}
}

func (s *MineralService) publish(ctx context.Context, t events.EventType, m *models.Mineral) {
	err := s.Events.Publish(ctx, events.NewEvent(t, m.ID, m.Title))
	metrics.RecordEvent(string(t), err)
	if err != nil {
		Logger.Warning("publish %s event for mineral %d: %v", t, m.ID, err)
	}
}
