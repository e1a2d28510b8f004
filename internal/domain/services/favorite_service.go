package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"mineral-catalog-service/internal/domain/models"
)

// InterfaceFavoriteService manages per-user favorites
type InterfaceFavoriteService interface {
	Add(userID, mineralID uint) error
	Remove(userID, mineralID uint) error
	ListIDs(userID uint) ([]uint, error)
	IsFavorite(userID, mineralID uint) (bool, error)
	FavoriteSet(userID uint, mineralIDs []uint) (map[uint]bool, error)
}

// FavoriteService stores favorites in a join table
type FavoriteService struct {
	DB *gorm.DB
}

// NewFavoriteService creates a new favorite service
func NewFavoriteService(db *gorm.DB) InterfaceFavoriteService {
	return &FavoriteService{DB: db}
}

// 1 Add marks a mineral. Adding twice is not an error.
func (s *FavoriteService) Add(userID, mineralID uint) error {
	var mineral models.Mineral
	if err := s.DB.Select("id").First(&mineral, mineralID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMineralNotFound
		}
		return fmt.Errorf("%w: find mineral: %w", ErrDatabase, err)
	}

	fav := models.Favorite{UserID: userID, MineralID: mineralID}
	if err := s.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&fav).Error; err != nil {
		return fmt.Errorf("%w: add: %w", ErrFavoriteFailed, err)
	}
	return nil
}

// 2 Remove unmarks a mineral. Removing a missing favorite is not an error.
func (s *FavoriteService) Remove(userID, mineralID uint) error {
	err := s.DB.Where("user_id = ? AND mineral_id = ?", userID, mineralID).Delete(&models.Favorite{}).Error
	if err != nil {
		return fmt.Errorf("%w: remove: %w", ErrFavoriteFailed, err)
	}
	return nil
}

// 3 ListIDs returns the user's favorite mineral IDs in ascending order
func (s *FavoriteService) ListIDs(userID uint) ([]uint, error) {
	ids := []uint{}
	err := s.DB.Model(&models.Favorite{}).
		Where("user_id = ?", userID).
		Order("mineral_id ASC").
		Pluck("mineral_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("%w: list favorites: %w", ErrDatabase, err)
	}
	return ids, nil
}

// 4 IsFavorite reports whether the user marked the mineral
func (s *FavoriteService) IsFavorite(userID, mineralID uint) (bool, error) {
	var count int64
	err := s.DB.Model(&models.Favorite{}).
		Where("user_id = ? AND mineral_id = ?", userID, mineralID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// 5 FavoriteSet returns which of mineralIDs the user marked
func (s *FavoriteService) FavoriteSet(userID uint, mineralIDs []uint) (map[uint]bool, error) {
	set := make(map[uint]bool, len(mineralIDs))
	if len(mineralIDs) == 0 {
		return set, nil
	}

	var marked []uint
	err := s.DB.Model(&models.Favorite{}).
		Where("user_id = ? AND mineral_id IN ?", userID, mineralIDs).
		Pluck("mineral_id", &marked).Error
	if err != nil {
		return nil, err
	}
	for _, id := range marked {
		set[id] = true
	}
	return set, nil
}
