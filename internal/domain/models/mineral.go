package models

import (
	"errors"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

const (
	MaxTitleLength        = 255
	MaxDescriptionWords   = 512
	AllowedModelExtension = ".glb"
)

var (
	ErrEmptyTitle         = errors.New("mineral title must not be empty")
	ErrTitleTooLong       = errors.New("mineral title is too long")
	ErrDescriptionTooLong = errors.New("mineral description exceeds the word limit")
	ErrInvalidModelPath   = errors.New("mineral model must be a .glb file")
)

// Mineral is a catalog entry with its 3D model and preview image
type Mineral struct {
	BaseModel
	Title            string `gorm:"type:varchar(255);not null;index" json:"title" validate:"required,max=255"`
	Description      string `gorm:"type:text" json:"description" validate:"maxwords=512"`
	ModelPath        string `gorm:"type:varchar(512);not null" json:"model_path" validate:"required,glbpath"`
	PreviewImagePath string `gorm:"type:varchar(512)" json:"preview_image_path"`
	SearchTitle      string `gorm:"type:varchar(255);index" json:"-"` // lower-cased title for prefix search
}

// BeforeSave keeps SearchTitle in step with Title
func (m *Mineral) BeforeSave(tx *gorm.DB) error {
	m.SearchTitle = strings.ToLower(m.Title)
	return nil
}

// MineralView is a mineral as seen by a particular caller
type MineralView struct {
	Mineral
	IsFavorite      bool   `json:"is_favorite"`
	DescriptionHTML string `json:"description_html,omitempty"`
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func mineralValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		_ = validate.RegisterValidation("maxwords", func(fl validator.FieldLevel) bool {
			return len(strings.Fields(fl.Field().String())) <= MaxDescriptionWords
		})
		_ = validate.RegisterValidation("glbpath", func(fl validator.FieldLevel) bool {
			return strings.HasSuffix(strings.ToLower(fl.Field().String()), AllowedModelExtension)
		})
	})
	return validate
}

// Validate checks the entry before it is stored. The title is trimmed in place.
func (m *Mineral) Validate() error {
	m.Title = strings.TrimSpace(m.Title)

	err := mineralValidator().Struct(m)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	switch fe := verrs[0]; fe.Field() {
	case "Title":
		if fe.Tag() == "required" {
			return ErrEmptyTitle
		}
		return ErrTitleTooLong
	case "Description":
		return ErrDescriptionTooLong
	default:
		return ErrInvalidModelPath
	}
}

// IsValidationError reports whether err came from Mineral.Validate
func IsValidationError(err error) bool {
	return errors.Is(err, ErrEmptyTitle) ||
		errors.Is(err, ErrTitleTooLong) ||
		errors.Is(err, ErrDescriptionTooLong) ||
		errors.Is(err, ErrInvalidModelPath)
}
