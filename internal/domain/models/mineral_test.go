package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func validMineral() *Mineral {
	return &Mineral{
		Title:            "Malachite",
		Description:      "Green copper carbonate",
		ModelPath:        "/storage/models/malachite.glb",
		PreviewImagePath: "/storage/previews/malachite.png",
	}
}

func TestMineralValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(m *Mineral)
		want   error
	}{
		{"valid", func(m *Mineral) {}, nil},
		{"blank title", func(m *Mineral) { m.Title = "   " }, ErrEmptyTitle},
		{"title too long", func(m *Mineral) { m.Title = strings.Repeat("a", MaxTitleLength+1) }, ErrTitleTooLong},
		{"title at limit in cyrillic", func(m *Mineral) { m.Title = strings.Repeat("ж", MaxTitleLength) }, nil},
		{"description at word limit", func(m *Mineral) { m.Description = strings.Repeat("word ", MaxDescriptionWords) }, nil},
		{"description over word limit", func(m *Mineral) { m.Description = strings.Repeat("word ", MaxDescriptionWords+1) }, ErrDescriptionTooLong},
		{"model not glb", func(m *Mineral) { m.ModelPath = "/storage/models/a.obj" }, ErrInvalidModelPath},
		{"model missing", func(m *Mineral) { m.ModelPath = "" }, ErrInvalidModelPath},
		{"model upper case extension", func(m *Mineral) { m.ModelPath = "/storage/models/A.GLB" }, nil},
		{"empty description", func(m *Mineral) { m.Description = "" }, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := validMineral()
			tt.mutate(m)
			err := m.Validate()
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
			assert.True(t, IsValidationError(err))
		})
	}
}

func TestMineralValidateTrimsTitle(t *testing.T) {
	m := validMineral()
	m.Title = "  Quartz \n"
	assert.NoError(t, m.Validate())
	assert.Equal(t, "Quartz", m.Title)
}

func TestRoleAndLanguage(t *testing.T) {
	assert.True(t, RoleAdmin.Valid())
	assert.False(t, Role("owner").Valid())
	assert.Equal(t, "Deutsch", LanguageName("de"))
	assert.Equal(t, "pt", LanguageName("pt"))
}
