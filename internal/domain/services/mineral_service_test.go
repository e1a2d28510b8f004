package services

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mineral-catalog-service/internal/domain/models"
	"mineral-catalog-service/internal/infrastructure/events"
)

var (
	glbBytes = []byte("glTF\x02\x00\x00\x00fake-binary")
	pngBytes = []byte("\x89PNG\r\n\x1a\nfake-image")
)

func (f *catalogFixture) create(t *testing.T, title, description string) *models.Mineral {
	t.Helper()
	m, err := f.minerals.Create(context.Background(), MineralInput{
		Title:       title,
		Description: description,
		Model:       fileHeader(t, "model", "sample.glb", glbBytes),
		Preview:     fileHeader(t, "preview", "sample.png", pngBytes),
	})
	require.NoError(t, err)
	return m
}

func titles(views []models.MineralView) []string {
	out := make([]string, len(views))
	for i, v := range views {
		out[i] = v.Title
	}
	return out
}

func TestCreateMineral(t *testing.T) {
	f := newCatalogFixture(t)

	m := f.create(t, "  Кварц ", "Hard **crystal**")
	assert.NotZero(t, m.ID)
	assert.Equal(t, "Кварц", m.Title)
	assert.True(t, strings.HasPrefix(m.ModelPath, "/storage/models/"))
	assert.True(t, strings.HasSuffix(m.ModelPath, ".glb"))
	assert.True(t, strings.HasPrefix(m.PreviewImagePath, "/storage/previews/"))

	data, err := os.ReadFile(f.localPath(t, m.ModelPath))
	require.NoError(t, err)
	assert.Equal(t, glbBytes, data)
	assert.FileExists(t, f.localPath(t, m.PreviewImagePath))

	recorded := f.recorder.Events()
	require.Len(t, recorded, 1)
	assert.Equal(t, events.MineralCreated, recorded[0].Type)
	assert.Equal(t, m.ID, recorded[0].MineralID)
}

func TestCreateMineralRejectsInvalidInput(t *testing.T) {
	f := newCatalogFixture(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		input MineralInput
		want  error
	}{
		{
			name:  "missing model",
			input: MineralInput{Title: "Opal", Preview: fileHeader(t, "preview", "p.png", pngBytes)},
			want:  ErrFileMissing,
		},
		{
			name: "wrong model type",
			input: MineralInput{
				Title:   "Opal",
				Model:   fileHeader(t, "model", "m.obj", glbBytes),
				Preview: fileHeader(t, "preview", "p.png", pngBytes),
			},
			want: ErrUnsupportedFileType,
		},
		{
			name: "wrong preview type",
			input: MineralInput{
				Title:   "Opal",
				Model:   fileHeader(t, "model", "m.glb", glbBytes),
				Preview: fileHeader(t, "preview", "p.gif", pngBytes),
			},
			want: ErrUnsupportedFileType,
		},
		{
			name: "too large",
			input: MineralInput{
				Title:   "Opal",
				Model:   fileHeader(t, "model", "m.glb", make([]byte, 2<<20)),
				Preview: fileHeader(t, "preview", "p.png", pngBytes),
			},
			want: ErrFileTooLarge,
		},
		{
			name: "blank title",
			input: MineralInput{
				Title:   "   ",
				Model:   fileHeader(t, "model", "m.glb", glbBytes),
				Preview: fileHeader(t, "preview", "p.png", pngBytes),
			},
			want: models.ErrEmptyTitle,
		},
		{
			name: "long description",
			input: MineralInput{
				Title:       "Opal",
				Description: strings.Repeat("word ", models.MaxDescriptionWords+1),
				Model:       fileHeader(t, "model", "m.glb", glbBytes),
				Preview:     fileHeader(t, "preview", "p.png", pngBytes),
			},
			want: models.ErrDescriptionTooLong,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.minerals.Create(ctx, tt.input)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	all, err := f.minerals.All()
	require.NoError(t, err)
	assert.Empty(t, all)
	assert.Empty(t, f.recorder.Events())

	entries, err := os.ReadDir(f.cfg.StoragePath + "/models")
	require.NoError(t, err)
	assert.Empty(t, entries, "rejected uploads must not leave files behind")
}

func TestListMinerals(t *testing.T) {
	f := newCatalogFixture(t)
	quartz := f.create(t, "Quartz", "")
	f.create(t, "agate", "")
	f.create(t, "Pyrite", "")
	f.create(t, "Кальцит", "")
	f.create(t, "100%_pure", "")

	t.Run("default order is by id", func(t *testing.T) {
		views, total, err := f.minerals.List(ListQuery{}, nil)
		require.NoError(t, err)
		assert.EqualValues(t, 5, total)
		assert.Equal(t, quartz.ID, views[0].ID)
	})

	t.Run("sort by title ignores case", func(t *testing.T) {
		views, _, err := f.minerals.List(ListQuery{Sort: "title"}, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"100%_pure", "agate", "Pyrite", "Quartz", "Кальцит"}, titles(views))

		views, _, err = f.minerals.List(ListQuery{Sort: "title", Order: "desc"}, nil)
		require.NoError(t, err)
		assert.Equal(t, "Кальцит", views[0].Title)
	})

	t.Run("prefix search", func(t *testing.T) {
		views, total, err := f.minerals.List(ListQuery{Search: "py"}, nil)
		require.NoError(t, err)
		assert.EqualValues(t, 1, total)
		assert.Equal(t, []string{"Pyrite"}, titles(views))

		views, _, err = f.minerals.List(ListQuery{Search: "КАЛ"}, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"Кальцит"}, titles(views))

		views, _, err = f.minerals.List(ListQuery{Search: "uartz"}, nil)
		require.NoError(t, err)
		assert.Empty(t, views)
	})

	t.Run("wildcards match literally", func(t *testing.T) {
		views, _, err := f.minerals.List(ListQuery{Search: "%"}, nil)
		require.NoError(t, err)
		assert.Empty(t, views)

		views, _, err = f.minerals.List(ListQuery{Search: "100%_"}, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"100%_pure"}, titles(views))
	})

	t.Run("pagination", func(t *testing.T) {
		q := ListQuery{Sort: "title", PaginationQuery: models.PaginationQuery{Page: 2, PageSize: 2}}
		views, total, err := f.minerals.List(q, nil)
		require.NoError(t, err)
		assert.EqualValues(t, 5, total)
		assert.Equal(t, []string{"Pyrite", "Quartz"}, titles(views))

		q.Page = 4
		views, _, err = f.minerals.List(q, nil)
		require.NoError(t, err)
		assert.Empty(t, views)
	})

	t.Run("invalid sort", func(t *testing.T) {
		_, _, err := f.minerals.List(ListQuery{Sort: "password"}, nil)
		assert.ErrorIs(t, err, ErrInvalidQuery)
		_, _, err = f.minerals.List(ListQuery{Order: "sideways"}, nil)
		assert.ErrorIs(t, err, ErrInvalidQuery)
	})
}

func TestListFavoritesOnly(t *testing.T) {
	f := newCatalogFixture(t)
	a := f.create(t, "Amber", "")
	b := f.create(t, "Beryl", "")
	f.create(t, "Cinnabar", "")

	userID := uint(7)
	require.NoError(t, f.favorites.Add(userID, b.ID))
	require.NoError(t, f.favorites.Add(userID, a.ID))

	_, _, err := f.minerals.List(ListQuery{FavoritesOnly: true}, nil)
	assert.ErrorIs(t, err, ErrAuthRequired)

	views, total, err := f.minerals.List(ListQuery{FavoritesOnly: true}, &userID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Equal(t, []string{"Amber", "Beryl"}, titles(views))
	for _, v := range views {
		assert.True(t, v.IsFavorite)
	}

	views, _, err = f.minerals.List(ListQuery{}, &userID)
	require.NoError(t, err)
	require.Len(t, views, 3)
	assert.False(t, views[2].IsFavorite)

	views, _, err = f.minerals.List(ListQuery{}, nil)
	require.NoError(t, err)
	for _, v := range views {
		assert.False(t, v.IsFavorite)
	}
}

func TestGetMineralRendersDescription(t *testing.T) {
	f := newCatalogFixture(t)
	m := f.create(t, "Malachite", "Green *banded* stone<script>alert(1)</script>")

	view, err := f.minerals.Get(m.ID, nil)
	require.NoError(t, err)
	assert.Contains(t, view.DescriptionHTML, "<em>banded</em>")
	assert.NotContains(t, view.DescriptionHTML, "<script>")
	assert.False(t, view.IsFavorite)

	userID := uint(4)
	require.NoError(t, f.favorites.Add(userID, m.ID))
	view, err = f.minerals.Get(m.ID, &userID)
	require.NoError(t, err)
	assert.True(t, view.IsFavorite)

	_, err = f.minerals.Get(m.ID+100, nil)
	assert.ErrorIs(t, err, ErrMineralNotFound)
}

func TestSearchByTitlePrefix(t *testing.T) {
	f := newCatalogFixture(t)
	f.create(t, "Гранат", "")
	f.create(t, "Графит", "")
	f.create(t, "Алмаз", "")

	found, err := f.minerals.SearchByTitlePrefix("гра")
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, "Гранат", found[0].Title)
	assert.Equal(t, "Графит", found[1].Title)

	found, err = f.minerals.SearchByTitlePrefix("  ")
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestUpdateMineral(t *testing.T) {
	f := newCatalogFixture(t)
	ctx := context.Background()
	m := f.create(t, "Topaz", "old text")
	oldModel := f.localPath(t, m.ModelPath)
	oldPreview := m.PreviewImagePath

	updated, err := f.minerals.Update(ctx, m.ID, MineralInput{
		Title: "Blue Topaz",
		Model: fileHeader(t, "model", "new.GLB", glbBytes),
	})
	require.NoError(t, err)
	assert.Equal(t, "Blue Topaz", updated.Title)
	assert.Equal(t, "old text", updated.Description, "blank fields keep stored values")
	assert.Equal(t, oldPreview, updated.PreviewImagePath)
	assert.NotEqual(t, m.ModelPath, updated.ModelPath)
	assert.NoFileExists(t, oldModel)
	assert.FileExists(t, f.localPath(t, updated.ModelPath))

	found, err := f.minerals.SearchByTitlePrefix("blue")
	require.NoError(t, err)
	assert.Len(t, found, 1)

	_, err = f.minerals.Update(ctx, m.ID, MineralInput{Preview: fileHeader(t, "preview", "p.bmp", pngBytes)})
	assert.ErrorIs(t, err, ErrUnsupportedFileType)

	_, err = f.minerals.Update(ctx, m.ID+100, MineralInput{Title: "x"})
	assert.ErrorIs(t, err, ErrMineralNotFound)

	recorded := f.recorder.Events()
	require.Len(t, recorded, 2)
	assert.Equal(t, events.MineralUpdated, recorded[1].Type)
}

func TestDeleteMineral(t *testing.T) {
	f := newCatalogFixture(t)
	ctx := context.Background()
	m := f.create(t, "Jade", "")
	keep := f.create(t, "Jasper", "")
	require.NoError(t, f.favorites.Add(1, m.ID))
	require.NoError(t, f.favorites.Add(1, keep.ID))

	modelFile := f.localPath(t, m.ModelPath)
	previewFile := f.localPath(t, m.PreviewImagePath)

	require.NoError(t, f.minerals.Delete(ctx, m.ID))
	assert.NoFileExists(t, modelFile)
	assert.NoFileExists(t, previewFile)

	_, err := f.minerals.GetMineral(m.ID)
	assert.ErrorIs(t, err, ErrMineralNotFound)

	ids, err := f.favorites.ListIDs(1)
	require.NoError(t, err)
	assert.Equal(t, []uint{keep.ID}, ids)

	assert.ErrorIs(t, f.minerals.Delete(ctx, m.ID), ErrMineralNotFound)

	recorded := f.recorder.Events()
	assert.Equal(t, events.MineralDeleted, recorded[len(recorded)-1].Type)
}
