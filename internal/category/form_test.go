package category_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dapurlink/backoffice/internal/category"
)

var pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func writeFile(t *testing.T, name string, content []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, content, 0o644))

	return path
}

func TestForm_OpenNewStartsVisible(t *testing.T) {
	f := category.NewForm(t.TempDir())

	f.OpenNew()
	assert.Equal(t, category.ModeCreate, f.Mode())
	assert.True(t, f.Active)
	assert.False(t, f.Dirty())
	assert.Zero(t, f.CategoryID())
}

func TestForm_OpenEditSeedsDraft(t *testing.T) {
	f := category.NewForm(t.TempDir())

	f.OpenEdit(category.Category{
		ID: 3, Name: "Minuman", Description: "Iced tea and coffee",
		Active: true, SelfOrderVisible: true,
		ImageURL: "/uploads/minuman.png",
	})

	assert.Equal(t, category.ModeEdit, f.Mode())
	assert.Equal(t, int64(3), f.CategoryID())
	assert.Equal(t, "Minuman", f.Name)
	assert.Equal(t, "/uploads/minuman.png", f.ImagePreview(), "preview shows the persisted image, not a staged copy")

	p := f.Params()
	assert.Empty(t, p.ImageFile, "no file staged means no multipart upload")
	assert.True(t, p.SelfOrderVisible)
}

func TestForm_ValidateRequiresName(t *testing.T) {
	f := category.NewForm(t.TempDir())
	f.OpenNew()

	errs := f.Validate()
	require.True(t, errs.Has("name"))

	f.Set("name", "Paket Hemat")
	assert.Empty(t, f.Validate())
}

func TestForm_StagedImageReachesParams(t *testing.T) {
	f := category.NewForm(t.TempDir())
	f.OpenNew()

	pic := writeFile(t, "pic.png", pngBytes)
	require.NoError(t, f.StageImage(pic))

	assert.Equal(t, pic, f.Params().ImageFile)
	require.FileExists(t, f.ImagePreview())
}

func TestForm_RejectedFileLeavesDraftUntouched(t *testing.T) {
	f := category.NewForm(t.TempDir())
	f.OpenNew()

	good := writeFile(t, "good.png", pngBytes)
	require.NoError(t, f.StageImage(good))
	preview := f.ImagePreview()

	bad := writeFile(t, "notes.txt", []byte("not an image at all"))
	err := f.StageImage(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported image type")

	assert.Equal(t, good, f.Params().ImageFile)
	assert.Equal(t, preview, f.ImagePreview())
	assert.FileExists(t, preview)
}

func TestForm_CloseReleasesPreview(t *testing.T) {
	f := category.NewForm(t.TempDir())
	f.OpenNew()

	pic := writeFile(t, "pic.png", pngBytes)
	require.NoError(t, f.StageImage(pic))
	preview := f.ImagePreview()

	f.Close()
	assert.NoFileExists(t, preview)
	assert.Equal(t, category.ModeClosed, f.Mode())
	assert.Empty(t, f.Params().ImageFile)
}
