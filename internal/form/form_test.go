package form

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNumber(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want *int64
	}{
		{name: "Empty", raw: "", want: nil},
		{name: "Whitespace", raw: "   ", want: nil},
		{name: "Valid", raw: "1500", want: ptr(int64(1500))},
		{name: "Junk", raw: "abc", want: nil},
		{name: "Mixed", raw: "15rb", want: nil},
		{name: "Negative", raw: "-5", want: ptr(int64(-5))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseNumber(tt.raw)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}

			require.NotNil(t, got)
			assert.Equal(t, *tt.want, *got)
		})
	}
}

func ptr[T any](v T) *T { return &v }

var pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func writeTempImage(t *testing.T, name string, content []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, content, 0o644))

	return path
}

func TestImage_StageAndReplace(t *testing.T) {
	dir := t.TempDir()
	im := NewImage(dir)

	fileA := writeTempImage(t, "a.png", pngBytes)
	fileB := writeTempImage(t, "b.jpg", []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F'})

	require.NoError(t, im.Stage(fileA))
	previewA := im.Preview()
	require.FileExists(t, previewA)
	assert.Equal(t, fileA, im.StagedPath())

	require.NoError(t, im.Stage(fileB))
	previewB := im.Preview()
	assert.NoFileExists(t, previewA, "replacing must release the previous preview")
	require.FileExists(t, previewB)
	assert.NotEqual(t, previewA, previewB)
}

func TestImage_RejectedFileLeavesDraftUntouched(t *testing.T) {
	dir := t.TempDir()
	im := NewImage(dir)

	good := writeTempImage(t, "good.png", pngBytes)
	require.NoError(t, im.Stage(good))
	preview := im.Preview()

	bad := writeTempImage(t, "notes.txt", []byte("not an image at all"))
	err := im.Stage(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported image type")

	assert.Equal(t, preview, im.Preview())
	assert.Equal(t, good, im.StagedPath())
	assert.FileExists(t, preview)
}

func TestImage_FailedCopyKeepsCurrentDraft(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("write protection does not apply to root")
	}

	dir := t.TempDir()
	im := NewImage(dir)

	good := writeTempImage(t, "good.png", pngBytes)
	require.NoError(t, im.Stage(good))
	preview := im.Preview()

	// Write-protect the preview dir so the replacement copy cannot land.
	require.NoError(t, os.Chmod(dir, 0o555))
	t.Cleanup(func() { os.Chmod(dir, 0o755) })

	next := writeTempImage(t, "next.png", pngBytes)
	require.Error(t, im.Stage(next))

	assert.Equal(t, preview, im.Preview(), "a failed copy must not drop the current preview")
	assert.Equal(t, good, im.StagedPath())
	assert.FileExists(t, preview)
}

func TestImage_RejectsOversized(t *testing.T) {
	im := NewImage(t.TempDir())

	big := make([]byte, maxImageSize+1)
	copy(big, pngBytes)
	path := writeTempImage(t, "big.png", big)

	err := im.Stage(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "5MB")
	assert.Empty(t, im.StagedPath())
}

func TestImage_ClearReleasesPreview(t *testing.T) {
	im := NewImage(t.TempDir())
	im.SetExisting("/uploads/old.png")

	path := writeTempImage(t, "a.png", pngBytes)
	require.NoError(t, im.Stage(path))
	preview := im.Preview()

	im.Clear()
	assert.NoFileExists(t, preview)
	assert.Empty(t, im.Preview())
	assert.Empty(t, im.StagedPath())
}

func TestImage_ReleaseKeepsExisting(t *testing.T) {
	im := NewImage(t.TempDir())
	im.SetExisting("/uploads/persisted.png")

	path := writeTempImage(t, "a.png", pngBytes)
	require.NoError(t, im.Stage(path))
	preview := im.Preview()

	im.Release()
	assert.NoFileExists(t, preview)
	assert.Equal(t, "/uploads/persisted.png", im.Preview())
	assert.False(t, im.HasStaged())
}
