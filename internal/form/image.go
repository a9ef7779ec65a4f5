package form

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

const maxImageSize = 5 << 20 // 5MB

var imageExts = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// Image stages a picture for upload. Staging copies the selected file into
// a preview location so the draft never depends on the original staying
// put; the preview copy must be released when replaced, cleared or when the
// draft closes, or it leaks into the cache dir.
type Image struct {
	previewDir string

	staged   string // path of the file the user picked
	preview  string // preview copy, removed on release
	existing string // persisted image path when editing
}

// NewImage creates staging rooted at previewDir. An empty dir defers to the
// user cache directory.
func NewImage(previewDir string) *Image {
	return &Image{previewDir: previewDir}
}

// SetExisting points the preview at an already-persisted image.
func (im *Image) SetExisting(path string) {
	im.existing = path
}

// Stage validates and stages a new image file. A rejected file leaves the
// current staging untouched.
func (im *Image) Stage(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening image: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("inspecting image: %w", err)
	}

	if info.Size() > maxImageSize {
		return fmt.Errorf("image exceeds 5MB limit (%d bytes)", info.Size())
	}

	head := make([]byte, 512)
	n, err := f.Read(head)
	if err != nil && err != io.EOF {
		return fmt.Errorf("reading image: %w", err)
	}

	mimeType := http.DetectContentType(head[:n])

	ext, ok := imageExts[mimeType]
	if !ok {
		return fmt.Errorf("unsupported image type %s (want jpeg, png or webp)", mimeType)
	}

	dir, err := im.ensurePreviewDir()
	if err != nil {
		return err
	}

	// The copy lands in a scratch file first so a failed write leaves the
	// current staging untouched. Only once the copy is durable does the old
	// preview get released, before the replacement takes its preview path.
	tmp, err := os.CreateTemp(dir, "staging-*")
	if err != nil {
		return fmt.Errorf("creating preview: %w", err)
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())

		return fmt.Errorf("rewinding image: %w", err)
	}

	if _, err := io.Copy(tmp, f); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())

		return fmt.Errorf("copying preview: %w", err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())

		return fmt.Errorf("writing preview: %w", err)
	}

	im.removePreview()

	previewPath := filepath.Join(dir, uuid.NewString()+ext)

	if err := os.Rename(tmp.Name(), previewPath); err != nil {
		os.Remove(tmp.Name())

		return fmt.Errorf("staging preview: %w", err)
	}

	im.staged = path
	im.preview = previewPath

	return nil
}

// Preview returns what should be shown for the draft: the staged preview if
// one exists, otherwise the persisted image.
func (im *Image) Preview() string {
	if im.preview != "" {
		return im.preview
	}

	return im.existing
}

// StagedPath returns the user-selected file pending upload, empty when the
// draft has no new image.
func (im *Image) StagedPath() string {
	return im.staged
}

func (im *Image) HasStaged() bool {
	return im.staged != ""
}

// Clear drops the staged file, its preview and the existing reference.
func (im *Image) Clear() {
	im.removePreview()
	im.staged = ""
	im.existing = ""
}

// Release frees the preview copy. Call on cancel and after save.
func (im *Image) Release() {
	im.removePreview()
	im.staged = ""
}

func (im *Image) removePreview() {
	if im.preview == "" {
		return
	}

	os.Remove(im.preview)
	im.preview = ""
}

func (im *Image) ensurePreviewDir() (string, error) {
	dir := im.previewDir

	if dir == "" {
		cache, err := os.UserCacheDir()
		if err != nil {
			return "", fmt.Errorf("resolving cache dir: %w", err)
		}

		dir = filepath.Join(cache, "backoffice", "previews")
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating preview dir: %w", err)
	}

	return dir, nil
}
