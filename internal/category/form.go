package category

import (
	"github.com/dapurlink/backoffice/internal/form"
)

// FormMode is the draft lifecycle of the category form.
type FormMode int

const (
	ModeClosed FormMode = iota
	ModeCreate
	ModeEdit
)

// Form owns one editable category draft, image staging included. The
// draft never reaches the store directly; only the normalized SaveParams
// cross over at save time.
type Form struct {
	mode       FormMode
	categoryID int64

	Name             string
	Description      string
	Active           bool
	SelfOrderVisible bool

	image *form.Image
	errs  form.Errors
	dirty bool
}

// NewForm creates a closed form. previewDir overrides where image previews
// are staged; empty means the user cache dir.
func NewForm(previewDir string) *Form {
	return &Form{
		image: form.NewImage(previewDir),
		errs:  form.Errors{},
	}
}

// OpenNew seeds a fresh draft. New categories start visible.
func (f *Form) OpenNew() {
	f.reset()
	f.mode = ModeCreate
	f.Active = true
}

// OpenEdit seeds the draft from a persisted category. The image preview
// points at the stored URL until a new file is staged.
func (f *Form) OpenEdit(c Category) {
	f.reset()
	f.mode = ModeEdit
	f.categoryID = c.ID
	f.Name = c.Name
	f.Description = c.Description
	f.Active = c.Active
	f.SelfOrderVisible = c.SelfOrderVisible
	f.image.SetExisting(c.ImageURL)
}

func (f *Form) Set(field, raw string) {
	switch field {
	case "name":
		f.Name = raw
	case "description":
		f.Description = raw
	default:
		return
	}

	f.dirty = true
	delete(f.errs, field)
}

func (f *Form) SetActive(active bool) {
	f.Active = active
	f.dirty = true
}

func (f *Form) SetSelfOrderVisible(visible bool) {
	f.SelfOrderVisible = visible
	f.dirty = true
}

// StageImage validates and stages a local file for upload. A rejected
// file leaves the draft untouched.
func (f *Form) StageImage(path string) error {
	if err := f.image.Stage(path); err != nil {
		return err
	}

	f.dirty = true

	return nil
}

func (f *Form) ClearImage() {
	f.image.Clear()
	f.dirty = true
}

func (f *Form) ImagePreview() string {
	return f.image.Preview()
}

func (f *Form) Validate() form.Errors {
	errs := form.Errors{}

	if f.Name == "" {
		errs.Add("name", "name is required")
	}

	f.errs = errs

	return errs
}

func (f *Form) Err(field string) string { return f.errs[field] }

func (f *Form) Mode() FormMode { return f.mode }

func (f *Form) Dirty() bool { return f.dirty }

// CategoryID is zero for a draft that has never been persisted.
func (f *Form) CategoryID() int64 { return f.categoryID }

// Params hands the draft off as a save payload. Only a staged, validated
// file ever reaches ImageFile; raw user input never does.
func (f *Form) Params() SaveParams {
	return SaveParams{
		Name:             f.Name,
		Description:      f.Description,
		Active:           f.Active,
		SelfOrderVisible: f.SelfOrderVisible,
		ImageFile:        f.image.StagedPath(),
	}
}

// Close discards the draft and releases any staged preview.
func (f *Form) Close() {
	f.reset()
}

func (f *Form) reset() {
	f.image.Release()
	f.image.SetExisting("")

	f.mode = ModeClosed
	f.categoryID = 0
	f.Name = ""
	f.Description = ""
	f.Active = false
	f.SelfOrderVisible = false
	f.errs = form.Errors{}
	f.dirty = false
}
