package menu

import (
	"context"
	"errors"
	"fmt"

	"github.com/dapurlink/backoffice/internal/api"
	"github.com/dapurlink/backoffice/internal/category"
	"github.com/dapurlink/backoffice/internal/form"
)

// FormMode is the draft lifecycle: closed until opened for a new or
// existing product, back to closed on cancel or after a successful save.
type FormMode int

const (
	ModeClosed FormMode = iota
	ModeCreate
	ModeEdit
)

// ProductForm owns one editable product draft. The draft is never shared
// with the product store; only a normalized SaveParams crosses over at save
// time.
type ProductForm struct {
	mode      FormMode
	productID int64

	Name        string
	Description string
	Price       *int64
	Stock       *int64
	CategoryID  int64
	Active      bool

	image *form.Image

	errs       form.Errors
	dirty      bool
	submitting bool
}

// NewProductForm creates a closed form. previewDir overrides where image
// previews are staged; empty means the user cache dir.
func NewProductForm(previewDir string) *ProductForm {
	return &ProductForm{
		image: form.NewImage(previewDir),
		errs:  form.Errors{},
	}
}

// OpenNew seeds a fresh draft. The category defaults to the first active
// one, or the first at all when none is active.
func (f *ProductForm) OpenNew(categories []category.Category) {
	f.reset()
	f.mode = ModeCreate
	f.Active = true
	f.CategoryID = defaultCategory(categories)
}

// OpenEdit seeds the draft from a persisted product. The image preview
// points at the stored path until a new file is staged.
func (f *ProductForm) OpenEdit(p Product) {
	f.reset()
	f.mode = ModeEdit
	f.productID = p.ID
	f.Name = p.Name
	f.Description = p.Description

	price := p.Price
	f.Price = &price

	stock := p.Stock
	f.Stock = &stock

	f.CategoryID = p.CategoryID
	f.Active = p.Active
	f.image.SetExisting(p.ImagePath)
}

func defaultCategory(categories []category.Category) int64 {
	for _, c := range categories {
		if c.Active {
			return c.ID
		}
	}

	if len(categories) > 0 {
		return categories[0].ID
	}

	return 0
}

// Set updates one field from raw text input. Numeric fields coerce empty
// input to nil and junk to nil; nothing here ever panics mid-keystroke.
func (f *ProductForm) Set(field, raw string) {
	switch field {
	case "name":
		f.Name = raw
	case "description":
		f.Description = raw
	case "price":
		f.Price = form.ParseNumber(raw)
	case "stock":
		f.Stock = form.ParseNumber(raw)
	default:
		return
	}

	f.dirty = true
	delete(f.errs, field)
}

func (f *ProductForm) SetCategory(id int64) {
	f.CategoryID = id
	f.dirty = true
	delete(f.errs, "category")
}

func (f *ProductForm) SetActive(active bool) {
	f.Active = active
	f.dirty = true
}

func (f *ProductForm) StageImage(path string) error {
	if err := f.image.Stage(path); err != nil {
		return err
	}

	f.dirty = true

	return nil
}

func (f *ProductForm) ClearImage() {
	f.image.Clear()
	f.dirty = true
}

func (f *ProductForm) ImagePreview() string {
	return f.image.Preview()
}

// Validate checks the draft and records per-field errors. A non-empty
// result blocks the save entirely.
func (f *ProductForm) Validate() form.Errors {
	errs := form.Errors{}

	if f.Name == "" {
		errs.Add("name", "name is required")
	}

	if f.Description == "" {
		errs.Add("description", "description is required")
	}

	switch {
	case f.Price == nil:
		errs.Add("price", "price is required")
	case *f.Price <= 0:
		errs.Add("price", "price must be greater than zero")
	}

	if f.CategoryID <= 0 {
		errs.Add("category", "category is required")
	}

	if f.Stock != nil && *f.Stock < 0 {
		errs.Add("stock", "stock cannot be negative")
	}

	f.errs = errs

	return errs
}

func (f *ProductForm) Err(field string) string {
	return f.errs[field]
}

func (f *ProductForm) Mode() FormMode { return f.mode }

func (f *ProductForm) Submitting() bool { return f.submitting }

func (f *ProductForm) Dirty() bool { return f.dirty }

// ProductID is zero until the draft is persisted. Variant management stays
// locked while it is zero.
func (f *ProductForm) ProductID() int64 { return f.productID }

func (f *ProductForm) CanManageVariants() bool { return f.productID != 0 }

func (f *ProductForm) params() SaveParams {
	p := SaveParams{
		Name:        f.Name,
		Description: f.Description,
		CategoryID:  f.CategoryID,
		Active:      f.Active,
		ImageFile:   f.image.StagedPath(),
	}

	if f.Price != nil {
		p.Price = *f.Price
	}

	if f.Stock != nil {
		p.Stock = *f.Stock
	}

	return p
}

// Save validates and persists the draft. With a staged image the request
// goes multipart; if that fails for a transport or server reason, the save
// is retried once as JSON without the image. The record still lands, only
// the picture is left as it was. On create, the server-assigned id is
// captured so variants become manageable without reopening the form.
func (f *ProductForm) Save(ctx context.Context, svc *Service) (*Product, error) {
	if f.mode == ModeClosed {
		return nil, errors.New("form is not open")
	}

	if errs := f.Validate(); len(errs) > 0 {
		return nil, fmt.Errorf("draft has %d invalid fields", len(errs))
	}

	f.submitting = true
	defer func() { f.submitting = false }()

	params := f.params()

	saved, err := f.persist(ctx, svc, params)
	if err != nil && params.ImageFile != "" && retriableWithoutImage(err) {
		params.ImageFile = ""
		saved, err = f.persist(ctx, svc, params)
	}

	if err != nil {
		return nil, err
	}

	if f.mode == ModeCreate {
		f.productID = saved.ID
		f.mode = ModeEdit
	}

	f.image.Release()
	f.image.SetExisting(saved.ImagePath)
	f.dirty = false

	return saved, nil
}

// retriableWithoutImage reports whether dropping the image and resending as
// JSON could plausibly succeed. An expired session or a 4xx rejection would
// fail the same way again, so neither is retried.
func retriableWithoutImage(err error) bool {
	if errors.Is(err, api.ErrUnauthorized) {
		return false
	}

	var statusErr *api.StatusError
	if errors.As(err, &statusErr) && statusErr.Code >= 400 && statusErr.Code < 500 {
		return false
	}

	return true
}

func (f *ProductForm) persist(ctx context.Context, svc *Service, params SaveParams) (*Product, error) {
	if f.mode == ModeEdit {
		return svc.Update(ctx, f.productID, params)
	}

	return svc.Create(ctx, params)
}

// Close discards the draft and releases any staged preview.
func (f *ProductForm) Close() {
	f.reset()
}

func (f *ProductForm) reset() {
	f.image.Release()
	f.image.SetExisting("")

	f.mode = ModeClosed
	f.productID = 0
	f.Name = ""
	f.Description = ""
	f.Price = nil
	f.Stock = nil
	f.CategoryID = 0
	f.Active = false
	f.errs = form.Errors{}
	f.dirty = false
	f.submitting = false
}
