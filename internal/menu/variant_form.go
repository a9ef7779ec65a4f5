package menu

import (
	"github.com/dapurlink/backoffice/internal/form"
)

// VariantForm is the small draft for one variant. It refuses to open for
// creation until the parent product has a persisted id.
type VariantForm struct {
	mode      FormMode
	variantID int64
	productID int64

	Name   string
	Price  *int64
	Active bool

	errs form.Errors
}

func NewVariantForm() *VariantForm {
	return &VariantForm{errs: form.Errors{}}
}

func (f *VariantForm) OpenNew(productID int64) bool {
	if productID == 0 {
		return false
	}

	f.reset()
	f.mode = ModeCreate
	f.productID = productID
	f.Active = true

	return true
}

func (f *VariantForm) OpenEdit(v Variant) {
	f.reset()
	f.mode = ModeEdit
	f.variantID = v.ID
	f.productID = v.ProductID
	f.Name = v.Name

	price := v.Price
	f.Price = &price

	f.Active = v.Active
}

func (f *VariantForm) Set(field, raw string) {
	switch field {
	case "name":
		f.Name = raw
	case "price":
		f.Price = form.ParseNumber(raw)
	default:
		return
	}

	delete(f.errs, field)
}

func (f *VariantForm) Validate() form.Errors {
	errs := form.Errors{}

	if f.Name == "" {
		errs.Add("name", "name is required")
	}

	switch {
	case f.Price == nil:
		errs.Add("price", "price is required")
	case *f.Price <= 0:
		errs.Add("price", "price must be greater than zero")
	}

	f.errs = errs

	return errs
}

func (f *VariantForm) Err(field string) string { return f.errs[field] }

func (f *VariantForm) Mode() FormMode { return f.mode }

func (f *VariantForm) VariantID() int64 { return f.variantID }

func (f *VariantForm) Params() VariantParams {
	p := VariantParams{
		ProductID: f.productID,
		Name:      f.Name,
		Active:    f.Active,
	}

	if f.Price != nil {
		p.Price = *f.Price
	}

	return p
}

func (f *VariantForm) Close() {
	f.reset()
}

func (f *VariantForm) reset() {
	f.mode = ModeClosed
	f.variantID = 0
	f.productID = 0
	f.Name = ""
	f.Price = nil
	f.Active = false
	f.errs = form.Errors{}
}
