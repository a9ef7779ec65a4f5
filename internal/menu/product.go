// Package menu holds the product and variant side of the back office:
// domain shapes, the CRUD services over the POS API, the collection stores
// and the editable product draft.
package menu

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Product is a menu item. Price is authoritative when the product has no
// active variants; otherwise the displayed price is a range derived from
// them. Prices are whole rupiah.
type Product struct {
	ID          int64
	Name        string
	Description string
	Price       int64
	Stock       int64
	CategoryID  int64
	Active      bool
	ImagePath   string
	Variants    []Variant
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Variant is a sellable variation of a product. It cannot exist without a
// persisted parent product id.
type Variant struct {
	ID        int64
	ProductID int64
	Name      string
	Price     int64
	Active    bool
}

func (p Product) HasVariants() bool {
	return len(p.Variants) > 0
}

func (p Product) ActiveVariants() []Variant {
	var out []Variant

	for _, v := range p.Variants {
		if v.Active {
			out = append(out, v)
		}
	}

	return out
}

// PriceBounds returns the min and max price across active variants, or the
// product's own price twice when no variant is active.
func (p Product) PriceBounds() (int64, int64) {
	active := p.ActiveVariants()
	if len(active) == 0 {
		return p.Price, p.Price
	}

	lo, hi := active[0].Price, active[0].Price
	for _, v := range active[1:] {
		if v.Price < lo {
			lo = v.Price
		}

		if v.Price > hi {
			hi = v.Price
		}
	}

	return lo, hi
}

// PriceRange renders the display price: a single amount, or "lo - hi" when
// active variants span a range.
func (p Product) PriceRange() string {
	lo, hi := p.PriceBounds()
	if lo == hi {
		return FormatRupiah(lo)
	}

	return FormatRupiah(lo) + " - " + FormatRupiah(hi)
}

// FormatRupiah renders an amount with dot thousand separators, e.g.
// "Rp 25.000".
func FormatRupiah(amount int64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}

	digits := strconv.FormatInt(amount, 10)

	var groups []string
	for len(digits) > 3 {
		groups = append([]string{digits[len(digits)-3:]}, groups...)
		digits = digits[:len(digits)-3]
	}

	groups = append([]string{digits}, groups...)

	out := "Rp " + strings.Join(groups, ".")
	if neg {
		out = "-" + out
	}

	return out
}

// Stats are the derived collection statistics shown on the products page.
type Stats struct {
	Total        int
	Active       int
	WithVariants int
}

func ComputeStats(products []Product) Stats {
	s := Stats{Total: len(products)}

	for _, p := range products {
		if p.Active {
			s.Active++
		}

		if p.HasVariants() {
			s.WithVariants++
		}
	}

	return s
}

// flexInt decodes a numeric field the API sends either as a number or as a
// quoted string.
type flexInt int64

func (f *flexInt) UnmarshalJSON(raw []byte) error {
	s := strings.Trim(string(raw), `"`)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}

	// Some endpoints send prices as decimals; keep the integer part.
	if i := strings.IndexByte(s, '.'); i >= 0 {
		s = s[:i]
	}

	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("numeric field %s: %w", string(raw), err)
	}

	*f = flexInt(n)

	return nil
}

var _ json.Unmarshaler = (*flexInt)(nil)
