package filter

import (
	"sort"

	"github.com/dapurlink/backoffice/internal/menu"
)

// ProductSort selects the field products are ordered by.
type ProductSort string

const (
	ProductsByName    ProductSort = "name"
	ProductsByPrice   ProductSort = "price"
	ProductsByStock   ProductSort = "stock"
	ProductsByUpdated ProductSort = "updated"
)

// ProductCriteria is the full filter state of the products page. The zero
// value is not useful; start from NewProductCriteria.
type ProductCriteria struct {
	Search     string
	CategoryID int64
	Status     Status
	Price      PriceBucket
	SortBy     ProductSort
	Desc       bool
}

func NewProductCriteria() ProductCriteria {
	return ProductCriteria{
		Status: StatusAll,
		Price:  PriceAny,
		SortBy: ProductsByName,
	}
}

// Active reports whether any filter differs from its default. Sort order
// alone does not count; it narrows nothing.
func (c ProductCriteria) Active() bool {
	return c.Search != "" ||
		c.CategoryID != 0 ||
		c.Status != StatusAll ||
		c.Price != PriceAny
}

// Reset returns every filter to its default at once.
func (c *ProductCriteria) Reset() {
	*c = NewProductCriteria()
}

// Apply derives the filtered, sorted view. categoryName resolves a category
// id for search matching; nil disables category-name search. The input
// slice is never touched.
func (c ProductCriteria) Apply(products []menu.Product, categoryName func(int64) string) []menu.Product {
	out := make([]menu.Product, 0, len(products))

	for _, p := range products {
		if c.CategoryID != 0 && p.CategoryID != c.CategoryID {
			continue
		}

		if !c.Status.matches(p.Active) {
			continue
		}

		if !c.Price.contains(p.Price) {
			continue
		}

		catName := ""
		if categoryName != nil {
			catName = categoryName(p.CategoryID)
		}

		if !matchText(c.Search, p.Name, p.Description, catName) {
			continue
		}

		out = append(out, p)
	}

	c.sortProducts(out)

	return out
}

func (c ProductCriteria) sortProducts(products []menu.Product) {
	coll := newCollator()

	less := func(a, b menu.Product) bool {
		switch c.SortBy {
		case ProductsByPrice:
			return a.Price < b.Price
		case ProductsByStock:
			return a.Stock < b.Stock
		case ProductsByUpdated:
			// Explicit numeric coercion; comparing time strings sorts
			// mixed formats wrongly.
			return a.UpdatedAt.Unix() < b.UpdatedAt.Unix()
		default:
			return coll.CompareString(a.Name, b.Name) < 0
		}
	}

	sort.SliceStable(products, func(i, j int) bool {
		if c.Desc {
			return less(products[j], products[i])
		}

		return less(products[i], products[j])
	})
}
