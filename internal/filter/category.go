package filter

import (
	"sort"

	"github.com/dapurlink/backoffice/internal/category"
)

// CategorySort selects the field categories are ordered by.
type CategorySort string

const (
	CategoriesByName    CategorySort = "name"
	CategoriesByType    CategorySort = "type"
	CategoriesByCreated CategorySort = "created"
)

// CategoryCriteria is the filter state of the categories page.
type CategoryCriteria struct {
	Search string
	Status Status
	SortBy CategorySort
	Desc   bool
}

func NewCategoryCriteria() CategoryCriteria {
	return CategoryCriteria{
		Status: StatusAll,
		SortBy: CategoriesByName,
	}
}

func (c CategoryCriteria) Active() bool {
	return c.Search != "" || c.Status != StatusAll
}

func (c *CategoryCriteria) Reset() {
	*c = NewCategoryCriteria()
}

// Apply derives the filtered, sorted view without touching the input.
func (c CategoryCriteria) Apply(categories []category.Category) []category.Category {
	out := make([]category.Category, 0, len(categories))

	for _, cat := range categories {
		if !c.Status.matches(cat.Active) {
			continue
		}

		if !matchText(c.Search, cat.Name, cat.Description) {
			continue
		}

		out = append(out, cat)
	}

	c.sortCategories(out)

	return out
}

func (c CategoryCriteria) sortCategories(categories []category.Category) {
	coll := newCollator()

	less := func(a, b category.Category) bool {
		switch c.SortBy {
		case CategoriesByType:
			if a.Type != b.Type {
				return a.Type < b.Type
			}

			return coll.CompareString(a.Name, b.Name) < 0
		case CategoriesByCreated:
			return a.CreatedAt.Unix() < b.CreatedAt.Unix()
		default:
			return coll.CompareString(a.Name, b.Name) < 0
		}
	}

	sort.SliceStable(categories, func(i, j int) bool {
		if c.Desc {
			return less(categories[j], categories[i])
		}

		return less(categories[i], categories[j])
	})
}
