package filter_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dapurlink/backoffice/internal/category"
	"github.com/dapurlink/backoffice/internal/filter"
	"github.com/dapurlink/backoffice/internal/menu"
)

func sampleProducts() []menu.Product {
	return []menu.Product{
		{ID: 1, Name: "Es Kopi Susu", Description: "Iced coffee", Price: 18000, Stock: 5, CategoryID: 5, Active: true,
			UpdatedAt: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)},
		{ID: 2, Name: "Nasi Goreng", Description: "Fried rice", Price: 25000, Stock: 2, CategoryID: 6, Active: true,
			UpdatedAt: time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)},
		{ID: 3, Name: "Wagyu Steak", Description: "Premium cut", Price: 150000, Stock: 1, CategoryID: 6, Active: false,
			UpdatedAt: time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)},
		{ID: 4, Name: "ayam bakar", Description: "Grilled chicken", Price: 50000, Stock: 0, CategoryID: 6, Active: true,
			UpdatedAt: time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)},
	}
}

func categoryName(id int64) string {
	switch id {
	case 5:
		return "Drinks"
	case 6:
		return "Mains"
	default:
		return ""
	}
}

func ids(products []menu.Product) []int64 {
	out := make([]int64, len(products))
	for i, p := range products {
		out[i] = p.ID
	}

	return out
}

func TestProductCriteria_SearchMatchesCategoryName(t *testing.T) {
	c := filter.NewProductCriteria()
	c.Search = "drinks"

	got := c.Apply(sampleProducts(), categoryName)
	assert.Equal(t, []int64{1}, ids(got))
}

func TestProductCriteria_SearchIsCaseless(t *testing.T) {
	c := filter.NewProductCriteria()
	c.Search = "AYAM"

	got := c.Apply(sampleProducts(), categoryName)
	assert.Equal(t, []int64{4}, ids(got))
}

func TestProductCriteria_StatusAndCategory(t *testing.T) {
	c := filter.NewProductCriteria()
	c.CategoryID = 6
	c.Status = filter.StatusActive

	got := c.Apply(sampleProducts(), categoryName)
	assert.ElementsMatch(t, []int64{2, 4}, ids(got))
}

func TestProductCriteria_PriceBucketsAreHalfOpen(t *testing.T) {
	products := sampleProducts()

	cases := []struct {
		bucket filter.PriceBucket
		want   []int64
	}{
		{filter.PriceUnder25K, []int64{1}},
		{filter.Price25To50K, []int64{2}},  // 25.000 is in, 50.000 is out
		{filter.Price50To100K, []int64{4}}, // 50.000 is in
		{filter.PriceOver100K, []int64{3}},
	}

	for _, tc := range cases {
		c := filter.NewProductCriteria()
		c.Price = tc.bucket

		assert.ElementsMatch(t, tc.want, ids(c.Apply(products, nil)), string(tc.bucket))
	}
}

func TestProductCriteria_SortByNameIgnoresCase(t *testing.T) {
	c := filter.NewProductCriteria()

	got := c.Apply(sampleProducts(), nil)
	// Lowercase "ayam bakar" sorts with the A's, not after the W's.
	assert.Equal(t, []int64{4, 1, 2, 3}, ids(got))
}

func TestProductCriteria_SortByUpdatedDesc(t *testing.T) {
	c := filter.NewProductCriteria()
	c.SortBy = filter.ProductsByUpdated
	c.Desc = true

	got := c.Apply(sampleProducts(), nil)
	assert.Equal(t, []int64{2, 4, 3, 1}, ids(got))
}

func TestProductCriteria_DoesNotMutateSource(t *testing.T) {
	products := sampleProducts()

	c := filter.NewProductCriteria()
	c.SortBy = filter.ProductsByPrice
	c.Desc = true
	c.Apply(products, nil)

	assert.Equal(t, []int64{1, 2, 3, 4}, ids(products), "source order untouched")
}

func TestProductCriteria_ActiveAndReset(t *testing.T) {
	c := filter.NewProductCriteria()
	require.False(t, c.Active())

	c.SortBy = filter.ProductsByPrice
	assert.False(t, c.Active(), "sort order alone narrows nothing")

	c.Search = "kopi"
	c.Status = filter.StatusInactive
	c.Price = filter.PriceOver100K
	c.CategoryID = 6
	require.True(t, c.Active())

	c.Reset()
	assert.False(t, c.Active())
	assert.Equal(t, filter.StatusAll, c.Status)
	assert.Empty(t, c.Search)
}

func TestCategoryCriteria_Apply(t *testing.T) {
	categories := []category.Category{
		{ID: 1, Name: "Mains", Description: "Rice dishes", Type: category.TypeFood, Active: true,
			CreatedAt: time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)},
		{ID: 2, Name: "drinks", Description: "Coffee and tea", Type: category.TypeDrink, Active: true,
			CreatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)},
		{ID: 3, Name: "Archived", Description: "Old menu", Type: category.TypeOther, Active: false,
			CreatedAt: time.Date(2026, 1, 3, 0, 0, 0, 0, time.UTC)},
	}

	c := filter.NewCategoryCriteria()

	got := c.Apply(categories)
	require.Len(t, got, 3)
	assert.Equal(t, "Archived", got[0].Name)
	assert.Equal(t, "drinks", got[1].Name, "caseless name sort")

	c.Status = filter.StatusActive
	c.Search = "coffee"

	got = c.Apply(categories)
	require.Len(t, got, 1)
	assert.Equal(t, int64(2), got[0].ID)

	c.Reset()
	c.SortBy = filter.CategoriesByCreated

	got = c.Apply(categories)
	assert.Equal(t, int64(2), got[0].ID)
	assert.Equal(t, int64(3), got[2].ID)
}
