package menu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatRupiah(t *testing.T) {
	assert.Equal(t, "Rp 500", FormatRupiah(500))
	assert.Equal(t, "Rp 25.000", FormatRupiah(25000))
	assert.Equal(t, "Rp 1.250.000", FormatRupiah(1250000))
	assert.Equal(t, "Rp 0", FormatRupiah(0))
}

func TestProduct_PriceRange(t *testing.T) {
	plain := Product{Price: 25000}
	assert.Equal(t, "Rp 25.000", plain.PriceRange())

	withVariants := Product{
		Price: 25000,
		Variants: []Variant{
			{Name: "Small", Price: 15000, Active: true},
			{Name: "Large", Price: 30000, Active: true},
			{Name: "Discontinued", Price: 5000, Active: false},
		},
	}
	assert.Equal(t, "Rp 15.000 - Rp 30.000", withVariants.PriceRange())

	// Inactive variants do not contribute; the product price wins.
	allInactive := Product{
		Price:    20000,
		Variants: []Variant{{Price: 9000, Active: false}},
	}
	assert.Equal(t, "Rp 20.000", allInactive.PriceRange())
}

func TestComputeStats(t *testing.T) {
	products := []Product{
		{Active: true, Variants: []Variant{{}}},
		{Active: true},
		{Active: false},
	}

	s := ComputeStats(products)
	assert.Equal(t, 3, s.Total)
	assert.Equal(t, 2, s.Active)
	assert.Equal(t, 1, s.WithVariants)
}

func TestFlexInt(t *testing.T) {
	var f flexInt

	assert.NoError(t, f.UnmarshalJSON([]byte(`12000`)))
	assert.Equal(t, flexInt(12000), f)

	assert.NoError(t, f.UnmarshalJSON([]byte(`"15000"`)))
	assert.Equal(t, flexInt(15000), f)

	assert.NoError(t, f.UnmarshalJSON([]byte(`"25000.00"`)))
	assert.Equal(t, flexInt(25000), f)

	assert.NoError(t, f.UnmarshalJSON([]byte(`null`)))
	assert.Equal(t, flexInt(0), f)

	assert.Error(t, f.UnmarshalJSON([]byte(`"abc"`)))
}
