package category

import (
	"strings"
	"time"
)

// Type is the closed set of category kinds. Unknown server values map to
// TypeOther.
type Type string

const (
	TypeFood    Type = "food"
	TypeDrink   Type = "drink"
	TypePackage Type = "package"
	TypeExtra   Type = "extra"
	TypeOther   Type = "other"
)

// Category is the normalized menu category shape the rest of the app works
// with.
type Category struct {
	ID               int64
	Name             string
	Description      string
	Type             Type
	Active           bool
	SelfOrderVisible bool
	ImageURL         string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

var foodWords = []string{
	"food", "pasta", "snack", "dessert", "rice", "nasi", "noodle", "mie",
	"chicken", "ayam", "beef", "rendang", "soup", "soto", "bread", "cake",
	"grill", "fried",
}

var drinkWords = []string{
	"drink", "tea", "teh", "coffee", "kopi", "juice", "jus", "milk",
	"soda", "smoothie", "mocktail",
}

// InferType classifies a category by its free-text description using a
// fixed keyword vocabulary. Advisory labeling only, never validated against
// the server.
func InferType(description string) Type {
	desc := strings.ToLower(description)

	for _, w := range drinkWords {
		if strings.Contains(desc, w) {
			return TypeDrink
		}
	}

	for _, w := range foodWords {
		if strings.Contains(desc, w) {
			return TypeFood
		}
	}

	return TypeOther
}

// ParseType maps a server-sent type value onto the closed enum.
func ParseType(raw string) (Type, bool) {
	switch Type(strings.ToLower(strings.TrimSpace(raw))) {
	case TypeFood:
		return TypeFood, true
	case TypeDrink:
		return TypeDrink, true
	case TypePackage:
		return TypePackage, true
	case TypeExtra:
		return TypeExtra, true
	default:
		return TypeOther, false
	}
}
