// Package filter derives filtered, sorted views over resource collections.
// Everything here is pure: the source slice is never mutated, callers get a
// fresh slice each time.
package filter

import (
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Status narrows a collection by its active flag.
type Status string

const (
	StatusAll      Status = "all"
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

func (s Status) matches(active bool) bool {
	switch s {
	case StatusActive:
		return active
	case StatusInactive:
		return !active
	default:
		return true
	}
}

// PriceBucket is one of the fixed, half-open price bands. The buckets do
// not overlap: 25.000 lands in Price25To50K, not PriceUnder25K.
type PriceBucket string

const (
	PriceAny      PriceBucket = ""
	PriceUnder25K PriceBucket = "under-25k"
	Price25To50K  PriceBucket = "25k-50k"
	Price50To100K PriceBucket = "50k-100k"
	PriceOver100K PriceBucket = "over-100k"
)

func (b PriceBucket) contains(amount int64) bool {
	switch b {
	case PriceUnder25K:
		return amount < 25_000
	case Price25To50K:
		return amount >= 25_000 && amount < 50_000
	case Price50To100K:
		return amount >= 50_000 && amount < 100_000
	case PriceOver100K:
		return amount >= 100_000
	default:
		return true
	}
}

// newCollator builds the string comparator used by every sort here. The
// menu is Indonesian; collation beats byte order for names like "És Kopi".
func newCollator() *collate.Collator {
	return collate.New(language.Indonesian, collate.IgnoreCase)
}

func matchText(needle string, haystacks ...string) bool {
	needle = strings.ToLower(strings.TrimSpace(needle))
	if needle == "" {
		return true
	}

	for _, h := range haystacks {
		if strings.Contains(strings.ToLower(h), needle) {
			return true
		}
	}

	return false
}
