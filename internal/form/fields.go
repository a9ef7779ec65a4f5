// Package form holds the pieces shared by every editable draft: numeric
// field coercion, per-field validation errors and image staging.
package form

import (
	"strconv"
	"strings"
)

// Errors maps field names to validation messages.
type Errors map[string]string

func (e Errors) Add(field, msg string) {
	e[field] = msg
}

func (e Errors) Has(field string) bool {
	_, ok := e[field]
	return ok
}

// ParseNumber coerces raw text input into a numeric field value. Empty
// input means "not provided" (nil, distinct from zero) and junk input is
// silently discarded rather than surfaced as a parse panic mid-keystroke.
func ParseNumber(raw string) *int64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil
	}

	return &n
}
