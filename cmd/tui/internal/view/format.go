package view

import (
	"context"
	"time"
)

// apiTimeout bounds one store operation, retries included.
const apiTimeout = 30 * time.Second

// ApiCtx returns a context with the standard timeout for POS calls.
func ApiCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), apiTimeout)
}

// FormatDate formats a time.Time into YYYY-MM-DD, "-" when unset.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}

	return t.Format("2006-01-02")
}

// FormatTime formats a timestamp with the clock included.
func FormatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}

	return t.Format("2006-01-02 15:04")
}

func activeLabel(active bool) string {
	if active {
		return "active"
	}

	return "inactive"
}
