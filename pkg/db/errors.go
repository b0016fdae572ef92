package db

import "strings"

// IsUniqueViolation reports whether the provided error references a SQLite
// unique constraint. When columnRef is provided (for example "coupons.code"),
// the helper looks for that column reference in the error message.
func IsUniqueViolation(err error, columnRef string) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	if !strings.Contains(msg, "UNIQUE constraint failed") {
		return false
	}
	if columnRef != "" {
		return strings.Contains(msg, columnRef)
	}
	return true
}
