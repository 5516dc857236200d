package database

import "strings"

// IsUniqueViolation reports whether err is a SQLite UNIQUE constraint
// failure involving the given column, e.g. "authors.name". The application
// runs its own duplicate checks first, but a race between the check and the
// insert still surfaces here and must map to the same duplicate error.
func IsUniqueViolation(err error, column string) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "UNIQUE constraint failed") &&
		strings.Contains(errStr, column)
}
