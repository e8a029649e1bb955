//go:build !cgo

package sqlstore

// Without cgo the mattn/go-sqlite3 driver is a stub that cannot open a
// database, so no sqlite error can ever reach this check.
func isSQLiteUniqueViolation(error) bool { return false }
