//go:build !cgo_sqlite

package database

// Pure Go SQLite, no C toolchain needed.
import (
	_ "modernc.org/sqlite"
)

const (
	DriverName = "sqlite"
	BuildMode  = "purego"
)
