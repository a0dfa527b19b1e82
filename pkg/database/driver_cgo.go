//go:build cgo_sqlite

package database

// Build with: CGO_ENABLED=1 go build -tags cgo_sqlite ./...
import (
	_ "github.com/mattn/go-sqlite3"
)

const (
	DriverName = "sqlite3"
	BuildMode  = "cgo"
)
