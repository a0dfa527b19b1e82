package database

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDriverMatchesBuildMode(t *testing.T) {
	drivers := map[string]string{
		"purego": "sqlite",
		"cgo":    "sqlite3",
	}

	assert.Equal(t, drivers[BuildMode], DriverName, "build mode %s", BuildMode)
	assert.Contains(t, sql.Drivers(), DriverName)
}
