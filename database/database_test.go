package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOpen(t *testing.T) {
	t.Run("Opens a file-backed database, creating parent directories", func(t *testing.T) {
		db, err := Open(filepath.Join(t.TempDir(), "nested", "data", "test.db"))
		assert.NoError(t, err)

		var one int
		assert.NoError(t, db.Raw("SELECT 1").Scan(&one).Error)
		assert.Equal(t, 1, one)
	})

	t.Run("Empty DSN falls back to in-memory", func(t *testing.T) {
		db, err := Open("")
		assert.NoError(t, err)

		var one int
		assert.NoError(t, db.Raw("SELECT 1").Scan(&one).Error)
		assert.Equal(t, 1, one)
	})
}
