package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnect(t *testing.T) {
	t.Run("In Memory", func(t *testing.T) {
		db, err := Connect(Config{Path: ":memory:"})
		require.NoError(t, err)
		assert.NotNil(t, db)
	})

	t.Run("Creates Parent Directory", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "history.db")
		db, err := Connect(Config{Path: path})
		require.NoError(t, err)
		assert.NotNil(t, db)
	})
}
