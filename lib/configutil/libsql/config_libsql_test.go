package configlibsql

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOpenLocal(t *testing.T) {
	config := Struct{File: filepath.Join(t.TempDir(), "snapshots.db")}
	require.True(t, config.Enabled())

	db, err := config.OpenDB()
	require.NoError(t, err)
	defer db.Close()

	var mode string
	err = db.QueryRow("PRAGMA journal_mode").Scan(&mode)
	require.NoError(t, err)
	require.Equal(t, "wal", mode)
}

func TestOpenMissingPath(t *testing.T) {
	config := Struct{}
	require.False(t, config.Enabled())
	_, err := config.OpenDB()
	require.Error(t, err)
}
