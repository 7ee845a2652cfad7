package devenv

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolvePath(t *testing.T) {
	plain, err := ResolvePath("data/output-day-0")
	require.NoError(t, err)
	require.Equal(t, "data/output-day-0", plain)

	root, err := GetWorkspaceRoot()
	require.NoError(t, err)

	resolved, err := ResolvePath("<dev_state>/snapshots.db")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(root, "dev", ".state", "snapshots.db"), resolved)
}
