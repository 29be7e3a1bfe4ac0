package cryptox

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadOrCreatePepper(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keys", "pepper")

	p1, err := LoadOrCreatePepper(path)
	require.NoError(t, err)
	require.NotEmpty(t, p1)

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	p2, err := LoadOrCreatePepper(path)
	require.NoError(t, err)
	require.Equal(t, p1, p2)

	_, err = NewOTPHasher(p1)
	require.NoError(t, err)
}

func TestLoadOrCreatePepper_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pepper")
	require.NoError(t, os.WriteFile(path, []byte("\n"), 0o600))

	_, err := LoadOrCreatePepper(path)
	require.Error(t, err)
}
