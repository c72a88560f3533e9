package scan

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdviseSequential(t *testing.T) {
	path := filepath.Join(t.TempDir(), "m.txt")
	require.NoError(t, os.WriteFile(path, []byte("a;1.0\n"), 0o644))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	assert.NoError(t, adviseSequential(f, 6))

	// A closed descriptor is reported, not ignored.
	require.NoError(t, f.Close())
	assert.Error(t, adviseSequential(f, 6))
}
