package workspace

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_FSReader_ReadFile(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "contracts"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "contracts", "a.yaml"), []byte("module: x\n"), 0o644))

	r := NewFSReader(root)

	got, err := r.ReadFile("contracts/a.yaml")
	require.NoError(t, err)
	assert.Equal(t, "module: x\n", got)

	got, err = r.ReadFile("contracts/../contracts/a.yaml")
	require.NoError(t, err)
	assert.Equal(t, "module: x\n", got)
}

func Test_FSReader_rejectsEscapes(t *testing.T) {
	parent := t.TempDir()
	root := filepath.Join(parent, "project")
	require.NoError(t, os.MkdirAll(root, 0o755))
	// sibling that shares the root's name as a prefix
	require.NoError(t, os.MkdirAll(filepath.Join(parent, "project-secrets"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(parent, "project-secrets", "key"), []byte("k"), 0o644))

	r := NewFSReader(root)

	for _, p := range []string{"../project-secrets/key", "..", filepath.Join(parent, "project-secrets", "key")} {
		_, err := r.ReadFile(p)
		assert.Error(t, err, p)
	}
}

func Test_FSReader_missingFile(t *testing.T) {
	_, err := NewFSReader(t.TempDir()).ReadFile("nope.yaml")

	assert.ErrorIs(t, err, os.ErrNotExist)
}
