package billy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	parentfs "github.com/PeterVoronov/action-prepare-locales/fs"
	"github.com/PeterVoronov/action-prepare-locales/fs/fstest"
)

func TestInMemoryFS_Suite(t *testing.T) {
	fstest.TestSuite(t, func() parentfs.Filesystem { return NewInMemoryFS() })
}

func TestOSFS_Suite(t *testing.T) {
	fstest.TestSuite(t, func() parentfs.Filesystem { return NewOSFS(t.TempDir()) })
}

func TestRaw(t *testing.T) {
	fs := NewInMemoryFS()
	require.NoError(t, fs.WriteFile("x.txt", []byte("x"), 0o644))

	_, err := fs.Raw().Stat("x.txt")
	assert.NoError(t, err)
}

func TestNewFS_WrapsExistingFilesystem(t *testing.T) {
	mem := NewInMemoryFS()
	require.NoError(t, mem.WriteFile("locales/source/core_en.json", []byte("{}"), 0o644))

	wrapped := NewFS(mem.Raw())
	exists, err := wrapped.Exists("locales/source/core_en.json")
	require.NoError(t, err)
	assert.True(t, exists)
}
