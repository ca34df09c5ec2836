package fsutil

import (
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOSFileSystem(t *testing.T) {
	t.Parallel()

	osfs := OSFileSystem{}
	path := filepath.Join(t.TempDir(), "file.txt")

	assert.False(t, osfs.Exists(path))

	require.NoError(t, osfs.WriteFile(path, []byte("hello"), 0644))
	assert.True(t, osfs.Exists(path))

	data, err := osfs.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
}

func TestMemoryFileSystem(t *testing.T) {
	t.Parallel()

	t.Run("read write exists", func(t *testing.T) {
		t.Parallel()
		m := NewMemoryFileSystem()

		assert.False(t, m.Exists("a.txt"))
		require.NoError(t, m.WriteFile("a.txt", []byte("data"), 0644))
		assert.True(t, m.Exists("a.txt"))

		data, err := m.ReadFile("a.txt")
		require.NoError(t, err)
		assert.Equal(t, "data", string(data))
	})

	t.Run("missing file returns ErrNotExist", func(t *testing.T) {
		t.Parallel()
		m := NewMemoryFileSystem()

		_, err := m.ReadFile("missing.txt")
		require.Error(t, err)
		assert.ErrorIs(t, err, fs.ErrNotExist)
	})

	t.Run("returned data is a copy", func(t *testing.T) {
		t.Parallel()
		m := NewMemoryFileSystem()
		require.NoError(t, m.WriteFile("a.txt", []byte("data"), 0644))

		data, err := m.ReadFile("a.txt")
		require.NoError(t, err)
		data[0] = 'X'

		again, err := m.ReadFile("a.txt")
		require.NoError(t, err)
		assert.Equal(t, "data", string(again))
	})

	t.Run("WriteErr fails writes and keeps state", func(t *testing.T) {
		t.Parallel()
		m := NewMemoryFileSystem()
		m.WriteErr = assert.AnError

		err := m.WriteFile("a.txt", []byte("data"), 0644)
		assert.Error(t, err)
		assert.False(t, m.Exists("a.txt"))
	})
}
