// FILE: lixenwraith/ulog/storage_test.go
package ulog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureLogDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "ui.log")
	require.NoError(t, ensureLogDir(path))

	info, err := os.Stat(filepath.Dir(path))
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	assert.NoError(t, ensureLogDir("ui.log"), "current directory needs nothing")
}

func TestCreateLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "ui.log")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("previous session\n"), 0644))

	f, err := createLogFile(path)
	require.NoError(t, err)
	defer f.Close()

	info, err := f.Stat()
	require.NoError(t, err)
	assert.Zero(t, info.Size(), "existing content is discarded")
	assert.Equal(t, os.FileMode(logFileMode), info.Mode().Perm()&os.FileMode(logFileMode))
}

func TestTruncateLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ui.log")
	f, err := createLogFile(path)
	require.NoError(t, err)
	defer f.Close()

	_, err = f.WriteString("one\ntwo\n")
	require.NoError(t, err)
	require.NoError(t, truncateLogFile(f))
	_, err = f.WriteString("three\n")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "three\n", string(data), "writes restart at offset zero")
}

func TestNewRotatingWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rot", "ui.log")
	w, err := newRotatingWriter(path, 0, -1)
	require.NoError(t, err)
	defer w.Close()

	assert.Equal(t, path, w.Filename)
	assert.Equal(t, defaultMaxSizeMB, w.MaxSize)
	assert.Equal(t, 0, w.MaxBackups)
	_, err = os.Stat(path)
	assert.NoError(t, err, "probe creates the file")

	_, err = w.Write([]byte("before\n"))
	require.NoError(t, err)
	require.NoError(t, w.Rotate())
	_, err = w.Write([]byte("after\n"))
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "after\n", string(data))
}

func TestNewRotatingWriterUnwritable(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0644))

	_, err := newRotatingWriter(filepath.Join(blocker, "ui.log"), 1, 1)
	assert.Error(t, err)
}
