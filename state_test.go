// FILE: lixenwraith/ulog/state_test.go
package ulog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests swap the process-wide logger and must not run in parallel.

func newActiveMemoryLogger(t *testing.T) (*Logger, *MemorySink) {
	t.Helper()
	logger, err := NewBuilder().Override("sink=memory", "stamp_format=none").Activate().Build()
	require.NoError(t, err)
	t.Cleanup(func() { _ = logger.Close() })
	return logger, logger.Sink().(*MemorySink)
}

func TestActivate(t *testing.T) {
	require.Nil(t, Active())

	first := NewLogger()
	second := NewLogger()

	require.NoError(t, first.Activate())
	assert.True(t, first.IsActive())
	assert.Same(t, first, Active())
	assert.NoError(t, first.Activate(), "re-activating the active logger is a no-op")

	assert.ErrorIs(t, second.Activate(), ErrAlreadyActive)
	second.Deactivate()
	assert.Same(t, first, Active(), "deactivating an inactive logger changes nothing")

	first.Deactivate()
	assert.Nil(t, Active())
	require.NoError(t, second.Activate())
	second.Deactivate()
}

func TestPackageFunctionsWithoutActiveLogger(t *testing.T) {
	require.Nil(t, Active())

	assert.False(t, IsLevelEnabled(LevelMsg))
	assert.NoError(t, Msg("dropped %d", 1))
	assert.NoError(t, Err("dropped"))
	assert.NoError(t, Warn("dropped"))
	assert.NoError(t, Exception("dropped"))
	assert.NoError(t, Fatal("dropped"))
	assert.NoError(t, Log(LevelMsg, "dropped"))
	assert.NoError(t, LogNamed("USER_CMD", "dropped"))
	assert.NoError(t, Emit(LevelMsg, "dropped"))
	assert.NoError(t, ClearAll())
}

func TestPackageFunctionsDelegate(t *testing.T) {
	logger, mem := newActiveMemoryLogger(t)
	logger.EnableLevel("USER_CMD")

	assert.True(t, IsLevelEnabled(LevelMsg))
	assert.False(t, IsLevelEnabled(LevelDtor))

	require.NoError(t, Msg("m %d", 1))
	require.NoError(t, Warn("w"))
	require.NoError(t, Err("e"))
	require.NoError(t, Exception("x"))
	require.NoError(t, Fatal("f"))
	require.NoError(t, LogNamed("USER_CMD", "cmd %S", "open"))
	require.NoError(t, Log(LevelDtor, "filtered"))
	require.NoError(t, Emit(LevelMsg, "raw %d"))

	assert.Equal(t, []string{"m 1", "w", "e", "x", "f", "cmd open", "raw %d"}, mem.Lines())

	assert.Error(t, Msg("%d"), "format errors surface through package functions")

	require.NoError(t, ClearAll())
	assert.Empty(t, mem.Lines())
}

func TestCloseDeactivates(t *testing.T) {
	logger, _ := newActiveMemoryLogger(t)
	require.NoError(t, logger.Close())
	assert.Nil(t, Active())
	assert.NoError(t, Msg("after close"))
}
