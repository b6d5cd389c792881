// FILE: lixenwraith/ulog/builder_test.go
package ulog

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trickstertwo/xclock"

	"github.com/lixenwraith/ulog/sanitizer"
)

func TestBuilder_Build(t *testing.T) {
	t.Run("successful build returns configured logger", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "ui.log")

		logger, err := NewBuilder().
			Levels("default", "USER_CMD").
			File(path).
			StampFormat(StampDate | StampTime | StampMicros).
			SeparatorSecs(3.5).
			ShowLevel(true).
			Sanitize(false).
			InternalErrorsToStderr(true).
			Build()
		require.NoError(t, err, "Builder.Build() should not return an error on valid config")
		require.NotNil(t, logger)
		defer logger.Close()

		cfg := logger.GetConfig()
		assert.Equal(t, "default,USER_CMD", cfg.Levels)
		assert.Equal(t, "file", cfg.Sink)
		assert.Equal(t, path, cfg.Path)
		assert.Equal(t, "date,time,us", cfg.StampFormat)
		assert.Equal(t, 3.5, cfg.SeparatorSecs)
		assert.True(t, cfg.ShowLevel)
		assert.False(t, cfg.Sanitize)
		assert.True(t, cfg.InternalErrorsToStderr)

		assert.True(t, logger.IsLevelEnabled(Hash("USER_CMD")))
		ts, ok := logger.Sink().(*TextSink)
		require.True(t, ok)
		assert.Equal(t, path, ts.Path())
		assert.False(t, logger.IsActive())
	})

	t.Run("builder error accumulation", func(t *testing.T) {
		logger, err := NewBuilder().
			Levels("BAD NAME").
			File("/some/dir/ui.log"). // not reached
			Build()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid level name")
		assert.Nil(t, logger)
	})

	t.Run("apply config error", func(t *testing.T) {
		logger, err := NewBuilder().Sink("syslog").Build()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid configuration")
		assert.Nil(t, logger)
	})

	t.Run("override errors", func(t *testing.T) {
		_, err := NewBuilder().Override("sink=memory", "nope=1", "max_lines=abc").Build()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "multiple configuration errors")
	})

	t.Run("nil sink", func(t *testing.T) {
		_, err := NewBuilder().AddSink(nil).Build()
		assert.Error(t, err)
	})
}

func TestBuilderExtraSinks(t *testing.T) {
	mem := MustNewSink(KindMemory, "", WithStampFormat(StampNone))
	rec := newRecordSink("rec", nil)

	logger, err := NewBuilder().
		Override("sink=memory", "stamp_format=none").
		AddSink(mem).
		AddSink(rec).
		Clock(xclock.NewFrozen(stampTime)).
		Build()
	require.NoError(t, err)
	defer logger.Close()

	sinks := logger.Dispatcher().Sinks()
	require.Len(t, sinks, 3)
	assert.Same(t, logger.Sink(), sinks[0], "owned sink connects first")
	assert.Same(t, mem, sinks[1])
	assert.Same(t, rec, sinks[2])

	require.NoError(t, logger.Msg("hello"))
	assert.Equal(t, []string{"hello"}, mem.(*MemorySink).Lines())
	require.Len(t, rec.Events(), 1)
	assert.True(t, rec.Events()[0].Time.Equal(stampTime))

	// A sink can only be handed to one logger
	_, err = NewBuilder().AddSink(rec).Build()
	assert.Error(t, err)
}

func TestBuilderConfigCopy(t *testing.T) {
	b := NewBuilder().Console("stderr").Rotation(20, 1).MaxLines(7).SanitizePolicy(sanitizer.PolicyLine)
	cfg := b.Config()
	assert.Equal(t, "console", cfg.Sink)
	assert.Equal(t, "stderr", cfg.ConsoleTarget)
	assert.Equal(t, int64(20), cfg.MaxSizeMB)
	assert.Equal(t, int64(1), cfg.MaxBackups)
	assert.Equal(t, int64(7), cfg.MaxLines)
	assert.Equal(t, "line", cfg.SanitizePolicy)

	cfg.Sink = "none"
	assert.Equal(t, "console", b.Config().Sink)
}

func TestBuilderActivate(t *testing.T) {
	logger, err := NewBuilder().Sink("memory").Activate().Build()
	require.NoError(t, err)
	defer logger.Close()
	assert.True(t, logger.IsActive())

	_, err = NewBuilder().Activate().Build()
	assert.ErrorIs(t, err, ErrAlreadyActive)
}
