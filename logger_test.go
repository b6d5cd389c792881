// FILE: lixenwraith/ulog/logger_test.go
package ulog

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trickstertwo/xclock"

	"github.com/lixenwraith/ulog/formatter"
)

// createTestLogger creates a logger with a file sink in a temp directory and a frozen clock
func createTestLogger(t *testing.T) (*Logger, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ulog.log")

	logger, err := NewBuilder().
		File(path).
		StampFormat(StampTime | StampUTC).
		Clock(xclock.NewFrozen(stampTime)).
		Build()
	require.NoError(t, err)
	t.Cleanup(func() { _ = logger.Close() })

	return logger, path
}

// countingStringer counts how often it is formatted
type countingStringer struct {
	calls *atomic.Int32
}

func (c countingStringer) String() string {
	c.calls.Add(1)
	return "counted"
}

// TestNewLogger verifies the initial state of a logger
func TestNewLogger(t *testing.T) {
	logger := NewLogger()

	assert.NotNil(t, logger.Dispatcher())
	assert.Equal(t, 0, logger.Dispatcher().Len())
	assert.Nil(t, logger.Sink())
	assert.False(t, logger.Closed())
	assert.Equal(t, defaultLevels(), logger.EnabledLevels())
	assert.Equal(t, DefaultConfig(), logger.GetConfig())
}

// TestLogToFile verifies that one call yields exactly one formatted line
func TestLogToFile(t *testing.T) {
	logger, path := createTestLogger(t)

	require.NoError(t, logger.Msg("boom %d", 42))
	assert.Equal(t, []string{"14:07:09 boom 42"}, readLines(t, path))
}

// TestLogLevelMethods verifies each base level method is gated by its hashed level
func TestLogLevelMethods(t *testing.T) {
	logger, path := createTestLogger(t)
	logger.SetLevels(Levels("FATAL", "EXCEPTION", "ERROR", "WARNING", "MSG"))
	require.NoError(t, logger.ApplyOverride("show_level=true"))

	require.NoError(t, logger.Msg("m"))
	require.NoError(t, logger.Warn("w"))
	require.NoError(t, logger.Err("e"))
	require.NoError(t, logger.Exception("x"))
	require.NoError(t, logger.Fatal("f"))
	require.NoError(t, logger.LogNamed("USER_CMD", "dropped"))
	require.NoError(t, logger.Emit(LevelMsg, "pre-built %d"))

	assert.Equal(t, []string{
		"14:07:09 MSG m",
		"14:07:09 WARNING w",
		"14:07:09 ERROR e",
		"14:07:09 EXCEPTION x",
		"14:07:09 FATAL f",
		"14:07:09 MSG pre-built %d",
	}, readLines(t, path))
}

// TestDisabledLevelNeverFormats verifies that gating happens before formatting
func TestDisabledLevelNeverFormats(t *testing.T) {
	logger := NewLogger()
	mem := MustNewSink(KindMemory, "", WithStampFormat(StampNone)).(*MemorySink)
	logger.Connect(mem)

	var calls atomic.Int32
	arg := countingStringer{calls: &calls}

	require.NoError(t, logger.LogNamed("DEBUG", "%S", arg))
	assert.Zero(t, calls.Load())
	assert.Empty(t, mem.Lines())

	// A bad template on a disabled level is not an error either
	require.NoError(t, logger.LogNamed("DEBUG", "%d"))

	logger.EnableLevel("DEBUG")
	require.NoError(t, logger.LogNamed("DEBUG", "%S", arg))
	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, []string{"counted"}, mem.Lines())
}

// TestLevelToggling verifies level set edits and chaining
func TestLevelToggling(t *testing.T) {
	logger := NewLogger()
	debug := Hash("DEBUG")

	assert.False(t, logger.IsLevelEnabled(debug))
	logger.ToggleLevel(debug, true)
	assert.True(t, logger.IsLevelEnabled(debug))
	logger.ToggleLevel(debug, false)
	assert.False(t, logger.IsLevelEnabled(debug))
	assert.Equal(t, defaultLevels(), logger.EnabledLevels(), "toggle round trip restores the set")

	logger.ClearAllLevels().EnableLevel("APP_INIT").EnableLevel("USER_CMD")
	assert.Equal(t, Levels("APP_INIT", "USER_CMD"), logger.EnabledLevels())

	logger.EnableLevels(Levels("MSG", "ERROR")).DisableLevels(Levels("APP_INIT", "ERROR"))
	assert.Equal(t, Levels("USER_CMD", "MSG"), logger.EnabledLevels())

	// Returned sets are copies
	got := logger.EnabledLevels()
	delete(got, LevelMsg)
	assert.True(t, logger.IsLevelEnabled(LevelMsg))

	set := Levels("WARNING")
	logger.SetLevels(set)
	set[LevelFatal] = struct{}{}
	assert.False(t, logger.IsLevelEnabled(LevelFatal))
}

// TestLogFormatError verifies format errors are returned and nothing is delivered
func TestLogFormatError(t *testing.T) {
	logger := NewLogger()
	mem := MustNewSink(KindMemory, "").(*MemorySink)
	logger.Connect(mem)

	err := logger.Msg("value %d and %d", 1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, formatter.ErrFormat))

	var fe *formatter.Error
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "value %d and %d", fe.Template)
	assert.Empty(t, mem.Lines())
}

// TestLogUsesClock verifies event times come from the configured clock
func TestLogUsesClock(t *testing.T) {
	logger := NewLogger(WithClock(xclock.NewFrozen(stampTime)))
	rec := newRecordSink("rec", nil)
	logger.Connect(rec)

	require.NoError(t, logger.Msg("a"))
	require.NoError(t, logger.Warn("b"))

	evs := rec.Events()
	require.Len(t, evs, 2)
	for _, ev := range evs {
		assert.True(t, ev.Time.Equal(stampTime))
		assert.Equal(t, goroutineID(), ev.Goroutine)
		assert.Equal(t, 1, ev.Thread)
	}
	assert.Equal(t, LevelWarning, evs[1].Level)
}

// TestLogUsesDefaultClock verifies the process-wide xclock is used without a clock option
func TestLogUsesDefaultClock(t *testing.T) {
	old := xclock.Default()
	defer xclock.SetDefault(old)
	frozen := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	xclock.SetDefault(xclock.NewFrozen(frozen))

	logger := NewLogger()
	rec := newRecordSink("rec", nil)
	logger.Connect(rec)

	require.NoError(t, logger.Msg("x"))
	require.Len(t, rec.Events(), 1)
	assert.True(t, rec.Events()[0].Time.Equal(frozen))
}

// TestLogDeliveryError verifies delivery failures reach the caller
func TestLogDeliveryError(t *testing.T) {
	logger := NewLogger()
	bad := newRecordSink("bad", nil)
	bad.hook = func(Event) error { return errors.New("broken pipe") }
	good := newRecordSink("good", nil)
	logger.Connect(bad).Connect(good)

	err := logger.Err("lost %S", "frame")
	require.Error(t, err)
	var de *DeliveryError
	assert.True(t, errors.As(err, &de))
	assert.Len(t, good.Events(), 1)
}

// TestApplyConfig verifies configuration swaps the owned sink only when sink settings change
func TestApplyConfig(t *testing.T) {
	logger, path := createTestLogger(t)
	first := logger.Sink()
	require.NotNil(t, first)
	assert.Equal(t, 1, logger.Dispatcher().Len())

	// Level-only change keeps the sink
	cfg := logger.GetConfig()
	cfg.Levels = "MSG,USER_CMD"
	require.NoError(t, logger.ApplyConfig(cfg))
	assert.Same(t, first, logger.Sink())
	assert.True(t, logger.IsLevelEnabled(Hash("USER_CMD")))
	assert.False(t, logger.IsLevelEnabled(LevelError))

	// Path change replaces it
	newPath := filepath.Join(filepath.Dir(path), "other.log")
	cfg.Path = newPath
	require.NoError(t, logger.ApplyConfig(cfg))
	second := logger.Sink()
	assert.NotSame(t, first, second)
	assert.False(t, first.base().Connected())
	assert.Equal(t, []Sink{second}, logger.Dispatcher().Sinks())

	require.NoError(t, logger.Msg("moved"))
	assert.Equal(t, []string{"14:07:09 moved"}, readLines(t, newPath))

	// Sink none drops it
	cfg.Sink = "none"
	require.NoError(t, logger.ApplyConfig(cfg))
	assert.Nil(t, logger.Sink())
	assert.Equal(t, 0, logger.Dispatcher().Len())
}

// TestApplyConfigErrors verifies invalid configs leave the logger untouched
func TestApplyConfigErrors(t *testing.T) {
	logger, _ := createTestLogger(t)
	sink := logger.Sink()

	assert.Error(t, logger.ApplyConfig(nil))

	cfg := logger.GetConfig()
	cfg.Levels = "BAD LEVEL"
	assert.Error(t, logger.ApplyConfig(cfg))

	cfg = logger.GetConfig()
	cfg.Path = filepath.Join(sink.(*TextSink).Path(), "under-a-file", "x.log")
	assert.Error(t, logger.ApplyConfig(cfg), "sink creation failure")
	assert.Same(t, sink, logger.Sink())
	assert.True(t, sink.base().Connected())
	assert.Equal(t, DefaultConfig().Levels, logger.GetConfig().Levels)
}

// TestApplyConfigKeepsRuntimeLevels verifies level edits survive changes to other settings
func TestApplyConfigKeepsRuntimeLevels(t *testing.T) {
	logger, path := createTestLogger(t)
	debug := Hash("DEBUG")

	logger.EnableLevel("DEBUG").ToggleLevel(LevelWarning, false)
	require.NoError(t, logger.ApplyOverride("path="+filepath.Join(filepath.Dir(path), "moved.log")))
	require.NoError(t, logger.ApplyOverride("show_level=true", "separator_secs=5"))

	assert.True(t, logger.IsLevelEnabled(debug))
	assert.False(t, logger.IsLevelEnabled(LevelWarning))

	// A changed levels setting still replaces the set
	require.NoError(t, logger.ApplyOverride("levels=MSG"))
	assert.Equal(t, Levels("MSG"), logger.EnabledLevels())
}

// TestApplyConfigRacingClose verifies no sink survives a close racing with reconfiguration
func TestApplyConfigRacingClose(t *testing.T) {
	dir := t.TempDir()

	for i := 0; i < 50; i++ {
		logger, err := NewBuilder().File(filepath.Join(dir, fmt.Sprintf("start-%d.log", i))).Build()
		require.NoError(t, err)

		var wg sync.WaitGroup
		for w := 0; w < 4; w++ {
			wg.Add(1)
			go func(w int) {
				defer wg.Done()
				path := filepath.Join(dir, fmt.Sprintf("swap-%d-%d.log", i, w))
				err := logger.ApplyOverride("path=" + path)
				if err != nil {
					assert.ErrorIs(t, err, ErrClosed)
				}
			}(w)
		}
		require.NoError(t, logger.Close())
		wg.Wait()

		assert.Nil(t, logger.Sink(), "iteration %d", i)
		assert.Equal(t, 0, logger.Dispatcher().Len(), "iteration %d", i)
	}
}

// TestApplyOverride verifies string overrides
func TestApplyOverride(t *testing.T) {
	logger := NewLogger()

	require.NoError(t, logger.ApplyOverride("sink=memory", "max_lines=3", "stamp_format=none", "levels=default,APP_INIT"))
	mem, ok := logger.Sink().(*MemorySink)
	require.True(t, ok)
	assert.True(t, logger.IsLevelEnabled(Hash("APP_INIT")))

	for i := 0; i < 5; i++ {
		require.NoError(t, logger.LogNamed("APP_INIT", "step %d", i))
	}
	assert.Equal(t, []string{"step 2", "step 3", "step 4"}, mem.Lines())

	err := logger.ApplyOverride("bogus=1", "max_lines=x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "multiple configuration errors")

	assert.Error(t, logger.ApplyOverride("noequals"))
	assert.Same(t, mem, logger.Sink(), "failed overrides keep the sink")
}

// TestApplyOverrideSanitizePolicy verifies the sanitize_policy key reaches the owned sink
func TestApplyOverrideSanitizePolicy(t *testing.T) {
	logger := NewLogger()
	require.NoError(t, logger.ApplyOverride("sink=memory", "stamp_format=none", "sanitize_policy=line"))
	mem := logger.Sink().(*MemorySink)

	require.NoError(t, logger.Msg("two\nlines"))
	assert.Equal(t, []string{`two\nlines`}, mem.Lines())

	require.NoError(t, logger.ApplyOverride("sanitize_policy=flat"))
	assert.NotSame(t, mem, logger.Sink(), "policy change rebuilds the sink")
	require.NoError(t, logger.Msg("two\nlines"))
	assert.Equal(t, []string{"two lines"}, logger.Sink().(*MemorySink).Lines())

	assert.Error(t, logger.ApplyOverride("sanitize_policy=json"))
}

// TestClearAll verifies clear-all reaches the owned sink
func TestClearAll(t *testing.T) {
	logger, path := createTestLogger(t)
	require.NoError(t, logger.Msg("old"))
	require.NoError(t, logger.ClearAll())
	require.NoError(t, logger.Msg("new"))
	assert.Equal(t, []string{"14:07:09 new"}, readLines(t, path))
}

// TestLoggerClose verifies close semantics
func TestLoggerClose(t *testing.T) {
	logger, _ := createTestLogger(t)
	owned := logger.Sink()
	extra := newRecordSink("extra", nil)
	logger.Connect(extra)
	require.NoError(t, logger.Activate())

	require.NoError(t, logger.Close())
	assert.True(t, logger.Closed())
	assert.False(t, logger.IsActive())
	assert.Nil(t, logger.Sink())
	assert.False(t, owned.base().Connected())
	assert.False(t, extra.Connected(), "caller-owned sinks are disconnected, not closed")

	assert.ErrorIs(t, logger.Msg("late"), ErrClosed)
	assert.ErrorIs(t, logger.ApplyConfig(DefaultConfig()), ErrClosed)
	assert.ErrorIs(t, logger.Activate(), ErrClosed)
	assert.NoError(t, logger.Close(), "second close is a no-op")

	// Disabled levels stay silent even when closed
	assert.NoError(t, logger.LogNamed("DEBUG", "quiet"))
}
