// FILE: lixenwraith/ulog/integration_test.go
package ulog

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestFullLifecycle exercises build, log, reconfigure, clear and close against real files
func TestFullLifecycle(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ui.log")

	logger, err := NewBuilder().
		File(path).
		StampFormat(StampNone).
		SeparatorSecs(SeparatorDisabled).
		Levels("default", "APP_INIT").
		Build()
	require.NoError(t, err)

	mem := MustNewSink(KindMemory, "", WithStampFormat(StampNone), WithShowLevel(true))
	logger.Connect(mem)

	require.NoError(t, logger.LogNamed("APP_INIT", "loaded %d plugins in %.2f s", 3, 0.25))
	require.NoError(t, logger.Warn("low %S", "memory"))
	require.NoError(t, logger.LogNamed("DEBUG", "not enabled"))

	assert.Equal(t, []string{"loaded 3 plugins in 0.25 s", "low memory"}, readLines(t, path))
	assert.Equal(t, []string{"LEVEL(0x9E2C5561) loaded 3 plugins in 0.25 s", "WARNING low memory"},
		mem.(*MemorySink).Lines())

	// Move the owned sink; the caller's sink stays connected
	rotated := filepath.Join(dir, "rot", "ui.log")
	require.NoError(t, logger.ApplyOverride("sink=rotating", "path="+rotated, "max_size_mb=1", "max_backups=2"))
	require.NoError(t, logger.Msg("rotating now"))
	assert.Equal(t, []string{"rotating now"}, readLines(t, rotated))
	assert.Len(t, mem.(*MemorySink).Lines(), 3)

	require.NoError(t, logger.ClearAll())
	assert.Empty(t, mem.(*MemorySink).Lines())

	require.NoError(t, logger.Close())
	assert.False(t, mem.base().Connected())
	require.NoError(t, mem.Close())
}

// TestConcurrentProducers verifies no line is lost or torn with producers on several goroutines
func TestConcurrentProducers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ui.log")
	logger, err := NewBuilder().File(path).StampFormat(StampNone).SeparatorSecs(SeparatorDisabled).Build()
	require.NoError(t, err)
	defer logger.Close()

	const (
		producers = 4
		perWorker = 250
	)

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				assert.NoError(t, logger.Msg("producer %d line %d", p, i))
			}
		}(p)
	}

	// Level edits race with producers
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			logger.ToggleLevel(Hash("DEBUG"), i%2 == 0)
		}
	}()
	wg.Wait()

	require.NoError(t, logger.Sink().(*TextSink).Sync())
	lines := readLines(t, path)
	require.Len(t, lines, producers*perWorker)

	seen := make(map[string]bool, len(lines))
	for _, l := range lines {
		assert.True(t, strings.HasPrefix(l, "_THREAD "), l)
		idx := strings.LastIndex(l, " : ")
		require.Greater(t, idx, 0, l)
		seen[l[idx+3:]] = true
	}
	for p := 0; p < producers; p++ {
		for i := 0; i < perWorker; i++ {
			assert.True(t, seen[fmt.Sprintf("producer %d line %d", p, i)])
		}
	}
}

// TestConcurrentConnect verifies sinks can be connected and disconnected while events flow
func TestConcurrentConnect(t *testing.T) {
	logger := NewLogger()
	stable := newRecordSink("stable", nil)
	logger.Connect(stable)

	const events = 500
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < events; i++ {
			assert.NoError(t, logger.Msg("tick %d", i))
		}
	}()

	for i := 0; i < 50; i++ {
		s := newRecordSink("transient", nil)
		logger.Connect(s)
		logger.Disconnect(s)
	}
	<-done

	assert.Len(t, stable.Events(), events)
	assert.Equal(t, 1, logger.Dispatcher().Len())
}
