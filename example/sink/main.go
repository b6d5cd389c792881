// FILE: lixenwraith/ulog/example/sink/main.go
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/lixenwraith/ulog"
)

const (
	logDirectory = "./temp_logs"
	logInterval  = 200 * time.Millisecond
)

// main runs each sink kind in isolation, then a UI-style memory sink fed through a home loop
func main() {
	if err := os.RemoveAll(logDirectory); err != nil {
		fmt.Printf("Warning: could not remove old log directory: %v\n", err)
	}

	fmt.Println("--- Running Sink Scenarios ---")
	fmt.Printf("! All file-based logs will be in the '%s' directory.\n\n", logDirectory)

	fmt.Println("--- SCENARIO 1: one logger per sink kind ---")
	runTestPhase("1.1: File", "sink=file", "path="+filepath.Join(logDirectory, "file.log"))
	runTestPhase("1.2: Stdout", "sink=console")
	runTestPhase("1.3: Stderr", "sink=console", "console_target=stderr", "show_level=true")
	runTestPhase("1.4: Rotating", "sink=rotating", "path="+filepath.Join(logDirectory, "rotating.log"), "max_size_mb=1")
	runTestPhase("1.5: None (events are dropped)", "sink=none")

	fmt.Println("\n--- SCENARIO 2: memory sink owned by a home loop ---")
	runHomeLoop()

	fmt.Println("\n--- Sink Scenarios Complete ---")
}

// runTestPhase builds a logger from overrides and logs a small session
func runTestPhase(phaseName string, overrides ...string) {
	fmt.Printf("\n[Phase %s]\n", phaseName)
	fmt.Println("  Config:", overrides)

	logger, err := ulog.NewBuilder().Override(overrides...).SeparatorSecs(0.1).Build()
	if err != nil {
		fmt.Printf("  ERROR: Failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		if err := logger.Close(); err != nil {
			fmt.Printf("  WARNING: Close error in phase '%s': %v\n", phaseName, err)
		}
	}()

	_ = logger.Msg("start phase %S", phaseName)
	time.Sleep(logInterval)
	_ = logger.Warn("multi-line\nmessage stays on one line")
	_ = logger.Msg("end phase %S", phaseName)
}

// runHomeLoop simulates a UI thread: a memory sink created on the loop goroutine renders
// its own events inline and receives worker events through a posted queue
func runHomeLoop() {
	logger := ulog.NewLogger()
	defer logger.Close()

	queue := make(chan func(), 64)
	poster := func(fn func()) { queue <- fn }

	mem := ulog.MustNewSink(ulog.KindMemory, "",
		ulog.WithPoster(poster),
		ulog.WithMaxLines(100),
		ulog.WithStampFormat(ulog.StampDefault),
	).(*ulog.MemorySink)
	logger.Connect(mem)

	var wg sync.WaitGroup
	for w := 1; w <= 3; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			_ = logger.Msg("worker %d reporting", w)
		}(w)
	}
	_ = logger.Msg("home loop running")

	// Drain posted work on the home goroutine until all workers are done
	workersDone := make(chan struct{})
	go func() {
		wg.Wait()
		close(workersDone)
	}()
	for {
		select {
		case fn := <-queue:
			fn()
			continue
		case <-workersDone:
		}
		break
	}
	for len(queue) > 0 {
		(<-queue)()
	}

	for _, line := range mem.Lines() {
		fmt.Println("  " + line)
	}
	logger.Disconnect(mem)
	_ = mem.Close()
}
