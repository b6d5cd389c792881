// FILE: lixenwraith/ulog/cmd/reconfig/main.go
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/ulog"
)

// Swap the owned sink rapidly while a producer logs, then verify nothing was lost
func main() {
	var attempted, failed atomic.Int64

	dir, err := os.MkdirTemp("", "ulog-reconfig-")
	if err != nil {
		fmt.Printf("temp dir error: %v\n", err)
		return
	}
	defer os.RemoveAll(dir)

	logger, err := ulog.NewBuilder().
		File(filepath.Join(dir, "gen-0.log")).
		StampFormat(ulog.StampNone).
		SeparatorSecs(ulog.SeparatorDisabled).
		Activate().
		Build()
	if err != nil {
		fmt.Printf("Initial build error: %v\n", err)
		return
	}

	done := make(chan struct{})
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		for i := 0; ; i++ {
			select {
			case <-done:
				return
			default:
			}
			attempted.Add(1)
			if err := ulog.Msg("test log %d", i); err != nil {
				failed.Add(1)
			}
			time.Sleep(time.Millisecond)
		}
	}()

	// Each override replaces the owned file sink
	for i := 1; i <= 10; i++ {
		if err := logger.ApplyOverride(fmt.Sprintf("path=%s", filepath.Join(dir, fmt.Sprintf("gen-%d.log", i)))); err != nil {
			fmt.Printf("Override error: %v\n", err)
		}
		time.Sleep(10 * time.Millisecond)
	}

	time.Sleep(100 * time.Millisecond)
	close(done)
	<-stopped

	if err := logger.Close(); err != nil {
		fmt.Printf("Close error: %v\n", err)
	}

	var written int
	entries, _ := os.ReadDir(dir)
	for _, e := range entries {
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			continue
		}
		for _, b := range data {
			if b == '\n' {
				written++
			}
		}
	}

	fmt.Printf("Total logs attempted: %d, failed: %d, written across %d files: %d\n",
		attempted.Load(), failed.Load(), len(entries), written)
}
