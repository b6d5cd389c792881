// FILE: lixenwraith/ulog/cmd/stress/main.go
package main

import (
	"bufio"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"strings"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/lixenwraith/ulog"
)

const (
	totalBursts    = 100
	logsPerBurst   = 500
	maxMessageSize = 2000
	numWorkers     = 64
)

const configFile = "stress_config.toml"

// Example TOML content for stress test
var tomlContent = `
# Example stress_config.toml
[ulog]
  levels = "default,DEBUG"
  sink = "file"
  path = "./logs/stress.log"
  stamp_format = "date,time,us"
  separator_secs = -1.0
  show_level = true
`

var levels = []ulog.LogLevel{
	ulog.Hash("DEBUG"),
	ulog.LevelMsg,
	ulog.LevelWarning,
	ulog.LevelError,
}

var logger *ulog.Logger

func generateRandomMessage(size int) string {
	const chars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789 "
	var sb strings.Builder
	sb.Grow(size)
	for i := 0; i < size; i++ {
		sb.WriteByte(chars[rand.Intn(len(chars))])
	}
	return sb.String()
}

// logBurst simulates a burst of logging activity
func logBurst(burstID int, failures *atomic.Int64) {
	for i := 0; i < logsPerBurst; i++ {
		level := levels[rand.Intn(len(levels))]
		msg := generateRandomMessage(rand.Intn(maxMessageSize) + 10)
		err := logger.Log(level, "wkr=%d bst=%d seq=%d rnd=%d %S", burstID%numWorkers, burstID, i, rand.Int63(), msg)
		if err != nil {
			failures.Add(1)
		}
	}
}

// worker goroutine function
func worker(burstChan chan int, wg *sync.WaitGroup, completedBursts, failures *atomic.Int64) {
	defer wg.Done()
	for burstID := range burstChan {
		logBurst(burstID, failures)
		completed := completedBursts.Add(1)
		if completed%10 == 0 || completed == totalBursts {
			fmt.Printf("\rProgress: %d/%d bursts completed", completed, totalBursts)
		}
	}
}

// countLines counts the event lines of the log file
func countLines(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	n := 0
	for sc.Scan() {
		n++
	}
	return n, sc.Err()
}

func main() {
	fmt.Println("--- Logger Stress Test ---")

	if err := os.WriteFile(configFile, []byte(tomlContent), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write dummy config: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Created dummy config file: %s\n", configFile)

	cfg, err := ulog.NewConfigFromFile(configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger = ulog.NewLogger()
	if err := logger.ApplyConfig(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Logger initialized. Logs will be written to: %s\n", cfg.Path)
	fmt.Printf("Starting stress test: %d workers, %d bursts, %d logs/burst.\n",
		numWorkers, totalBursts, logsPerBurst)
	fmt.Println("Press Ctrl+C to stop early.")

	burstChan := make(chan int, numWorkers)
	var wg sync.WaitGroup
	var completedBursts, failures atomic.Int64
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	stopChan := make(chan struct{})

	go func() {
		<-sigChan
		fmt.Println("\n[Signal Received] Stopping burst generation...")
		close(stopChan)
	}()

	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go worker(burstChan, &wg, &completedBursts, &failures)
	}

	startTime := time.Now()
submit:
	for i := 1; i <= totalBursts; i++ {
		select {
		case burstChan <- i:
		case <-stopChan:
			fmt.Println("[Signal Received] Halting burst submission.")
			break submit
		}
	}
	close(burstChan)

	fmt.Println("\nWaiting for workers to finish...")
	wg.Wait()
	duration := time.Since(startTime)
	finalCompleted := completedBursts.Load()

	fmt.Printf("\n--- Test Finished ---")
	fmt.Printf("\nCompleted %d/%d bursts in %v\n", finalCompleted, totalBursts, duration.Round(time.Millisecond))
	if finalCompleted > 0 && duration.Seconds() > 0 {
		logsPerSec := float64(finalCompleted*logsPerBurst) / duration.Seconds()
		fmt.Printf("Approximate Logs/sec: %.2f\n", logsPerSec)
	}

	// Calls are synchronous: every enabled event is on disk once Close returns
	if err := logger.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Logger close error: %v\n", err)
	}

	expected := int(finalCompleted) * logsPerBurst
	got, err := countLines(cfg.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read log file: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Lines written: %d, expected: %d, failed calls: %d\n", got, expected, failures.Load())
	if got != expected {
		os.Exit(1)
	}
}
