// FILE: lixenwraith/ulog/cmd/ulogdemo/main.go
package main

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/lixenwraith/ulog"
)

// Levels the demo mints on top of the base set
var (
	levelAppInit = ulog.Hash("APP_INIT")
	levelUserCmd = ulog.Hash("USER_CMD")
)

const usage = `usage: ulogdemo [config.toml] [key=value ...]

Loads the [ulog] table of the optional TOML file, applies key=value overrides
(e.g. sink=file path=./demo.log levels=default,APP_INIT,USER_CMD) and logs a
short session from the main goroutine and two workers.
`

func main() {
	var (
		cfgPath   string
		overrides []string
	)
	for _, arg := range os.Args[1:] {
		switch {
		case arg == "-h" || arg == "--help":
			fmt.Print(usage)
			return
		case strings.Contains(arg, "="):
			overrides = append(overrides, arg)
		default:
			cfgPath = arg
		}
	}

	cfg := ulog.DefaultConfig()
	cfg.Sink = "console"
	cfg.Levels = "default,APP_INIT,USER_CMD"
	if cfgPath != "" {
		loaded, err := ulog.NewConfigFromFile(cfgPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "config: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	logger, err := ulog.NewBuilder().Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Close()

	if err := logger.ApplyConfig(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	if len(overrides) > 0 {
		if err := logger.ApplyOverride(overrides...); err != nil {
			fmt.Fprintf(os.Stderr, "override: %v\n", err)
			os.Exit(1)
		}
	}
	if err := logger.Activate(); err != nil {
		fmt.Fprintf(os.Stderr, "activate: %v\n", err)
		os.Exit(1)
	}

	start := time.Now()
	_ = ulog.Log(levelAppInit, "ulogdemo starting with %d override(s)", len(overrides))

	// Workers log from their own goroutines; their lines carry a _THREAD marker
	var wg sync.WaitGroup
	for w := 1; w <= 2; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 3; i++ {
				_ = ulog.Log(levelUserCmd, "worker %d handled command %d", w, i)
			}
		}(w)
	}
	wg.Wait()

	_ = ulog.Warn("cache at %.1f percent", 87.5)
	_ = ulog.LogNamed("DEBUG", "only visible with levels=default,DEBUG")

	// A bad template is reported, never printed
	if err := ulog.Msg("%d items", "three"); err != nil {
		fmt.Fprintf(os.Stderr, "format error caught: %v\n", err)
	}

	// An idle gap longer than separator_secs produces a dash line
	if cfgSep := logger.GetConfig().SeparatorSecs; cfgSep > 0 && cfgSep < 3 {
		time.Sleep(time.Duration(cfgSep*float64(time.Second)) + 500*time.Millisecond)
	}
	_ = ulog.Msg("started in %.3f secs", time.Since(start).Seconds())
}
