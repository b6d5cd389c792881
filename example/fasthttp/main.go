// FILE: lixenwraith/ulog/example/fasthttp/main.go
package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/lixenwraith/ulog"
	"github.com/lixenwraith/ulog/compat"
)

var levelRequest = ulog.Hash("REQUEST")

func main() {
	logger, err := ulog.NewBuilder().
		Levels("default", "REQUEST").
		File("/var/log/fasthttp/server.log").
		StampFormat(ulog.StampDate | ulog.StampTime | ulog.StampMillis).
		Build()
	if err != nil {
		panic(err)
	}
	defer logger.Close()

	// Mirror events into a zap pipeline
	zl, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	builder := compat.NewBuilder().WithLogger(logger)
	zs, err := builder.ConnectZap(zl)
	if err != nil {
		panic(err)
	}
	defer zs.Close()

	// Create fasthttp adapter with custom level detection
	fasthttpAdapter, err := builder.BuildFastHTTP(
		compat.WithDefaultLevel(ulog.LevelMsg),
		compat.WithLevelDetector(customLevelDetector),
	)
	if err != nil {
		panic(err)
	}

	server := &fasthttp.Server{
		Handler: func(ctx *fasthttp.RequestCtx) {
			requestHandler(logger, ctx)
		},
		Logger: fasthttpAdapter,

		Name:              "MyServer",
		Concurrency:       fasthttp.DefaultConcurrency,
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
		TCPKeepalive:      true,
		ReduceMemoryUsage: true,
	}

	fmt.Println("Starting server on :8080")
	if err := server.ListenAndServe(":8080"); err != nil {
		panic(err)
	}
}

func requestHandler(logger *ulog.Logger, ctx *fasthttp.RequestCtx) {
	ctx.SetContentType("text/plain")
	fmt.Fprintf(ctx, "Hello, world! Path: %s\n", ctx.Path())
	_ = logger.Log(levelRequest, "%S %S -> %d", string(ctx.Method()), string(ctx.Path()), ctx.Response.StatusCode())
}

func customLevelDetector(msg string) ulog.LogLevel {
	if strings.Contains(msg, "connection cannot be served") {
		return ulog.LevelWarning
	}
	if strings.Contains(msg, "error when serving connection") {
		return ulog.LevelError
	}

	// Use default detection
	return compat.DetectLogLevel(msg)
}
