// FILE: lixenwraith/ulog/example/gnet/main.go
package main

import (
	"github.com/panjf2000/gnet/v2"

	"github.com/lixenwraith/ulog"
	"github.com/lixenwraith/ulog/compat"
)

// Example gnet event handler
type echoServer struct {
	gnet.BuiltinEventEngine
}

func (es *echoServer) OnBoot(eng gnet.Engine) gnet.Action {
	_ = ulog.Msg("echo server booted")
	return gnet.None
}

func (es *echoServer) OnTraffic(c gnet.Conn) gnet.Action {
	buf, _ := c.Next(-1)
	_ = ulog.LogNamed("TRAFFIC", "echo %d bytes to %S", len(buf), c.RemoteAddr().String())
	_, _ = c.Write(buf)
	return gnet.None
}

func main() {
	logger, err := ulog.NewBuilder().
		Levels("default", "DEBUG", "TRAFFIC").
		Sink("rotating").
		Path("/var/log/gnet/echo.log").
		Rotation(10, 3).
		Activate().
		Build()
	if err != nil {
		panic(err)
	}
	defer logger.Close()

	gnetAdapter := compat.NewGnetAdapter(logger)

	// Configure gnet server with the logger
	err = gnet.Run(
		&echoServer{},
		"tcp://127.0.0.1:9000",
		gnet.WithMulticore(true),
		gnet.WithLogger(gnetAdapter),
		gnet.WithReusePort(true),
	)
	if err != nil {
		panic(err)
	}
}
