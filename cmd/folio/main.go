// Command folio runs the calculators from a terminal, serves them over HTTP, or
// exposes them to MCP clients on stdio.
package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/tartampluch/go-folio/internal/config"
	"github.com/tartampluch/go-folio/internal/engine"
)

func main() {
	os.Exit(runMain())
}

func runMain() int {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd(engine.RealClock{}).ExecuteContext(ctx); err != nil {
		return config.ExitCodeError
	}
	return config.ExitCodeSuccess
}

// setupLogging sends JSON logs to w. Stdout stays reserved for command output and the
// MCP transport.
func setupLogging(w io.Writer, debugMode bool) {
	level := slog.LevelInfo
	if debugMode {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: debugMode,
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(w, opts)))
}
