// Package main runs the backend against a terminal host with a small
// scripted chat engine, for development without the real engine or the
// legacy machine.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/hferr/stencil/internal/app"
	"github.com/hferr/stencil/internal/raster/term"
)

func main() {
	os.Exit(run())
}

func run() int {
	opts, logPath := parseFlags()

	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: open log file: %v\n", err)
			return 1
		}
		defer f.Close()
		opts.LogOutput = f
	}

	host, err := term.NewHost(opts.Width, opts.Height)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create terminal host: %v\n", err)
		return 1
	}
	defer host.Fini()
	host.SetStatus(" stencil — type to chat, Enter sends, Ctrl+C/V copy/paste, Ctrl+Q quits")

	eng := newChatEngine(opts.Width, opts.Height)

	loop, err := app.New(eng, host, host, host, opts)
	if err != nil {
		host.Fini()
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-signals
		host.Interrupt()
	}()

	if err := loop.Run(); err != nil {
		host.Fini()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func parseFlags() (app.Options, string) {
	var (
		width   = flag.Int("width", 80, "surface width in pixels")
		height  = flag.Int("height", 23, "surface height in pixels")
		logPath = flag.String("log", "", "log file path (logging disabled when empty)")
		level   = flag.String("log-level", "info", "log level: debug, info, warn, error")
	)
	flag.Parse()

	return app.Options{
		Width:         *width,
		Height:        *height,
		LogLevel:      *level,
		CtrlIsCommand: true,
	}, *logPath
}
