// Package main is the entry point for the dequebuf command.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/dshills/dequebuf/internal/cli"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	cli.Version, cli.Commit = version, commit

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return cli.Execute(ctx)
}
