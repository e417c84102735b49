// Package main is the entry point for the opsretry CLI.
//
// opsretry runs Hetzner Cloud, object storage and HTTP operations under
// configurable retry profiles with exponential backoff.
//
// Commands: delay, probe, action, key, export, version.
//
// For detailed usage information, run:
//
//	opsretry --help
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/imamik/opsretry/cmd/opsretry/commands"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	commands.SetVersionInfo(version, commit, date)
	if err := commands.Execute(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
