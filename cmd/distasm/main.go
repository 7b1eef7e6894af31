// Package main is the entry point for the distasm CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/donaldgifford/distasm/cmd"
)

// Build-time variables set via ldflags.
var (
	version = "dev"
	commit  = "none"
)

func main() {
	cmd.SetVersionInfo(version, commit)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	code := cmd.Report(cmd.ExecuteContext(ctx))

	stop()
	os.Exit(code)
}
