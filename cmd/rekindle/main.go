// Package main provides the entry point for the rekindle CLI.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rekindle-bot/rekindle/internal/cli"
)

// Build information set via ldflags.
var (
	version = "" //nolint:gochecknoglobals // set by -ldflags
	commit  = "" //nolint:gochecknoglobals // set by -ldflags
	date    = "" //nolint:gochecknoglobals // set by -ldflags
)

func main() {
	ctx := context.Background()

	err := cli.Execute(ctx, cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	os.Exit(cli.ExitCodeForError(err))
}
