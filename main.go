package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/dalmo1991/dummy-package-dalmo/commands"
)

// This variable is set at build time using -ldflags parameters. For example:
//
// go build -ldflags "-X main.VERSION=$TAG"
var VERSION string

// main runs the CLI with the build-time VERSION. Interrupting a run skips the cases that have not started yet.
// Any error, including a failing case, exits with a non-zero status.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	app := commands.CreateCli(VERSION)
	err := app.Run(ctx, os.Args)
	if err != nil {
		fmt.Fprintln(os.Stderr, commands.FormatError(err))
		stop()
		os.Exit(1)
	}
}
