package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Giulio2002/reference_sha512/internal/cli"
)

// main delegates argument parsing and command handling to the cli package.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.RunCLI(ctx, os.Args, cli.IO{Stdin: os.Stdin, Stdout: os.Stdout}); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
