package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/pixijs/extension-scripts/internal/handlers/cli"
)

// Version is set at build time
var Version = "dev"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	rootCmd := cli.NewRootCommand(Version, cli.DefaultDeps())
	code := cli.Execute(ctx, rootCmd, os.Stderr)
	cancel()
	os.Exit(code)
}
