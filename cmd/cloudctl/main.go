package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"TeleCloud/internal/cli/commands"
	"TeleCloud/internal/config"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

func main() {
	// Load unified config (env + flags)
	cfg := config.NewConfig()

	if cfg.Version {
		printVersion()
		return
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	exitCode := commands.Dispatch(ctx, cfg, flag.Args(), os.Stdout)
	if exitCode == commands.ExitOK {
		return
	}
	os.Exit(exitCode)
}

func printVersion() {
	fmt.Printf("TeleCloud cloudctl\nVersion: %s\nBuild date: %s\n", version, buildDate)
}
