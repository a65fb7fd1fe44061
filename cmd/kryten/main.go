// kryten sends a single CyTube command over the message bus: load config,
// connect, publish, confirm, disconnect.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/pflag"

	"github.com/grobertson/kryten-cli/pkg/config"
	"github.com/grobertson/kryten-cli/pkg/dispatch"
	"github.com/grobertson/kryten-cli/pkg/pubsub"
)

const exitInterrupted = 130

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	flags := pflag.NewFlagSet("kryten", pflag.ContinueOnError)
	configPath := flags.String("config", config.DefaultPath, "path to configuration file")
	channelOverride := flags.String("channel", "", "override channel from config")
	verbose := flags.BoolP("verbose", "v", false, "enable debug logging")
	flags.Usage = func() { printUsage(os.Stderr) }

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	rest := flags.Args()
	if len(rest) == 0 {
		printUsage(os.Stderr)
		return 1
	}

	cmd, err := parseCommand(rest)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if errors.Is(err, config.ErrNotFound) {
			fmt.Fprintln(os.Stderr, "Create a config.json file with bus and CyTube settings.")
		}
		return 1
	}

	target := cfg.Channels[0]
	if *channelOverride != "" {
		target.Channel = *channelOverride
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	session, err := pubsub.Connect(ctx, cfg.Bus, logger)
	if err != nil {
		if ctx.Err() != nil {
			fmt.Fprintln(os.Stderr, "\nAborted.")
			return exitInterrupted
		}
		fmt.Fprintf(os.Stderr, "Error: failed to connect: %v\n", err)
		return 1
	}
	defer session.Disconnect()

	summary, err := dispatch.New(session, logger).Execute(ctx, cmd, target)
	if err != nil {
		if ctx.Err() != nil {
			fmt.Fprintln(os.Stderr, "\nAborted.")
			return exitInterrupted
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	fmt.Println("✓ " + summary)
	return 0
}
