// Package cmd implements the CLI command structure for taskdeck.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/avoskin/taskdeck/internal/config"
	"github.com/avoskin/taskdeck/internal/logging"
	"github.com/avoskin/taskdeck/internal/remote"
	"github.com/avoskin/taskdeck/internal/service"
	"github.com/avoskin/taskdeck/internal/store"
	"github.com/avoskin/taskdeck/internal/ui"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Run executes the taskdeck CLI.
func Run(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("taskdeck", flag.ContinueOnError)
	fs.Usage = func() {
		printUsage(fs, os.Stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	cfg, err := config.Load(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if *help {
		printUsage(fs, os.Stdout)
		return nil
	}
	if *showVersion {
		return versionCommand(os.Stdout)
	}

	// Determine the subcommand; bare invocation opens the task list.
	subcommand := "run"
	remainingArgs := fs.Args()
	if len(remainingArgs) > 0 && !strings.HasPrefix(remainingArgs[0], "-") {
		subcommand = remainingArgs[0]
		remainingArgs = remainingArgs[1:]
	}

	switch subcommand {
	case "run":
		return runCommand(ctx, cfg)
	case "config":
		return configCommand(os.Stdout, remainingArgs)
	case "version":
		return versionCommand(os.Stdout)
	case "help":
		printUsage(fs, os.Stdout)
		return nil
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", subcommand)
		printUsage(fs, os.Stderr)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// runCommand wires the store, remote source, and service together and
// hands control to the TUI.
func runCommand(ctx context.Context, cfg *config.Config) error {
	logger := logging.New(os.Stderr, logging.Options{
		Level:           cfg.LogLevel,
		Format:          cfg.LogFormat,
		ReportTimestamp: cfg.LogTimestamps,
		Prefix:          "taskdeck",
	})

	st, err := store.OpenSQLite(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening task database: %w", err)
	}
	defer st.Close()

	var remoteSource service.RemoteSource
	if cfg.ImportOnEmpty {
		client, err := remote.New(cfg.APIBaseURL, &http.Client{Timeout: 30 * time.Second})
		if err != nil {
			return fmt.Errorf("creating remote client: %w", err)
		}
		remoteSource = client
	}

	presenter := ui.NewPresenter()
	svc := service.New(st, remoteSource, presenter,
		service.WithLogger(logger),
		service.WithPlaceholders(ui.TitlePrompt, ui.DescriptionPrompt),
	)
	defer svc.Close()

	return ui.Run(ctx, svc, presenter)
}

// configCommand prints an example config, or writes it with "init".
func configCommand(w io.Writer, args []string) error {
	if len(args) > 0 && args[0] == "init" {
		path := "taskdeck.toml"
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists", path)
		}
		if err := os.WriteFile(path, []byte(config.ExampleConfig()), 0644); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		fmt.Fprintf(w, "Wrote %s\n", path)
		return nil
	}
	fmt.Fprint(w, config.ExampleConfig())
	return nil
}

func versionCommand(w io.Writer) error {
	fmt.Fprintf(w, "taskdeck %s\n", Version)
	return nil
}

func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintf(w, `taskdeck - personal task tracker

Usage:
  taskdeck [flags]           Open the task list
  taskdeck config            Print an example config file
  taskdeck config init       Write taskdeck.toml to the current directory
  taskdeck version           Show version

Flags:
`)
	fs.SetOutput(w)
	fs.PrintDefaults()
}
