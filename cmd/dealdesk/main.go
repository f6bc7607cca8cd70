// Copyright 2026 The DealDesk Authors
// SPDX-License-Identifier: Apache-2.0

// dealdesk is the terminal dashboard for a lending deal pipeline: a
// five-lane kanban board over the deal API with filtering, keyboard
// stage moves, and a per-deal detail view.
//
// Connection settings come from a YAML config file (base URL and API
// token), with DEALDESK_BASE_URL / DEALDESK_TOKEN environment
// overrides so the token can stay out of the file. The theme
// preference persists across sessions in the user config directory.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dealdesk-io/dealdesk/lib/api"
	"github.com/dealdesk-io/dealdesk/lib/clock"
	"github.com/dealdesk-io/dealdesk/lib/config"
	"github.com/dealdesk-io/dealdesk/lib/dealui"
	"github.com/dealdesk-io/dealdesk/lib/settings"
	"github.com/dealdesk-io/dealdesk/lib/version"
)

func main() {
	if err := run(); err != nil {
		if coder, ok := err.(interface{ ExitCode() int }); ok {
			os.Exit(coder.ExitCode())
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var configPath string
	var logOutput string
	var themeFlag string

	flagSet := pflag.NewFlagSet("dealdesk", pflag.ContinueOnError)
	flagSet.StringVar(&configPath, "config", "", "path to the config file (default: $DEALDESK_CONFIG)")
	flagSet.StringVar(&logOutput, "log-output", "", "write JSON log records to this file")
	flagSet.StringVar(&themeFlag, "theme", "", "force the color theme for this session (light or dark)")
	flagSet.BoolP("help", "h", false, "show help")

	if len(os.Args) > 1 && os.Args[1] == "--version" {
		fmt.Println("dealdesk " + version.Info())
		return nil
	}

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			printHelp(flagSet)
			return nil
		}
		return err
	}
	if help, _ := flagSet.GetBool("help"); help {
		printHelp(flagSet)
		return nil
	}
	if args := flagSet.Args(); len(args) > 0 {
		return fmt.Errorf("unexpected argument: %s", args[0])
	}

	conf, err := config.Load(configPath)
	if err != nil {
		return err
	}

	// Logging must not write to stderr while the alt screen is up;
	// records go to the optional file, or nowhere.
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if logOutput != "" {
		logFile, err := os.OpenFile(logOutput, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log output: %w", err)
		}
		defer logFile.Close()
		logger = slog.New(slog.NewJSONHandler(logFile, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	client, err := api.NewClient(api.Config{
		BaseURL: conf.BaseURL,
		Token:   conf.Token,
		Logger:  logger,
	})
	if err != nil {
		return err
	}

	settingsPath, err := settings.DefaultPath()
	if err != nil {
		return err
	}
	store, err := settings.Open(settingsPath)
	if err != nil {
		return err
	}

	themeName := store.Theme()
	switch themeFlag {
	case "":
	case "light":
		themeName = settings.ThemeLight
	case "dark":
		themeName = settings.ThemeDark
	default:
		return fmt.Errorf("unknown theme %q (want light or dark)", themeFlag)
	}

	model := dealui.NewModel(dealui.Config{
		Client:   client,
		Clock:    clock.Real(),
		Logger:   logger,
		Settings: store,
		Theme:    dealui.ThemeFor(themeName),
	})

	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err = program.Run()
	return err
}

func printHelp(flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `DealDesk — interactive terminal dashboard for the lending pipeline.

Reads connection settings from a YAML config file with base_url and
token keys. The file location comes from --config or the
DEALDESK_CONFIG environment variable; DEALDESK_BASE_URL and
DEALDESK_TOKEN override individual values.

Usage:
  dealdesk [flags]

Examples:
  # Open the dashboard
  DEALDESK_CONFIG=~/.config/dealdesk/config.yaml dealdesk

  # Force the light theme and capture logs
  dealdesk --config ./dealdesk.yaml --theme light --log-output /tmp/dealdesk.log

Flags:
`)
	flagSet.SetOutput(os.Stderr)
	flagSet.PrintDefaults()
}
