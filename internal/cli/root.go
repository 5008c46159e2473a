// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jeranaias/querydesk-tui/internal/client"
	"github.com/jeranaias/querydesk-tui/internal/config"
	"github.com/jeranaias/querydesk-tui/internal/logging"
	"github.com/jeranaias/querydesk-tui/internal/ui/components"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// errSilent makes Execute exit non-zero without printing anything more; the
// command has already reported the problem.
var errSilent = errors.New("silent failure")

// =============================================================================
// APP STATE
// =============================================================================

// globalFlags are the persistent flags shared by every command.
type globalFlags struct {
	configPath string
	endpoint   string
	verbose    bool
	noColor    bool
}

// app carries what PersistentPreRunE builds for the subcommands.
type app struct {
	flags  globalFlags
	cfg    *config.Config
	logger *zap.Logger
	// logStderr is set by commands whose logs belong on the terminal.
	logStderr bool
	// newLogger defaults to logging.New.
	newLogger func(logging.Options) (*zap.Logger, error)
}

// newClient builds a query service client from the loaded config.
func (a *app) newClient() *client.Client {
	return client.NewClientWithConfig(&client.ClientConfig{
		BaseURL:   a.cfg.Service.Endpoint,
		Timeout:   a.cfg.Service.Timeout,
		UserAgent: a.cfg.Service.UserAgent + "/" + Version,
		Logger:    a.logger,
	})
}

// load reads the config, applies the --endpoint override and builds the
// logger.
func (a *app) load() error {
	cfg, err := config.Load(a.flags.configPath)
	if err != nil {
		return err
	}
	if a.flags.endpoint != "" {
		cfg.Service.Endpoint = a.flags.endpoint
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid --endpoint: %w", err)
		}
	}

	build := a.newLogger
	if build == nil {
		build = logging.New
	}
	logger, err := build(logging.Options{
		Path:    cfg.Log.Path,
		Level:   cfg.Log.Level,
		Verbose: a.flags.verbose,
		Stderr:  a.logStderr,
	})
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = logger
	return nil
}

// syncLogger flushes the logger if load got far enough to build one.
func (a *app) syncLogger() {
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

// =============================================================================
// ROOT COMMAND
// =============================================================================

// newRootCmd builds the command tree over a.
func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "querydesk",
		Short: "Ask questions about your data from the terminal",
		Long: `querydesk is a terminal chat client for a natural-language query service.

Questions are sent to <endpoint>/api/query and answers come back as text,
tables or bar charts. Run "querydesk serve" to start a demo service.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return a.load()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runChat(cmd, a)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.flags.configPath, "config", "", "Config file (default ~/.querydesk/config.toml)")
	pf.StringVarP(&a.flags.endpoint, "endpoint", "e", "", "Query service base URL")
	pf.BoolVarP(&a.flags.verbose, "verbose", "v", false, "Enable debug logging")
	pf.BoolVar(&a.flags.noColor, "no-color", false, "Disable colored output")

	root.AddCommand(
		newChatCmd(a),
		newAskCmd(a),
		newServeCmd(a),
		newStatusCmd(a),
		newConfigCmd(a),
		newVersionCmd(),
	)
	return root
}

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	return execute(context.Background(), os.Args[1:], os.Stdout, os.Stderr)
}

func execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	return executeApp(ctx, &app{}, args, stdout, stderr)
}

// executeApp runs the command tree over a. The logger is flushed whether or
// not the command succeeds.
func executeApp(ctx context.Context, a *app, args []string, stdout, stderr io.Writer) int {
	defer a.syncLogger()

	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errSilent) {
			noColor, _ := root.PersistentFlags().GetBool("no-color")
			fmt.Fprintln(stderr, components.InlineError("Error: "+err.Error(), themeFor(stderr, noColor)))
		}
		return 1
	}
	return 0
}
