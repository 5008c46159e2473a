// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jeranaias/querydesk-tui/internal/server"
)

func newServeCmd(a *app) *cobra.Command {
	var (
		addr  string
		delay time.Duration
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the demo query service",
		Long: `Run a query service over built-in wealth-management data.

It answers POST /api/query the way a real service does, so the chat can be
tried without one.`,
		Args: cobra.NoArgs,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			a.logStderr = true
			return a.load()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			sc := a.cfg.Server
			if addr != "" {
				sc.Addr = addr
			}

			answerer := server.NewFixtureAnswerer()
			answerer.Delay = delay

			srv := server.New(server.Config{
				Addr:        sc.Addr,
				RateLimit:   sc.RateLimit,
				Burst:       sc.Burst,
				CORSOrigins: sc.CORSOrigins,
				Logger:      a.logger.Named("server"),
			}, answerer)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			fmt.Fprintf(cmd.OutOrStdout(), "Serving demo data on http://%s (ctrl+c to stop)\n", sc.Addr)
			if err := srv.Run(ctx); err != nil {
				a.logger.Error("server failed", zap.Error(err))
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config)")
	cmd.Flags().DurationVar(&delay, "delay", 0, "Simulated answer latency, e.g. 1s")
	return cmd
}
