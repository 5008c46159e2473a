// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jeranaias/querydesk-tui/internal/ui/components"
)

const statusTimeout = 5 * time.Second

// StatusReport is the --json output of the status command.
type StatusReport struct {
	Endpoint string `json:"endpoint"`
	Online   bool   `json:"online"`
	Status   string `json:"status,omitempty"`
	Error    string `json:"error,omitempty"`
}

func newStatusCmd(a *app) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Check that the query service is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := a.newClient()
			ctx, cancel := context.WithTimeout(cmd.Context(), statusTimeout)
			defer cancel()

			report := StatusReport{Endpoint: c.BaseURL()}
			status, err := c.Health(ctx)
			if err != nil {
				report.Error = err.Error()
			} else {
				report.Online = true
				report.Status = status
			}

			out := cmd.OutOrStdout()
			if jsonOut {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if err := enc.Encode(report); err != nil {
					return err
				}
			} else {
				theme := themeFor(out, a.flags.noColor)
				if report.Online {
					msg := "Query service is online at " + report.Endpoint
					if report.Status != "" {
						msg += " (" + report.Status + ")"
					}
					fmt.Fprintln(out, components.InlineSuccess(msg, theme))
				} else {
					e := components.ConnectionError(report.Endpoint, report.Error, theme)
					e.SetWidth(terminalWidth(out))
					fmt.Fprintln(out, e.View())
				}
			}

			if !report.Online {
				return errSilent
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print the result as JSON")
	return cmd
}
