// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jeranaias/querydesk-tui/internal/dispatch"
	"github.com/jeranaias/querydesk-tui/internal/export"
	"github.com/jeranaias/querydesk-tui/internal/model"
	"github.com/jeranaias/querydesk-tui/internal/render"
	"github.com/jeranaias/querydesk-tui/internal/ui/components"
)

type askOptions struct {
	json  bool
	exact bool
	// save is an export format; the exchange is written to the working
	// directory when set.
	save string
}

func newAskCmd(a *app) *cobra.Command {
	var opts askOptions

	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask one question and print the answer",
		Example: `  querydesk ask "Show me the top five portfolios by value"
  querydesk ask --json which clients hold RELIANCE`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAsk(cmd, a, strings.Join(args, " "), opts)
		},
	}

	cmd.Flags().BoolVar(&opts.json, "json", false, "Print the answer envelope as JSON")
	cmd.Flags().BoolVar(&opts.exact, "exact", false, "Show exact values beside chart bars")
	cmd.Flags().StringVar(&opts.save, "save", "", "Also save the exchange as md or json")
	return cmd
}

// runAsk runs one dispatcher cycle. An Error answer is printed like any
// other and turns into exit status 1.
func runAsk(cmd *cobra.Command, a *app, question string, opts askOptions) error {
	var exportOpts *export.Options
	var exporter export.Exporter
	if opts.save != "" {
		exportOpts = export.DefaultOptions()
		exportOpts.Locale = a.cfg.UI.LocaleTag()
		e, err := export.ForFormat(opts.save, exportOpts)
		if err != nil {
			return err
		}
		exporter = e
	}

	c := a.newClient()
	d := dispatch.New(c, nil, dispatch.Config{Endpoint: c.BaseURL(), Logger: a.logger})

	msg, ok := d.Ask(cmd.Context(), question)
	if !ok {
		return errors.New("question cannot be empty")
	}

	out := cmd.OutOrStdout()
	if opts.json {
		if err := printEnvelope(out, msg.Response); err != nil {
			return err
		}
	} else {
		view := components.NewPresentationView(render.New(a.cfg.UI.LocaleTag()).Render(msg.Response), themeFor(out, a.flags.noColor))
		view.SetWidth(terminalWidth(out))
		view.ShowExact = opts.exact || a.cfg.UI.ShowExactValues
		view.Markdown = a.cfg.UI.Markdown
		fmt.Fprintln(out, view.View())
	}

	if exporter != nil {
		path, err := export.ExportToFile(d.Conversation().All(), exporter, exportOpts)
		if err != nil {
			return err
		}
		errOut := cmd.ErrOrStderr()
		fmt.Fprintln(errOut, components.InlineInfo("Saved to "+path, themeFor(errOut, a.flags.noColor)))
	}

	if msg.Response.Kind() == model.KindError {
		return errSilent
	}
	return nil
}

func printEnvelope(w io.Writer, resp model.Response) error {
	body, err := model.EncodeResponse(resp)
	if err != nil {
		return fmt.Errorf("failed to encode answer: %w", err)
	}
	_, err = fmt.Fprintln(w, string(body))
	return err
}
