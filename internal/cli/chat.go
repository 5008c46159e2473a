// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jeranaias/querydesk-tui/internal/dispatch"
	"github.com/jeranaias/querydesk-tui/internal/model"
	"github.com/jeranaias/querydesk-tui/internal/render"
	"github.com/jeranaias/querydesk-tui/internal/ui/chat"
)

// ErrNoTerminal is returned when the chat UI is started without a terminal.
var ErrNoTerminal = errors.New("the chat UI needs an interactive terminal; use \"querydesk ask\" instead")

func newChatCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Open the interactive chat (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runChat(cmd, a)
		},
	}
}

// runChat starts the Bubble Tea program and blocks until the user quits.
func runChat(cmd *cobra.Command, a *app) error {
	if !isTerminal(os.Stdin) || !isTerminal(os.Stdout) {
		return ErrNoTerminal
	}

	c := a.newClient()
	d := dispatch.New(c, model.NewConversation(), dispatch.Config{
		Endpoint: c.BaseURL(),
		Logger:   a.logger,
	})

	m := chat.New(themeFor(os.Stdout, a.flags.noColor), chat.Options{
		Dispatcher: d,
		Health:     c,
		Renderer:   render.New(a.cfg.UI.LocaleTag()),
		Examples:   a.cfg.UI.Examples,
		Markdown:   a.cfg.UI.Markdown,
		ShowExact:  a.cfg.UI.ShowExactValues,
		Logger:     a.logger,
		Locale:     a.cfg.UI.LocaleTag(),
		ExportDir:  a.cfg.UI.ExportDir,
	})

	a.logger.Info("chat started", zap.String("endpoint", c.BaseURL()))
	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(cmd.Context()),
	)
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("chat UI failed: %w", err)
	}
	a.logger.Info("chat ended", zap.Int("messages", d.Conversation().Len()))
	return nil
}
