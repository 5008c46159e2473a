// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/querydesk-tui/internal/ui/components"
	"github.com/jeranaias/querydesk-tui/internal/util"
)

// =============================================================================
// MAIN RENDER
// =============================================================================

// renderChat assembles header, transcript, thinking line, input and status bar.
func (m Model) renderChat() string {
	width := m.width
	if width == 0 {
		width = 80
	}

	var body string
	switch {
	case m.showHelp:
		body = m.renderHelp()
	case m.dispatcher.Conversation().IsEmpty():
		body = m.welcome.View()
	default:
		body = m.viewport.View()
	}

	parts := []string{
		m.renderHeader(width),
		body,
		m.renderThinking(width),
		m.renderInput(width),
		m.renderStatusBar(width),
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// =============================================================================
// SECTIONS
// =============================================================================

func (m Model) renderHeader(width int) string {
	title := m.theme.HeaderTitle.Render("QueryDesk")
	subtitle := ""
	if ep := m.dispatcher.Endpoint(); ep != "" {
		subtitle = m.theme.HeaderSubtitle.Render(" " + util.TruncateWidth(ep, maxInt(width-16, 10)))
	}
	return m.theme.Header.Width(width).Render(title + subtitle)
}

// renderThinking always takes one line so the layout does not jump. When
// idle it shows the latest notice.
// renderHelp takes the transcript's place while f1 is toggled on.
func (m Model) renderHelp() string {
	title := m.theme.WelcomeTitle.Render("Keys")
	panel := m.help.FullHelpView(m.keyMap.FullHelp())
	return m.theme.NewStyle().
		Height(maxInt(m.viewport.Height, 1)).
		Padding(1, 2).
		Render(title + "\n\n" + panel)
}

func (m Model) renderThinking(width int) string {
	line := ""
	switch {
	case m.Busy():
		line = m.thinking.View()
	case m.notice != "":
		line = m.theme.Hint.Render(util.TruncateWidth(m.notice, maxInt(width-2, 10)))
	}
	return m.theme.NewStyle().Width(width).PaddingLeft(1).Render(line)
}

func (m Model) renderInput(width int) string {
	var line string
	if m.Busy() {
		line = m.theme.InputDisabled.Render("Waiting for the answer...")
	} else {
		line = m.input.View()
	}
	return m.theme.InputContainer.Width(width).Render(line)
}

func (m Model) renderStatusBar(width int) string {
	bar := components.NewStatusBar(m.theme)
	bar.SetWidth(width)
	bar.Endpoint = m.dispatcher.Endpoint()
	bar.Health = m.healthState
	bar.MessageCount = m.dispatcher.Conversation().Len()
	bar.Busy = m.Busy()
	bar.ShowExact = m.showExact
	bar.Shortcuts = shortcuts(m.keyMap.ShortHelp())
	if m.showingExamples() {
		bar.Shortcuts = append(shortcuts([]key.Binding{m.keyMap.NextExample}), bar.Shortcuts...)
	}
	return strings.TrimRight(bar.View(), "\n")
}
