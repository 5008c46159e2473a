// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jeranaias/querydesk-tui/internal/client"
	"github.com/jeranaias/querydesk-tui/internal/dispatch"
	"github.com/jeranaias/querydesk-tui/internal/export"
	"github.com/jeranaias/querydesk-tui/internal/model"
	"github.com/jeranaias/querydesk-tui/internal/ui/components"
)

// healthTimeout bounds a single health check.
const healthTimeout = 5 * time.Second

// Layout rows outside the viewport: header, thinking line, input
// (border + line) and status bar.
const (
	headerHeight    = 1
	thinkingHeight  = 1
	inputAreaHeight = 2
	statusBarHeight = 1
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case QueryResultMsg:
		return m.handleQueryResult(msg)

	case HealthMsg:
		return m.handleHealth(msg)

	case ExportedMsg:
		return m.handleExported(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.thinking, cmd = m.thinking.Update(msg)
		return m, cmd
	}

	// Cursor blink and anything else the input understands.
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// =============================================================================
// MESSAGE HANDLERS
// =============================================================================

func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.theme.SetSize(m.width, m.height)

	reserved := headerHeight + thinkingHeight + inputAreaHeight + statusBarHeight
	m.viewport.Width = maxInt(m.width, 1)
	m.viewport.Height = maxInt(m.height-reserved, 1)
	m.welcome.SetSize(m.viewport.Width, m.viewport.Height)
	m.help.Width = m.viewport.Width

	// Prompt "> " plus the container's padding.
	m.input.Width = maxInt(m.width-6, 10)

	m.refreshViewport()
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keyMap.Help):
		m.showHelp = !m.showHelp
		return m, nil

	case key.Matches(msg, m.keyMap.ToggleExact):
		m.showExact = !m.showExact
		m.refreshViewport()
		return m, nil

	case key.Matches(msg, m.keyMap.Save):
		if m.dispatcher.Conversation().IsEmpty() {
			m.notice = "Nothing to save yet"
			return m, nil
		}
		return m, exportCmd(m.dispatcher.Conversation().All(), m.exportOptions())

	case key.Matches(msg, m.keyMap.PageUp):
		m.viewport.ViewUp()
		return m, nil

	case key.Matches(msg, m.keyMap.PageDown):
		m.viewport.ViewDown()
		return m, nil
	}

	// The input is disabled while a question is in flight.
	if m.Busy() {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keyMap.NextExample):
		if m.showingExamples() {
			m.welcome.Next()
		}
		return m, nil

	case key.Matches(msg, m.keyMap.PrevExample):
		if m.showingExamples() {
			m.welcome.Prev()
		}
		return m, nil

	case key.Matches(msg, m.keyMap.Submit):
		if strings.TrimSpace(m.input.Value()) == "" && m.showingExamples() {
			if ex, ok := m.welcome.SelectedExample(); ok {
				return m.submitExample(ex)
			}
		}
		return m.submitDraft()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleQueryResult(msg QueryResultMsg) (tea.Model, tea.Cmd) {
	if _, ok := m.dispatcher.Resolve(msg.Result); !ok {
		return m, nil
	}

	m.thinking.Stop()
	switch {
	case msg.Result.Err == nil:
		m.healthState = components.HealthOnline
	case client.IsUnreachable(msg.Result.Err):
		m.healthState = components.HealthOffline
	}

	m.refreshViewport()
	return m, m.input.Focus()
}

func (m Model) handleHealth(msg HealthMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.healthState = components.HealthOffline
		m.logger.Debug("health check failed", zap.Error(msg.Err))
	} else {
		m.healthState = components.HealthOnline
	}
	return m, nil
}

func (m Model) handleExported(msg ExportedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.notice = "Could not save transcript: " + msg.Err.Error()
		m.logger.Warn("transcript export failed", zap.Error(msg.Err))
		return m, nil
	}
	m.notice = "Saved transcript to " + msg.Path
	m.logger.Info("transcript exported", zap.String("path", msg.Path))
	return m, nil
}

// =============================================================================
// SUBMISSION
// =============================================================================

// submitDraft asks the current draft.
func (m Model) submitDraft() (tea.Model, tea.Cmd) {
	return m.submit(m.input.Value())
}

// submitExample puts an example in the draft and asks it straight away.
func (m Model) submitExample(text string) (tea.Model, tea.Cmd) {
	m.input.SetValue(text)
	return m.submit(text)
}

func (m Model) submit(question string) (tea.Model, tea.Cmd) {
	cycle, ok := m.dispatcher.Submit(question)
	if !ok {
		return m, nil
	}

	m.logger.Debug("question submitted", zap.String("cycle_id", cycle.ID))
	m.notice = ""
	m.input.Reset()
	m.input.Blur()
	m.refreshViewport()

	return m, tea.Batch(runCycleCmd(cycle), m.thinking.Start())
}

// =============================================================================
// COMMANDS
// =============================================================================

// runCycleCmd performs the remote call off the update loop.
func runCycleCmd(cycle *dispatch.Cycle) tea.Cmd {
	return func() tea.Msg {
		return QueryResultMsg{Result: cycle.Run(context.Background())}
	}
}

// exportCmd writes msgs as Markdown off the update loop.
func exportCmd(msgs []model.Message, opts *export.Options) tea.Cmd {
	return func() tea.Msg {
		path, err := export.ExportToFile(msgs, export.NewMarkdownExporter(opts), opts)
		return ExportedMsg{Path: path, Err: err}
	}
}

func (m Model) exportOptions() *export.Options {
	opts := export.DefaultOptions()
	if m.exportDir != "" {
		opts.OutputDir = m.exportDir
	}
	opts.Locale = m.locale
	return opts
}

// checkHealthCmd probes the query service once.
func checkHealthCmd(h HealthChecker) tea.Cmd {
	if h == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), healthTimeout)
		defer cancel()

		status, err := h.Health(ctx)
		return HealthMsg{Status: status, Err: err}
	}
}

// =============================================================================
// VIEWPORT
// =============================================================================

// refreshViewport redraws the transcript and scrolls to the newest entry.
func (m *Model) refreshViewport() {
	list := components.NewMessageList(m.theme)
	list.SetWidth(maxInt(m.viewport.Width-1, 20))
	list.SetRenderer(m.renderer)
	list.ShowExact = m.showExact
	list.Markdown = m.markdown
	list.SetMessages(m.dispatcher.Conversation().All())

	m.viewport.SetContent(list.View())
	m.viewport.GotoBottom()
}

func (m Model) showingExamples() bool {
	return m.dispatcher.Conversation().IsEmpty() && len(m.welcome.Examples()) > 0
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
