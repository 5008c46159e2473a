// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/querydesk-tui/internal/ui/styles"
)

// =============================================================================
// THINKING INDICATOR
// =============================================================================

// ThinkingIndicator is the spinner shown while a question is in flight.
type ThinkingIndicator struct {
	spinner   spinner.Model
	message   string
	startTime time.Time
	isActive  bool
	theme     *styles.Theme
}

// NewThinkingIndicator creates an ASCII spinner.
func NewThinkingIndicator(theme *styles.Theme) ThinkingIndicator {
	s := spinner.New()
	s.Spinner = spinner.Spinner{
		Frames: []string{"|", "/", "-", "\\"},
		FPS:    time.Second / 10,
	}
	s.Style = theme.Spinner
	return ThinkingIndicator{
		spinner: s,
		message: "Thinking",
		theme:   theme,
	}
}

// Start activates the spinner and returns its first tick.
func (t *ThinkingIndicator) Start() tea.Cmd {
	t.isActive = true
	t.startTime = time.Now()
	return t.spinner.Tick
}

// Stop deactivates the spinner.
func (t *ThinkingIndicator) Stop() {
	t.isActive = false
}

// IsActive reports whether the spinner is running.
func (t *ThinkingIndicator) IsActive() bool {
	return t.isActive
}

// Elapsed returns time since Start.
func (t *ThinkingIndicator) Elapsed() time.Duration {
	if t.startTime.IsZero() {
		return 0
	}
	return time.Since(t.startTime)
}

// Update advances the animation. Ticks are dropped once stopped, which
// ends the tick loop.
func (t ThinkingIndicator) Update(msg tea.Msg) (ThinkingIndicator, tea.Cmd) {
	if !t.isActive {
		return t, nil
	}
	var cmd tea.Cmd
	t.spinner, cmd = t.spinner.Update(msg)
	return t, cmd
}

// View renders the spinner line, or nothing when inactive.
func (t ThinkingIndicator) View() string {
	if !t.isActive {
		return ""
	}
	out := t.spinner.View() + " " + t.theme.ThinkingText.Render(t.message+"...")
	if elapsed := t.Elapsed(); elapsed >= time.Second {
		out += t.theme.Timestamp.Render(" (" + formatElapsed(elapsed) + ")")
	}
	return out
}

// formatElapsed formats a duration as "5s" or "1m05s".
func formatElapsed(d time.Duration) string {
	d = d.Round(time.Second)
	if d < time.Minute {
		return d.String()
	}
	m := int(d / time.Minute)
	s := int((d % time.Minute) / time.Second)
	return fmt.Sprintf("%dm%02ds", m, s)
}
