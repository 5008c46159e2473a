// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/querydesk-tui/internal/ui/styles"
	"github.com/jeranaias/querydesk-tui/internal/util"
)

// =============================================================================
// STATUS BAR COMPONENT
// =============================================================================

// Health is the last known state of the query service.
type Health int

const (
	HealthUnknown Health = iota
	HealthOnline
	HealthOffline
)

// String returns the display string for the health state.
func (h Health) String() string {
	switch h {
	case HealthOnline:
		return "online"
	case HealthOffline:
		return "offline"
	default:
		return "checking"
	}
}

// Icon returns a shape for the health state so it reads without color.
func (h Health) Icon() string {
	switch h {
	case HealthOnline:
		return styles.StatusIndicators.Success
	case HealthOffline:
		return styles.StatusIndicators.Error
	default:
		return styles.StatusIndicators.Pending
	}
}

// Shortcut is a key hint shown on the right of the status bar.
type Shortcut struct {
	Key  string
	Desc string
}

// DefaultShortcuts are shown when the caller sets none.
var DefaultShortcuts = []Shortcut{
	{Key: "enter", Desc: "ask"},
	{Key: "ctrl+e", Desc: "exact values"},
	{Key: "esc", Desc: "quit"},
}

// StatusBar is the bottom status line.
type StatusBar struct {
	Endpoint     string
	Health       Health
	MessageCount int
	Busy         bool
	ShowExact    bool
	Shortcuts    []Shortcut
	Width        int
	theme        *styles.Theme
}

// NewStatusBar creates a new StatusBar component.
func NewStatusBar(theme *styles.Theme) *StatusBar {
	return &StatusBar{
		Health:    HealthUnknown,
		Shortcuts: DefaultShortcuts,
		Width:     80,
		theme:     theme,
	}
}

// SetWidth sets the bar width.
func (s *StatusBar) SetWidth(width int) {
	s.Width = width
}

// View renders the status bar.
func (s *StatusBar) View() string {
	if s.Width < 60 {
		return s.viewNarrow()
	}
	return s.viewWide()
}

// viewNarrow renders the health icon and the state only.
func (s *StatusBar) viewNarrow() string {
	left := s.healthStyle().Render(s.Health.Icon()) + " " + s.activity()
	return s.theme.StatusBar.Width(s.Width).Render(left)
}

// viewWide renders endpoint, health, count and activity on the left and
// shortcuts on the right.
func (s *StatusBar) viewWide() string {
	sep := s.theme.ShortcutDesc.Render(" | ")

	leftParts := []string{
		s.healthStyle().Render(s.Health.Icon() + " " + s.Health.String()),
	}
	if s.Endpoint != "" {
		leftParts = append(leftParts, s.theme.ShortcutDesc.Render(util.TruncateWidth(s.Endpoint, 40)))
	}
	leftParts = append(leftParts, pluralize(s.MessageCount, "message", "messages"))
	leftParts = append(leftParts, s.activity())
	left := strings.Join(leftParts, sep)

	var hints []string
	for _, sc := range s.Shortcuts {
		hints = append(hints, s.theme.ShortcutKey.Render(sc.Key)+" "+s.theme.ShortcutDesc.Render(sc.Desc))
	}
	right := strings.Join(hints, "  ")

	// Padding(0, 1) on the bar takes two cells.
	gap := s.Width - 2 - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		right = ""
		gap = 0
	}

	return s.theme.StatusBar.Width(s.Width).Render(left + strings.Repeat(" ", gap) + right)
}

func (s *StatusBar) activity() string {
	if s.Busy {
		return s.theme.ThinkingText.Render("thinking...")
	}
	if s.ShowExact {
		return s.theme.ShortcutDesc.Render("ready, exact values on")
	}
	return s.theme.ShortcutDesc.Render("ready")
}

func (s *StatusBar) healthStyle() lipgloss.Style {
	switch s.Health {
	case HealthOnline:
		return s.theme.StatusOnline
	case HealthOffline:
		return s.theme.StatusOffline
	default:
		return s.theme.StatusUnknown
	}
}

func pluralize(n int, one, many string) string {
	if n == 1 {
		return "1 " + one
	}
	return strconv.Itoa(n) + " " + many
}
