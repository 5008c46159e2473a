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
// WELCOME SCREEN
// =============================================================================

// Welcome is the empty-conversation screen. It lists example questions and
// tracks which one is highlighted.
type Welcome struct {
	examples []string
	selected int
	endpoint string

	width  int
	height int

	theme *styles.Theme
}

// NewWelcome creates a welcome screen with the given example questions.
func NewWelcome(examples []string, theme *styles.Theme) Welcome {
	return Welcome{
		examples: examples,
		theme:    theme,
	}
}

// Examples returns the example questions.
func (w *Welcome) Examples() []string {
	return w.examples
}

// SetEndpoint sets the service address shown under the title.
func (w *Welcome) SetEndpoint(endpoint string) {
	w.endpoint = endpoint
}

// SetSize updates the dimensions.
func (w *Welcome) SetSize(width, height int) {
	w.width = width
	w.height = height
}

// Next moves the highlight down, wrapping at the end.
func (w *Welcome) Next() {
	if len(w.examples) == 0 {
		return
	}
	w.selected = (w.selected + 1) % len(w.examples)
}

// Prev moves the highlight up, wrapping at the start.
func (w *Welcome) Prev() {
	if len(w.examples) == 0 {
		return
	}
	w.selected = (w.selected - 1 + len(w.examples)) % len(w.examples)
}

// Selected returns the highlighted index.
func (w *Welcome) Selected() int {
	return w.selected
}

// SelectedExample returns the highlighted question.
func (w *Welcome) SelectedExample() (string, bool) {
	if w.selected < 0 || w.selected >= len(w.examples) {
		return "", false
	}
	return w.examples[w.selected], true
}

// View renders the welcome screen centered in the available space.
func (w Welcome) View() string {
	width := w.width
	if width == 0 {
		width = 80
	}
	height := w.height
	if height == 0 {
		height = 20
	}
	t := w.theme

	boxWidth := minInt(72, width-4)
	inner := maxInt(boxWidth-6, 10)

	lines := []string{
		t.WelcomeTitle.Render("QueryDesk"),
		t.WelcomeText.Render("Ask questions about your data in plain language."),
	}
	if w.endpoint != "" {
		lines = append(lines, t.Hint.Render("Connected to "+w.endpoint))
	}

	if len(w.examples) > 0 {
		lines = append(lines, "", t.WelcomeText.Render("Try one of these:"))
		for i, ex := range w.examples {
			label := strconv.Itoa(i+1) + ". " + util.TruncateWidth(ex, inner-4)
			if i == w.selected {
				lines = append(lines, t.ExampleSelected.Render("> "+label))
			} else {
				lines = append(lines, t.Example.Render("  "+label))
			}
		}
		lines = append(lines, "", t.Hint.Render("tab to choose, enter to ask, or type your own question"))
	} else {
		lines = append(lines, "", t.Hint.Render("Type a question and press enter"))
	}

	box := t.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(styles.Purple).
		Padding(1, 2).
		Width(boxWidth).
		Render(strings.Join(lines, "\n"))

	vertical := lipgloss.Center
	if lipgloss.Height(box) >= height {
		vertical = lipgloss.Top
	}
	return lipgloss.Place(width, height, lipgloss.Center, vertical, box)
}
