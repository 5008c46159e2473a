// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/jeranaias/querydesk-tui/internal/ui/styles"
)

// =============================================================================
// ERROR DISPLAY COMPONENT
// =============================================================================

// ErrorDisplay is a framed error with optional suggestions. The chat view
// draws answer errors through PresentationView; ErrorDisplay is for problems
// outside a conversation, such as a failed health check.
type ErrorDisplay struct {
	Title       string
	Message     string
	Suggestions []string
	width       int
	theme       *styles.Theme
}

// NewErrorDisplay creates an error display.
func NewErrorDisplay(title, message string, theme *styles.Theme) ErrorDisplay {
	return ErrorDisplay{
		Title:   title,
		Message: message,
		width:   60,
		theme:   theme,
	}
}

// SetWidth sets the available width.
func (e *ErrorDisplay) SetWidth(width int) {
	e.width = width
}

// View renders the error box.
func (e ErrorDisplay) View() string {
	maxWidth := minInt(maxInt(e.width-2, 30), 80)
	inner := contentWidth(maxWidth)
	t := e.theme

	parts := []string{t.ErrorTitle.Render(styles.StatusIndicators.Error + " " + e.Title)}
	if e.Message != "" {
		parts = append(parts, "", t.ErrorMessage.Render(wordWrap(e.Message, inner)))
	}
	if len(e.Suggestions) > 0 {
		parts = append(parts, "", t.WelcomeText.Render("Suggestions:"))
		for _, s := range e.Suggestions {
			parts = append(parts, t.Hint.Render("  * "+s))
		}
	}

	return t.ErrorBox.Width(maxWidth).Render(strings.Join(parts, "\n"))
}

// ConnectionError describes an unreachable query service.
func ConnectionError(endpoint, detail string, theme *styles.Theme) ErrorDisplay {
	e := NewErrorDisplay("Connection Error", detail, theme)
	e.Suggestions = []string{
		"Check that the query service is running at " + endpoint,
		"Start the demo service: querydesk serve",
		"Point the client elsewhere: querydesk --endpoint <url>",
	}
	return e
}

// =============================================================================
// INLINE MESSAGES
// =============================================================================

// InlineError renders a one-line error.
func InlineError(message string, theme *styles.Theme) string {
	return theme.ErrorTitle.Render(styles.StatusIndicators.Error+" ") + theme.ErrorMessage.Render(message)
}

// InlineSuccess renders a one-line success message.
func InlineSuccess(message string, theme *styles.Theme) string {
	return theme.StatusOnline.Render(styles.StatusIndicators.Success+" ") + theme.Body.Render(message)
}

// InlineInfo renders a one-line informational message.
func InlineInfo(message string, theme *styles.Theme) string {
	return theme.StatusUnknown.Render(styles.StatusIndicators.Info+" ") + theme.WelcomeText.Render(message)
}
