// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"time"

	"github.com/charmbracelet/x/ansi"
)

// =============================================================================
// UTILITY FUNCTIONS
// =============================================================================

// wordWrap wraps text to fit within width cells. Line breaks, indentation
// and runs of spaces are kept; only the space a line breaks at is dropped.
func wordWrap(text string, width int) string {
	if width <= 0 {
		return text
	}
	return ansi.Wrap(text, width, "")
}

// formatTime formats a time as "3:04 PM".
func formatTime(t time.Time) string {
	return t.Format("3:04 PM")
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// contentWidth is the usable width inside a bordered, padded box.
func contentWidth(width int) int {
	return maxInt(width-4, 10)
}
