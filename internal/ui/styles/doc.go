// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling system for the querydesk TUI.

All colors use Lip Gloss AdaptiveColor for automatic light/dark terminal
detection.

# Color System (colors.go)

  - Purple - Primary accent, bot messages, selections
  - Cyan - Brand color, user highlights, table headers
  - Emerald - Online status, chart bars
  - Amber - Warnings, notices, the "no data" placeholder
  - Rose - Errors and negative chart values

# Theme System (theme.go)

The Theme struct holds every lipgloss style the UI draws with. Styles are
created from a lipgloss.Renderer, so a theme built for a pipe renders plain
text:

	theme := styles.NewTheme()
	plain := styles.NewThemeWithProfile(os.Stdout, termenv.Ascii)
*/
package styles
