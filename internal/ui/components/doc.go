// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package components provides the visual pieces of the querydesk TUI.

Components are plain structs with setters and a View method. They hold no
conversation state of their own: the chat model hands them what to draw on
every frame.

# Display Components

MessageBubble (message.go) - One conversation entry. User questions are
right-aligned; bot answers carry a drawn presentation.

PresentationView (presentation.go) - Draws a render.Presentation: a grid for
tables, horizontal bars for charts, a panel for errors, and an italic line
for notices and empty results.

Welcome (welcome.go) - Empty state with clickable-by-keyboard example
questions.

StatusBar (statusbar.go) - Endpoint, service health, message count and
shortcuts.

ThinkingIndicator (spinner.go) - Spinner shown while a question is in flight.

# Theme Integration

All components draw with a *styles.Theme so that plain terminals get plain
output:

	theme := styles.NewTheme()
	bubble := components.NewMessageBubble(msg, theme)
	bubble.SetWidth(80)
	view := bubble.View()
*/
package components
