// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package chat provides the Bubble Tea model for the querydesk TUI.

The model owns the draft question, the transcript viewport and the example
highlight. Every state change happens in Update on the Bubble Tea goroutine:

	enter          -> Dispatcher.Submit (user message appended, busy set, draft cleared)
	runCycleCmd    -> Cycle.Run in a tea.Cmd (the remote call)
	QueryResultMsg -> Dispatcher.Resolve (bot message appended, busy cleared)

While a cycle is in flight the input is blurred and ignores keystrokes.
The transcript scrolls to the newest entry whenever the conversation or
the busy state changes.

# Key Bindings

	enter        ask the draft, or the highlighted example when the draft is empty
	tab/S-tab    move the example highlight (empty conversation only)
	ctrl+e       show exact values beside chart bars
	pgup/pgdown  scroll the transcript
	ctrl+c/esc   quit
*/
package chat
