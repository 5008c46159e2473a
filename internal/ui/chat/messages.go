// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import "github.com/jeranaias/querydesk-tui/internal/dispatch"

// QueryResultMsg carries the outcome of a cycle back to Update.
type QueryResultMsg struct {
	Result dispatch.Result
}

// HealthMsg reports a health check of the query service.
type HealthMsg struct {
	Status string
	Err    error
}

// ExportedMsg reports where a transcript was saved.
type ExportedMsg struct {
	Path string
	Err  error
}
