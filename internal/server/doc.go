// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package server provides the demo query service started by `querydesk serve`.
//
// The service speaks the same contract as a production query service so the
// TUI can be tried without one:
//
//   - GET  /          - {"Status": "API is running"}
//   - POST /api/query - {"question": "..."} answered with a tagged envelope
//
// Answers come from an Answerer, which returns free-form model output. The
// handler pulls the JSON envelope out of that output (a ```json fence, or the
// outermost braces) and relays it. Output without JSON, or with JSON that does
// not parse, becomes an "error" envelope with HTTP 200; an Answerer failure is
// a 500 with a "detail" field.
//
// # Key Types
//
//   - Server: HTTP server with routes and middleware
//   - Answerer: produces raw model output for a question
//   - FixtureAnswerer: keyword-routed answers over built-in wealth-management data
//
// # Usage
//
//	srv := server.New(server.Config{Addr: ":8000"}, server.NewFixtureAnswerer())
//	if err := srv.Run(ctx); err != nil {
//		return err
//	}
package server
