// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations and query responses.
//
// This package defines the core domain types shared by the dispatcher, the
// renderer and the TUI: what a user asked, what the query service answered,
// and the ordered log that ties the two together.
//
// # Key Types
//
//   - Conversation: Append-only, ordered log of messages for one session
//   - Message: Single entry with an origin (user or bot) and its payload
//   - Response: Tagged union of service answers (Text, Table, Chart, Error, Unknown)
//   - Row, Cell, Value: Ordered table rows as decoded from the service
//   - Point: One named bar of a Chart
//
// # Usage
//
// Decode a service answer and record the exchange:
//
//	resp, err := model.DecodeResponse(body)
//	if err != nil {
//	    return err
//	}
//	conv := model.NewConversation()
//	conv.Append(model.NewUserMessage("top five portfolios"))
//	conv.Append(model.NewBotMessage(resp))
//
// Dispatch on the response variant:
//
//	switch r := resp.(type) {
//	case model.Table:
//	    fmt.Println(len(r.Rows), "rows")
//	case model.Error:
//	    fmt.Println(r.Message)
//	}
package model
