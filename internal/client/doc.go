// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package client provides the HTTP client for the query service.
//
// The query service answers natural-language questions with a tagged JSON
// envelope ({"type": ..., "data": ...}). This package owns the wire contract:
// it posts questions, decodes answers into model.Response values and turns
// every transport or protocol failure into a typed *ClientError.
//
// # Key Types
//
//   - Client: Main client for query and health-check operations
//   - ClientConfig: Endpoint, timeout and transport settings
//   - ClientError: Typed error carrying the failure class, HTTP status and
//     the service-reported detail when there is one
//
// # Usage
//
// Create a client and ask a question:
//
//	c := client.NewClientWithConfig(&client.ClientConfig{
//	    BaseURL: "http://localhost:8000",
//	})
//	resp, err := c.Query(ctx, "top five portfolios")
//	if client.IsUnreachable(err) {
//	    fmt.Println("query service is not running")
//	}
//
// Check that the service is up:
//
//	status, err := c.Health(ctx)
//
// # Error Handling
//
// Failures are classified with ErrorType:
//
//   - ErrTypeConnection: the service could not be reached
//   - ErrTypeTimeout: the request did not finish in time
//   - ErrTypeStatus: the service answered with a non-2xx status
//   - ErrTypeInvalidResponse: a 2xx body did not match the envelope
//   - ErrTypeRequest: the request itself could not be built
package client
