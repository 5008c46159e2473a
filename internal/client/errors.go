// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package client

import (
	"context"
	"errors"
	"io"
	"net"
	"net/url"
	"syscall"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// ErrorType categorizes client errors for handling.
type ErrorType int

const (
	ErrTypeUnknown ErrorType = iota
	ErrTypeConnection
	ErrTypeTimeout
	ErrTypeStatus
	ErrTypeInvalidResponse
	ErrTypeRequest
)

// String returns a short name for the error type.
func (t ErrorType) String() string {
	switch t {
	case ErrTypeConnection:
		return "connection"
	case ErrTypeTimeout:
		return "timeout"
	case ErrTypeStatus:
		return "status"
	case ErrTypeInvalidResponse:
		return "invalid_response"
	case ErrTypeRequest:
		return "request"
	default:
		return "unknown"
	}
}

// ClientError represents an error from the query client.
type ClientError struct {
	Type    ErrorType
	Message string

	// StatusCode is set for ErrTypeStatus.
	StatusCode int
	// Detail is the "detail" field of a JSON error body, when present.
	Detail string

	Cause error
}

func (e *ClientError) Error() string {
	switch {
	case e.Detail != "":
		return e.Message + ": " + e.Detail
	case e.Cause != nil:
		return e.Message + ": " + e.Cause.Error()
	default:
		return e.Message
	}
}

func (e *ClientError) Unwrap() error {
	return e.Cause
}

// ErrEmptyQuestion is returned by Query when the question is blank.
var ErrEmptyQuestion = &ClientError{Type: ErrTypeRequest, Message: "question is empty"}

// =============================================================================
// CLASSIFICATION
// =============================================================================

// IsUnreachable returns true if the service could not be reached at all,
// either because the connection failed or because it timed out.
func IsUnreachable(err error) bool {
	var ce *ClientError
	if errors.As(err, &ce) {
		return ce.Type == ErrTypeConnection || ce.Type == ErrTypeTimeout
	}
	return false
}

// IsTimeout returns true if the error is a timeout.
func IsTimeout(err error) bool {
	var ce *ClientError
	if errors.As(err, &ce) {
		return ce.Type == ErrTypeTimeout
	}
	return false
}

// IsStatus returns true if the service answered with a non-2xx status.
func IsStatus(err error) bool {
	var ce *ClientError
	if errors.As(err, &ce) {
		return ce.Type == ErrTypeStatus
	}
	return false
}

// IsTransient reports whether the error is likely caused by a temporary
// transport problem. Service-reported failures are never transient.
func IsTransient(err error) bool {
	if err == nil || IsStatus(err) {
		return false
	}
	switch {
	case errors.Is(err, io.EOF),
		errors.Is(err, io.ErrUnexpectedEOF),
		errors.Is(err, syscall.ECONNRESET),
		errors.Is(err, syscall.ECONNREFUSED),
		errors.Is(err, syscall.EPIPE),
		errors.Is(err, context.DeadlineExceeded):
		return true
	}
	// *url.Error is itself a net.Error; judge it by what it wraps.
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		if urlErr.Timeout() {
			return true
		}
		return IsTransient(urlErr.Err)
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

// classifyTransportError wraps an error returned by http.Client.Do.
func classifyTransportError(err error) *ClientError {
	if errors.Is(err, context.DeadlineExceeded) {
		return &ClientError{Type: ErrTypeTimeout, Message: "request to query service timed out", Cause: err}
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &ClientError{Type: ErrTypeTimeout, Message: "request to query service timed out", Cause: err}
	}
	return &ClientError{Type: ErrTypeConnection, Message: "cannot connect to query service", Cause: err}
}
