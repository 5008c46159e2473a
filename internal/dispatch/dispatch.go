// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package dispatch runs question/answer cycles against the query service.
//
// A cycle has three steps:
//
//	cycle, ok := d.Submit(question) // owner goroutine: append user message, set busy
//	result := cycle.Run(ctx)        // any goroutine: the remote call, touches no shared state
//	d.Resolve(result)               // owner goroutine: append bot message, clear busy
//
// Submit and Resolve mutate the conversation and the busy flag and must be
// called from the goroutine that owns the Dispatcher (the Bubble Tea update
// loop, or the caller of Ask). Only Run may happen elsewhere. At most one
// cycle is in flight: Submit refuses new questions while busy.
package dispatch

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jeranaias/querydesk-tui/internal/client"
	"github.com/jeranaias/querydesk-tui/internal/model"
)

// Querier sends one question to the query service.
type Querier interface {
	Query(ctx context.Context, question string) (model.Response, error)
}

// Config configures a Dispatcher.
type Config struct {
	// Endpoint is shown in the hint attached to failures.
	Endpoint string
	Logger   *zap.Logger
}

// Dispatcher owns the busy flag and appends to the conversation.
type Dispatcher struct {
	querier  Querier
	store    *model.Conversation
	endpoint string
	logger   *zap.Logger

	busy    bool
	pending string
}

// New creates a dispatcher that records exchanges in store.
func New(querier Querier, store *model.Conversation, cfg Config) *Dispatcher {
	if store == nil {
		store = model.NewConversation()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{
		querier:  querier,
		store:    store,
		endpoint: cfg.Endpoint,
		logger:   logger.Named("dispatch"),
	}
}

// Busy reports whether a cycle is in flight.
func (d *Dispatcher) Busy() bool {
	return d.busy
}

// Conversation returns the store the dispatcher appends to.
func (d *Dispatcher) Conversation() *model.Conversation {
	return d.store
}

// Endpoint returns the endpoint named in failure hints.
func (d *Dispatcher) Endpoint() string {
	return d.endpoint
}

// =============================================================================
// CYCLE
// =============================================================================

// Cycle is one accepted question waiting for its remote call.
type Cycle struct {
	ID       string
	Question string

	querier Querier
	logger  *zap.Logger
}

// Result is the outcome of Cycle.Run.
type Result struct {
	CycleID  string
	Response model.Response
	Err      error
	Duration time.Duration
}

// Submit accepts a question. It returns false and changes nothing when the
// question is blank or a cycle is already in flight.
func (d *Dispatcher) Submit(question string) (*Cycle, bool) {
	if strings.TrimSpace(question) == "" || d.busy {
		return nil, false
	}

	d.store.Append(model.NewUserMessage(question))
	d.busy = true
	d.pending = uuid.NewString()

	d.logger.Debug("cycle started", zap.String("cycle_id", d.pending))
	return &Cycle{
		ID:       d.pending,
		Question: question,
		querier:  d.querier,
		logger:   d.logger,
	}, true
}

// Run performs the remote call. It never panics and makes exactly one request.
func (c *Cycle) Run(ctx context.Context) (res Result) {
	start := time.Now()
	res.CycleID = c.ID

	defer func() {
		if r := recover(); r != nil {
			res.Response = nil
			res.Err = fmt.Errorf("query panicked: %v", r)
			c.logger.Error("query panicked", zap.String("cycle_id", c.ID), zap.Any("panic", r))
		}
		res.Duration = time.Since(start)
	}()

	if c.querier == nil {
		res.Err = fmt.Errorf("no query service configured")
		return res
	}
	res.Response, res.Err = c.querier.Query(ctx, c.Question)
	return res
}

// Resolve records the outcome of the in-flight cycle and clears busy.
// A result for any other cycle is ignored and false is returned.
func (d *Dispatcher) Resolve(res Result) (model.Message, bool) {
	if !d.busy || res.CycleID != d.pending {
		d.logger.Warn("ignoring stale result", zap.String("cycle_id", res.CycleID))
		return model.Message{}, false
	}
	defer func() {
		d.busy = false
		d.pending = ""
	}()

	resp := res.Response
	if res.Err != nil {
		resp = FailureResponse(res.Err, d.endpoint)
		d.logger.Warn("cycle failed",
			zap.String("cycle_id", res.CycleID),
			zap.Duration("duration", res.Duration),
			zap.Error(res.Err))
	} else {
		kind := model.KindUnknown
		if resp != nil {
			kind = resp.Kind()
		}
		d.logger.Info("cycle answered",
			zap.String("cycle_id", res.CycleID),
			zap.String("kind", string(kind)),
			zap.Duration("duration", res.Duration))
	}

	msg := model.NewBotMessage(resp)
	d.store.Append(msg)
	return msg, true
}

// Ask runs a whole cycle on the calling goroutine.
func (d *Dispatcher) Ask(ctx context.Context, question string) (model.Message, bool) {
	cycle, ok := d.Submit(question)
	if !ok {
		return model.Message{}, false
	}
	return d.Resolve(cycle.Run(ctx))
}

// =============================================================================
// FAILURES
// =============================================================================

const (
	// TimeoutHint follows the failure text when the request timed out.
	TimeoutHint = "The request timed out. The service may still be working on a long answer."
	// TransientHint follows the failure text for dropped or refused connections.
	TransientHint = "This looks like a network problem; asking again may work."
)

// FailureResponse turns a failed cycle into the Error shown to the user.
// The message carries the failure text and a hint that the service may be
// unreachable.
func FailureResponse(err error, endpoint string) model.Error {
	var b strings.Builder
	b.WriteString("Sorry, I couldn't get an answer to that question.\n")
	if err != nil {
		b.WriteString("Error: ")
		b.WriteString(err.Error())
		b.WriteString("\n")
	}
	b.WriteString("\n")
	if endpoint != "" {
		fmt.Fprintf(&b, "The query service at %s may be unreachable. Check that it is running and try again.", endpoint)
	} else {
		b.WriteString("The query service may be unreachable. Check that it is running and try again.")
	}
	switch {
	case client.IsTimeout(err):
		b.WriteString("\n" + TimeoutHint)
	case client.IsTransient(err):
		b.WriteString("\n" + TransientHint)
	}
	return model.Error{Message: b.String()}
}
