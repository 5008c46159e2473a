// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package dispatch

import (
	"context"
	"errors"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"

	"github.com/jeranaias/querydesk-tui/internal/client"
	"github.com/jeranaias/querydesk-tui/internal/model"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type querierFunc func(ctx context.Context, question string) (model.Response, error)

func (f querierFunc) Query(ctx context.Context, question string) (model.Response, error) {
	return f(ctx, question)
}

func answer(resp model.Response) querierFunc {
	return func(context.Context, string) (model.Response, error) {
		return resp, nil
	}
}

func newDispatcher(t *testing.T, q Querier) *Dispatcher {
	t.Helper()
	return New(q, model.NewConversation(), Config{
		Endpoint: "http://localhost:8000",
		Logger:   zaptest.NewLogger(t),
	})
}

func TestSubmitAppendsUserThenBot(t *testing.T) {
	require := require.New(t)
	d := newDispatcher(t, answer(model.Text{Body: "Two clients have a high risk appetite."}))

	cycle, ok := d.Submit("who has a high risk appetite?")
	require.True(ok)
	require.True(d.Busy())
	require.Equal(1, d.Conversation().Len())

	first, _ := d.Conversation().Last()
	require.True(first.IsUser())
	require.Equal("who has a high risk appetite?", first.Question)

	msg, ok := d.Resolve(cycle.Run(context.Background()))
	require.True(ok)
	require.False(d.Busy())

	all := d.Conversation().All()
	require.Len(all, 2)
	require.True(all[0].IsUser())
	require.True(all[1].IsBot())
	require.Equal(msg.ID, all[1].ID)
	require.Equal(model.Text{Body: "Two clients have a high risk appetite."}, all[1].Response)
}

func TestSubmitIgnoresBlankQuestions(t *testing.T) {
	d := newDispatcher(t, answer(model.Text{}))

	for _, q := range []string{"", "   ", "\t\n"} {
		cycle, ok := d.Submit(q)
		assert.False(t, ok, "%q should be ignored", q)
		assert.Nil(t, cycle)
	}
	assert.False(t, d.Busy())
	assert.True(t, d.Conversation().IsEmpty())
}

func TestSubmitWhileBusyIsNoOp(t *testing.T) {
	d := newDispatcher(t, answer(model.Text{Body: "ok"}))

	cycle, ok := d.Submit("first")
	require.True(t, ok)

	second, ok := d.Submit("second")
	assert.False(t, ok)
	assert.Nil(t, second)
	assert.True(t, d.Busy())
	assert.Equal(t, 1, d.Conversation().Len())

	d.Resolve(cycle.Run(context.Background()))
	assert.False(t, d.Busy())
	assert.Equal(t, 2, d.Conversation().Len())

	_, ok = d.Submit("second")
	assert.True(t, ok, "submitting again after resolution must be accepted")
}

func TestBusyOnlyDuringCycle(t *testing.T) {
	var busyDuringCall bool
	var d *Dispatcher
	d = newDispatcher(t, querierFunc(func(context.Context, string) (model.Response, error) {
		busyDuringCall = d.Busy()
		return model.Text{Body: "x"}, nil
	}))

	assert.False(t, d.Busy())
	_, ok := d.Ask(context.Background(), "q")
	require.True(t, ok)
	assert.True(t, busyDuringCall)
	assert.False(t, d.Busy())
}

func TestConnectionRefusedBecomesErrorWithHint(t *testing.T) {
	c := client.NewClientWithConfig(&client.ClientConfig{
		BaseURL: "http://localhost:8000",
		Transport: roundTripFunc(func(*http.Request) (*http.Response, error) {
			return nil, errors.New("dial tcp 127.0.0.1:8000: connect: connection refused")
		}),
	})
	d := newDispatcher(t, c)

	_, ok := d.Ask(context.Background(), "top five portfolios")
	require.True(t, ok)
	assert.False(t, d.Busy())

	all := d.Conversation().All()
	require.Len(t, all, 2)
	assert.Equal(t, "top five portfolios", all[0].Question)

	e, ok := all[1].Response.(model.Error)
	require.True(t, ok, "got %T", all[1].Response)
	assert.Contains(t, e.Message, "may be unreachable")
	assert.Contains(t, e.Message, "connection refused")
	assert.Contains(t, e.Message, "http://localhost:8000")
}

func TestServiceDetailIsQuoted(t *testing.T) {
	d := newDispatcher(t, querierFunc(func(context.Context, string) (model.Response, error) {
		return nil, &client.ClientError{
			Type:       client.ErrTypeStatus,
			StatusCode: 500,
			Message:    "query service returned 500 Internal Server Error",
			Detail:     "Agent stopped due to iteration limit",
		}
	}))

	msg, ok := d.Ask(context.Background(), "q")
	require.True(t, ok)
	e := msg.Response.(model.Error)
	assert.Contains(t, e.Message, "Agent stopped due to iteration limit")
	assert.Contains(t, e.Message, "500")
}

func TestPanicIsRecovered(t *testing.T) {
	d := newDispatcher(t, querierFunc(func(context.Context, string) (model.Response, error) {
		panic("nil map")
	}))

	msg, ok := d.Ask(context.Background(), "q")
	require.True(t, ok)
	assert.True(t, msg.IsError())
	assert.Contains(t, msg.Response.(model.Error).Message, "nil map")
	assert.False(t, d.Busy())
}

func TestUnknownAnswerIsRecorded(t *testing.T) {
	d := newDispatcher(t, answer(model.Unknown{Tag: "map"}))

	msg, ok := d.Ask(context.Background(), "q")
	require.True(t, ok)
	assert.Equal(t, model.Unknown{Tag: "map"}, msg.Response)
}

func TestResolveIgnoresStaleResult(t *testing.T) {
	d := newDispatcher(t, answer(model.Text{Body: "x"}))

	_, ok := d.Resolve(Result{CycleID: "nope"})
	assert.False(t, ok)
	assert.True(t, d.Conversation().IsEmpty())

	cycle, _ := d.Submit("q")
	_, ok = d.Resolve(Result{CycleID: "other"})
	assert.False(t, ok)
	assert.True(t, d.Busy())

	_, ok = d.Resolve(cycle.Run(context.Background()))
	assert.True(t, ok)
}

func TestFailureResponseWithoutEndpoint(t *testing.T) {
	e := FailureResponse(errors.New("boom"), "")
	assert.Contains(t, e.Message, "Error: boom")
	assert.Contains(t, e.Message, "The query service may be unreachable.")
}

func TestFailureResponseHints(t *testing.T) {
	timeout := &client.ClientError{Type: client.ErrTypeTimeout, Message: "request to query service timed out", Cause: context.DeadlineExceeded}
	e := FailureResponse(timeout, "http://localhost:8000")
	assert.Contains(t, e.Message, "may be unreachable")
	assert.Contains(t, e.Message, TimeoutHint)
	assert.NotContains(t, e.Message, TransientHint)

	dropped := &client.ClientError{Type: client.ErrTypeConnection, Message: "cannot connect to query service", Cause: io.ErrUnexpectedEOF}
	e = FailureResponse(dropped, "http://localhost:8000")
	assert.Contains(t, e.Message, "may be unreachable")
	assert.Contains(t, e.Message, TransientHint)

	status := &client.ClientError{Type: client.ErrTypeStatus, StatusCode: 500, Message: "query service returned 500"}
	e = FailureResponse(status, "http://localhost:8000")
	assert.Contains(t, e.Message, "may be unreachable")
	assert.NotContains(t, e.Message, TimeoutHint)
	assert.NotContains(t, e.Message, TransientHint)
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}
