// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// ORIGIN TYPE
// =============================================================================

// Origin identifies who produced a message.
type Origin string

const (
	OriginUser Origin = "user"
	OriginBot  Origin = "bot"
)

// String returns the string representation of the origin.
func (o Origin) String() string {
	return string(o)
}

// DisplayName returns a human-readable name for the origin.
func (o Origin) DisplayName() string {
	switch o {
	case OriginUser:
		return "You"
	case OriginBot:
		return "QueryDesk"
	default:
		return string(o)
	}
}

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// Message is one entry in a conversation.
//
// A user message carries Question; a bot message carries Response. Messages
// are values: once appended to a Conversation they are never modified.
type Message struct {
	ID        string    `json:"id"`
	Origin    Origin    `json:"origin"`
	Timestamp time.Time `json:"timestamp"`

	Question string   `json:"question,omitempty"`
	Response Response `json:"-"`
}

// NewUserMessage creates a user message holding the raw question.
func NewUserMessage(question string) Message {
	return Message{
		ID:        newID(),
		Origin:    OriginUser,
		Timestamp: time.Now(),
		Question:  question,
	}
}

// NewBotMessage creates a bot message wrapping a response.
// A nil response is recorded as Unknown so every bot message renders.
func NewBotMessage(resp Response) Message {
	if resp == nil {
		resp = Unknown{}
	}
	return Message{
		ID:        newID(),
		Origin:    OriginBot,
		Timestamp: time.Now(),
		Response:  resp,
	}
}

// IsUser returns true if this is a user message.
func (m Message) IsUser() bool {
	return m.Origin == OriginUser
}

// IsBot returns true if this is a bot message.
func (m Message) IsBot() bool {
	return m.Origin == OriginBot
}

// IsError returns true if this is a bot message carrying an Error response.
func (m Message) IsError() bool {
	if !m.IsBot() {
		return false
	}
	_, ok := m.Response.(Error)
	return ok
}

func newID() string {
	return "msg_" + uuid.NewString()
}
