// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"time"

	"github.com/google/uuid"
)

// Conversation is the ordered, append-only log of one session.
//
// Insertion order is display order. There is no removal, update or reordering.
// A Conversation is owned by a single goroutine (the UI event loop or the
// one-shot CLI); it does no locking of its own.
type Conversation struct {
	ID        string
	CreatedAt time.Time

	messages []Message
}

// NewConversation creates an empty conversation.
func NewConversation() *Conversation {
	return &Conversation{
		ID:        "conv_" + uuid.NewString(),
		CreatedAt: time.Now(),
	}
}

// Append adds a message to the end of the log.
func (c *Conversation) Append(msg Message) {
	c.messages = append(c.messages, msg)
}

// All returns the messages in insertion order.
// The returned slice is a copy; changing it does not affect the log.
func (c *Conversation) All() []Message {
	out := make([]Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// Len returns the number of messages.
func (c *Conversation) Len() int {
	return len(c.messages)
}

// IsEmpty returns true if nothing has been appended yet.
func (c *Conversation) IsEmpty() bool {
	return len(c.messages) == 0
}

// Last returns the most recent message.
func (c *Conversation) Last() (Message, bool) {
	if len(c.messages) == 0 {
		return Message{}, false
	}
	return c.messages[len(c.messages)-1], true
}
