// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/jeranaias/querydesk-tui/internal/model"
)

// =============================================================================
// JSON EXPORTER
// =============================================================================

// JSONExporter exports conversations to JSON. Answers are stored as the
// same envelope the query service sends, so a transcript can be replayed
// through model.DecodeResponse.
type JSONExporter struct {
	options *Options
}

// NewJSONExporter creates a new JSON exporter.
func NewJSONExporter(opts *Options) *JSONExporter {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &JSONExporter{options: opts}
}

// Transcript is the document written by JSONExporter.
type Transcript struct {
	Title    string           `json:"title"`
	Exported time.Time        `json:"exported"`
	Messages []TranscriptItem `json:"messages"`
}

// TranscriptItem is one message of a Transcript.
type TranscriptItem struct {
	ID        string          `json:"id"`
	Origin    model.Origin    `json:"origin"`
	Timestamp time.Time       `json:"timestamp"`
	Question  string          `json:"question,omitempty"`
	Answer    json.RawMessage `json:"answer,omitempty"`
}

// Export converts a conversation to JSON format.
func (e *JSONExporter) Export(msgs []model.Message) ([]byte, error) {
	if len(msgs) == 0 {
		return nil, ErrEmptyConversation
	}

	doc := Transcript{
		Title:    title(msgs),
		Exported: e.options.now(),
		Messages: make([]TranscriptItem, 0, len(msgs)),
	}
	for _, msg := range msgs {
		item := TranscriptItem{
			ID:        msg.ID,
			Origin:    msg.Origin,
			Timestamp: msg.Timestamp,
			Question:  msg.Question,
		}
		if msg.IsBot() {
			body, err := model.EncodeResponse(msg.Response)
			if err != nil {
				return nil, fmt.Errorf("message %s: %w", msg.ID, err)
			}
			item.Answer = body
		}
		doc.Messages = append(doc.Messages, item)
	}

	return json.MarshalIndent(doc, "", "  ")
}

// FileExtension returns the file extension for JSON.
func (e *JSONExporter) FileExtension() string {
	return ".json"
}
