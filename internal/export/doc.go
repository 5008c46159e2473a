// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export writes a conversation transcript to a file.
//
// # Key Types
//
//   - Exporter: turns messages into file content
//   - MarkdownExporter: questions as headings, answers as prose, pipe tables or value lists
//   - JSONExporter: messages with each answer's wire envelope
//   - Options: output directory, timestamps, number locale
//
// # Usage
//
//	path, err := export.ExportToFile(conv.All(), export.NewMarkdownExporter(nil), nil)
//	if err != nil {
//		return err
//	}
package export
