// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"
	"strings"

	"github.com/jeranaias/querydesk-tui/internal/model"
	"github.com/jeranaias/querydesk-tui/internal/render"
)

// =============================================================================
// MARKDOWN EXPORTER
// =============================================================================

// MarkdownExporter exports conversations to Markdown format.
type MarkdownExporter struct {
	options  *Options
	renderer *render.Renderer
}

// NewMarkdownExporter creates a new Markdown exporter.
func NewMarkdownExporter(opts *Options) *MarkdownExporter {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &MarkdownExporter{options: opts, renderer: render.New(opts.Locale)}
}

// Export converts a conversation to Markdown format.
func (e *MarkdownExporter) Export(msgs []model.Message) ([]byte, error) {
	if len(msgs) == 0 {
		return nil, ErrEmptyConversation
	}

	var sb strings.Builder

	fmt.Fprintf(&sb, "# %s\n\n", escapeMarkdown(title(msgs)))
	if e.options.IncludeTimestamps {
		fmt.Fprintf(&sb, "- **Started**: %s\n", formatTimestamp(msgs[0].Timestamp))
	}
	fmt.Fprintf(&sb, "- **Messages**: %d\n\n---\n\n", len(msgs))

	for i, msg := range msgs {
		label := msg.Origin.DisplayName()
		if e.options.IncludeTimestamps {
			fmt.Fprintf(&sb, "### %s <sub>%s</sub>\n\n", label, formatShortTimestamp(msg.Timestamp))
		} else {
			fmt.Fprintf(&sb, "### %s\n\n", label)
		}

		if msg.IsUser() {
			sb.WriteString(strings.TrimSpace(msg.Question))
		} else {
			sb.WriteString(e.formatResponse(msg.Response))
		}
		sb.WriteString("\n\n")

		if i < len(msgs)-1 {
			sb.WriteString("---\n\n")
		}
	}

	fmt.Fprintf(&sb, "---\n\n*Exported from QueryDesk on %s*\n",
		e.options.now().Format("January 2, 2006 at 3:04 PM"))

	return []byte(sb.String()), nil
}

// FileExtension returns the file extension for Markdown.
func (e *MarkdownExporter) FileExtension() string {
	return ".md"
}

// =============================================================================
// FORMATTING HELPERS
// =============================================================================

// formatResponse writes an answer the way the chat shows it, in Markdown.
func (e *MarkdownExporter) formatResponse(resp model.Response) string {
	p := e.renderer.Render(resp)

	switch p.Kind {
	case render.KindText:
		return strings.TrimSpace(p.Body)

	case render.KindTable:
		if p.Table == nil {
			return "_" + render.NoDataText + "_"
		}
		return markdownTable(p.Table.Headers, p.Table.Rows, p.Table.Numeric)

	case render.KindChart:
		if p.Chart == nil {
			return "_" + render.NoDataText + "_"
		}
		rows := make([][]string, len(p.Chart.Bars))
		for i, b := range p.Chart.Bars {
			rows[i] = []string{b.Label, b.Exact}
		}
		return markdownTable([]string{"Category", "Value"}, rows, []bool{false, true})

	case render.KindError:
		var sb strings.Builder
		sb.WriteString("> **Error**\n>\n")
		for _, line := range strings.Split(strings.TrimRight(p.Body, "\n"), "\n") {
			sb.WriteString("> " + line + "\n")
		}
		out := strings.TrimRight(sb.String(), "\n")
		if p.Detail != "" {
			out += "\n\nRaw output:\n\n```\n" + strings.TrimRight(p.Detail, "\n") + "\n```"
		}
		return out

	case render.KindNotice:
		if p.Detail != "" {
			return fmt.Sprintf("_%s_ (`%s`)", p.Body, p.Detail)
		}
		return "_" + p.Body + "_"

	default:
		return "_" + p.Body + "_"
	}
}

// markdownTable renders a pipe table. Numeric columns are right-aligned.
func markdownTable(headers []string, rows [][]string, numeric []bool) string {
	var sb strings.Builder

	sb.WriteString("|")
	for _, h := range headers {
		sb.WriteString(" " + escapeCell(h) + " |")
	}
	sb.WriteString("\n|")
	for i := range headers {
		if i < len(numeric) && numeric[i] {
			sb.WriteString(" ---: |")
		} else {
			sb.WriteString(" --- |")
		}
	}
	for _, row := range rows {
		sb.WriteString("\n|")
		for _, cell := range row {
			sb.WriteString(" " + escapeCell(cell) + " |")
		}
	}
	return sb.String()
}

// =============================================================================
// ESCAPING HELPERS
// =============================================================================

// escapeMarkdown escapes special Markdown characters in plain text.
func escapeMarkdown(s string) string {
	// Only escape characters that would break formatting in titles/headings
	s = strings.ReplaceAll(s, "#", "\\#")
	s = strings.ReplaceAll(s, "*", "\\*")
	s = strings.ReplaceAll(s, "_", "\\_")
	s = strings.ReplaceAll(s, "[", "\\[")
	s = strings.ReplaceAll(s, "]", "\\]")
	return s
}

// escapeCell keeps a value on one table row.
func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	s = strings.ReplaceAll(s, "\r\n", "<br>")
	return strings.ReplaceAll(s, "\n", "<br>")
}
