// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/querydesk-tui/internal/model"
	"github.com/jeranaias/querydesk-tui/internal/render"
)

var fixedNow = time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

func testOptions(dir string) *Options {
	return &Options{
		OutputDir:         dir,
		IncludeTimestamps: false,
		Locale:            render.DefaultLocale,
		Now:               func() time.Time { return fixedNow },
	}
}

func holdersTable() model.Table {
	return model.Table{Rows: []model.Row{
		{
			{Column: "clientName", Value: model.StringValue("Priyanka Chopra")},
			{Column: "quantity", Value: model.NumberValue(1500)},
		},
		{
			{Column: "clientName", Value: model.StringValue("A|B")},
			{Column: "quantity", Value: model.NumberValue(1000)},
		},
	}}
}

func transcript() []model.Message {
	return []model.Message{
		model.NewUserMessage("Which clients hold RELIANCE?"),
		model.NewBotMessage(holdersTable()),
		model.NewUserMessage("Totals per manager"),
		model.NewBotMessage(model.Chart{Points: []model.Point{{Name: "Anjali Sharma", Value: 10435000}}}),
		model.NewUserMessage("Break it"),
		model.NewBotMessage(model.Error{Message: "line one\nline two", RawOutput: "not json"}),
		model.NewBotMessage(model.Unknown{Tag: "map"}),
	}
}

// =============================================================================
// MARKDOWN
// =============================================================================

func TestMarkdownExport(t *testing.T) {
	out, err := NewMarkdownExporter(testOptions("")).Export(transcript())
	require.NoError(t, err)
	md := string(out)

	assert.True(t, strings.HasPrefix(md, "# Which clients hold RELIANCE?\n"))
	assert.Contains(t, md, "- **Messages**: 7")
	assert.Contains(t, md, "### You\n\nWhich clients hold RELIANCE?")
	assert.Contains(t, md, "### QueryDesk\n\n| Client Name | Quantity |\n| --- | ---: |\n| Priyanka Chopra | 1,500 |\n| A\\|B | 1,000 |")
	assert.Contains(t, md, "| Category | Value |\n| --- | ---: |\n| Anjali Sharma | 10,435,000 |")
	assert.Contains(t, md, "> **Error**\n>\n> line one\n> line two")
	assert.Contains(t, md, "Raw output:\n\n```\nnot json\n```")
	assert.Contains(t, md, render.UnrecognizedText)
	assert.Contains(t, md, "*Exported from QueryDesk on January 2, 2025 at 3:04 AM*")
	assert.NotContains(t, md, "<sub>")
}

func TestMarkdownExport_Timestamps(t *testing.T) {
	opts := testOptions("")
	opts.IncludeTimestamps = true

	out, err := NewMarkdownExporter(opts).Export(transcript()[:1])
	require.NoError(t, err)
	assert.Contains(t, string(out), "- **Started**: ")
	assert.Contains(t, string(out), "### You <sub>")
}

func TestMarkdownExport_Empty(t *testing.T) {
	_, err := NewMarkdownExporter(nil).Export(nil)
	assert.ErrorIs(t, err, ErrEmptyConversation)
}

// =============================================================================
// JSON
// =============================================================================

func TestJSONExport_RoundTripsAnswers(t *testing.T) {
	msgs := transcript()
	out, err := NewJSONExporter(testOptions("")).Export(msgs)
	require.NoError(t, err)

	var doc Transcript
	require.NoError(t, json.Unmarshal(out, &doc))
	assert.Equal(t, "Which clients hold RELIANCE?", doc.Title)
	assert.True(t, doc.Exported.Equal(fixedNow))
	require.Len(t, doc.Messages, len(msgs))

	assert.Equal(t, model.OriginUser, doc.Messages[0].Origin)
	assert.Empty(t, doc.Messages[0].Answer)

	resp, err := model.DecodeResponse(doc.Messages[1].Answer)
	require.NoError(t, err)
	assert.Equal(t, holdersTable(), resp)

	resp, err = model.DecodeResponse(doc.Messages[5].Answer)
	require.NoError(t, err)
	assert.Equal(t, model.Error{Message: "line one\nline two", RawOutput: "not json"}, resp)
}

// =============================================================================
// FILES
// =============================================================================

func TestExportToFile(t *testing.T) {
	dir := t.TempDir()
	opts := testOptions(dir)

	path, err := ExportToFile(transcript(), NewMarkdownExporter(opts), opts)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "querydesk_Which_clients_hold_RELIANCE-_20250102_030405.md"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Priyanka Chopra")
}

func TestExportToFile_Empty(t *testing.T) {
	_, err := ExportToFile(nil, NewJSONExporter(nil), testOptions(t.TempDir()))
	assert.ErrorIs(t, err, ErrEmptyConversation)
}

func TestForFormat(t *testing.T) {
	e, err := ForFormat("MD", nil)
	require.NoError(t, err)
	assert.Equal(t, ".md", e.FileExtension())

	e, err = ForFormat("json", nil)
	require.NoError(t, err)
	assert.Equal(t, ".json", e.FileExtension())

	_, err = ForFormat("html", nil)
	assert.Error(t, err)
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "a-b_c", sanitizeFilename("a/b c"))
	assert.Equal(t, "conversation", sanitizeFilename(""))
	assert.Len(t, []rune(sanitizeFilename(strings.Repeat("x", 80))), 50)
}
