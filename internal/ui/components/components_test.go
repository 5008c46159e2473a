// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"io"
	"strings"
	"testing"
	"time"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/jeranaias/querydesk-tui/internal/model"
	"github.com/jeranaias/querydesk-tui/internal/render"
	"github.com/jeranaias/querydesk-tui/internal/ui/styles"
)

func plainTheme() *styles.Theme {
	return styles.NewThemeWithProfile(io.Discard, termenv.Ascii)
}

func row(cells ...model.Cell) model.Row {
	return model.Row(cells)
}

func draw(t *testing.T, resp model.Response, exact bool) string {
	t.Helper()
	v := NewPresentationView(render.Render(resp), plainTheme())
	v.SetWidth(80)
	v.ShowExact = exact
	return v.View()
}

// =============================================================================
// PRESENTATION TESTS
// =============================================================================

func TestPresentationTable(t *testing.T) {
	resp := model.Table{Rows: []model.Row{
		row(
			model.Cell{Column: "clientName", Value: model.StringValue("Shah Rukh Khan")},
			model.Cell{Column: "city", Value: model.StringValue("Mumbai")},
			model.Cell{Column: "value", Value: model.NumberValue(1500000)},
		),
		row(
			model.Cell{Column: "clientName", Value: model.StringValue("Virat Kohli")},
			model.Cell{Column: "city", Value: model.StringValue("Delhi")},
			model.Cell{Column: "value", Value: model.NumberValue(1000)},
		),
	}}

	out := draw(t, resp, false)
	assert.Contains(t, out, "Client Name")
	assert.Contains(t, out, "City")
	assert.Contains(t, out, "Shah Rukh Khan")
	assert.Contains(t, out, "1,500,000")
	assert.Contains(t, out, "1,000")

	// Header comes before the first data row.
	assert.Less(t, strings.Index(out, "Client Name"), strings.Index(out, "Shah Rukh Khan"))
	assert.Less(t, strings.Index(out, "Shah Rukh Khan"), strings.Index(out, "Virat Kohli"))
}

func TestPresentationChart(t *testing.T) {
	resp := model.Chart{Points: []model.Point{
		{Name: "RM1", Value: 1200000},
		{Name: "RM2", Value: 300000},
	}}

	out := draw(t, resp, false)
	assert.Contains(t, out, "RM1")
	assert.Contains(t, out, "1.2M")
	assert.Contains(t, out, "300K")
	assert.Contains(t, out, barRune)
	assert.NotContains(t, out, "1,200,000")

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 4)
	ticks := lines[len(lines)-1]
	for _, label := range []string{"0", "500K", "1M", "1.5M"} {
		assert.Contains(t, ticks, label)
	}

	// The larger value draws the longer bar.
	assert.Greater(t, strings.Count(lines[0], barRune), strings.Count(lines[1], barRune))
}

func TestPresentationChartExactValues(t *testing.T) {
	resp := model.Chart{Points: []model.Point{{Name: "RM1", Value: 1200000}}}

	out := draw(t, resp, true)
	assert.Contains(t, out, "1.2M")
	assert.Contains(t, out, "(1,200,000)")
}

func TestPresentationChartNegative(t *testing.T) {
	resp := model.Chart{Points: []model.Point{
		{Name: "gain", Value: 500},
		{Name: "loss", Value: -250},
	}}

	out := draw(t, resp, false)
	lines := strings.Split(out, "\n")
	require.GreaterOrEqual(t, len(lines), 2)
	assert.Contains(t, lines[1], barRune)
	assert.Contains(t, lines[1], "-250")
}

func TestPresentationError(t *testing.T) {
	resp := model.Error{
		Message:   "Sorry, something failed.\nError: boom",
		RawOutput: "not json at all",
	}

	out := draw(t, resp, false)
	assert.Contains(t, out, styles.StatusIndicators.Error+" Error")
	assert.Contains(t, out, "Raw output:")
	assert.Contains(t, out, "not json at all")

	var first, second int = -1, -1
	for i, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "Sorry, something failed.") {
			first = i
		}
		if strings.Contains(line, "Error: boom") {
			second = i
		}
	}
	require.NotEqual(t, -1, first)
	assert.Equal(t, first+1, second, "line break in the message should be kept")
}

func TestPresentationEmptyAndNotice(t *testing.T) {
	assert.Contains(t, draw(t, model.Table{}, false), render.NoDataText)
	assert.Contains(t, draw(t, model.Chart{}, false), render.NoDataText)

	out := draw(t, model.Unknown{Tag: "map"}, false)
	assert.Contains(t, out, render.UnrecognizedText)
	assert.Contains(t, out, `type "map"`)
}

func TestPresentationText(t *testing.T) {
	out := draw(t, model.Text{Body: "Anjali Sharma manages two clients."}, false)
	assert.Contains(t, out, "Anjali Sharma manages two clients.")
}

func TestPresentationTextKeepsWhitespace(t *testing.T) {
	body := "Totals:\n  RM01    9,525,000\n  RM02    4,300,000"
	out := draw(t, model.Text{Body: body}, false)

	lines := strings.Split(out, "\n")
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], " ")
	}
	assert.Equal(t, strings.Split(body, "\n"), lines)
}

func TestPresentationErrorKeepsIndentation(t *testing.T) {
	out := draw(t, model.Error{Message: "Failed:\n    step two"}, false)
	assert.Contains(t, out, "    step two")
}

func TestPresentationChartExtremeRange(t *testing.T) {
	resp := model.Chart{Points: []model.Point{
		{Name: "low", Value: -1.7e308},
		{Name: "high", Value: 1.7e308},
	}}

	var out string
	require.NotPanics(t, func() { out = draw(t, resp, true) })
	lines := strings.Split(out, "\n")
	require.GreaterOrEqual(t, len(lines), 2)
	assert.Contains(t, lines[0], barRune)
	assert.Contains(t, lines[1], barRune)
}

func TestMarkdown(t *testing.T) {
	out := Markdown("# Holdings\n\nThree **clients** hold RELIANCE.", MarkdownOptions{NoColor: true, Width: 60})
	assert.Contains(t, out, "Holdings")
	assert.Contains(t, out, "clients")
	assert.Equal(t, strings.TrimSpace(out), out)
}

// =============================================================================
// MESSAGE TESTS
// =============================================================================

func TestMessageBubbles(t *testing.T) {
	theme := plainTheme()

	user := NewMessageBubble(model.NewUserMessage("Who is Anjali Sharma?"), theme)
	user.SetWidth(60)
	out := user.View()
	assert.Contains(t, out, "You")
	assert.Contains(t, out, "Who is Anjali Sharma?")

	bot := NewMessageBubble(model.NewBotMessage(model.Text{Body: "An RM in Mumbai."}), theme)
	bot.SetWidth(60)
	out = bot.View()
	assert.Contains(t, out, "QueryDesk")
	assert.Contains(t, out, "An RM in Mumbai.")
}

func TestMessageBubbleUsesRendererLocale(t *testing.T) {
	msg := model.NewBotMessage(model.Chart{Points: []model.Point{{Name: "RM1", Value: 1200000}}})
	bubble := NewMessageBubble(msg, plainTheme())
	bubble.SetRenderer(render.New(language.German))
	bubble.ShowExact = true

	assert.Contains(t, bubble.View(), "1.200.000")
}

func TestMessageListOrder(t *testing.T) {
	list := NewMessageList(plainTheme())
	list.SetWidth(70)
	assert.Empty(t, list.View())

	list.SetMessages([]model.Message{
		model.NewUserMessage("first question"),
		model.NewBotMessage(model.Text{Body: "first answer"}),
		model.NewUserMessage("second question"),
	})
	out := list.View()

	a := strings.Index(out, "first question")
	b := strings.Index(out, "first answer")
	c := strings.Index(out, "second question")
	assert.True(t, a >= 0 && a < b && b < c, "messages out of order:\n%s", out)
}

// =============================================================================
// WELCOME TESTS
// =============================================================================

func TestWelcomeSelection(t *testing.T) {
	w := NewWelcome([]string{"one", "two", "three"}, plainTheme())

	ex, ok := w.SelectedExample()
	require.True(t, ok)
	assert.Equal(t, "one", ex)

	w.Next()
	w.Next()
	assert.Equal(t, 2, w.Selected())
	w.Next()
	assert.Equal(t, 0, w.Selected(), "Next should wrap")
	w.Prev()
	assert.Equal(t, 2, w.Selected(), "Prev should wrap")

	w.SetSize(80, 24)
	out := w.View()
	assert.Contains(t, out, "> 3. three")
	assert.Contains(t, out, "1. one")
}

func TestWelcomeWithoutExamples(t *testing.T) {
	w := NewWelcome(nil, plainTheme())
	w.Next()
	w.Prev()

	_, ok := w.SelectedExample()
	assert.False(t, ok)
	assert.Contains(t, w.View(), "Type a question")
}

// =============================================================================
// STATUS BAR TESTS
// =============================================================================

func TestStatusBar(t *testing.T) {
	bar := NewStatusBar(plainTheme())
	bar.SetWidth(120)
	bar.Endpoint = "http://localhost:8000"
	bar.Health = HealthOnline
	bar.MessageCount = 2

	out := bar.View()
	assert.Contains(t, out, "online")
	assert.Contains(t, out, "http://localhost:8000")
	assert.Contains(t, out, "2 messages")
	assert.Contains(t, out, "ready")

	bar.Busy = true
	bar.MessageCount = 1
	out = bar.View()
	assert.Contains(t, out, "thinking...")
	assert.Contains(t, out, "1 message")

	bar.SetWidth(40)
	bar.Health = HealthOffline
	assert.Contains(t, bar.View(), styles.StatusIndicators.Error)
}

func TestHealthStrings(t *testing.T) {
	assert.Equal(t, "online", HealthOnline.String())
	assert.Equal(t, "offline", HealthOffline.String())
	assert.Equal(t, "checking", HealthUnknown.String())
}

// =============================================================================
// SPINNER AND HELPER TESTS
// =============================================================================

func TestThinkingIndicator(t *testing.T) {
	ti := NewThinkingIndicator(plainTheme())
	assert.Empty(t, ti.View())

	cmd := ti.Start()
	assert.NotNil(t, cmd)
	assert.True(t, ti.IsActive())
	assert.Contains(t, ti.View(), "Thinking...")

	ti.Stop()
	_, cmd = ti.Update(nil)
	assert.Nil(t, cmd)
	assert.Empty(t, ti.View())
}

func TestErrorDisplay(t *testing.T) {
	e := ConnectionError("http://localhost:8000", "cannot connect to query service", plainTheme())
	e.SetWidth(70)
	out := e.View()
	assert.Contains(t, out, "Connection Error")
	assert.Contains(t, out, "cannot connect to query service")
	assert.Contains(t, out, "http://localhost:8000")
}

func TestWordWrap(t *testing.T) {
	assert.Equal(t, "the quick\nbrown fox", wordWrap("the quick brown fox", 10))
	assert.Equal(t, "a\n\nb", wordWrap("a\n\nb", 10))
	assert.Equal(t, "unchanged", wordWrap("unchanged", 0))
	assert.Equal(t, "  a    b", wordWrap("  a    b", 20))
}

func TestFormatElapsed(t *testing.T) {
	assert.Equal(t, "5s", formatElapsed(5*time.Second))
	assert.Equal(t, "1m05s", formatElapsed(65*time.Second))
}
