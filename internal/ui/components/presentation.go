// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/jeranaias/querydesk-tui/internal/render"
	"github.com/jeranaias/querydesk-tui/internal/ui/styles"
	"github.com/jeranaias/querydesk-tui/internal/util"
)

// =============================================================================
// PRESENTATION VIEW - Draws a rendered answer
// =============================================================================

const (
	barRune      = "█"
	axisRune     = "─"
	axisTickRune = "┴"
	axisCorner   = "└"
	barSeparator = "│"

	// minBarArea keeps charts legible in narrow terminals.
	minBarArea = 10
)

// PresentationView draws a render.Presentation at a given width.
type PresentationView struct {
	Presentation render.Presentation
	Width        int
	ShowExact    bool // show grouped exact values next to chart bars
	Markdown     bool // render text answers as markdown
	theme        *styles.Theme
}

// NewPresentationView creates a view for p.
func NewPresentationView(p render.Presentation, theme *styles.Theme) *PresentationView {
	return &PresentationView{
		Presentation: p,
		Width:        80,
		theme:        theme,
	}
}

// SetWidth sets the available width.
func (v *PresentationView) SetWidth(width int) {
	v.Width = width
}

// View draws the presentation.
func (v *PresentationView) View() string {
	width := maxInt(v.Width, 20)
	p := v.Presentation

	switch p.Kind {
	case render.KindText:
		return v.viewText(width)
	case render.KindTable:
		if p.Table == nil {
			return v.theme.Placeholder.Render(render.NoDataText)
		}
		return v.viewTable(width)
	case render.KindChart:
		if p.Chart == nil || len(p.Chart.Bars) == 0 {
			return v.theme.Placeholder.Render(render.NoDataText)
		}
		return v.viewChart(width)
	case render.KindError:
		return v.viewError(width)
	case render.KindEmpty:
		return v.theme.Placeholder.Render(p.Body)
	default:
		return v.viewNotice(width)
	}
}

// =============================================================================
// TEXT
// =============================================================================

func (v *PresentationView) viewText(width int) string {
	if v.Markdown {
		return Markdown(v.Presentation.Body, MarkdownOptions{
			Width:   width,
			NoColor: v.theme.IsPlain(),
		})
	}
	return v.theme.Body.Render(wordWrap(v.Presentation.Body, width))
}

// =============================================================================
// TABLE
// =============================================================================

func (v *PresentationView) viewTable(width int) string {
	tv := v.Presentation.Table
	theme := v.theme

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(theme.TableBorder).
		Headers(tv.Headers...).
		Rows(tv.Rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return theme.TableHeader
			}
			if col < len(tv.Numeric) && tv.Numeric[col] {
				return theme.TableNumeric
			}
			return theme.TableCell
		})

	out := t.Render()
	if lipgloss.Width(out) > width {
		out = t.Width(width).Render()
	}
	return out
}

// =============================================================================
// CHART
// =============================================================================

func (v *PresentationView) viewChart(width int) string {
	cv := v.Presentation.Chart
	theme := v.theme

	labelW := 0
	for _, b := range cv.Bars {
		labelW = maxInt(labelW, util.StringWidth(b.Label))
	}
	labelW = minInt(labelW, maxInt(width/3, 6))

	valueW := 0
	for _, b := range cv.Bars {
		valueW = maxInt(valueW, util.StringWidth(v.valueText(b)))
	}

	// label + " │" + bars + " " + value
	barW := maxInt(width-labelW-valueW-3, minBarArea)

	// Halved so ranges near the float64 limit do not overflow.
	span := cv.Max/2 - cv.Min/2
	if span <= 0 || math.IsNaN(span) {
		span = 1
	}
	col := func(value float64) int {
		pos := (value/2 - cv.Min/2) / span * float64(barW)
		switch {
		case math.IsNaN(pos) || pos < 0:
			return 0
		case pos > float64(barW):
			return barW
		}
		return int(math.Round(pos))
	}
	zero := col(0)

	lines := make([]string, 0, len(cv.Bars)+2)
	for _, b := range cv.Bars {
		end := col(b.Value)
		start, stop := zero, end
		if b.Value < 0 {
			start, stop = end, zero
		}
		// Non-zero values always get at least one cell.
		if stop == start && b.Value != 0 {
			if b.Value < 0 && start > 0 {
				start--
			} else if b.Value > 0 && stop < barW {
				stop++
			}
		}

		barStyle := theme.ChartBar
		if b.Value < 0 {
			barStyle = theme.ChartBarNegative
		}

		var line strings.Builder
		line.WriteString(theme.ChartLabel.Render(util.PadRight(util.TruncateWidth(b.Label, labelW), labelW)))
		line.WriteString(theme.ChartAxis.Render(" " + barSeparator))
		line.WriteString(strings.Repeat(" ", start))
		line.WriteString(barStyle.Render(strings.Repeat(barRune, stop-start)))
		line.WriteString(strings.Repeat(" ", barW-stop))
		line.WriteString(" ")
		line.WriteString(theme.ChartValue.Render(b.Compact))
		if v.ShowExact {
			line.WriteString(theme.ChartExact.Render(" (" + b.Exact + ")"))
		}
		lines = append(lines, line.String())
	}

	lines = append(lines, v.axisLine(labelW, barW, col))
	lines = append(lines, v.tickLabels(labelW, barW, col))
	return strings.Join(lines, "\n")
}

func (v *PresentationView) valueText(b render.Bar) string {
	if v.ShowExact {
		return b.Compact + " (" + b.Exact + ")"
	}
	return b.Compact
}

// axisLine draws the value axis with a mark at every tick.
func (v *PresentationView) axisLine(labelW, barW int, col func(float64) int) string {
	axis := make([]string, barW+1)
	for i := range axis {
		axis[i] = axisRune
	}
	for _, t := range v.Presentation.Chart.Ticks {
		axis[col(t.Value)] = axisTickRune
	}
	axis[0] = axisCorner
	return v.theme.ChartAxis.Render(strings.Repeat(" ", labelW+1) + strings.Join(axis, ""))
}

// tickLabels centers each tick label under its mark, dropping labels that
// would collide with the previous one.
func (v *PresentationView) tickLabels(labelW, barW int, col func(float64) int) string {
	offset := labelW + 1
	var b strings.Builder
	pos := 0
	for _, t := range v.Presentation.Chart.Ticks {
		w := util.StringWidth(t.Label)
		start := offset + col(t.Value) - w/2
		if start < pos+1 && pos > 0 {
			continue
		}
		start = maxInt(start, pos)
		b.WriteString(strings.Repeat(" ", start-pos))
		b.WriteString(t.Label)
		pos = start + w
	}
	return v.theme.ChartAxis.Render(b.String())
}

// =============================================================================
// ERRORS AND NOTICES
// =============================================================================

func (v *PresentationView) viewError(width int) string {
	theme := v.theme
	p := v.Presentation
	inner := contentWidth(width)

	parts := []string{
		theme.ErrorTitle.Render(styles.StatusIndicators.Error + " Error"),
		"",
		theme.ErrorMessage.Render(wordWrap(p.Body, inner)),
	}
	if p.Detail != "" {
		parts = append(parts,
			"",
			theme.ErrorDetail.Render("Raw output:"),
			theme.ErrorDetail.Render(wordWrap(p.Detail, inner)),
		)
	}

	return theme.ErrorBox.Width(width - 2).Render(strings.Join(parts, "\n"))
}

func (v *PresentationView) viewNotice(width int) string {
	p := v.Presentation
	body := p.Body
	if body == "" {
		body = render.UnrecognizedText
	}
	out := v.theme.Notice.Render(styles.StatusIndicators.Warning + " " + wordWrap(body, width-4))
	if p.Detail != "" {
		out += "\n" + v.theme.Hint.Render(p.Detail)
	}
	return out
}
