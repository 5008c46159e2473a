// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package render maps query responses to presentations.
//
// Render is pure: the same Response always yields the same Presentation, and
// every variant (including Unknown) produces one. Drawing a Presentation in
// the terminal is left to the ui/components package.
package render

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jeranaias/querydesk-tui/internal/model"
)

// Kind says how a Presentation should be drawn.
type Kind int

const (
	KindText Kind = iota
	KindTable
	KindChart
	KindError
	KindEmpty
	KindNotice
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindTable:
		return "table"
	case KindChart:
		return "chart"
	case KindError:
		return "error"
	case KindEmpty:
		return "empty"
	case KindNotice:
		return "notice"
	default:
		return "unknown"
	}
}

const (
	// NoDataText is shown for a table or chart without data.
	NoDataText = "No data to display."

	// UnrecognizedText is shown for a response type the client does not know.
	UnrecognizedText = "Received an unrecognized response type."
)

// Presentation is the display-ready form of a Response.
type Presentation struct {
	Kind Kind

	// Body is the text for KindText, KindError, KindEmpty and KindNotice.
	Body string
	// Detail is secondary text: raw model output for errors, the tag for notices.
	Detail string

	Table *TableView
	Chart *ChartView
}

// TableView is a table with formatted cells.
type TableView struct {
	Columns []string
	Headers []string
	Rows    [][]string
	// Numeric marks columns whose first-row cell is a number.
	Numeric []bool
}

// ChartView is a categorical bar chart.
type ChartView struct {
	Bars  []Bar
	Min   float64
	Max   float64
	Ticks []Tick
}

// Bar is one category of a chart.
type Bar struct {
	Label string
	Value float64
	// Compact is the short axis form, e.g. "1.2M".
	Compact string
	// Exact is the grouped tooltip form, e.g. "1,200,000".
	Exact string
}

// Tick is a labelled position on the value axis.
type Tick struct {
	Value float64
	Label string
}

// =============================================================================
// RENDERER
// =============================================================================

// Renderer formats numbers for one locale.
type Renderer struct {
	printer *message.Printer
}

// New creates a renderer for the given locale.
func New(tag language.Tag) *Renderer {
	return &Renderer{printer: message.NewPrinter(tag)}
}

// DefaultLocale is used when no locale is configured.
var DefaultLocale = language.AmericanEnglish

var defaultRenderer = New(DefaultLocale)

// Render maps a response using US English number formatting.
func Render(resp model.Response) Presentation {
	return defaultRenderer.Render(resp)
}

// Render maps a response to its presentation.
func (r *Renderer) Render(resp model.Response) Presentation {
	switch v := resp.(type) {
	case model.Text:
		return Presentation{Kind: KindText, Body: v.Body}

	case model.Table:
		if v.IsEmpty() {
			return Presentation{Kind: KindEmpty, Body: NoDataText}
		}
		return Presentation{Kind: KindTable, Table: r.table(v)}

	case model.Chart:
		if v.IsEmpty() {
			return Presentation{Kind: KindEmpty, Body: NoDataText}
		}
		return Presentation{Kind: KindChart, Chart: r.chart(v)}

	case model.Error:
		return Presentation{Kind: KindError, Body: v.Message, Detail: v.RawOutput}

	case model.Unknown:
		p := Presentation{Kind: KindNotice, Body: UnrecognizedText}
		if v.Tag != "" {
			p.Detail = fmt.Sprintf("type %q", v.Tag)
		}
		return p

	default:
		return Presentation{Kind: KindNotice, Body: UnrecognizedText}
	}
}

func (r *Renderer) table(t model.Table) *TableView {
	cols := t.Columns()
	view := &TableView{
		Columns: cols,
		Headers: make([]string, len(cols)),
		Rows:    make([][]string, 0, len(t.Rows)),
		Numeric: make([]bool, len(cols)),
	}
	for i, c := range cols {
		view.Headers[i] = HeaderLabel(c)
		if v, ok := t.Rows[0].Get(c); ok {
			view.Numeric[i] = v.IsNumber()
		}
	}

	for _, row := range t.Rows {
		cells := make([]string, len(cols))
		for i, c := range cols {
			if v, ok := row.Get(c); ok {
				cells[i] = r.cell(v)
			}
		}
		view.Rows = append(view.Rows, cells)
	}
	return view
}

func (r *Renderer) cell(v model.Value) string {
	if v.IsNumber() {
		return r.FormatNumber(v.Number())
	}
	return v.String()
}

// HeaderLabel turns a field name into a column header by inserting a space
// before each internal uppercase letter and capitalizing the first letter:
// "clientName" becomes "Client Name".
func HeaderLabel(field string) string {
	runes := []rune(field)
	var b strings.Builder
	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) && runes[i-1] != ' ' {
			b.WriteRune(' ')
		}
		b.WriteRune(r)
	}

	out := []rune(strings.TrimSpace(b.String()))
	if len(out) == 0 {
		return ""
	}
	out[0] = unicode.ToUpper(out[0])
	return string(out)
}
