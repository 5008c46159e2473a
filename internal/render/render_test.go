// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package render

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/jeranaias/querydesk-tui/internal/model"
)

func mustDecode(t *testing.T, body string) model.Response {
	t.Helper()
	resp, err := model.DecodeResponse([]byte(body))
	require.NoError(t, err)
	return resp
}

func TestRenderText(t *testing.T) {
	got := Render(model.Text{Body: "Line one\n  line two"})
	want := Presentation{Kind: KindText, Body: "Line one\n  line two"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Render() mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderTable(t *testing.T) {
	resp := mustDecode(t, `{"type":"table","data":[{"a":1,"b":"x"},{"a":2,"b":"y"},{"b":"z","a":1000}]}`)

	got := Render(resp)
	want := Presentation{
		Kind: KindTable,
		Table: &TableView{
			Columns: []string{"a", "b"},
			Headers: []string{"A", "B"},
			Rows: [][]string{
				{"1", "x"},
				{"2", "y"},
				{"1,000", "z"},
			},
			Numeric: []bool{true, false},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Render() mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderTableColumnsFromFirstRow(t *testing.T) {
	resp := mustDecode(t, `{"type":"table","data":[
		{"clientName":"Shah Rukh Khan","stockSymbol":"RELIANCE","currentValue":2850000},
		{"clientName":"Priyanka Chopra","extra":"ignored"}
	]}`)

	view := Render(resp).Table
	require.NotNil(t, view)
	assert.Equal(t, []string{"Client Name", "Stock Symbol", "Current Value"}, view.Headers)
	assert.Equal(t, []string{"Shah Rukh Khan", "RELIANCE", "2,850,000"}, view.Rows[0])
	assert.Equal(t, []string{"Priyanka Chopra", "", ""}, view.Rows[1])
}

func TestRenderEmptyPayloads(t *testing.T) {
	for _, resp := range []model.Response{model.Table{}, model.Chart{}, model.Table{Rows: []model.Row{}}} {
		got := Render(resp)
		assert.Equal(t, KindEmpty, got.Kind, "%T", resp)
		assert.Equal(t, NoDataText, got.Body)
		assert.Nil(t, got.Table)
		assert.Nil(t, got.Chart)
	}
}

func TestRenderChart(t *testing.T) {
	got := Render(model.Chart{Points: []model.Point{{Name: "RM1", Value: 1200000}}})
	require.Equal(t, KindChart, got.Kind)
	require.Len(t, got.Chart.Bars, 1)

	bar := got.Chart.Bars[0]
	assert.Equal(t, "RM1", bar.Label)
	assert.Equal(t, "1.2M", bar.Compact)
	assert.Equal(t, "1,200,000", bar.Exact)

	labels := make([]string, 0, len(got.Chart.Ticks))
	for _, tk := range got.Chart.Ticks {
		labels = append(labels, tk.Label)
	}
	assert.Equal(t, []string{"0", "500K", "1M", "1.5M"}, labels)
	assert.Equal(t, 0.0, got.Chart.Min)
	assert.Equal(t, 1500000.0, got.Chart.Max)
}

func TestRenderChartNegativeValues(t *testing.T) {
	got := Render(model.Chart{Points: []model.Point{{Name: "loss", Value: -300}, {Name: "gain", Value: 700}}})
	require.Equal(t, KindChart, got.Kind)
	assert.LessOrEqual(t, got.Chart.Min, -300.0)
	assert.GreaterOrEqual(t, got.Chart.Max, 700.0)
	assert.Equal(t, "-300", got.Chart.Bars[0].Compact)
}

func TestRenderChartAllNegative(t *testing.T) {
	got := Render(model.Chart{Points: []model.Point{{Name: "a", Value: -5}, {Name: "b", Value: -20}}})
	require.Equal(t, KindChart, got.Kind)

	labels := make([]string, 0, len(got.Chart.Ticks))
	for _, tk := range got.Chart.Ticks {
		labels = append(labels, tk.Label)
	}
	assert.Equal(t, []string{"-20", "-15", "-10", "-5", "0"}, labels)
	assert.Equal(t, -20.0, got.Chart.Min)
	assert.Equal(t, 0.0, got.Chart.Max)
}

func TestRenderChartAllZero(t *testing.T) {
	got := Render(model.Chart{Points: []model.Point{{Name: "a", Value: 0}}})
	require.Equal(t, KindChart, got.Kind)
	assert.Len(t, got.Chart.Ticks, 3)
	assert.Equal(t, 0.0, got.Chart.Min)
	assert.Equal(t, 1.0, got.Chart.Max)
}

func TestRenderChartExtremeValues(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		wantLo float64
		wantHi float64
	}{
		{"huge positive", `{"type":"chart","data":[{"name":"a","value":1.7e308}]}`, 0, 1.7e308},
		{"huge both ways", `{"type":"chart","data":[{"name":"a","value":-1.7e308},{"name":"b","value":1.7e308}]}`, -1.7e308, 1.7e308},
		{"non-finite string", `{"type":"chart","data":[{"name":"a","value":"NaN"},{"name":"b","value":3}]}`, 0, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Presentation
			require.NotPanics(t, func() { got = Render(mustDecode(t, tt.body)) })
			require.Equal(t, KindChart, got.Kind)
			require.GreaterOrEqual(t, len(got.Chart.Ticks), 2)
			assert.LessOrEqual(t, len(got.Chart.Ticks), axisSteps+3)
			assert.LessOrEqual(t, got.Chart.Min, tt.wantLo)
			assert.GreaterOrEqual(t, got.Chart.Max, tt.wantHi)
		})
	}

	got := Render(model.Chart{Points: []model.Point{{Name: "a", Value: 1.7e308}}})
	assert.Equal(t, "1.7e+308", got.Chart.Bars[0].Compact)
}

func TestRenderErrorPreservesLineBreaks(t *testing.T) {
	got := Render(model.Error{Message: "first line\nsecond line\n\nthird", RawOutput: "raw"})
	want := Presentation{Kind: KindError, Body: "first line\nsecond line\n\nthird", Detail: "raw"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Render() mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderIsTotal(t *testing.T) {
	for _, resp := range []model.Response{
		model.Text{},
		model.Table{},
		model.Chart{},
		model.Error{},
		model.Unknown{},
		model.Unknown{Tag: "map"},
		nil,
	} {
		assert.NotPanics(t, func() { _ = Render(resp) })
	}

	got := Render(model.Unknown{Tag: "map"})
	assert.Equal(t, KindNotice, got.Kind)
	assert.Equal(t, UnrecognizedText, got.Body)
	assert.Equal(t, `type "map"`, got.Detail)

	assert.Equal(t, KindNotice, Render(nil).Kind)
}

func TestRenderIsDeterministic(t *testing.T) {
	resp := mustDecode(t, `{"type":"chart","data":[{"name":"Anjali Sharma","value":10435000},{"name":"Vikram Singh","value":4300000}]}`)
	if diff := cmp.Diff(Render(resp), Render(resp)); diff != "" {
		t.Errorf("Render not deterministic:\n%s", diff)
	}
}

func TestHeaderLabel(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"clientName", "Client Name"},
		{"a", "A"},
		{"currentValue", "Current Value"},
		{"name", "Name"},
		{"rmId", "Rm Id"},
		{"Status", "Status"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, HeaderLabel(tt.in), "HeaderLabel(%q)", tt.in)
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{1000, "1,000"},
		{1200000, "1,200,000"},
		{-4500, "-4,500"},
		{1234.5, "1,234.5"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatNumber(tt.in), "FormatNumber(%v)", tt.in)
	}
}

func TestFormatNumberLocale(t *testing.T) {
	r := New(language.German)
	assert.Equal(t, "1.200.000", r.FormatNumber(1200000))
}

func TestCompact(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1200, "1.2K"},
		{1000, "1K"},
		{1200000, "1.2M"},
		{3000000000, "3B"},
		{-1500, "-1.5K"},
		{999999, "1M"},
		{12.5, "12.5"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Compact(tt.in), "Compact(%v)", tt.in)
	}
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "table", KindTable.String())
	assert.Equal(t, "empty", KindEmpty.String())
	assert.Equal(t, "unknown", Kind(42).String())
}
