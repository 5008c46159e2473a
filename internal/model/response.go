// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"strconv"
)

// =============================================================================
// RESPONSE VARIANTS
// =============================================================================

// Kind is the tag of a Response.
type Kind string

const (
	KindText    Kind = "text"
	KindTable   Kind = "table"
	KindChart   Kind = "chart"
	KindError   Kind = "error"
	KindUnknown Kind = "unknown"
)

// Response is an answer from the query service.
//
// The set of variants is closed: Text, Table, Chart, Error and Unknown.
// Consumers switch on the concrete type.
type Response interface {
	Kind() Kind
	isResponse()
}

// Text is a prose answer.
type Text struct {
	Body string
}

// Table is a tabular answer. Column order is the key order of the first row.
type Table struct {
	Rows []Row
}

// Chart is a categorical bar chart.
type Chart struct {
	Points []Point
}

// Error is a failure, either reported by the service or produced locally
// when the service could not be reached.
type Error struct {
	Message string
	// RawOutput is the unparsed model output the service failed to decode.
	RawOutput string
}

// Unknown is any answer whose tag was not recognized.
type Unknown struct {
	Tag string
}

func (Text) Kind() Kind    { return KindText }
func (Table) Kind() Kind   { return KindTable }
func (Chart) Kind() Kind   { return KindChart }
func (Error) Kind() Kind   { return KindError }
func (Unknown) Kind() Kind { return KindUnknown }

func (Text) isResponse()    {}
func (Table) isResponse()   {}
func (Chart) isResponse()   {}
func (Error) isResponse()   {}
func (Unknown) isResponse() {}

// IsEmpty reports whether the table has no rows.
func (t Table) IsEmpty() bool { return len(t.Rows) == 0 }

// IsEmpty reports whether the chart has no points.
func (c Chart) IsEmpty() bool { return len(c.Points) == 0 }

// Columns returns the column names, taken from the first row.
func (t Table) Columns() []string {
	if len(t.Rows) == 0 {
		return nil
	}
	return t.Rows[0].Columns()
}

// =============================================================================
// TABLE CELLS
// =============================================================================

// Point is one bar of a Chart.
type Point struct {
	Name  string
	Value float64
}

// Row is one table row. Cells keep the order in which the service sent them.
type Row []Cell

// Cell is a single column/value pair.
type Cell struct {
	Column string
	Value  Value
}

// Columns returns the column names of the row in order.
func (r Row) Columns() []string {
	cols := make([]string, len(r))
	for i, c := range r {
		cols[i] = c.Column
	}
	return cols
}

// Get returns the value stored under column.
func (r Row) Get(column string) (Value, bool) {
	for _, c := range r {
		if c.Column == column {
			return c.Value, true
		}
	}
	return Value{}, false
}

// Value is a table cell: either a number or a string.
type Value struct {
	str     string
	num     float64
	numeric bool
}

// StringValue creates a string cell.
func StringValue(s string) Value {
	return Value{str: s}
}

// NumberValue creates a numeric cell.
func NumberValue(f float64) Value {
	return Value{num: f, numeric: true}
}

// IsNumber reports whether the cell holds a number.
func (v Value) IsNumber() bool {
	return v.numeric
}

// Number returns the numeric value, or 0 for string cells.
func (v Value) Number() float64 {
	return v.num
}

// String returns the cell in its plain string form.
func (v Value) String() string {
	if v.numeric {
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	}
	return v.str
}
