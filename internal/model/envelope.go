// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrMalformedResponse is returned when a body does not match the
// {"type": ..., "data": ...} envelope.
var ErrMalformedResponse = errors.New("malformed response")

// envelope is the wire form of a Response.
type envelope struct {
	Type      string          `json:"type"`
	Data      json.RawMessage `json:"data"`
	RawOutput json.RawMessage `json:"raw_output,omitempty"`
}

// =============================================================================
// DECODING
// =============================================================================

// DecodeResponse decodes a service answer.
//
// An unrecognized type tag is not an error: it decodes to Unknown. A body that
// is not an object, lacks a type, or carries a payload of the wrong shape
// returns an error wrapping ErrMalformedResponse.
func DecodeResponse(body []byte) (Response, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	tag := strings.ToLower(strings.TrimSpace(env.Type))
	if tag == "" {
		return nil, fmt.Errorf("%w: missing type", ErrMalformedResponse)
	}

	switch Kind(tag) {
	case KindText:
		s, ok := decodeString(env.Data)
		if !ok {
			return nil, fmt.Errorf("%w: text data must be a string", ErrMalformedResponse)
		}
		return Text{Body: s}, nil

	case KindTable:
		rows, err := decodeRows(env.Data)
		if err != nil {
			return nil, fmt.Errorf("%w: table: %v", ErrMalformedResponse, err)
		}
		return Table{Rows: rows}, nil

	case KindChart:
		points, err := decodePoints(env.Data)
		if err != nil {
			return nil, fmt.Errorf("%w: chart: %v", ErrMalformedResponse, err)
		}
		return Chart{Points: points}, nil

	case KindError:
		msg, ok := decodeString(env.Data)
		if !ok {
			msg = compactJSON(env.Data)
		}
		raw, _ := decodeString(env.RawOutput)
		return Error{Message: msg, RawOutput: raw}, nil

	default:
		return Unknown{Tag: env.Type}, nil
	}
}

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

func decodeString(raw json.RawMessage) (string, bool) {
	if isNull(raw) {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

func compactJSON(raw json.RawMessage) string {
	if isNull(raw) {
		return ""
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw)
	}
	return buf.String()
}

// decodeRows walks the array token by token so each row keeps its key order.
func decodeRows(raw json.RawMessage) ([]Row, error) {
	if isNull(raw) {
		return nil, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	if err := expectDelim(dec, '['); err != nil {
		return nil, err
	}

	var rows []Row
	for dec.More() {
		row, err := decodeRow(dec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", len(rows), err)
		}
		rows = append(rows, row)
	}
	if err := expectDelim(dec, ']'); err != nil {
		return nil, err
	}
	return rows, nil
}

func decodeRow(dec *json.Decoder) (Row, error) {
	if err := expectDelim(dec, '{'); err != nil {
		return nil, err
	}

	var row Row
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected token %v", tok)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("column %q: %w", key, err)
		}
		val := cellValue(raw)

		// A repeated key keeps its first position and its last value.
		replaced := false
		for i := range row {
			if row[i].Column == key {
				row[i].Value = val
				replaced = true
				break
			}
		}
		if !replaced {
			row = append(row, Cell{Column: key, Value: val})
		}
	}
	if err := expectDelim(dec, '}'); err != nil {
		return nil, err
	}
	return row, nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("expected %q, got %v", want, tok)
	}
	return nil
}

func cellValue(raw json.RawMessage) Value {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return StringValue("")
	}
	switch trimmed[0] {
	case '"':
		s, _ := decodeString(trimmed)
		return StringValue(s)
	case 'n':
		return StringValue("")
	case 't', 'f', '{', '[':
		return StringValue(compactJSON(trimmed))
	}
	f, err := strconv.ParseFloat(string(trimmed), 64)
	if err != nil {
		return StringValue(string(trimmed))
	}
	return NumberValue(f)
}

type wirePoint struct {
	Name  json.RawMessage `json:"name"`
	Value json.RawMessage `json:"value"`
}

func decodePoints(raw json.RawMessage) ([]Point, error) {
	if isNull(raw) {
		return nil, nil
	}

	var wire []wirePoint
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, err
	}

	points := make([]Point, 0, len(wire))
	for i, wp := range wire {
		name := cellValue(wp.Name).String()
		if isNull(wp.Value) {
			return nil, fmt.Errorf("point %d: missing value", i)
		}
		v := cellValue(wp.Value)
		if !v.IsNumber() {
			f, err := strconv.ParseFloat(strings.TrimSpace(v.String()), 64)
			if err != nil {
				return nil, fmt.Errorf("point %d: value %q is not a number", i, v.String())
			}
			v = NumberValue(f)
		}
		points = append(points, Point{Name: name, Value: v.Number()})
	}
	return points, nil
}

// =============================================================================
// ENCODING
// =============================================================================

// EncodeResponse produces the wire envelope for a response.
func EncodeResponse(resp Response) ([]byte, error) {
	env := struct {
		Type      string `json:"type"`
		Data      any    `json:"data"`
		RawOutput string `json:"raw_output,omitempty"`
	}{}

	switch r := resp.(type) {
	case Text:
		env.Type, env.Data = string(KindText), r.Body
	case Table:
		rows := r.Rows
		if rows == nil {
			rows = []Row{}
		}
		env.Type, env.Data = string(KindTable), rows
	case Chart:
		pts := make([]map[string]any, len(r.Points))
		for i, p := range r.Points {
			pts[i] = map[string]any{"name": p.Name, "value": p.Value}
		}
		env.Type, env.Data = string(KindChart), pts
	case Error:
		env.Type, env.Data, env.RawOutput = string(KindError), r.Message, r.RawOutput
	case Unknown:
		env.Type = r.Tag
	case nil:
		return nil, errors.New("nil response")
	default:
		return nil, fmt.Errorf("unsupported response %T", resp)
	}
	return json.Marshal(env)
}

// MarshalJSON encodes the row as an object, keeping column order.
func (r Row) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, c := range r {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(c.Column)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := c.Value.MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalJSON encodes numbers as JSON numbers and everything else as strings.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.numeric {
		return json.Marshal(v.num)
	}
	return json.Marshal(v.str)
}
