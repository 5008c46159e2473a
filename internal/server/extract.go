// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strings"
)

var fencePattern = regexp.MustCompile("(?s)```json\\s*(.*?)\\s*```")

// ExtractJSON pulls the JSON envelope out of raw model output. A ```json
// fence wins; otherwise the text between the first '{' and the last '}' is
// used. ok is false when neither is present.
func ExtractJSON(output string) (string, bool) {
	if m := fencePattern.FindStringSubmatch(output); m != nil {
		return m[1], true
	}

	start := strings.Index(output, "{")
	end := strings.LastIndex(output, "}")
	if start < 0 || end <= start {
		return "", false
	}
	return output[start : end+1], true
}

// compact validates candidate and strips insignificant whitespace.
func compact(candidate string) ([]byte, error) {
	var buf bytes.Buffer
	if err := json.Compact(&buf, []byte(candidate)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
