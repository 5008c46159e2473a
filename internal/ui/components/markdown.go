// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"
)

// MarkdownOptions controls markdown rendering.
type MarkdownOptions struct {
	NoColor bool
	Width   int
}

var (
	markdownMu        sync.Mutex
	markdownRenderers = map[MarkdownOptions]*glamour.TermRenderer{}
)

// Markdown renders a markdown answer for the terminal. On any renderer
// failure the source is returned unchanged.
func Markdown(src string, opts MarkdownOptions) string {
	r, err := markdownRenderer(opts)
	if err != nil {
		return src
	}
	out, err := r.Render(src)
	if err != nil {
		return src
	}
	return normalizeSpacing(out)
}

// markdownRenderer returns a cached renderer for opts. Renderers are
// expensive to build and the chat view asks for one on every redraw.
func markdownRenderer(opts MarkdownOptions) (*glamour.TermRenderer, error) {
	markdownMu.Lock()
	defer markdownMu.Unlock()

	if r, ok := markdownRenderers[opts]; ok {
		return r, nil
	}

	options := []glamour.TermRendererOption{}
	if opts.NoColor {
		options = append(options,
			glamour.WithStandardStyle("notty"),
			glamour.WithColorProfile(termenv.Ascii),
		)
	} else {
		options = append(options, glamour.WithAutoStyle())
	}
	if opts.Width > 0 {
		options = append(options, glamour.WithWordWrap(opts.Width))
	}

	r, err := glamour.NewTermRenderer(options...)
	if err != nil {
		return nil, err
	}
	markdownRenderers[opts] = r
	return r, nil
}

// normalizeSpacing trims the margins glamour adds around a document.
func normalizeSpacing(s string) string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return trimmed
	}
	lines := strings.Split(trimmed, "\n")
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], " ")
	}
	return strings.Join(lines, "\n")
}
