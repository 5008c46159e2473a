// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/querydesk-tui/internal/model"
	"github.com/jeranaias/querydesk-tui/internal/render"
	"github.com/jeranaias/querydesk-tui/internal/ui/styles"
	"github.com/jeranaias/querydesk-tui/internal/util"
)

// =============================================================================
// MESSAGE BUBBLE COMPONENT
// =============================================================================

// MessageBubble draws one conversation entry.
type MessageBubble struct {
	Message       model.Message
	Width         int
	ShowTimestamp bool
	ShowExact     bool
	Markdown      bool
	renderer      *render.Renderer
	theme         *styles.Theme
}

// NewMessageBubble creates a new MessageBubble.
func NewMessageBubble(msg model.Message, theme *styles.Theme) *MessageBubble {
	return &MessageBubble{
		Message:       msg,
		Width:         80,
		ShowTimestamp: true,
		theme:         theme,
	}
}

// SetWidth sets the bubble width.
func (b *MessageBubble) SetWidth(width int) {
	b.Width = width
}

// SetRenderer sets the locale-aware renderer used for bot answers.
func (b *MessageBubble) SetRenderer(r *render.Renderer) {
	b.renderer = r
}

// View renders the message bubble.
func (b *MessageBubble) View() string {
	if b.Message.IsUser() {
		return b.renderUserBubble()
	}
	return b.renderBotBubble()
}

// ==========================================================================
// USER BUBBLE - right-aligned
// ==========================================================================

func (b *MessageBubble) renderUserBubble() string {
	content := b.Message.Question
	if content == "" {
		content = "..."
	}

	maxContentWidth := maxInt(b.Width-12, 20)
	wrapped := wordWrap(content, maxContentWidth)
	bubbleWidth := minInt(util.MaxLineWidth(wrapped)+4, maxInt(b.Width-8, 10))

	bubble := b.theme.UserBubble.Width(bubbleWidth).Render(wrapped)
	header := b.header(b.theme.UserLabel)

	leftMargin := maxInt(b.Width-lipgloss.Width(bubble), 0)
	margin := b.theme.NewStyle().MarginLeft(leftMargin)
	headerMargin := b.theme.NewStyle().MarginLeft(maxInt(b.Width-lipgloss.Width(header), 0))

	return lipgloss.JoinVertical(lipgloss.Left, headerMargin.Render(header), margin.Render(bubble))
}

// ==========================================================================
// BOT BUBBLE - left-aligned, carries a presentation
// ==========================================================================

func (b *MessageBubble) renderBotBubble() string {
	p := b.presentation()

	view := NewPresentationView(p, b.theme)
	view.ShowExact = b.ShowExact
	view.Markdown = b.Markdown

	var body string
	switch p.Kind {
	case render.KindTable, render.KindError:
		// These draw their own frame.
		view.SetWidth(maxInt(b.Width-2, 20))
		body = b.theme.NewStyle().PaddingLeft(1).Render(view.View())
	default:
		view.SetWidth(maxInt(b.Width-6, 20))
		body = b.theme.BotBubble.MaxWidth(b.Width).Render(view.View())
	}

	return lipgloss.JoinVertical(lipgloss.Left, b.header(b.theme.BotLabel), body)
}

func (b *MessageBubble) presentation() render.Presentation {
	if b.renderer != nil {
		return b.renderer.Render(b.Message.Response)
	}
	return render.Render(b.Message.Response)
}

func (b *MessageBubble) header(label lipgloss.Style) string {
	parts := []string{label.Render(b.Message.Origin.DisplayName())}
	if b.ShowTimestamp && !b.Message.Timestamp.IsZero() {
		parts = append(parts, b.theme.Timestamp.Render(formatTime(b.Message.Timestamp)))
	}
	return strings.Join(parts, " ")
}

// =============================================================================
// MESSAGE LIST COMPONENT - For rendering a whole conversation
// =============================================================================

// MessageList draws messages in order, oldest first.
type MessageList struct {
	Messages       []model.Message
	Width          int
	ShowTimestamps bool
	ShowExact      bool
	Markdown       bool
	renderer       *render.Renderer
	theme          *styles.Theme
}

// NewMessageList creates a new MessageList.
func NewMessageList(theme *styles.Theme) *MessageList {
	return &MessageList{
		Width:          80,
		ShowTimestamps: true,
		theme:          theme,
	}
}

// SetMessages sets the messages to display.
func (ml *MessageList) SetMessages(messages []model.Message) {
	ml.Messages = messages
}

// SetWidth sets the list width.
func (ml *MessageList) SetWidth(width int) {
	ml.Width = width
}

// SetRenderer sets the renderer passed to every bubble.
func (ml *MessageList) SetRenderer(r *render.Renderer) {
	ml.renderer = r
}

// View renders all messages separated by a blank line.
func (ml *MessageList) View() string {
	if len(ml.Messages) == 0 {
		return ""
	}

	bubbles := make([]string, 0, len(ml.Messages))
	for _, msg := range ml.Messages {
		bubble := NewMessageBubble(msg, ml.theme)
		bubble.SetWidth(ml.Width)
		bubble.SetRenderer(ml.renderer)
		bubble.ShowTimestamp = ml.ShowTimestamps
		bubble.ShowExact = ml.ShowExact
		bubble.Markdown = ml.Markdown
		bubbles = append(bubbles, bubble.View())
	}
	return strings.Join(bubbles, "\n\n")
}
