// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
	"golang.org/x/text/language"

	"github.com/jeranaias/querydesk-tui/internal/dispatch"
	"github.com/jeranaias/querydesk-tui/internal/render"
	"github.com/jeranaias/querydesk-tui/internal/ui/components"
	"github.com/jeranaias/querydesk-tui/internal/ui/styles"
)

// HealthChecker reports whether the query service is up.
type HealthChecker interface {
	Health(ctx context.Context) (string, error)
}

// Options configures a chat Model.
type Options struct {
	Dispatcher *dispatch.Dispatcher
	Health     HealthChecker
	Renderer   *render.Renderer
	Examples   []string
	Markdown   bool
	ShowExact  bool
	Logger     *zap.Logger

	// Locale formats numbers in saved transcripts.
	Locale language.Tag
	// ExportDir is where ctrl+s saves transcripts. Default: working directory
	ExportDir string
}

// =============================================================================
// CHAT MODEL
// =============================================================================

// Model is the Bubble Tea model for the chat view.
type Model struct {
	theme *styles.Theme

	width  int
	height int

	dispatcher *dispatch.Dispatcher
	health     HealthChecker
	renderer   *render.Renderer
	logger     *zap.Logger

	input    textinput.Model
	viewport viewport.Model
	thinking components.ThinkingIndicator
	welcome  components.Welcome
	keyMap   KeyMap
	help     help.Model

	healthState components.Health
	showExact   bool
	markdown    bool
	showHelp    bool

	locale    language.Tag
	exportDir string
	// notice is a one-line status message, cleared on the next question.
	notice string
}

// New creates a chat model.
func New(theme *styles.Theme, opts Options) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Ask a question about your data..."
	ti.CharLimit = 4096
	ti.PromptStyle = theme.InputPrompt
	ti.Focus()

	vp := viewport.New(80, 20)
	vp.SetContent("")

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	d := opts.Dispatcher
	if d == nil {
		d = dispatch.New(nil, nil, dispatch.Config{Logger: logger})
	}

	renderer := opts.Renderer
	if renderer == nil {
		renderer = render.New(render.DefaultLocale)
	}

	locale := opts.Locale
	if locale == language.Und {
		locale = render.DefaultLocale
	}

	hm := help.New()
	hm.Styles.FullKey = theme.ShortcutKey
	hm.Styles.FullDesc = theme.ShortcutDesc
	hm.Styles.FullSeparator = theme.ShortcutDesc

	welcome := components.NewWelcome(opts.Examples, theme)
	welcome.SetEndpoint(d.Endpoint())

	return Model{
		theme:       theme,
		dispatcher:  d,
		health:      opts.Health,
		renderer:    renderer,
		logger:      logger.Named("chat"),
		input:       ti,
		viewport:    vp,
		thinking:    components.NewThinkingIndicator(theme),
		welcome:     welcome,
		keyMap:      DefaultKeyMap(),
		help:        hm,
		healthState: components.HealthUnknown,
		showExact:   opts.ShowExact,
		markdown:    opts.Markdown,
		locale:      locale,
		exportDir:   opts.ExportDir,
	}
}

// =============================================================================
// BUBBLE TEA INTERFACE
// =============================================================================

// Init starts the cursor blink and the first health check.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, checkHealthCmd(m.health))
}

// View renders the chat view.
func (m Model) View() string {
	return m.renderChat()
}

// =============================================================================
// GETTERS
// =============================================================================

// Busy reports whether a question is in flight.
func (m Model) Busy() bool {
	return m.dispatcher.Busy()
}

// Draft returns the current draft question.
func (m Model) Draft() string {
	return m.input.Value()
}

// Dispatcher returns the dispatcher the model submits to.
func (m Model) Dispatcher() *dispatch.Dispatcher {
	return m.dispatcher
}

// HealthState returns the last known service health.
func (m Model) HealthState() components.Health {
	return m.healthState
}

// ShowExact reports whether exact chart values are shown.
func (m Model) ShowExact() bool {
	return m.showExact
}

// ShowingHelp reports whether the key binding panel is open.
func (m Model) ShowingHelp() bool {
	return m.showHelp
}

// Notice returns the current one-line status message.
func (m Model) Notice() string {
	return m.notice
}

// SelectedExample returns the highlighted example question.
func (m Model) SelectedExample() (string, bool) {
	return m.welcome.SelectedExample()
}
