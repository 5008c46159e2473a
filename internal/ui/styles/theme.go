// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds all the styled components for the application.
// It detects the terminal's color capability and adjusts accordingly.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	// Layout dimensions
	Width  int
	Height int

	renderer *lipgloss.Renderer

	// ==========================================================================
	// HEADER STYLES
	// ==========================================================================

	Header         lipgloss.Style
	HeaderTitle    lipgloss.Style
	HeaderSubtitle lipgloss.Style

	// ==========================================================================
	// MESSAGE BUBBLE STYLES
	// ==========================================================================

	UserBubble lipgloss.Style
	UserLabel  lipgloss.Style
	BotBubble  lipgloss.Style
	BotLabel   lipgloss.Style
	Timestamp  lipgloss.Style
	Body       lipgloss.Style

	// ==========================================================================
	// TABLE STYLES
	// ==========================================================================

	TableBorder  lipgloss.Style
	TableHeader  lipgloss.Style
	TableCell    lipgloss.Style
	TableNumeric lipgloss.Style

	// ==========================================================================
	// CHART STYLES
	// ==========================================================================

	ChartLabel       lipgloss.Style
	ChartBar         lipgloss.Style
	ChartBarNegative lipgloss.Style
	ChartValue       lipgloss.Style
	ChartExact       lipgloss.Style
	ChartAxis        lipgloss.Style

	// ==========================================================================
	// ERROR AND NOTICE STYLES
	// ==========================================================================

	ErrorBox     lipgloss.Style
	ErrorTitle   lipgloss.Style
	ErrorMessage lipgloss.Style
	ErrorDetail  lipgloss.Style
	Notice       lipgloss.Style
	Placeholder  lipgloss.Style

	// ==========================================================================
	// INPUT AREA STYLES
	// ==========================================================================

	InputContainer lipgloss.Style
	InputPrompt    lipgloss.Style
	InputDisabled  lipgloss.Style

	// ==========================================================================
	// STATUS BAR STYLES
	// ==========================================================================

	StatusBar     lipgloss.Style
	StatusOnline  lipgloss.Style
	StatusOffline lipgloss.Style
	StatusUnknown lipgloss.Style
	ShortcutKey   lipgloss.Style
	ShortcutDesc  lipgloss.Style

	// ==========================================================================
	// SPINNER AND WELCOME STYLES
	// ==========================================================================

	Spinner         lipgloss.Style
	ThinkingText    lipgloss.Style
	WelcomeTitle    lipgloss.Style
	WelcomeText     lipgloss.Style
	Example         lipgloss.Style
	ExampleSelected lipgloss.Style
	Hint            lipgloss.Style
}

// NewTheme creates a theme for the terminal on standard output.
func NewTheme() *Theme {
	colorProfile := termenv.ColorProfile()
	t := &Theme{
		IsDark:       termenv.HasDarkBackground(),
		HasTrueColor: colorProfile == termenv.TrueColor,
		ColorProfile: colorProfile,
		renderer:     lipgloss.DefaultRenderer(),
	}
	t.initStyles()
	return t
}

// NewThemeWithProfile creates a theme that renders for w with a fixed color
// profile. termenv.Ascii yields plain text suitable for pipes.
func NewThemeWithProfile(w io.Writer, profile termenv.Profile) *Theme {
	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(profile)
	r.SetHasDarkBackground(true)
	t := &Theme{
		IsDark:       true,
		HasTrueColor: profile == termenv.TrueColor,
		ColorProfile: profile,
		renderer:     r,
	}
	t.initStyles()
	return t
}

// NewStyle creates an unstyled style bound to the theme's renderer.
func (t *Theme) NewStyle() lipgloss.Style {
	return t.renderer.NewStyle()
}

// IsPlain reports whether the theme renders without color.
func (t *Theme) IsPlain() bool {
	return t.ColorProfile == termenv.Ascii
}

// initStyles initializes all the lip gloss styles.
func (t *Theme) initStyles() {
	s := t.renderer.NewStyle

	// Header
	t.Header = s().
		Background(SurfaceDim).
		Padding(0, 1)
	t.HeaderTitle = s().
		Bold(true).
		Foreground(Purple)
	t.HeaderSubtitle = s().
		Foreground(TextMuted)

	// Message bubbles
	t.UserBubble = s().
		Foreground(UserBubbleFg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(UserBubbleBorder).
		Padding(0, 1)
	t.UserLabel = s().
		Foreground(Cyan).
		Bold(true)
	t.BotBubble = s().
		Foreground(BotBubbleFg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(BotBubbleBorder).
		Padding(0, 1)
	t.BotLabel = s().
		Foreground(Purple).
		Bold(true)
	t.Timestamp = s().
		Foreground(TextMuted)
	t.Body = s().
		Foreground(TextPrimary)

	// Tables
	t.TableBorder = s().
		Foreground(OverlayDim)
	t.TableHeader = s().
		Foreground(Cyan).
		Bold(true).
		Padding(0, 1)
	t.TableCell = s().
		Foreground(TextPrimary).
		Padding(0, 1)
	t.TableNumeric = s().
		Foreground(TextPrimary).
		Padding(0, 1).
		Align(lipgloss.Right)

	// Charts
	t.ChartLabel = s().
		Foreground(TextSecondary)
	t.ChartBar = s().
		Foreground(Emerald)
	t.ChartBarNegative = s().
		Foreground(Rose)
	t.ChartValue = s().
		Foreground(TextPrimary).
		Bold(true)
	t.ChartExact = s().
		Foreground(TextMuted)
	t.ChartAxis = s().
		Foreground(TextMuted)

	// Errors and notices
	t.ErrorBox = s().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(ErrorPanelBorder).
		Padding(0, 1)
	t.ErrorTitle = s().
		Foreground(Rose).
		Bold(true)
	t.ErrorMessage = s().
		Foreground(ErrorPanelFg)
	t.ErrorDetail = s().
		Foreground(TextMuted).
		Italic(true)
	t.Notice = s().
		Foreground(Amber)
	t.Placeholder = s().
		Foreground(Amber).
		Italic(true)

	// Input area
	t.InputContainer = s().
		BorderStyle(lipgloss.NormalBorder()).
		BorderTop(true).
		BorderForeground(Overlay).
		Padding(0, 1)
	t.InputPrompt = s().
		Foreground(Cyan).
		Bold(true)
	t.InputDisabled = s().
		Foreground(TextMuted).
		Italic(true)

	// Status bar
	t.StatusBar = s().
		Background(SurfaceDim).
		Foreground(TextSecondary).
		Padding(0, 1)
	t.StatusOnline = s().
		Foreground(Emerald).
		Bold(true)
	t.StatusOffline = s().
		Foreground(Rose).
		Bold(true)
	t.StatusUnknown = s().
		Foreground(TextMuted)
	t.ShortcutKey = s().
		Foreground(Cyan).
		Bold(true)
	t.ShortcutDesc = s().
		Foreground(TextMuted)

	// Spinner and welcome
	t.Spinner = s().
		Foreground(Purple)
	t.ThinkingText = s().
		Foreground(TextSecondary).
		Italic(true)
	t.WelcomeTitle = s().
		Foreground(Purple).
		Bold(true)
	t.WelcomeText = s().
		Foreground(TextSecondary)
	t.Example = s().
		Foreground(Emerald)
	t.ExampleSelected = s().
		Foreground(TextInverse).
		Background(Emerald).
		Bold(true)
	t.Hint = s().
		Foreground(TextMuted).
		Italic(true)
}

// SetSize updates the theme dimensions for responsive layouts.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}

// GetLayoutMode returns the current layout mode based on width.
func (t *Theme) GetLayoutMode() LayoutMode {
	if t.Width < 60 {
		return LayoutNarrow
	}
	if t.Width < 100 {
		return LayoutMedium
	}
	return LayoutWide
}

// LayoutMode represents the current responsive layout mode.
type LayoutMode int

const (
	LayoutNarrow LayoutMode = iota // < 60 columns
	LayoutMedium                   // 60-100 columns
	LayoutWide                     // > 100 columns
)
