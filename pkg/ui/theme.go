package ui

import (
	"os"

	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/glossnet/pkg/canvas"
	"github.com/vanderheijden86/glossnet/pkg/model"
)

// TermProfile holds the detected terminal color profile. Computed once at
// package init so every style helper can branch without re-detecting.
var TermProfile colorprofile.Profile

func init() {
	TermProfile = colorprofile.Detect(os.Stdout, os.Environ())
}

// ThemeBg returns the given hex color for TrueColor terminals and
// lipgloss.NoColor{} otherwise, so 16/256-color terminals keep their own
// background.
func ThemeBg(hex string) lipgloss.TerminalColor {
	if TermProfile < colorprofile.TrueColor {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(hex)
}

// ThemeFg returns the given hex color for ANSI256+ terminals and a safe
// ANSI white (color 7) for 16-color or lower terminals.
func ThemeFg(hex string) lipgloss.TerminalColor {
	if TermProfile < colorprofile.ANSI256 {
		return lipgloss.ANSIColor(7)
	}
	return lipgloss.Color(hex)
}

type Theme struct {
	Renderer *lipgloss.Renderer

	// Colors
	Primary   lipgloss.AdaptiveColor
	Secondary lipgloss.AdaptiveColor
	Subtext   lipgloss.AdaptiveColor
	Error     lipgloss.AdaptiveColor
	Success   lipgloss.AdaptiveColor

	// UI Elements
	Border    lipgloss.AdaptiveColor
	Highlight lipgloss.AdaptiveColor
	Muted     lipgloss.AdaptiveColor

	// Styles
	Base         lipgloss.Style
	Header       lipgloss.Style
	Panel        lipgloss.Style
	FocusedPanel lipgloss.Style

	// Pre-computed delegate styles
	MutedText     lipgloss.Style
	SecondaryText lipgloss.Style
	PrimaryBold   lipgloss.Style
	ErrorText     lipgloss.Style
	SuccessText   lipgloss.Style
	Tag           lipgloss.Style

	classStyles map[model.Class]lipgloss.Style
}

// DefaultTheme returns the standard Dracula-inspired theme (adaptive)
func DefaultTheme(r *lipgloss.Renderer) Theme {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	t := Theme{
		Renderer: r,

		Primary:   lipgloss.AdaptiveColor{Light: "#6B47D9", Dark: "#BD93F9"},
		Secondary: lipgloss.AdaptiveColor{Light: "#555555", Dark: "#6272A4"},
		Subtext:   lipgloss.AdaptiveColor{Light: "#666666", Dark: "#BFBFBF"},
		Error:     lipgloss.AdaptiveColor{Light: "#CC0000", Dark: "#FF5555"},
		Success:   lipgloss.AdaptiveColor{Light: "#007700", Dark: "#50FA7B"},

		Border:    lipgloss.AdaptiveColor{Light: "#AAAAAA", Dark: "#44475A"},
		Highlight: lipgloss.AdaptiveColor{Light: "#E0E0E0", Dark: "#44475A"},
		Muted:     lipgloss.AdaptiveColor{Light: "#555555", Dark: "#6272A4"},
	}

	t.Base = r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#000000", Dark: "#F8F8F2"})

	t.Header = r.NewStyle().
		Background(t.Primary).
		Foreground(lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#282A36"}).
		Bold(true).
		Padding(0, 1)

	t.Panel = r.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border)
	t.FocusedPanel = r.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Primary)

	t.MutedText = r.NewStyle().Foreground(t.Muted)
	t.SecondaryText = r.NewStyle().Foreground(t.Secondary)
	t.PrimaryBold = r.NewStyle().Foreground(t.Primary).Bold(true)
	t.ErrorText = r.NewStyle().Foreground(t.Error).Bold(true)
	t.SuccessText = r.NewStyle().Foreground(t.Success).Bold(true)
	t.Tag = r.NewStyle().Foreground(t.Subtext).Italic(true)

	// Node colors are fixed hex values shared with the canvas backends.
	t.classStyles = make(map[model.Class]lipgloss.Style)
	for _, c := range []model.Class{model.ClassDefault, model.ClassBrain, model.ClassSearch, model.ClassLLM, model.ClassMulti} {
		t.classStyles[c] = r.NewStyle().Foreground(ThemeFg(c.Hex())).Bold(true)
	}
	return t
}

// ClassStyle returns the style used for a classification's marker.
func (t Theme) ClassStyle(c model.Class) lipgloss.Style {
	if s, ok := t.classStyles[c]; ok {
		return s
	}
	return t.MutedText
}

// CanvasStyles adapts the theme for the network pane.
func (t Theme) CanvasStyles() canvas.TermStyles {
	return canvas.DefaultTermStyles(t.Renderer)
}

// MarkdownStyle picks the glamour standard style that suits the terminal.
func (t Theme) MarkdownStyle() string {
	switch {
	case TermProfile < colorprofile.ANSI:
		return "notty"
	case t.Renderer.HasDarkBackground():
		return "dark"
	default:
		return "light"
	}
}

// TestTheme returns a theme suitable for use in tests.
func TestTheme() Theme {
	return DefaultTheme(lipgloss.NewRenderer(os.Stdout))
}
