package ui

import (
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/vanderheijden86/glossnet/pkg/debug"
)

// MarkdownRenderer renders detail-pane markdown with glamour, rebuilding the
// underlying renderer only when the wrap width or style changes.
type MarkdownRenderer struct {
	width    int
	style    string
	renderer *glamour.TermRenderer
}

// NewMarkdownRendererWithTheme creates a renderer wrapping at width.
func NewMarkdownRendererWithTheme(width int, theme Theme) *MarkdownRenderer {
	r := &MarkdownRenderer{}
	r.SetWidthWithTheme(width, theme)
	return r
}

// SetWidthWithTheme changes the wrap width.
func (r *MarkdownRenderer) SetWidthWithTheme(width int, theme Theme) {
	if width < 20 {
		width = 20
	}
	style := theme.MarkdownStyle()
	if r.renderer != nil && width == r.width && style == r.style {
		return
	}
	tr, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		debug.Log("ui: glamour renderer: %v", err)
		tr = nil
	}
	r.width, r.style, r.renderer = width, style, tr
}

// Width returns the current wrap width.
func (r *MarkdownRenderer) Width() int { return r.width }

// Render returns the styled markdown, or the raw text if glamour fails.
func (r *MarkdownRenderer) Render(md string) string {
	if r.renderer == nil {
		return md
	}
	out, err := r.renderer.Render(md)
	if err != nil {
		debug.Log("ui: render markdown: %v", err)
		return md
	}
	return strings.Trim(out, "\n")
}
