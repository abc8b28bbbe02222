package ui

import (
	"github.com/vanderheijden86/glossnet/pkg/canvas"
	"github.com/vanderheijden86/glossnet/pkg/network"
)

// paneSize is the network pane's size in cells. The session measures through
// it, so it is shared by pointer across model copies.
type paneSize struct {
	cols, rows int
}

// Size reports the pane in graph units. An unlaid pane is zero, which the
// session treats as not ready.
func (p *paneSize) Size() (float64, float64) {
	if p.cols <= 0 || p.rows <= 0 {
		return 0, 0
	}
	return float64(p.cols) * canvas.CellW, float64(p.rows) * canvas.CellH
}

// GraphModel is the network pane: a cell canvas the session draws into once
// per frame.
type GraphModel struct {
	size   *paneSize
	canvas *canvas.Term
	styles canvas.TermStyles
	frame  string
}

// NewGraphModel creates an unsized network pane.
func NewGraphModel(theme Theme) GraphModel {
	return GraphModel{
		size:   &paneSize{},
		styles: theme.CanvasStyles(),
	}
}

// Sizer is what sessions measure against.
func (g GraphModel) Sizer() network.Sizer { return g.size }

// SetSize resizes the pane. The canvas is rebuilt only when the size changes.
func (g *GraphModel) SetSize(cols, rows int) {
	if cols < 0 {
		cols = 0
	}
	if rows < 0 {
		rows = 0
	}
	if g.canvas != nil && g.size.cols == cols && g.size.rows == rows {
		return
	}
	g.size.cols, g.size.rows = cols, rows
	g.canvas = canvas.NewTerm(cols, rows, g.styles)
	g.frame = ""
}

// Cols and Rows report the pane size in cells.
func (g GraphModel) Cols() int { return g.size.cols }
func (g GraphModel) Rows() int { return g.size.rows }

// Render draws one frame of s. With drift the nodes move, as on a frame
// tick; without it the current positions are repainted.
func (g *GraphModel) Render(s *network.Session, drift bool) {
	if g.canvas == nil || s == nil {
		g.frame = ""
		return
	}
	if drift {
		s.Draw(g.canvas)
	} else {
		s.Paint(g.canvas)
	}
	g.frame = g.canvas.String()
}

// PointAt maps a pane-local cell to graph units. ok is false outside the pane.
func (g GraphModel) PointAt(col, row int) (x, y float64, ok bool) {
	if col < 0 || row < 0 || col >= g.size.cols || row >= g.size.rows {
		return 0, 0, false
	}
	x, y = canvas.CellCenter(col, row)
	return x, y, true
}

// View returns the last rendered frame.
func (g GraphModel) View() string {
	return g.frame
}

// Plain returns the last frame without styling.
func (g GraphModel) Plain() string {
	if g.canvas == nil {
		return ""
	}
	return g.canvas.Plain()
}
