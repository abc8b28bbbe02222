package canvas

import (
	"image/color"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Graph units covered by one terminal cell. Cells are roughly twice as tall
// as they are wide, so the same square node looks square on screen.
const (
	CellW = 6.0
	CellH = 12.0
)

// strongAlpha splits line strokes into faint and strong glyphs.
const strongAlpha = 128

type cellKind uint8

const (
	cellEmpty cellKind = iota
	cellFaint
	cellStrong
	cellFill
	cellRing
	cellText
	cellWideTail // right half of a double-width rune
)

type cell struct {
	r    rune
	kind cellKind
	hex  string
}

// TermStyles controls how Term cells are colored when rendered.
type TermStyles struct {
	Renderer *lipgloss.Renderer
	Faint    lipgloss.Style
	Strong   lipgloss.Style
	Label    lipgloss.Style
}

// DefaultTermStyles returns adaptive styles that read on dark and light terminals.
func DefaultTermStyles(r *lipgloss.Renderer) TermStyles {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	return TermStyles{
		Renderer: r,
		Faint:    r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#D0D0D0", Dark: "#3A3C4E"}),
		Strong:   r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#000000", Dark: "#F8F8F2"}),
		Label:    r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#000000", Dark: "#F8F8F2"}).Bold(true),
	}
}

// Term paints into a grid of terminal cells.
type Term struct {
	pen
	cols, rows int
	cells      []cell
	styles     TermStyles
	fillCache  map[string]lipgloss.Style
}

// NewTerm creates a cols x rows cell canvas.
func NewTerm(cols, rows int, styles TermStyles) *Term {
	if cols < 0 {
		cols = 0
	}
	if rows < 0 {
		rows = 0
	}
	t := &Term{
		pen:       newPen(),
		cols:      cols,
		rows:      rows,
		cells:     make([]cell, cols*rows),
		styles:    styles,
		fillCache: make(map[string]lipgloss.Style),
	}
	t.clear()
	return t
}

// Size reports the area in graph units.
func (t *Term) Size() (float64, float64) {
	return float64(t.cols) * CellW, float64(t.rows) * CellH
}

// Cols and Rows report the grid dimensions.
func (t *Term) Cols() int { return t.cols }
func (t *Term) Rows() int { return t.rows }

// CellCenter maps a cell to the graph-unit point at its center. Pointer
// events arrive as cells and go through this before hit-testing.
func CellCenter(col, row int) (x, y float64) {
	return float64(col)*CellW + CellW/2, float64(row)*CellH + CellH/2
}

// Background clears every cell. The color is not painted: the terminal's own
// background stands in for it.
func (t *Term) Background(color.NRGBA) {
	t.clear()
}

func (t *Term) clear() {
	for i := range t.cells {
		t.cells[i] = cell{r: ' '}
	}
}

func (t *Term) at(col, row int) *cell {
	if col < 0 || col >= t.cols || row < 0 || row >= t.rows {
		return nil
	}
	return &t.cells[row*t.cols+col]
}

// toCell maps a graph point to the cell containing it.
func toCell(x, y float64) (int, int) {
	return int(math.Floor(x / CellW)), int(math.Floor(y / CellH))
}

// Line draws a Bresenham line between the cells holding the endpoints.
// Faint strokes never overwrite strong ones, so an edge drawn twice keeps
// its strongest rendering.
func (t *Term) Line(x1, y1, x2, y2 float64) {
	if !t.hasStroke || t.stroke.A == 0 {
		return
	}
	kind, glyph := cellFaint, '·'
	if t.stroke.A >= strongAlpha {
		kind, glyph = cellStrong, '•'
	}

	c0, r0 := toCell(x1, y1)
	c1, r1 := toCell(x2, y2)
	dc := abs(c1 - c0)
	dr := -abs(r1 - r0)
	sc, sr := sign(c1-c0), sign(r1-r0)
	e := dc + dr
	for {
		if p := t.at(c0, r0); p != nil {
			if p.kind == cellEmpty || p.kind == cellFaint || (p.kind == cellStrong && kind == cellStrong) {
				*p = cell{r: glyph, kind: kind}
			}
		}
		if c0 == c1 && r0 == r1 {
			return
		}
		e2 := 2 * e
		if e2 >= dr {
			e += dr
			c0 += sc
		}
		if e2 <= dc {
			e += dc
			r0 += sr
		}
	}
}

// cellSpan returns the inclusive range of cell indexes whose centers lie
// strictly inside (lo, hi) along an axis with the given cell size. A center
// on the boundary is excluded, matching strict hit-testing.
func cellSpan(lo, hi, size float64) (int, int) {
	first := int(math.Floor((lo-size/2)/size)) + 1
	last := int(math.Ceil((hi-size/2)/size)) - 1
	return first, last
}

// Rect fills cells whose centers fall inside the rectangle. With no fill
// and a stroke set, only the outline is drawn and filled cells are kept.
func (t *Term) Rect(cx, cy, w, h float64) {
	c0, c1 := cellSpan(cx-w/2, cx+w/2, CellW)
	r0, r1 := cellSpan(cy-h/2, cy+h/2, CellH)
	if c1 < c0 || r1 < r0 {
		// Smaller than a cell: paint the one holding the center.
		c0, r0 = toCell(cx, cy)
		c1, r1 = c0, r0
	}

	if t.hasFill {
		hex := CSS(t.fill)
		for r := r0; r <= r1; r++ {
			for c := c0; c <= c1; c++ {
				if p := t.at(c, r); p != nil {
					*p = cell{r: '█', kind: cellFill, hex: hex}
				}
			}
		}
		return
	}
	if !t.hasStroke {
		return
	}
	// Outline sits one cell outside the span so it frames rather than covers.
	c0, c1, r0, r1 = c0-1, c1+1, r0-1, r1+1
	for r := r0; r <= r1; r++ {
		for c := c0; c <= c1; c++ {
			if r != r0 && r != r1 && c != c0 && c != c1 {
				continue
			}
			p := t.at(c, r)
			if p == nil || p.kind == cellFill {
				continue
			}
			*p = cell{r: ringGlyph(c, r, c0, c1, r0, r1), kind: cellRing}
		}
	}
}

func ringGlyph(c, r, c0, c1, r0, r1 int) rune {
	switch {
	case r == r0 && c == c0:
		return '┌'
	case r == r0 && c == c1:
		return '┐'
	case r == r1 && c == c0:
		return '└'
	case r == r1 && c == c1:
		return '┘'
	case r == r0 || r == r1:
		return '─'
	default:
		return '│'
	}
}

// Text writes s starting at the cell holding (x, y-size/2), roughly the
// vertical middle of the glyphs. Text is clipped at the right edge.
func (t *Term) Text(s string, x, y, size float64) {
	col, row := toCell(x, y-size/2)
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if col+w > t.cols {
			return
		}
		if p := t.at(col, row); p != nil {
			*p = cell{r: r, kind: cellText}
		}
		if w == 2 {
			if p := t.at(col+1, row); p != nil {
				*p = cell{kind: cellWideTail}
			}
		}
		col += w
	}
}

// String renders the grid with ANSI styling, one line per row.
func (t *Term) String() string {
	var sb strings.Builder
	for r := 0; r < t.rows; r++ {
		var run strings.Builder
		var runStyle *lipgloss.Style
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if runStyle == nil {
				sb.WriteString(run.String())
			} else {
				sb.WriteString(runStyle.Render(run.String()))
			}
			run.Reset()
		}
		var prevKey string
		for c := 0; c < t.cols; c++ {
			p := t.cells[r*t.cols+c]
			if p.kind == cellWideTail {
				continue
			}
			style, key := t.styleFor(p)
			if key != prevKey {
				flush()
				runStyle = style
				prevKey = key
			}
			run.WriteRune(p.r)
		}
		flush()
		if r < t.rows-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// Plain renders the grid without styling; used by tests and golden files.
func (t *Term) Plain() string {
	var sb strings.Builder
	for r := 0; r < t.rows; r++ {
		for c := 0; c < t.cols; c++ {
			p := t.cells[r*t.cols+c]
			if p.kind == cellWideTail {
				continue
			}
			sb.WriteRune(p.r)
		}
		if r < t.rows-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// RuneAt returns the glyph at a cell, or ' ' outside the grid.
func (t *Term) RuneAt(col, row int) rune {
	if p := t.at(col, row); p != nil {
		return p.r
	}
	return ' '
}

func (t *Term) styleFor(p cell) (*lipgloss.Style, string) {
	switch p.kind {
	case cellFaint:
		return &t.styles.Faint, "faint"
	case cellStrong, cellRing:
		return &t.styles.Strong, "strong"
	case cellText:
		return &t.styles.Label, "label"
	case cellFill:
		s, ok := t.fillCache[p.hex]
		if !ok {
			r := t.styles.Renderer
			if r == nil {
				r = lipgloss.DefaultRenderer()
			}
			s = r.NewStyle().Foreground(lipgloss.Color(p.hex))
			t.fillCache[p.hex] = s
		}
		return &s, "fill" + p.hex
	default:
		return nil, ""
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
