// Package canvas is the drawing surface the network sketch paints on.
//
// The API mirrors an immediate-mode sketchbook: set stroke and fill state,
// then issue primitives. Rectangles are centered on (x, y). Text is left
// aligned with y on the baseline. Three backends exist: Term paints into
// terminal cells, SVG writes an SVG document and PNG rasterizes with gg.
package canvas

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Canvas is implemented by every backend.
type Canvas interface {
	// Size returns the drawable area in graph units.
	Size() (w, h float64)
	// Background clears the whole surface with c.
	Background(c color.NRGBA)

	Stroke(c color.NRGBA)
	NoStroke()
	StrokeWeight(w float64)
	Fill(c color.NRGBA)
	NoFill()

	Line(x1, y1, x2, y2 float64)
	Rect(cx, cy, w, h float64)
	Text(s string, x, y, size float64)
}

var (
	White = color.NRGBA{0xff, 0xff, 0xff, 0xff}
	Black = color.NRGBA{0x00, 0x00, 0x00, 0xff}
)

// WithAlpha returns c with its alpha channel replaced.
func WithAlpha(c color.NRGBA, a uint8) color.NRGBA {
	c.A = a
	return c
}

// ParseHex parses "#rrggbb" (or "rrggbb") into an opaque color.
func ParseHex(s string) (color.NRGBA, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return color.NRGBA{}, fmt.Errorf("invalid hex color %q", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return color.NRGBA{uint8(v >> 16), uint8(v >> 8), uint8(v), 0xff}, nil
}

// MustHex is ParseHex for package-level constants.
func MustHex(s string) color.NRGBA {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// CSS formats c as "#rrggbb".
func CSS(c color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// pen holds the stroke/fill state shared by all backends.
type pen struct {
	stroke    color.NRGBA
	hasStroke bool
	fill      color.NRGBA
	hasFill   bool
	weight    float64
}

func newPen() pen {
	return pen{stroke: Black, hasStroke: true, fill: White, hasFill: true, weight: 1}
}

func (p *pen) Stroke(c color.NRGBA) { p.stroke, p.hasStroke = c, true }
func (p *pen) NoStroke() { p.hasStroke = false }
func (p *pen) StrokeWeight(w float64) { p.weight = w }
func (p *pen) Fill(c color.NRGBA) { p.fill, p.hasFill = c, true }
func (p *pen) NoFill() { p.hasFill = false }
