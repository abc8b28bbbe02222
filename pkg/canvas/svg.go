package canvas

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"strings"

	svg "github.com/ajstarks/svgo"
)

// SVG streams drawing calls into an SVG document. Call End once to close it.
type SVG struct {
	pen
	w, h int
	doc  *svg.SVG
}

// NewSVG starts a w x h document on out.
func NewSVG(out io.Writer, w, h int) *SVG {
	doc := svg.New(out)
	doc.Start(w, h)
	return &SVG{pen: newPen(), w: w, h: h, doc: doc}
}

func (s *SVG) Size() (float64, float64) { return float64(s.w), float64(s.h) }

func (s *SVG) Background(c color.NRGBA) {
	s.doc.Rect(0, 0, s.w, s.h, "fill:"+CSS(c))
}

func (s *SVG) Line(x1, y1, x2, y2 float64) {
	if !s.hasStroke {
		return
	}
	s.doc.Line(round(x1), round(y1), round(x2), round(y2), s.strokeStyle())
}

func (s *SVG) Rect(cx, cy, w, h float64) {
	var parts []string
	if s.hasFill {
		parts = append(parts, "fill:"+CSS(s.fill))
		if s.fill.A != 0xff {
			parts = append(parts, fmt.Sprintf("fill-opacity:%.3f", float64(s.fill.A)/255))
		}
	} else {
		parts = append(parts, "fill:none")
	}
	if s.hasStroke {
		parts = append(parts, s.strokeStyle())
	}
	s.doc.Rect(round(cx-w/2), round(cy-h/2), round(w), round(h), strings.Join(parts, ";"))
}

func (s *SVG) Text(str string, x, y, size float64) {
	color := Black
	if s.hasFill {
		color = s.fill
	}
	s.doc.Text(round(x), round(y), str,
		fmt.Sprintf("fill:%s;font-size:%.0fpx;font-family:monospace", CSS(color), size))
}

// End closes the document.
func (s *SVG) End() {
	s.doc.End()
}

func (s *SVG) strokeStyle() string {
	style := fmt.Sprintf("stroke:%s;stroke-width:%g", CSS(s.stroke), s.weight)
	if s.stroke.A != 0xff {
		style += fmt.Sprintf(";stroke-opacity:%.3f", float64(s.stroke.A)/255)
	}
	return style
}

func round(v float64) int {
	return int(math.Round(v))
}
