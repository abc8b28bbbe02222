package canvas

import (
	"image/color"
	"io"

	"git.sr.ht/~sbinet/gg"
	"golang.org/x/image/font/basicfont"
)

// PNG rasterizes with gg. Text uses the fixed 7x13 face whatever the size.
type PNG struct {
	pen
	dc *gg.Context
}

// NewPNG creates a w x h raster.
func NewPNG(w, h int) *PNG {
	dc := gg.NewContext(w, h)
	dc.SetFontFace(basicfont.Face7x13)
	return &PNG{pen: newPen(), dc: dc}
}

func (p *PNG) Size() (float64, float64) {
	return float64(p.dc.Width()), float64(p.dc.Height())
}

func (p *PNG) Background(c color.NRGBA) {
	p.dc.SetColor(c)
	p.dc.Clear()
}

func (p *PNG) Line(x1, y1, x2, y2 float64) {
	if !p.hasStroke {
		return
	}
	p.dc.SetColor(p.stroke)
	p.dc.SetLineWidth(p.weight)
	p.dc.DrawLine(x1, y1, x2, y2)
	p.dc.Stroke()
}

func (p *PNG) Rect(cx, cy, w, h float64) {
	x, y := cx-w/2, cy-h/2
	if p.hasFill {
		p.dc.SetColor(p.fill)
		p.dc.DrawRectangle(x, y, w, h)
		p.dc.Fill()
	}
	if p.hasStroke {
		p.dc.SetColor(p.stroke)
		p.dc.SetLineWidth(p.weight)
		p.dc.DrawRectangle(x, y, w, h)
		p.dc.Stroke()
	}
}

func (p *PNG) Text(s string, x, y, _ float64) {
	c := Black
	if p.hasFill {
		c = p.fill
	}
	p.dc.SetColor(c)
	p.dc.DrawString(s, x, y)
}

// SavePNG writes the raster to path.
func (p *PNG) SavePNG(path string) error {
	return p.dc.SavePNG(path)
}

// EncodePNG writes the raster to w.
func (p *PNG) EncodePNG(w io.Writer) error {
	return p.dc.EncodePNG(w)
}
