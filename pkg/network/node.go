package network

import (
	"image/color"
	"math"
	"strings"

	"github.com/vanderheijden86/glossnet/pkg/canvas"
	"github.com/vanderheijden86/glossnet/pkg/model"
)

// Geometry of a node, in graph units.
const (
	NodeSize     = 15.0
	SpawnPadding = 30.0
	DriftStep    = 0.2
	EdgeMargin   = 10.0
	LabelSize    = 12.0
	LabelOffsetX = 15.0
	LabelOffsetY = 5.0
)

// Rand is the randomness a node needs. *math/rand/v2.Rand satisfies it.
type Rand interface {
	Float64() float64
}

// Node is one glossary entry placed on the canvas.
type Node struct {
	ID    int
	Entry model.Entry
	X, Y  float64
	Size  float64
	Class model.Class

	index       int // position in the owning session's node slice
	connections []*Node
}

// NewNode places an entry uniformly at random inside the viewport, keeping
// SpawnPadding away from every edge. A viewport too small for the padding
// still keeps the node within EdgeMargin.
func NewNode(entry model.Entry, id int, vp Viewport, rng Rand) *Node {
	n := &Node{
		ID:    id,
		Entry: entry,
		X:     uniform(rng, SpawnPadding, vp.W-SpawnPadding),
		Y:     uniform(rng, SpawnPadding, vp.H-SpawnPadding),
		Size:  NodeSize,
		Class: entry.Class(),
		index: -1,
	}
	n.clamp(vp)
	return n
}

// Term is the glossary term the node stands for.
func (n *Node) Term() string { return n.Entry.Term() }

// Connections returns the partners sharing at least one keyword. The slice
// is owned by the node.
func (n *Node) Connections() []*Node { return n.connections }

// ConnectedTo reports whether o is among n's partners.
func (n *Node) ConnectedTo(o *Node) bool {
	for _, p := range n.connections {
		if p == o {
			return true
		}
	}
	return false
}

// Move takes one random-walk step of at most DriftStep on each axis, then
// clamps the position to EdgeMargin inside the viewport.
func (n *Node) Move(vp Viewport, rng Rand) {
	n.X += uniform(rng, -DriftStep, DriftStep)
	n.Y += uniform(rng, -DriftStep, DriftStep)
	n.clamp(vp)
}

func (n *Node) clamp(vp Viewport) {
	n.X = constrain(n.X, EdgeMargin, vp.W-EdgeMargin)
	n.Y = constrain(n.Y, EdgeMargin, vp.H-EdgeMargin)
}

// IsHovered reports whether (px, py) lies strictly inside the node's square.
func (n *Node) IsHovered(px, py float64) bool {
	half := n.Size / 2
	return px > n.X-half && px < n.X+half &&
		py > n.Y-half && py < n.Y+half
}

// Color is the fill for the node's classification.
func (n *Node) Color() color.NRGBA {
	return classColors[n.Class]
}

// Display draws the node: its square, a ring when selected, and the
// upper-cased term when hovered or selected.
func (n *Node) Display(c canvas.Canvas, selected, hovered bool) {
	c.Stroke(canvas.Black)
	c.StrokeWeight(1)
	c.Fill(n.Color())
	c.Rect(n.X, n.Y, n.Size, n.Size)

	if selected {
		c.NoFill()
		c.Stroke(canvas.Black)
		c.StrokeWeight(2)
		c.Rect(n.X, n.Y, n.Size*2, n.Size*2)
	}

	if hovered || selected {
		c.Fill(canvas.Black)
		c.NoStroke()
		c.Text(strings.ToUpper(n.Term()), n.X+LabelOffsetX, n.Y+LabelOffsetY, LabelSize)
	}
}

var classColors = map[model.Class]color.NRGBA{
	model.ClassDefault: canvas.MustHex(model.ClassDefault.Hex()),
	model.ClassBrain:   canvas.MustHex(model.ClassBrain.Hex()),
	model.ClassSearch:  canvas.MustHex(model.ClassSearch.Hex()),
	model.ClassLLM:     canvas.MustHex(model.ClassLLM.Hex()),
	model.ClassMulti:   canvas.MustHex(model.ClassMulti.Hex()),
}

func uniform(rng Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

func constrain(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}
