package network

import "github.com/vanderheijden86/glossnet/pkg/canvas"

// Edge opacity for active (selected or hovered) nodes and the rest.
const (
	ActiveEdgeAlpha = 255
	IdleEdgeAlpha   = 30
)

// Draw renders one frame and then lets every node drift one step.
func (s *Session) Draw(c canvas.Canvas) {
	s.frame(c, true)
}

// Paint renders the current frame without moving anything. Snapshot
// exports use it.
func (s *Session) Paint(c canvas.Canvas) {
	s.frame(c, false)
}

func (s *Session) frame(c canvas.Canvas, drift bool) {
	c.Background(canvas.White)
	if s.view != ViewNetwork {
		return
	}

	c.StrokeWeight(1)
	for _, n := range s.nodes {
		alpha := uint8(IdleEdgeAlpha)
		if s.active(n) {
			alpha = ActiveEdgeAlpha
		}
		c.Stroke(canvas.WithAlpha(canvas.Black, alpha))
		for _, m := range n.connections {
			c.Line(n.X, n.Y, m.X, m.Y)
		}
	}

	for _, n := range s.nodes {
		n.Display(c, n == s.selected, s.hovered(n))
		if drift && s.rng != nil {
			n.Move(s.viewport, s.rng)
		}
	}
}

func (s *Session) active(n *Node) bool {
	return n == s.selected || s.hovered(n)
}

func (s *Session) hovered(n *Node) bool {
	return s.pointer.Present && n.IsHovered(s.pointer.X, s.pointer.Y)
}
