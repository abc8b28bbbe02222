package network

import (
	"fmt"
	"strings"
	"testing"

	"pgregory.net/rapid"

	"github.com/vanderheijden86/glossnet/pkg/model"
)

var vocabulary = []string{"bias", "Ethics", "tools", " llm ", "prompt", "", "Data", "data"}

func genEntries(t *rapid.T) []model.Entry {
	n := rapid.IntRange(0, 25).Draw(t, "n")
	entries := make([]model.Entry, n)
	for i := range entries {
		words := rapid.SliceOfN(rapid.SampledFrom(vocabulary), 0, 4).Draw(t, fmt.Sprintf("kw%d", i))
		entries[i] = entry(i, fmt.Sprintf("term %d", i), strings.Join(words, ";"), "")
	}
	return entries
}

func genSession(t *rapid.T) *Session {
	w := rapid.Float64Range(100, 2000).Draw(t, "w")
	h := rapid.Float64Range(100, 2000).Draw(t, "h")
	seed := rapid.Uint64Range(1, 1<<40).Draw(t, "seed")
	s := NewSession(fixedSizer(w, h), WithSeed(seed), WithView(ViewNetwork))
	if err := s.Load(genEntries(t)); err != nil {
		t.Fatalf("Load: %v", err)
	}
	return s
}

func TestPropertyConnectionsSymmetricAndIrreflexive(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := genSession(t)
		for _, n := range s.Nodes() {
			seen := make(map[*Node]bool)
			for _, m := range n.Connections() {
				if m == n {
					t.Fatalf("%s connected to itself", n.Term())
				}
				if seen[m] {
					t.Fatalf("%s lists %s twice", n.Term(), m.Term())
				}
				seen[m] = true
				if !m.ConnectedTo(n) {
					t.Fatalf("%s -> %s is not mirrored", n.Term(), m.Term())
				}
			}
		}
	})
}

func TestPropertyConnectionsMatchSharedKeywords(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := genSession(t)
		nodes := s.Nodes()
		for i, a := range nodes {
			for _, b := range nodes[i+1:] {
				shares := len(SharedKeywords(a, b)) > 0
				if shares != a.ConnectedTo(b) {
					t.Fatalf("%q vs %q: shares=%v connected=%v", a.Entry.Get(model.FieldKeywords),
						b.Entry.Get(model.FieldKeywords), shares, a.ConnectedTo(b))
				}
			}
		}
	})
}

func TestPropertyRebuildIdempotent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := genSession(t)
		before := len(Edges(s.Nodes()))
		if got := BuildConnections(s.Nodes()); got != before || len(Edges(s.Nodes())) != before {
			t.Fatalf("rebuild changed edge count: %d -> %d", before, got)
		}
	})
}

func TestPropertyDriftStaysInViewport(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := genSession(t)
		frames := rapid.IntRange(1, 200).Draw(t, "frames")
		vp := s.Viewport()
		for f := 0; f < frames; f++ {
			s.Draw(&recorder{})
		}
		for _, n := range s.Nodes() {
			if n.X < EdgeMargin || n.X > vp.W-EdgeMargin || n.Y < EdgeMargin || n.Y > vp.H-EdgeMargin {
				t.Fatalf("%s at (%v,%v) outside %vx%v", n.Term(), n.X, n.Y, vp.W, vp.H)
			}
		}
	})
}

func TestPropertySelectionAlwaysMember(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := genSession(t)
		vp := s.Viewport()
		presses := rapid.IntRange(0, 20).Draw(t, "presses")
		for i := 0; i < presses; i++ {
			x := rapid.Float64Range(0, vp.W).Draw(t, fmt.Sprintf("x%d", i))
			y := rapid.Float64Range(0, vp.H).Draw(t, fmt.Sprintf("y%d", i))
			s.Press(x, y)
			if sel := s.Selected(); sel != nil && s.Index(sel) < 0 {
				t.Fatalf("selection %s is not a member", sel.Term())
			}
		}
		if len(s.Nodes()) > 0 && s.Selected() == nil {
			t.Fatal("non-empty session lost its selection")
		}
	})
}
