package ui

import (
	"strings"
	"testing"

	"github.com/vanderheijden86/glossnet/pkg/canvas"
	"github.com/vanderheijden86/glossnet/pkg/network"
	"github.com/vanderheijden86/glossnet/pkg/testutil"
)

func TestPaneSizeUnlaidIsZero(t *testing.T) {
	g := NewGraphModel(TestTheme())
	if w, h := g.Sizer().Size(); w != 0 || h != 0 {
		t.Errorf("unsized pane = %vx%v, want 0x0", w, h)
	}
	g.SetSize(-3, 10)
	if w, _ := g.Sizer().Size(); w != 0 {
		t.Error("negative columns should clamp to an unready pane")
	}
}

func TestPaneSizeInGraphUnits(t *testing.T) {
	g := NewGraphModel(TestTheme())
	g.SetSize(40, 10)
	w, h := g.Sizer().Size()
	if w != 40*canvas.CellW || h != 10*canvas.CellH {
		t.Errorf("size = %vx%v", w, h)
	}
}

// The sizer is shared, so a session built from one copy of the pane sees
// resizes made through another.
func TestPaneSizerSharedAcrossCopies(t *testing.T) {
	g := NewGraphModel(TestTheme())
	sizer := g.Sizer()
	cp := g
	cp.SetSize(20, 5)
	if w, _ := sizer.Size(); w != 20*canvas.CellW {
		t.Errorf("copy resize not visible through the shared sizer: %v", w)
	}
}

func TestPointAt(t *testing.T) {
	g := NewGraphModel(TestTheme())
	g.SetSize(10, 4)

	x, y, ok := g.PointAt(2, 1)
	if !ok || x != 2*canvas.CellW+canvas.CellW/2 || y != canvas.CellH+canvas.CellH/2 {
		t.Errorf("PointAt(2,1) = %v,%v,%v", x, y, ok)
	}
	for _, c := range [][2]int{{-1, 0}, {0, -1}, {10, 0}, {0, 4}} {
		if _, _, ok := g.PointAt(c[0], c[1]); ok {
			t.Errorf("PointAt(%d,%d) should be outside", c[0], c[1])
		}
	}
}

func TestRenderDrawsNodesAndLabel(t *testing.T) {
	g := NewGraphModel(TestTheme())
	g.SetSize(60, 20)

	gen := testutil.NewDefault()
	s := network.NewSession(g.Sizer(), network.WithSeed(5), network.WithView(network.ViewNetwork))
	if err := s.Load(gen.ToEntries(gen.Star(2))); err != nil {
		t.Fatal(err)
	}
	g.Render(s, false)

	plain := g.Plain()
	if strings.TrimSpace(plain) == "" {
		t.Fatal("render left the pane blank")
	}
	// The auto-selected node is labelled with its upper-cased term, unless
	// the label runs off the right edge.
	n := s.Selected()
	if col := int((n.X + 15) / canvas.CellW); col+len("TERM 000") <= 60 && !strings.Contains(plain, "TERM 000") {
		t.Errorf("selected label missing:\n%s", plain)
	}
	if lines := strings.Split(g.View(), "\n"); len(lines) != 20 {
		t.Errorf("frame has %d rows, want 20", len(lines))
	}
}

func TestRenderNilSession(t *testing.T) {
	g := NewGraphModel(TestTheme())
	g.SetSize(10, 3)
	g.Render(nil, true)
	if g.View() != "" {
		t.Error("nil session should render nothing")
	}
}
