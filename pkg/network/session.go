package network

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/vanderheijden86/glossnet/pkg/debug"
	"github.com/vanderheijden86/glossnet/pkg/model"
)

var (
	// ErrStageOrder is returned when an initialization step runs before the
	// step it depends on.
	ErrStageOrder = errors.New("initialization step out of order")

	// ErrNotMember is returned when selecting a node that is not part of
	// the session's node set.
	ErrNotMember = errors.New("node is not in the current set")
)

// Stage is a step of the initialization pipeline.
type Stage int

const (
	StageEmpty Stage = iota
	StageMeasured
	StageNodes
	StageConnected
	StageReady
)

func (s Stage) String() string {
	switch s {
	case StageEmpty:
		return "empty"
	case StageMeasured:
		return "measured"
	case StageNodes:
		return "nodes"
	case StageConnected:
		return "connected"
	case StageReady:
		return "ready"
	default:
		return fmt.Sprintf("stage(%d)", int(s))
	}
}

// View is which of the two top-level views is showing.
type View int

const (
	ViewDirectory View = iota
	ViewNetwork
)

func (v View) String() string {
	if v == ViewNetwork {
		return "network"
	}
	return "directory"
}

// ParseView maps "directory" or "network" to a View.
func ParseView(s string) (View, error) {
	switch s {
	case "directory", "":
		return ViewDirectory, nil
	case "network":
		return ViewNetwork, nil
	default:
		return ViewDirectory, fmt.Errorf("unknown view %q (want directory or network)", s)
	}
}

// Viewport is the drawable area in graph units.
type Viewport struct {
	W, H float64
}

// Valid reports whether both dimensions are positive.
func (v Viewport) Valid() bool { return v.W > 0 && v.H > 0 }

// Sizer reports the host's current drawable area. A zero size means the
// host is not laid out yet.
type Sizer interface {
	Size() (w, h float64)
}

// SizerFunc adapts a function to Sizer.
type SizerFunc func() (float64, float64)

func (f SizerFunc) Size() (float64, float64) { return f() }

// Pointer is the last known pointer position.
type Pointer struct {
	X, Y    float64
	Present bool
}

// Session owns the node set, the selection and the view mode for one
// loaded dataset. It is not safe for concurrent use; the UI drives it from
// its update loop.
type Session struct {
	sizer    Sizer
	rng      Rand
	onSelect func(model.Entry)

	stage    Stage
	viewport Viewport
	view     View
	nodes    []*Node
	edges    int
	selected *Node
	pointer  Pointer
}

// Option configures a Session.
type Option func(*Session)

// WithRand sets the randomness used for placement and drift.
func WithRand(r Rand) Option {
	return func(s *Session) { s.rng = r }
}

// WithSeed seeds placement and drift. Zero keeps the time-based default.
func WithSeed(seed uint64) Option {
	return func(s *Session) {
		if seed != 0 {
			s.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
		}
	}
}

// WithOnSelect registers the selection callback.
func WithOnSelect(fn func(model.Entry)) Option {
	return func(s *Session) { s.onSelect = fn }
}

// WithView sets the starting view.
func WithView(v View) Option {
	return func(s *Session) { s.view = v }
}

// NewSession creates an empty session measuring through sizer.
func NewSession(sizer Sizer, opts ...Option) *Session {
	now := uint64(time.Now().UnixNano())
	s := &Session{
		sizer: sizer,
		rng:   rand.New(rand.NewPCG(now, now>>1)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Session) Stage() Stage { return s.stage }
func (s *Session) Viewport() Viewport { return s.viewport }
func (s *Session) View() View { return s.view }
func (s *Session) Nodes() []*Node { return s.nodes }
func (s *Session) EdgeCount() int { return s.edges }
func (s *Session) Selected() *Node { return s.selected }
func (s *Session) Pointer() Pointer { return s.pointer }
func (s *Session) Ready() bool { return s.stage == StageReady }
func (s *Session) SetPointer(x, y float64) { s.pointer = Pointer{X: x, Y: y, Present: true} }
func (s *Session) ClearPointer() { s.pointer = Pointer{} }

// Measure asks the sizer for the current area. A zero size leaves the old
// viewport in place and reports false. Existing nodes are pulled inside the
// new bounds.
func (s *Session) Measure() bool {
	if s.sizer == nil {
		return false
	}
	w, h := s.sizer.Size()
	vp := Viewport{W: w, H: h}
	if !vp.Valid() {
		return false
	}
	s.viewport = vp
	for _, n := range s.nodes {
		n.clamp(vp)
	}
	if s.stage == StageEmpty {
		s.stage = StageMeasured
	}
	return true
}

// CreateNodes builds one node per entry that has a term. The node id is the
// entry's row, so ids may skip rows without a term.
func (s *Session) CreateNodes(entries []model.Entry) error {
	if err := s.expect(StageMeasured, "create nodes"); err != nil {
		return err
	}
	nodes := make([]*Node, 0, len(entries))
	for _, e := range entries {
		if !model.HasContent(e.Term()) {
			continue
		}
		n := NewNode(e, e.Row, s.viewport, s.rng)
		n.index = len(nodes)
		nodes = append(nodes, n)
	}
	s.nodes = nodes
	s.stage = StageNodes
	return nil
}

// Connect computes the keyword connections.
func (s *Session) Connect() error {
	if err := s.expect(StageNodes, "connect"); err != nil {
		return err
	}
	s.edges = BuildConnections(s.nodes)
	s.stage = StageConnected
	return nil
}

// AutoSelect selects the first node, if any, and marks the session ready.
func (s *Session) AutoSelect() error {
	if err := s.expect(StageConnected, "auto-select"); err != nil {
		return err
	}
	s.stage = StageReady
	if len(s.nodes) > 0 {
		return s.Select(s.nodes[0])
	}
	return nil
}

// Load runs the whole pipeline: measure, create nodes, connect and select
// the first node.
func (s *Session) Load(entries []model.Entry) error {
	defer debug.LogEnterExit("network.Load")()
	if !s.Measure() && s.stage == StageEmpty {
		return fmt.Errorf("load: %w: viewport has no size", ErrStageOrder)
	}
	if err := s.CreateNodes(entries); err != nil {
		return fmt.Errorf("load: %w", err)
	}
	if err := s.Connect(); err != nil {
		return fmt.Errorf("load: %w", err)
	}
	if err := s.AutoSelect(); err != nil {
		return fmt.Errorf("load: %w", err)
	}
	debug.Log("network: %d nodes, %d edges in %.0fx%.0f", len(s.nodes), s.edges, s.viewport.W, s.viewport.H)
	return nil
}

func (s *Session) expect(want Stage, op string) error {
	if s.stage != want {
		return fmt.Errorf("%s: %w: at %s, need %s", op, ErrStageOrder, s.stage, want)
	}
	return nil
}

// SetView switches views. Entering the network view re-measures the
// viewport so the canvas follows the host's size.
func (s *Session) SetView(v View) {
	s.view = v
	if v == ViewNetwork {
		s.Measure()
	}
}

// Select makes n the selection and fires the callback.
func (s *Session) Select(n *Node) error {
	if !s.member(n) {
		return ErrNotMember
	}
	s.selected = n
	debug.Log("network: selected %q (id %d)", n.Term(), n.ID)
	if s.onSelect != nil {
		s.onSelect(n.Entry)
	}
	return nil
}

// SelectIndex selects the i-th node in creation order.
func (s *Session) SelectIndex(i int) error {
	if i < 0 || i >= len(s.nodes) {
		return fmt.Errorf("select %d: %w", i, ErrNotMember)
	}
	return s.Select(s.nodes[i])
}

// SelectID selects the node with the given id.
func (s *Session) SelectID(id int) error {
	for _, n := range s.nodes {
		if n.ID == id {
			return s.Select(n)
		}
	}
	return fmt.Errorf("select id %d: %w", id, ErrNotMember)
}

// Press handles a pointer press at (px, py). Only in the network view, the
// first node in creation order under the point becomes the selection. A
// miss leaves the selection unchanged.
func (s *Session) Press(px, py float64) (*Node, bool) {
	if s.view != ViewNetwork {
		return nil, false
	}
	n := s.NodeAt(px, py)
	if n == nil {
		return nil, false
	}
	if err := s.Select(n); err != nil {
		return nil, false
	}
	return n, true
}

// NodeAt returns the first node in creation order whose square contains
// the point, or nil.
func (s *Session) NodeAt(px, py float64) *Node {
	for _, n := range s.nodes {
		if n.IsHovered(px, py) {
			return n
		}
	}
	return nil
}

// Index returns n's position in creation order, or -1.
func (s *Session) Index(n *Node) int {
	if !s.member(n) {
		return -1
	}
	return n.index
}

func (s *Session) member(n *Node) bool {
	return n != nil && n.index >= 0 && n.index < len(s.nodes) && s.nodes[n.index] == n
}

// Snapshot copies the node positions so another goroutine can paint them
// while this session keeps drifting.
func (s *Session) Snapshot() *Session {
	c := &Session{
		stage:    s.stage,
		viewport: s.viewport,
		view:     ViewNetwork,
		edges:    s.edges,
	}
	copies := make(map[*Node]*Node, len(s.nodes))
	c.nodes = make([]*Node, len(s.nodes))
	for i, n := range s.nodes {
		cp := *n
		cp.connections = nil
		c.nodes[i] = &cp
		copies[n] = &cp
	}
	for i, n := range s.nodes {
		for _, m := range n.connections {
			c.nodes[i].connections = append(c.nodes[i].connections, copies[m])
		}
	}
	if s.selected != nil {
		c.selected = copies[s.selected]
	}
	return c
}
