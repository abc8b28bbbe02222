package network

import (
	"sort"

	"gonum.org/v1/gonum/graph"
	gnet "gonum.org/v1/gonum/graph/network"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// Stats summarizes the keyword graph for the status bar and exports.
type Stats struct {
	Nodes      int    `json:"nodes"`
	Edges      int    `json:"edges"`
	Components int    `json:"components"`
	Largest    int    `json:"largest_component"` // size of the largest component
	Isolated   int    `json:"isolated"`          // nodes with no connections
	MaxDegree  int    `json:"max_degree"`
	Hub        string `json:"hub,omitempty"`    // term with the most connections
	Bridge     string `json:"bridge,omitempty"` // term with the highest betweenness
}

// Graph builds an undirected gonum graph keyed by node ID.
func Graph(nodes []*Node) *simple.UndirectedGraph {
	g := simple.NewUndirectedGraph()
	for _, n := range nodes {
		if g.Node(int64(n.ID)) == nil {
			g.AddNode(simple.Node(n.ID))
		}
	}
	for _, e := range Edges(nodes) {
		g.SetEdge(simple.Edge{F: simple.Node(e.A.ID), T: simple.Node(e.B.ID)})
	}
	return g
}

// Analyze computes Stats for a node set.
func Analyze(nodes []*Node) Stats {
	st := Stats{Nodes: len(nodes)}
	if len(nodes) == 0 {
		return st
	}
	g := Graph(nodes)
	st.Edges = g.Edges().Len()

	comps := topo.ConnectedComponents(g)
	st.Components = len(comps)
	for _, c := range comps {
		if len(c) > st.Largest {
			st.Largest = len(c)
		}
	}

	for _, n := range nodes {
		d := len(n.connections)
		if d == 0 {
			st.Isolated++
		}
		if d > st.MaxDegree {
			st.MaxDegree = d
			st.Hub = n.Term()
		}
	}

	if st.Edges > 0 {
		st.Bridge = topBetweenness(g, nodes)
	}
	return st
}

// Components groups node IDs by connected component, largest first.
func Components(nodes []*Node) [][]int {
	g := Graph(nodes)
	var out [][]int
	for _, c := range topo.ConnectedComponents(g) {
		ids := make([]int, 0, len(c))
		for _, n := range c {
			ids = append(ids, int(n.ID()))
		}
		sort.Ints(ids)
		out = append(out, ids)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if len(out[i]) != len(out[j]) {
			return len(out[i]) > len(out[j])
		}
		return out[i][0] < out[j][0]
	})
	return out
}

func topBetweenness(g graph.Graph, nodes []*Node) string {
	scores := gnet.Betweenness(g)
	best, bestScore := "", 0.0
	// Walk in creation order so ties resolve deterministically.
	for _, n := range nodes {
		if sc := scores[int64(n.ID)]; sc > bestScore {
			best, bestScore = n.Term(), sc
		}
	}
	return best
}
