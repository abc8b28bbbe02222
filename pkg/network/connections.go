package network

import "sort"

// Edge is one undirected connection. A always precedes B in creation order.
type Edge struct {
	A, B *Node
}

// BuildConnections links every pair of nodes whose keyword sets intersect
// and returns the number of edges. Existing connection lists are reset
// first, so rebuilding the same set yields the same edges.
//
// Partners are appended in ascending creation order on both ends, which is
// the order a naive pairwise scan produces.
func BuildConnections(nodes []*Node) int {
	index := make(map[string][]int)
	for i, n := range nodes {
		n.connections = nil
		seen := make(map[string]bool)
		for _, tok := range n.Entry.Keywords() {
			if seen[tok] {
				continue
			}
			seen[tok] = true
			index[tok] = append(index[tok], i)
		}
	}

	edges := 0
	for i, n := range nodes {
		partners := make(map[int]struct{})
		for _, tok := range n.Entry.Keywords() {
			for _, j := range index[tok] {
				if j > i {
					partners[j] = struct{}{}
				}
			}
		}
		if len(partners) == 0 {
			continue
		}
		ordered := make([]int, 0, len(partners))
		for j := range partners {
			ordered = append(ordered, j)
		}
		sort.Ints(ordered)
		for _, j := range ordered {
			m := nodes[j]
			n.connections = append(n.connections, m)
			m.connections = append(m.connections, n)
			edges++
		}
	}
	return edges
}

// Edges lists each connection once.
func Edges(nodes []*Node) []Edge {
	pos := make(map[*Node]int, len(nodes))
	for i, n := range nodes {
		pos[n] = i
	}
	var out []Edge
	for i, n := range nodes {
		for _, m := range n.connections {
			if j, ok := pos[m]; ok && j > i {
				out = append(out, Edge{A: n, B: m})
			}
		}
	}
	return out
}

// SharedKeywords returns the lower-cased keywords a and b have in common,
// in a's order.
func SharedKeywords(a, b *Node) []string {
	theirs := make(map[string]bool)
	for _, tok := range b.Entry.Keywords() {
		theirs[tok] = true
	}
	var out []string
	for _, tok := range a.Entry.Keywords() {
		if theirs[tok] {
			out = append(out, tok)
			delete(theirs, tok)
		}
	}
	return out
}
