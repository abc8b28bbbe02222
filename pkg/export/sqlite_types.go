// Package export writes the glossary graph to files: SVG/PNG snapshots,
// a JSON node-link document and a SQLite database.
//
// This file defines the records shared by the JSON and SQLite exports.
package export

import (
	"sort"
	"time"

	"github.com/vanderheijden86/glossnet/pkg/model"
	"github.com/vanderheijden86/glossnet/pkg/network"
)

// FormatVersion is written into every export's metadata.
const FormatVersion = "1.0.0"

// ExportNode is one glossary node with its position and graph metrics.
type ExportNode struct {
	ID        int               `json:"id"`
	Term      string            `json:"term"`
	Class     string            `json:"class"`
	Keywords  []string          `json:"keywords,omitempty"`
	X         float64           `json:"x"`
	Y         float64           `json:"y"`
	Degree    int               `json:"degree"`
	Component int               `json:"component"`
	Fields    map[string]string `json:"fields,omitempty"`
}

// ExportLink is an undirected connection between two nodes.
type ExportLink struct {
	Source int      `json:"source"`
	Target int      `json:"target"`
	Shared []string `json:"shared"`
}

// ExportMeta describes where and when an export was produced.
type ExportMeta struct {
	Version     string        `json:"version"`
	GeneratedAt time.Time     `json:"generated_at"`
	Source      string        `json:"source,omitempty"`
	Title       string        `json:"title,omitempty"`
	Stats       network.Stats `json:"stats"`
}

// collect turns a connected node set into export records. Component indexes
// follow network.Components, so 0 is the largest component.
func collect(nodes []*network.Node) ([]ExportNode, []ExportLink) {
	component := make(map[int]int, len(nodes))
	for i, ids := range network.Components(nodes) {
		for _, id := range ids {
			component[id] = i
		}
	}

	out := make([]ExportNode, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, ExportNode{
			ID:        n.ID,
			Term:      n.Term(),
			Class:     n.Class.String(),
			Keywords:  n.Entry.Tags(),
			X:         n.X,
			Y:         n.Y,
			Degree:    len(n.Connections()),
			Component: component[n.ID],
			Fields:    nonEmptyFields(n.Entry),
		})
	}

	edges := network.Edges(nodes)
	links := make([]ExportLink, 0, len(edges))
	for _, e := range edges {
		links = append(links, ExportLink{
			Source: e.A.ID,
			Target: e.B.ID,
			Shared: network.SharedKeywords(e.A, e.B),
		})
	}
	sort.Slice(links, func(i, j int) bool {
		if links[i].Source != links[j].Source {
			return links[i].Source < links[j].Source
		}
		return links[i].Target < links[j].Target
	})
	return out, links
}

func nonEmptyFields(e model.Entry) map[string]string {
	out := make(map[string]string, len(e.Fields))
	for k, v := range e.Fields {
		if v != "" {
			out[k] = v
		}
	}
	return out
}
