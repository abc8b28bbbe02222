package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/goccy/go-json"

	"github.com/vanderheijden86/glossnet/pkg/network"
)

// Graph is the node-link JSON document.
type Graph struct {
	Meta  ExportMeta   `json:"meta"`
	Nodes []ExportNode `json:"nodes"`
	Links []ExportLink `json:"links"`
}

// BuildGraph converts connected nodes into a Graph.
func BuildGraph(nodes []*network.Node, source string, now time.Time) Graph {
	ns, ls := collect(nodes)
	return Graph{
		Meta: ExportMeta{
			Version:     FormatVersion,
			GeneratedAt: now.UTC(),
			Source:      source,
			Stats:       network.Analyze(nodes),
		},
		Nodes: ns,
		Links: ls,
	}
}

// WriteGraphJSON writes g as indented JSON.
func WriteGraphJSON(w io.Writer, g Graph) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(g)
}

// SaveGraphJSON writes the graph of nodes to path.
func SaveGraphJSON(path string, nodes []*network.Node, source string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create parent dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteGraphJSON(f, BuildGraph(nodes, source, time.Now())); err != nil {
		f.Close()
		return fmt.Errorf("write graph json: %w", err)
	}
	return f.Close()
}
