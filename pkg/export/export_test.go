package export

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/vanderheijden86/glossnet/pkg/model"
	"github.com/vanderheijden86/glossnet/pkg/network"
	"github.com/vanderheijden86/glossnet/pkg/testutil"
)

func loadedSession(t *testing.T, entries []model.Entry) *network.Session {
	t.Helper()
	s := network.NewSession(
		network.SizerFunc(func() (float64, float64) { return 320, 240 }),
		network.WithSeed(3),
	)
	if err := s.Load(entries); err != nil {
		t.Fatalf("Load: %v", err)
	}
	return s
}

func starSession(t *testing.T) *network.Session {
	g := testutil.NewDefault()
	return loadedSession(t, g.ToEntries(g.Star(3)))
}

func TestSaveSnapshot_SVGAndPNG(t *testing.T) {
	s := starSession(t)
	before := s.Nodes()[0].X
	dir := t.TempDir()

	svgPath := filepath.Join(dir, "out", "graph.svg")
	if err := SaveSnapshot(SnapshotOptions{Path: svgPath, Session: s}); err != nil {
		t.Fatalf("svg: %v", err)
	}
	data, err := os.ReadFile(svgPath)
	if err != nil {
		t.Fatal(err)
	}
	doc := string(data)
	if !strings.HasPrefix(strings.TrimSpace(doc), "<?xml") || !strings.Contains(doc, "</svg>") {
		t.Errorf("not a complete svg document: %.80s", doc)
	}
	if !strings.Contains(doc, `width="320"`) {
		t.Errorf("svg should use the session viewport size")
	}

	pngPath := filepath.Join(dir, "graph.png")
	if err := SaveSnapshot(SnapshotOptions{Path: pngPath, Session: s}); err != nil {
		t.Fatalf("png: %v", err)
	}
	f, err := os.Open(pngPath)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 320 || b.Dy() != 240 {
		t.Errorf("png bounds = %v", b)
	}

	if s.Nodes()[0].X != before {
		t.Error("snapshot moved the live session's nodes")
	}
}

func TestSaveSnapshot_Errors(t *testing.T) {
	unloaded := network.NewSession(network.SizerFunc(func() (float64, float64) { return 10, 10 }))
	if err := SaveSnapshot(SnapshotOptions{Path: "x.svg", Session: unloaded}); err == nil {
		t.Error("expected error for unloaded session")
	}
	empty := loadedSession(t, nil)
	if err := SaveSnapshot(SnapshotOptions{Path: "x.svg", Session: empty}); err == nil {
		t.Error("expected error for session without nodes")
	}
	s := starSession(t)
	if err := SaveSnapshot(SnapshotOptions{Session: s}); err == nil {
		t.Error("expected error for missing path")
	}
}

func TestSnapshotFormat(t *testing.T) {
	tests := []struct {
		path, format string
		want         string
		wantErr      bool
	}{
		{"a.svg", "", "svg", false},
		{"a.PNG", "", "png", false},
		{"a.out", ".svg", "svg", false},
		{"a.svg", "png", "png", false},
		{"a", "", "", true},
		{"a.jpg", "", "", true},
	}
	for _, tt := range tests {
		got, err := snapshotFormat(tt.path, tt.format)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("snapshotFormat(%q, %q) = %q, %v", tt.path, tt.format, got, err)
		}
	}
}

func TestBuildGraph(t *testing.T) {
	s := starSession(t)
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	g := BuildGraph(s.Nodes(), "data.csv", now)

	if len(g.Nodes) != 4 || len(g.Links) != 3 {
		t.Fatalf("graph has %d nodes, %d links", len(g.Nodes), len(g.Links))
	}
	if g.Nodes[0].Degree != 3 || g.Nodes[0].Class != "brain" {
		t.Errorf("hub = %+v", g.Nodes[0])
	}
	for _, l := range g.Links {
		if l.Source != 0 || len(l.Shared) != 1 || l.Shared[0] != fmt.Sprintf("spoke-%d", l.Target) {
			t.Errorf("link = %+v", l)
		}
	}
	if g.Meta.Stats.Hub != "Term 000" || g.Meta.Stats.Components != 1 {
		t.Errorf("stats = %+v", g.Meta.Stats)
	}

	var buf bytes.Buffer
	if err := WriteGraphJSON(&buf, g); err != nil {
		t.Fatal(err)
	}
	var back Graph
	if err := json.Unmarshal(buf.Bytes(), &back); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !back.Meta.GeneratedAt.Equal(now) || back.Meta.Source != "data.csv" || len(back.Links) != 3 {
		t.Errorf("decoded meta = %+v", back.Meta)
	}
	if !strings.Contains(buf.String(), `"largest_component": 4`) {
		t.Errorf("stats keys missing from json:\n%s", buf.String())
	}
}

func TestBuildGraph_Components(t *testing.T) {
	g := testutil.NewDefault()
	fx := g.Disconnected(2, 3)
	fx.Terms = append(fx.Terms, "Loner")
	fx.Keywords = append(fx.Keywords, nil)
	s := loadedSession(t, g.ToEntries(fx))

	graph := BuildGraph(s.Nodes(), "", time.Now())
	comp := map[int]int{}
	for _, n := range graph.Nodes {
		comp[n.Component]++
	}
	if comp[0] != 3 || comp[1] != 3 || comp[2] != 1 {
		t.Errorf("component sizes = %v", comp)
	}
	if graph.Nodes[6].Degree != 0 || graph.Meta.Stats.Isolated != 1 {
		t.Errorf("loner = %+v, stats %+v", graph.Nodes[6], graph.Meta.Stats)
	}
}

func TestSQLiteExport(t *testing.T) {
	s := starSession(t)
	path := filepath.Join(t.TempDir(), "glossary.sqlite3")
	exp := NewSQLiteExporter(s.Nodes(), "data.csv")
	exp.Config.Title = "Zine"
	if err := exp.Export(path); err != nil {
		t.Fatalf("Export: %v", err)
	}
	// A second export replaces the file instead of failing on duplicate keys.
	if err := exp.Export(path); err != nil {
		t.Fatalf("re-Export: %v", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	var entries, conns int
	if err := db.QueryRow(`SELECT COUNT(*) FROM entries`).Scan(&entries); err != nil {
		t.Fatal(err)
	}
	if err := db.QueryRow(`SELECT COUNT(*) FROM connections`).Scan(&conns); err != nil {
		t.Fatal(err)
	}
	if entries != 4 || conns != 3 {
		t.Errorf("entries=%d connections=%d", entries, conns)
	}

	var term, keywords, fields string
	if err := db.QueryRow(`SELECT term, keywords, fields FROM entries WHERE id = 0`).Scan(&term, &keywords, &fields); err != nil {
		t.Fatal(err)
	}
	if term != "Term 000" || keywords != "spoke-1; spoke-2; spoke-3" {
		t.Errorf("entry 0 = %q %q", term, keywords)
	}
	var decoded map[string]string
	if err := json.Unmarshal([]byte(fields), &decoded); err != nil {
		t.Fatal(err)
	}
	if decoded[model.FieldDefinition] != "Definition of term 000." {
		t.Errorf("fields = %v", decoded)
	}

	var degree int
	if err := db.QueryRow(`SELECT degree FROM node_stats WHERE id = 0`).Scan(&degree); err != nil || degree != 3 {
		t.Errorf("hub degree = %d, %v", degree, err)
	}

	meta := map[string]string{}
	rows, err := db.Query(`SELECT key, value FROM export_meta`)
	if err != nil {
		t.Fatal(err)
	}
	defer rows.Close()
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			t.Fatal(err)
		}
		meta[k] = v
	}
	if meta["entry_count"] != "4" || meta["connection_count"] != "3" || meta["title"] != "Zine" || meta["source"] != "data.csv" {
		t.Errorf("meta = %v", meta)
	}

	var hit string
	if err := db.QueryRow(`SELECT term FROM entries_fts WHERE entries_fts MATCH 'spoke' ORDER BY rank LIMIT 1`).Scan(&hit); err != nil {
		t.Errorf("fts query: %v", err)
	}
}

func TestAll(t *testing.T) {
	s := starSession(t)
	dir := t.TempDir()
	targets := Targets{
		SVG:    filepath.Join(dir, "g.svg"),
		PNG:    filepath.Join(dir, "g.png"),
		SQLite: filepath.Join(dir, "g.sqlite3"),
		JSON:   filepath.Join(dir, "g.json"),
	}
	results, err := All(context.Background(), s, targets, "data.csv")
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if len(results) != 4 {
		t.Fatalf("results = %+v", results)
	}
	for _, r := range results {
		if r.Error != nil {
			t.Errorf("%s: %v", r.Kind, r.Error)
		}
		if info, err := os.Stat(r.Path); err != nil || info.Size() == 0 {
			t.Errorf("%s output missing: %v", r.Kind, err)
		}
	}
}

func TestAll_PartialFailure(t *testing.T) {
	s := starSession(t)
	dir := t.TempDir()
	blocker := testutil.WriteFile(t, dir, "blocker", "not a directory")
	targets := Targets{
		SVG:  filepath.Join(dir, "ok.svg"),
		JSON: filepath.Join(blocker, "g.json"),
	}
	results, err := All(context.Background(), s, targets, "")
	if err == nil || !strings.Contains(err.Error(), "json export") {
		t.Fatalf("expected joined json error, got %v", err)
	}
	if results[0].Error != nil {
		t.Errorf("svg should still succeed: %v", results[0].Error)
	}
}

func TestAll_NotLoaded(t *testing.T) {
	if !(Targets{}).Empty() {
		t.Error("zero Targets should be empty")
	}
	unloaded := network.NewSession(network.SizerFunc(func() (float64, float64) { return 0, 0 }))
	if _, err := All(context.Background(), unloaded, Targets{SVG: "x.svg"}, ""); err == nil {
		t.Error("expected error for unloaded session")
	}
}
