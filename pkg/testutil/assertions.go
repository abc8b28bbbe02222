package testutil

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	json "github.com/goccy/go-json"

	"github.com/vanderheijden86/glossnet/pkg/model"
)

// AssertEntryCount verifies the expected number of entries.
func AssertEntryCount(t *testing.T, entries []model.Entry, expected int) {
	t.Helper()
	if len(entries) != expected {
		t.Errorf("expected %d entries, got %d", expected, len(entries))
	}
}

// AssertTerms verifies entry terms in order.
func AssertTerms(t *testing.T, entries []model.Entry, want ...string) {
	t.Helper()
	got := make([]string, len(entries))
	for i, e := range entries {
		got[i] = e.Term()
	}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("terms = %q, want %q", got, want)
	}
}

// AssertEdgeSet compares two undirected edge lists ignoring order and
// endpoint orientation.
func AssertEdgeSet(t *testing.T, got, want [][2]int) {
	t.Helper()
	g, w := normalizeEdges(got), normalizeEdges(want)
	if len(g) != len(w) {
		t.Errorf("edge count = %d, want %d\n got: %v\nwant: %v", len(g), len(w), g, w)
		return
	}
	for i := range g {
		if g[i] != w[i] {
			t.Errorf("edge sets differ\n got: %v\nwant: %v", g, w)
			return
		}
	}
}

func normalizeEdges(edges [][2]int) [][2]int {
	out := make([][2]int, len(edges))
	for i, e := range edges {
		if e[0] > e[1] {
			e[0], e[1] = e[1], e[0]
		}
		out[i] = e
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i][0] != out[j][0] {
			return out[i][0] < out[j][0]
		}
		return out[i][1] < out[j][1]
	})
	return out
}

// AssertJSONEqual compares two values after JSON encoding.
func AssertJSONEqual(t *testing.T, expected, actual any) {
	t.Helper()
	e, err := json.Marshal(expected)
	if err != nil {
		t.Fatalf("failed to marshal expected: %v", err)
	}
	a, err := json.Marshal(actual)
	if err != nil {
		t.Fatalf("failed to marshal actual: %v", err)
	}
	if string(e) != string(a) {
		t.Errorf("JSON mismatch:\nexpected: %s\nactual:   %s", e, a)
	}
}

// GoldenFile handles golden file comparisons.
type GoldenFile struct {
	t      *testing.T
	dir    string
	name   string
	update bool
}

// NewGoldenFile creates a golden file helper.
// If GENERATE_GOLDEN is set, golden files are rewritten instead of compared.
func NewGoldenFile(t *testing.T, dir, name string) *GoldenFile {
	t.Helper()
	return &GoldenFile{
		t:      t,
		dir:    dir,
		name:   name,
		update: os.Getenv("GENERATE_GOLDEN") != "",
	}
}

// Path returns the full path to the golden file.
func (g *GoldenFile) Path() string {
	return filepath.Join(g.dir, g.name)
}

// Assert compares actual against the golden file.
func (g *GoldenFile) Assert(actual string) {
	g.t.Helper()
	path := g.Path()

	if g.update {
		if err := os.MkdirAll(g.dir, 0o755); err != nil {
			g.t.Fatalf("failed to create golden dir: %v", err)
		}
		if err := os.WriteFile(path, []byte(actual), 0o644); err != nil {
			g.t.Fatalf("failed to write golden file: %v", err)
		}
		g.t.Logf("updated golden file: %s", path)
		return
	}

	expected, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			g.t.Fatalf("golden file does not exist: %s\nRun with GENERATE_GOLDEN=1 to create it", path)
		}
		g.t.Fatalf("failed to read golden file: %v", err)
	}
	if string(expected) == actual {
		return
	}
	exp := strings.Split(string(expected), "\n")
	act := strings.Split(actual, "\n")
	for i := 0; i < len(exp) || i < len(act); i++ {
		var el, al string
		if i < len(exp) {
			el = exp[i]
		}
		if i < len(act) {
			al = act[i]
		}
		if el != al {
			g.t.Errorf("golden file %s mismatch at line %d:\nexpected: %s\nactual:   %s", g.name, i+1, el, al)
			return
		}
	}
}

// WriteFile writes content under dir and returns the path.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// WriteCSV writes entries as glossary.csv in a fresh temp dir.
func WriteCSV(t *testing.T, entries []model.Entry) string {
	t.Helper()
	return WriteFile(t, t.TempDir(), "glossary.csv", ToCSV(entries))
}
