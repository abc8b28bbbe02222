// Package testutil provides glossary fixture generators and assertions.
// All generators produce deterministic output for reproducible tests.
package testutil

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/vanderheijden86/glossnet/pkg/model"
)

// Header is the column order written by ToCSV.
var Header = []string{
	model.FieldTerm,
	model.FieldKeywords,
	model.FieldCategory,
	model.FieldMembers,
	model.FieldDefinition,
	model.FieldGAI,
	model.FieldRelated,
	model.FieldMedia,
	model.FieldCode,
}

// GlossaryFixture is an abstract glossary: terms plus the keywords that
// decide which of them connect.
type GlossaryFixture struct {
	Description string
	Terms       []string
	Keywords    [][]string
	// Edges lists the index pairs (i<j) the keywords are meant to connect.
	Edges [][2]int
}

// GeneratorConfig controls fixture generation.
type GeneratorConfig struct {
	Seed       uint64   // Random seed for determinism
	TermPrefix string   // Prefix for terms (default: "Term")
	Categories []string // Category cycle (default: brain, search, llm, blank)
}

// DefaultConfig returns a config suitable for most tests.
func DefaultConfig() GeneratorConfig {
	return GeneratorConfig{
		Seed:       42,
		TermPrefix: "Term",
		Categories: []string{"Brain", "Search", "LLM", ""},
	}
}

// Generator creates glossary fixtures with known connection topologies.
type Generator struct {
	cfg GeneratorConfig
	rng *rand.Rand
}

// New creates a Generator with the given config.
func New(cfg GeneratorConfig) *Generator {
	if cfg.TermPrefix == "" {
		cfg.TermPrefix = "Term"
	}
	if len(cfg.Categories) == 0 {
		cfg.Categories = DefaultConfig().Categories
	}
	return &Generator{
		cfg: cfg,
		rng: rand.New(rand.NewPCG(cfg.Seed, cfg.Seed+1)),
	}
}

// NewDefault creates a Generator with default config.
func NewDefault() *Generator {
	return New(DefaultConfig())
}

func (g *Generator) terms(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("%s %03d", g.cfg.TermPrefix, i)
	}
	return out
}

// Chain links term i to term i+1 through a keyword only they share.
func (g *Generator) Chain(size int) GlossaryFixture {
	kw := make([][]string, size)
	var edges [][2]int
	for i := 0; i < size; i++ {
		if i > 0 {
			kw[i] = append(kw[i], fmt.Sprintf("link-%d", i-1))
		}
		if i < size-1 {
			kw[i] = append(kw[i], fmt.Sprintf("link-%d", i))
			edges = append(edges, [2]int{i, i + 1})
		}
	}
	return GlossaryFixture{
		Description: fmt.Sprintf("chain of %d terms", size),
		Terms:       g.terms(size),
		Keywords:    kw,
		Edges:       edges,
	}
}

// Star makes term 0 a hub sharing one keyword with each spoke.
func (g *Generator) Star(spokes int) GlossaryFixture {
	kw := make([][]string, spokes+1)
	var edges [][2]int
	for i := 1; i <= spokes; i++ {
		tag := fmt.Sprintf("spoke-%d", i)
		kw[0] = append(kw[0], tag)
		kw[i] = []string{tag}
		edges = append(edges, [2]int{0, i})
	}
	return GlossaryFixture{
		Description: fmt.Sprintf("star with %d spokes", spokes),
		Terms:       g.terms(spokes + 1),
		Keywords:    kw,
		Edges:       edges,
	}
}

// Disconnected creates components that are cliques on a per-group keyword.
func (g *Generator) Disconnected(components, size int) GlossaryFixture {
	n := components * size
	kw := make([][]string, n)
	var edges [][2]int
	for c := 0; c < components; c++ {
		base := c * size
		for i := 0; i < size; i++ {
			kw[base+i] = []string{fmt.Sprintf("group-%d", c)}
			for j := i + 1; j < size; j++ {
				edges = append(edges, [2]int{base + i, base + j})
			}
		}
	}
	return GlossaryFixture{
		Description: fmt.Sprintf("%d components of %d", components, size),
		Terms:       g.terms(n),
		Keywords:    kw,
		Edges:       edges,
	}
}

// Isolated creates terms with no keywords at all.
func (g *Generator) Isolated(size int) GlossaryFixture {
	return GlossaryFixture{
		Description: fmt.Sprintf("%d isolated terms", size),
		Terms:       g.terms(size),
		Keywords:    make([][]string, size),
	}
}

// Random draws perTerm keywords per term from a vocabulary of vocab words.
// Edges are computed from the drawn keywords.
func (g *Generator) Random(size, vocab, perTerm int) GlossaryFixture {
	kw := make([][]string, size)
	for i := range kw {
		for k := 0; k < perTerm; k++ {
			kw[i] = append(kw[i], fmt.Sprintf("word-%d", g.rng.IntN(vocab)))
		}
	}
	var edges [][2]int
	for i := 0; i < size; i++ {
		for j := i + 1; j < size; j++ {
			if intersects(kw[i], kw[j]) {
				edges = append(edges, [2]int{i, j})
			}
		}
	}
	return GlossaryFixture{
		Description: fmt.Sprintf("random %d terms over %d words", size, vocab),
		Terms:       g.terms(size),
		Keywords:    kw,
		Edges:       edges,
	}
}

func intersects(a, b []string) bool {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return true
			}
		}
	}
	return false
}

// ToEntries converts a fixture into dataset rows.
func (g *Generator) ToEntries(gf GlossaryFixture) []model.Entry {
	out := make([]model.Entry, len(gf.Terms))
	for i, term := range gf.Terms {
		out[i] = model.NewEntry(i, map[string]string{
			model.FieldTerm:       term,
			model.FieldKeywords:   strings.Join(gf.Keywords[i], "; "),
			model.FieldCategory:   g.cfg.Categories[i%len(g.cfg.Categories)],
			model.FieldDefinition: fmt.Sprintf("Definition of %s.", strings.ToLower(term)),
		})
	}
	return out
}

// ToCSV renders entries as a CSV document with the Header columns.
func ToCSV(entries []model.Entry) string {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write(Header)
	for _, e := range entries {
		row := make([]string, len(Header))
		for i, col := range Header {
			row[i] = e.Get(col)
		}
		_ = w.Write(row)
	}
	w.Flush()
	return buf.String()
}

// Entry builds a single row from alternating column/value pairs.
func Entry(row int, kv ...string) model.Entry {
	fields := make(map[string]string, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		fields[kv[i]] = kv[i+1]
	}
	return model.NewEntry(row, fields)
}
