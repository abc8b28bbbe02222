package testutil

import (
	"encoding/csv"
	"strings"
	"testing"

	"github.com/vanderheijden86/glossnet/pkg/model"
)

func TestChain(t *testing.T) {
	gf := NewDefault().Chain(4)
	if len(gf.Terms) != 4 {
		t.Fatalf("expected 4 terms, got %d", len(gf.Terms))
	}
	AssertEdgeSet(t, gf.Edges, [][2]int{{0, 1}, {1, 2}, {2, 3}})
	if len(gf.Keywords[0]) != 1 || len(gf.Keywords[1]) != 2 {
		t.Errorf("unexpected keywords %v", gf.Keywords)
	}
}

func TestStar(t *testing.T) {
	gf := NewDefault().Star(3)
	AssertEdgeSet(t, gf.Edges, [][2]int{{0, 1}, {0, 2}, {0, 3}})
	if len(gf.Keywords[0]) != 3 {
		t.Errorf("hub keywords = %v", gf.Keywords[0])
	}
}

func TestDisconnectedEdgeCount(t *testing.T) {
	gf := NewDefault().Disconnected(3, 4)
	if got, want := len(gf.Edges), 3*6; got != want {
		t.Errorf("edges = %d, want %d", got, want)
	}
}

func TestRandomIsDeterministic(t *testing.T) {
	a := New(DefaultConfig()).Random(20, 10, 2)
	b := New(DefaultConfig()).Random(20, 10, 2)
	for i := range a.Keywords {
		if strings.Join(a.Keywords[i], ",") != strings.Join(b.Keywords[i], ",") {
			t.Fatalf("term %d differs: %v vs %v", i, a.Keywords[i], b.Keywords[i])
		}
	}
	AssertEdgeSet(t, a.Edges, b.Edges)
}

func TestToEntriesAndCSV(t *testing.T) {
	g := NewDefault()
	entries := g.ToEntries(g.Chain(3))
	AssertEntryCount(t, entries, 3)
	AssertTerms(t, entries, "Term 000", "Term 001", "Term 002")
	if entries[1].Get(model.FieldKeywords) != "link-0; link-1" {
		t.Errorf("keywords = %q", entries[1].Get(model.FieldKeywords))
	}
	if entries[0].Class() != model.ClassBrain {
		t.Errorf("first category should classify as brain, got %v", entries[0].Class())
	}

	records, err := csv.NewReader(strings.NewReader(ToCSV(entries))).ReadAll()
	if err != nil {
		t.Fatalf("csv: %v", err)
	}
	if len(records) != 4 {
		t.Fatalf("expected header + 3 rows, got %d", len(records))
	}
	if records[0][0] != model.FieldTerm || records[2][0] != "Term 001" {
		t.Errorf("unexpected csv layout: %v", records[:3])
	}
}
