package datasource

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vanderheijden86/glossnet/pkg/export"
	"github.com/vanderheijden86/glossnet/pkg/loader"
	"github.com/vanderheijden86/glossnet/pkg/model"
	"github.com/vanderheijden86/glossnet/pkg/network"
	"github.com/vanderheijden86/glossnet/pkg/testutil"
)

// writeExport loads entries into a session and exports it to dir/name.
func writeExport(t *testing.T, dir, name string, entries []model.Entry) string {
	t.Helper()
	s := network.NewSession(network.SizerFunc(func() (float64, float64) { return 400, 300 }), network.WithSeed(1))
	if err := s.Load(entries); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, name)
	if err := export.NewSQLiteExporter(s.Nodes(), "test").Export(path); err != nil {
		t.Fatalf("export: %v", err)
	}
	return path
}

func TestTypeOf(t *testing.T) {
	tests := map[string]SourceType{
		"data.csv":          SourceTypeCSV,
		"DATA.CSV":          SourceTypeCSV,
		"glossary.sqlite3":  SourceTypeSQLite,
		"glossary.DB":       SourceTypeSQLite,
		"glossary.sqlite":   SourceTypeSQLite,
		"no-extension-file": SourceTypeCSV,
	}
	for path, want := range tests {
		if got := TypeOf(path); got != want {
			t.Errorf("TypeOf(%q) = %s, want %s", path, got, want)
		}
	}
}

func TestSQLiteRoundTrip(t *testing.T) {
	g := testutil.NewDefault()
	entries := g.ToEntries(g.Chain(4))
	// Row 1 has no term: it never becomes a node, so it is not exported,
	// but the rows after it keep their numbers.
	entries[1].Fields[model.FieldTerm] = ""
	entries[2].Fields[model.FieldMembers] = "Ana, Bo"
	path := writeExport(t, t.TempDir(), "g.sqlite3", entries)

	got, src, err := LoadEntries(path)
	if err != nil {
		t.Fatalf("LoadEntries: %v", err)
	}
	if src.Type != SourceTypeSQLite || src.EntryCount != 3 {
		t.Errorf("source = %s", src)
	}
	testutil.AssertTerms(t, got, "Term 000", "Term 002", "Term 003")
	if got[1].Row != 2 {
		t.Errorf("row numbers not preserved: %d", got[1].Row)
	}
	if got[1].Get(model.FieldMembers) != "Ana, Bo" {
		t.Errorf("members = %q", got[1].Get(model.FieldMembers))
	}
	if got[2].Get(model.FieldKeywords) != entries[3].Get(model.FieldKeywords) {
		t.Errorf("keywords = %q", got[2].Get(model.FieldKeywords))
	}

	r, err := NewSQLiteReader(src)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	if n, err := r.CountEntries(); err != nil || n != 3 {
		t.Errorf("CountEntries = %d, %v", n, err)
	}
	at, err := r.GeneratedAt()
	if err != nil || time.Since(at) > time.Hour {
		t.Errorf("GeneratedAt = %v, %v", at, err)
	}
}

func TestNewSQLiteReader_Rejects(t *testing.T) {
	if _, err := NewSQLiteReader(DataSource{Type: SourceTypeCSV, Path: "x.csv"}); err == nil {
		t.Error("expected error for CSV source")
	}
	// An empty file opens as an empty database with no export_meta table.
	path := testutil.WriteFile(t, t.TempDir(), "empty.db", "")
	if _, err := NewSQLiteReader(DataSource{Type: SourceTypeSQLite, Path: path}); err == nil {
		t.Error("expected error for a database that is not an export")
	}
}

func TestLoadFromSource_CSV(t *testing.T) {
	g := testutil.NewDefault()
	path := testutil.WriteCSV(t, g.ToEntries(g.Star(2)))
	src, err := Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if src.Type != SourceTypeCSV || src.Priority != PriorityCSV || src.Size == 0 {
		t.Errorf("stat = %+v", src)
	}
	entries, err := LoadFromSource(src)
	if err != nil {
		t.Fatal(err)
	}
	testutil.AssertEntryCount(t, entries, 3)
}

func TestDiscoverAndSelect(t *testing.T) {
	dir := t.TempDir()
	g := testutil.NewDefault()
	entries := g.ToEntries(g.Star(2))
	testutil.WriteFile(t, dir, "data.csv", testutil.ToCSV(entries))
	writeExport(t, dir, "snapshot.sqlite3", entries)
	testutil.WriteFile(t, dir, "notes.txt", "ignored")

	sources, err := DiscoverSources(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(sources) != 2 || sources[0].Type != SourceTypeCSV || sources[1].Type != SourceTypeSQLite {
		t.Fatalf("sources = %v", sources)
	}

	// The CSV wins while it is valid.
	src, err := Resolve(dir)
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(src.Path) != "data.csv" {
		t.Errorf("Resolve picked %s", src.Path)
	}

	// A CSV without a header is invalid, so the export is used instead.
	if err := os.WriteFile(filepath.Join(dir, "data.csv"), nil, 0o644); err != nil {
		t.Fatal(err)
	}
	src, err = Resolve(dir)
	if err != nil {
		t.Fatal(err)
	}
	if src.Type != SourceTypeSQLite {
		t.Errorf("expected fallback to sqlite, got %s", src)
	}
}

func TestSelectBestSource(t *testing.T) {
	old := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	sources := []DataSource{
		{Path: "a.db", Type: SourceTypeSQLite, Priority: PrioritySQLite, ModTime: old, Valid: true},
		{Path: "b.db", Type: SourceTypeSQLite, Priority: PrioritySQLite, ModTime: old.Add(time.Hour), Valid: true},
		{Path: "c.csv", Type: SourceTypeCSV, Priority: PriorityCSV, ModTime: old, Valid: false},
	}
	best, err := SelectBestSource(sources)
	if err != nil {
		t.Fatal(err)
	}
	if best.Path != "b.db" {
		t.Errorf("best = %s", best.Path)
	}
	if sources[0].Path != "a.db" {
		t.Error("SelectBestSource reordered the caller's slice")
	}

	if _, err := SelectBestSource(sources[2:]); !errors.Is(err, ErrNoSources) {
		t.Errorf("expected ErrNoSources, got %v", err)
	}
}

func TestResolve_EnvAndErrors(t *testing.T) {
	t.Setenv(loader.DataEnvVar, "")
	if _, err := Resolve(""); err == nil {
		t.Error("expected error for empty path")
	}
	if _, err := Resolve(filepath.Join(t.TempDir(), "missing.csv")); err == nil {
		t.Error("expected error for missing file")
	}
	if _, err := Resolve(t.TempDir()); !errors.Is(err, ErrNoSources) {
		t.Errorf("empty dir: %v", err)
	}

	path := testutil.WriteCSV(t, []model.Entry{testutil.Entry(0, model.FieldTerm, "Bias")})
	t.Setenv(loader.DataEnvVar, path)
	src, err := Resolve("elsewhere.csv")
	if err != nil || src.Path != path {
		t.Errorf("env override: %v, %v", src, err)
	}
}
