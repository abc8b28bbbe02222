package export

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	_ "modernc.org/sqlite"

	"github.com/vanderheijden86/glossnet/pkg/debug"
	"github.com/vanderheijden86/glossnet/pkg/model"
	"github.com/vanderheijden86/glossnet/pkg/network"
)

// SQLiteExportConfig tunes the database export.
type SQLiteExportConfig struct {
	Title string
	// FTS adds an entries_fts full-text table. A failure to build it is
	// logged and otherwise ignored.
	FTS bool
}

// DefaultSQLiteExportConfig returns the default export settings.
func DefaultSQLiteExportConfig() SQLiteExportConfig {
	return SQLiteExportConfig{FTS: true}
}

// SQLiteExporter writes a loaded glossary graph to a SQLite database.
type SQLiteExporter struct {
	Nodes  []*network.Node
	Source string // dataset path recorded in export_meta
	Config SQLiteExportConfig
	now    func() time.Time
}

// NewSQLiteExporter creates an exporter for the nodes of a loaded session.
func NewSQLiteExporter(nodes []*network.Node, source string) *SQLiteExporter {
	return &SQLiteExporter{
		Nodes:  nodes,
		Source: source,
		Config: DefaultSQLiteExportConfig(),
		now:    time.Now,
	}
}

// Export writes the database to path, replacing any existing file.
func (e *SQLiteExporter) Export(path string) error {
	defer debug.LogEnterExit("export.SQLite")()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove existing database: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	dbClosed := false
	defer func() {
		if !dbClosed {
			db.Close()
		}
	}()

	if err := CreateSchema(db); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}

	nodes, links := collect(e.Nodes)
	if err := insertEntries(db, nodes); err != nil {
		return fmt.Errorf("insert entries: %w", err)
	}
	if err := insertConnections(db, links); err != nil {
		return fmt.Errorf("insert connections: %w", err)
	}

	if e.Config.FTS {
		if err := CreateFTSIndex(db); err != nil {
			debug.Log("export: FTS5 not available: %v", err)
		}
	}

	if err := e.insertMeta(db, len(links)); err != nil {
		return fmt.Errorf("insert meta: %w", err)
	}

	if err := db.Close(); err != nil {
		return fmt.Errorf("close database: %w", err)
	}
	dbClosed = true
	return nil
}

func insertEntries(db *sql.DB, nodes []ExportNode) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	entryStmt, err := tx.Prepare(`
		INSERT INTO entries (id, term, keywords, category, class, x, y, fields)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer entryStmt.Close()

	statStmt, err := tx.Prepare(`INSERT INTO node_stats (id, degree, component) VALUES (?, ?, ?)`)
	if err != nil {
		return err
	}
	defer statStmt.Close()

	for _, n := range nodes {
		fields, err := json.Marshal(n.Fields)
		if err != nil {
			return fmt.Errorf("encode fields of %q: %w", n.Term, err)
		}
		_, err = entryStmt.Exec(
			n.ID,
			n.Term,
			strings.Join(n.Keywords, "; "),
			n.Fields[model.FieldCategory],
			n.Class,
			n.X,
			n.Y,
			string(fields),
		)
		if err != nil {
			return fmt.Errorf("insert entry %d: %w", n.ID, err)
		}
		if _, err := statStmt.Exec(n.ID, n.Degree, n.Component); err != nil {
			return fmt.Errorf("insert stats %d: %w", n.ID, err)
		}
	}

	return tx.Commit()
}

func insertConnections(db *sql.DB, links []ExportLink) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT INTO connections (source_id, target_id, shared) VALUES (?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, l := range links {
		shared, err := json.Marshal(l.Shared)
		if err != nil {
			return err
		}
		if _, err := stmt.Exec(l.Source, l.Target, string(shared)); err != nil {
			return fmt.Errorf("insert connection %d-%d: %w", l.Source, l.Target, err)
		}
	}

	return tx.Commit()
}

func (e *SQLiteExporter) insertMeta(db *sql.DB, linkCount int) error {
	st := network.Analyze(e.Nodes)
	meta := map[string]string{
		"version":          FormatVersion,
		"schema_version":   strconv.Itoa(SchemaVersion),
		"generated_at":     e.now().UTC().Format(time.RFC3339),
		"entry_count":      strconv.Itoa(len(e.Nodes)),
		"connection_count": strconv.Itoa(linkCount),
		"component_count":  strconv.Itoa(st.Components),
	}
	if e.Source != "" {
		meta["source"] = e.Source
	}
	if e.Config.Title != "" {
		meta["title"] = e.Config.Title
	}

	for key, value := range meta {
		if err := InsertMetaValue(db, key, value); err != nil {
			return fmt.Errorf("insert meta %s: %w", key, err)
		}
	}
	return nil
}
