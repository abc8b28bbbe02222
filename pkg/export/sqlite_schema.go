package export

import (
	"database/sql"
	"fmt"
)

// SchemaVersion is bumped whenever a table changes shape.
const SchemaVersion = 1

// CreateSchema creates all tables and indexes in the database.
func CreateSchema(db *sql.DB) error {
	if err := createCoreTables(db); err != nil {
		return fmt.Errorf("create core tables: %w", err)
	}

	if err := createIndexes(db); err != nil {
		return fmt.Errorf("create indexes: %w", err)
	}

	if err := createMetaTable(db); err != nil {
		return fmt.Errorf("create meta table: %w", err)
	}

	return nil
}

// createCoreTables creates the entries, connections and node_stats tables.
func createCoreTables(db *sql.DB) error {
	// One row per node. fields holds every non-empty column of the dataset
	// row as a JSON object so the export can be loaded back unchanged.
	entriesSQL := `
		CREATE TABLE IF NOT EXISTS entries (
			id INTEGER PRIMARY KEY,
			term TEXT NOT NULL,
			keywords TEXT,
			category TEXT,
			class TEXT NOT NULL,
			x REAL NOT NULL,
			y REAL NOT NULL,
			fields TEXT NOT NULL
		)
	`
	if _, err := db.Exec(entriesSQL); err != nil {
		return fmt.Errorf("create entries table: %w", err)
	}

	connectionsSQL := `
		CREATE TABLE IF NOT EXISTS connections (
			source_id INTEGER NOT NULL,
			target_id INTEGER NOT NULL,
			shared TEXT NOT NULL,
			PRIMARY KEY (source_id, target_id),
			FOREIGN KEY (source_id) REFERENCES entries(id),
			FOREIGN KEY (target_id) REFERENCES entries(id)
		)
	`
	if _, err := db.Exec(connectionsSQL); err != nil {
		return fmt.Errorf("create connections table: %w", err)
	}

	statsSQL := `
		CREATE TABLE IF NOT EXISTS node_stats (
			id INTEGER PRIMARY KEY,
			degree INTEGER NOT NULL,
			component INTEGER NOT NULL,
			FOREIGN KEY (id) REFERENCES entries(id)
		)
	`
	if _, err := db.Exec(statsSQL); err != nil {
		return fmt.Errorf("create node_stats table: %w", err)
	}

	return nil
}

func createIndexes(db *sql.DB) error {
	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_entries_term ON entries(term)`,
		`CREATE INDEX IF NOT EXISTS idx_entries_class ON entries(class)`,
		`CREATE INDEX IF NOT EXISTS idx_connections_target ON connections(target_id)`,
		`CREATE INDEX IF NOT EXISTS idx_node_stats_component ON node_stats(component)`,
	}
	for _, stmt := range indexes {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("create index: %w", err)
		}
	}
	return nil
}

// createMetaTable creates the export metadata table.
func createMetaTable(db *sql.DB) error {
	metaSQL := `
		CREATE TABLE IF NOT EXISTS export_meta (
			key TEXT PRIMARY KEY,
			value TEXT
		)
	`
	if _, err := db.Exec(metaSQL); err != nil {
		return fmt.Errorf("create export_meta table: %w", err)
	}

	return nil
}

// CreateFTSIndex creates the FTS5 table over terms, keywords and categories.
// It must be called after entries are inserted.
func CreateFTSIndex(db *sql.DB) error {
	ftsSQL := `
		CREATE VIRTUAL TABLE IF NOT EXISTS entries_fts USING fts5(
			term,
			keywords,
			category,
			content='entries',
			content_rowid='id',
			tokenize='porter unicode61'
		)
	`
	if _, err := db.Exec(ftsSQL); err != nil {
		return fmt.Errorf("create FTS5 table: %w", err)
	}

	if _, err := db.Exec(`INSERT INTO entries_fts(entries_fts) VALUES('rebuild')`); err != nil {
		return fmt.Errorf("populate FTS index: %w", err)
	}

	return nil
}

// InsertMetaValue inserts or updates a metadata key-value pair.
func InsertMetaValue(db *sql.DB, key, value string) error {
	_, err := db.Exec(`INSERT OR REPLACE INTO export_meta (key, value) VALUES (?, ?)`, key, value)
	return err
}
