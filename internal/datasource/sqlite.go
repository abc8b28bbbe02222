package datasource

import (
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	_ "modernc.org/sqlite"

	"github.com/vanderheijden86/glossnet/pkg/debug"
	"github.com/vanderheijden86/glossnet/pkg/export"
	"github.com/vanderheijden86/glossnet/pkg/model"
)

// SQLiteReader provides read access to a glossnet SQLite export
type SQLiteReader struct {
	db   *sql.DB
	path string
}

// NewSQLiteReader opens a SQLite database for reading
func NewSQLiteReader(source DataSource) (*SQLiteReader, error) {
	if source.Type != SourceTypeSQLite {
		return nil, fmt.Errorf("source is not SQLite: %s", source.Type)
	}

	dsn := fmt.Sprintf("file:%s?mode=ro&_pragma=busy_timeout(5000)", source.Path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("cannot open database: %w", err)
	}

	r := &SQLiteReader{db: db, path: source.Path}
	if err := r.checkSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return r, nil
}

// Close closes the database connection
func (r *SQLiteReader) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// checkSchema rejects databases that are not glossnet exports, or that were
// written by a newer schema than this build reads.
func (r *SQLiteReader) checkSchema() error {
	var version string
	err := r.db.QueryRow(`SELECT value FROM export_meta WHERE key = 'schema_version'`).Scan(&version)
	if err != nil {
		return fmt.Errorf("%s is not a glossnet export: %w", r.path, err)
	}
	v, err := strconv.Atoi(version)
	if err != nil {
		return fmt.Errorf("bad schema_version %q: %w", version, err)
	}
	if v > export.SchemaVersion {
		return fmt.Errorf("schema version %d is newer than supported %d", v, export.SchemaVersion)
	}
	return nil
}

// LoadEntries reads every exported row in dataset order. Row numbers are the
// original CSV rows, so node IDs survive a CSV -> SQLite -> viewer trip.
func (r *SQLiteReader) LoadEntries() ([]model.Entry, error) {
	rows, err := r.db.Query(`SELECT id, term, keywords, category, fields FROM entries ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	defer rows.Close()

	var entries []model.Entry
	for rows.Next() {
		var (
			id                         int
			term                       string
			keywords, category, fields sql.NullString
		)
		if err := rows.Scan(&id, &term, &keywords, &category, &fields); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}

		m := map[string]string{}
		if fields.Valid && fields.String != "" {
			if err := json.Unmarshal([]byte(fields.String), &m); err != nil {
				// Fall back to the indexed columns.
				debug.Log("datasource: entry %d has unreadable fields: %v", id, err)
				m = map[string]string{}
			}
		}
		m[model.FieldTerm] = term
		if _, ok := m[model.FieldKeywords]; !ok && keywords.Valid {
			m[model.FieldKeywords] = keywords.String
		}
		if _, ok := m[model.FieldCategory]; !ok && category.Valid {
			m[model.FieldCategory] = category.String
		}
		entries = append(entries, model.Entry{Row: id, Fields: m})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entries: %w", err)
	}
	return entries, nil
}

// CountEntries returns the number of exported rows
func (r *SQLiteReader) CountEntries() (int, error) {
	var count int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM entries`).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// GeneratedAt returns when the export was written. A missing or malformed
// value yields the zero time.
func (r *SQLiteReader) GeneratedAt() (time.Time, error) {
	var value sql.NullString
	err := r.db.QueryRow(`SELECT value FROM export_meta WHERE key = 'generated_at'`).Scan(&value)
	if err == sql.ErrNoRows || (err == nil && !value.Valid) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, err
	}
	t, err := time.Parse(time.RFC3339, value.String)
	if err != nil {
		return time.Time{}, nil
	}
	return t, nil
}
