// Package datasource finds and opens the glossary dataset. A dataset is
// either the CSV the glossary is edited in or a SQLite database written by
// the glossnet exporter.
package datasource

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/vanderheijden86/glossnet/pkg/loader"
)

// SourceType identifies the type of data source
type SourceType string

const (
	// SourceTypeCSV is the hand-edited glossary spreadsheet
	SourceTypeCSV SourceType = "csv"
	// SourceTypeSQLite is a database written by export.SQLiteExporter
	SourceTypeSQLite SourceType = "sqlite"
)

// Priority values for source types (higher = more authoritative). The CSV
// is the original, an export is derived from it.
const (
	PriorityCSV    = 100
	PrioritySQLite = 50
)

// sqliteExts are the file extensions read as SQLite exports.
var sqliteExts = []string{".sqlite3", ".sqlite", ".db"}

// ErrNoSources is returned when a directory holds nothing loadable.
var ErrNoSources = errors.New("no valid dataset found")

// DataSource represents a potential source of glossary data
type DataSource struct {
	Type     SourceType `json:"type"`
	Path     string     `json:"path"`
	Priority int        `json:"priority"`
	ModTime  time.Time  `json:"mod_time"`
	Size     int64      `json:"size"`
	// Valid and ValidationError are set by ValidateSource.
	Valid           bool   `json:"valid"`
	ValidationError string `json:"validation_error,omitempty"`
	EntryCount      int    `json:"entry_count"`
}

// String returns a human-readable description of the source
func (s DataSource) String() string {
	status := "valid"
	if !s.Valid {
		status = fmt.Sprintf("invalid: %s", s.ValidationError)
	}
	return fmt.Sprintf("%s (%s, priority=%d, mod=%s, entries=%d, %s)",
		s.Path, s.Type, s.Priority, s.ModTime.Format(time.RFC3339), s.EntryCount, status)
}

// TypeOf classifies a path by extension. Anything that is not a known
// SQLite extension is read as CSV.
func TypeOf(path string) SourceType {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range sqliteExts {
		if ext == e {
			return SourceTypeSQLite
		}
	}
	return SourceTypeCSV
}

// Stat describes the file at path without reading it.
func Stat(path string) (DataSource, error) {
	info, err := os.Stat(path)
	if err != nil {
		return DataSource{}, fmt.Errorf("dataset not found at %s: %w", path, err)
	}
	if info.IsDir() {
		return DataSource{}, fmt.Errorf("%s is a directory", path)
	}
	src := DataSource{
		Type:    TypeOf(path),
		Path:    path,
		ModTime: info.ModTime(),
		Size:    info.Size(),
	}
	src.Priority = PriorityCSV
	if src.Type == SourceTypeSQLite {
		src.Priority = PrioritySQLite
	}
	return src, nil
}

// DiscoverSources lists the loadable files in dir: the CSV that
// loader.FindDataPath would pick, plus any SQLite exports. Sources come back
// most authoritative first, newest first within a priority.
func DiscoverSources(dir string) ([]DataSource, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read data directory: %w", err)
	}

	var sources []DataSource
	if csvPath, err := loader.FindDataPath(dir); err == nil {
		if src, err := Stat(csvPath); err == nil {
			sources = append(sources, src)
		}
	}
	for _, e := range entries {
		if e.IsDir() || TypeOf(e.Name()) != SourceTypeSQLite {
			continue
		}
		if src, err := Stat(filepath.Join(dir, e.Name())); err == nil {
			sources = append(sources, src)
		}
	}

	sortSources(sources)
	return sources, nil
}

func sortSources(sources []DataSource) {
	sort.SliceStable(sources, func(i, j int) bool {
		if sources[i].Priority != sources[j].Priority {
			return sources[i].Priority > sources[j].Priority
		}
		return sources[i].ModTime.After(sources[j].ModTime)
	})
}

// ValidateSource loads the source once and records whether it worked.
func ValidateSource(src *DataSource) error {
	entries, err := LoadFromSource(*src)
	if err != nil {
		src.Valid = false
		src.ValidationError = err.Error()
		return err
	}
	src.Valid = true
	src.ValidationError = ""
	src.EntryCount = len(entries)
	return nil
}

// SelectBestSource returns the first valid source in priority order.
func SelectBestSource(sources []DataSource) (DataSource, error) {
	sorted := append([]DataSource(nil), sources...)
	sortSources(sorted)
	for _, s := range sorted {
		if s.Valid {
			return s, nil
		}
	}
	return DataSource{}, ErrNoSources
}
