package datasource

import (
	"fmt"
	"os"

	"github.com/vanderheijden86/glossnet/pkg/debug"
	"github.com/vanderheijden86/glossnet/pkg/loader"
	"github.com/vanderheijden86/glossnet/pkg/model"
)

// Resolve turns a configured path into a concrete source. GLOSSNET_DATA
// overrides path. A directory is searched with DiscoverSources and the best
// valid candidate wins.
func Resolve(path string) (DataSource, error) {
	if env := os.Getenv(loader.DataEnvVar); env != "" {
		path = env
	}
	if path == "" {
		return DataSource{}, fmt.Errorf("no dataset path configured")
	}
	info, err := os.Stat(path)
	if err != nil {
		return DataSource{}, fmt.Errorf("dataset not found at %s: %w", path, err)
	}
	if !info.IsDir() {
		return Stat(path)
	}

	sources, err := DiscoverSources(path)
	if err != nil {
		return DataSource{}, err
	}
	for i := range sources {
		if err := ValidateSource(&sources[i]); err != nil {
			debug.Log("datasource: skipping %s", sources[i])
		}
	}
	best, err := SelectBestSource(sources)
	if err != nil {
		return DataSource{}, fmt.Errorf("%s: %w", path, err)
	}
	return best, nil
}

// LoadEntries resolves path and loads its rows.
func LoadEntries(path string) ([]model.Entry, DataSource, error) {
	src, err := Resolve(path)
	if err != nil {
		return nil, DataSource{}, err
	}
	entries, err := LoadFromSource(src)
	if err != nil {
		return nil, src, err
	}
	src.Valid = true
	src.EntryCount = len(entries)
	debug.Log("datasource: loaded %d entries from %s", len(entries), src.Path)
	return entries, src, nil
}

// LoadFromSource loads rows from a specific DataSource, dispatching to the
// appropriate reader based on source type.
func LoadFromSource(source DataSource) ([]model.Entry, error) {
	switch source.Type {
	case SourceTypeSQLite:
		reader, err := NewSQLiteReader(source)
		if err != nil {
			return nil, fmt.Errorf("failed to open SQLite source %s: %w", source.Path, err)
		}
		defer reader.Close()
		return reader.LoadEntries()

	case SourceTypeCSV:
		return loader.LoadEntriesWithOptions(source.Path, loader.ParseOptions{
			WarningHandler: func(msg string) { debug.Log("loader: %s: %s", source.Path, msg) },
		})

	default:
		return nil, fmt.Errorf("unknown source type: %s", source.Type)
	}
}
