// Package loader reads the glossary dataset: a CSV file whose first row
// names the columns.
package loader

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/vanderheijden86/glossnet/pkg/model"
)

// DataEnvVar overrides the dataset path from config and flags.
const DataEnvVar = "GLOSSNET_DATA"

// PreferredNames is the lookup order when the data path is a directory.
var PreferredNames = []string{"data.csv", "glossary.csv"}

// ErrNoHeader is returned when the input has no header row.
var ErrNoHeader = errors.New("dataset has no header row")

// ResolvePath picks the dataset location: GLOSSNET_DATA first, then the
// given path. A directory is searched for one of PreferredNames.
func ResolvePath(path string) (string, error) {
	if env := os.Getenv(DataEnvVar); env != "" {
		path = env
	}
	if path == "" {
		return "", fmt.Errorf("no dataset path configured")
	}
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("dataset not found at %s: %w", path, err)
	}
	if !info.IsDir() {
		return path, nil
	}
	return FindDataPath(path)
}

// FindDataPath locates the dataset CSV in dir. PreferredNames win; otherwise
// the only .csv file in the directory is used.
func FindDataPath(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("failed to read data directory: %w", err)
	}
	var csvs []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".csv") {
			continue
		}
		csvs = append(csvs, e.Name())
	}
	for _, preferred := range PreferredNames {
		for _, name := range csvs {
			if strings.EqualFold(name, preferred) {
				return filepath.Join(dir, name), nil
			}
		}
	}
	switch len(csvs) {
	case 0:
		return "", fmt.Errorf("no CSV dataset found in %s", dir)
	case 1:
		return filepath.Join(dir, csvs[0]), nil
	default:
		return "", fmt.Errorf("several CSV files in %s; name one of %v or pass the file", dir, PreferredNames)
	}
}

// ParseOptions configures ParseEntries.
type ParseOptions struct {
	// WarningHandler is called for recoverable problems such as rows with
	// more cells than the header. If nil, warnings are dropped.
	WarningHandler func(string)

	// EntryFilter optionally filters parsed entries. Return true to include.
	EntryFilter func(model.Entry) bool
}

// LoadEntries reads a CSV dataset from path.
func LoadEntries(path string) ([]model.Entry, error) {
	return LoadEntriesWithOptions(path, ParseOptions{})
}

// LoadEntriesWithOptions reads a CSV dataset with custom options.
func LoadEntriesWithOptions(path string, opts ParseOptions) ([]model.Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("no dataset found at %s", path)
		}
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()

	entries, err := ParseEntriesWithOptions(f, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return entries, nil
}

// ParseEntries parses CSV content with default options.
func ParseEntries(r io.Reader) ([]model.Entry, error) {
	return ParseEntriesWithOptions(r, ParseOptions{})
}

// ParseEntriesWithOptions parses CSV content. Blank lines are skipped, a
// UTF-8 BOM is stripped and header names are trimmed. Rows keep their
// position (header excluded) as Entry.Row, even when filtered out later.
func ParseEntriesWithOptions(r io.Reader, opts ParseOptions) ([]model.Entry, error) {
	warn := opts.WarningHandler
	if warn == nil {
		warn = func(string) {}
	}

	br := bufio.NewReader(r)
	if bom, err := br.Peek(3); err == nil && bytes.Equal(bom, []byte{0xEF, 0xBB, 0xBF}) {
		_, _ = br.Discard(3)
	}

	cr := csv.NewReader(br)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, ErrNoHeader
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}
	if !hasNamedColumn(header) {
		return nil, ErrNoHeader
	}

	var entries []model.Entry
	row := 0
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading row %d: %w", row+1, err)
		}
		if len(rec) > len(header) {
			line, _ := cr.FieldPos(0)
			warn(fmt.Sprintf("line %d has %d cells, header has %d; extra cells ignored", line, len(rec), len(header)))
		}

		fields := make(map[string]string, len(header))
		for i, name := range header {
			if name == "" || i >= len(rec) {
				continue
			}
			fields[name] = rec[i]
		}
		e := model.Entry{Row: row, Fields: fields}
		row++
		if opts.EntryFilter != nil && !opts.EntryFilter(e) {
			continue
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func hasNamedColumn(header []string) bool {
	for _, h := range header {
		if h != "" {
			return true
		}
	}
	return false
}
