// Package access implements the passkey gate shown before the glossary.
//
// The gate is a courtesy lock, not a security boundary: the passkey is a
// plain configured string and the granted flag is a plain file.
package access

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/vanderheijden86/glossnet/pkg/debug"
)

// ErrNoStateDir is returned when no state directory can be determined.
var ErrNoStateDir = errors.New("no state directory")

// stateFile is the on-disk form of the granted flag.
type stateFile struct {
	Granted bool `yaml:"zine_access_granted"`
}

// Store persists the granted flag.
type Store interface {
	Load() (bool, error)
	Save(granted bool) error
}

// FileStore keeps the flag in a YAML file.
type FileStore struct {
	Path string
}

// NewFileStore returns a store at <stateDir>/access.yaml.
func NewFileStore(stateDir string) (*FileStore, error) {
	if stateDir == "" {
		return nil, ErrNoStateDir
	}
	return &FileStore{Path: filepath.Join(stateDir, "access.yaml")}, nil
}

// Load reports the stored flag. A missing file means not granted.
func (s *FileStore) Load() (bool, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("reading access state: %w", err)
	}
	var st stateFile
	if err := yaml.Unmarshal(data, &st); err != nil {
		return false, fmt.Errorf("parsing access state: %w", err)
	}
	return st.Granted, nil
}

// Save writes the flag. Saving false removes the file.
func (s *FileStore) Save(granted bool) error {
	if !granted {
		if err := os.Remove(s.Path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("clearing access state: %w", err)
		}
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o755); err != nil {
		return fmt.Errorf("creating state directory: %w", err)
	}
	data, err := yaml.Marshal(stateFile{Granted: true})
	if err != nil {
		return fmt.Errorf("marshaling access state: %w", err)
	}
	if err := os.WriteFile(s.Path, data, 0o600); err != nil {
		return fmt.Errorf("writing access state: %w", err)
	}
	return nil
}

// MemStore keeps the flag in memory; used when no state directory exists.
type MemStore struct {
	granted bool
}

func (m *MemStore) Load() (bool, error) { return m.granted, nil }

func (m *MemStore) Save(granted bool) error {
	m.granted = granted
	return nil
}

// Gate checks entries against a passkey and remembers success.
type Gate struct {
	passkey string
	store   Store
	granted bool
}

// NewGate creates a gate, reading any previously stored grant. A store that
// cannot be read leaves the gate locked and returns the error.
func NewGate(passkey string, store Store) (*Gate, error) {
	if store == nil {
		store = &MemStore{}
	}
	g := &Gate{passkey: passkey, store: store}
	granted, err := store.Load()
	if err != nil {
		return g, err
	}
	g.granted = granted
	return g, nil
}

// Granted reports whether the viewer is unlocked.
func (g *Gate) Granted() bool { return g.granted }

// Try compares input with the passkey, exactly. On a match the gate opens
// and the grant is persisted.
func (g *Gate) Try(input string) (bool, error) {
	if input != g.passkey {
		debug.Log("access: wrong passkey")
		return false, nil
	}
	g.granted = true
	if err := g.store.Save(true); err != nil {
		return true, fmt.Errorf("persisting access: %w", err)
	}
	debug.Log("access: granted")
	return true, nil
}

// Revoke locks the gate and forgets the stored grant.
func (g *Gate) Revoke() error {
	g.granted = false
	if err := g.store.Save(false); err != nil {
		return fmt.Errorf("revoking access: %w", err)
	}
	return nil
}
