package storage

import (
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/mattsolo1/grove-textpad/pkg/editor"
	"github.com/mattsolo1/grove-textpad/pkg/filesystem"
	"github.com/mattsolo1/grove-textpad/pkg/models"
)

// Keys under which the persisted values live.
const (
	RootKey  = "persist:root"
	ThemeKey = "theme"
)

// Snapshot is the persisted record: both stores side by side.
type Snapshot struct {
	FileSystem filesystem.State `json:"fileSystem" yaml:"fileSystem"`
	Editor     editor.Session   `json:"editor" yaml:"editor"`
}

// EmptySnapshot is the state of a fresh install.
func EmptySnapshot() Snapshot {
	return Snapshot{
		FileSystem: filesystem.NewState(),
		Editor:     editor.NewSession(),
	}
}

// Normalize replaces nil collections with empty ones.
func (s *Snapshot) Normalize() {
	if s.FileSystem.Items == nil {
		s.FileSystem.Items = make(map[string]models.Item)
	}
	if s.FileSystem.RootItems == nil {
		s.FileSystem.RootItems = []string{}
	}
	if s.Editor.OpenFiles == nil {
		s.Editor.OpenFiles = []string{}
	}
}

// Validate checks both stores' invariants.
func (s Snapshot) Validate() error {
	if err := s.FileSystem.Validate(); err != nil {
		return fmt.Errorf("filesystem: %w", err)
	}
	if err := s.Editor.Validate(); err != nil {
		return fmt.Errorf("editor: %w", err)
	}
	return nil
}

// Persister reads and writes the snapshot and theme through a Backend.
type Persister struct {
	backend Backend
	logger  logrus.FieldLogger
}

// NewPersister wraps backend.
func NewPersister(backend Backend, logger logrus.FieldLogger) *Persister {
	return &Persister{backend: backend, logger: logger}
}

// Load returns the stored snapshot. An absent, unparsable or inconsistent
// record yields the empty snapshot; only backend failures are returned.
func (p *Persister) Load() (Snapshot, error) {
	raw, ok, err := p.backend.GetItem(RootKey)
	if err != nil {
		return EmptySnapshot(), fmt.Errorf("load state: %w", err)
	}
	if !ok {
		p.logger.Debug("no persisted state, starting empty")
		return EmptySnapshot(), nil
	}

	var snap Snapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		p.logger.WithError(err).Warn("persisted state is corrupt, starting empty")
		return EmptySnapshot(), nil
	}
	snap.Normalize()
	if err := snap.Validate(); err != nil {
		p.logger.WithError(err).Warn("persisted state is inconsistent, starting empty")
		return EmptySnapshot(), nil
	}

	p.logger.WithFields(logrus.Fields{
		"items":     snap.FileSystem.Len(),
		"openFiles": len(snap.Editor.OpenFiles),
	}).Debug("state loaded")
	return snap, nil
}

// Save writes the snapshot under RootKey.
func (p *Persister) Save(snap Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}
	if err := p.backend.SetItem(RootKey, string(data)); err != nil {
		return fmt.Errorf("save state: %w", err)
	}
	return nil
}

// Clear removes the stored snapshot.
func (p *Persister) Clear() error {
	return p.backend.RemoveItem(RootKey)
}

// LoadTheme returns the stored preference, or system when absent.
func (p *Persister) LoadTheme() (models.Theme, error) {
	raw, ok, err := p.backend.GetItem(ThemeKey)
	if err != nil {
		return models.ThemeSystem, fmt.Errorf("load theme: %w", err)
	}
	if !ok {
		return models.ThemeSystem, nil
	}
	return models.ParseTheme(raw), nil
}

// SaveTheme stores the preference as a bare string.
func (p *Persister) SaveTheme(t models.Theme) error {
	if err := p.backend.SetItem(ThemeKey, string(t)); err != nil {
		return fmt.Errorf("save theme: %w", err)
	}
	return nil
}

// Close closes the backend.
func (p *Persister) Close() error {
	return p.backend.Close()
}
