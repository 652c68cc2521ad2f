package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// FileBackend keeps every key in one JSON document on disk. Each write
// first copies the previous document into a backup directory and keeps only
// the newest backupCount copies.
type FileBackend struct {
	path        string
	backupDir   string
	backupCount int
	logger      logrus.FieldLogger

	mu   sync.Mutex
	data map[string]string
}

// NewFileBackend opens the document at path. A missing file starts empty;
// an unreadable document is logged and replaced on the next write.
func NewFileBackend(path string, backupCount int, logger logrus.FieldLogger) (*FileBackend, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve state path: %w", err)
	}

	stateDir := filepath.Dir(absPath)
	if err := os.MkdirAll(stateDir, 0755); err != nil {
		return nil, fmt.Errorf("create state directory %s: %w", stateDir, err)
	}

	backupDir := filepath.Join(stateDir, ".textpad-backups")
	if backupCount > 0 {
		if err := os.MkdirAll(backupDir, 0755); err != nil {
			return nil, fmt.Errorf("create backup directory %s: %w", backupDir, err)
		}
	}

	b := &FileBackend{
		path:        absPath,
		backupDir:   backupDir,
		backupCount: backupCount,
		logger:      logger,
		data:        make(map[string]string),
	}

	raw, err := os.ReadFile(absPath)
	switch {
	case os.IsNotExist(err):
		logger.WithField("path", absPath).Debug("no state file, starting empty")
	case err != nil:
		return nil, fmt.Errorf("read state file: %w", err)
	case len(raw) == 0:
	default:
		if err := json.Unmarshal(raw, &b.data); err != nil {
			logger.WithError(err).WithField("path", absPath).Warn("state file is not valid JSON, starting empty")
			b.data = make(map[string]string)
		}
	}
	return b, nil
}

func (b *FileBackend) GetItem(key string) (string, bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	value, ok := b.data[key]
	return value, ok, nil
}

func (b *FileBackend) SetItem(key, value string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	previous, had := b.data[key]
	b.data[key] = value
	if err := b.flush(); err != nil {
		if had {
			b.data[key] = previous
		} else {
			delete(b.data, key)
		}
		return err
	}
	return nil
}

func (b *FileBackend) RemoveItem(key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	previous, had := b.data[key]
	if !had {
		return nil
	}
	delete(b.data, key)
	if err := b.flush(); err != nil {
		b.data[key] = previous
		return err
	}
	return nil
}

func (b *FileBackend) Close() error { return nil }

// flush writes the document atomically via a temp file and rename.
func (b *FileBackend) flush() error {
	if err := b.createBackup(); err != nil {
		b.logger.WithError(err).Warn("failed to create backup")
	}

	data, err := json.MarshalIndent(b.data, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(b.path), ".textpad-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write state file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write state file: %w", err)
	}
	if err := os.Rename(tmpName, b.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace state file: %w", err)
	}
	return nil
}

// createBackup copies the current document into the backup directory.
func (b *FileBackend) createBackup() error {
	if b.backupCount <= 0 {
		return nil
	}
	data, err := os.ReadFile(b.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}

	timestamp := time.Now().Format("20060102-150405.000000000")
	backupPath := filepath.Join(b.backupDir, fmt.Sprintf("state-%s.json", timestamp))
	if err := os.WriteFile(backupPath, data, 0600); err != nil {
		return fmt.Errorf("write backup: %w", err)
	}
	return b.cleanupOldBackups()
}

// cleanupOldBackups removes old backup files, keeping only the most recent ones
func (b *FileBackend) cleanupOldBackups() error {
	entries, err := os.ReadDir(b.backupDir)
	if err != nil {
		return err
	}

	var backups []string
	for _, entry := range entries {
		if !entry.IsDir() && filepath.Ext(entry.Name()) == ".json" {
			backups = append(backups, entry.Name())
		}
	}

	// Timestamped names sort chronologically; newest first.
	sort.Sort(sort.Reverse(sort.StringSlice(backups)))

	for i := b.backupCount; i < len(backups); i++ {
		path := filepath.Join(b.backupDir, backups[i])
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("remove old backup %s: %w", path, err)
		}
	}
	return nil
}

// Backups returns the backup file paths, newest first.
func (b *FileBackend) Backups() ([]string, error) {
	entries, err := os.ReadDir(b.backupDir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var out []string
	for _, entry := range entries {
		if !entry.IsDir() && filepath.Ext(entry.Name()) == ".json" {
			out = append(out, filepath.Join(b.backupDir, entry.Name()))
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(out)))
	return out, nil
}
