package service

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/text/unicode/norm"

	"github.com/mattsolo1/grove-textpad/pkg/editor"
	"github.com/mattsolo1/grove-textpad/pkg/filesystem"
	"github.com/mattsolo1/grove-textpad/pkg/models"
	"github.com/mattsolo1/grove-textpad/pkg/storage"
	"github.com/mattsolo1/grove-textpad/pkg/theme"
)

var (
	ErrNotFound    = errors.New("no item matches")
	ErrAmbiguous   = errors.New("reference matches more than one item")
	ErrNotAFile    = errors.New("item is not a file")
	ErrNotAFolder  = errors.New("item is not a folder")
	ErrInvalidName = errors.New("name must not be blank")
)

// Config holds service configuration
type Config struct {
	// IDGenerator overrides UUID generation for new items.
	IDGenerator func() string
	// Detector reports the host's dark-mode preference. Defaults to asking
	// the terminal.
	Detector theme.Detector
}

// Service owns the filesystem and editor state and persists a snapshot of
// both after every transition. It is safe for concurrent use.
type Service struct {
	mu        sync.Mutex
	fs        filesystem.State
	session   editor.Session
	theme     models.Theme
	persister *storage.Persister
	config    *Config
	logger    logrus.FieldLogger
}

// DropEvent is a drag-and-drop gesture: the dragged item lands in the target
// folder, or at the root when TargetParentID is empty.
type DropEvent struct {
	DraggedItemID  string
	TargetParentID string
}

// New loads the persisted state from backend and returns a service over it.
func New(config *Config, backend storage.Backend, logger logrus.FieldLogger) (*Service, error) {
	if config == nil {
		config = &Config{}
	}
	if config.Detector == nil {
		config.Detector = theme.HostDetector
	}
	if logger == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		logger = discard
	}

	persister := storage.NewPersister(backend, logger)
	snap, err := persister.Load()
	if err != nil {
		return nil, err
	}
	pref, err := persister.LoadTheme()
	if err != nil {
		return nil, err
	}

	s := &Service{
		fs:        snap.FileSystem,
		session:   snap.Editor,
		theme:     pref,
		persister: persister,
		config:    config,
		logger:    logger,
	}
	if s.session.Prune(s.isFile) {
		logger.Debug("closed tabs of files missing from the loaded state")
	}
	return s, nil
}

// Close releases the storage backend.
func (s *Service) Close() error {
	return s.persister.Close()
}

func (s *Service) isFile(id string) bool {
	item, ok := s.fs.Items[id]
	return ok && item.IsFile()
}

func (s *Service) storeOptions() []filesystem.Option {
	opts := []filesystem.Option{filesystem.WithLogger(s.logger)}
	if s.config.IDGenerator != nil {
		opts = append(opts, filesystem.WithIDGenerator(s.config.IDGenerator))
	}
	return opts
}

// updateFS applies fn to a copy of the filesystem state and swaps it in when
// fn reports a change. Tabs of files that no longer exist are closed.
func (s *Service) updateFS(fn func(store *filesystem.Store) bool) bool {
	store := filesystem.NewStore(s.fs.Clone(), s.storeOptions()...)
	if !fn(store) {
		return false
	}
	s.fs = store.State()

	next := s.session.Clone()
	if next.Prune(s.isFile) {
		s.session = next
	}
	s.persist()
	return true
}

// updateSession applies fn to a copy of the session and swaps it in.
func (s *Service) updateSession(fn func(session *editor.Session)) {
	next := s.session.Clone()
	fn(&next)
	s.session = next
	s.persist()
}

// persist writes the current snapshot. A failed write is logged and the
// in-memory state stays authoritative.
func (s *Service) persist() {
	snap := storage.Snapshot{FileSystem: s.fs, Editor: s.session}
	if err := s.persister.Save(snap); err != nil {
		s.logger.WithError(err).Warn("failed to persist state")
	}
}

// CreateFile adds a file under parentID (empty for the root) and returns its
// id, or "" when nothing was created.
func (s *Service) CreateFile(name, parentID string) string {
	return s.create(name, parentID, (*filesystem.Store).CreateFile)
}

// CreateFolder adds an expanded folder under parentID and returns its id, or
// "" when nothing was created.
func (s *Service) CreateFolder(name, parentID string) string {
	return s.create(name, parentID, (*filesystem.Store).CreateFolder)
}

func (s *Service) create(name, parentID string, fn func(*filesystem.Store, string, string) string) string {
	if strings.TrimSpace(name) == "" {
		return ""
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	var id string
	s.updateFS(func(store *filesystem.Store) bool {
		id = fn(store, name, parentID)
		return id != ""
	})
	return id
}

// UpdateFileContent replaces a file's content.
func (s *Service) UpdateFileContent(id, content string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updateFS(func(store *filesystem.Store) bool {
		return store.UpdateFileContent(id, content)
	})
}

// ToggleFolderExpanded flips a folder's expanded flag.
func (s *Service) ToggleFolderExpanded(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updateFS(func(store *filesystem.Store) bool {
		return store.ToggleFolderExpanded(id)
	})
}

// DeleteItem removes an item and its whole subtree, closing any of their tabs.
func (s *Service) DeleteItem(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updateFS(func(store *filesystem.Store) bool {
		return store.DeleteItem(id)
	})
}

// RenameItem sets an item's name. Blank names are ignored.
func (s *Service) RenameItem(id, newName string) bool {
	if strings.TrimSpace(newName) == "" {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updateFS(func(store *filesystem.Store) bool {
		return store.RenameItem(id, newName)
	})
}

// MoveItem reparents an item. Moves into a non-folder, into the item itself
// or into one of its descendants are ignored.
func (s *Service) MoveItem(itemID, newParentID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updateFS(func(store *filesystem.Store) bool {
		return store.MoveItem(itemID, newParentID)
	})
}

// Drop applies a drag-and-drop gesture.
func (s *Service) Drop(ev DropEvent) bool {
	return s.MoveItem(ev.DraggedItemID, ev.TargetParentID)
}

// OpenFile opens a tab for id and activates it.
func (s *Service) OpenFile(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updateSession(func(session *editor.Session) {
		session.OpenFile(id)
	})
}

// CloseFile closes the tab for id.
func (s *Service) CloseFile(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updateSession(func(session *editor.Session) {
		session.CloseFile(id)
	})
}

// SetActiveFile makes id the active tab.
func (s *Service) SetActiveFile(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updateSession(func(session *editor.Session) {
		session.SetActiveFile(id)
	})
}

// FileSystem returns the current filesystem state. The value is replaced, not
// mutated, by later transitions; callers must not modify it.
func (s *Service) FileSystem() filesystem.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fs
}

// Editor returns the current session.
func (s *Service) Editor() editor.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session.Clone()
}

// Snapshot returns a deep copy of the full persisted record.
func (s *Service) Snapshot() storage.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return storage.Snapshot{FileSystem: s.fs.Clone(), Editor: s.session.Clone()}
}

// ActiveFile returns the file in the active tab.
func (s *Service) ActiveFile() (models.Item, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session.ActiveFileID == editor.NoActiveFile {
		return models.Item{}, false
	}
	item, ok := s.fs.Items[s.session.ActiveFileID]
	if !ok || !item.IsFile() {
		return models.Item{}, false
	}
	return item, true
}

// Replace swaps in an imported snapshot after validating it.
func (s *Service) Replace(snap storage.Snapshot) error {
	snap.Normalize()
	if err := snap.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.fs = snap.FileSystem.Clone()
	s.session = snap.Editor.Clone()
	s.session.Prune(s.isFile)
	s.persist()
	return nil
}

// Reset discards all items and tabs and removes the stored record. The theme
// preference is kept.
func (s *Service) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.fs = filesystem.NewState()
	s.session = editor.NewSession()
	if err := s.persister.Clear(); err != nil {
		return fmt.Errorf("clear state: %w", err)
	}
	return nil
}

// Theme returns the stored preference.
func (s *Service) Theme() models.Theme {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.theme
}

// SetTheme stores a new preference. An unknown value falls back to system.
func (s *Service) SetTheme(t models.Theme) {
	if !t.Valid() {
		t = models.ThemeSystem
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.theme = t
	if err := s.persister.SaveTheme(t); err != nil {
		s.logger.WithError(err).Warn("failed to persist theme")
	}
}

// ToggleTheme advances the preference through light, dark and system and
// returns the new value.
func (s *Service) ToggleTheme() models.Theme {
	next := theme.Next(s.Theme())
	s.SetTheme(next)
	return next
}

// IsDark resolves the preference against the host signal.
func (s *Service) IsDark() bool {
	t := s.Theme()
	if t != models.ThemeSystem {
		return theme.IsDark(t, false)
	}
	return theme.IsDark(t, s.HostDark())
}

// HostDark queries the host dark-mode signal.
func (s *Service) HostDark() bool {
	return s.config.Detector()
}

// ResolveID maps a user reference to an item id. A reference is an exact id,
// a slash path such as "notes/draft.txt", or a unique id prefix.
func (s *Service) ResolveID(ref string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return resolve(s.fs, ref)
}

// ResolveFile is ResolveID restricted to files.
func (s *Service) ResolveFile(ref string) (string, error) {
	return s.resolveType(ref, models.TypeFile, ErrNotAFile)
}

// ResolveFolder is ResolveID restricted to folders. An empty ref is the root.
func (s *Service) ResolveFolder(ref string) (string, error) {
	if ref == "" || ref == "/" {
		return models.NoParent, nil
	}
	return s.resolveType(ref, models.TypeFolder, ErrNotAFolder)
}

func (s *Service) resolveType(ref string, want models.ItemType, notErr error) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, err := resolve(s.fs, ref)
	if err != nil {
		return "", err
	}
	if s.fs.Items[id].Type != want {
		return "", fmt.Errorf("%w: %s", notErr, s.fs.Path(id))
	}
	return id, nil
}

func resolve(fs filesystem.State, ref string) (string, error) {
	if ref == "" {
		return "", fmt.Errorf("%w: empty reference", ErrNotFound)
	}
	if _, ok := fs.Items[ref]; ok {
		return ref, nil
	}

	want := norm.NFC.String(strings.Trim(ref, "/"))
	var byPath, byPrefix []string
	for id := range fs.Items {
		if norm.NFC.String(fs.Path(id)) == want {
			byPath = append(byPath, id)
		}
		if strings.HasPrefix(id, ref) {
			byPrefix = append(byPrefix, id)
		}
	}

	for _, matches := range [][]string{byPath, byPrefix} {
		switch len(matches) {
		case 0:
			continue
		case 1:
			return matches[0], nil
		default:
			sort.Strings(matches)
			return "", fmt.Errorf("%w: %q (%s)", ErrAmbiguous, ref, strings.Join(matches, ", "))
		}
	}
	return "", fmt.Errorf("%w: %q", ErrNotFound, ref)
}
