package filesystem

import (
	"io"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/mattsolo1/grove-textpad/pkg/models"
)

// Store owns a State and applies the explorer operations to it. Operations
// never fail: a missing id, a parent that is not a folder, or a move that
// would create a cycle leaves the state untouched. Each operation reports
// whether anything changed.
type Store struct {
	state  State
	newID  func() string
	logger logrus.FieldLogger
}

// Option configures a Store.
type Option func(*Store)

// WithIDGenerator replaces the UUID generator, mainly for deterministic tests.
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) {
		s.newID = fn
	}
}

// WithLogger sets the logger used to report discarded operations.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// NewStore creates a store over state. A zero State is replaced by NewState.
func NewStore(state State, opts ...Option) *Store {
	if state.Items == nil {
		state.Items = make(map[string]models.Item)
	}
	if state.RootItems == nil {
		state.RootItems = []string{}
	}
	discard := logrus.New()
	discard.SetOutput(io.Discard)

	s := &Store{
		state:  state,
		newID:  uuid.NewString,
		logger: discard,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns the live state. Callers must not mutate it.
func (s *Store) State() State { return s.state }

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() State { return s.state.Clone() }

// validParent reports whether parentID is the root or an existing folder.
func (s *Store) validParent(parentID string) bool {
	if parentID == models.NoParent {
		return true
	}
	parent, ok := s.state.Items[parentID]
	return ok && parent.IsFolder()
}

func (s *Store) discard(op, id, reason string) {
	s.logger.WithFields(logrus.Fields{
		"op":     op,
		"id":     id,
		"reason": reason,
	}).Debug("operation discarded")
}

func (s *Store) insert(item models.Item) {
	s.state.Items[item.ID] = item
	if item.IsRoot() {
		s.state.RootItems = append(s.state.RootItems, item.ID)
	}
}

// allocID draws ids until one is unused.
func (s *Store) allocID() string {
	for {
		id := s.newID()
		if _, taken := s.state.Items[id]; !taken && id != models.NoParent {
			return id
		}
	}
}

// CreateFolder inserts an expanded folder and returns its id, or "" if
// parentID is neither the root nor an existing folder.
func (s *Store) CreateFolder(name, parentID string) string {
	if !s.validParent(parentID) {
		s.discard("createFolder", parentID, "parent is not a folder")
		return ""
	}
	id := s.allocID()
	s.insert(models.NewFolder(id, name, parentID))
	return id
}

// CreateFile inserts an empty file whose name carries the file suffix and
// returns its id, or "" if parentID is neither the root nor an existing folder.
func (s *Store) CreateFile(name, parentID string) string {
	if !s.validParent(parentID) {
		s.discard("createFile", parentID, "parent is not a folder")
		return ""
	}
	id := s.allocID()
	s.insert(models.NewFile(id, name, parentID))
	return id
}

// UpdateFileContent replaces the content of a file.
func (s *Store) UpdateFileContent(id, content string) bool {
	item, ok := s.state.Items[id]
	if !ok || !item.IsFile() {
		s.discard("updateFileContent", id, "not a file")
		return false
	}
	if item.Content == content {
		return false
	}
	item.Content = content
	s.state.Items[id] = item
	return true
}

// ToggleFolderExpanded flips the expanded flag of a folder.
func (s *Store) ToggleFolderExpanded(id string) bool {
	item, ok := s.state.Items[id]
	if !ok || !item.IsFolder() {
		s.discard("toggleFolderExpanded", id, "not a folder")
		return false
	}
	item.Expanded = !item.Expanded
	s.state.Items[id] = item
	return true
}

// DeleteItem removes an item and, for folders, every descendant.
func (s *Store) DeleteItem(id string) bool {
	item, ok := s.state.Items[id]
	if !ok {
		s.discard("deleteItem", id, "missing")
		return false
	}

	removed := []string{id}
	if item.IsFolder() {
		removed = s.state.Descendants(id)
	}
	for _, rid := range removed {
		delete(s.state.Items, rid)
	}

	if item.IsRoot() {
		s.state.RootItems = removeID(s.state.RootItems, id)
	}
	s.logger.WithFields(logrus.Fields{"id": id, "removed": len(removed)}).Debug("deleted item")
	return true
}

// RenameItem renames an item. File names are re-normalized to carry the
// suffix; folder names are taken verbatim.
func (s *Store) RenameItem(id, newName string) bool {
	item, ok := s.state.Items[id]
	if !ok {
		s.discard("renameItem", id, "missing")
		return false
	}
	if item.IsFile() {
		newName = models.NormalizeFileName(newName)
	}
	if item.Name == newName {
		return false
	}
	item.Name = newName
	s.state.Items[id] = item
	return true
}

// MoveItem reparents itemID under newParentID (models.NoParent for the root).
// Moving a folder under itself or one of its descendants is rejected.
func (s *Store) MoveItem(itemID, newParentID string) bool {
	item, ok := s.state.Items[itemID]
	if !ok {
		s.discard("moveItem", itemID, "missing")
		return false
	}
	if !s.validParent(newParentID) {
		s.discard("moveItem", itemID, "target is not a folder")
		return false
	}

	if newParentID != models.NoParent && item.IsFolder() {
		if s.wouldCycle(itemID, newParentID) {
			s.discard("moveItem", itemID, "target is inside the moved folder")
			return false
		}
	}

	if item.ParentID == newParentID {
		return false
	}

	switch {
	case item.IsRoot() && newParentID != models.NoParent:
		s.state.RootItems = removeID(s.state.RootItems, itemID)
	case !item.IsRoot() && newParentID == models.NoParent:
		s.state.RootItems = append(s.state.RootItems, itemID)
	}

	item.ParentID = newParentID
	s.state.Items[itemID] = item
	return true
}

// wouldCycle walks upward from newParentID through parent links and reports
// whether it reaches itemID. A revisited node means the existing graph is
// already broken; the move is refused in that case too.
func (s *Store) wouldCycle(itemID, newParentID string) bool {
	visited := make(map[string]bool)
	current := newParentID
	for current != models.NoParent {
		if current == itemID {
			return true
		}
		if visited[current] {
			return true
		}
		visited[current] = true

		parent, ok := s.state.Items[current]
		if !ok {
			return false
		}
		current = parent.ParentID
	}
	return false
}

func removeID(ids []string, id string) []string {
	out := make([]string, 0, len(ids))
	for _, existing := range ids {
		if existing != id {
			out = append(out, existing)
		}
	}
	return out
}
