// Package filesystem holds the virtual filesystem: a flat map of items keyed
// by id, parent back-references, and the ordered list of root items.
package filesystem

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/mattsolo1/grove-textpad/pkg/models"
)

// State is the complete filesystem snapshot.
type State struct {
	Items     map[string]models.Item `json:"items" yaml:"items"`
	RootItems []string               `json:"rootItems" yaml:"rootItems"`
}

// NewState returns the empty default state.
func NewState() State {
	return State{
		Items:     make(map[string]models.Item),
		RootItems: []string{},
	}
}

// Clone returns a deep copy. Items are plain values so copying the map is enough.
func (s State) Clone() State {
	out := State{
		Items:     make(map[string]models.Item, len(s.Items)),
		RootItems: make([]string, len(s.RootItems)),
	}
	for id, item := range s.Items {
		out.Items[id] = item
	}
	copy(out.RootItems, s.RootItems)
	return out
}

// Get returns the item with the given id.
func (s State) Get(id string) (models.Item, bool) {
	item, ok := s.Items[id]
	return item, ok
}

// Len returns the number of items.
func (s State) Len() int { return len(s.Items) }

// Children returns the direct children of parentID: folders first, then by
// name, then by id. Passing models.NoParent returns root items in RootItems
// order instead, since that order is user-visible.
func (s State) Children(parentID string) []models.Item {
	if parentID == models.NoParent {
		out := make([]models.Item, 0, len(s.RootItems))
		for _, id := range s.RootItems {
			if item, ok := s.Items[id]; ok {
				out = append(out, item)
			}
		}
		return out
	}

	var out []models.Item
	for _, item := range s.Items {
		if item.ParentID == parentID {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Type != out[j].Type {
			return out[i].IsFolder()
		}
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// childIndex maps each parent id to the ids of its direct children.
func (s State) childIndex() map[string][]string {
	index := make(map[string][]string, len(s.Items))
	for id, item := range s.Items {
		if item.ParentID != models.NoParent {
			index[item.ParentID] = append(index[item.ParentID], id)
		}
	}
	return index
}

// Descendants returns id followed by every item reachable below it, in
// breadth-first order. It returns nil if id does not exist.
func (s State) Descendants(id string) []string {
	if _, ok := s.Items[id]; !ok {
		return nil
	}
	index := s.childIndex()
	collected := []string{id}
	seen := map[string]bool{id: true}
	for i := 0; i < len(collected); i++ {
		for _, child := range index[collected[i]] {
			if seen[child] {
				continue
			}
			seen[child] = true
			collected = append(collected, child)
		}
	}
	return collected
}

// IsAncestor reports whether ancestorID is found walking upward from id
// (id itself included). The walk stops at the root, at a dangling reference,
// or on revisiting a node.
func (s State) IsAncestor(ancestorID, id string) bool {
	visited := make(map[string]bool)
	current := id
	for current != models.NoParent {
		if current == ancestorID {
			return true
		}
		if visited[current] {
			return false
		}
		visited[current] = true
		item, ok := s.Items[current]
		if !ok {
			return false
		}
		current = item.ParentID
	}
	return false
}

// Path returns a slash separated display path such as "notes/draft.txt".
func (s State) Path(id string) string {
	var parts []string
	visited := make(map[string]bool)
	current := id
	for current != models.NoParent && !visited[current] {
		visited[current] = true
		item, ok := s.Items[current]
		if !ok {
			break
		}
		parts = append(parts, item.Name)
		current = item.ParentID
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, "/")
}

var (
	ErrDuplicateRoot   = errors.New("root item listed more than once")
	ErrRootMismatch    = errors.New("rootItems does not mirror root-level items")
	ErrDanglingParent  = errors.New("parent does not reference an existing folder")
	ErrCycle           = errors.New("item is its own ancestor")
	ErrIDMismatch      = errors.New("item id does not match its key")
	ErrInvalidItemType = errors.New("unknown item type")
)

// Validate checks the structural invariants: keys match ids, every parent is
// an existing folder, the parent graph is acyclic and RootItems lists exactly
// the root-level items once each.
func (s State) Validate() error {
	for key, item := range s.Items {
		if item.ID != key {
			return fmt.Errorf("%w: key %q, id %q", ErrIDMismatch, key, item.ID)
		}
		if !item.IsFile() && !item.IsFolder() {
			return fmt.Errorf("%w: %q", ErrInvalidItemType, key)
		}
		if item.IsRoot() {
			continue
		}
		parent, ok := s.Items[item.ParentID]
		if !ok || !parent.IsFolder() {
			return fmt.Errorf("%w: %q -> %q", ErrDanglingParent, key, item.ParentID)
		}
		if s.IsAncestor(key, item.ParentID) {
			return fmt.Errorf("%w: %q", ErrCycle, key)
		}
	}

	listed := make(map[string]bool, len(s.RootItems))
	for _, id := range s.RootItems {
		if listed[id] {
			return fmt.Errorf("%w: %q", ErrDuplicateRoot, id)
		}
		listed[id] = true
		item, ok := s.Items[id]
		if !ok || !item.IsRoot() {
			return fmt.Errorf("%w: %q", ErrRootMismatch, id)
		}
	}
	for id, item := range s.Items {
		if item.IsRoot() && !listed[id] {
			return fmt.Errorf("%w: %q missing", ErrRootMismatch, id)
		}
	}
	return nil
}
