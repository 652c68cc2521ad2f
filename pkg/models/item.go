package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ItemType distinguishes the two kinds of explorer entries.
type ItemType string

const (
	TypeFile   ItemType = "file"
	TypeFolder ItemType = "folder"
)

// NoParent is the parent id of root-level items.
const NoParent = ""

// FileSuffix is appended to every file name that does not already carry it.
const FileSuffix = ".txt"

// Item is a single node of the virtual filesystem: either a file or a folder.
// Content is only meaningful for files and Expanded only for folders.
type Item struct {
	ID       string
	Name     string
	Type     ItemType
	ParentID string
	Content  string
	Expanded bool
}

// IsFile reports whether the item is a file.
func (i Item) IsFile() bool { return i.Type == TypeFile }

// IsFolder reports whether the item is a folder.
func (i Item) IsFolder() bool { return i.Type == TypeFolder }

// IsRoot reports whether the item sits at the top level of the explorer.
func (i Item) IsRoot() bool { return i.ParentID == NoParent }

// NewFile builds a file record with empty content and a normalized name.
func NewFile(id, name, parentID string) Item {
	return Item{
		ID:       id,
		Name:     NormalizeFileName(name),
		Type:     TypeFile,
		ParentID: parentID,
	}
}

// NewFolder builds an expanded folder record.
func NewFolder(id, name, parentID string) Item {
	return Item{
		ID:       id,
		Name:     name,
		Type:     TypeFolder,
		ParentID: parentID,
		Expanded: true,
	}
}

// NormalizeFileName guarantees the file suffix exactly once at the end of name.
func NormalizeFileName(name string) string {
	if strings.HasSuffix(name, FileSuffix) {
		return name
	}
	return name + FileSuffix
}

// itemJSON is the persisted shape: null parentId for root items, content on
// files only and expanded on folders only.
type itemJSON struct {
	ID       string   `json:"id" yaml:"id"`
	Name     string   `json:"name" yaml:"name"`
	Type     ItemType `json:"type" yaml:"type"`
	ParentID *string  `json:"parentId" yaml:"parentId"`
	Content  *string  `json:"content,omitempty" yaml:"content,omitempty"`
	Expanded *bool    `json:"expanded,omitempty" yaml:"expanded,omitempty"`
}

func (i Item) toWire() itemJSON {
	w := itemJSON{ID: i.ID, Name: i.Name, Type: i.Type}
	if i.ParentID != NoParent {
		parent := i.ParentID
		w.ParentID = &parent
	}
	switch i.Type {
	case TypeFile:
		content := i.Content
		w.Content = &content
	case TypeFolder:
		expanded := i.Expanded
		w.Expanded = &expanded
	}
	return w
}

func (w itemJSON) toItem() (Item, error) {
	if w.Type != TypeFile && w.Type != TypeFolder {
		return Item{}, fmt.Errorf("item %q: unknown type %q", w.ID, w.Type)
	}
	item := Item{ID: w.ID, Name: w.Name, Type: w.Type}
	if w.ParentID != nil {
		item.ParentID = *w.ParentID
	}
	if w.Content != nil && w.Type == TypeFile {
		item.Content = *w.Content
	}
	if w.Expanded != nil && w.Type == TypeFolder {
		item.Expanded = *w.Expanded
	}
	return item, nil
}

// MarshalJSON implements json.Marshaler.
func (i Item) MarshalJSON() ([]byte, error) {
	return json.Marshal(i.toWire())
}

// UnmarshalJSON implements json.Unmarshaler.
func (i *Item) UnmarshalJSON(data []byte) error {
	var w itemJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	item, err := w.toItem()
	if err != nil {
		return err
	}
	*i = item
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (i Item) MarshalYAML() (interface{}, error) {
	return i.toWire(), nil
}

// UnmarshalYAML implements the yaml.v3 obsolete-style unmarshaler so this
// package does not need to import yaml.
func (i *Item) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var w itemJSON
	if err := unmarshal(&w); err != nil {
		return err
	}
	item, err := w.toItem()
	if err != nil {
		return err
	}
	*i = item
	return nil
}
