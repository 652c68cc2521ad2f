// Package editor tracks which files are open as tabs and which one is active.
package editor

import (
	"encoding/json"
	"errors"
	"fmt"
)

// NoActiveFile is the active file id when no tab is open.
const NoActiveFile = ""

// Session is the tab state of the editing surface.
type Session struct {
	OpenFiles    []string
	ActiveFileID string
}

// NewSession returns an empty session.
func NewSession() Session {
	return Session{OpenFiles: []string{}}
}

// Clone returns a copy that shares nothing with s.
func (s Session) Clone() Session {
	out := Session{
		OpenFiles:    make([]string, len(s.OpenFiles)),
		ActiveFileID: s.ActiveFileID,
	}
	copy(out.OpenFiles, s.OpenFiles)
	return out
}

// IsOpen reports whether id has a tab.
func (s *Session) IsOpen(id string) bool {
	for _, open := range s.OpenFiles {
		if open == id {
			return true
		}
	}
	return false
}

// OpenFile adds a tab for id if there is none and makes it active.
// Whether id names an existing file is the caller's concern.
func (s *Session) OpenFile(id string) {
	if !s.IsOpen(id) {
		s.OpenFiles = append(s.OpenFiles, id)
	}
	s.ActiveFileID = id
}

// CloseFile removes the tab for id. Closing the active tab activates the
// last remaining tab, or none.
func (s *Session) CloseFile(id string) {
	remaining := make([]string, 0, len(s.OpenFiles))
	for _, open := range s.OpenFiles {
		if open != id {
			remaining = append(remaining, open)
		}
	}
	s.OpenFiles = remaining

	if s.ActiveFileID == id {
		if len(remaining) > 0 {
			s.ActiveFileID = remaining[len(remaining)-1]
		} else {
			s.ActiveFileID = NoActiveFile
		}
	}
}

// SetActiveFile points the editor at id without touching the tabs.
func (s *Session) SetActiveFile(id string) {
	s.ActiveFileID = id
}

// Prune closes every tab for which exists returns false, going through
// CloseFile so the active pointer is recomputed. It reports whether any tab
// was closed.
func (s *Session) Prune(exists func(id string) bool) bool {
	var stale []string
	for _, id := range s.OpenFiles {
		if !exists(id) {
			stale = append(stale, id)
		}
	}
	for _, id := range stale {
		s.CloseFile(id)
	}
	if s.ActiveFileID != NoActiveFile && !s.IsOpen(s.ActiveFileID) && !exists(s.ActiveFileID) {
		s.ActiveFileID = NoActiveFile
		if n := len(s.OpenFiles); n > 0 {
			s.ActiveFileID = s.OpenFiles[n-1]
		}
		return true
	}
	return len(stale) > 0
}

type sessionJSON struct {
	OpenFiles    []string `json:"openFiles" yaml:"openFiles"`
	ActiveFileID *string  `json:"activeFileId" yaml:"activeFileId"`
}

func (s Session) toWire() sessionJSON {
	w := sessionJSON{OpenFiles: s.OpenFiles}
	if w.OpenFiles == nil {
		w.OpenFiles = []string{}
	}
	if s.ActiveFileID != NoActiveFile {
		active := s.ActiveFileID
		w.ActiveFileID = &active
	}
	return w
}

func (w sessionJSON) toSession() Session {
	s := Session{OpenFiles: w.OpenFiles}
	if s.OpenFiles == nil {
		s.OpenFiles = []string{}
	}
	if w.ActiveFileID != nil {
		s.ActiveFileID = *w.ActiveFileID
	}
	return s
}

// MarshalJSON writes a null activeFileId when nothing is active.
func (s Session) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.toWire())
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *Session) UnmarshalJSON(data []byte) error {
	var w sessionJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*s = w.toSession()
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (s Session) MarshalYAML() (interface{}, error) {
	return s.toWire(), nil
}

// UnmarshalYAML implements the yaml.v3 obsolete-style unmarshaler.
func (s *Session) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var w sessionJSON
	if err := unmarshal(&w); err != nil {
		return err
	}
	*s = w.toSession()
	return nil
}

// ErrDuplicateTab is returned by Validate when a file is open twice.
var ErrDuplicateTab = errors.New("file open in more than one tab")

// Validate checks that no file id appears twice in OpenFiles.
func (s Session) Validate() error {
	seen := make(map[string]bool, len(s.OpenFiles))
	for _, id := range s.OpenFiles {
		if seen[id] {
			return fmt.Errorf("%w: %q", ErrDuplicateTab, id)
		}
		seen[id] = true
	}
	return nil
}
