package explorer

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mattsolo1/grove-textpad/internal/tui/components/confirm"
	"github.com/mattsolo1/grove-textpad/pkg/editor"
	"github.com/mattsolo1/grove-textpad/pkg/models"
	"github.com/mattsolo1/grove-textpad/pkg/theme"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil

	case confirm.ConfirmedMsg:
		fs := m.service.FileSystem()
		path := fs.Path(msg.Tag)
		before := fs.Len()
		if m.service.DeleteItem(msg.Tag) {
			m.statusMessage = fmt.Sprintf("Deleted %s (%d items)", path, before-m.service.FileSystem().Len())
		}
		m.refresh()
		return m, nil

	case confirm.CancelledMsg:
		m.statusMessage = ""
		return m, nil

	case tea.KeyMsg:
		if m.confirm.Active {
			var cmd tea.Cmd
			m.confirm, cmd = m.confirm.Update(msg)
			return m, cmd
		}
		if m.help.ShowAll {
			m.help.ShowAll = false
			return m, nil
		}
		if m.mode != inputNone {
			return m.updateInput(msg)
		}
		if m.focus == focusEditor {
			return m.updateEditor(msg)
		}
		return m.updateTree(msg)
	}
	return m, nil
}

func (m Model) updateTree(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.statusMessage = ""

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = true

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Select):
		item, ok := m.selected()
		if !ok {
			break
		}
		if item.IsFolder() {
			m.service.ToggleFolderExpanded(item.ID)
		} else {
			m.service.OpenFile(item.ID)
		}
		m.refresh()

	case key.Matches(msg, m.keys.NewFile):
		return m.startInput(inputNewFile, m.targetFolder(), "")

	case key.Matches(msg, m.keys.NewFolder):
		return m.startInput(inputNewFolder, m.targetFolder(), "")

	case key.Matches(msg, m.keys.Rename):
		if item, ok := m.selected(); ok {
			return m.startInput(inputRename, item.ID, item.Name)
		}

	case key.Matches(msg, m.keys.Delete):
		if item, ok := m.selected(); ok {
			prompt := fmt.Sprintf("Delete %s?", m.service.FileSystem().Path(item.ID))
			if item.IsFolder() {
				prompt = fmt.Sprintf("Delete folder %s and everything in it?", m.service.FileSystem().Path(item.ID))
			}
			m.confirm.Activate(prompt, item.ID)
		}

	case key.Matches(msg, m.keys.Cut):
		if item, ok := m.selected(); ok {
			m.clipboard = item.ID
			m.statusMessage = fmt.Sprintf("Cut %s", item.Name)
		}

	case key.Matches(msg, m.keys.Paste):
		m.paste(m.targetFolder())

	case key.Matches(msg, m.keys.PasteRoot):
		m.paste(models.NoParent)

	case key.Matches(msg, m.keys.Focus):
		if m.editingID == "" {
			m.statusMessage = "No open file"
			break
		}
		m.focus = focusEditor
		return m, m.editor.Focus()

	case key.Matches(msg, m.keys.PrevTab):
		m.switchTab(-1)

	case key.Matches(msg, m.keys.NextTab):
		m.switchTab(1)

	case key.Matches(msg, m.keys.CloseTab):
		if m.editingID != "" {
			m.service.CloseFile(m.editingID)
			m.refresh()
		}

	case key.Matches(msg, m.keys.Theme):
		next := m.service.ToggleTheme()
		m.applyTheme()
		m.statusMessage = fmt.Sprintf("Theme: %s (%s)", theme.Label(next), theme.Appearance(next, m.hostDark))
	}
	return m, nil
}

// paste drops the cut item into parentID.
func (m *Model) paste(parentID string) {
	if m.clipboard == "" {
		m.statusMessage = "Nothing to paste"
		return
	}
	id := m.clipboard
	if !m.service.MoveItem(id, parentID) {
		fs := m.service.FileSystem()
		if item, ok := fs.Get(id); ok && item.ParentID == parentID {
			m.statusMessage = "Already there"
		} else {
			m.statusMessage = "Cannot move a folder into itself"
		}
		return
	}
	m.clipboard = ""
	m.refresh()
	m.moveCursorTo(id)
	m.statusMessage = "Moved to " + m.service.FileSystem().Path(id)
}

func (m *Model) switchTab(delta int) {
	session := m.service.Editor()
	n := len(session.OpenFiles)
	if n == 0 {
		return
	}
	idx := indexOf(session.OpenFiles, session.ActiveFileID)
	if idx < 0 {
		idx = 0
	} else {
		idx = ((idx+delta)%n + n) % n
	}
	m.service.SetActiveFile(session.OpenFiles[idx])
	m.refresh()
}

func indexOf(ids []string, id string) int {
	if id == editor.NoActiveFile {
		return -1
	}
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}

func (m Model) startInput(mode inputMode, target, value string) (tea.Model, tea.Cmd) {
	m.mode = mode
	m.inputTarget = target
	m.input.SetValue(value)
	m.input.CursorEnd()
	switch mode {
	case inputNewFile:
		m.input.Prompt = "New file: "
	case inputNewFolder:
		m.input.Prompt = "New folder: "
	case inputRename:
		m.input.Prompt = "Rename: "
	}
	return m, m.input.Focus()
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = inputNone
		m.input.Blur()
		return m, nil

	case tea.KeyEnter:
		name := m.input.Value()
		mode, target := m.mode, m.inputTarget
		m.mode = inputNone
		m.input.Blur()
		if strings.TrimSpace(name) == "" {
			return m, nil
		}

		var id string
		switch mode {
		case inputNewFile:
			id = m.service.CreateFile(name, target)
		case inputNewFolder:
			id = m.service.CreateFolder(name, target)
		case inputRename:
			m.service.RenameItem(target, name)
			id = target
		}
		if mode != inputRename && target != models.NoParent {
			if parent, ok := m.service.FileSystem().Get(target); ok && !parent.Expanded {
				m.service.ToggleFolderExpanded(target)
			}
		}
		m.refresh()
		m.moveCursorTo(id)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateEditor(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.focus = focusTree
		m.editor.Blur()
		return m, nil
	case "ctrl+c":
		return m, tea.Quit
	}

	before := m.editor.Value()
	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	if after := m.editor.Value(); after != before && m.editingID != "" {
		m.service.UpdateFileContent(m.editingID, after)
	}
	return m, cmd
}
