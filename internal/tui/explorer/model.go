package explorer

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mattsolo1/grove-textpad/internal/tui/components/confirm"
	"github.com/mattsolo1/grove-textpad/pkg/models"
	"github.com/mattsolo1/grove-textpad/pkg/service"
	"github.com/mattsolo1/grove-textpad/pkg/theme"
	"github.com/mattsolo1/grove-textpad/pkg/tree"
)

type focusArea int

const (
	focusTree focusArea = iota
	focusEditor
)

type inputMode int

const (
	inputNone inputMode = iota
	inputNewFile
	inputNewFolder
	inputRename
)

const (
	defaultWidth  = 100
	defaultHeight = 30
	sidebarWidth  = 32
)

// Model is the explorer + editor TUI.
type Model struct {
	service *service.Service
	keys    KeyMap
	help    help.Model
	width   int
	height  int

	// Appearance
	hostDark bool
	palette  theme.Palette

	// Explorer
	rows   []*tree.Node
	cursor int
	focus  focusArea

	// Inline name entry for create and rename
	mode        inputMode
	input       textinput.Model
	inputTarget string // parent id for create, item id for rename

	confirm confirm.Model

	// Cut item waiting for a paste target
	clipboard string

	// Editor pane bound to the active tab
	editor    textarea.Model
	editingID string

	statusMessage string
}

// New creates the model. The host dark-mode signal is read once here,
// before the program takes over the terminal.
func New(svc *service.Service) Model {
	input := textinput.New()
	input.CharLimit = 128

	ta := textarea.New()
	ta.Placeholder = "Empty file"
	ta.ShowLineNumbers = true

	m := Model{
		service:  svc,
		keys:     keys,
		help:     help.New(),
		width:    defaultWidth,
		height:   defaultHeight,
		hostDark: svc.HostDark(),
		input:    input,
		confirm:  confirm.New(),
		editor:   ta,
	}
	m.applyTheme()
	m.refresh()
	m.resize()
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m *Model) applyTheme() {
	m.palette = theme.NewPalette(theme.IsDark(m.service.Theme(), m.hostDark))
	m.confirm.BorderColor = m.palette.Warning
}

// refresh rebuilds the visible rows and rebinds the editor to the active tab.
func (m *Model) refresh() {
	m.rows = tree.Flatten(tree.Build(m.service.FileSystem()), true)
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.clipboard != "" {
		if _, ok := m.service.FileSystem().Get(m.clipboard); !ok {
			m.clipboard = ""
		}
	}
	m.syncEditor()
}

// syncEditor loads the active file into the textarea when the active tab
// changed underneath it.
func (m *Model) syncEditor() {
	active, ok := m.service.ActiveFile()
	if !ok {
		m.editingID = ""
		m.editor.SetValue("")
		m.editor.Blur()
		if m.focus == focusEditor {
			m.focus = focusTree
		}
		return
	}
	if active.ID != m.editingID {
		m.editingID = active.ID
		m.editor.SetValue(active.Content)
	}
}

func (m *Model) resize() {
	m.help.Width = m.width
	editorWidth := m.width - sidebarWidth - 4
	if editorWidth < 10 {
		editorWidth = 10
	}
	editorHeight := m.height - 7
	if editorHeight < 3 {
		editorHeight = 3
	}
	m.editor.SetWidth(editorWidth)
	m.editor.SetHeight(editorHeight)
}

// selected returns the item under the cursor.
func (m Model) selected() (models.Item, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return models.Item{}, false
	}
	return m.rows[m.cursor].Item, true
}

// targetFolder is where a create or paste lands: the folder under the cursor,
// the parent of the file under the cursor, or the root.
func (m Model) targetFolder() string {
	item, ok := m.selected()
	if !ok {
		return models.NoParent
	}
	if item.IsFolder() {
		return item.ID
	}
	return item.ParentID
}

// moveCursorTo places the cursor on id if it is visible.
func (m *Model) moveCursorTo(id string) {
	for i, row := range m.rows {
		if row.Item.ID == id {
			m.cursor = i
			return
		}
	}
}
