package explorer

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines the keybindings for the explorer TUI
type KeyMap struct {
	Up        key.Binding
	Down      key.Binding
	Select    key.Binding
	NewFile   key.Binding
	NewFolder key.Binding
	Rename    key.Binding
	Delete    key.Binding
	Cut       key.Binding
	Paste     key.Binding
	PasteRoot key.Binding
	Focus     key.Binding
	Back      key.Binding
	PrevTab   key.Binding
	NextTab   key.Binding
	CloseTab  key.Binding
	Theme     key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Select, k.NewFile, k.Delete, k.Focus, k.Help, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select, k.Focus, k.Back},
		{k.NewFile, k.NewFolder, k.Rename, k.Delete},
		{k.Cut, k.Paste, k.PasteRoot},
		{k.PrevTab, k.NextTab, k.CloseTab, k.Theme, k.Help, k.Quit},
	}
}

var keys = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "open / fold"),
	),
	NewFile: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "new file"),
	),
	NewFolder: key.NewBinding(
		key.WithKeys("N"),
		key.WithHelp("N", "new folder"),
	),
	Rename: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "rename"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "delete"),
	),
	Cut: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "cut"),
	),
	Paste: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "paste here"),
	),
	PasteRoot: key.NewBinding(
		key.WithKeys("P"),
		key.WithHelp("P", "paste to root"),
	),
	Focus: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "edit"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back to tree"),
	),
	PrevTab: key.NewBinding(
		key.WithKeys("["),
		key.WithHelp("[", "prev tab"),
	),
	NextTab: key.NewBinding(
		key.WithKeys("]"),
		key.WithHelp("]", "next tab"),
	),
	CloseTab: key.NewBinding(
		key.WithKeys("w"),
		key.WithHelp("w", "close tab"),
	),
	Theme: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "theme"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
