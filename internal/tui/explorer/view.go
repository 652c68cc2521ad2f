package explorer

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mattsolo1/grove-textpad/pkg/theme"
)

func (m Model) View() string {
	if m.help.ShowAll {
		return m.palette.Header.Render("Keys") + "\n\n" + m.help.View(m.keys)
	}
	if m.confirm.Active {
		return "\n" + m.confirm.View()
	}

	header := m.palette.Header.Render("Textpad") + "  " +
		m.palette.Muted.Render("theme: "+theme.Label(m.service.Theme()))

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderSidebar(),
		" ",
		m.renderEditor(),
	)

	var footer string
	switch {
	case m.mode != inputNone:
		footer = m.input.View()
	case m.statusMessage != "":
		footer = m.palette.Status.Render(m.statusMessage)
	default:
		footer = m.help.View(m.keys)
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

func (m Model) renderSidebar() string {
	height := m.height - 5
	if height < 3 {
		height = 3
	}

	var b strings.Builder
	if len(m.rows) == 0 {
		b.WriteString(m.palette.Muted.Render("No files yet. Press n or N."))
	}

	session := m.service.Editor()
	start := 0
	if m.cursor >= height {
		start = m.cursor - height + 1
	}
	for i := start; i < len(m.rows) && i < start+height; i++ {
		row := m.rows[i]
		item := row.Item

		var label string
		if item.IsFolder() {
			icon := "▸ "
			if item.Expanded {
				icon = "▾ "
			}
			label = m.palette.Folder.Render(icon + item.Name)
		} else {
			marker := "  "
			if item.ID == session.ActiveFileID {
				marker = "● "
			} else if session.IsOpen(item.ID) {
				marker = "○ "
			}
			label = m.palette.File.Render(marker + item.Name)
		}
		if item.ID == m.clipboard {
			label += m.palette.Muted.Render(" (cut)")
		}

		line := strings.Repeat("  ", row.Depth) + label
		if i == m.cursor && m.focus == focusTree {
			line = m.palette.Cursor.Render(line)
		}
		b.WriteString(line)
		if i < len(m.rows)-1 && i < start+height-1 {
			b.WriteString("\n")
		}
	}

	return m.palette.Border.
		Width(sidebarWidth).
		Height(height).
		Render(b.String())
}

func (m Model) renderEditor() string {
	session := m.service.Editor()
	fs := m.service.FileSystem()

	var tabs []string
	for _, id := range session.OpenFiles {
		item, ok := fs.Get(id)
		if !ok {
			continue
		}
		if id == session.ActiveFileID {
			tabs = append(tabs, m.palette.ActiveTab.Render(item.Name))
		} else {
			tabs = append(tabs, m.palette.Tab.Render(item.Name))
		}
	}

	var content string
	if m.editingID == "" {
		content = m.palette.Muted.Render("Select a file to start editing")
	} else {
		content = m.editor.View()
	}

	tabBar := strings.Join(tabs, m.palette.Muted.Render(" │ "))
	if tabBar == "" {
		tabBar = m.palette.Muted.Render("No open files")
	}
	return m.palette.Border.Render(lipgloss.JoinVertical(lipgloss.Left, tabBar, "", content))
}
