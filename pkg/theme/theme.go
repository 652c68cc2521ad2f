// Package theme resolves the light/dark/system preference into an
// effective appearance and provides the matching terminal styles.
package theme

import (
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/mattsolo1/grove-textpad/pkg/models"
)

// Detector reports whether the host environment prefers a dark appearance.
type Detector func() bool

// HostDetector asks the terminal for its background color.
func HostDetector() bool {
	return lipgloss.HasDarkBackground()
}

// Next returns the preference that follows t in the toggle cycle:
// light, dark, system, light.
func Next(t models.Theme) models.Theme {
	switch t {
	case models.ThemeLight:
		return models.ThemeDark
	case models.ThemeDark:
		return models.ThemeSystem
	default:
		return models.ThemeLight
	}
}

// IsDark resolves a preference. System (and anything unknown) defers to the
// host signal.
func IsDark(t models.Theme, hostDark bool) bool {
	switch t {
	case models.ThemeDark:
		return true
	case models.ThemeLight:
		return false
	default:
		return hostDark
	}
}

// Appearance is the resolved appearance name, as applied to the document.
func Appearance(t models.Theme, hostDark bool) string {
	if IsDark(t, hostDark) {
		return "dark"
	}
	return "light"
}

var titleCaser = cases.Title(language.English)

// Label is the human-readable name of a preference.
func Label(t models.Theme) string {
	return titleCaser.String(string(t))
}

// Palette holds the styles used by the terminal UI.
type Palette struct {
	Header    lipgloss.Style
	Folder    lipgloss.Style
	File      lipgloss.Style
	Cursor    lipgloss.Style
	ActiveTab lipgloss.Style
	Tab       lipgloss.Style
	Muted     lipgloss.Style
	Status    lipgloss.Style
	Border    lipgloss.Style
	Warning   lipgloss.Color
}

// NewPalette returns the dark or light palette.
func NewPalette(dark bool) Palette {
	if dark {
		return Palette{
			Header:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#E5E7EB")),
			Folder:    lipgloss.NewStyle().Foreground(lipgloss.Color("#EAB308")),
			File:      lipgloss.NewStyle().Foreground(lipgloss.Color("#60A5FA")),
			Cursor:    lipgloss.NewStyle().Background(lipgloss.Color("#374151")).Foreground(lipgloss.Color("#F9FAFB")),
			ActiveTab: lipgloss.NewStyle().Bold(true).Underline(true).Foreground(lipgloss.Color("#F9FAFB")),
			Tab:       lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF")),
			Muted:     lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280")),
			Status:    lipgloss.NewStyle().Foreground(lipgloss.Color("#34D399")),
			Border:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#4B5563")),
			Warning:   lipgloss.Color("#F97316"),
		}
	}
	return Palette{
		Header:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#111827")),
		Folder:    lipgloss.NewStyle().Foreground(lipgloss.Color("#A16207")),
		File:      lipgloss.NewStyle().Foreground(lipgloss.Color("#1D4ED8")),
		Cursor:    lipgloss.NewStyle().Background(lipgloss.Color("#E5E7EB")).Foreground(lipgloss.Color("#111827")),
		ActiveTab: lipgloss.NewStyle().Bold(true).Underline(true).Foreground(lipgloss.Color("#111827")),
		Tab:       lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280")),
		Muted:     lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF")),
		Status:    lipgloss.NewStyle().Foreground(lipgloss.Color("#047857")),
		Border:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#D1D5DB")),
		Warning:   lipgloss.Color("#C2410C"),
	}
}
