package confirm

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfirmAndCancel(t *testing.T) {
	m := New()
	m.Activate("Delete notes?", "id-1")
	assert.Contains(t, m.View(), "Delete notes?")

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")})
	require.NotNil(t, cmd)
	assert.False(t, m.Active)
	assert.Equal(t, ConfirmedMsg{Tag: "id-1"}, cmd())

	m.Activate("Delete notes?", "id-2")
	m, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.Equal(t, CancelledMsg{Tag: "id-2"}, cmd())
	assert.Empty(t, m.View())
}

func TestInactiveIgnoresKeys(t *testing.T) {
	m := New()
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")})
	assert.Nil(t, cmd)
	assert.False(t, m.Active)
}
