package theme

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mattsolo1/grove-textpad/pkg/models"
)

func TestNextCycle(t *testing.T) {
	assert.Equal(t, models.ThemeDark, Next(models.ThemeLight))
	assert.Equal(t, models.ThemeSystem, Next(models.ThemeDark))
	assert.Equal(t, models.ThemeLight, Next(models.ThemeSystem))
	assert.Equal(t, models.ThemeLight, Next(models.Theme("bogus")))
}

func TestIsDark(t *testing.T) {
	tests := []struct {
		theme    models.Theme
		hostDark bool
		want     bool
	}{
		{models.ThemeLight, true, false},
		{models.ThemeLight, false, false},
		{models.ThemeDark, true, true},
		{models.ThemeDark, false, true},
		{models.ThemeSystem, true, true},
		{models.ThemeSystem, false, false},
		{models.ParseTheme(""), true, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.theme), func(t *testing.T) {
			assert.Equal(t, tt.want, IsDark(tt.theme, tt.hostDark))
		})
	}
}

func TestAppearanceAndLabel(t *testing.T) {
	assert.Equal(t, "dark", Appearance(models.ThemeSystem, true))
	assert.Equal(t, "light", Appearance(models.ThemeSystem, false))
	assert.Equal(t, "System", Label(models.ThemeSystem))
	assert.Equal(t, "Dark", Label(models.ThemeDark))
}

func TestParseTheme(t *testing.T) {
	assert.Equal(t, models.ThemeLight, models.ParseTheme("light"))
	assert.Equal(t, models.ThemeSystem, models.ParseTheme(""))
	assert.Equal(t, models.ThemeSystem, models.ParseTheme("DARK"))
	assert.True(t, models.ThemeDark.Valid())
	assert.False(t, models.Theme("x").Valid())
}
