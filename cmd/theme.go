package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mattsolo1/grove-textpad/pkg/models"
	"github.com/mattsolo1/grove-textpad/pkg/service"
	"github.com/mattsolo1/grove-textpad/pkg/theme"
)

func NewThemeCmd(svc **service.Service) *cobra.Command {
	cmd := &cobra.Command{
		Use:       "theme [light|dark|system|toggle]",
		Short:     "Show or set the theme preference",
		ValidArgs: []string{"light", "dark", "system", "toggle"},
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc

			if len(args) == 1 {
				if args[0] == "toggle" {
					s.ToggleTheme()
				} else {
					s.SetTheme(models.Theme(args[0]))
				}
			}

			current := s.Theme()
			if current == models.ThemeSystem {
				fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", theme.Label(current), theme.Appearance(current, s.IsDark()))
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), theme.Label(current))
			}
			return nil
		},
	}
	return cmd
}
