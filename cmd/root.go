package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mattsolo1/grove-textpad/cmd/config"
	"github.com/mattsolo1/grove-textpad/pkg/service"
)

// noServiceAnnotation marks commands that run without loading state.
const noServiceAnnotation = "textpad/no-service"

// NewRootCmd assembles the tp command tree. The service is created before
// any subcommand runs unless *svc is already set.
func NewRootCmd(svc **service.Service) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "tp",
		Short:        "A tabbed text pad over a virtual file tree",
		SilenceUsage: true,
	}
	config.AddGlobalFlags(rootCmd)

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if *svc != nil || cmd.Annotations[noServiceAnnotation] != "" {
			return nil
		}

		config.InitConfig()
		settings, err := config.Load()
		if err != nil {
			return err
		}
		logger, err := config.NewLogger(settings.LogLevel)
		if err != nil {
			return err
		}
		logger.WithField("backend", settings.Backend).Debug("loading state")

		*svc, err = config.InitService(settings, logger)
		return err
	}
	rootCmd.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		if *svc == nil {
			return nil
		}
		return (*svc).Close()
	}

	versionCmd := NewVersionCmd()
	versionCmd.Annotations = map[string]string{noServiceAnnotation: "true"}

	rootCmd.AddCommand(NewNewCmd(svc))
	rootCmd.AddCommand(NewListCmd(svc))
	rootCmd.AddCommand(NewRenameCmd(svc))
	rootCmd.AddCommand(NewRemoveCmd(svc))
	rootCmd.AddCommand(NewMoveCmd(svc))
	rootCmd.AddCommand(NewToggleCmd(svc))
	rootCmd.AddCommand(NewWriteCmd(svc))
	rootCmd.AddCommand(NewCatCmd(svc))
	rootCmd.AddCommand(NewOpenCmd(svc))
	rootCmd.AddCommand(NewCloseCmd(svc))
	rootCmd.AddCommand(NewActivateCmd(svc))
	rootCmd.AddCommand(NewTabsCmd(svc))
	rootCmd.AddCommand(NewThemeCmd(svc))
	rootCmd.AddCommand(NewExportCmd(svc))
	rootCmd.AddCommand(NewImportCmd(svc))
	rootCmd.AddCommand(NewResetCmd(svc))
	rootCmd.AddCommand(NewTuiCmd(svc))
	rootCmd.AddCommand(versionCmd)

	return rootCmd
}
