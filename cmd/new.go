package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mattsolo1/grove-textpad/pkg/models"
	"github.com/mattsolo1/grove-textpad/pkg/service"
)

func NewNewCmd(svc **service.Service) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "new",
		Short: "Create a file or folder",
		Long: `Create a file or folder at the root or inside an existing folder.

Examples:
  tp new folder notes            # Create a root folder
  tp new file draft --in notes   # Create notes/draft.txt
  tp new file "meeting notes"    # Create "meeting notes.txt" at the root`,
	}

	cmd.AddCommand(newCreateCmd(svc, models.TypeFile))
	cmd.AddCommand(newCreateCmd(svc, models.TypeFolder))
	return cmd
}

func newCreateCmd(svc **service.Service, itemType models.ItemType) *cobra.Command {
	var parentRef string

	cmd := &cobra.Command{
		Use:   string(itemType) + " NAME",
		Short: "Create a " + string(itemType),
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc

			name := strings.Join(args, " ")
			if strings.TrimSpace(name) == "" {
				return service.ErrInvalidName
			}

			parentID, err := s.ResolveFolder(parentRef)
			if err != nil {
				return fmt.Errorf("resolve parent: %w", err)
			}

			var id string
			if itemType == models.TypeFolder {
				id = s.CreateFolder(name, parentID)
			} else {
				id = s.CreateFile(name, parentID)
			}
			if id == "" {
				return fmt.Errorf("could not create %s %q", itemType, name)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created %s %s (%s)\n", itemType, s.FileSystem().Path(id), shortID(id))
			return nil
		},
	}

	cmd.Flags().StringVar(&parentRef, "in", "", "Parent folder (id, id prefix or path)")
	return cmd
}
