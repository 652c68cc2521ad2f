package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mattsolo1/grove-textpad/pkg/service"
)

func NewMoveCmd(svc **service.Service) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mv REF [FOLDER]",
		Short: "Move an item into a folder, or to the root",
		Long: `Move a file or folder. Without FOLDER the item moves to the root.
A folder cannot be moved into itself or into one of its own subfolders.

Examples:
  tp mv draft.txt notes     # notes/draft.txt
  tp mv notes/draft.txt     # back to the root`,
		Aliases: []string{"move"},
		Args:    cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc

			id, err := s.ResolveID(args[0])
			if err != nil {
				return err
			}
			target := ""
			if len(args) == 2 {
				if target, err = s.ResolveFolder(args[1]); err != nil {
					return fmt.Errorf("resolve target: %w", err)
				}
			}

			if !s.Drop(service.DropEvent{DraggedItemID: id, TargetParentID: target}) {
				fs := s.FileSystem()
				if fs.Items[id].ParentID == target {
					fmt.Fprintf(cmd.OutOrStdout(), "%s is already there\n", fs.Path(id))
					return nil
				}
				return fmt.Errorf("cannot move %s into %s", fs.Path(id), fs.Path(target))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Moved to %s\n", s.FileSystem().Path(id))
			return nil
		},
	}
	return cmd
}
