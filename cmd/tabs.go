package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mattsolo1/grove-textpad/pkg/service"
)

func NewOpenCmd(svc **service.Service) *cobra.Command {
	return &cobra.Command{
		Use:   "open REF",
		Short: "Open a file in a tab and make it active",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc
			id, err := s.ResolveFile(args[0])
			if err != nil {
				return err
			}
			s.OpenFile(id)
			fmt.Fprintf(cmd.OutOrStdout(), "Opened %s\n", s.FileSystem().Path(id))
			return nil
		},
	}
}

func NewCloseCmd(svc **service.Service) *cobra.Command {
	return &cobra.Command{
		Use:   "close REF",
		Short: "Close a file's tab",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc
			id, err := s.ResolveFile(args[0])
			if err != nil {
				return err
			}
			s.CloseFile(id)
			if active, ok := s.ActiveFile(); ok {
				fmt.Fprintf(cmd.OutOrStdout(), "Closed. Active: %s\n", s.FileSystem().Path(active.ID))
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "Closed. No open files.")
			}
			return nil
		},
	}
}

func NewActivateCmd(svc **service.Service) *cobra.Command {
	return &cobra.Command{
		Use:   "activate REF",
		Short: "Switch to an open tab",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc
			id, err := s.ResolveFile(args[0])
			if err != nil {
				return err
			}
			session := s.Editor()
			if !session.IsOpen(id) {
				return fmt.Errorf("%s is not open", s.FileSystem().Path(id))
			}
			s.SetActiveFile(id)
			return nil
		},
	}
}

func NewTabsCmd(svc **service.Service) *cobra.Command {
	return &cobra.Command{
		Use:   "tabs",
		Short: "List open tabs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc
			session := s.Editor()
			fs := s.FileSystem()

			if len(session.OpenFiles) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No open files.")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "\tID\tPATH\tSIZE")
			for _, id := range session.OpenFiles {
				mark := ""
				if id == session.ActiveFileID {
					mark = ">"
				}
				item, ok := fs.Items[id]
				if !ok {
					fmt.Fprintf(w, "%s\t%s\t(missing)\t\n", mark, shortID(id))
					continue
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", mark, shortID(id), fs.Path(id), len(item.Content))
			}
			return w.Flush()
		},
	}
}
