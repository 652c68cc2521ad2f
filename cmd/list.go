package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mattsolo1/grove-textpad/pkg/service"
	"github.com/mattsolo1/grove-textpad/pkg/tree"
)

const shortIDLen = 8

func shortID(id string) string {
	if len(id) <= shortIDLen {
		return id
	}
	return id[:shortIDLen]
}

func NewListCmd(svc **service.Service) *cobra.Command {
	var listAll bool

	cmd := &cobra.Command{
		Use:     "list",
		Short:   "Show the explorer tree",
		Aliases: []string{"ls"},
		Long: `Show files and folders as a tree. Collapsed folders hide their
contents unless --all is given. Open files are marked with *, the active one with >.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc
			session := s.Editor()
			nodes := tree.Flatten(tree.Build(s.FileSystem()), !listAll)

			out := cmd.OutOrStdout()
			if len(nodes) == 0 {
				fmt.Fprintln(out, "No files or folders.")
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			for _, n := range nodes {
				mark := " "
				switch {
				case n.Item.ID == session.ActiveFileID:
					mark = ">"
				case session.IsOpen(n.Item.ID):
					mark = "*"
				}

				label := n.Item.Name
				if n.Item.IsFolder() {
					icon := "▸"
					if n.Item.Expanded {
						icon = "▾"
					}
					label = icon + " " + label + "/"
				}
				fmt.Fprintf(w, "%s\t%s %s%s\n", shortID(n.Item.ID), mark, strings.Repeat("  ", n.Depth), label)
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolVarP(&listAll, "all", "a", false, "Show the contents of collapsed folders")
	return cmd
}
