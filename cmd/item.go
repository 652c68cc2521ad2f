package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/mattsolo1/grove-textpad/pkg/service"
)

func NewRenameCmd(svc **service.Service) *cobra.Command {
	return &cobra.Command{
		Use:   "rename REF NAME",
		Short: "Rename a file or folder",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc
			id, err := s.ResolveID(args[0])
			if err != nil {
				return err
			}

			name := strings.Join(args[1:], " ")
			if strings.TrimSpace(name) == "" {
				return service.ErrInvalidName
			}
			if !s.RenameItem(id, name) {
				fmt.Fprintln(cmd.OutOrStdout(), "Name unchanged.")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Renamed to %s\n", s.FileSystem().Path(id))
			return nil
		},
	}
}

func NewRemoveCmd(svc **service.Service) *cobra.Command {
	return &cobra.Command{
		Use:     "rm REF",
		Short:   "Delete a file, or a folder with everything inside it",
		Aliases: []string{"delete"},
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc
			id, err := s.ResolveID(args[0])
			if err != nil {
				return err
			}

			path := s.FileSystem().Path(id)
			before := s.FileSystem().Len()
			s.DeleteItem(id)
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s (%d items)\n", path, before-s.FileSystem().Len())
			return nil
		},
	}
}

func NewToggleCmd(svc **service.Service) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle REF",
		Short: "Expand or collapse a folder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc
			id, err := s.ResolveFolder(args[0])
			if err != nil {
				return err
			}
			if id == "" {
				return fmt.Errorf("%w: the root cannot be collapsed", service.ErrNotAFolder)
			}

			s.ToggleFolderExpanded(id)
			state := "collapsed"
			if s.FileSystem().Items[id].Expanded {
				state = "expanded"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", s.FileSystem().Path(id), state)
			return nil
		},
	}
}

func NewWriteCmd(svc **service.Service) *cobra.Command {
	var (
		content    string
		appendMode bool
	)

	cmd := &cobra.Command{
		Use:   "write REF",
		Short: "Replace a file's content",
		Long: `Replace a file's content with --content or with standard input.

Examples:
  tp write notes/draft.txt --content "hello"
  echo "more" | tp write notes/draft.txt --append`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc
			id, err := s.ResolveFile(args[0])
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed("content") {
				if f, ok := cmd.InOrStdin().(*os.File); ok && isatty.IsTerminal(f.Fd()) {
					return errors.New("no content: pass --content or pipe text on stdin")
				}
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("read stdin: %w", err)
				}
				content = string(data)
			}
			if appendMode {
				content = s.FileSystem().Items[id].Content + content
			}

			s.UpdateFileContent(id, content)
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d bytes to %s\n", len(content), s.FileSystem().Path(id))
			return nil
		},
	}

	cmd.Flags().StringVarP(&content, "content", "c", "", "New content")
	cmd.Flags().BoolVar(&appendMode, "append", false, "Append instead of replacing")
	return cmd
}

func NewCatCmd(svc **service.Service) *cobra.Command {
	return &cobra.Command{
		Use:   "cat [REF]",
		Short: "Print a file's content (the active tab by default)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc

			var content string
			if len(args) == 0 {
				item, ok := s.ActiveFile()
				if !ok {
					return errors.New("no active file")
				}
				content = item.Content
			} else {
				id, err := s.ResolveFile(args[0])
				if err != nil {
					return err
				}
				content = s.FileSystem().Items[id].Content
			}

			_, err := io.WriteString(cmd.OutOrStdout(), content)
			return err
		},
	}
}
