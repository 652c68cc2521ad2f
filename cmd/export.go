package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mattsolo1/grove-textpad/pkg/export"
	"github.com/mattsolo1/grove-textpad/pkg/service"
)

func NewExportCmd(svc **service.Service) *cobra.Command {
	var (
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the workspace state as JSON or YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc

			var f export.Format
			var err error
			if cmd.Flags().Changed("format") || output == "" {
				f, err = export.ParseFormat(format)
				if err != nil {
					return err
				}
			} else {
				f = export.FormatForPath(output)
			}

			var w io.Writer = cmd.OutOrStdout()
			if output != "" {
				file, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("create %s: %w", output, err)
				}
				defer file.Close()
				w = file
			}
			return export.Write(w, s.Snapshot(), f)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "json", "Output format: json or yaml")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to a file instead of stdout")
	return cmd
}

func NewImportCmd(svc **service.Service) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Replace the workspace state with an exported document",
		Long: `Replace the workspace state with a JSON or YAML document written by
'tp export'. Use - to read standard input. The document is checked before
anything is replaced.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc

			var r io.Reader
			f := export.FormatForPath(args[0])
			if args[0] == "-" {
				r = cmd.InOrStdin()
			} else {
				file, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("open %s: %w", args[0], err)
				}
				defer file.Close()
				r = file
			}
			if cmd.Flags().Changed("format") {
				var err error
				if f, err = export.ParseFormat(format); err != nil {
					return err
				}
			}

			snap, err := export.Read(r, f)
			if err != nil {
				return err
			}
			if err := s.Replace(snap); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d items, %d open files\n", snap.FileSystem.Len(), len(snap.Editor.OpenFiles))
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "Input format: json or yaml (default from extension)")
	return cmd
}
