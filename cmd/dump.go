package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cool-frontend/ast"
)

func newDumpCmd(o *options) *cobra.Command {
	var (
		format string
		output string
	)
	cmd := &cobra.Command{
		Use:   "dump <file.cl>",
		Short: "Write the syntax tree as JSON or YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := ast.Format(format)
			if f != ast.FormatJSON && f != ast.FormatYAML {
				return fmt.Errorf("unknown format %q (want json or yaml)", format)
			}
			u, err := o.parseFile(args[0])
			if err != nil {
				return err
			}
			defer o.release(cmd, u)
			if err := reportDiagnostics(cmd.ErrOrStderr(), u.errs); err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if output != "" {
				file, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("error creating file: %w", err)
				}
				defer file.Close()
				w = file
			}
			return ast.Dump(w, u.classes, f)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format: json or yaml")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to file instead of stdout")
	return cmd
}
