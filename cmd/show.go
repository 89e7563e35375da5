package cmd

import (
	"github.com/spf13/cobra"

	"cool-frontend/ast"
)

func newShowCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "show <file.cl>",
		Short: "Print the classes of a COOL program",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := o.parseFile(args[0])
			if err != nil {
				return err
			}
			defer o.release(cmd, u)

			if err := ast.ShowClassList(cmd.OutOrStdout(), u.classes); err != nil {
				return err
			}
			return reportDiagnostics(cmd.ErrOrStderr(), u.errs)
		},
	}
}
