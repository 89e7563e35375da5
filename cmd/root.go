// Package cmd implements the coolfe command line.
package cmd

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"cool-frontend/config"
	"cool-frontend/utils"
)

// options is the state shared by all subcommands.
type options struct {
	cfgFile string
	verbose bool

	cfg    *config.Config
	logger *slog.Logger
	closer io.Closer
}

// NewRootCmd builds the coolfe command tree.
func NewRootCmd() *cobra.Command {
	root, _ := newRootCmd()
	return root
}

func newRootCmd() (*cobra.Command, *options) {
	o := &options{}
	root := &cobra.Command{
		Use:   "coolfe",
		Short: "COOL front end",
		Long: `coolfe reads COOL source files, builds their syntax tree and
prints or dumps it.

Commands:
  show  - list the classes of a program
  dump  - write the full syntax tree as JSON or YAML`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return o.setup(cmd) },
	}
	root.PersistentFlags().StringVar(&o.cfgFile, "config", "", "config file, TOML or YAML (default $"+config.EnvPath+")")
	root.PersistentFlags().BoolVarP(&o.verbose, "verbose", "v", false, "verbose output")
	root.AddCommand(newShowCmd(o), newDumpCmd(o))
	return root, o
}

// Execute runs the root command and prints any error it returns.
func Execute() error {
	root, o := newRootCmd()
	if err := execute(root, o); err != nil {
		printError(root.ErrOrStderr(), err)
		return err
	}
	return nil
}

// execute runs root and closes the log output whether or not the
// command succeeded.
func execute(root *cobra.Command, o *options) error {
	err := root.Execute()
	if cerr := o.close(); err == nil {
		err = cerr
	}
	return err
}

// setup loads the configuration and builds the logger.
func (o *options) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(o.cfgFile)
	if err != nil {
		return err
	}
	lc := cfg.LogConfig()
	lc.Output = cmd.ErrOrStderr()
	if o.verbose {
		lc.Level = "info"
	}
	logger, closer, err := utils.NewLogger(lc)
	if err != nil {
		return err
	}
	o.cfg, o.logger, o.closer = cfg, logger, closer
	return nil
}

func (o *options) close() error {
	if o.closer == nil {
		return nil
	}
	err := o.closer.Close()
	o.closer = nil
	return err
}
