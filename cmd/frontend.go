package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"cool-frontend/ast"
	"cool-frontend/lexer"
	"cool-frontend/linker"
	"cool-frontend/parser"
	"cool-frontend/utils"
)

// unit is a parsed source file. Its tree owns every node in classes.
type unit struct {
	path    string
	tree    *ast.Tree
	classes *ast.ClassList
	errs    *utils.ErrorLog
}

// parseFile runs the source at path through import merging, comment
// removal, the lexer and the parser.
func (o *options) parseFile(path string) (*unit, error) {
	src, err := linker.New(o.logger).Load(path)
	if err != nil {
		return nil, err
	}
	clean, err := lexer.RemoveComments(strings.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	tree := ast.NewTree(ast.WithLimits(o.cfg.TreeLimits()), ast.WithLogger(o.logger))
	errs := utils.NewErrorLog(o.logger)
	lex := lexer.NewLexer(strings.NewReader(clean), errs, o.logger)
	p := parser.NewParser(lex, tree, errs, o.logger, o.cfg.ParserConfig())
	classes, err := p.ParseProgram()
	if err != nil {
		tree.Release()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	o.logger.Info("parsed", "file", path, "classes", classes.Len(), "diagnostics", len(errs.Diagnostics()))
	return &unit{path: path, tree: tree, classes: classes, errs: errs}, nil
}

// release tears the unit's tree down and checks the ledger balanced.
func (o *options) release(cmd *cobra.Command, u *unit) {
	if err := u.tree.ReleaseClassList(u.classes); err != nil {
		o.logger.Error("release failed", "file", u.path, "err", err)
	}
	stats := u.tree.Stats()
	if !stats.Empty() {
		o.logger.Warn("nodes left after release", "file", u.path, "nodes", stats.Nodes, "links", stats.Links, "strings", stats.Strings)
	}
	u.tree.Release()
	if o.verbose {
		fmt.Fprintln(cmd.ErrOrStderr(), mutedStyle.Render(fmt.Sprintf("%s: %d allocated, %d released",
			u.path, stats.Allocated, stats.Released)))
	}
}

// reportDiagnostics prints every diagnostic and fails if there were any.
func reportDiagnostics(w io.Writer, errs *utils.ErrorLog) error {
	diags := errs.Diagnostics()
	if len(diags) == 0 {
		return nil
	}
	for _, d := range diags {
		fmt.Fprintln(w, errorStyle.Render(d.String()))
	}
	return fmt.Errorf("%d syntax error(s)", len(diags))
}
