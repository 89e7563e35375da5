// Package linker merges COOL source files joined by import lines into a
// single source text.
package linker

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"cool-frontend/utils"
)

// ErrImportCycle is returned when a file ends up importing itself.
var ErrImportCycle = errors.New("circular import")

// Linker resolves import lines of the form
//
//	import path/to/file.cl;
//
// where the path is relative to the importing file and may be quoted.
type Linker struct {
	logger *slog.Logger
	active map[string]bool
	done   map[string]bool
}

func New(logger *slog.Logger) *Linker {
	if logger == nil {
		logger = utils.Discard()
	}
	return &Linker{logger: logger}
}

// Load returns the text of path with each import line replaced by the
// text of the file it names. A file reached twice is included once.
func (l *Linker) Load(path string) (string, error) {
	l.active = map[string]bool{}
	l.done = map[string]bool{}
	return l.load(path)
}

func (l *Linker) load(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("cannot resolve path %q: %w", path, err)
	}
	if l.active[abs] {
		return "", fmt.Errorf("%w: %s", ErrImportCycle, abs)
	}
	if l.done[abs] {
		l.logger.Debug("already imported", "file", abs)
		return "", nil
	}
	l.active[abs] = true
	defer delete(l.active, abs)

	l.logger.Debug("reading file", "file", abs)
	data, err := os.ReadFile(abs)
	if err != nil {
		return "", fmt.Errorf("cannot read file: %w", err)
	}
	lines := strings.Split(string(data), "\n")
	dir := filepath.Dir(abs)
	for i, line := range lines {
		target, ok := importTarget(line)
		if !ok {
			continue
		}
		imported := filepath.Join(dir, target)
		l.logger.Debug("importing", "file", imported, "from", abs)
		content, err := l.load(imported)
		if err != nil {
			return "", err
		}
		lines[i] = content
	}
	l.done[abs] = true
	return strings.Join(lines, "\n"), nil
}

// importTarget extracts the path from an import line.
func importTarget(line string) (string, bool) {
	rest, ok := strings.CutPrefix(strings.TrimSpace(line), "import ")
	if !ok {
		return "", false
	}
	rest = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(rest), ";"))
	rest = strings.Trim(rest, `"`)
	if rest == "" || strings.ContainsAny(rest, " \t") {
		return "", false
	}
	return rest, true
}
