package utils

import (
	"fmt"
	"io"
	"log/slog"
)

// Diagnostic is a single error found while reading a source file.
type Diagnostic struct {
	Stage   string // "Lexer" or "Parser"
	Line    int
	Column  int
	Message string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("[%s Error] line %d, col %d: %s", d.Stage, d.Line, d.Column, d.Message)
}

// ErrorLog collects diagnostics in the order they are reported.
type ErrorLog struct {
	diags  []Diagnostic
	logger *slog.Logger
}

// NewErrorLog returns an empty log that also forwards every report to logger.
func NewErrorLog(logger *slog.Logger) *ErrorLog {
	if logger == nil {
		logger = Discard()
	}
	return &ErrorLog{logger: logger}
}

func (l *ErrorLog) Report(stage string, line, column int, msg string) {
	d := Diagnostic{Stage: stage, Line: line, Column: column, Message: msg}
	l.diags = append(l.diags, d)
	l.logger.Debug("diagnostic", "stage", stage, "line", line, "col", column, "msg", msg)
}

func (l *ErrorLog) HasErrors() bool { return len(l.diags) > 0 }

// Diagnostics returns the reported diagnostics.
func (l *ErrorLog) Diagnostics() []Diagnostic {
	return append([]Diagnostic(nil), l.diags...)
}

// WriteTo writes one diagnostic per line.
func (l *ErrorLog) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for _, d := range l.diags {
		n, err := fmt.Fprintln(w, d.String())
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}
