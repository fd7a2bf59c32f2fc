package main

import (
	"fmt"
	"strings"
)

// ErrorLevel indicates the severity of a diagnostic.
type ErrorLevel int

const (
	LevelError ErrorLevel = iota
	LevelFatal
)

func (l ErrorLevel) String() string {
	switch l {
	case LevelError:
		return "error"
	case LevelFatal:
		return "fatal error"
	default:
		return "unknown"
	}
}

// ErrorCategory classifies a diagnostic per the three taxonomies: user
// syntax/semantic mistakes, internal invariant violations, and
// resource failures.
type ErrorCategory int

const (
	CategorySyntax ErrorCategory = iota
	CategorySemantic
	CategoryInternal
	CategoryResource
)

func (c ErrorCategory) String() string {
	switch c {
	case CategorySyntax:
		return "syntax error"
	case CategorySemantic:
		return "semantic error"
	case CategoryInternal:
		return "internal error"
	case CategoryResource:
		return "fatal"
	default:
		return "error"
	}
}

// SourceLocation is a diagnostic-ready position: 1-based line and
// column, derived from a Loc at the point of reporting.
type SourceLocation struct {
	File   string
	Line   int
	Column int
}

func (loc SourceLocation) String() string {
	return fmt.Sprintf("%s:%d:%d", loc.File, loc.Line, loc.Column)
}

// CompilerError is a single diagnostic. It implements error.
type CompilerError struct {
	Category   ErrorCategory
	Message    string
	Location   SourceLocation
	SourceLine string
}

func (e CompilerError) Error() string {
	return e.Format()
}

// Format renders the diagnostic as path:line:col: category: message,
// followed by the offending source line and a caret under the
// offending column. This is the one true rendering of a user-facing
// compiler error; there is no colorized variant and no multi-error
// report, since the pipeline terminates on the first diagnostic.
func (e CompilerError) Format() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: %s: %s\n", e.Location.String(), e.Category.String(), e.Message)
	if e.SourceLine != "" {
		sb.WriteString(e.SourceLine)
		sb.WriteString("\n")
		col := e.Location.Column
		if col < 1 {
			col = 1
		}
		sb.WriteString(strings.Repeat(" ", col-1))
		sb.WriteString("^")
	}
	return sb.String()
}

// syntaxErrorAt builds a CategorySyntax CompilerError at loc with the
// given message and source line, matching the parser's "got X but
// expected Y" phrasing.
func syntaxErrorAt(path string, loc Loc, line string, format string, args ...any) CompilerError {
	return CompilerError{
		Category:   CategorySyntax,
		Message:    fmt.Sprintf(format, args...),
		Location:   SourceLocation{File: path, Line: loc.Line(), Column: loc.Column()},
		SourceLine: line,
	}
}

func semanticErrorAt(path string, loc Loc, line string, format string, args ...any) CompilerError {
	return CompilerError{
		Category:   CategorySemantic,
		Message:    fmt.Sprintf(format, args...),
		Location:   SourceLocation{File: path, Line: loc.Line(), Column: loc.Column()},
		SourceLine: line,
	}
}

// fatalInternalf reports an internal invariant violation (taxonomy 2)
// and terminates the process. Callers use it the way the reference
// uses assert(): a condition that should be structurally impossible
// once parsing and resolution have succeeded.
func fatalInternalf(format string, args ...any) {
	fmt.Fprintf(stderrWriter, "%s: %s\n", LevelFatal, fmt.Sprintf(format, args...))
	osExit(1)
}

// fatalResourcef reports a resource failure (taxonomy 3: arena
// exhaustion, file I/O, as/ld failures) and terminates the process.
func fatalResourcef(format string, args ...any) {
	fmt.Fprintf(stderrWriter, "%s: %s\n", LevelFatal, fmt.Sprintf(format, args...))
	osExit(1)
}
